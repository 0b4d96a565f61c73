package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

func TestStatsRow(t *testing.T) {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 7, 23, 59, 59, 0, time.UTC)
	summary := models.StatsSummary{
		TotalWeight: 20, TotalPrice: 100, MinPrice: 4, MaxPrice: 6, AvgPrice: 5,
		SoldWeight: 3, Earned: 30,
	}

	row := statsRow(start, end, summary)

	assert.Equal(t, []interface{}{
		"2024-06-01", "2024-06-07",
		20.0, 100.0, 4.0, 6.0, 5.0,
		3.0, 30.0, 17.0, -70.0,
	}, row)
}

func TestAppendStats(t *testing.T) {
	var gotPath string
	var got sheetsapi.ValueRange

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "USER_ENTERED", r.URL.Query().Get("valueInputOption"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	service, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	repo := &GoogleSheetRepository{
		service:       service,
		spreadsheetID: "sheet-1",
		archiveRange:  "Stats!A:K",
		logger:        zap.NewNop(),
	}

	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	err = repo.AppendStats(context.Background(), start, start.AddDate(0, 0, 6), models.StatsSummary{TotalWeight: 2})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotPath, "/v4/spreadsheets/sheet-1/values/"), gotPath)
	require.Len(t, got.Values, 1)
	assert.Len(t, got.Values[0], 11)
	assert.Equal(t, "2024-06-01", got.Values[0][0])
	assert.Equal(t, 2.0, got.Values[0][2])
}

func TestWriteRowRequiresRange(t *testing.T) {
	repo := &GoogleSheetRepository{logger: zap.NewNop()}

	err := repo.writeRow(context.Background(), "", []interface{}{"x"})

	assert.Error(t, err)
}
