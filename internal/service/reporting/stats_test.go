package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name       string
		receivings []models.Receiving
		sales      []models.Sale
		want       models.StatsSummary
	}{
		{
			name: "empty input",
			want: models.StatsSummary{},
		},
		{
			name:       "two clients on one day",
			receivings: scenarioA(),
			want: models.StatsSummary{
				TotalWeight: 20,
				TotalPrice:  100,
				MinPrice:    4,
				MaxPrice:    6,
				AvgPrice:    5,
			},
		},
		{
			name:  "sales only",
			sales: []models.Sale{{ID: "s1", Weight: 3, Price: 10, Timestamp: day(2)}},
			want: models.StatsSummary{
				SoldWeight: 3,
				Earned:     30,
			},
		},
		{
			name: "average rounds to two decimals",
			receivings: []models.Receiving{
				receiving("r1", client("c1", "Ann"), day(1),
					models.Record{Weight: 3, Price: 10},
					models.Record{Weight: 3, Price: 12},
					models.Record{Weight: 3, Price: 11.5}),
			},
			want: models.StatsSummary{
				TotalWeight: 9,
				TotalPrice:  100.5,
				MinPrice:    10,
				MaxPrice:    12,
				AvgPrice:    11.17,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.receivings, tt.sales))
		})
	}
}

func TestSummarizeMinMaxUseRecordPrices(t *testing.T) {
	receivings := []models.Receiving{
		receiving("r1", client("c1", "Ann"), day(1),
			models.Record{Weight: 1, Price: 2},
			models.Record{Weight: 100, Price: 50}),
		receiving("r2", client("c2", "Bob"), day(2), models.Record{Weight: 1, Price: 20}),
	}

	got := Summarize(receivings, nil)

	assert.Equal(t, 2.0, got.MinPrice)
	assert.Equal(t, 50.0, got.MaxPrice)
}

func TestSummarizeIsOrderIndependent(t *testing.T) {
	receivings := scenarioA()
	sales := []models.Sale{
		{ID: "s1", Weight: 3, Price: 10, Timestamp: day(2)},
		{ID: "s2", Weight: 1, Price: 12, Timestamp: day(3)},
	}

	reversed := []models.Receiving{receivings[1], receivings[0]}
	reversedSales := []models.Sale{sales[1], sales[0]}

	assert.Equal(t, Summarize(receivings, sales), Summarize(reversed, reversedSales))
}
