package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/malynka/internal/config"
	"github.com/mamadbah2/malynka/internal/domain/models"
)

const archiveDateLayout = "2006-01-02"

// GoogleSheetRepository archives report summaries into a Google spreadsheet.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	archiveRange  string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		archiveRange:  cfg.ArchiveRange,
		logger:        logger,
	}, nil
}

// AppendStats appends one summary row for the period [start, end].
func (r *GoogleSheetRepository) AppendStats(ctx context.Context, start, end time.Time, summary models.StatsSummary) error {
	return r.writeRow(ctx, r.archiveRange, statsRow(start, end, summary))
}

// statsRow is the archive column order: start, end, collected, spent,
// min, max, avg price, sold, earned, remaining, profit.
func statsRow(start, end time.Time, s models.StatsSummary) []interface{} {
	return []interface{}{
		start.Format(archiveDateLayout),
		end.Format(archiveDateLayout),
		s.TotalWeight,
		s.TotalPrice,
		s.MinPrice,
		s.MaxPrice,
		s.AvgPrice,
		s.SoldWeight,
		s.Earned,
		s.RemainingWeight(),
		s.Profit(),
	}
}

func (r *GoogleSheetRepository) writeRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}
