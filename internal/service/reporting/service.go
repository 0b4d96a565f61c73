package reporting

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
	"github.com/mamadbah2/malynka/internal/report/xlsx"
)

// ReceivingStore loads receivings with their client reference resolved.
type ReceivingStore interface {
	FindAll(ctx context.Context) ([]models.Receiving, error)
	FindByRangeAndClient(ctx context.Context, start, end time.Time, clientID string) ([]models.Receiving, error)
}

// SaleStore loads sales.
type SaleStore interface {
	FindAll(ctx context.Context) ([]models.Sale, error)
	FindByRange(ctx context.Context, start, end time.Time) ([]models.Sale, error)
}

// ClientStore resolves clients. FindByID returns nil without error when the
// client does not exist.
type ClientStore interface {
	FindByID(ctx context.Context, id string) (*models.Client, error)
}

// Settings tune report rendering.
type Settings struct {
	Location     *time.Location
	IncludeSales bool
	Creator      string
}

// Workbook is a rendered range report.
type Workbook struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Digest is the weekly summary pushed by the scheduler.
type Digest struct {
	Window  Window
	Summary models.StatsSummary
}

// Service exposes statistics and spreadsheet reports over the ledger.
type Service struct {
	receivings ReceivingStore
	sales      SaleStore
	clients    ClientStore
	settings   Settings
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(receivings ReceivingStore, sales SaleStore, clients ClientStore, settings Settings, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.Location == nil {
		settings.Location = time.Local
	}
	return &Service{
		receivings: receivings,
		sales:      sales,
		clients:    clients,
		settings:   settings,
		logger:     logger,
		now:        time.Now,
	}
}

// Location is the time zone reports are rendered in.
func (s *Service) Location() *time.Location {
	return s.settings.Location
}

// Stats summarizes the whole ledger.
func (s *Service) Stats(ctx context.Context) (models.StatsSummary, error) {
	receivings, err := s.receivings.FindAll(ctx)
	if err != nil {
		return models.StatsSummary{}, fmt.Errorf("load receivings: %w", err)
	}
	sales, err := s.sales.FindAll(ctx)
	if err != nil {
		return models.StatsSummary{}, fmt.Errorf("load sales: %w", err)
	}
	return Summarize(receivings, sales), nil
}

// StatsByYear summarizes one calendar year.
func (s *Service) StatsByYear(ctx context.Context, year int) (models.StatsSummary, error) {
	return s.RangeStats(ctx, YearWindow(year, s.settings.Location), "")
}

// Years lists the years having receivings, newest first. The current year is
// always included.
func (s *Service) Years(ctx context.Context) ([]int, error) {
	receivings, err := s.receivings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load receivings: %w", err)
	}

	seen := map[int]struct{}{s.now().In(s.settings.Location).Year(): {}}
	for _, receiving := range receivings {
		seen[receiving.Timestamp.In(s.settings.Location).Year()] = struct{}{}
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// RangeStats summarizes the same slice RangeWorkbook renders.
func (s *Service) RangeStats(ctx context.Context, window Window, clientID string) (models.StatsSummary, error) {
	receivings, sales, _, err := s.load(ctx, window, clientID)
	if err != nil {
		return models.StatsSummary{}, err
	}
	return Summarize(receivings, sales), nil
}

// RangeWorkbook renders the receivings of window, optionally for one client,
// as an xlsx document.
func (s *Service) RangeWorkbook(ctx context.Context, window Window, clientID string) (*Workbook, error) {
	receivings, sales, client, err := s.load(ctx, window, clientID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = BuildRangeWorkbook(&buf, RangeReport{
		Receivings:   receivings,
		Sales:        sales,
		Window:       window,
		Client:       client,
		Location:     s.settings.Location,
		IncludeSales: s.settings.IncludeSales,
		Creator:      s.settings.Creator,
		Created:      s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("range workbook built",
		zap.Time("start", window.Start),
		zap.Time("end", window.End),
		zap.String("client", clientID),
		zap.Int("receivings", len(receivings)),
		zap.Int("bytes", buf.Len()))

	return &Workbook{
		Filename:    Filename(window, s.settings.Location),
		ContentType: xlsx.ContentType,
		Content:     buf.Bytes(),
	}, nil
}

// WeeklyDigest summarizes the seven calendar days ending at now.
func (s *Service) WeeklyDigest(ctx context.Context, now time.Time) (Digest, error) {
	window := DayWindow(now.AddDate(0, 0, -6), now, s.settings.Location)
	summary, err := s.RangeStats(ctx, window, "")
	if err != nil {
		return Digest{}, err
	}
	return Digest{Window: window, Summary: summary}, nil
}

// FormatDigest renders a digest as a short plain text message.
func FormatDigest(d Digest, loc *time.Location) string {
	sum := d.Summary
	return fmt.Sprintf("Звіт %s\nЗібрано: %.2f кг\nВитрачено: %.2f грн\nЦіна: мін %.2f / макс %.2f / сер %.2f грн/кг\nПродано: %.2f кг на %.2f грн\nЗалишок: %.2f кг\nПрибуток: %.2f грн",
		RangeLabel(d.Window, loc),
		sum.TotalWeight, sum.TotalPrice,
		sum.MinPrice, sum.MaxPrice, sum.AvgPrice,
		sum.SoldWeight, sum.Earned,
		sum.RemainingWeight(), sum.Profit())
}

// load validates the window before touching any store, then fetches and
// selects the report slice.
func (s *Service) load(ctx context.Context, window Window, clientID string) ([]models.Receiving, []models.Sale, *models.Client, error) {
	if err := window.Validate(); err != nil {
		return nil, nil, nil, err
	}

	var client *models.Client
	if clientID != "" {
		found, err := s.clients.FindByID(ctx, clientID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load client %s: %w", clientID, err)
		}
		if found == nil {
			return nil, nil, nil, fmt.Errorf("%w: %s", models.ErrClientNotFound, clientID)
		}
		client = found
	}

	stored, err := s.receivings.FindByRangeAndClient(ctx, window.Start, window.End, clientID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load receivings: %w", err)
	}
	storedSales, err := s.sales.FindByRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load sales: %w", err)
	}

	receivings, err := SelectReceivings(stored, window.Start, window.End, clientID)
	if err != nil {
		return nil, nil, nil, err
	}
	sales, err := SelectSales(storedSales, window.Start, window.End)
	if err != nil {
		return nil, nil, nil, err
	}

	for _, receiving := range receivings {
		if receiving.Client == nil {
			return nil, nil, nil, &models.ReferenceError{ReceivingID: receiving.ID, ClientID: receiving.ClientID}
		}
	}

	s.logger.Debug("report slice loaded",
		zap.Int("receivings", len(receivings)),
		zap.Int("sales", len(sales)))

	return receivings, sales, client, nil
}
