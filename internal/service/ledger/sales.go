package ledger

import (
	"context"
	"time"

	"github.com/mamadbah2/malynka/internal/domain/models"
	"github.com/mamadbah2/malynka/internal/service/reporting"
)

// SaleInput is the writable part of a sale.
type SaleInput struct {
	Weight    float64 `json:"weight"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

func (in SaleInput) validate() error {
	switch {
	case in.Weight < 0 || in.Price < 0:
		return models.NewValidationError("weight and price must not be negative")
	case in.Timestamp == 0:
		return models.NewValidationError("date timestamp must be provided")
	}
	return nil
}

func (in SaleInput) sale() models.Sale {
	return models.Sale{Weight: in.Weight, Price: in.Price, Timestamp: time.UnixMilli(in.Timestamp)}
}

// Sales lists every sale, newest first.
func (s *Service) Sales(ctx context.Context) ([]models.Sale, error) {
	return s.sales.FindAll(ctx)
}

// SalesByYear lists the sales of one calendar year, oldest first.
func (s *Service) SalesByYear(ctx context.Context, year int) ([]models.Sale, error) {
	window := reporting.YearWindow(year, s.location)
	return s.sales.FindByRange(ctx, window.Start, window.End)
}

// CreateSale stores a sale.
func (s *Service) CreateSale(ctx context.Context, in SaleInput) (models.Sale, error) {
	if err := in.validate(); err != nil {
		return models.Sale{}, err
	}
	return s.sales.Insert(ctx, in.sale())
}

// UpdateSale overwrites a sale.
func (s *Service) UpdateSale(ctx context.Context, id string, in SaleInput) (models.Sale, error) {
	if id == "" {
		return models.Sale{}, models.NewValidationError("sale id must be provided")
	}
	if err := in.validate(); err != nil {
		return models.Sale{}, err
	}

	sale := in.sale()
	sale.ID = id
	if err := s.sales.Update(ctx, sale); err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

// DeleteSale removes a sale.
func (s *Service) DeleteSale(ctx context.Context, id string) error {
	return s.sales.Delete(ctx, id)
}
