package ledger

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
	"github.com/mamadbah2/malynka/internal/service/reporting"
)

// ReceivingInput is the writable part of a receiving.
type ReceivingInput struct {
	ClientID  string          `json:"client"`
	Records   []models.Record `json:"records"`
	Timestamp int64           `json:"timestamp"`
}

func (in ReceivingInput) validate() error {
	switch {
	case in.ClientID == "":
		return models.NewValidationError("client id must be provided")
	case len(in.Records) == 0:
		return models.NewValidationError("receiving records must be provided")
	case in.Timestamp == 0:
		return models.NewValidationError("date timestamp must be provided")
	}
	for i, rec := range in.Records {
		if rec.Weight < 0 || rec.Price < 0 {
			return models.NewValidationError("record %d: weight and price must not be negative", i)
		}
	}
	return nil
}

// Receivings lists every receiving, newest first.
func (s *Service) Receivings(ctx context.Context) ([]models.Receiving, error) {
	return s.receivings.FindAll(ctx)
}

// ReceivingsByYear lists the receivings of one calendar year, newest first.
func (s *Service) ReceivingsByYear(ctx context.Context, year int) ([]models.Receiving, error) {
	window := reporting.YearWindow(year, s.location)
	return s.receivings.FindByRangeAndClient(ctx, window.Start, window.End, "")
}

// CreateReceiving stores a receiving for an existing client with totals
// computed from its records.
func (s *Service) CreateReceiving(ctx context.Context, in ReceivingInput) (models.Receiving, error) {
	receiving, err := s.buildReceiving(ctx, in)
	if err != nil {
		return models.Receiving{}, err
	}

	saved, err := s.receivings.Insert(ctx, receiving)
	if err != nil {
		return models.Receiving{}, err
	}

	s.logger.Info("receiving created",
		zap.String("id", saved.ID),
		zap.String("client", saved.ClientID),
		zap.Float64("total_weight", saved.TotalWeight))
	return saved, nil
}

// UpdateReceiving replaces a receiving's data; totals are recomputed.
func (s *Service) UpdateReceiving(ctx context.Context, id string, in ReceivingInput) (models.Receiving, error) {
	if id == "" {
		return models.Receiving{}, models.NewValidationError("receiving id must be provided")
	}

	receiving, err := s.buildReceiving(ctx, in)
	if err != nil {
		return models.Receiving{}, err
	}
	receiving.ID = id

	if err := s.receivings.Update(ctx, receiving); err != nil {
		return models.Receiving{}, err
	}
	return receiving, nil
}

// DeleteReceiving removes a receiving.
func (s *Service) DeleteReceiving(ctx context.Context, id string) error {
	return s.receivings.Delete(ctx, id)
}

func (s *Service) buildReceiving(ctx context.Context, in ReceivingInput) (models.Receiving, error) {
	if err := in.validate(); err != nil {
		return models.Receiving{}, err
	}

	client, err := s.mustClient(ctx, in.ClientID)
	if err != nil {
		return models.Receiving{}, err
	}

	receiving := models.Receiving{
		ClientID:  client.ID,
		Client:    client,
		Timestamp: time.UnixMilli(in.Timestamp),
	}
	receiving.SetRecords(in.Records)
	return receiving, nil
}
