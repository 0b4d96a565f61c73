package ledger

import (
	"context"
	"time"

	"github.com/mamadbah2/malynka/internal/domain/models"
	"github.com/mamadbah2/malynka/internal/service/reporting"
)

// OwnReceivingInput is the writable part of an own receiving.
type OwnReceivingInput struct {
	Weight    float64 `json:"weight"`
	Timestamp int64   `json:"timestamp"`
}

func (in OwnReceivingInput) validate() error {
	switch {
	case in.Weight < 0:
		return models.NewValidationError("weight must not be negative")
	case in.Timestamp == 0:
		return models.NewValidationError("date timestamp must be provided")
	}
	return nil
}

func (in OwnReceivingInput) ownReceiving() models.OwnReceiving {
	return models.OwnReceiving{Weight: in.Weight, Timestamp: time.UnixMilli(in.Timestamp)}
}

// OwnReceivings lists every own receiving, newest first.
func (s *Service) OwnReceivings(ctx context.Context) ([]models.OwnReceiving, error) {
	return s.own.FindAll(ctx)
}

// OwnReceivingsByYear lists the own receivings of one calendar year.
func (s *Service) OwnReceivingsByYear(ctx context.Context, year int) ([]models.OwnReceiving, error) {
	window := reporting.YearWindow(year, s.location)
	return s.own.FindByRange(ctx, window.Start, window.End)
}

// CreateOwnReceiving stores an own-harvest weight.
func (s *Service) CreateOwnReceiving(ctx context.Context, in OwnReceivingInput) (models.OwnReceiving, error) {
	if err := in.validate(); err != nil {
		return models.OwnReceiving{}, err
	}
	return s.own.Insert(ctx, in.ownReceiving())
}

// UpdateOwnReceiving overwrites an own receiving.
func (s *Service) UpdateOwnReceiving(ctx context.Context, id string, in OwnReceivingInput) (models.OwnReceiving, error) {
	if id == "" {
		return models.OwnReceiving{}, models.NewValidationError("own receiving id must be provided")
	}
	if err := in.validate(); err != nil {
		return models.OwnReceiving{}, err
	}

	own := in.ownReceiving()
	own.ID = id
	if err := s.own.Update(ctx, own); err != nil {
		return models.OwnReceiving{}, err
	}
	return own, nil
}

// DeleteOwnReceiving removes an own receiving.
func (s *Service) DeleteOwnReceiving(ctx context.Context, id string) error {
	return s.own.Delete(ctx, id)
}
