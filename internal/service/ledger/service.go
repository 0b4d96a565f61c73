// Package ledger implements the bookkeeping use-cases behind the CRUD
// endpoints: clients, receivings, sales and own receivings.
package ledger

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

// ClientRepository persists clients.
type ClientRepository interface {
	List(ctx context.Context, includeHidden bool) ([]models.Client, error)
	FindByID(ctx context.Context, id string) (*models.Client, error)
	FindByName(ctx context.Context, name string, visibleOnly bool) (*models.Client, error)
	Insert(ctx context.Context, client models.Client) (models.Client, error)
	Update(ctx context.Context, client models.Client) error
}

// ReceivingRepository persists receivings.
type ReceivingRepository interface {
	FindAll(ctx context.Context) ([]models.Receiving, error)
	FindByRangeAndClient(ctx context.Context, start, end time.Time, clientID string) ([]models.Receiving, error)
	Insert(ctx context.Context, receiving models.Receiving) (models.Receiving, error)
	Update(ctx context.Context, receiving models.Receiving) error
	Delete(ctx context.Context, id string) error
}

// SaleRepository persists sales.
type SaleRepository interface {
	FindAll(ctx context.Context) ([]models.Sale, error)
	FindByRange(ctx context.Context, start, end time.Time) ([]models.Sale, error)
	Insert(ctx context.Context, sale models.Sale) (models.Sale, error)
	Update(ctx context.Context, sale models.Sale) error
	Delete(ctx context.Context, id string) error
}

// OwnReceivingRepository persists own-harvest weights.
type OwnReceivingRepository interface {
	FindAll(ctx context.Context) ([]models.OwnReceiving, error)
	FindByRange(ctx context.Context, start, end time.Time) ([]models.OwnReceiving, error)
	Insert(ctx context.Context, own models.OwnReceiving) (models.OwnReceiving, error)
	Update(ctx context.Context, own models.OwnReceiving) error
	Delete(ctx context.Context, id string) error
}

// Service validates and persists ledger entries.
type Service struct {
	clients    ClientRepository
	receivings ReceivingRepository
	sales      SaleRepository
	own        OwnReceivingRepository
	location   *time.Location
	logger     *zap.Logger
}

// NewService constructs a ledger service. Year filters use location.
func NewService(clients ClientRepository, receivings ReceivingRepository, sales SaleRepository, own OwnReceivingRepository, location *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &Service{
		clients:    clients,
		receivings: receivings,
		sales:      sales,
		own:        own,
		location:   location,
		logger:     logger,
	}
}
