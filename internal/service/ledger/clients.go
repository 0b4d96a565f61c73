package ledger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

// ClientInput is the writable part of a client.
type ClientInput struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// Clients lists visible clients.
func (s *Service) Clients(ctx context.Context) ([]models.Client, error) {
	return s.clients.List(ctx, false)
}

// CreateClient stores a new client. Names are unique among visible clients
// regardless of case.
func (s *Service) CreateClient(ctx context.Context, in ClientInput) (models.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Client{}, models.NewValidationError("name must be non-empty string")
	}

	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return models.Client{}, err
	}

	client, err := s.clients.Insert(ctx, models.Client{Name: name, Note: in.Note})
	if err != nil {
		return models.Client{}, err
	}

	s.logger.Info("client created", zap.String("id", client.ID), zap.String("name", client.Name))
	return client, nil
}

// UpdateClient renames a client and replaces its note. Receivings keep
// pointing at the client, so reports pick up the new name.
func (s *Service) UpdateClient(ctx context.Context, id string, in ClientInput) (models.Client, error) {
	if strings.TrimSpace(id) == "" {
		return models.Client{}, models.NewValidationError("id must be non-empty string")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Client{}, models.NewValidationError("new name must be non-empty string")
	}

	client, err := s.mustClient(ctx, id)
	if err != nil {
		return models.Client{}, err
	}
	if err := s.ensureNameFree(ctx, name, client.ID); err != nil {
		return models.Client{}, err
	}

	client.Name = name
	client.Note = in.Note
	if err := s.clients.Update(ctx, *client); err != nil {
		return models.Client{}, err
	}
	return *client, nil
}

// HideClient removes a client from listings. Its receivings stay intact.
func (s *Service) HideClient(ctx context.Context, id string) error {
	client, err := s.mustClient(ctx, id)
	if err != nil {
		return err
	}
	if client.IsHidden {
		return nil
	}

	client.IsHidden = true
	if err := s.clients.Update(ctx, *client); err != nil {
		return err
	}
	s.logger.Info("client hidden", zap.String("id", client.ID))
	return nil
}

// RestoreClient makes a hidden client visible again.
func (s *Service) RestoreClient(ctx context.Context, name string) (models.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Client{}, models.NewValidationError("name must be non-empty string")
	}

	client, err := s.clients.FindByName(ctx, name, false)
	if err != nil {
		return models.Client{}, err
	}
	if client == nil {
		return models.Client{}, fmt.Errorf("%w: %s", models.ErrClientNotFound, name)
	}
	if !client.IsHidden {
		return *client, nil
	}
	if err := s.ensureNameFree(ctx, client.Name, client.ID); err != nil {
		return models.Client{}, err
	}

	client.IsHidden = false
	if err := s.clients.Update(ctx, *client); err != nil {
		return models.Client{}, err
	}
	return *client, nil
}

func (s *Service) mustClient(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrClientNotFound, id)
	}
	return client, nil
}

func (s *Service) ensureNameFree(ctx context.Context, name, exceptID string) error {
	existing, err := s.clients.FindByName(ctx, name, true)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return fmt.Errorf("%w: %s", models.ErrDuplicateClient, name)
	}
	return nil
}
