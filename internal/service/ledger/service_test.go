package ledger

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

type memClients struct {
	items  []models.Client
	nextID int
}

func (m *memClients) List(_ context.Context, includeHidden bool) ([]models.Client, error) {
	var out []models.Client
	for _, c := range m.items {
		if includeHidden || !c.IsHidden {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memClients) FindByID(_ context.Context, id string) (*models.Client, error) {
	for _, c := range m.items {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memClients) FindByName(_ context.Context, name string, visibleOnly bool) (*models.Client, error) {
	for _, c := range m.items {
		if strings.EqualFold(c.Name, name) && (!visibleOnly || !c.IsHidden) {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memClients) Insert(_ context.Context, client models.Client) (models.Client, error) {
	m.nextID++
	client.ID = fmt.Sprintf("c%d", m.nextID)
	m.items = append(m.items, client)
	return client, nil
}

func (m *memClients) Update(_ context.Context, client models.Client) error {
	for i := range m.items {
		if m.items[i].ID == client.ID {
			m.items[i] = client
			return nil
		}
	}
	return models.ErrNotFound
}

type memReceivings struct {
	inserted []models.Receiving
	updated  []models.Receiving
	start    time.Time
	end      time.Time
}

func (m *memReceivings) FindAll(context.Context) ([]models.Receiving, error) {
	return m.inserted, nil
}

func (m *memReceivings) FindByRangeAndClient(_ context.Context, start, end time.Time, _ string) ([]models.Receiving, error) {
	m.start, m.end = start, end
	return nil, nil
}

func (m *memReceivings) Insert(_ context.Context, r models.Receiving) (models.Receiving, error) {
	r.ID = "r1"
	m.inserted = append(m.inserted, r)
	return r, nil
}

func (m *memReceivings) Update(_ context.Context, r models.Receiving) error {
	m.updated = append(m.updated, r)
	return nil
}

func (m *memReceivings) Delete(_ context.Context, id string) error {
	if id != "r1" {
		return models.ErrNotFound
	}
	return nil
}

type memSales struct {
	inserted []models.Sale
	start    time.Time
}

func (m *memSales) FindAll(context.Context) ([]models.Sale, error) { return m.inserted, nil }

func (m *memSales) FindByRange(_ context.Context, start, _ time.Time) ([]models.Sale, error) {
	m.start = start
	return nil, nil
}

func (m *memSales) Insert(_ context.Context, s models.Sale) (models.Sale, error) {
	s.ID = "s1"
	m.inserted = append(m.inserted, s)
	return s, nil
}

func (m *memSales) Update(context.Context, models.Sale) error { return nil }
func (m *memSales) Delete(context.Context, string) error      { return nil }

type memOwnReceivings struct {
	items []models.OwnReceiving
	start time.Time
	end   time.Time
}

func (m *memOwnReceivings) FindAll(context.Context) ([]models.OwnReceiving, error) {
	return m.items, nil
}

func (m *memOwnReceivings) FindByRange(_ context.Context, start, end time.Time) ([]models.OwnReceiving, error) {
	m.start, m.end = start, end
	return nil, nil
}

func (m *memOwnReceivings) Insert(_ context.Context, o models.OwnReceiving) (models.OwnReceiving, error) {
	o.ID = fmt.Sprintf("o%d", len(m.items)+1)
	m.items = append(m.items, o)
	return o, nil
}

func (m *memOwnReceivings) Update(_ context.Context, o models.OwnReceiving) error {
	for i := range m.items {
		if m.items[i].ID == o.ID {
			m.items[i] = o
			return nil
		}
	}
	return models.ErrNotFound
}

func (m *memOwnReceivings) Delete(_ context.Context, id string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

var testLoc = time.FixedZone("EET", 2*60*60)

func newTestService() (*Service, *memClients, *memReceivings, *memSales) {
	svc, clients, receivings, sales, _ := newTestServiceWithOwn()
	return svc, clients, receivings, sales
}

func newTestServiceWithOwn() (*Service, *memClients, *memReceivings, *memSales, *memOwnReceivings) {
	clients := &memClients{}
	receivings := &memReceivings{}
	sales := &memSales{}
	own := &memOwnReceivings{}
	return NewService(clients, receivings, sales, own, testLoc, zap.NewNop()), clients, receivings, sales, own
}

func TestCreateClient(t *testing.T) {
	svc, clients, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, ClientInput{Name: "  Ann ", Note: "north field"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", created.Name)
	assert.Len(t, clients.items, 1)

	_, err = svc.CreateClient(ctx, ClientInput{Name: "ANN"})
	assert.ErrorIs(t, err, models.ErrDuplicateClient)

	_, err = svc.CreateClient(ctx, ClientInput{Name: "   "})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestHiddenClientFreesName(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.CreateClient(ctx, ClientInput{Name: "Ann"})
	require.NoError(t, err)
	require.NoError(t, svc.HideClient(ctx, first.ID))

	visible, err := svc.Clients(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)

	_, err = svc.CreateClient(ctx, ClientInput{Name: "Ann"})
	require.NoError(t, err)

	_, err = svc.RestoreClient(ctx, "Ann")
	assert.ErrorIs(t, err, models.ErrDuplicateClient)
}

func TestRestoreClient(t *testing.T) {
	svc, clients, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, ClientInput{Name: "Bob"})
	require.NoError(t, err)
	require.NoError(t, svc.HideClient(ctx, created.ID))
	require.True(t, clients.items[0].IsHidden)

	restored, err := svc.RestoreClient(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, restored.IsHidden)
	assert.False(t, clients.items[0].IsHidden)

	_, err = svc.RestoreClient(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrClientNotFound)
}

func TestUpdateClient(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	ann, err := svc.CreateClient(ctx, ClientInput{Name: "Ann"})
	require.NoError(t, err)
	_, err = svc.CreateClient(ctx, ClientInput{Name: "Bob"})
	require.NoError(t, err)

	renamed, err := svc.UpdateClient(ctx, ann.ID, ClientInput{Name: "Anna"})
	require.NoError(t, err)
	assert.Equal(t, "Anna", renamed.Name)

	_, err = svc.UpdateClient(ctx, ann.ID, ClientInput{Name: "anna"})
	assert.NoError(t, err, "a client may keep its own name")

	_, err = svc.UpdateClient(ctx, ann.ID, ClientInput{Name: "bob"})
	assert.ErrorIs(t, err, models.ErrDuplicateClient)

	_, err = svc.UpdateClient(ctx, "missing", ClientInput{Name: "Zed"})
	assert.ErrorIs(t, err, models.ErrClientNotFound)
}

func TestCreateReceivingComputesTotals(t *testing.T) {
	svc, _, receivings, _ := newTestService()
	ctx := context.Background()

	ann, err := svc.CreateClient(ctx, ClientInput{Name: "Ann"})
	require.NoError(t, err)

	ts := time.Date(2024, time.June, 1, 9, 0, 0, 0, testLoc)
	saved, err := svc.CreateReceiving(ctx, ReceivingInput{
		ClientID:  ann.ID,
		Records:   []models.Record{{Weight: 5, Price: 4}, {Weight: 5, Price: 6}},
		Timestamp: ts.UnixMilli(),
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, saved.TotalWeight)
	assert.Equal(t, 50.0, saved.TotalPrice)
	assert.Equal(t, "Ann", saved.ClientName())
	assert.True(t, saved.Timestamp.Equal(ts))
	assert.Len(t, receivings.inserted, 1)
}

func TestCreateReceivingValidation(t *testing.T) {
	svc, _, receivings, _ := newTestService()
	ctx := context.Background()
	ts := time.Date(2024, time.June, 1, 9, 0, 0, 0, testLoc).UnixMilli()

	tests := []struct {
		name    string
		in      ReceivingInput
		wantErr error
	}{
		{
			name:    "no client",
			in:      ReceivingInput{Records: []models.Record{{Weight: 1, Price: 1}}, Timestamp: ts},
			wantErr: models.ErrValidation,
		},
		{
			name:    "no records",
			in:      ReceivingInput{ClientID: "c1", Timestamp: ts},
			wantErr: models.ErrValidation,
		},
		{
			name:    "negative weight",
			in:      ReceivingInput{ClientID: "c1", Records: []models.Record{{Weight: -1, Price: 1}}, Timestamp: ts},
			wantErr: models.ErrValidation,
		},
		{
			name:    "no timestamp",
			in:      ReceivingInput{ClientID: "c1", Records: []models.Record{{Weight: 1, Price: 1}}},
			wantErr: models.ErrValidation,
		},
		{
			name:    "unknown client",
			in:      ReceivingInput{ClientID: "c-missing", Records: []models.Record{{Weight: 1, Price: 1}}, Timestamp: ts},
			wantErr: models.ErrClientNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReceiving(ctx, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, receivings.inserted)
}

func TestUpdateReceivingRecomputesTotals(t *testing.T) {
	svc, _, receivings, _ := newTestService()
	ctx := context.Background()

	ann, err := svc.CreateClient(ctx, ClientInput{Name: "Ann"})
	require.NoError(t, err)

	updated, err := svc.UpdateReceiving(ctx, "r1", ReceivingInput{
		ClientID:  ann.ID,
		Records:   []models.Record{{Weight: 2, Price: 10}},
		Timestamp: time.Date(2024, time.June, 2, 9, 0, 0, 0, testLoc).UnixMilli(),
	})
	require.NoError(t, err)

	assert.Equal(t, "r1", updated.ID)
	assert.Equal(t, 20.0, updated.TotalPrice)
	require.Len(t, receivings.updated, 1)
	assert.Equal(t, 2.0, receivings.updated[0].TotalWeight)

	_, err = svc.UpdateReceiving(ctx, "", ReceivingInput{})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestByYearUsesCalendarYear(t *testing.T) {
	svc, _, receivings, sales := newTestService()
	ctx := context.Background()

	_, err := svc.ReceivingsByYear(ctx, 2023)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, testLoc), receivings.start)
	assert.Equal(t, time.Date(2023, time.December, 31, 23, 59, 59, 999_000_000, testLoc), receivings.end)

	_, err = svc.SalesByYear(ctx, 2023)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, testLoc), sales.start)
}

func TestCreateSale(t *testing.T) {
	svc, _, _, sales := newTestService()
	ctx := context.Background()

	saved, err := svc.CreateSale(ctx, SaleInput{Weight: 3, Price: 10, Timestamp: 1717225200000})
	require.NoError(t, err)
	assert.Equal(t, "s1", saved.ID)
	assert.Equal(t, 30.0, saved.Amount())
	assert.Len(t, sales.inserted, 1)

	_, err = svc.CreateSale(ctx, SaleInput{Weight: -3, Price: 10, Timestamp: 1717225200000})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.UpdateSale(ctx, "", SaleInput{Weight: 3, Price: 10, Timestamp: 1717225200000})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestOwnReceivingLifecycle(t *testing.T) {
	svc, _, _, _, own := newTestServiceWithOwn()
	ctx := context.Background()
	ts := time.Date(2024, time.June, 1, 9, 0, 0, 0, testLoc)

	created, err := svc.CreateOwnReceiving(ctx, OwnReceivingInput{Weight: 12.5, Timestamp: ts.UnixMilli()})
	require.NoError(t, err)
	assert.Equal(t, "o1", created.ID)
	assert.True(t, created.Timestamp.Equal(ts))

	updated, err := svc.UpdateOwnReceiving(ctx, created.ID, OwnReceivingInput{Weight: 14, Timestamp: ts.UnixMilli()})
	require.NoError(t, err)
	assert.Equal(t, 14.0, updated.Weight)

	listed, err := svc.OwnReceivings(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 14.0, listed[0].Weight)

	require.NoError(t, svc.DeleteOwnReceiving(ctx, created.ID))
	assert.Empty(t, own.items)
	assert.ErrorIs(t, svc.DeleteOwnReceiving(ctx, created.ID), models.ErrNotFound)
}

func TestOwnReceivingValidation(t *testing.T) {
	svc, _, _, _, own := newTestServiceWithOwn()
	ctx := context.Background()

	tests := []struct {
		name string
		id   string
		in   OwnReceivingInput
	}{
		{name: "negative weight", in: OwnReceivingInput{Weight: -1, Timestamp: 1717225200000}},
		{name: "no timestamp", in: OwnReceivingInput{Weight: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOwnReceiving(ctx, tt.in)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}

	_, err := svc.UpdateOwnReceiving(ctx, "", OwnReceivingInput{Weight: 1, Timestamp: 1717225200000})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, own.items)
}

func TestOwnReceivingsByYear(t *testing.T) {
	svc, _, _, _, own := newTestServiceWithOwn()

	_, err := svc.OwnReceivingsByYear(context.Background(), 2022)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, testLoc), own.start)
	assert.Equal(t, time.Date(2022, time.December, 31, 23, 59, 59, 999_000_000, testLoc), own.end)
}
