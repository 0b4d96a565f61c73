package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
	"github.com/mamadbah2/malynka/internal/service/ledger"
)

// fakeLedger overrides the calls under test; anything else panics.
type fakeLedger struct {
	LedgerService

	receiving   ledger.ReceivingInput
	receivingID string
	client      ledger.ClientInput
	own         ledger.OwnReceivingInput
	deleted     string
	err         error
}

func (f *fakeLedger) CreateClient(_ context.Context, in ledger.ClientInput) (models.Client, error) {
	f.client = in
	return models.Client{ID: "c1", Name: in.Name}, f.err
}

func (f *fakeLedger) CreateReceiving(_ context.Context, in ledger.ReceivingInput) (models.Receiving, error) {
	f.receiving = in
	r := models.Receiving{ID: "r1", ClientID: in.ClientID}
	r.SetRecords(in.Records)
	return r, f.err
}

func (f *fakeLedger) UpdateReceiving(_ context.Context, id string, in ledger.ReceivingInput) (models.Receiving, error) {
	f.receivingID, f.receiving = id, in
	return models.Receiving{ID: id}, f.err
}

func (f *fakeLedger) DeleteSale(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeLedger) HideClient(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeLedger) CreateOwnReceiving(_ context.Context, in ledger.OwnReceivingInput) (models.OwnReceiving, error) {
	f.own = in
	return models.OwnReceiving{ID: "o1", Weight: in.Weight}, f.err
}

func newLedgerEngine(svc LedgerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewLedgerHandler(svc, zap.NewNop())

	r := gin.New()
	r.POST("/clients", h.CreateClient)
	r.DELETE("/clients/:id", h.HideClient)
	r.POST("/receivings", h.CreateReceiving)
	r.PUT("/receivings", h.UpdateReceiving)
	r.DELETE("/sales/:id", h.DeleteSale)
	r.POST("/own_receivings", h.CreateOwnReceiving)
	return r
}

func send(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReceiving(t *testing.T) {
	svc := &fakeLedger{}
	w := send(newLedgerEngine(svc), http.MethodPost, "/receivings",
		`{"client":"c1","records":[{"weight":5,"price":4},{"weight":5,"price":6}],"timestamp":1717225200000}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "c1", svc.receiving.ClientID)
	assert.Len(t, svc.receiving.Records, 2)
	assert.Contains(t, w.Body.String(), `"totalPrice":50`)
}

func TestCreateReceivingRejectsMalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{`},
		{name: "no records", body: `{"client":"c1","records":[],"timestamp":1717225200000}`},
		{name: "negative price", body: `{"client":"c1","records":[{"weight":5,"price":-4}],"timestamp":1717225200000}`},
		{name: "no timestamp", body: `{"client":"c1","records":[{"weight":5,"price":4}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeLedger{}
			w := send(newLedgerEngine(svc), http.MethodPost, "/receivings", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, svc.receiving.ClientID)
		})
	}
}

func TestUpdateReceiving(t *testing.T) {
	svc := &fakeLedger{}
	w := send(newLedgerEngine(svc), http.MethodPut, "/receivings",
		`{"id":"r7","newData":{"client":"c1","records":[{"weight":1,"price":2}],"timestamp":1717225200000}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r7", svc.receivingID)
	assert.Equal(t, int64(1717225200000), svc.receiving.Timestamp)
}

func TestLedgerErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		err    error
		want   int
	}{
		{name: "duplicate client", method: http.MethodPost, target: "/clients", body: `{"name":"Ann"}`, err: models.ErrDuplicateClient, want: http.StatusConflict},
		{name: "unknown client", method: http.MethodPost, target: "/receivings", body: `{"client":"c9","records":[{"weight":1,"price":1}],"timestamp":1}`, err: models.ErrClientNotFound, want: http.StatusBadRequest},
		{name: "missing sale", method: http.MethodDelete, target: "/sales/s9", err: models.ErrNotFound, want: http.StatusNotFound},
		{name: "sale deleted", method: http.MethodDelete, target: "/sales/s1", want: http.StatusNoContent},
		{name: "client hidden", method: http.MethodDelete, target: "/clients/c1", want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(newLedgerEngine(&fakeLedger{err: tt.err}), tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDuplicateClientBody(t *testing.T) {
	w := send(newLedgerEngine(&fakeLedger{err: models.ErrDuplicateClient}), http.MethodPost, "/clients", `{"name":"Ann"}`)

	assert.JSONEq(t, `{"error":"CLIENT_ALREADY_EXISTS"}`, w.Body.String())
}

func TestCreateOwnReceiving(t *testing.T) {
	svc := &fakeLedger{}
	r := newLedgerEngine(svc)

	w := send(r, http.MethodPost, "/own_receivings", `{"weight":12.5,"timestamp":1717225200000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 12.5, svc.own.Weight)
	assert.Equal(t, int64(1717225200000), svc.own.Timestamp)

	rejected := &fakeLedger{}
	w = send(newLedgerEngine(rejected), http.MethodPost, "/own_receivings", `{"weight":-1,"timestamp":1717225200000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, rejected.own.Timestamp)
}
