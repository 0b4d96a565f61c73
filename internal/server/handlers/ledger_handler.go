package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
	"github.com/mamadbah2/malynka/internal/service/ledger"
)

// LedgerService is what the CRUD endpoints need from the ledger layer.
type LedgerService interface {
	Clients(ctx context.Context) ([]models.Client, error)
	CreateClient(ctx context.Context, in ledger.ClientInput) (models.Client, error)
	UpdateClient(ctx context.Context, id string, in ledger.ClientInput) (models.Client, error)
	HideClient(ctx context.Context, id string) error
	RestoreClient(ctx context.Context, name string) (models.Client, error)

	Receivings(ctx context.Context) ([]models.Receiving, error)
	ReceivingsByYear(ctx context.Context, year int) ([]models.Receiving, error)
	CreateReceiving(ctx context.Context, in ledger.ReceivingInput) (models.Receiving, error)
	UpdateReceiving(ctx context.Context, id string, in ledger.ReceivingInput) (models.Receiving, error)
	DeleteReceiving(ctx context.Context, id string) error

	Sales(ctx context.Context) ([]models.Sale, error)
	SalesByYear(ctx context.Context, year int) ([]models.Sale, error)
	CreateSale(ctx context.Context, in ledger.SaleInput) (models.Sale, error)
	UpdateSale(ctx context.Context, id string, in ledger.SaleInput) (models.Sale, error)
	DeleteSale(ctx context.Context, id string) error

	OwnReceivings(ctx context.Context) ([]models.OwnReceiving, error)
	OwnReceivingsByYear(ctx context.Context, year int) ([]models.OwnReceiving, error)
	CreateOwnReceiving(ctx context.Context, in ledger.OwnReceivingInput) (models.OwnReceiving, error)
	UpdateOwnReceiving(ctx context.Context, id string, in ledger.OwnReceivingInput) (models.OwnReceiving, error)
	DeleteOwnReceiving(ctx context.Context, id string) error
}

// LedgerHandler serves clients, receivings and sales.
type LedgerHandler struct {
	svc    LedgerService
	logger *zap.Logger
}

// NewLedgerHandler constructs the ledger HTTP adapter.
func NewLedgerHandler(svc LedgerService, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{svc: svc, logger: logger}
}

type updateClientRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Note string `json:"note"`
}

type restoreClientRequest struct {
	Name string `json:"name" binding:"required"`
}

type receivingPayload struct {
	ClientID  string          `json:"client" binding:"required"`
	Records   []models.Record `json:"records" binding:"required,min=1,dive"`
	Timestamp int64           `json:"timestamp" binding:"required"`
}

func (p receivingPayload) input() ledger.ReceivingInput {
	return ledger.ReceivingInput{ClientID: p.ClientID, Records: p.Records, Timestamp: p.Timestamp}
}

type updateReceivingRequest struct {
	ID      string           `json:"id" binding:"required"`
	NewData receivingPayload `json:"newData"`
}

type salePayload struct {
	Weight    float64 `json:"weight" binding:"gte=0"`
	Price     float64 `json:"price" binding:"gte=0"`
	Timestamp int64   `json:"timestamp" binding:"required"`
}

func (p salePayload) input() ledger.SaleInput {
	return ledger.SaleInput{Weight: p.Weight, Price: p.Price, Timestamp: p.Timestamp}
}

type updateSaleRequest struct {
	ID      string      `json:"id" binding:"required"`
	NewData salePayload `json:"newData"`
}

type ownReceivingPayload struct {
	Weight    float64 `json:"weight" binding:"gte=0"`
	Timestamp int64   `json:"timestamp" binding:"required"`
}

func (p ownReceivingPayload) input() ledger.OwnReceivingInput {
	return ledger.OwnReceivingInput{Weight: p.Weight, Timestamp: p.Timestamp}
}

type updateOwnReceivingRequest struct {
	ID      string              `json:"id" binding:"required"`
	NewData ownReceivingPayload `json:"newData"`
}

// ListClients returns visible clients.
func (h *LedgerHandler) ListClients(c *gin.Context) {
	clients, err := h.svc.Clients(c.Request.Context())
	h.reply(c, http.StatusOK, clients, err)
}

// CreateClient adds a client.
func (h *LedgerHandler) CreateClient(c *gin.Context) {
	var req ledger.ClientInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	client, err := h.svc.CreateClient(c.Request.Context(), req)
	h.reply(c, http.StatusCreated, client, err)
}

// UpdateClient renames a client.
func (h *LedgerHandler) UpdateClient(c *gin.Context) {
	var req updateClientRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	client, err := h.svc.UpdateClient(c.Request.Context(), req.ID, ledger.ClientInput{Name: req.Name, Note: req.Note})
	h.reply(c, http.StatusOK, client, err)
}

// RestoreClient un-hides a client by name.
func (h *LedgerHandler) RestoreClient(c *gin.Context) {
	var req restoreClientRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	client, err := h.svc.RestoreClient(c.Request.Context(), req.Name)
	h.reply(c, http.StatusOK, client, err)
}

// HideClient hides a client; its history stays.
func (h *LedgerHandler) HideClient(c *gin.Context) {
	err := h.svc.HideClient(c.Request.Context(), c.Param("id"))
	h.noContent(c, err)
}

// ListReceivings returns every receiving, newest first.
func (h *LedgerHandler) ListReceivings(c *gin.Context) {
	receivings, err := h.svc.Receivings(c.Request.Context())
	h.reply(c, http.StatusOK, receivings, err)
}

// ReceivingsByYear returns receivings of one year.
func (h *LedgerHandler) ReceivingsByYear(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	receivings, err := h.svc.ReceivingsByYear(c.Request.Context(), year)
	h.reply(c, http.StatusOK, receivings, err)
}

// CreateReceiving records a delivery.
func (h *LedgerHandler) CreateReceiving(c *gin.Context) {
	var req receivingPayload
	if !bindJSON(c, h.logger, &req) {
		return
	}
	receiving, err := h.svc.CreateReceiving(c.Request.Context(), req.input())
	h.reply(c, http.StatusCreated, receiving, err)
}

// UpdateReceiving replaces a delivery.
func (h *LedgerHandler) UpdateReceiving(c *gin.Context) {
	var req updateReceivingRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	receiving, err := h.svc.UpdateReceiving(c.Request.Context(), req.ID, req.NewData.input())
	h.reply(c, http.StatusOK, receiving, err)
}

// DeleteReceiving removes a delivery.
func (h *LedgerHandler) DeleteReceiving(c *gin.Context) {
	h.noContent(c, h.svc.DeleteReceiving(c.Request.Context(), c.Param("id")))
}

// ListSales returns every sale, newest first.
func (h *LedgerHandler) ListSales(c *gin.Context) {
	sales, err := h.svc.Sales(c.Request.Context())
	h.reply(c, http.StatusOK, sales, err)
}

// SalesByYear returns sales of one year.
func (h *LedgerHandler) SalesByYear(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	sales, err := h.svc.SalesByYear(c.Request.Context(), year)
	h.reply(c, http.StatusOK, sales, err)
}

// CreateSale records a sale.
func (h *LedgerHandler) CreateSale(c *gin.Context) {
	var req salePayload
	if !bindJSON(c, h.logger, &req) {
		return
	}
	sale, err := h.svc.CreateSale(c.Request.Context(), req.input())
	h.reply(c, http.StatusCreated, sale, err)
}

// UpdateSale replaces a sale.
func (h *LedgerHandler) UpdateSale(c *gin.Context) {
	var req updateSaleRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	sale, err := h.svc.UpdateSale(c.Request.Context(), req.ID, req.NewData.input())
	h.reply(c, http.StatusOK, sale, err)
}

// DeleteSale removes a sale.
func (h *LedgerHandler) DeleteSale(c *gin.Context) {
	h.noContent(c, h.svc.DeleteSale(c.Request.Context(), c.Param("id")))
}

// ListOwnReceivings returns every own receiving, newest first.
func (h *LedgerHandler) ListOwnReceivings(c *gin.Context) {
	own, err := h.svc.OwnReceivings(c.Request.Context())
	h.reply(c, http.StatusOK, own, err)
}

// OwnReceivingsByYear returns own receivings of one year.
func (h *LedgerHandler) OwnReceivingsByYear(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	own, err := h.svc.OwnReceivingsByYear(c.Request.Context(), year)
	h.reply(c, http.StatusOK, own, err)
}

// CreateOwnReceiving records an own-harvest weight.
func (h *LedgerHandler) CreateOwnReceiving(c *gin.Context) {
	var req ownReceivingPayload
	if !bindJSON(c, h.logger, &req) {
		return
	}
	own, err := h.svc.CreateOwnReceiving(c.Request.Context(), req.input())
	h.reply(c, http.StatusCreated, own, err)
}

// UpdateOwnReceiving replaces an own receiving.
func (h *LedgerHandler) UpdateOwnReceiving(c *gin.Context) {
	var req updateOwnReceivingRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	own, err := h.svc.UpdateOwnReceiving(c.Request.Context(), req.ID, req.NewData.input())
	h.reply(c, http.StatusOK, own, err)
}

// DeleteOwnReceiving removes an own receiving.
func (h *LedgerHandler) DeleteOwnReceiving(c *gin.Context) {
	h.noContent(c, h.svc.DeleteOwnReceiving(c.Request.Context(), c.Param("id")))
}

func (h *LedgerHandler) reply(c *gin.Context, status int, body any, err error) {
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(status, body)
}

func (h *LedgerHandler) noContent(c *gin.Context, err error) {
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return 0, false
	}
	return year, true
}
