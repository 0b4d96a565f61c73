package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
	"github.com/mamadbah2/malynka/internal/service/reporting"
)

// ReportService is what the report endpoints need from the reporting layer.
type ReportService interface {
	Location() *time.Location
	Stats(ctx context.Context) (models.StatsSummary, error)
	StatsByYear(ctx context.Context, year int) (models.StatsSummary, error)
	Years(ctx context.Context) ([]int, error)
	RangeStats(ctx context.Context, window reporting.Window, clientID string) (models.StatsSummary, error)
	RangeWorkbook(ctx context.Context, window reporting.Window, clientID string) (*reporting.Workbook, error)
}

// ReportHandler serves statistics and spreadsheet downloads.
type ReportHandler struct {
	svc    ReportService
	logger *zap.Logger
	now    func() time.Time
}

// NewReportHandler constructs the report HTTP adapter.
func NewReportHandler(svc ReportService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger, now: time.Now}
}

// Stats returns the summary of the whole ledger.
func (h *ReportHandler) Stats(c *gin.Context) {
	summary, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// StatsByYear returns the summary of one calendar year.
func (h *ReportHandler) StatsByYear(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}

	summary, err := h.svc.StatsByYear(c.Request.Context(), year)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Years lists report years, newest first.
func (h *ReportHandler) Years(c *gin.Context) {
	years, err := h.svc.Years(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, years)
}

// RangeStats returns the summary of the slice the range workbook renders.
func (h *ReportHandler) RangeStats(c *gin.Context) {
	window, ok := h.window(c)
	if !ok {
		return
	}

	summary, err := h.svc.RangeStats(c.Request.Context(), window, c.Query("client"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Range streams the xlsx report for ?start=&end=&client= as an attachment.
func (h *ReportHandler) Range(c *gin.Context) {
	window, ok := h.window(c)
	if !ok {
		return
	}

	workbook, err := h.svc.RangeWorkbook(c.Request.Context(), window, c.Query("client"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", workbook.Filename))
	c.Data(http.StatusOK, workbook.ContentType, workbook.Content)
}

// window validates the query range before any store is touched.
func (h *ReportHandler) window(c *gin.Context) (reporting.Window, bool) {
	window, err := reporting.ParseWindow(c.Query("start"), c.Query("end"), h.now(), h.svc.Location())
	if err != nil {
		respondError(c, h.logger, err)
		return reporting.Window{}, false
	}
	return window, true
}
