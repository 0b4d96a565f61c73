package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var refErr *models.ReferenceError
	var emitErr *models.EmissionError

	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrClientNotFound):
		logger.Warn("request rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrDuplicateClient):
		c.JSON(http.StatusConflict, gin.H{"error": "CLIENT_ALREADY_EXISTS"})
	case errors.As(err, &refErr):
		logger.Error("ledger references unknown client", zap.String("receiving", refErr.ReceivingID), zap.String("client", refErr.ClientID))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": refErr.Error()})
	case errors.As(err, &emitErr):
		logger.Error("failed emitting workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func bindJSON(c *gin.Context, logger *zap.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}
