// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/franchise-backend/internal/domain/loyalty"
	"github.com/your-org/franchise-backend/internal/pkg/apperrors"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Conflict responses include the authoritative current state so clients
// can resync; reconciliation failures are logged and surface as opaque
// server errors.
func respondError(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": ve.Message,
			"field": ve.Field,
		})
		return
	}

	var ce *apperrors.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusConflict, gin.H{
			"error":         ce.Message,
			"current_state": ce.CurrentState,
		})
		return
	}

	var re *apperrors.ReconciliationError
	if errors.As(err, &re) {
		logrus.WithFields(logrus.Fields{
			"order_id": re.OrderID,
			"stored":   re.Stored,
			"computed": re.Computed,
		}).Error("monetary totals failed reconciliation")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Order totals could not be reconciled",
		})
		return
	}

	if errors.Is(err, loyalty.ErrInsufficientBalance) || errors.Is(err, loyalty.ErrExceedsRedemptionCap) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
	})
}
