package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairyledger/internal/domain/models"
	"github.com/mamadbah2/dairyledger/internal/repository/mongodb"
)

// bindErrorMessage turns a binding failure into a client-facing message.
// Validation failures name the first missing field; the field names come
// from the json tags via the validator's tag-name hook in the router.
func bindErrorMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Sprintf("missing required field: %s", ve[0].Field())
	}
	return "invalid request body"
}

// respondStoreError maps repository errors onto the response taxonomy:
// malformed id -> 400, unknown id -> 404, anything else -> 500.
func respondStoreError(c *gin.Context, logger *zap.Logger, action string, err error) {
	switch {
	case errors.Is(err, mongodb.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
	case errors.Is(err, mongodb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		logger.Error("store operation failed", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": action + " failed"})
	}
}

// dateParam extracts and validates a calendar-date path or query parameter.
// On failure it writes the 400 response and reports false.
func dateParam(c *gin.Context, value, name string) (string, bool) {
	if !models.ValidDate(value) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s, expected YYYY-MM-DD", name)})
		return "", false
	}
	return value, true
}

// yearMonthParams extracts the :year/:month path parameters. On failure it
// writes the 400 response and reports false.
func yearMonthParams(c *gin.Context) (int, int, bool) {
	year, yerr := strconv.Atoi(c.Param("year"))
	month, merr := strconv.Atoi(c.Param("month"))
	if yerr != nil || merr != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month"})
		return 0, 0, false
	}
	return year, month, true
}
