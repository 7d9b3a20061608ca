package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairyledger/internal/domain/models"
	"github.com/mamadbah2/dairyledger/internal/repository/mongodb"
)

// HealthHandler serves the cow-health log surface.
type HealthHandler struct {
	repo   mongodb.HealthRepository
	logger *zap.Logger
}

// NewHealthHandler constructs the HTTP handler adapter for cow-health logs.
func NewHealthHandler(repo mongodb.HealthRepository, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{repo: repo, logger: logger}
}

// Create stores a new log. Every field except note is required; a missing
// field rejects the request naming that field, before any store call.
func (h *HealthHandler) Create(c *gin.Context) {
	var in models.CowHealthInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid cow health payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	log, err := h.repo.Create(c.Request.Context(), in.ToLog())
	if err != nil {
		respondStoreError(c, h.logger, "create log", err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// List returns all logs, newest date first.
func (h *HealthHandler) List(c *gin.Context) {
	logs, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, h.logger, "list logs", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ListByMonth returns the logs of one calendar month, date ascending.
func (h *HealthHandler) ListByMonth(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	from, to := models.MonthRange(year, month)
	logs, err := h.repo.FindByDateRange(c.Request.Context(), from, to)
	if err != nil {
		respondStoreError(c, h.logger, "list logs", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Update replaces the stored log with the payload.
func (h *HealthHandler) Update(c *gin.Context) {
	var in models.CowHealthInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid cow health payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	log, err := h.repo.Update(c.Request.Context(), c.Param("id"), in.ToLog())
	if err != nil {
		respondStoreError(c, h.logger, "update log", err)
		return
	}

	c.JSON(http.StatusOK, log)
}

// Delete removes one log by id.
func (h *HealthHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, h.logger, "delete log", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// BulkDelete removes every listed id in one store call.
func (h *HealthHandler) BulkDelete(c *gin.Context) {
	var req models.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid bulk delete payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	deleted, err := h.repo.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		respondStoreError(c, h.logger, "bulk delete logs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted", "deleted_count": deleted})
}
