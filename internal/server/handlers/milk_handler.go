package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairyledger/internal/domain/models"
	"github.com/mamadbah2/dairyledger/internal/repository/mongodb"
)

// MilkHandler serves the milk-entry CRUD surface.
type MilkHandler struct {
	repo   mongodb.MilkRepository
	logger *zap.Logger
}

// NewMilkHandler constructs the HTTP handler adapter for milk entries.
func NewMilkHandler(repo mongodb.MilkRepository, logger *zap.Logger) *MilkHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MilkHandler{repo: repo, logger: logger}
}

// Create stores a new entry. The amount is always recomputed from qty and
// rate, never taken from the payload.
func (h *MilkHandler) Create(c *gin.Context) {
	var in models.MilkEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid milk entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	entry, err := h.repo.Create(c.Request.Context(), in.ToEntry())
	if err != nil {
		respondStoreError(c, h.logger, "create entry", err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// List returns all entries, newest date first.
func (h *MilkHandler) List(c *gin.Context) {
	entries, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, h.logger, "list entries", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ListByDate returns the entries collected on a single date.
func (h *MilkHandler) ListByDate(c *gin.Context) {
	date, ok := dateParam(c, c.Param("date"), "date")
	if !ok {
		return
	}

	entries, err := h.repo.FindByDate(c.Request.Context(), date)
	if err != nil {
		respondStoreError(c, h.logger, "list entries", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ListByMonth returns the entries of one calendar month, date ascending.
func (h *MilkHandler) ListByMonth(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	from, to := models.MonthRange(year, month)
	entries, err := h.repo.FindByDateRange(c.Request.Context(), from, to)
	if err != nil {
		respondStoreError(c, h.logger, "list entries", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Update replaces the stored entry with the payload, recomputing the amount.
func (h *MilkHandler) Update(c *gin.Context) {
	var in models.MilkEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid milk entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	entry, err := h.repo.Update(c.Request.Context(), c.Param("id"), in.ToEntry())
	if err != nil {
		respondStoreError(c, h.logger, "update entry", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Delete removes one entry by id.
func (h *MilkHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, h.logger, "delete entry", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// BulkDelete removes every listed id in one store call. Ids that no longer
// exist are skipped, so replaying a delete list is harmless.
func (h *MilkHandler) BulkDelete(c *gin.Context) {
	var req models.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid bulk delete payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	deleted, err := h.repo.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		respondStoreError(c, h.logger, "bulk delete entries", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted", "deleted_count": deleted})
}
