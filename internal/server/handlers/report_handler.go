package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairyledger/internal/domain/models"
	"github.com/mamadbah2/dairyledger/internal/repository/mongodb"
	"github.com/mamadbah2/dairyledger/internal/service/export"
	"github.com/mamadbah2/dairyledger/internal/service/reporting"
)

// ReportHandler serves the aggregated reports, chart groupings and
// spreadsheet exports.
type ReportHandler struct {
	reports *reporting.Service
	export  *export.Service
	milk    mongodb.MilkRepository
	health  mongodb.HealthRepository
	logger  *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter for reports.
func NewReportHandler(reports *reporting.Service, exportSvc *export.Service, milk mongodb.MilkRepository, health mongodb.HealthRepository, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, export: exportSvc, milk: milk, health: health, logger: logger}
}

// DailyTotal returns the qty/amount sums for a single date.
func (h *ReportHandler) DailyTotal(c *gin.Context) {
	date, ok := dateParam(c, c.Param("date"), "date")
	if !ok {
		return
	}

	total, err := h.reports.DailyTotal(c.Request.Context(), date)
	if err != nil {
		respondStoreError(c, h.logger, "daily total", err)
		return
	}
	c.JSON(http.StatusOK, total)
}

// MonthlyTotal returns the qty/amount sums for a calendar month.
func (h *ReportHandler) MonthlyTotal(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	total, err := h.reports.MonthlyTotal(c.Request.Context(), year, month)
	if err != nil {
		respondStoreError(c, h.logger, "monthly total", err)
		return
	}
	c.JSON(http.StatusOK, total)
}

// DailyChart returns one date's entries grouped by shift.
func (h *ReportHandler) DailyChart(c *gin.Context) {
	date, ok := dateParam(c, c.Param("date"), "date")
	if !ok {
		return
	}

	groups, err := h.reports.DailyChart(c.Request.Context(), date)
	if err != nil {
		respondStoreError(c, h.logger, "daily chart", err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// MonthlyChart returns a month's entries grouped per day, date ascending.
func (h *ReportHandler) MonthlyChart(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	groups, err := h.reports.MonthlyChart(c.Request.Context(), year, month)
	if err != nil {
		respondStoreError(c, h.logger, "monthly chart", err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// RangeChart returns an inclusive date range's entries grouped per day.
func (h *ReportHandler) RangeChart(c *gin.Context) {
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	groups, err := h.reports.RangeChart(c.Request.Context(), from, to)
	if err != nil {
		respondStoreError(c, h.logger, "range chart", err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// ExportAll streams every milk entry as a spreadsheet download.
func (h *ReportHandler) ExportAll(c *gin.Context) {
	entries, err := h.milk.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, h.logger, "export entries", err)
		return
	}
	h.exportMilk(c, entries, "milk_report.xlsx")
}

// ExportByMonth streams one calendar month's milk entries as a spreadsheet.
func (h *ReportHandler) ExportByMonth(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	from, to := models.MonthRange(year, month)
	entries, err := h.milk.FindByDateRange(c.Request.Context(), from, to)
	if err != nil {
		respondStoreError(c, h.logger, "export entries", err)
		return
	}
	h.exportMilk(c, entries, fmt.Sprintf("milk_report_%d_%02d.xlsx", year, month))
}

// ExportByRange streams an inclusive date range's milk entries.
func (h *ReportHandler) ExportByRange(c *gin.Context) {
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	entries, err := h.milk.FindByDateRange(c.Request.Context(), from, to)
	if err != nil {
		respondStoreError(c, h.logger, "export entries", err)
		return
	}
	h.exportMilk(c, entries, fmt.Sprintf("milk_report_%s_%s.xlsx", from, to))
}

// ExportHealthByMonth streams one calendar month's cow-health logs.
func (h *ReportHandler) ExportHealthByMonth(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	from, to := models.MonthRange(year, month)
	logs, err := h.health.FindByDateRange(c.Request.Context(), from, to)
	if err != nil {
		respondStoreError(c, h.logger, "export logs", err)
		return
	}

	f, err := h.export.CowHealthReport(logs)
	if err != nil {
		h.logger.Error("failed building cow health report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	h.writeWorkbook(c, f, fmt.Sprintf("cow_health_report_%d_%02d.xlsx", year, month))
}

func (h *ReportHandler) exportMilk(c *gin.Context, entries []models.MilkEntry, filename string) {
	f, err := h.export.MilkReport(entries)
	if err != nil {
		h.logger.Error("failed building milk report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	h.writeWorkbook(c, f, filename)
}

func (h *ReportHandler) writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if _, err := f.WriteTo(c.Writer); err != nil {
		h.logger.Error("failed streaming workbook", zap.String("filename", filename), zap.Error(err))
	}
}

// rangeParams extracts and validates the from/to query parameters.
func rangeParams(c *gin.Context) (string, string, bool) {
	from, ok := dateParam(c, c.Query("from"), "from")
	if !ok {
		return "", "", false
	}
	to, ok := dateParam(c, c.Query("to"), "to")
	if !ok {
		return "", "", false
	}
	return from, to, true
}
