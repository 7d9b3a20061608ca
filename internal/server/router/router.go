package router

import (
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairyledger/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(milk *handlers.MilkHandler, health *handlers.HealthHandler, reports *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	registerTagNames()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/milk-entry", milk.Create)
	r.GET("/milk-entry", milk.List)
	r.GET("/milk-entry/by-date/:date", milk.ListByDate)
	r.GET("/milk-entry/by-month/:year/:month", milk.ListByMonth)
	r.PUT("/milk-entry/:id", milk.Update)
	r.DELETE("/milk-entry/:id", milk.Delete)
	r.POST("/milk-entry/bulk-delete", milk.BulkDelete)

	r.GET("/reports/daily-total/:date", reports.DailyTotal)
	r.GET("/reports/monthly/:year/:month", reports.MonthlyTotal)
	r.GET("/charts/daily/:date", reports.DailyChart)
	r.GET("/charts/monthly/:year/:month", reports.MonthlyChart)
	r.GET("/charts/range", reports.RangeChart)
	r.GET("/reports/export-excel", reports.ExportAll)
	r.GET("/reports/export-excel/by-month/:year/:month", reports.ExportByMonth)
	r.GET("/reports/export-excel/by-range", reports.ExportByRange)

	r.POST("/cow-health", health.Create)
	r.GET("/cow-health", health.List)
	r.GET("/cow-health/by-month/:year/:month", health.ListByMonth)
	r.PUT("/cow-health/:id", health.Update)
	r.DELETE("/cow-health/:id", health.Delete)
	r.POST("/cow-health/bulk-delete", health.BulkDelete)
	r.GET("/cow-health/export-excel/:year/:month", reports.ExportHealthByMonth)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// registerTagNames makes the binding validator report json field names, so
// validation rejects can name the missing field as clients know it.
func registerTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
