package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairyledger/internal/config"
	"github.com/mamadbah2/dairyledger/internal/repository/mongodb"
	"github.com/mamadbah2/dairyledger/internal/server/handlers"
	"github.com/mamadbah2/dairyledger/internal/server/router"
	exportsvc "github.com/mamadbah2/dairyledger/internal/service/export"
	reportingsvc "github.com/mamadbah2/dairyledger/internal/service/reporting"
	"github.com/mamadbah2/dairyledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	milkRepo := store.Milk()
	healthRepo := store.Health()

	reportingSvc := reportingsvc.NewService(milkRepo, baseLogger.Named("svc.reporting"))
	exportSvc := exportsvc.NewService(baseLogger.Named("svc.export"))

	milkHandler := handlers.NewMilkHandler(milkRepo, baseLogger.Named("handlers.milk"))
	healthHandler := handlers.NewHealthHandler(healthRepo, baseLogger.Named("handlers.health"))
	reportHandler := handlers.NewReportHandler(reportingSvc, exportSvc, milkRepo, healthRepo, baseLogger.Named("handlers.reports"))

	engine := router.New(milkHandler, healthHandler, reportHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
