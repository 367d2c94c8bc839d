package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/hamrofarm/kukhura/internal/config"
	"github.com/hamrofarm/kukhura/internal/repository/sheets"
	"github.com/hamrofarm/kukhura/internal/repository/sqlite"
	"github.com/hamrofarm/kukhura/internal/scheduler"
	"github.com/hamrofarm/kukhura/internal/server/handlers"
	"github.com/hamrofarm/kukhura/internal/server/router"
	authsvc "github.com/hamrofarm/kukhura/internal/service/auth"
	farmsvc "github.com/hamrofarm/kukhura/internal/service/farm"
	reportsvc "github.com/hamrofarm/kukhura/internal/service/report"
	syncsvc "github.com/hamrofarm/kukhura/internal/service/sync"
	"github.com/hamrofarm/kukhura/pkg/clients/cloudsync"
	"github.com/hamrofarm/kukhura/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		baseLogger.Fatal("failed to open database", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			baseLogger.Error("failed to close database", zap.Error(err))
		}
	}()

	farmService := farmsvc.NewService(store, baseLogger.Named("svc.farm"))
	authService := authsvc.NewService(store, baseLogger.Named("svc.auth"))

	// Cloud sync is optional; without a configured backup server the sync
	// endpoints answer 503.
	var cloudClient cloudsync.Client
	if cfg.Cloud.Enabled() {
		cloudClient = cloudsync.NewClient(cfg.Cloud)
		baseLogger.Info("cloud sync enabled", zap.String("base_url", cfg.Cloud.BaseURL))
	} else {
		baseLogger.Info("cloud sync disabled, no backup server configured")
	}
	syncService := syncsvc.NewService(store, cloudClient, baseLogger.Named("svc.sync"))

	routerHandlers := router.Handlers{
		Farm:     handlers.NewFarmHandler(farmService, baseLogger.Named("handlers.farm")),
		Auth:     handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Sync:     handlers.NewSyncHandler(syncService, baseLogger.Named("handlers.sync")),
		Calendar: handlers.NewCalendarHandler(),
	}

	// Sheets export is optional as well; its route is mounted only when a
	// spreadsheet is configured.
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportService := reportsvc.NewService(store, farmService, sheetsRepo, baseLogger.Named("svc.report"))
		routerHandlers.Report = handlers.NewReportHandler(reportService, baseLogger.Named("handlers.report"))
		baseLogger.Info("sheet report export enabled", zap.String("spreadsheet_id", cfg.Sheets.SpreadsheetID))
	}

	engine := router.New(routerHandlers, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(*cfg, farmService, syncService, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

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
