package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockpilot/backend-go/internal/alert"
	"github.com/stockpilot/backend-go/internal/api"
	"github.com/stockpilot/backend-go/internal/cache"
	"github.com/stockpilot/backend-go/internal/config"
	"github.com/stockpilot/backend-go/internal/repository/postgres"
	"github.com/stockpilot/backend-go/internal/service"
	"github.com/stockpilot/backend-go/internal/storage"
	"github.com/stockpilot/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	alertCache, err := cache.NewAlertCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Alert cache unavailable, continuing without caching")
		alertCache = cache.NewNoopAlertCache()
	}

	var reportStorage storage.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		s3, err := storage.NewS3Client(cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Object storage unavailable, report archiving disabled")
		} else {
			reportStorage = s3
		}
	}

	snapshots := postgres.NewSnapshotRepository(db.DB)
	engine := alert.NewEngine(snapshots, cfg.Alerts.WindowDays, cfg.Alerts.DefaultThreshold)

	alertService := service.NewAlertService(engine, alertCache, cfg.Alerts.WindowDays)
	productService := service.NewProductService(postgres.NewProductRepository(db))
	reportService := service.NewReportService(alertService, reportStorage)

	router := api.NewRouter(&api.Services{
		AlertService:   alertService,
		ProductService: productService,
		ReportService:  reportService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
