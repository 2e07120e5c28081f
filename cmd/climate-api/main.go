package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/climate-normals-api/internal/adapter/http"
	"github.com/couchcryptid/climate-normals-api/internal/config"
	"github.com/couchcryptid/climate-normals-api/internal/dataset"
	"github.com/couchcryptid/climate-normals-api/internal/observability"
	"github.com/couchcryptid/climate-normals-api/internal/query"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Datasets are loaded once and never reloaded; a load failure is fatal.
	data, err := dataset.Load(ctx, cfg.ClimateDataPath, cfg.RainfallDataPath, logger, metrics)
	if err != nil {
		logger.Error("failed to load datasets", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Ready:          data,
		Catalog:        data,
		Climate:        query.NewClimateService(data.Climate, cfg.StatsCacheTTL, metrics),
		Rainfall:       query.NewRainfallService(data.Rainfall),
		Logger:         logger,
		Metrics:        metrics,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
