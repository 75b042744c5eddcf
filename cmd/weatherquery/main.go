package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/weather-query-service/internal/adapter/http"
	"github.com/couchcryptid/weather-query-service/internal/config"
	"github.com/couchcryptid/weather-query-service/internal/dataset"
	"github.com/couchcryptid/weather-query-service/internal/index"
	"github.com/couchcryptid/weather-query-service/internal/observability"
	"github.com/couchcryptid/weather-query-service/internal/query"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Load the dataset and build the indexes strictly before the listener
	// starts: a failed parse must abort startup, and queries must never
	// observe unbuilt indexes.
	store := dataset.NewStore(cfg.DataPath, logger)
	records, err := store.Records()
	if err != nil {
		logger.Error("failed to load weather dataset", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}

	indexes, err := index.Build(records)
	if err != nil {
		logger.Error("failed to build indexes", "error", err)
		os.Exit(1)
	}
	logger.Info("built search indexes", "records", indexes.Len())

	metrics.DatasetRecords.Set(float64(indexes.Len()))
	metrics.DatasetLoadedAt.Set(float64(store.LoadedAt().Unix()))

	planner := query.NewPlanner(indexes, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, planner, store, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
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
