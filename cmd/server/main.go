// Package main runs the dashboard API server:
// - HTTP JSON endpoints for filter controls, views, reports and CSV tables
// - WebSocket filter sessions
// - Prometheus metrics and health check
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"vehicle-market-lab/internal/api"
	"vehicle-market-lab/internal/app"
	"vehicle-market-lab/internal/config"
	"vehicle-market-lab/internal/dashboard"
	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/logging"
	"vehicle-market-lab/internal/recordstore"
)

func main() {
	// Load .env file if exists; environment and defaults via viper
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Parse flags (config values as defaults)
	httpAddr := flag.String("http-addr", cfg.HTTPAddr, "HTTP listen address")
	dataSource := flag.String("data-source", string(cfg.DataSource), "Data source: csv, parquet, postgres, clickhouse, memory")
	dataPath := flag.String("data-path", cfg.DataPath, "Dataset file for csv and parquet sources")
	warmup := flag.Bool("warmup", true, "Load the record store before accepting requests")
	flag.Parse()

	cfg.HTTPAddr = *httpAddr
	cfg.DataSource = domain.SourceKind(strings.ToLower(*dataSource))
	cfg.DataPath = *dataPath

	logger := logging.Must(cfg.LogDev)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, closeSource, err := app.OpenSource(ctx, cfg)
	if err != nil {
		logger.Fatal("open data source", zap.Error(err))
	}
	defer closeSource()

	views, closeViews, err := app.OpenViewCache(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open view cache", zap.Error(err))
	}
	defer closeViews()

	cache := recordstore.NewCache(source, logger)
	service := dashboard.NewService(cache, views, logger)

	if *warmup {
		store, err := cache.Get(ctx)
		if err != nil {
			logger.Fatal("load record store", zap.Error(err))
		}
		logger.Info("record store ready",
			zap.Stringer("source", store.Source()),
			zap.Int("rows", store.Len()),
		)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewServer(service, logger, api.Options{IncludeRowsLimit: cfg.IncludeRowsLimit}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case sig := <-sigCh:
		logger.Info("received signal, initiating graceful shutdown", zap.Stringer("signal", sig))
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
