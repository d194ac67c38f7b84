// Command api is the NBA career stats API server.
//
// Usage:
//
//	nba-api
//	API_PORT=8080 LIVE_CAREER_LOOKUPS=true nba-api

// @title NBA Career Stats API
// @version 1.0.0
// @description Season-by-season NBA player careers: traded seasons collapsed to one row, per-game rates, CSV export and chart series.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name nba-dashboard
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/atrbyg24/nba-dashboard/internal/api"
	"github.com/atrbyg24/nba-dashboard/internal/config"
	"github.com/atrbyg24/nba-dashboard/internal/db"
	"github.com/atrbyg24/nba-dashboard/internal/lookup"
	"github.com/atrbyg24/nba-dashboard/internal/maintenance"
	"github.com/atrbyg24/nba-dashboard/internal/provider/nbastats"
	"github.com/atrbyg24/nba-dashboard/internal/quality"

	_ "github.com/atrbyg24/nba-dashboard/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Data-quality stream (optional)
	publisher, err := quality.NewPublisher(cfg.RedisURL)
	if err != nil {
		logger.Warn("Anomaly stream disabled", "error", err)
		publisher = nil
	}
	defer publisher.Close()
	logger.Info("Anomaly stream", "enabled", publisher != nil, "stream", quality.StreamName)

	// Career rows come from Postgres unless live lookups are enabled
	nba := nbastats.NewHandler(nbastats.NewClient(cfg.NBAStatsBaseURL, cfg.NBAStatsRPM, logger), logger)
	var rows lookup.RowSource = pool
	if cfg.LiveCareerLookups {
		rows = nba
	}
	svc := lookup.NewService(pool, rows, publisher, logger)
	logger.Info("Lookup service ready", "live", cfg.LiveCareerLookups)

	// Start maintenance tickers (directory refresh, prune)
	go maintenance.Start(ctx, pool, nba, maintenance.Config{
		DirectoryInterval: cfg.DirectoryRefreshInterval,
		PruneInterval:     cfg.PruneInterval,
		Season:            cfg.CurrentSeason,
	}, logger)

	// Create router
	router := api.NewRouter(svc, pool, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting NBA Career Stats API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
