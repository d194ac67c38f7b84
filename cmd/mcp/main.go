// Command mcp serves career lookups as MCP tools over streamable HTTP.
//
// Usage:
//
//	nba-mcp
//	MCP_PORT=9000 MCP_API_KEY=secret nba-mcp
package main

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atrbyg24/nba-dashboard/internal/api/respond"
	"github.com/atrbyg24/nba-dashboard/internal/config"
	"github.com/atrbyg24/nba-dashboard/internal/db"
	"github.com/atrbyg24/nba-dashboard/internal/lookup"
	"github.com/atrbyg24/nba-dashboard/internal/mcptools"
	"github.com/atrbyg24/nba-dashboard/internal/provider/nbastats"
	"github.com/atrbyg24/nba-dashboard/internal/quality"
)

const version = "1.0.0"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	publisher, err := quality.NewPublisher(cfg.RedisURL)
	if err != nil {
		logger.Warn("Anomaly stream disabled", "error", err)
		publisher = nil
	}
	defer publisher.Close()

	var rows lookup.RowSource = pool
	if cfg.LiveCareerLookups {
		rows = nbastats.NewHandler(nbastats.NewClient(cfg.NBAStatsBaseURL, cfg.NBAStatsRPM, logger), logger)
	}
	svc := lookup.NewService(pool, rows, publisher, logger)

	server, registry := mcptools.NewServer(svc, version)
	mcpHandler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requireKey(cfg.MCPAPIKey))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.WriteJSONObject(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/tools", func(w http.ResponseWriter, r *http.Request) {
		respond.WriteJSONObject(w, http.StatusOK, map[string]any{"tools": registry})
	})
	r.Handle("/mcp", mcpHandler)

	addr := fmt.Sprintf("%s:%d", cfg.MCPHost, cfg.MCPPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("MCP HTTP server listening", "addr", addr, "path", "/mcp", "auth", cfg.MCPAPIKey != "")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
}

// requireKey checks X-API-Key or a bearer token against key. An empty key
// disables the check.
func requireKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := strings.TrimSpace(r.Header.Get("X-API-Key"))
			if got == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					got = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				respond.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
