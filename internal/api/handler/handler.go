// Package handler provides HTTP handlers for all API endpoints.
// Career reads go through the lookup service; handlers only parse requests
// and shape responses.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/atrbyg24/nba-dashboard/internal/api/respond"
	"github.com/atrbyg24/nba-dashboard/internal/config"
	"github.com/atrbyg24/nba-dashboard/internal/lookup"
	"github.com/atrbyg24/nba-dashboard/internal/provider"
)

// CareerService is the lookup surface the handlers need. *lookup.Service
// satisfies it.
type CareerService interface {
	PlayerCareer(ctx context.Context, playerID int) (lookup.PlayerCareer, error)
	Search(ctx context.Context, q string, limit int) ([]provider.Player, error)
}

// HealthChecker verifies database connectivity. *db.Pool satisfies it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	svc    CareerService
	health HealthChecker
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(svc CareerService, health HealthChecker, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, health: health, cfg: cfg, logger: logger}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "NBA Career Stats API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"live":    h.cfg.LiveCareerLookups,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.health.HealthCheck(r.Context()); err != nil {
		h.logger.Error("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
