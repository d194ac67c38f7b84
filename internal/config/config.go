// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/api, cmd/ingest and cmd/mcp.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrDatabaseURLMissing is returned by RequireDatabase when no connection
// string is configured.
var ErrDatabaseURLMissing = errors.New("DATABASE_URL or NEON_DATABASE_URL must be set")

// --------------------------------------------------------------------------
// Table names: single source of truth, matches schema.sql
// --------------------------------------------------------------------------

const (
	PlayersTable    = "players"
	SeasonRowsTable = "player_season_rows"
)

// DefaultSeason is the season used when CURRENT_SEASON is unset.
const DefaultSeason = "2025-26"

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// MCP server
	MCPHost   string
	MCPPort   int
	MCPAPIKey string // empty disables auth

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Providers
	NBAStatsBaseURL   string
	NBAStatsRPM       int
	BRefBaseURL       string
	BRefRPM           int
	CurrentSeason     string
	LiveCareerLookups bool // read careers from stats.nba.com instead of Postgres

	// Data-quality stream
	RedisURL string

	// Career response cache headers
	CareerTTL time.Duration

	// Maintenance
	DirectoryRefreshInterval time.Duration
	PruneInterval            time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A missing database URL is not an error here; commands that need Postgres
// call RequireDatabase.
func Load() (*Config, error) {
	return &Config{
		DatabaseURL:    envOr("DATABASE_URL", envOr("NEON_DATABASE_URL", "")),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		MCPHost:   envOr("MCP_HOST", "0.0.0.0"),
		MCPPort:   envInt("MCP_PORT", 8090),
		MCPAPIKey: envOr("MCP_API_KEY", ""),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8501",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		NBAStatsBaseURL:   envOr("NBA_STATS_BASE_URL", "https://stats.nba.com/stats"),
		NBAStatsRPM:       envInt("NBA_STATS_REQUESTS_PER_MINUTE", 100),
		BRefBaseURL:       envOr("BREF_BASE_URL", "https://www.basketball-reference.com"),
		BRefRPM:           envInt("BREF_REQUESTS_PER_MINUTE", 20),
		CurrentSeason:     envOr("CURRENT_SEASON", DefaultSeason),
		LiveCareerLookups: envBool("LIVE_CAREER_LOOKUPS", false),

		RedisURL: envOr("REDIS_URL", ""),

		CareerTTL: time.Duration(envInt("CAREER_TTL_SECONDS", 3600)) * time.Second,

		DirectoryRefreshInterval: time.Duration(envInt("DIRECTORY_REFRESH_HOURS", 24)) * time.Hour,
		PruneInterval:            time.Duration(envInt("PRUNE_INTERVAL_HOURS", 168)) * time.Hour,
	}, nil
}

// RequireDatabase reports ErrDatabaseURLMissing when no connection string
// was configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return ErrDatabaseURLMissing
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
