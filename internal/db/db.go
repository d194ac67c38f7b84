// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atrbyg24/nba-dashboard/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

const playerColumns = "id, name, first_name, last_name, slug, team_id, team_abbreviation, from_year, to_year, is_active"

// statements are registered on every connection; see schema.sql for the
// tables they read.
var statements = map[string]string{
	// Health
	"health_check": "SELECT 1",

	// Directory
	"player_by_id": "SELECT " + playerColumns + " FROM " + config.PlayersTable + " WHERE id = $1",
	"player_search": "SELECT " + playerColumns + " FROM " + config.PlayersTable + `
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY is_active DESC, name
		LIMIT $2`,
	"active_player_ids": "SELECT id FROM " + config.PlayersTable + " WHERE is_active ORDER BY id",

	// Career rows, in provider order
	"player_season_rows": `SELECT season, team_id, team_abbreviation, player_age, games_played,
		points, rebounds, assists, steals, blocks
		FROM ` + config.SeasonRowsTable + ` WHERE player_id = $1 ORDER BY row_num`,
	"delete_player_season_rows": "DELETE FROM " + config.SeasonRowsTable + " WHERE player_id = $1",

	// Maintenance
	"deactivate_unlisted_players": "UPDATE " + config.PlayersTable + " SET is_active = false WHERE is_active AND NOT (id = ANY($1))",
	"prune_orphan_season_rows": "DELETE FROM " + config.SeasonRowsTable + ` r
		WHERE NOT EXISTS (SELECT 1 FROM ` + config.PlayersTable + ` p WHERE p.id = r.player_id)`,
}

// registerPreparedStatements registers all statements the API and ingestion
// layers use.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
