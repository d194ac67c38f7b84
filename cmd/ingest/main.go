// Command ingest is the NBA career data ingestion CLI.
//
// Usage:
//
//	nba-ingest seed players --season 2025-26
//	nba-ingest seed career --player 201142
//	nba-ingest seed careers --workers 2 --max 100
//	nba-ingest career --player 201142 --source nbastats --format table
//	nba-ingest career --slug duranke01 --source bref --format csv
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/atrbyg24/nba-dashboard/internal/career"
	"github.com/atrbyg24/nba-dashboard/internal/config"
	"github.com/atrbyg24/nba-dashboard/internal/db"
	"github.com/atrbyg24/nba-dashboard/internal/maintenance"
	"github.com/atrbyg24/nba-dashboard/internal/provider/bref"
	"github.com/atrbyg24/nba-dashboard/internal/provider/nbastats"
	"github.com/atrbyg24/nba-dashboard/internal/render"
	"github.com/atrbyg24/nba-dashboard/internal/seed"
)

// Logs go to stderr so `career` output can be piped.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "nba-ingest",
		Short: "NBA career data ingestion CLI",
	}

	root.AddCommand(seedCmd())
	root.AddCommand(careerCmd())
	root.AddCommand(pruneCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed data from stats.nba.com",
	}
	cmd.AddCommand(seedPlayersCmd())
	cmd.AddCommand(seedCareerCmd())
	cmd.AddCommand(seedCareersCmd())
	return cmd
}

func seedPlayersCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Seed the player directory for a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if season == "" {
					season = cfg.CurrentSeason
				}
				start := time.Now()
				result := maintenance.RefreshDirectory(ctx, pool, newNBAHandler(cfg), season, logger)
				logResult("Player directory seed finished", start, result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season id, e.g. 2025-26 (default CURRENT_SEASON)")
	return cmd
}

func seedCareerCmd() *cobra.Command {
	var playerID int
	cmd := &cobra.Command{
		Use:   "career",
		Short: "Seed one player's career rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == 0 {
				return fmt.Errorf("--player is required")
			}
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				result := seed.SeedCareer(ctx, pool, newNBAHandler(cfg), playerID, logger)
				logResult("Career seed finished", start, result)
				if len(result.Errors) > 0 {
					return fmt.Errorf("player %d failed", playerID)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&playerID, "player", 0, "stats.nba.com player id")
	return cmd
}

func seedCareersCmd() *cobra.Command {
	var workers, maxPlayers int
	cmd := &cobra.Command{
		Use:   "careers",
		Short: "Seed career rows for every active player",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				result := seed.SeedCareers(ctx, pool, newNBAHandler(cfg), workers, maxPlayers, logger)
				logResult("Careers seed finished", start, result)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 2, "Concurrent worker count")
	cmd.Flags().IntVar(&maxPlayers, "max", 0, "Maximum players to seed (0 = all)")
	return cmd
}

// --------------------------------------------------------------------------
// career command
// --------------------------------------------------------------------------

func careerCmd() *cobra.Command {
	var (
		playerID int
		slug     string
		source   string
		format   string
	)
	cmd := &cobra.Command{
		Use:   "career",
		Short: "Print one player's career table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			rows, err := fetchRows(ctx, cfg, source, playerID, slug)
			if err != nil {
				return err
			}

			c := career.Build(rows)
			for _, a := range c.Anomalies {
				logger.Warn("Season anomaly", "kind", a.Kind, "season", a.Season, "detail", a.Detail)
			}
			return writeCareer(cmd.OutOrStdout(), c, format)
		},
	}
	cmd.Flags().IntVar(&playerID, "player", 0, "stats.nba.com player id (db, nbastats)")
	cmd.Flags().StringVar(&slug, "slug", "", "basketball-reference player slug (bref)")
	cmd.Flags().StringVar(&source, "source", "nbastats", "Row source: db, nbastats, bref")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, csv, json")
	return cmd
}

func fetchRows(ctx context.Context, cfg *config.Config, source string, playerID int, slug string) ([]career.RawSeasonRow, error) {
	switch source {
	case "bref":
		if slug == "" {
			return nil, fmt.Errorf("--slug is required for source bref")
		}
		return bref.NewHandler(cfg.BRefBaseURL, cfg.BRefRPM, logger).PlayerCareer(ctx, slug)
	case "nbastats":
		if playerID == 0 {
			return nil, fmt.Errorf("--player is required for source nbastats")
		}
		return newNBAHandler(cfg).PlayerCareer(ctx, playerID)
	case "db":
		if playerID == 0 {
			return nil, fmt.Errorf("--player is required for source db")
		}
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		return pool.SeasonRows(ctx, playerID)
	default:
		return nil, fmt.Errorf("unknown source %q (want db, nbastats or bref)", source)
	}
}

func writeCareer(w io.Writer, c career.Career, format string) error {
	switch format {
	case "table":
		return render.Table(w, c)
	case "csv":
		return render.CSV(w, c)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	default:
		return fmt.Errorf("unknown format %q (want table, csv or json)", format)
	}
}

// --------------------------------------------------------------------------
// prune command
// --------------------------------------------------------------------------

func pruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete stored rows of players missing from the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				maintenance.Prune(ctx, pool, logger)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func newNBAHandler(cfg *config.Config) *nbastats.Handler {
	return nbastats.NewHandler(nbastats.NewClient(cfg.NBAStatsBaseURL, cfg.NBAStatsRPM, logger), logger)
}

func logResult(msg string, start time.Time, result seed.Result) {
	logger.Info(msg, "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
	for _, e := range result.Errors {
		logger.Error("seed error", "error", e)
	}
}

// runSeed handles config loading, DB connection, and context cancellation.
func runSeed(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
