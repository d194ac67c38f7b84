// Package maintenance runs periodic background tasks as Go tickers: keeping
// the player directory current and pruning rows nobody can look up.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/atrbyg24/nba-dashboard/internal/seed"
)

// Store is the database surface the tasks use. *db.Pool satisfies it.
type Store interface {
	seed.Store
	DeactivateUnlisted(ctx context.Context, listed []int) (int64, error)
	PruneOrphanSeasonRows(ctx context.Context) (int64, error)
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	DirectoryInterval time.Duration // Re-list the season's players
	PruneInterval     time.Duration // Drop rows of players missing from the directory
	Season            string
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig(season string) Config {
	return Config{
		DirectoryInterval: 24 * time.Hour,
		PruneInterval:     7 * 24 * time.Hour,
		Season:            season,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, store Store, dir seed.DirectorySource, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"directory", cfg.DirectoryInterval,
		"prune", cfg.PruneInterval,
		"season", cfg.Season)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.DirectoryInterval > 0 && dir != nil {
		t := time.NewTicker(cfg.DirectoryInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { RefreshDirectory(ctx, store, dir, cfg.Season, logger) })
	}

	if cfg.PruneInterval > 0 {
		t := time.NewTicker(cfg.PruneInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { Prune(ctx, store, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// RefreshDirectory re-seeds the season's players and deactivates everyone
// the provider no longer lists. A failed or empty listing deactivates
// nobody.
func RefreshDirectory(ctx context.Context, store Store, dir seed.DirectorySource, season string, logger *slog.Logger) seed.Result {
	result, listed := seed.SeedPlayers(ctx, store, dir, season, logger)
	if len(listed) == 0 {
		logger.Warn("Directory refresh: provider listed no players, skipping deactivation", "season", season)
		return result
	}

	n, err := store.DeactivateUnlisted(ctx, listed)
	if err != nil {
		logger.Warn("Directory refresh: failed to deactivate players", "error", err)
		result.AddErrorf("deactivate players: %v", err)
	} else if n > 0 {
		logger.Info("Directory refresh: deactivated players", "count", n)
	}
	return result
}

// Prune removes stored rows whose player left the directory table.
func Prune(ctx context.Context, store Store, logger *slog.Logger) {
	n, err := store.PruneOrphanSeasonRows(ctx)
	if err != nil {
		logger.Warn("Prune: failed to delete orphan season rows", "error", err)
		return
	}
	if n > 0 {
		logger.Info("Prune: deleted orphan season rows", "count", n)
	}
}
