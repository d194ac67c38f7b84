package seed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/atrbyg24/nba-dashboard/internal/career"
	"github.com/atrbyg24/nba-dashboard/internal/provider"
)

// Store is the write side of the database. *db.Pool satisfies it.
type Store interface {
	UpsertPlayer(ctx context.Context, p provider.Player) error
	ReplaceSeasonRows(ctx context.Context, playerID int, rows []career.RawSeasonRow) (int, error)
	ActivePlayerIDs(ctx context.Context) ([]int, error)
}

// DirectorySource lists the players of a season.
type DirectorySource interface {
	ActivePlayers(ctx context.Context, season string) ([]provider.Player, error)
}

// CareerSource returns raw season rows for one player.
type CareerSource interface {
	PlayerCareer(ctx context.Context, playerID int) ([]career.RawSeasonRow, error)
}

// --------------------------------------------------------------------------
// Directory
// --------------------------------------------------------------------------

// SeedPlayers upserts every player listed for season. It returns the ids it
// saw so callers can deactivate the rest.
func SeedPlayers(ctx context.Context, store Store, src DirectorySource, season string, logger *slog.Logger) (Result, []int) {
	var result Result

	logger.Info("Seeding player directory...", "season", season)
	players, err := src.ActivePlayers(ctx, season)
	if err != nil {
		result.AddErrorf("fetch players %s: %v", season, err)
		return result, nil
	}

	ids := make([]int, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
		if err := store.UpsertPlayer(ctx, p); err != nil {
			result.AddErrorf("upsert player %d: %v", p.ID, err)
			continue
		}
		result.PlayersUpserted++
	}

	logger.Info("Player directory done", "count", result.PlayersUpserted, "listed", len(ids))
	return result, ids
}

// --------------------------------------------------------------------------
// Careers
// --------------------------------------------------------------------------

// SeedCareer replaces one player's stored rows with a fresh provider fetch.
// A provider error leaves the stored rows untouched.
func SeedCareer(ctx context.Context, store Store, src CareerSource, playerID int, logger *slog.Logger) Result {
	var result Result

	rows, err := src.PlayerCareer(ctx, playerID)
	if err != nil {
		result.AddErrorf("fetch career %d: %v", playerID, err)
		return result
	}

	n, err := store.ReplaceSeasonRows(ctx, playerID, rows)
	if err != nil {
		result.AddErrorf("store career %d: %v", playerID, err)
		return result
	}

	result.CareersSeeded++
	result.SeasonRowsInserted += n
	logger.Debug("Career seeded", "player_id", playerID, "rows", n)
	return result
}

// SeedCareers seeds every active player with a pool of workers. maxPlayers limits
// the number of players when positive.
func SeedCareers(ctx context.Context, store Store, src CareerSource, workers, maxPlayers int, logger *slog.Logger) Result {
	var result Result

	ids, err := store.ActivePlayerIDs(ctx)
	if err != nil {
		result.AddErrorf("list players: %v", err)
		return result
	}
	if maxPlayers > 0 && len(ids) > maxPlayers {
		ids = ids[:maxPlayers]
	}
	if len(ids) == 0 {
		logger.Info("No players to seed")
		return result
	}

	// Worker pool: one channel of player ids, N workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	ch := make(chan int, len(ids))
	for _, id := range ids {
		ch <- id
	}
	close(ch)

	logger.Info("Seeding careers...", "players", len(ids), "workers", workers)

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		processed int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ch {
				if ctx.Err() != nil {
					return
				}
				r := SeedCareer(ctx, store, src, id, logger)

				mu.Lock()
				result.Add(r)
				processed++
				if processed%50 == 0 {
					logger.Info("Career seed progress", "processed", processed, "total", len(ids))
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		result.AddErrorf("seed careers interrupted: %v", err)
	}

	logger.Info("Career seed complete", "summary", result.Summary())
	return result
}
