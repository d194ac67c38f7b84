package maintenance_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/atrbyg24/nba-dashboard/internal/career"
	"github.com/atrbyg24/nba-dashboard/internal/maintenance"
	"github.com/atrbyg24/nba-dashboard/internal/provider"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeStore struct {
	upserted    []int
	deactivated []int
	deactCalls  int
	pruned      int
	pruneErr    error
}

func (s *fakeStore) UpsertPlayer(_ context.Context, p provider.Player) error {
	s.upserted = append(s.upserted, p.ID)
	return nil
}

func (s *fakeStore) ReplaceSeasonRows(context.Context, int, []career.RawSeasonRow) (int, error) {
	return 0, nil
}

func (s *fakeStore) ActivePlayerIDs(context.Context) ([]int, error) { return nil, nil }

func (s *fakeStore) DeactivateUnlisted(_ context.Context, listed []int) (int64, error) {
	s.deactCalls++
	s.deactivated = listed
	return 1, nil
}

func (s *fakeStore) PruneOrphanSeasonRows(context.Context) (int64, error) {
	s.pruned++
	return 3, s.pruneErr
}

type fakeDir struct {
	players []provider.Player
	err     error
}

func (d fakeDir) ActivePlayers(context.Context, string) ([]provider.Player, error) {
	return d.players, d.err
}

func TestRefreshDirectory(t *testing.T) {
	store := &fakeStore{}
	dir := fakeDir{players: []provider.Player{{ID: 1}, {ID: 2}}}

	result := maintenance.RefreshDirectory(context.Background(), store, dir, "2025-26", quiet)
	if result.PlayersUpserted != 2 || len(result.Errors) != 0 {
		t.Errorf("result = %s %v", result.Summary(), result.Errors)
	}
	if store.deactCalls != 1 || len(store.deactivated) != 2 {
		t.Errorf("deactivate called %d times with %v", store.deactCalls, store.deactivated)
	}
}

func TestRefreshDirectory_ProviderFailureKeepsPlayers(t *testing.T) {
	tests := []struct {
		name string
		dir  fakeDir
	}{
		{"error", fakeDir{err: errors.New("403")}},
		{"empty listing", fakeDir{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			maintenance.RefreshDirectory(context.Background(), store, tt.dir, "2025-26", quiet)
			if store.deactCalls != 0 {
				t.Error("nobody should be deactivated when the listing is unusable")
			}
		})
	}
}

func TestStartRunsTasksUntilCancelled(t *testing.T) {
	store := &fakeStore{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		maintenance.Start(ctx, store, nil, maintenance.Config{PruneInterval: time.Hour}, quiet)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestPrune(t *testing.T) {
	store := &fakeStore{}
	maintenance.Prune(context.Background(), store, quiet)
	store.pruneErr = errors.New("boom")
	maintenance.Prune(context.Background(), store, quiet)
	if store.pruned != 2 {
		t.Errorf("pruned = %d", store.pruned)
	}
}
