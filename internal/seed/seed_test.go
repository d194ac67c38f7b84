package seed_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/atrbyg24/nba-dashboard/internal/career"
	"github.com/atrbyg24/nba-dashboard/internal/provider"
	"github.com/atrbyg24/nba-dashboard/internal/seed"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeStore struct {
	mu        sync.Mutex
	players   map[int]provider.Player
	rows      map[int][]career.RawSeasonRow
	ids       []int
	failWrite map[int]bool
}

func newFakeStore(ids ...int) *fakeStore {
	return &fakeStore{
		players:   map[int]provider.Player{},
		rows:      map[int][]career.RawSeasonRow{},
		ids:       ids,
		failWrite: map[int]bool{},
	}
}

func (s *fakeStore) UpsertPlayer(_ context.Context, p provider.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite[p.ID] {
		return errors.New("write failed")
	}
	s.players[p.ID] = p
	return nil
}

func (s *fakeStore) ReplaceSeasonRows(_ context.Context, id int, rows []career.RawSeasonRow) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite[id] {
		return 0, errors.New("write failed")
	}
	s.rows[id] = rows
	return len(rows), nil
}

func (s *fakeStore) ActivePlayerIDs(context.Context) ([]int, error) {
	return s.ids, nil
}

type fakeSource struct {
	players []provider.Player
	err     error
	failFor map[int]bool
}

func (f fakeSource) ActivePlayers(context.Context, string) ([]provider.Player, error) {
	return f.players, f.err
}

func (f fakeSource) PlayerCareer(_ context.Context, id int) ([]career.RawSeasonRow, error) {
	if f.failFor[id] {
		return nil, fmt.Errorf("provider down for %d", id)
	}
	return []career.RawSeasonRow{
		{Season: "2021-22", TeamAbbreviation: "BKN", GamesPlayed: 36},
		{Season: "2021-22", TeamAbbreviation: "PHX", GamesPlayed: 26},
		{Season: "2021-22", TeamAbbreviation: "TOT", GamesPlayed: 62},
	}, nil
}

func TestSeedPlayers(t *testing.T) {
	store := newFakeStore()
	store.failWrite[3] = true
	src := fakeSource{players: []provider.Player{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}}

	result, ids := seed.SeedPlayers(context.Background(), store, src, "2025-26", discard)
	if result.PlayersUpserted != 2 {
		t.Errorf("PlayersUpserted = %d, want 2", result.PlayersUpserted)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "upsert player 3") {
		t.Errorf("Errors = %v", result.Errors)
	}
	if len(ids) != 3 {
		t.Errorf("listed ids = %v, want all three", ids)
	}
}

func TestSeedPlayers_ProviderError(t *testing.T) {
	result, ids := seed.SeedPlayers(context.Background(), newFakeStore(), fakeSource{err: errors.New("403")}, "2025-26", discard)
	if ids != nil || len(result.Errors) != 1 {
		t.Errorf("ids=%v errors=%v", ids, result.Errors)
	}
}

func TestSeedCareer_KeepsRawRows(t *testing.T) {
	store := newFakeStore()
	result := seed.SeedCareer(context.Background(), store, fakeSource{}, 7, discard)

	if result.CareersSeeded != 1 || result.SeasonRowsInserted != 3 {
		t.Errorf("result = %s", result.Summary())
	}
	if len(store.rows[7]) != 3 {
		t.Errorf("stored %d rows, want the 3 raw rows", len(store.rows[7]))
	}
}

func TestSeedCareer_ProviderErrorLeavesRows(t *testing.T) {
	store := newFakeStore()
	store.rows[7] = []career.RawSeasonRow{{Season: "2010-11"}}

	result := seed.SeedCareer(context.Background(), store, fakeSource{failFor: map[int]bool{7: true}}, 7, discard)
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v", result.Errors)
	}
	if len(store.rows[7]) != 1 {
		t.Error("stored rows should be untouched after a provider error")
	}
}

func TestSeedCareers(t *testing.T) {
	tests := []struct {
		name       string
		ids        []int
		workers    int
		maxPlayers int
		failFor    map[int]bool
		wantSeeded int
		wantErrs   int
	}{
		{"all", []int{1, 2, 3, 4, 5}, 3, 0, nil, 5, 0},
		{"capped", []int{1, 2, 3, 4, 5}, 2, 2, nil, 2, 0},
		{"more workers than players", []int{1, 2}, 10, 0, nil, 2, 0},
		{"zero workers", []int{1, 2}, 0, 0, nil, 2, 0},
		{"partial failure", []int{1, 2, 3}, 2, 0, map[int]bool{2: true}, 2, 1},
		{"empty", nil, 4, 0, nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(tt.ids...)
			result := seed.SeedCareers(context.Background(), store, fakeSource{failFor: tt.failFor}, tt.workers, tt.maxPlayers, discard)

			if result.CareersSeeded != tt.wantSeeded {
				t.Errorf("CareersSeeded = %d, want %d", result.CareersSeeded, tt.wantSeeded)
			}
			if len(result.Errors) != tt.wantErrs {
				t.Errorf("Errors = %v", result.Errors)
			}
			if result.SeasonRowsInserted != 3*tt.wantSeeded {
				t.Errorf("SeasonRowsInserted = %d", result.SeasonRowsInserted)
			}

			var seeded []int
			for id := range store.rows {
				seeded = append(seeded, id)
			}
			sort.Ints(seeded)
			if len(seeded) != tt.wantSeeded {
				t.Errorf("seeded ids = %v", seeded)
			}
		})
	}
}

func TestResultSummary(t *testing.T) {
	var r seed.Result
	r.Add(seed.Result{PlayersUpserted: 2, CareersSeeded: 1, SeasonRowsInserted: 4})
	r.AddError("boom")
	r.AddErrorf("player %d", 9)

	want := "players=2 careers=1 season_rows=4 errors=2"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
