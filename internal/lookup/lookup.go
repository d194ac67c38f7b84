// Package lookup answers career queries: fetch raw rows, build the career,
// report anomalies.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atrbyg24/nba-dashboard/internal/career"
	"github.com/atrbyg24/nba-dashboard/internal/db"
	"github.com/atrbyg24/nba-dashboard/internal/provider"
)

// ErrPlayerNotFound is returned when the directory has no such player.
var ErrPlayerNotFound = errors.New("player not found")

// DefaultSearchLimit caps Search when the caller passes no limit.
const DefaultSearchLimit = 10

// RowSource returns raw season rows for a player. *db.Pool reads stored rows;
// *nbastats.Handler fetches them live.
type RowSource interface {
	SeasonRows(ctx context.Context, playerID int) ([]career.RawSeasonRow, error)
}

// Directory resolves players. *db.Pool satisfies it.
type Directory interface {
	PlayerByID(ctx context.Context, id int) (provider.Player, error)
	SearchPlayers(ctx context.Context, q string, limit int) ([]provider.Player, error)
}

// AnomalySink receives anomalies for monitoring. *quality.Publisher
// satisfies it, including a nil one.
type AnomalySink interface {
	Publish(ctx context.Context, playerID int, anomalies []career.Anomaly) error
}

// PlayerCareer is a directory entry with its built career.
type PlayerCareer struct {
	Player provider.Player `json:"player"`
	career.Career
}

// Service wires a directory and a row source.
type Service struct {
	dir    Directory
	rows   RowSource
	sink   AnomalySink
	logger *slog.Logger
}

// NewService creates a lookup service. sink may be nil.
func NewService(dir Directory, rows RowSource, sink AnomalySink, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{dir: dir, rows: rows, sink: sink, logger: logger}
}

// PlayerCareer resolves playerID and builds its career. A row-source error is
// returned as is; partial rows never reach career.Build.
func (s *Service) PlayerCareer(ctx context.Context, playerID int) (PlayerCareer, error) {
	player, err := s.dir.PlayerByID(ctx, playerID)
	if errors.Is(err, db.ErrNotFound) {
		return PlayerCareer{}, fmt.Errorf("player %d: %w", playerID, ErrPlayerNotFound)
	}
	if err != nil {
		return PlayerCareer{}, fmt.Errorf("resolve player %d: %w", playerID, err)
	}

	rows, err := s.rows.SeasonRows(ctx, playerID)
	if err != nil {
		return PlayerCareer{}, fmt.Errorf("fetch season rows %d: %w", playerID, err)
	}

	c := career.Build(rows)
	s.report(ctx, playerID, c.Anomalies)

	return PlayerCareer{Player: player, Career: c}, nil
}

// Search returns players whose name contains q. Blank queries return an
// empty list.
func (s *Service) Search(ctx context.Context, q string, limit int) ([]provider.Player, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []provider.Player{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	players, err := s.dir.SearchPlayers(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}
	return players, nil
}

// report logs each anomaly and forwards them to the sink. Sink failures are
// logged, never returned.
func (s *Service) report(ctx context.Context, playerID int, anomalies []career.Anomaly) {
	if len(anomalies) == 0 {
		return
	}
	for _, a := range anomalies {
		s.logger.Warn("Season anomaly",
			"player_id", playerID,
			"kind", a.Kind,
			"season", a.Season,
			"detail", a.Detail,
		)
	}
	if s.sink == nil {
		return
	}
	if err := s.sink.Publish(ctx, playerID, anomalies); err != nil {
		s.logger.Error("Publish anomalies failed", "player_id", playerID, "error", err)
	}
}
