package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/atrbyg24/nba-dashboard/internal/career"
	"github.com/atrbyg24/nba-dashboard/internal/config"
	"github.com/atrbyg24/nba-dashboard/internal/provider"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

var seasonRowColumns = []string{
	"player_id", "row_num", "season", "team_id", "team_abbreviation", "player_age",
	"games_played", "points", "rebounds", "assists", "steals", "blocks",
}

// --------------------------------------------------------------------------
// Directory
// --------------------------------------------------------------------------

// PlayerByID returns one directory entry.
func (p *Pool) PlayerByID(ctx context.Context, id int) (provider.Player, error) {
	pl, err := scanPlayer(p.QueryRow(ctx, "player_by_id", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return provider.Player{}, fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return provider.Player{}, fmt.Errorf("query player %d: %w", id, err)
	}
	return pl, nil
}

// SearchPlayers matches q anywhere in the display name, active players first.
func (p *Pool) SearchPlayers(ctx context.Context, q string, limit int) ([]provider.Player, error) {
	rows, err := p.Query(ctx, "player_search", q, limit)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	defer rows.Close()

	players := make([]provider.Player, 0, limit)
	for rows.Next() {
		pl, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, pl)
	}
	return players, rows.Err()
}

// ActivePlayerIDs lists every player currently flagged active.
func (p *Pool) ActivePlayerIDs(ctx context.Context) ([]int, error) {
	rows, err := p.Query(ctx, "active_player_ids")
	if err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}
	return ids, nil
}

// UpsertPlayer writes a canonical player to the players table.
func (p *Pool) UpsertPlayer(ctx context.Context, player provider.Player) error {
	meta, err := marshalMeta(player)
	if err != nil {
		return err
	}
	_, err = p.Exec(ctx, `
		INSERT INTO `+config.PlayersTable+` (
			id, name, first_name, last_name, slug, team_id,
			team_abbreviation, from_year, to_year, is_active, meta
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			first_name = COALESCE(EXCLUDED.first_name, `+config.PlayersTable+`.first_name),
			last_name = COALESCE(EXCLUDED.last_name, `+config.PlayersTable+`.last_name),
			slug = COALESCE(EXCLUDED.slug, `+config.PlayersTable+`.slug),
			team_id = EXCLUDED.team_id,
			team_abbreviation = EXCLUDED.team_abbreviation,
			from_year = COALESCE(EXCLUDED.from_year, `+config.PlayersTable+`.from_year),
			to_year = COALESCE(EXCLUDED.to_year, `+config.PlayersTable+`.to_year),
			is_active = EXCLUDED.is_active,
			meta = EXCLUDED.meta,
			updated_at = NOW()`,
		player.ID, player.Name, nilEmpty(player.FirstName), nilEmpty(player.LastName),
		nilEmpty(player.Slug), player.TeamID, nilEmpty(player.TeamAbbr),
		player.FromYear, player.ToYear, player.IsActive, meta,
	)
	if err != nil {
		return fmt.Errorf("upsert player %d: %w", player.ID, err)
	}
	return nil
}

// DeactivateUnlisted clears is_active on every player whose id is not in
// listed. Returns the number of players deactivated.
func (p *Pool) DeactivateUnlisted(ctx context.Context, listed []int) (int64, error) {
	tag, err := p.Exec(ctx, "deactivate_unlisted_players", listed)
	if err != nil {
		return 0, fmt.Errorf("deactivate players: %w", err)
	}
	return tag.RowsAffected(), nil
}

// --------------------------------------------------------------------------
// Career rows
// --------------------------------------------------------------------------

// SeasonRows returns a player's stored provider rows in the order they were
// fetched. Stored rows are raw: normalization happens on every read.
func (p *Pool) SeasonRows(ctx context.Context, playerID int) ([]career.RawSeasonRow, error) {
	rows, err := p.Query(ctx, "player_season_rows", playerID)
	if err != nil {
		return nil, fmt.Errorf("query season rows %d: %w", playerID, err)
	}
	defer rows.Close()

	var out []career.RawSeasonRow
	for rows.Next() {
		var (
			r      career.RawSeasonRow
			teamID *int
		)
		if err := rows.Scan(&r.Season, &teamID, &r.TeamAbbreviation, &r.PlayerAge,
			&r.GamesPlayed, &r.Points, &r.Rebounds, &r.Assists, &r.Steals, &r.Blocks); err != nil {
			return nil, fmt.Errorf("scan season row %d: %w", playerID, err)
		}
		if teamID != nil {
			r.TeamID = *teamID
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read season rows %d: %w", playerID, err)
	}
	return out, nil
}

// ReplaceSeasonRows swaps a player's stored rows for rows in one
// transaction. Duplicates are kept as delivered.
func (p *Pool) ReplaceSeasonRows(ctx context.Context, playerID int, rows []career.RawSeasonRow) (int, error) {
	tx, err := p.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "delete_player_season_rows", playerID); err != nil {
		return 0, fmt.Errorf("delete season rows %d: %w", playerID, err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{config.SeasonRowsTable},
		seasonRowColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			var teamID *int
			if r.TeamID != 0 {
				teamID = &r.TeamID
			}
			return []any{
				playerID, i, r.Season, teamID, r.TeamAbbreviation, r.PlayerAge,
				r.GamesPlayed, r.Points, r.Rebounds, r.Assists, r.Steals, r.Blocks,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy season rows %d: %w", playerID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit season rows %d: %w", playerID, err)
	}
	return int(n), nil
}

// PruneOrphanSeasonRows deletes stored rows whose player has left the
// directory table.
func (p *Pool) PruneOrphanSeasonRows(ctx context.Context) (int64, error) {
	tag, err := p.Exec(ctx, "prune_orphan_season_rows")
	if err != nil {
		return 0, fmt.Errorf("prune season rows: %w", err)
	}
	return tag.RowsAffected(), nil
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func scanPlayer(row pgx.Row) (provider.Player, error) {
	var (
		pl                      provider.Player
		first, last, slug, abbr *string
	)
	err := row.Scan(&pl.ID, &pl.Name, &first, &last, &slug, &pl.TeamID, &abbr,
		&pl.FromYear, &pl.ToYear, &pl.IsActive)
	if err != nil {
		return provider.Player{}, err
	}
	pl.FirstName = deref(first)
	pl.LastName = deref(last)
	pl.Slug = deref(slug)
	pl.TeamAbbr = deref(abbr)
	return pl, nil
}

func nilEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func marshalMeta(player provider.Player) ([]byte, error) {
	meta, err := json.Marshal(nonNilMap(player.Meta))
	if err != nil {
		return nil, fmt.Errorf("marshal meta %d: %w", player.ID, err)
	}
	return meta, nil
}

func nonNilMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
