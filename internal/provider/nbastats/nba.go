package nbastats

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/atrbyg24/nba-dashboard/internal/career"
	"github.com/atrbyg24/nba-dashboard/internal/provider"
)

const (
	leagueNBA           = "00"
	seasonTotalsRegular = "SeasonTotalsRegularSeason"
	commonAllPlayers    = "CommonAllPlayers"
)

// Handler fetches and normalizes player data from stats.nba.com.
type Handler struct {
	client *Client
	logger *slog.Logger
}

// NewHandler creates a handler over the given client.
func NewHandler(client *Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{client: client, logger: logger}
}

// --------------------------------------------------------------------------
// Career totals
// --------------------------------------------------------------------------

// PlayerCareer fetches a player's regular-season totals, one row per season
// and team plus the provider's TOT rows for traded seasons.
func (h *Handler) PlayerCareer(ctx context.Context, playerID int) ([]career.RawSeasonRow, error) {
	params := url.Values{
		"PlayerID": {strconv.Itoa(playerID)},
		"PerMode":  {"Totals"},
		"LeagueID": {leagueNBA},
	}
	resp, err := h.client.get(ctx, "/playercareerstats", params)
	if err != nil {
		return nil, fmt.Errorf("fetch career %d: %w", playerID, err)
	}

	set, err := resp.set(seasonTotalsRegular)
	if err != nil {
		return nil, fmt.Errorf("fetch career %d: %w", playerID, err)
	}

	records := set.records()
	rows := make([]career.RawSeasonRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, normalizeSeasonRow(rec))
	}
	h.logger.Debug("Fetched career rows", "player_id", playerID, "rows", len(rows))
	return rows, nil
}

// SeasonRows satisfies the lookup row source contract.
func (h *Handler) SeasonRows(ctx context.Context, playerID int) ([]career.RawSeasonRow, error) {
	return h.PlayerCareer(ctx, playerID)
}

func normalizeSeasonRow(rec map[string]interface{}) career.RawSeasonRow {
	num := func(key string) float64 {
		v, _ := provider.ExtractValue(rec[key])
		return v
	}
	gp, _ := provider.ExtractInt(rec["GP"])
	teamID, _ := provider.ExtractInt(rec["TEAM_ID"])

	return career.RawSeasonRow{
		Season:           provider.ExtractString(rec["SEASON_ID"]),
		TeamID:           teamID,
		TeamAbbreviation: provider.ExtractString(rec["TEAM_ABBREVIATION"]),
		PlayerAge:        num("PLAYER_AGE"),
		GamesPlayed:      gp,
		Points:           num("PTS"),
		Rebounds:         num("REB"),
		Assists:          num("AST"),
		Steals:           num("STL"),
		Blocks:           num("BLK"),
	}
}

// --------------------------------------------------------------------------
// Player directory
// --------------------------------------------------------------------------

// ActivePlayers fetches every player on a roster in the given season
// ("2024-25").
func (h *Handler) ActivePlayers(ctx context.Context, season string) ([]provider.Player, error) {
	params := url.Values{
		"LeagueID":            {leagueNBA},
		"Season":              {season},
		"IsOnlyCurrentSeason": {"1"},
	}
	resp, err := h.client.get(ctx, "/commonallplayers", params)
	if err != nil {
		return nil, fmt.Errorf("fetch players %s: %w", season, err)
	}

	set, err := resp.set(commonAllPlayers)
	if err != nil {
		return nil, fmt.Errorf("fetch players %s: %w", season, err)
	}

	var players []provider.Player
	for _, rec := range set.records() {
		p, ok := normalizePlayer(rec)
		if !ok {
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

func normalizePlayer(rec map[string]interface{}) (provider.Player, bool) {
	id, ok := provider.ExtractInt(rec["PERSON_ID"])
	if !ok || id == 0 {
		return provider.Player{}, false
	}

	name := provider.ExtractString(rec["DISPLAY_FIRST_LAST"])
	if name == "" {
		name = fmt.Sprintf("Player %d", id)
	}

	p := provider.Player{
		ID:       id,
		Name:     name,
		Slug:     provider.ExtractString(rec["PLAYER_SLUG"]),
		TeamAbbr: provider.ExtractString(rec["TEAM_ABBREVIATION"]),
		Meta:     make(map[string]interface{}),
	}
	if last := provider.ExtractString(rec["DISPLAY_LAST_COMMA_FIRST"]); last != "" {
		p.Meta["display_last_first"] = last
	}
	if teamID, ok := provider.ExtractInt(rec["TEAM_ID"]); ok && teamID != 0 {
		p.TeamID = &teamID
	}
	if from, ok := provider.ExtractInt(rec["FROM_YEAR"]); ok {
		p.FromYear = &from
	}
	if to, ok := provider.ExtractInt(rec["TO_YEAR"]); ok {
		p.ToYear = &to
	}
	if status, ok := provider.ExtractInt(rec["ROSTERSTATUS"]); ok {
		p.IsActive = status == 1
	}
	return p, true
}
