// Package career turns a player's raw per-team season rows into one row per
// season with per-game rates, ordered for tables and charts.
//
// Everything here is a pure function over in-memory rows: no I/O, no shared
// state. Providers feed RawSeasonRow values in; renderers read the Career
// that Build returns.
package career

import (
	"fmt"
	"strings"
)

// TotalSentinel is the team abbreviation a provider reports on the row that
// combines every team a player appeared for in one season.
const TotalSentinel = "TOT"

// RawSeasonRow is one provider record: a player's season with one team, or
// the combined TOTAL row for a season split across teams. Counting stats are
// season totals, not averages.
type RawSeasonRow struct {
	Season           string  `json:"season"`
	TeamID           int     `json:"team_id,omitempty"`
	TeamAbbreviation string  `json:"team"`
	PlayerAge        float64 `json:"player_age,omitempty"`
	GamesPlayed      int     `json:"games_played"`
	Points           float64 `json:"points"`
	Rebounds         float64 `json:"rebounds"`
	Assists          float64 `json:"assists"`
	Steals           float64 `json:"steals"`
	Blocks           float64 `json:"blocks"`
}

// IsTotal reports whether the row is the combined multi-team row.
func (r RawSeasonRow) IsTotal() bool {
	return strings.EqualFold(strings.TrimSpace(r.TeamAbbreviation), TotalSentinel)
}

// NormalizedSeasonRow is the single authoritative row for a season. Its team
// is either the one team reported or TotalSentinel.
type NormalizedSeasonRow RawSeasonRow

// DerivedSeasonStat is a normalized season plus its per-game rates.
type DerivedSeasonStat struct {
	NormalizedSeasonRow
	PointsPerGame   float64 `json:"points_per_game"`
	ReboundsPerGame float64 `json:"rebounds_per_game"`
	AssistsPerGame  float64 `json:"assists_per_game"`
	StealsPerGame   float64 `json:"steals_per_game"`
	BlocksPerGame   float64 `json:"blocks_per_game"`
}

// --------------------------------------------------------------------------
// Anomalies
// --------------------------------------------------------------------------

// AnomalyKind classifies a data-quality problem that was recovered locally.
type AnomalyKind string

const (
	// MalformedSeasonGroup: several team rows for a season and no TOTAL row.
	MalformedSeasonGroup AnomalyKind = "malformed_season_group"
	// DuplicateTotal: more than one TOTAL row for a season.
	DuplicateTotal AnomalyKind = "duplicate_total"
	// InvalidSeasonID: a season identifier with no readable start year.
	InvalidSeasonID AnomalyKind = "invalid_season_id"
)

// Anomaly records a fallback applied to one season. It is advisory: the
// season is still present in the output.
type Anomaly struct {
	Kind   AnomalyKind `json:"kind"`
	Season string      `json:"season"`
	Detail string      `json:"detail"`
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s season=%q: %s", a.Kind, a.Season, a.Detail)
}
