package career

import (
	"fmt"
	"sort"
	"strings"
)

// Normalize collapses a player's raw rows into exactly one row per season.
//
// A season's TOTAL row wins over its per-team rows. A season with a single
// team row keeps that row unchanged. Groups that break the provider's
// contract are resolved by selectRepresentative and reported as anomalies;
// they never abort the rest of the career.
//
// Pure function: output order is unspecified, see Derive for ordering.
func Normalize(rows []RawSeasonRow) ([]NormalizedSeasonRow, []Anomaly) {
	if len(rows) == 0 {
		return []NormalizedSeasonRow{}, nil
	}

	groups := make(map[string][]RawSeasonRow)
	order := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, seen := groups[r.Season]; !seen {
			order = append(order, r.Season)
		}
		groups[r.Season] = append(groups[r.Season], r)
	}

	out := make([]NormalizedSeasonRow, 0, len(groups))
	var anomalies []Anomaly
	for _, season := range order {
		row, anomaly := selectRepresentative(season, groups[season])
		if anomaly != nil {
			anomalies = append(anomalies, *anomaly)
		}
		out = append(out, NormalizedSeasonRow(row))
	}
	return out, anomalies
}

// selectRepresentative is the single decision point for which row stands for
// a season.
func selectRepresentative(season string, group []RawSeasonRow) (RawSeasonRow, *Anomaly) {
	var totals, teams []RawSeasonRow
	for _, r := range group {
		if r.IsTotal() {
			totals = append(totals, r)
		} else {
			teams = append(teams, r)
		}
	}

	switch {
	case len(totals) == 1:
		return totals[0], nil
	case len(totals) > 1:
		kept := mostGames(totals)
		return kept, &Anomaly{
			Kind:   DuplicateTotal,
			Season: season,
			Detail: fmt.Sprintf("%d %s rows reported; kept the one with %d games",
				len(totals), TotalSentinel, kept.GamesPlayed),
		}
	case len(teams) == 1:
		return teams[0], nil
	default:
		kept := mostGames(teams)
		return kept, &Anomaly{
			Kind:   MalformedSeasonGroup,
			Season: season,
			Detail: fmt.Sprintf("%d team rows (%s) without a %s row; kept %s with %d games",
				len(teams), teamList(teams), TotalSentinel, kept.TeamAbbreviation, kept.GamesPlayed),
		}
	}
}

// mostGames picks the row with the greatest games played. Ties go to more
// points, then to the alphabetically first team, then through compareRows,
// so the choice does not depend on input order.
func mostGames(rows []RawSeasonRow) RawSeasonRow {
	best := rows[0]
	for _, r := range rows[1:] {
		if compareRows(r, best) < 0 {
			best = r
		}
	}
	return best
}

// compareRows is a total order over rows of one season: negative when a is
// preferred. Rows that compare equal are identical in every field.
func compareRows(a, b RawSeasonRow) int {
	if a.GamesPlayed != b.GamesPlayed {
		return cmpDesc(float64(a.GamesPlayed), float64(b.GamesPlayed))
	}
	if a.Points != b.Points {
		return cmpDesc(a.Points, b.Points)
	}
	if c := strings.Compare(a.TeamAbbreviation, b.TeamAbbreviation); c != 0 {
		return c
	}
	for _, p := range [][2]float64{
		{a.Rebounds, b.Rebounds},
		{a.Assists, b.Assists},
		{a.Steals, b.Steals},
		{a.Blocks, b.Blocks},
	} {
		if p[0] != p[1] {
			return cmpDesc(p[0], p[1])
		}
	}
	if a.TeamID != b.TeamID {
		if a.TeamID < b.TeamID {
			return -1
		}
		return 1
	}
	if a.PlayerAge != b.PlayerAge {
		if a.PlayerAge < b.PlayerAge {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Season, b.Season)
}

func cmpDesc(a, b float64) int {
	if a > b {
		return -1
	}
	return 1
}

func teamList(rows []RawSeasonRow) string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.TeamAbbreviation
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
