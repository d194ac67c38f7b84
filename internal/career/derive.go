package career

import (
	"fmt"
	"sort"
)

// Derive computes per-game rates for each normalized season and orders the
// result by season start year, earliest first.
//
// Start years come from ParseSeason, not from string order. A season whose
// identifier cannot be parsed is kept, placed after all valid seasons and
// reported as an InvalidSeasonID anomaly.
//
// Pure function: any permutation of the same input yields the same output.
func Derive(rows []NormalizedSeasonRow) ([]DerivedSeasonStat, []Anomaly) {
	type keyed struct {
		key  seasonKey
		stat DerivedSeasonStat
	}

	items := make([]keyed, len(rows))
	for i, r := range rows {
		items[i] = keyed{key: newSeasonKey(r.Season), stat: derive(r)}
	}

	sort.Slice(items, func(i, j int) bool {
		if c := items[i].key.compare(items[j].key); c != 0 {
			return c < 0
		}
		// Only reachable with duplicate season ids.
		a, b := items[i].stat.NormalizedSeasonRow, items[j].stat.NormalizedSeasonRow
		return compareRows(RawSeasonRow(a), RawSeasonRow(b)) < 0
	})

	out := make([]DerivedSeasonStat, len(items))
	var anomalies []Anomaly
	for i, it := range items {
		out[i] = it.stat
		if !it.key.valid {
			anomalies = append(anomalies, Anomaly{
				Kind:   InvalidSeasonID,
				Season: it.key.id,
				Detail: fmt.Sprintf("no start year in %q; ordered after dated seasons", it.key.id),
			})
		}
	}
	return out, anomalies
}

func derive(r NormalizedSeasonRow) DerivedSeasonStat {
	return DerivedSeasonStat{
		NormalizedSeasonRow: r,
		PointsPerGame:       PerGame(r.Points, r.GamesPlayed),
		ReboundsPerGame:     PerGame(r.Rebounds, r.GamesPlayed),
		AssistsPerGame:      PerGame(r.Assists, r.GamesPlayed),
		StealsPerGame:       PerGame(r.Steals, r.GamesPlayed),
		BlocksPerGame:       PerGame(r.Blocks, r.GamesPlayed),
	}
}

// PerGame divides a season total by games played, returning 0 when no games
// were played.
func PerGame(total float64, games int) float64 {
	if games <= 0 {
		return 0
	}
	return total / float64(games)
}
