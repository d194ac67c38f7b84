package career

import "sort"

// Summary aggregates a career over its normalized seasons, so a traded
// player's per-team rows are never counted twice.
type Summary struct {
	Seasons         int     `json:"seasons"`
	FirstSeason     string  `json:"first_season,omitempty"`
	LastSeason      string  `json:"last_season,omitempty"`
	GamesPlayed     int     `json:"games_played"`
	Points          float64 `json:"points"`
	Rebounds        float64 `json:"rebounds"`
	Assists         float64 `json:"assists"`
	Steals          float64 `json:"steals"`
	Blocks          float64 `json:"blocks"`
	PointsPerGame   float64 `json:"points_per_game"`
	ReboundsPerGame float64 `json:"rebounds_per_game"`
	AssistsPerGame  float64 `json:"assists_per_game"`
}

// Career is the full result of one lookup.
type Career struct {
	Seasons   []DerivedSeasonStat `json:"seasons"`
	Summary   Summary             `json:"summary"`
	Anomalies []Anomaly           `json:"anomalies"`
}

// HasFallback reports whether any season needed a fallback.
func (c Career) HasFallback() bool {
	return len(c.Anomalies) > 0
}

// Build runs Normalize then Derive and summarizes the result. Empty input
// yields an empty Career.
func Build(rows []RawSeasonRow) Career {
	normalized, anomalies := Normalize(rows)
	seasons, deriveAnomalies := Derive(normalized)
	anomalies = append(anomalies, deriveAnomalies...)

	sort.SliceStable(anomalies, func(i, j int) bool {
		ki, kj := newSeasonKey(anomalies[i].Season), newSeasonKey(anomalies[j].Season)
		if c := ki.compare(kj); c != 0 {
			return c < 0
		}
		return anomalies[i].Kind < anomalies[j].Kind
	})
	if anomalies == nil {
		anomalies = []Anomaly{}
	}

	return Career{
		Seasons:   seasons,
		Summary:   summarize(seasons),
		Anomalies: anomalies,
	}
}

func summarize(seasons []DerivedSeasonStat) Summary {
	var s Summary
	if len(seasons) == 0 {
		return s
	}
	s.Seasons = len(seasons)
	s.FirstSeason = seasons[0].Season
	s.LastSeason = seasons[len(seasons)-1].Season
	for _, st := range seasons {
		s.GamesPlayed += st.GamesPlayed
		s.Points += st.Points
		s.Rebounds += st.Rebounds
		s.Assists += st.Assists
		s.Steals += st.Steals
		s.Blocks += st.Blocks
	}
	s.PointsPerGame = PerGame(s.Points, s.GamesPlayed)
	s.ReboundsPerGame = PerGame(s.Rebounds, s.GamesPlayed)
	s.AssistsPerGame = PerGame(s.Assists, s.GamesPlayed)
	return s
}
