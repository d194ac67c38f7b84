// Package render turns a built career into the shapes the surfaces show: a
// text table, a CSV download and chart series.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/atrbyg24/nba-dashboard/internal/career"
)

var header = []string{"Season", "Team", "Age", "GP", "PTS", "REB", "AST", "STL", "BLK", "PPG", "RPG", "APG"}

// Table writes an aligned text table, one line per season. An empty career
// writes a "no data" line instead.
func Table(w io.Writer, c career.Career) error {
	if len(c.Seasons) == 0 {
		_, err := fmt.Fprintln(w, "No season data available.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	writeLine(tw, header)
	for _, s := range c.Seasons {
		writeLine(tw, record(s))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}

func writeLine(w io.Writer, cells []string) {
	for _, c := range cells {
		fmt.Fprint(w, c, "\t")
	}
	fmt.Fprintln(w)
}

// CSV writes the same columns as Table with a header row.
func CSV(w io.Writer, c career.Career) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range c.Seasons {
		if err := cw.Write(record(s)); err != nil {
			return fmt.Errorf("write csv row %s: %w", s.Season, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(s career.DerivedSeasonStat) []string {
	return []string{
		s.Season,
		s.TeamAbbreviation,
		num(s.PlayerAge, 0),
		strconv.Itoa(s.GamesPlayed),
		num(s.Points, 0),
		num(s.Rebounds, 0),
		num(s.Assists, 0),
		num(s.Steals, 0),
		num(s.Blocks, 0),
		num(s.PointsPerGame, 1),
		num(s.ReboundsPerGame, 1),
		num(s.AssistsPerGame, 1),
	}
}

func num(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// --------------------------------------------------------------------------
// Chart
// --------------------------------------------------------------------------

// Series is one line of the career chart.
type Series struct {
	Key    string    `json:"key"`
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// ChartData is the line chart of per-game rates by season. Values[i] of
// every series belongs to Categories[i].
type ChartData struct {
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
}

// Chart builds the points, rebounds and assists per-game series in season
// order.
func Chart(c career.Career) ChartData {
	n := len(c.Seasons)
	data := ChartData{
		Categories: make([]string, 0, n),
		Series: []Series{
			{Key: "pointsPerGame", Label: "Points per game", Values: make([]float64, 0, n)},
			{Key: "reboundsPerGame", Label: "Rebounds per game", Values: make([]float64, 0, n)},
			{Key: "assistsPerGame", Label: "Assists per game", Values: make([]float64, 0, n)},
		},
	}
	for _, s := range c.Seasons {
		data.Categories = append(data.Categories, s.Season)
		data.Series[0].Values = append(data.Series[0].Values, s.PointsPerGame)
		data.Series[1].Values = append(data.Series[1].Values, s.ReboundsPerGame)
		data.Series[2].Values = append(data.Series[2].Values, s.AssistsPerGame)
	}
	return data
}
