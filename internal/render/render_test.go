package render_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/atrbyg24/nba-dashboard/internal/career"
	"github.com/atrbyg24/nba-dashboard/internal/render"
)

func sample() career.Career {
	return career.Build([]career.RawSeasonRow{
		{Season: "2022-23", TeamAbbreviation: "DAL", PlayerAge: 24, GamesPlayed: 20, Points: 541, Rebounds: 72, Assists: 110},
		{Season: "2022-23", TeamAbbreviation: "BKN", PlayerAge: 24, GamesPlayed: 40, Points: 1094, Rebounds: 203, Assists: 210},
		{Season: "2022-23", TeamAbbreviation: "TOT", PlayerAge: 24, GamesPlayed: 60, Points: 1638, Rebounds: 275, Assists: 320},
		{Season: "2021-22", TeamAbbreviation: "BKN", PlayerAge: 23, GamesPlayed: 29, Points: 806, Rebounds: 129, Assists: 168},
		{Season: "2020-21", TeamAbbreviation: "BKN", PlayerAge: 22, GamesPlayed: 0},
	})
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Table(&buf, sample()); err != nil {
		t.Fatalf("Table: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 seasons, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Season") || !strings.Contains(lines[0], "PPG") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "2020-21") || !strings.Contains(lines[1], "0.0") {
		t.Errorf("first season line = %q", lines[1])
	}
	if !strings.Contains(lines[3], "TOT") || !strings.Contains(lines[3], "27.3") {
		t.Errorf("traded season line = %q", lines[3])
	}
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Table(&buf, career.Build(nil)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No season data") {
		t.Errorf("got %q", buf.String())
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := render.CSV(&buf, sample()); err != nil {
		t.Fatalf("CSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("records = %d, want 4", len(records))
	}
	want := []string{"2022-23", "TOT", "24", "60", "1638", "275", "320", "0", "0", "27.3", "4.6", "5.3"}
	for i, v := range want {
		if records[3][i] != v {
			t.Errorf("column %s = %q, want %q", records[0][i], records[3][i], v)
		}
	}

	buf.Reset()
	render.CSV(&buf, career.Build(nil))
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("empty career CSV should be header only, got %q", buf.String())
	}
}

func TestChart(t *testing.T) {
	data := render.Chart(sample())

	wantCats := []string{"2020-21", "2021-22", "2022-23"}
	if strings.Join(data.Categories, ",") != strings.Join(wantCats, ",") {
		t.Errorf("categories = %v", data.Categories)
	}
	if len(data.Series) != 3 {
		t.Fatalf("series = %d", len(data.Series))
	}
	keys := []string{"pointsPerGame", "reboundsPerGame", "assistsPerGame"}
	for i, s := range data.Series {
		if s.Key != keys[i] {
			t.Errorf("series[%d] = %s, want %s", i, s.Key, keys[i])
		}
		if len(s.Values) != len(data.Categories) {
			t.Errorf("%s has %d values for %d categories", s.Key, len(s.Values), len(data.Categories))
		}
	}
	if data.Series[0].Values[1] != 806.0/29 {
		t.Errorf("2021-22 PPG = %v", data.Series[0].Values[1])
	}

	empty, _ := json.Marshal(render.Chart(career.Build(nil)))
	if !strings.Contains(string(empty), `"categories":[]`) || !strings.Contains(string(empty), `"values":[]`) {
		t.Errorf("empty chart should keep empty arrays: %s", empty)
	}
}
