package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/atrbyg24/nba-dashboard/internal/career"
	"github.com/atrbyg24/nba-dashboard/internal/config"
)

func TestFetchRowsValidation(t *testing.T) {
	cfg := &config.Config{}
	tests := []struct {
		name   string
		source string
		id     int
		slug   string
		want   string
	}{
		{"bref needs slug", "bref", 0, "", "--slug"},
		{"nbastats needs player", "nbastats", 0, "", "--player"},
		{"db needs player", "db", 0, "", "--player"},
		{"db needs url", "db", 5, "", "DATABASE_URL"},
		{"unknown", "espn", 5, "", "unknown source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fetchRows(context.Background(), cfg, tt.source, tt.id, tt.slug)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestWriteCareer(t *testing.T) {
	c := career.Build([]career.RawSeasonRow{
		{Season: "2015-16", TeamAbbreviation: "GSW", GamesPlayed: 79, Points: 2375},
	})

	for _, format := range []string{"table", "csv", "json"} {
		var buf bytes.Buffer
		if err := writeCareer(&buf, c, format); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !strings.Contains(buf.String(), "2015-16") {
			t.Errorf("%s output missing season: %s", format, buf.String())
		}
	}

	var buf bytes.Buffer
	writeCareer(&buf, c, "json")
	var decoded career.Career
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil || decoded.Summary.Seasons != 1 {
		t.Errorf("json round trip: %v %+v", err, decoded.Summary)
	}

	if err := writeCareer(&buf, c, "yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
