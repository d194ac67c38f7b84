package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atrbyg24/nba-dashboard/internal/api/handler"
	"github.com/atrbyg24/nba-dashboard/internal/career"
	"github.com/atrbyg24/nba-dashboard/internal/config"
	"github.com/atrbyg24/nba-dashboard/internal/lookup"
	"github.com/atrbyg24/nba-dashboard/internal/provider"
	"github.com/atrbyg24/nba-dashboard/internal/render"
)

type fakeService struct {
	careers map[int][]career.RawSeasonRow
	err     error
	gotLim  int
}

func (f *fakeService) PlayerCareer(_ context.Context, id int) (lookup.PlayerCareer, error) {
	if f.err != nil {
		return lookup.PlayerCareer{}, f.err
	}
	rows, ok := f.careers[id]
	if !ok {
		return lookup.PlayerCareer{}, fmt.Errorf("player %d: %w", id, lookup.ErrPlayerNotFound)
	}
	return lookup.PlayerCareer{
		Player: provider.Player{ID: id, Name: "Test Player"},
		Career: career.Build(rows),
	}, nil
}

func (f *fakeService) Search(_ context.Context, q string, limit int) ([]provider.Player, error) {
	f.gotLim = limit
	return []provider.Player{{ID: 2544, Name: "LeBron James"}}, f.err
}

type fakeHealth struct{ err error }

func (f fakeHealth) HealthCheck(context.Context) error { return f.err }

func newRouter(svc handler.CareerService, health handler.HealthChecker) http.Handler {
	cfg := &config.Config{CareerTTL: time.Hour}
	h := handler.New(svc, health, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Get("/health/db", h.HealthCheckDB)
	r.Get("/players/search", h.SearchPlayers)
	r.Get("/players/{playerID}/career", h.GetPlayerCareer)
	r.Get("/players/{playerID}/career.csv", h.GetPlayerCareerCSV)
	r.Get("/players/{playerID}/chart", h.GetPlayerChart)
	return r
}

func traded() *fakeService {
	return &fakeService{careers: map[int][]career.RawSeasonRow{
		201142: {
			{Season: "2022-23", TeamAbbreviation: "BKN", GamesPlayed: 39, Points: 1166},
			{Season: "2022-23", TeamAbbreviation: "PHX", GamesPlayed: 8, Points: 210},
			{Season: "2022-23", TeamAbbreviation: "TOT", GamesPlayed: 47, Points: 1376},
			{Season: "2021-22", TeamAbbreviation: "BKN", GamesPlayed: 55, Points: 1643},
		},
		1: {},
	}}
}

func get(t *testing.T, h http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetPlayerCareer(t *testing.T) {
	r := newRouter(traded(), fakeHealth{})

	rec := get(t, r, "/players/201142/career", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}

	var body struct {
		Player  provider.Player            `json:"player"`
		Seasons []career.DerivedSeasonStat `json:"seasons"`
		Summary career.Summary             `json:"summary"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Seasons) != 2 {
		t.Fatalf("seasons = %+v", body.Seasons)
	}
	if body.Seasons[0].Season != "2021-22" || body.Seasons[1].TeamAbbreviation != "TOT" {
		t.Errorf("seasons = %+v", body.Seasons)
	}
	if body.Summary.GamesPlayed != 102 {
		t.Errorf("summary games = %d, want 102", body.Summary.GamesPlayed)
	}

	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}
	rec = get(t, r, "/players/201142/career", http.Header{"If-None-Match": {etag}})
	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional GET status = %d, want 304", rec.Code)
	}
}

func TestGetPlayerCareer_Errors(t *testing.T) {
	tests := []struct {
		name string
		svc  *fakeService
		path string
		want int
	}{
		{"non numeric id", traded(), "/players/abc/career", http.StatusBadRequest},
		{"negative id", traded(), "/players/-3/career", http.StatusBadRequest},
		{"unknown player", traded(), "/players/99/career", http.StatusNotFound},
		{"provider failure", &fakeService{err: errors.New("stats.nba.com timeout")}, "/players/5/career", http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newRouter(tt.svc, fakeHealth{}), tt.path, nil)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestGetPlayerCareer_EmptyCareer(t *testing.T) {
	rec := get(t, newRouter(traded(), fakeHealth{}), "/players/1/career", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]json.RawMessage
	json.NewDecoder(rec.Body).Decode(&body)
	if string(body["seasons"]) != "[]" {
		t.Errorf("seasons = %s, want []", body["seasons"])
	}
}

func TestGetPlayerCareerCSV(t *testing.T) {
	rec := get(t, newRouter(traded(), fakeHealth{}), "/players/201142/career.csv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 || records[2][1] != "TOT" {
		t.Errorf("records = %v", records)
	}
}

func TestGetPlayerChart(t *testing.T) {
	rec := get(t, newRouter(traded(), fakeHealth{}), "/players/201142/chart", nil)
	var chart render.ChartData
	if err := json.NewDecoder(rec.Body).Decode(&chart); err != nil {
		t.Fatal(err)
	}
	if len(chart.Categories) != 2 || chart.Series[0].Values[1] != 1376.0/47 {
		t.Errorf("chart = %+v", chart)
	}
}

func TestSearchPlayers(t *testing.T) {
	svc := traded()
	r := newRouter(svc, fakeHealth{})

	tests := []struct {
		path    string
		want    int
		wantLim int
	}{
		{"/players/search?q=lebron", http.StatusOK, 10},
		{"/players/search?q=lebron&limit=3", http.StatusOK, 3},
		{"/players/search", http.StatusBadRequest, 0},
		{"/players/search?q=x&limit=0", http.StatusBadRequest, 0},
		{"/players/search?q=x&limit=500", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			svc.gotLim = 0
			rec := get(t, r, tt.path, nil)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if svc.gotLim != tt.wantLim {
				t.Errorf("limit passed = %d, want %d", svc.gotLim, tt.wantLim)
			}
		})
	}
}

func TestHealthCheckDB(t *testing.T) {
	if rec := get(t, newRouter(traded(), fakeHealth{}), "/health/db", nil); rec.Code != http.StatusOK {
		t.Errorf("healthy status = %d", rec.Code)
	}
	if rec := get(t, newRouter(traded(), fakeHealth{err: errors.New("down")}), "/health/db", nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy status = %d", rec.Code)
	}
}
