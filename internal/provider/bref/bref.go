// Package bref reads a player's season totals from a basketball-reference
// style HTML player page.
//
// The totals table is sometimes shipped inside an HTML comment and rendered
// client-side, so comments are unwrapped before parsing. Combined rows for
// traded seasons are labelled "TOT" on older pages and "2TM"/"3TM" on newer
// ones; both map to career.TotalSentinel.
package bref

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/atrbyg24/nba-dashboard/internal/career"
	"github.com/atrbyg24/nba-dashboard/internal/provider"
)

// DefaultBaseURL is the public site root.
const DefaultBaseURL = "https://www.basketball-reference.com"

var multiTeam = regexp.MustCompile(`^\d+TM$`)

// Handler fetches and parses player pages.
type Handler struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewHandler creates a page fetcher. The site bans clients above roughly 20
// requests per minute.
func NewHandler(baseURL string, requestsPerMinute int, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 20
	}
	return &Handler{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
		logger:     logger,
	}
}

// PlayerCareer fetches the totals table for a player slug such as
// "jamesle01".
func (h *Handler) PlayerCareer(ctx context.Context, slug string) ([]career.RawSeasonRow, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("player slug is required")
	}
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := fmt.Sprintf("%s/players/%s/%s.html", h.baseURL, slug[:1], slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; nba-dashboard)")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player page %s returned %d", slug, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	rows, err := ParseTotals(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", slug, err)
	}
	h.logger.Debug("Parsed totals table", "slug", slug, "rows", len(rows))
	return rows, nil
}

// ParseTotals extracts season total rows from a player page.
func ParseTotals(page string) ([]career.RawSeasonRow, error) {
	page = strings.NewReplacer("<!--", "", "-->", "").Replace(page)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	table := doc.Find("table#totals_stats, table#totals").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("totals table not found")
	}

	var rows []career.RawSeasonRow
	table.Find("tbody tr").Each(func(i int, tr *goquery.Selection) {
		if tr.HasClass("thead") {
			return
		}
		if r, ok := parseRow(tr); ok {
			rows = append(rows, r)
		}
	})
	return rows, nil
}

func parseRow(tr *goquery.Selection) (career.RawSeasonRow, bool) {
	season := cell(tr, "year_id", "season")
	if season == "" {
		return career.RawSeasonRow{}, false
	}

	team := cell(tr, "team_name_abbr", "team_id")
	if multiTeam.MatchString(team) {
		team = career.TotalSentinel
	}

	num := func(keys ...string) float64 {
		v, _ := provider.ExtractValue(cell(tr, keys...))
		return v
	}
	gp, _ := provider.ExtractInt(cell(tr, "games", "g"))

	return career.RawSeasonRow{
		Season:           season,
		TeamAbbreviation: team,
		PlayerAge:        num("age"),
		GamesPlayed:      gp,
		Points:           num("pts"),
		Rebounds:         num("trb"),
		Assists:          num("ast"),
		Steals:           num("stl"),
		Blocks:           num("blk"),
	}, true
}

// cell returns the text of the first th/td whose data-stat matches one of
// keys. Newer page layouts renamed several columns.
func cell(tr *goquery.Selection, keys ...string) string {
	for _, k := range keys {
		s := tr.Find(fmt.Sprintf(`[data-stat="%s"]`, k))
		if s.Length() > 0 {
			return strings.TrimSpace(s.First().Text())
		}
	}
	return ""
}
