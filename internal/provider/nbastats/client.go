// Package nbastats provides the HTTP client for the stats.nba.com endpoints
// behind the player career lookup.
//
// The API answers with "resultSets": named tables of positional rows plus a
// header list. It rejects requests without browser-like headers, and it
// throttles aggressive callers, so every request waits on a token bucket.
package nbastats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public stats.nba.com API root.
const DefaultBaseURL = "https://stats.nba.com/stats"

// ErrResultSetMissing is returned when a response lacks an expected table.
var ErrResultSetMissing = errors.New("result set missing")

// Client is the shared HTTP client for all stats.nba.com endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a stats.nba.com client with rate limiting.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 100
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// resultSet is one named table in a stats.nba.com response.
type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

type response struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

// set returns the result set with the given name.
func (r *response) set(name string) (*resultSet, error) {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrResultSetMissing, name, r.Resource)
}

// records maps each positional row onto its header names. Short rows leave
// the missing columns absent.
func (s *resultSet) records() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(s.RowSet))
	for _, raw := range s.RowSet {
		rec := make(map[string]interface{}, len(s.Headers))
		for i, h := range s.Headers {
			if i < len(raw) {
				rec[h] = raw[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

// get performs a rate-limited GET request to a stats.nba.com endpoint.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	c.logger.Debug("stats.nba.com request", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats.nba.com %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	var result response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
