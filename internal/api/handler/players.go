package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atrbyg24/nba-dashboard/internal/api/respond"
	"github.com/atrbyg24/nba-dashboard/internal/lookup"
	"github.com/atrbyg24/nba-dashboard/internal/render"
)

const maxSearchLimit = 50

// SearchPlayers finds players by name.
// @Summary Search players
// @Description Case-insensitive substring match on player name, active players first.
// @Tags players
// @Produce json
// @Param q query string true "Name fragment"
// @Param limit query int false "Maximum results (1-50)" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/players/search [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_QUERY", "q query parameter is required")
		return
	}

	limit := lookup.DefaultSearchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxSearchLimit {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	players, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		h.logger.Error("Player search failed", "q", q, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "SEARCH_FAILED", "Player search failed")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"query":   q,
		"count":   len(players),
		"players": players,
	})
}

// GetPlayerCareer returns a player's season-by-season career.
// @Summary Get player career
// @Description One row per season (traded seasons collapsed to the combined TOT row), per-game rates, career summary and any data-quality anomalies. Seasons are ordered oldest first.
// @Tags players
// @Produce json
// @Param playerID path int true "stats.nba.com player id"
// @Param If-None-Match header string false "ETag from a previous response"
// @Success 200 {object} lookup.PlayerCareer
// @Success 304
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/players/{playerID}/career [get]
func (h *Handler) GetPlayerCareer(w http.ResponseWriter, r *http.Request) {
	pc, ok := h.loadCareer(w, r)
	if !ok {
		return
	}
	data, err := json.Marshal(pc)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode career")
		return
	}
	h.writeCached(w, r, "application/json", data)
}

// GetPlayerCareerCSV returns the season table as CSV.
// @Summary Download player career as CSV
// @Tags players
// @Produce text/csv
// @Param playerID path int true "stats.nba.com player id"
// @Success 200 {string} string
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/players/{playerID}/career.csv [get]
func (h *Handler) GetPlayerCareerCSV(w http.ResponseWriter, r *http.Request) {
	pc, ok := h.loadCareer(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.CSV(&buf, pc.Career); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode career")
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="career_`+strconv.Itoa(pc.Player.ID)+`.csv"`)
	h.writeCached(w, r, "text/csv; charset=utf-8", buf.Bytes())
}

// GetPlayerChart returns per-game series for the career line chart.
// @Summary Get player career chart series
// @Tags players
// @Produce json
// @Param playerID path int true "stats.nba.com player id"
// @Success 200 {object} render.ChartData
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/players/{playerID}/chart [get]
func (h *Handler) GetPlayerChart(w http.ResponseWriter, r *http.Request) {
	pc, ok := h.loadCareer(w, r)
	if !ok {
		return
	}
	data, err := json.Marshal(render.Chart(pc.Career))
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode chart")
		return
	}
	h.writeCached(w, r, "application/json", data)
}

// loadCareer parses the path id and runs the lookup, writing the error
// response itself when it returns false.
func (h *Handler) loadCareer(w http.ResponseWriter, r *http.Request) (lookup.PlayerCareer, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PLAYER_ID", "playerID must be a positive integer")
		return lookup.PlayerCareer{}, false
	}

	pc, err := h.svc.PlayerCareer(r.Context(), id)
	switch {
	case errors.Is(err, lookup.ErrPlayerNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
		return lookup.PlayerCareer{}, false
	case err != nil:
		h.logger.Error("Career lookup failed", "player_id", id, "error", err)
		respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Could not load season data", err.Error())
		return lookup.PlayerCareer{}, false
	}
	return pc, true
}

func (h *Handler) writeCached(w http.ResponseWriter, r *http.Request, contentType string, data []byte) {
	etag := respond.ComputeETag(data)
	if respond.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteBody(w, contentType, data, etag, h.cfg.CareerTTL)
}
