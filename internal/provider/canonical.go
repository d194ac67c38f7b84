// Package provider defines the canonical shapes that statistics providers
// normalize into. Providers return these and career.RawSeasonRow values; the
// seeders and the lookup service never see provider-specific JSON or HTML.
package provider

import "encoding/json"

// Player is the canonical directory entry written to the players table.
type Player struct {
	ID        int                    `json:"id"`
	Name      string                 `json:"name"`
	FirstName string                 `json:"first_name,omitempty"`
	LastName  string                 `json:"last_name,omitempty"`
	Slug      string                 `json:"slug,omitempty"`
	TeamID    *int                   `json:"team_id,omitempty"`
	TeamAbbr  string                 `json:"team_abbreviation,omitempty"`
	FromYear  *int                   `json:"from_year,omitempty"`
	ToYear    *int                   `json:"to_year,omitempty"`
	IsActive  bool                   `json:"is_active"`
	Meta      map[string]interface{} `json:"meta,omitempty"`
	Raw       json.RawMessage        `json:"raw,omitempty"`
}
