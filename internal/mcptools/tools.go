// Package mcptools exposes career lookups as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atrbyg24/nba-dashboard/internal/lookup"
	"github.com/atrbyg24/nba-dashboard/internal/provider"
	"github.com/atrbyg24/nba-dashboard/internal/render"
)

// Service is the lookup surface the tools call. *lookup.Service satisfies it.
type Service interface {
	PlayerCareer(ctx context.Context, playerID int) (lookup.PlayerCareer, error)
	Search(ctx context.Context, q string, limit int) ([]provider.Player, error)
}

// ToolInfo is a registry entry listed at /tools.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SearchArgs are the player_search tool arguments.
type SearchArgs struct {
	Query string `json:"query" jsonschema:"Player name or fragment (required)"`
	Limit int    `json:"limit" jsonschema:"Maximum results (default 10)"`
}

// CareerArgs are the player_career tool arguments.
type CareerArgs struct {
	PlayerID int    `json:"player_id" jsonschema:"stats.nba.com player id (required)"`
	Format   string `json:"format" jsonschema:"json|table|csv|chart (default json)"`
}

// NewServer builds an MCP server with the player tools registered and
// returns the registry alongside it.
func NewServer(svc Service, version string) (*mcp.Server, []ToolInfo) {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nba-career-mcp",
			Version: version,
		},
		nil,
	)

	registry := make([]ToolInfo, 0, 2)

	addTool(server, &registry, &mcp.Tool{
		Name:        "player_search",
		Description: "Find NBA players by name; returns ids for player_career",
	}, searchTool(svc))

	addTool(server, &registry, &mcp.Tool{
		Name:        "player_career",
		Description: "Season-by-season career with traded seasons collapsed and per-game rates",
	}, careerTool(svc))

	return server, registry
}

func addTool[T any](server *mcp.Server, registry *[]ToolInfo, tool *mcp.Tool, h func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, h)
}

func searchTool(svc Service) func(context.Context, *mcp.CallToolRequest, SearchArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(args.Query) == "" {
			return toolError(fmt.Errorf("query is required")), nil, nil
		}
		players, err := svc.Search(ctx, args.Query, args.Limit)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.MarshalIndent(players, "", "  "))
	}
}

func careerTool(svc Service) func(context.Context, *mcp.CallToolRequest, CareerArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args CareerArgs) (*mcp.CallToolResult, any, error) {
		if args.PlayerID <= 0 {
			return toolError(fmt.Errorf("player_id is required")), nil, nil
		}
		pc, err := svc.PlayerCareer(ctx, args.PlayerID)
		if errors.Is(err, lookup.ErrPlayerNotFound) {
			return toolError(fmt.Errorf("no player with id %d; use player_search", args.PlayerID)), nil, nil
		}
		if err != nil {
			return toolError(err), nil, nil
		}

		switch args.Format {
		case "", "json":
			return toolJSON(json.MarshalIndent(pc, "", "  "))
		case "chart":
			return toolJSON(json.MarshalIndent(render.Chart(pc.Career), "", "  "))
		case "table", "csv":
			var b strings.Builder
			fmt.Fprintf(&b, "%s (%d)\n", pc.Player.Name, pc.Player.ID)
			write := render.Table
			if args.Format == "csv" {
				write = render.CSV
			}
			if err := write(&b, pc.Career); err != nil {
				return toolError(err), nil, nil
			}
			return toolText(b.String()), nil, nil
		default:
			return toolError(fmt.Errorf("unknown format %q", args.Format)), nil, nil
		}
	}
}

// --------------------------------------------------------------------------
// Results
// --------------------------------------------------------------------------

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(string(res)), nil, nil
}

func toolText(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: s},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
