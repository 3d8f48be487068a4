package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/giftwise/giftwise-cli/internal/gemini"
	"github.com/giftwise/giftwise-cli/internal/store"
)

// ServeStdio starts the MCP server using the official go-sdk over stdio. The
// AI client may be nil; AI tools then report that no key is configured.
func ServeStdio(s *store.Store, ai *gemini.Client) error {
	if s == nil {
		return errors.New("store is required")
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "giftwise",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: `🎁 GIFTWISE - Gift Planning Assistant

You are connected to Giftwise, a budget-aware gift planner. Plans ("projects")
hold recipients ("people") and their gifts; each person has a personal budget
and each plan has an overall ceiling.

## Quick Reference
- PLANS:  list_projects(), switch_project(project)
- PEOPLE: list_people(), add_person(name, budget)
- GIFTS:  list_gifts(person?), add_gift(person, name, price), cycle_gift_status(giftId)
- MONEY:  project_stats() shows spent/planned vs the ceiling
- AI:     generate_ideas(person) fills the idea list, promote_idea(person, number) commits one

## Best Practices
- Check project_stats() before adding expensive gifts
- Generated ideas are suggestions only until promoted`,
		},
	)

	registerTools(server, s, ai)
	return server.Run(context.Background(), &mcp.StdioTransport{})
}

func textResult(data interface{}) (*mcp.CallToolResult, error) {
	if data == nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: "{}"},
			},
		}, nil
	}
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, nil
}

func boolPtr(b bool) *bool { return &b }
