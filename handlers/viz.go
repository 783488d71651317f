// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides the network_graph tool for agents
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/bizlink/viz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VizHandlers struct {
	db *sql.DB
}

func NewVizHandlers(database *sql.DB) *VizHandlers {
	return &VizHandlers{db: database}
}

type NetworkGraphInput struct {
	MemberID string `json:"member_id,omitempty" jsonschema:"Only draw this member's neighbourhood"`
}

type NetworkGraphOutput struct {
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) NetworkGraph(ctx context.Context, _ *mcp.CallToolRequest, input NetworkGraphInput) (*mcp.CallToolResult, NetworkGraphOutput, error) {
	focus, err := parseOptionalID("member_id", input.MemberID)
	if err != nil {
		return nil, NetworkGraphOutput{}, err
	}

	dot, err := viz.NewGraphGenerator(h.db).NetworkGraph(ctx, focus)
	if err != nil {
		return nil, NetworkGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	return nil, NetworkGraphOutput{
		DOTSource: dot,
		NodeCount: strings.Count(dot, "[label="),
		EdgeCount: strings.Count(dot, "->"),
	}, nil
}
