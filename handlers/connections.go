// ABOUTME: Connection MCP tool handlers
// ABOUTME: Implements request_connection, respond_connection, remove_connection and list_connections tools
package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ConnectionHandlers struct {
	session
}

func NewConnectionHandlers(svc *network.Service, actor uuid.UUID) *ConnectionHandlers {
	return &ConnectionHandlers{session{svc: svc, actor: actor}}
}

type ConnectionOutput struct {
	ID          string  `json:"id"`
	RequesterID string  `json:"requester_id"`
	AddresseeID string  `json:"addressee_id"`
	Status      string  `json:"status"`
	StatusText  string  `json:"status_text"`
	Message     string  `json:"message,omitempty"`
	AcceptedAt  *string `json:"accepted_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type RequestConnectionInput struct {
	AddresseeID string `json:"addressee_id" jsonschema:"Member to connect with (required)"`
	Message     string `json:"message,omitempty" jsonschema:"Optional note sent with the request"`
}

func (h *ConnectionHandlers) RequestConnection(ctx context.Context, _ *mcp.CallToolRequest, input RequestConnectionInput) (*mcp.CallToolResult, ConnectionOutput, error) {
	addressee, err := parseID("addressee_id", input.AddresseeID)
	if err != nil {
		return nil, ConnectionOutput{}, err
	}
	conn, err := h.svc.Connections.Request(ctx, h.actor, addressee, input.Message)
	if err != nil {
		return nil, ConnectionOutput{}, toolError(err)
	}
	return nil, connectionToOutput(conn), nil
}

type RespondConnectionInput struct {
	ConnectionID string `json:"connection_id" jsonschema:"Connection ID (required)"`
	Decision     string `json:"decision" jsonschema:"accept or decline"`
}

func (h *ConnectionHandlers) RespondConnection(ctx context.Context, _ *mcp.CallToolRequest, input RespondConnectionInput) (*mcp.CallToolResult, ConnectionOutput, error) {
	id, err := parseID("connection_id", input.ConnectionID)
	if err != nil {
		return nil, ConnectionOutput{}, err
	}
	conn, err := h.svc.Connections.Respond(ctx, id, h.actor, network.Decision(input.Decision))
	if err != nil {
		return nil, ConnectionOutput{}, toolError(err)
	}
	return nil, connectionToOutput(conn), nil
}

type RemoveConnectionInput struct {
	ConnectionID string `json:"connection_id" jsonschema:"Connection ID (required)"`
}

type RemovedOutput struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

func (h *ConnectionHandlers) RemoveConnection(ctx context.Context, _ *mcp.CallToolRequest, input RemoveConnectionInput) (*mcp.CallToolResult, RemovedOutput, error) {
	id, err := parseID("connection_id", input.ConnectionID)
	if err != nil {
		return nil, RemovedOutput{}, err
	}
	if err := h.svc.Connections.Remove(ctx, id, h.actor); err != nil {
		return nil, RemovedOutput{}, toolError(err)
	}
	return nil, RemovedOutput{ID: id.String(), Removed: true}, nil
}

type ListConnectionsInput struct {
	View string `json:"view,omitempty" jsonschema:"accepted (default), pending (awaiting my answer) or sent"`
}

type ListConnectionsOutput struct {
	Connections []ConnectionOutput `json:"connections"`
}

func (h *ConnectionHandlers) ListConnections(ctx context.Context, _ *mcp.CallToolRequest, input ListConnectionsInput) (*mcp.CallToolResult, ListConnectionsOutput, error) {
	var (
		conns []models.Connection
		err   error
	)
	switch input.View {
	case "", "accepted":
		conns, err = h.svc.Connections.ListAccepted(ctx, h.actor)
	case "pending":
		conns, err = h.svc.Connections.ListPending(ctx, h.actor)
	case "sent":
		conns, err = h.svc.Connections.ListSent(ctx, h.actor)
	default:
		return nil, ListConnectionsOutput{}, fmt.Errorf("invalid view %q", input.View)
	}
	if err != nil {
		return nil, ListConnectionsOutput{}, toolError(err)
	}

	result := make([]ConnectionOutput, len(conns))
	for i := range conns {
		result[i] = connectionToOutput(&conns[i])
	}
	return nil, ListConnectionsOutput{Connections: result}, nil
}

func connectionToOutput(c *models.Connection) ConnectionOutput {
	return ConnectionOutput{
		ID:          c.ID.String(),
		RequesterID: c.RequesterID.String(),
		AddresseeID: c.AddresseeID.String(),
		Status:      string(c.Status),
		StatusText:  display.ConnectionStatusText(c.Status),
		Message:     c.Message,
		AcceptedAt:  formatOptionalTime(c.AcceptedAt),
		CreatedAt:   formatTime(c.CreatedAt),
	}
}
