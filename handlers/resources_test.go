package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readResource(t *testing.T, h *ResourceHandlers, uri string) map[string]any {
	t.Helper()
	result, err := h.ReadResource(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}})
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, uri, result.Contents[0].URI)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &payload))
	return payload
}

func TestReadResources(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()

	company := &models.Company{Name: "Acme Corp"}
	require.NoError(t, db.CreateCompany(ctx, database, company))
	alice := &models.User{Name: "Alice", CompanyID: &company.ID, IsActive: true, MembershipStatus: models.MembershipActive}
	require.NoError(t, db.CreateUser(ctx, database, alice))
	bob := seedMember(t, database, "Bob")

	_, _, err := NewConnectionHandlers(svc, bob).RequestConnection(ctx, nil, RequestConnectionInput{AddresseeID: alice.ID.String()})
	require.NoError(t, err)
	m := acceptedMeeting(t, svc, bob, alice.ID)

	h := NewResourceHandlers(svc, alice.ID)
	assert.Len(t, h.Resources(), 4)

	me := readResource(t, h, "bizlink://me")
	assert.Equal(t, "Alice", me["member"].(map[string]any)["name"])
	assert.Equal(t, "Acme Corp", me["company"].(map[string]any)["name"])

	inbox := readResource(t, h, "bizlink://inbox")
	assert.Len(t, inbox["connections"], 1)

	stats := readResource(t, h, "bizlink://stats")
	assert.EqualValues(t, 1, stats["meetings"].(map[string]any)["total"])

	meeting := readResource(t, h, "bizlink://meetings/"+m.ID)
	assert.Equal(t, m.ID, meeting["meeting"].(map[string]any)["id"])

	_, err = h.ReadResource(ctx, &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "https://example.com/contacts"}})
	assert.ErrorContains(t, err, "invalid URI scheme")

	_, err = h.ReadResource(ctx, &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "bizlink://deals"}})
	assert.ErrorContains(t, err, "unknown resource")

	outsider := NewResourceHandlers(svc, seedMember(t, database, "Carol"))
	_, err = outsider.ReadResource(ctx, &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "bizlink://meetings/" + m.ID}})
	assert.ErrorContains(t, err, "forbidden: ")
}

func TestGetPrompts(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	alice := seedMember(t, database, "Alice")
	bob := seedMember(t, database, "Bob Mensah")
	m := acceptedMeeting(t, svc, alice, bob)

	h := NewPromptHandlers(svc, alice)
	assert.Len(t, h.Prompts(), 3)

	result, err := h.GetPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{
		Name:      "meeting-prep",
		Arguments: map[string]string{"meeting_id": m.ID},
	}})
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	text := result.Messages[0].Content.(*mcp.TextContent).Text
	assert.Contains(t, text, "Bob Mensah")
	assert.Contains(t, text, "Talk about referrals")

	result, err = h.GetPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{Name: "follow-up-suggestions"}})
	require.NoError(t, err)
	assert.Contains(t, result.Messages[0].Content.(*mcp.TextContent).Text, "Nothing is waiting")

	result, err = h.GetPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{
		Name:      "member-summary",
		Arguments: map[string]string{"member_id": bob.String()},
	}})
	require.NoError(t, err)
	assert.Contains(t, result.Description, "Bob Mensah")

	_, err = h.GetPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{Name: "deal-analysis"}})
	assert.ErrorContains(t, err, "unknown prompt")
}
