// ABOUTME: MCP resource handlers for exposing network data
// ABOUTME: Provides read-only views of the acting member's profile, inbox, stats and meetings via URI
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceScheme = "bizlink://"

type ResourceHandlers struct {
	session
}

func NewResourceHandlers(svc *network.Service, actor uuid.UUID) *ResourceHandlers {
	return &ResourceHandlers{session{svc: svc, actor: actor}}
}

// Resources lists the fixed resources served by ReadResource.
func (h *ResourceHandlers) Resources() []*mcp.Resource {
	return []*mcp.Resource{
		{Name: "me", Title: "Me", Description: "The acting member and their company", MIMEType: "application/json", URI: resourceScheme + "me"},
		{Name: "inbox", Title: "Inbox", Description: "Requests, referrals and recommendations waiting on the acting member", MIMEType: "application/json", URI: resourceScheme + "inbox"},
		{Name: "stats", Title: "Stats", Description: "Meeting, referral, recommendation and follow-up counters", MIMEType: "application/json", URI: resourceScheme + "stats"},
		{Name: "network", Title: "Recommendation network", Description: "Most recommended members and top recommenders", MIMEType: "application/json", URI: resourceScheme + "network"},
	}
}

// MeetingTemplate describes bizlink://meetings/{meeting_id}.
func (h *ResourceHandlers) MeetingTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "meeting",
		Title:       "Meeting",
		Description: "A meeting with its referral cards. URI format: bizlink://meetings/{meeting_id}",
		MIMEType:    "application/json",
		URITemplate: resourceScheme + "meetings/{meeting_id}",
	}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if request == nil || request.Params == nil {
		return nil, fmt.Errorf("resource URI is required")
	}
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")

	var (
		payload any
		err     error
	)
	switch parts[0] {
	case "me":
		payload, err = h.readMe(ctx)
	case "inbox":
		payload, err = h.svc.Inbox(ctx, h.actor)
	case "stats":
		payload, err = h.svc.Stats.For(ctx, h.actor)
	case "network":
		payload, err = h.svc.Recommendations.Network(ctx, 10)
	case "meetings":
		if len(parts) != 2 || parts[1] == "" {
			return nil, fmt.Errorf("meeting ID is required; use URI format bizlink://meetings/{meeting_id}")
		}
		payload, err = h.readMeeting(ctx, parts[1])
	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
	if err != nil {
		return nil, toolError(err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", parts[0], err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

func (h *ResourceHandlers) readMe(ctx context.Context) (any, error) {
	user, err := db.GetUser(ctx, h.svc.DB(), h.actor)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("acting member %s not found", h.actor)
	}

	var company *models.Company
	if user.CompanyID != nil {
		if company, err = db.GetCompany(ctx, h.svc.DB(), *user.CompanyID); err != nil {
			return nil, fmt.Errorf("failed to fetch company: %w", err)
		}
	}

	return struct {
		Member  MemberOutput    `json:"member"`
		Company *models.Company `json:"company,omitempty"`
	}{memberToOutput(user), company}, nil
}

func (h *ResourceHandlers) readMeeting(ctx context.Context, idStr string) (any, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid meeting ID: %w", err)
	}

	m, err := h.svc.Meetings.Get(ctx, id, h.actor)
	if err != nil {
		return nil, err
	}
	cards, err := h.svc.Referrals.ListByMeeting(ctx, id, h.actor)
	if err != nil {
		return nil, err
	}

	referrals := make([]ReferralOutput, len(cards))
	for i := range cards {
		referrals[i] = referralToOutput(&cards[i])
	}
	return struct {
		Meeting   MeetingOutput    `json:"meeting"`
		Referrals []ReferralOutput `json:"referrals"`
	}{meetingToOutput(m), referrals}, nil
}
