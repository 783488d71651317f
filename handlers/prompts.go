// ABOUTME: MCP prompt handlers for reusable networking workflow templates
// ABOUTME: Provides meeting preparation, follow-up and member summary prompts
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/network"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	session
}

func NewPromptHandlers(svc *network.Service, actor uuid.UUID) *PromptHandlers {
	return &PromptHandlers{session{svc: svc, actor: actor}}
}

// Prompts lists the templates served by GetPrompt.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{
			Name:        "meeting-prep",
			Description: "Prepare for a one-to-one meeting",
			Arguments: []*mcp.PromptArgument{
				{Name: "meeting_id", Description: "Meeting to prepare for", Required: true},
			},
		},
		{
			Name:        "follow-up-suggestions",
			Description: "Suggest what to do about open follow-ups and waiting requests",
		},
		{
			Name:        "member-summary",
			Description: "Summarize a member and your history with them",
			Arguments: []*mcp.PromptArgument{
				{Name: "member_id", Description: "Member to summarize", Required: true},
			},
		},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := request.Params.Name
	arguments := request.Params.Arguments
	switch name {
	case "meeting-prep":
		return h.getMeetingPrepPrompt(ctx, arguments)
	case "follow-up-suggestions":
		return h.getFollowUpSuggestionsPrompt(ctx)
	case "member-summary":
		return h.getMemberSummaryPrompt(ctx, arguments)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", name)
	}
}

func (h *PromptHandlers) memberName(ctx context.Context, id uuid.UUID) string {
	u, err := db.GetUser(ctx, h.svc.DB(), id)
	if err != nil || u == nil {
		return display.Unknown
	}
	return u.Name
}

func (h *PromptHandlers) getMeetingPrepPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	meetingID, err := parseID("meeting_id", args["meeting_id"])
	if err != nil {
		return nil, err
	}

	m, err := h.svc.Meetings.Get(ctx, meetingID, h.actor)
	if err != nil {
		return nil, toolError(err)
	}
	other, err := h.svc.Meetings.OtherParticipant(m, h.actor)
	if err != nil {
		return nil, toolError(err)
	}
	otherName := h.memberName(ctx, other)

	followUps, err := h.svc.FollowUps.List(ctx, h.actor, db.FollowUpFilter{MetWithUserID: &other, Limit: 5})
	if err != nil {
		return nil, toolError(err)
	}

	var promptText strings.Builder
	promptText.WriteString(fmt.Sprintf("Help me prepare for my meeting with %s.\n\n", otherName))
	when := m.MeetingDate
	if m.ConfirmedDate != nil {
		when = *m.ConfirmedDate
	}
	promptText.WriteString(fmt.Sprintf("Date: %s\n", when.Format("2006-01-02 15:04")))
	promptText.WriteString(fmt.Sprintf("Type: %s\n", display.MeetingTypeText(m.MeetingType)))
	promptText.WriteString(fmt.Sprintf("Status: %s\n", display.MeetingStatusText(m.Status)))
	if m.Location != "" {
		promptText.WriteString(fmt.Sprintf("Location: %s\n", m.Location))
	}
	promptText.WriteString(fmt.Sprintf("Purpose: %s\n", m.Purpose))
	if m.Agenda != "" {
		promptText.WriteString(fmt.Sprintf("Agenda: %s\n", m.Agenda))
	}

	if len(followUps) > 0 {
		promptText.WriteString("\nPrevious meetings:\n")
		for _, f := range followUps {
			promptText.WriteString(fmt.Sprintf("- %s at %s (%s): %s\n",
				f.MeetingDate.Format("2006-01-02"), f.Location, display.OutcomeText(f.Outcome), f.ConversationTopics))
			if f.FollowUpActions != "" {
				promptText.WriteString(fmt.Sprintf("  open actions: %s\n", f.FollowUpActions))
			}
		}
	}

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. Questions to ask")
	promptText.WriteString("\n2. Referrals or introductions I could offer")
	promptText.WriteString("\n3. Anything left open from earlier meetings")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Meeting prep: %s", otherName),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) getFollowUpSuggestionsPrompt(ctx context.Context) (*mcp.GetPromptResult, error) {
	inbox, err := h.svc.Inbox(ctx, h.actor)
	if err != nil {
		return nil, toolError(err)
	}

	var promptText strings.Builder
	promptText.WriteString("Things waiting on me in my business network:\n\n")

	for _, f := range inbox.FollowUps {
		promptText.WriteString(fmt.Sprintf("- Follow-up with %s from %s: %s\n",
			h.memberName(ctx, f.MetWithUserID), f.MeetingDate.Format("2006-01-02"), f.FollowUpActions))
	}
	for _, m := range inbox.Meetings {
		promptText.WriteString(fmt.Sprintf("- Meeting request from %s for %s: %s\n",
			h.memberName(ctx, m.RequesterID), m.MeetingDate.Format("2006-01-02"), m.Purpose))
	}
	for _, c := range inbox.Connections {
		promptText.WriteString(fmt.Sprintf("- Connection request from %s\n", h.memberName(ctx, c.RequesterID)))
	}
	for _, r := range inbox.Referrals {
		promptText.WriteString(fmt.Sprintf("- Referral from %s (%s interest): %s\n",
			h.memberName(ctx, r.FromUserID), display.InterestLevelText(r.InterestLevel), r.ReferralDescription))
	}
	for _, r := range inbox.Recommendations {
		promptText.WriteString(fmt.Sprintf("- %s recommends contacting %s: %s\n",
			h.memberName(ctx, r.RecommenderID), h.memberName(ctx, r.RecommendedUserID), r.BusinessDescription))
	}

	if inbox.Len() == 0 {
		promptText.WriteString("Nothing is waiting.\n")
	}

	promptText.WriteString("\nPlease:")
	promptText.WriteString("\n1. Prioritize what to handle first")
	promptText.WriteString("\n2. Draft short replies or outreach messages where useful")

	return &mcp.GetPromptResult{
		Description: "Follow-up suggestions",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) getMemberSummaryPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	memberID, err := parseID("member_id", args["member_id"])
	if err != nil {
		return nil, err
	}

	member, err := db.GetUser(ctx, h.svc.DB(), memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}
	if member == nil {
		return nil, fmt.Errorf("member not found")
	}

	var companyName string
	if member.CompanyID != nil {
		company, err := db.GetCompany(ctx, h.svc.DB(), *member.CompanyID)
		if err == nil && company != nil {
			companyName = company.Name
		}
	}

	followUps, err := h.svc.FollowUps.List(ctx, h.actor, db.FollowUpFilter{MetWithUserID: &memberID})
	if err != nil {
		return nil, toolError(err)
	}
	recs, err := h.svc.Recommendations.List(ctx, h.actor, db.RecommendationsAll, "")
	if err != nil {
		return nil, toolError(err)
	}

	var promptText strings.Builder
	promptText.WriteString("Please summarize this member of my network:\n\n")
	promptText.WriteString(fmt.Sprintf("Name: %s\n", member.Name))
	if member.Position != "" {
		promptText.WriteString(fmt.Sprintf("Position: %s\n", member.Position))
	}
	if companyName != "" {
		promptText.WriteString(fmt.Sprintf("Company: %s\n", companyName))
	}
	promptText.WriteString(fmt.Sprintf("Membership: %s\n", member.MembershipStatus))
	promptText.WriteString(fmt.Sprintf("\nMeetings I logged with them: %d\n", len(followUps)))
	for _, f := range followUps {
		promptText.WriteString(fmt.Sprintf("- %s: %s (%s)\n", f.MeetingDate.Format("2006-01-02"), f.ConversationTopics, display.OutcomeText(f.Outcome)))
	}

	involved := 0
	for _, r := range recs {
		if r.RecommendedUserID == memberID || r.RecommenderID == memberID || r.RecommendedToID == memberID {
			involved++
		}
	}
	promptText.WriteString(fmt.Sprintf("\nRecommendations we share: %d\n", involved))

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. A brief summary of who they are and what they do")
	promptText.WriteString("\n2. How we could help each other")
	promptText.WriteString("\n3. A suggested next step")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Summary for member: %s", member.Name),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}
