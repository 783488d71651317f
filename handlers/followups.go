// ABOUTME: Follow-up log MCP tool handlers
// ABOUTME: Implements log_follow_up, update_follow_up, remove_follow_up, get_follow_up and list_follow_ups tools
package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type FollowUpHandlers struct {
	session
}

func NewFollowUpHandlers(svc *network.Service, actor uuid.UUID) *FollowUpHandlers {
	return &FollowUpHandlers{session{svc: svc, actor: actor}}
}

type FollowUpOutput struct {
	ID                    string  `json:"id"`
	UserID                string  `json:"user_id"`
	MetWithUserID         string  `json:"met_with_user_id"`
	InvitedByUserID       *string `json:"invited_by_user_id,omitempty"`
	GroupName             string  `json:"group_name,omitempty"`
	Location              string  `json:"location"`
	MeetingDate           string  `json:"meeting_date"`
	ConversationTopics    string  `json:"conversation_topics"`
	MeetingType           string  `json:"meeting_type"`
	DurationMinutes       *int    `json:"duration_minutes,omitempty"`
	Duration              string  `json:"duration"`
	Outcome               string  `json:"outcome"`
	OutcomeText           string  `json:"outcome_text"`
	OutcomeColor          string  `json:"outcome_color"`
	FollowUpActions       string  `json:"follow_up_actions,omitempty"`
	BusinessOpportunities string  `json:"business_opportunities,omitempty"`
	ReferralsGiven        string  `json:"referrals_given,omitempty"`
	ReferralsReceived     string  `json:"referrals_received,omitempty"`
	FutureMeetingPlanned  bool    `json:"future_meeting_planned"`
	NextMeetingDate       *string `json:"next_meeting_date,omitempty"`
	Notes                 string  `json:"notes,omitempty"`
	Status                string  `json:"status"`
	StatusText            string  `json:"status_text"`
	NeedsFollowUp         bool    `json:"needs_follow_up"`
	CreatedAt             string  `json:"created_at"`
}

type LogFollowUpInput struct {
	MetWithUserID         string `json:"met_with_user_id" jsonschema:"Member you met (required)"`
	InvitedByUserID       string `json:"invited_by_user_id,omitempty" jsonschema:"Member who invited you"`
	GroupName             string `json:"group_name,omitempty" jsonschema:"Group or chapter name"`
	Location              string `json:"location" jsonschema:"Where you met (required)"`
	MeetingDate           string `json:"meeting_date" jsonschema:"When you met (RFC3339 or YYYY-MM-DD, required)"`
	ConversationTopics    string `json:"conversation_topics" jsonschema:"What you talked about (required)"`
	MeetingType           string `json:"meeting_type,omitempty" jsonschema:"one_to_one (default), group_meeting, coffee_chat, business_lunch or other"`
	DurationMinutes       *int   `json:"duration_minutes,omitempty" jsonschema:"Length of the meeting in minutes"`
	Outcome               string `json:"outcome,omitempty" jsonschema:"excellent, good (default), neutral, poor or no_show"`
	FollowUpActions       string `json:"follow_up_actions,omitempty" jsonschema:"Actions to take next"`
	BusinessOpportunities string `json:"business_opportunities,omitempty" jsonschema:"Opportunities spotted"`
	ReferralsGiven        string `json:"referrals_given,omitempty" jsonschema:"Referrals you gave"`
	ReferralsReceived     string `json:"referrals_received,omitempty" jsonschema:"Referrals you received"`
	FutureMeetingPlanned  bool   `json:"future_meeting_planned,omitempty" jsonschema:"Whether another meeting is planned"`
	NextMeetingDate       string `json:"next_meeting_date,omitempty" jsonschema:"Date of the next meeting"`
	Notes                 string `json:"notes,omitempty" jsonschema:"Private notes"`
	Status                string `json:"status,omitempty" jsonschema:"Override the derived status"`
}

func (h *FollowUpHandlers) LogFollowUp(ctx context.Context, _ *mcp.CallToolRequest, input LogFollowUpInput) (*mcp.CallToolResult, FollowUpOutput, error) {
	metWith, err := parseID("met_with_user_id", input.MetWithUserID)
	if err != nil {
		return nil, FollowUpOutput{}, err
	}
	invitedBy, err := parseOptionalID("invited_by_user_id", input.InvitedByUserID)
	if err != nil {
		return nil, FollowUpOutput{}, err
	}
	meetingDate, err := parseTime("meeting_date", input.MeetingDate)
	if err != nil {
		return nil, FollowUpOutput{}, err
	}
	nextDate, err := parseOptionalTime("next_meeting_date", input.NextMeetingDate)
	if err != nil {
		return nil, FollowUpOutput{}, err
	}

	f, err := h.svc.FollowUps.Create(ctx, h.actor, network.FollowUpDraft{
		MetWithUserID:         metWith,
		InvitedByUserID:       invitedBy,
		GroupName:             input.GroupName,
		Location:              input.Location,
		MeetingDate:           meetingDate,
		ConversationTopics:    input.ConversationTopics,
		MeetingType:           models.FollowUpMeetingType(input.MeetingType),
		DurationMinutes:       input.DurationMinutes,
		Outcome:               models.Outcome(input.Outcome),
		FollowUpActions:       input.FollowUpActions,
		BusinessOpportunities: input.BusinessOpportunities,
		ReferralsGiven:        input.ReferralsGiven,
		ReferralsReceived:     input.ReferralsReceived,
		FutureMeetingPlanned:  input.FutureMeetingPlanned,
		NextMeetingDate:       nextDate,
		Notes:                 input.Notes,
		Status:                models.FollowUpStatus(input.Status),
	})
	if err != nil {
		return nil, FollowUpOutput{}, toolError(err)
	}
	return nil, followUpToOutput(f), nil
}

type UpdateFollowUpInput struct {
	FollowUpID            string  `json:"follow_up_id" jsonschema:"Follow-up ID (required)"`
	Location              *string `json:"location,omitempty" jsonschema:"New location"`
	MeetingDate           string  `json:"meeting_date,omitempty" jsonschema:"New meeting date"`
	ConversationTopics    *string `json:"conversation_topics,omitempty" jsonschema:"New topics"`
	MeetingType           string  `json:"meeting_type,omitempty" jsonschema:"New meeting type"`
	DurationMinutes       *int    `json:"duration_minutes,omitempty" jsonschema:"New duration in minutes"`
	Outcome               string  `json:"outcome,omitempty" jsonschema:"New outcome"`
	FollowUpActions       *string `json:"follow_up_actions,omitempty" jsonschema:"New follow-up actions (empty string clears them)"`
	BusinessOpportunities *string `json:"business_opportunities,omitempty" jsonschema:"New opportunities"`
	ReferralsGiven        *string `json:"referrals_given,omitempty" jsonschema:"New referrals given"`
	ReferralsReceived     *string `json:"referrals_received,omitempty" jsonschema:"New referrals received"`
	FutureMeetingPlanned  *bool   `json:"future_meeting_planned,omitempty" jsonschema:"Whether another meeting is planned"`
	NextMeetingDate       string  `json:"next_meeting_date,omitempty" jsonschema:"New next meeting date"`
	Notes                 *string `json:"notes,omitempty" jsonschema:"New notes"`
	Status                string  `json:"status,omitempty" jsonschema:"Override the status"`
	ClearDuration         bool    `json:"clear_duration,omitempty" jsonschema:"Remove the recorded duration"`
	ClearNextMeetingDate  bool    `json:"clear_next_meeting_date,omitempty" jsonschema:"Remove the next meeting date"`
	ClearInvitedBy        bool    `json:"clear_invited_by,omitempty" jsonschema:"Remove who invited you"`
}

func (h *FollowUpHandlers) UpdateFollowUp(ctx context.Context, _ *mcp.CallToolRequest, input UpdateFollowUpInput) (*mcp.CallToolResult, FollowUpOutput, error) {
	id, err := parseID("follow_up_id", input.FollowUpID)
	if err != nil {
		return nil, FollowUpOutput{}, err
	}
	meetingDate, err := parseOptionalTime("meeting_date", input.MeetingDate)
	if err != nil {
		return nil, FollowUpOutput{}, err
	}
	nextDate, err := parseOptionalTime("next_meeting_date", input.NextMeetingDate)
	if err != nil {
		return nil, FollowUpOutput{}, err
	}

	u := network.FollowUpUpdate{
		Location:              input.Location,
		MeetingDate:           meetingDate,
		ConversationTopics:    input.ConversationTopics,
		DurationMinutes:       input.DurationMinutes,
		FollowUpActions:       input.FollowUpActions,
		BusinessOpportunities: input.BusinessOpportunities,
		ReferralsGiven:        input.ReferralsGiven,
		ReferralsReceived:     input.ReferralsReceived,
		FutureMeetingPlanned:  input.FutureMeetingPlanned,
		NextMeetingDate:       nextDate,
		Notes:                 input.Notes,
		ClearDuration:         input.ClearDuration,
		ClearNextMeetingDate:  input.ClearNextMeetingDate,
		ClearInvitedBy:        input.ClearInvitedBy,
	}
	if input.MeetingType != "" {
		t := models.FollowUpMeetingType(input.MeetingType)
		u.MeetingType = &t
	}
	if input.Outcome != "" {
		o := models.Outcome(input.Outcome)
		u.Outcome = &o
	}
	if input.Status != "" {
		s := models.FollowUpStatus(input.Status)
		u.Status = &s
	}

	f, err := h.svc.FollowUps.Update(ctx, id, h.actor, u)
	if err != nil {
		return nil, FollowUpOutput{}, toolError(err)
	}
	return nil, followUpToOutput(f), nil
}

type FollowUpIDInput struct {
	FollowUpID string `json:"follow_up_id" jsonschema:"Follow-up ID (required)"`
}

func (h *FollowUpHandlers) RemoveFollowUp(ctx context.Context, _ *mcp.CallToolRequest, input FollowUpIDInput) (*mcp.CallToolResult, RemovedOutput, error) {
	id, err := parseID("follow_up_id", input.FollowUpID)
	if err != nil {
		return nil, RemovedOutput{}, err
	}
	if err := h.svc.FollowUps.Remove(ctx, id, h.actor); err != nil {
		return nil, RemovedOutput{}, toolError(err)
	}
	return nil, RemovedOutput{ID: id.String(), Removed: true}, nil
}

func (h *FollowUpHandlers) GetFollowUp(ctx context.Context, _ *mcp.CallToolRequest, input FollowUpIDInput) (*mcp.CallToolResult, FollowUpOutput, error) {
	id, err := parseID("follow_up_id", input.FollowUpID)
	if err != nil {
		return nil, FollowUpOutput{}, err
	}
	f, err := h.svc.FollowUps.Get(ctx, id, h.actor)
	if err != nil {
		return nil, FollowUpOutput{}, toolError(err)
	}
	return nil, followUpToOutput(f), nil
}

type ListFollowUpsInput struct {
	Status        string `json:"status,omitempty" jsonschema:"Filter by status"`
	Outcome       string `json:"outcome,omitempty" jsonschema:"Filter by outcome"`
	MetWithUserID string `json:"met_with_user_id,omitempty" jsonschema:"Only meetings with this member"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
}

type ListFollowUpsOutput struct {
	FollowUps []FollowUpOutput `json:"follow_ups"`
}

func (h *FollowUpHandlers) ListFollowUps(ctx context.Context, _ *mcp.CallToolRequest, input ListFollowUpsInput) (*mcp.CallToolResult, ListFollowUpsOutput, error) {
	metWith, err := parseOptionalID("met_with_user_id", input.MetWithUserID)
	if err != nil {
		return nil, ListFollowUpsOutput{}, err
	}
	items, err := h.svc.FollowUps.List(ctx, h.actor, db.FollowUpFilter{
		Status:        models.FollowUpStatus(input.Status),
		Outcome:       models.Outcome(input.Outcome),
		MetWithUserID: metWith,
		Limit:         input.Limit,
	})
	if err != nil {
		return nil, ListFollowUpsOutput{}, toolError(err)
	}

	result := make([]FollowUpOutput, len(items))
	for i := range items {
		result[i] = followUpToOutput(&items[i])
	}
	return nil, ListFollowUpsOutput{FollowUps: result}, nil
}

func followUpToOutput(f *models.FollowUp) FollowUpOutput {
	return FollowUpOutput{
		ID:                    f.ID.String(),
		UserID:                f.UserID.String(),
		MetWithUserID:         f.MetWithUserID.String(),
		InvitedByUserID:       formatOptionalID(f.InvitedByUserID),
		GroupName:             f.GroupName,
		Location:              f.Location,
		MeetingDate:           formatTime(f.MeetingDate),
		ConversationTopics:    f.ConversationTopics,
		MeetingType:           string(f.MeetingType),
		DurationMinutes:       f.DurationMinutes,
		Duration:              f.DurationText(),
		Outcome:               string(f.Outcome),
		OutcomeText:           display.OutcomeText(f.Outcome),
		OutcomeColor:          display.OutcomeColor(f.Outcome),
		FollowUpActions:       f.FollowUpActions,
		BusinessOpportunities: f.BusinessOpportunities,
		ReferralsGiven:        f.ReferralsGiven,
		ReferralsReceived:     f.ReferralsReceived,
		FutureMeetingPlanned:  f.FutureMeetingPlanned,
		NextMeetingDate:       formatOptionalTime(f.NextMeetingDate),
		Notes:                 f.Notes,
		Status:                string(f.Status),
		StatusText:            display.FollowUpStatusText(f.Status),
		NeedsFollowUp:         f.NeedsFollowUp(),
		CreatedAt:             formatTime(f.CreatedAt),
	}
}
