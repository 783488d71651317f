// ABOUTME: One-to-one meeting MCP tool handlers
// ABOUTME: Implements propose, accept, decline, complete, cancel, update, remove, get and list meeting tools
package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type MeetingHandlers struct {
	session
}

func NewMeetingHandlers(svc *network.Service, actor uuid.UUID) *MeetingHandlers {
	return &MeetingHandlers{session{svc: svc, actor: actor}}
}

type MeetingOutput struct {
	ID             string  `json:"id"`
	RequesterID    string  `json:"requester_id"`
	RequestedID    string  `json:"requested_id"`
	MeetingDate    string  `json:"meeting_date"`
	ConfirmedDate  *string `json:"confirmed_date,omitempty"`
	Location       string  `json:"location,omitempty"`
	MeetingType    string  `json:"meeting_type"`
	Status         string  `json:"status"`
	StatusText     string  `json:"status_text"`
	Purpose        string  `json:"purpose"`
	Agenda         string  `json:"agenda,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	RequesterNotes string  `json:"requester_notes,omitempty"`
	RequestedNotes string  `json:"requested_notes,omitempty"`
	Priority       string  `json:"priority"`
	PriorityColor  string  `json:"priority_color"`
	AcceptedAt     *string `json:"accepted_at,omitempty"`
	CompletedAt    *string `json:"completed_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type ProposeMeetingInput struct {
	RequestedID string `json:"requested_id" jsonschema:"Member to meet (required)"`
	MeetingDate string `json:"meeting_date" jsonschema:"Proposed date (RFC3339, must be in the future)"`
	Purpose     string `json:"purpose" jsonschema:"Why you want to meet (required)"`
	Location    string `json:"location,omitempty" jsonschema:"Where to meet"`
	Agenda      string `json:"agenda,omitempty" jsonschema:"Agenda"`
	Notes       string `json:"notes,omitempty" jsonschema:"Shared notes"`
	MeetingType string `json:"meeting_type,omitempty" jsonschema:"in_person (default), virtual or phone"`
	Priority    string `json:"priority,omitempty" jsonschema:"low, medium (default), high or urgent"`
}

func (h *MeetingHandlers) ProposeMeeting(ctx context.Context, _ *mcp.CallToolRequest, input ProposeMeetingInput) (*mcp.CallToolResult, MeetingOutput, error) {
	requested, err := parseID("requested_id", input.RequestedID)
	if err != nil {
		return nil, MeetingOutput{}, err
	}
	date, err := parseTime("meeting_date", input.MeetingDate)
	if err != nil {
		return nil, MeetingOutput{}, err
	}

	m, err := h.svc.Meetings.Propose(ctx, h.actor, network.MeetingProposal{
		RequestedID: requested,
		MeetingDate: date,
		Purpose:     input.Purpose,
		Location:    input.Location,
		Agenda:      input.Agenda,
		Notes:       input.Notes,
		MeetingType: models.MeetingType(input.MeetingType),
		Priority:    models.Priority(input.Priority),
	})
	if err != nil {
		return nil, MeetingOutput{}, toolError(err)
	}
	return nil, meetingToOutput(m), nil
}

type MeetingIDInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"Meeting ID (required)"`
}

type AcceptMeetingInput struct {
	MeetingID     string `json:"meeting_id" jsonschema:"Meeting ID (required)"`
	ConfirmedDate string `json:"confirmed_date,omitempty" jsonschema:"Confirmed date (RFC3339)"`
	Location      string `json:"location,omitempty" jsonschema:"Override the location"`
	Notes         string `json:"notes,omitempty" jsonschema:"Your notes on the meeting"`
}

func (h *MeetingHandlers) AcceptMeeting(ctx context.Context, _ *mcp.CallToolRequest, input AcceptMeetingInput) (*mcp.CallToolResult, MeetingOutput, error) {
	id, err := parseID("meeting_id", input.MeetingID)
	if err != nil {
		return nil, MeetingOutput{}, err
	}
	confirmed, err := parseOptionalTime("confirmed_date", input.ConfirmedDate)
	if err != nil {
		return nil, MeetingOutput{}, err
	}

	m, err := h.svc.Meetings.Accept(ctx, id, h.actor, network.AcceptOptions{
		ConfirmedDate: confirmed,
		Location:      optString(input.Location),
		Notes:         optString(input.Notes),
	})
	if err != nil {
		return nil, MeetingOutput{}, toolError(err)
	}
	return nil, meetingToOutput(m), nil
}

type DeclineMeetingInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"Meeting ID (required)"`
	Reason    string `json:"reason,omitempty" jsonschema:"Why you are declining"`
}

func (h *MeetingHandlers) DeclineMeeting(ctx context.Context, _ *mcp.CallToolRequest, input DeclineMeetingInput) (*mcp.CallToolResult, MeetingOutput, error) {
	id, err := parseID("meeting_id", input.MeetingID)
	if err != nil {
		return nil, MeetingOutput{}, err
	}
	m, err := h.svc.Meetings.Decline(ctx, id, h.actor, input.Reason)
	if err != nil {
		return nil, MeetingOutput{}, toolError(err)
	}
	return nil, meetingToOutput(m), nil
}

type CompleteMeetingInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"Meeting ID (required)"`
	Notes     string `json:"notes,omitempty" jsonschema:"Your notes from the meeting"`
}

func (h *MeetingHandlers) CompleteMeeting(ctx context.Context, _ *mcp.CallToolRequest, input CompleteMeetingInput) (*mcp.CallToolResult, MeetingOutput, error) {
	id, err := parseID("meeting_id", input.MeetingID)
	if err != nil {
		return nil, MeetingOutput{}, err
	}
	m, err := h.svc.Meetings.Complete(ctx, id, h.actor, input.Notes)
	if err != nil {
		return nil, MeetingOutput{}, toolError(err)
	}
	return nil, meetingToOutput(m), nil
}

func (h *MeetingHandlers) CancelMeeting(ctx context.Context, _ *mcp.CallToolRequest, input MeetingIDInput) (*mcp.CallToolResult, MeetingOutput, error) {
	id, err := parseID("meeting_id", input.MeetingID)
	if err != nil {
		return nil, MeetingOutput{}, err
	}
	m, err := h.svc.Meetings.Cancel(ctx, id, h.actor)
	if err != nil {
		return nil, MeetingOutput{}, toolError(err)
	}
	return nil, meetingToOutput(m), nil
}

type UpdateMeetingInput struct {
	MeetingID      string `json:"meeting_id" jsonschema:"Meeting ID (required)"`
	MeetingDate    string `json:"meeting_date,omitempty" jsonschema:"New date (RFC3339)"`
	Location       string `json:"location,omitempty" jsonschema:"New location"`
	MeetingType    string `json:"meeting_type,omitempty" jsonschema:"in_person, virtual or phone"`
	Purpose        string `json:"purpose,omitempty" jsonschema:"New purpose"`
	Agenda         string `json:"agenda,omitempty" jsonschema:"New agenda"`
	Notes          string `json:"notes,omitempty" jsonschema:"New shared notes"`
	Priority       string `json:"priority,omitempty" jsonschema:"low, medium, high or urgent"`
	RequesterNotes string `json:"requester_notes,omitempty" jsonschema:"Requester's own notes (requester only)"`
	RequestedNotes string `json:"requested_notes,omitempty" jsonschema:"Requested member's own notes (requested member only)"`
}

func (h *MeetingHandlers) UpdateMeeting(ctx context.Context, _ *mcp.CallToolRequest, input UpdateMeetingInput) (*mcp.CallToolResult, MeetingOutput, error) {
	id, err := parseID("meeting_id", input.MeetingID)
	if err != nil {
		return nil, MeetingOutput{}, err
	}
	date, err := parseOptionalTime("meeting_date", input.MeetingDate)
	if err != nil {
		return nil, MeetingOutput{}, err
	}

	u := network.MeetingUpdate{
		MeetingDate:    date,
		Location:       optString(input.Location),
		Purpose:        optString(input.Purpose),
		Agenda:         optString(input.Agenda),
		Notes:          optString(input.Notes),
		RequesterNotes: optString(input.RequesterNotes),
		RequestedNotes: optString(input.RequestedNotes),
	}
	if input.MeetingType != "" {
		t := models.MeetingType(input.MeetingType)
		u.MeetingType = &t
	}
	if input.Priority != "" {
		p := models.Priority(input.Priority)
		u.Priority = &p
	}

	m, err := h.svc.Meetings.Update(ctx, id, h.actor, u)
	if err != nil {
		return nil, MeetingOutput{}, toolError(err)
	}
	return nil, meetingToOutput(m), nil
}

func (h *MeetingHandlers) RemoveMeeting(ctx context.Context, _ *mcp.CallToolRequest, input MeetingIDInput) (*mcp.CallToolResult, RemovedOutput, error) {
	id, err := parseID("meeting_id", input.MeetingID)
	if err != nil {
		return nil, RemovedOutput{}, err
	}
	if err := h.svc.Meetings.Remove(ctx, id, h.actor); err != nil {
		return nil, RemovedOutput{}, toolError(err)
	}
	return nil, RemovedOutput{ID: id.String(), Removed: true}, nil
}

type MeetingDetailOutput struct {
	Meeting          MeetingOutput `json:"meeting"`
	OtherParticipant string        `json:"other_participant"`
	ReferralCount    int           `json:"referral_count"`
}

func (h *MeetingHandlers) GetMeeting(ctx context.Context, _ *mcp.CallToolRequest, input MeetingIDInput) (*mcp.CallToolResult, MeetingDetailOutput, error) {
	id, err := parseID("meeting_id", input.MeetingID)
	if err != nil {
		return nil, MeetingDetailOutput{}, err
	}
	m, err := h.svc.Meetings.Get(ctx, id, h.actor)
	if err != nil {
		return nil, MeetingDetailOutput{}, toolError(err)
	}
	other, err := h.svc.Meetings.OtherParticipant(m, h.actor)
	if err != nil {
		return nil, MeetingDetailOutput{}, toolError(err)
	}
	cards, err := h.svc.Referrals.ListByMeeting(ctx, id, h.actor)
	if err != nil {
		return nil, MeetingDetailOutput{}, toolError(err)
	}
	return nil, MeetingDetailOutput{
		Meeting:          meetingToOutput(m),
		OtherParticipant: other.String(),
		ReferralCount:    len(cards),
	}, nil
}

type ListMeetingsInput struct {
	Status   string `json:"status,omitempty" jsonschema:"Filter by status"`
	Priority string `json:"priority,omitempty" jsonschema:"Filter by priority"`
	Upcoming bool   `json:"upcoming,omitempty" jsonschema:"Only pending or accepted meetings still ahead"`
	Past     bool   `json:"past,omitempty" jsonschema:"Only meetings dated before now"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
}

type ListMeetingsOutput struct {
	Meetings []MeetingOutput `json:"meetings"`
}

func (h *MeetingHandlers) ListMeetings(ctx context.Context, _ *mcp.CallToolRequest, input ListMeetingsInput) (*mcp.CallToolResult, ListMeetingsOutput, error) {
	meetings, err := h.svc.Meetings.List(ctx, h.actor, network.MeetingListFilter{
		Status:   models.MeetingStatus(input.Status),
		Priority: models.Priority(input.Priority),
		Upcoming: input.Upcoming,
		Past:     input.Past,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, ListMeetingsOutput{}, toolError(err)
	}

	result := make([]MeetingOutput, len(meetings))
	for i := range meetings {
		result[i] = meetingToOutput(&meetings[i])
	}
	return nil, ListMeetingsOutput{Meetings: result}, nil
}

func meetingToOutput(m *models.Meeting) MeetingOutput {
	return MeetingOutput{
		ID:             m.ID.String(),
		RequesterID:    m.RequesterID.String(),
		RequestedID:    m.RequestedID.String(),
		MeetingDate:    formatTime(m.MeetingDate),
		ConfirmedDate:  formatOptionalTime(m.ConfirmedDate),
		Location:       m.Location,
		MeetingType:    string(m.MeetingType),
		Status:         string(m.Status),
		StatusText:     display.MeetingStatusText(m.Status),
		Purpose:        m.Purpose,
		Agenda:         m.Agenda,
		Notes:          m.Notes,
		RequesterNotes: m.RequesterNotes,
		RequestedNotes: m.RequestedNotes,
		Priority:       string(m.Priority),
		PriorityColor:  display.PriorityColor(m.Priority),
		AcceptedAt:     formatOptionalTime(m.AcceptedAt),
		CompletedAt:    formatOptionalTime(m.CompletedAt),
		CreatedAt:      formatTime(m.CreatedAt),
	}
}
