// ABOUTME: Referral card MCP tool handlers
// ABOUTME: Implements create, update, send, receive, complete, remove, get and list referral tools
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

type ReferralHandlers struct {
	session
}

func NewReferralHandlers(svc *network.Service, actor uuid.UUID) *ReferralHandlers {
	return &ReferralHandlers{session{svc: svc, actor: actor}}
}

type ReferralOutput struct {
	ID                  string   `json:"id"`
	MeetingID           string   `json:"meeting_id"`
	FromUserID          string   `json:"from_user_id"`
	ToUserID            string   `json:"to_user_id"`
	ReferralDate        string   `json:"referral_date"`
	ReferralDescription string   `json:"referral_description"`
	ReferralType        string   `json:"referral_type"`
	ContactName         string   `json:"contact_name,omitempty"`
	ContactPhone        string   `json:"contact_phone,omitempty"`
	ContactEmail        string   `json:"contact_email,omitempty"`
	ContactAddress      string   `json:"contact_address,omitempty"`
	Comments            string   `json:"comments,omitempty"`
	InterestLevel       string   `json:"interest_level"`
	InterestLevelColor  string   `json:"interest_level_color"`
	Status              string   `json:"status"`
	StatusText          string   `json:"status_text"`
	FollowUpActions     []string `json:"follow_up_actions,omitempty"`
	SentAt              *string  `json:"sent_at,omitempty"`
	ReceivedAt          *string  `json:"received_at,omitempty"`
	CreatedAt           string   `json:"created_at"`
}

type CreateReferralInput struct {
	MeetingID           string   `json:"meeting_id" jsonschema:"Meeting the referral came out of (required)"`
	ToUserID            string   `json:"to_user_id" jsonschema:"Member receiving the referral (required)"`
	ReferralDate        string   `json:"referral_date,omitempty" jsonschema:"Referral date (RFC3339, defaults to now)"`
	ReferralDescription string   `json:"referral_description" jsonschema:"What the referral is about (required)"`
	ReferralType        string   `json:"referral_type,omitempty" jsonschema:"internal or external (default)"`
	InterestLevel       string   `json:"interest_level,omitempty" jsonschema:"very_low, low, medium (default), high or very_high"`
	ContactName         string   `json:"contact_name,omitempty" jsonschema:"Name of the person being referred"`
	ContactPhone        string   `json:"contact_phone,omitempty" jsonschema:"Their phone"`
	ContactEmail        string   `json:"contact_email,omitempty" jsonschema:"Their email"`
	ContactAddress      string   `json:"contact_address,omitempty" jsonschema:"Their address"`
	Comments            string   `json:"comments,omitempty" jsonschema:"Comments"`
	FollowUpActions     []string `json:"follow_up_actions,omitempty" jsonschema:"Follow-up actions"`
}

func (h *ReferralHandlers) CreateReferral(ctx context.Context, _ *mcp.CallToolRequest, input CreateReferralInput) (*mcp.CallToolResult, ReferralOutput, error) {
	meetingID, err := parseID("meeting_id", input.MeetingID)
	if err != nil {
		return nil, ReferralOutput{}, err
	}
	toUserID, err := parseID("to_user_id", input.ToUserID)
	if err != nil {
		return nil, ReferralOutput{}, err
	}
	date, err := parseOptionalTime("referral_date", input.ReferralDate)
	if err != nil {
		return nil, ReferralOutput{}, err
	}

	d := network.ReferralDraft{
		MeetingID:           meetingID,
		ToUserID:            toUserID,
		ReferralDescription: input.ReferralDescription,
		ReferralType:        models.ReferralType(input.ReferralType),
		InterestLevel:       models.InterestLevel(input.InterestLevel),
		ContactName:         input.ContactName,
		ContactPhone:        input.ContactPhone,
		ContactEmail:        input.ContactEmail,
		ContactAddress:      input.ContactAddress,
		Comments:            input.Comments,
		FollowUpActions:     input.FollowUpActions,
	}
	if date != nil {
		d.ReferralDate = *date
	} else {
		d.ReferralDate = network.SystemClock.Now()
	}

	card, err := h.svc.Referrals.Create(ctx, h.actor, d)
	if err != nil {
		return nil, ReferralOutput{}, toolError(err)
	}
	return nil, referralToOutput(card), nil
}

type UpdateReferralInput struct {
	ReferralID          string   `json:"referral_id" jsonschema:"Referral card ID (required)"`
	ReferralDescription string   `json:"referral_description,omitempty" jsonschema:"New description"`
	InterestLevel       string   `json:"interest_level,omitempty" jsonschema:"New interest level"`
	ContactName         string   `json:"contact_name,omitempty" jsonschema:"New contact name"`
	ContactPhone        string   `json:"contact_phone,omitempty" jsonschema:"New contact phone"`
	ContactEmail        string   `json:"contact_email,omitempty" jsonschema:"New contact email"`
	Comments            string   `json:"comments,omitempty" jsonschema:"New comments"`
	FollowUpActions     []string `json:"follow_up_actions,omitempty" jsonschema:"Replace the follow-up actions"`
}

func (h *ReferralHandlers) UpdateReferral(ctx context.Context, _ *mcp.CallToolRequest, input UpdateReferralInput) (*mcp.CallToolResult, ReferralOutput, error) {
	id, err := parseID("referral_id", input.ReferralID)
	if err != nil {
		return nil, ReferralOutput{}, err
	}
	u := network.ReferralUpdate{
		ReferralDescription: optString(input.ReferralDescription),
		ContactName:         optString(input.ContactName),
		ContactPhone:        optString(input.ContactPhone),
		ContactEmail:        optString(input.ContactEmail),
		Comments:            optString(input.Comments),
		FollowUpActions:     input.FollowUpActions,
	}
	if input.InterestLevel != "" {
		l := models.InterestLevel(input.InterestLevel)
		u.InterestLevel = &l
	}

	card, err := h.svc.Referrals.Update(ctx, id, h.actor, u)
	if err != nil {
		return nil, ReferralOutput{}, toolError(err)
	}
	return nil, referralToOutput(card), nil
}

type ReferralIDInput struct {
	ReferralID string `json:"referral_id" jsonschema:"Referral card ID (required)"`
}

func (h *ReferralHandlers) SendReferral(ctx context.Context, _ *mcp.CallToolRequest, input ReferralIDInput) (*mcp.CallToolResult, ReferralOutput, error) {
	id, err := parseID("referral_id", input.ReferralID)
	if err != nil {
		return nil, ReferralOutput{}, err
	}
	card, err := h.svc.Referrals.Send(ctx, id, h.actor)
	if err != nil {
		return nil, ReferralOutput{}, toolError(err)
	}
	return nil, referralToOutput(card), nil
}

func (h *ReferralHandlers) ReceiveReferral(ctx context.Context, _ *mcp.CallToolRequest, input ReferralIDInput) (*mcp.CallToolResult, ReferralOutput, error) {
	id, err := parseID("referral_id", input.ReferralID)
	if err != nil {
		return nil, ReferralOutput{}, err
	}
	card, err := h.svc.Referrals.MarkReceived(ctx, id, h.actor)
	if err != nil {
		return nil, ReferralOutput{}, toolError(err)
	}
	return nil, referralToOutput(card), nil
}

type CompleteReferralInput struct {
	ReferralID      string   `json:"referral_id" jsonschema:"Referral card ID (required)"`
	Comments        string   `json:"comments,omitempty" jsonschema:"Closing comments"`
	FollowUpActions []string `json:"follow_up_actions,omitempty" jsonschema:"Follow-up actions taken"`
}

func (h *ReferralHandlers) CompleteReferral(ctx context.Context, _ *mcp.CallToolRequest, input CompleteReferralInput) (*mcp.CallToolResult, ReferralOutput, error) {
	id, err := parseID("referral_id", input.ReferralID)
	if err != nil {
		return nil, ReferralOutput{}, err
	}
	card, err := h.svc.Referrals.Complete(ctx, id, h.actor, optString(input.Comments), input.FollowUpActions)
	if err != nil {
		return nil, ReferralOutput{}, toolError(err)
	}
	return nil, referralToOutput(card), nil
}

func (h *ReferralHandlers) RemoveReferral(ctx context.Context, _ *mcp.CallToolRequest, input ReferralIDInput) (*mcp.CallToolResult, RemovedOutput, error) {
	id, err := parseID("referral_id", input.ReferralID)
	if err != nil {
		return nil, RemovedOutput{}, err
	}
	if err := h.svc.Referrals.Remove(ctx, id, h.actor); err != nil {
		return nil, RemovedOutput{}, toolError(err)
	}
	return nil, RemovedOutput{ID: id.String(), Removed: true}, nil
}

func (h *ReferralHandlers) GetReferral(ctx context.Context, _ *mcp.CallToolRequest, input ReferralIDInput) (*mcp.CallToolResult, ReferralOutput, error) {
	id, err := parseID("referral_id", input.ReferralID)
	if err != nil {
		return nil, ReferralOutput{}, err
	}
	card, err := h.svc.Referrals.Get(ctx, id, h.actor)
	if err != nil {
		return nil, ReferralOutput{}, toolError(err)
	}
	return nil, referralToOutput(card), nil
}

type ListReferralsInput struct {
	Direction string `json:"direction,omitempty" jsonschema:"sent, received or all (default)"`
	Status    string `json:"status,omitempty" jsonschema:"Filter by status"`
	MeetingID string `json:"meeting_id,omitempty" jsonschema:"Only cards written for this meeting"`
}

type ListReferralsOutput struct {
	Referrals []ReferralOutput `json:"referrals"`
}

func (h *ReferralHandlers) ListReferrals(ctx context.Context, _ *mcp.CallToolRequest, input ListReferralsInput) (*mcp.CallToolResult, ListReferralsOutput, error) {
	var (
		cards []models.ReferralCard
		err   error
	)
	if input.MeetingID != "" {
		meetingID, perr := parseID("meeting_id", input.MeetingID)
		if perr != nil {
			return nil, ListReferralsOutput{}, perr
		}
		cards, err = h.svc.Referrals.ListByMeeting(ctx, meetingID, h.actor)
	} else {
		cards, err = h.svc.Referrals.List(ctx, h.actor, db.ReferralDirection(input.Direction), models.ReferralStatus(input.Status))
	}
	if err != nil {
		return nil, ListReferralsOutput{}, toolError(err)
	}

	result := make([]ReferralOutput, len(cards))
	for i := range cards {
		result[i] = referralToOutput(&cards[i])
	}
	return nil, ListReferralsOutput{Referrals: result}, nil
}

func referralToOutput(c *models.ReferralCard) ReferralOutput {
	return ReferralOutput{
		ID:                  c.ID.String(),
		MeetingID:           c.MeetingID.String(),
		FromUserID:          c.FromUserID.String(),
		ToUserID:            c.ToUserID.String(),
		ReferralDate:        formatTime(c.ReferralDate),
		ReferralDescription: c.ReferralDescription,
		ReferralType:        string(c.ReferralType),
		ContactName:         c.ContactName,
		ContactPhone:        c.ContactPhone,
		ContactEmail:        c.ContactEmail,
		ContactAddress:      c.ContactAddress,
		Comments:            c.Comments,
		InterestLevel:       string(c.InterestLevel),
		InterestLevelColor:  display.InterestLevelColor(c.InterestLevel),
		Status:              string(c.Status),
		StatusText:          display.ReferralStatusText(c.Status),
		FollowUpActions:     c.FollowUpActions,
		SentAt:              formatOptionalTime(c.SentAt),
		ReceivedAt:          formatOptionalTime(c.ReceivedAt),
		CreatedAt:           formatTime(c.CreatedAt),
	}
}
