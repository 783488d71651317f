// ABOUTME: Follow-up record model for logged one-to-one meetings
// ABOUTME: Holds status derivation and the read-only follow-up predicates
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FollowUpStatus constants.
type FollowUpStatus string

const (
	FollowUpDraft     FollowUpStatus = "draft"
	FollowUpCompleted FollowUpStatus = "completed"
	FollowUpPending   FollowUpStatus = "follow_up_pending"
)

func (s FollowUpStatus) Valid() bool {
	switch s {
	case FollowUpDraft, FollowUpCompleted, FollowUpPending:
		return true
	}
	return false
}

// Outcome constants.
type Outcome string

const (
	OutcomeExcellent Outcome = "excellent"
	OutcomeGood      Outcome = "good"
	OutcomeAverage   Outcome = "average"
	OutcomePoor      Outcome = "poor"
	OutcomeNoShow    Outcome = "no_show"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomeExcellent, OutcomeGood, OutcomeAverage, OutcomePoor, OutcomeNoShow:
		return true
	}
	return false
}

// FollowUpMeetingType constants.
type FollowUpMeetingType string

const (
	FollowUpOneToOne      FollowUpMeetingType = "one_to_one"
	FollowUpGroupMeeting  FollowUpMeetingType = "group_meeting"
	FollowUpCoffeeChat    FollowUpMeetingType = "coffee_chat"
	FollowUpBusinessLunch FollowUpMeetingType = "business_lunch"
	FollowUpOther         FollowUpMeetingType = "other"
)

func (t FollowUpMeetingType) Valid() bool {
	switch t {
	case FollowUpOneToOne, FollowUpGroupMeeting, FollowUpCoffeeChat, FollowUpBusinessLunch, FollowUpOther:
		return true
	}
	return false
}

type FollowUp struct {
	ID                    uuid.UUID           `json:"id"`
	UserID                uuid.UUID           `json:"user_id"`
	MetWithUserID         uuid.UUID           `json:"met_with_user_id"`
	InvitedByUserID       *uuid.UUID          `json:"invited_by_user_id,omitempty"`
	GroupName             string              `json:"group_name,omitempty"`
	Location              string              `json:"location"`
	MeetingDate           time.Time           `json:"meeting_date"`
	ConversationTopics    string              `json:"conversation_topics"`
	MeetingType           FollowUpMeetingType `json:"meeting_type"`
	DurationMinutes       *int                `json:"duration_minutes,omitempty"`
	Outcome               Outcome             `json:"outcome"`
	FollowUpActions       string              `json:"follow_up_actions,omitempty"`
	BusinessOpportunities string              `json:"business_opportunities,omitempty"`
	ReferralsGiven        string              `json:"referrals_given,omitempty"`
	ReferralsReceived     string              `json:"referrals_received,omitempty"`
	FutureMeetingPlanned  bool                `json:"future_meeting_planned"`
	NextMeetingDate       *time.Time          `json:"next_meeting_date,omitempty"`
	Notes                 string              `json:"notes,omitempty"`
	Status                FollowUpStatus      `json:"status"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// DeriveFollowUpStatus returns follow_up_pending when there are follow-up actions, completed otherwise.
func DeriveFollowUpStatus(followUpActions string) FollowUpStatus {
	if strings.TrimSpace(followUpActions) != "" {
		return FollowUpPending
	}
	return FollowUpCompleted
}

func (f *FollowUp) NeedsFollowUp() bool {
	return f.Status == FollowUpPending || f.FutureMeetingPlanned || strings.TrimSpace(f.FollowUpActions) != ""
}

func (f *FollowUp) HasReferrals() bool {
	return f.ReferralsGiven != "" || f.ReferralsReceived != ""
}

func (f *FollowUp) HasBusinessOpportunities() bool {
	return f.BusinessOpportunities != ""
}

// DurationText renders the meeting length as "1h 30m" or "45 minutes".
func (f *FollowUp) DurationText() string {
	if f.DurationMinutes == nil || *f.DurationMinutes <= 0 {
		return "not specified"
	}
	hours := *f.DurationMinutes / 60
	minutes := *f.DurationMinutes % 60
	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%d minutes", minutes)
}
