// ABOUTME: Data models for the business networking domain
// ABOUTME: Defines users, companies, connections, meetings, referral cards, recommendations and follow-ups
package models

import (
	"time"

	"github.com/google/uuid"
)

// MembershipStatus constants.
type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipInactive  MembershipStatus = "inactive"
	MembershipPending   MembershipStatus = "pending"
	MembershipSuspended MembershipStatus = "suspended"
)

func (s MembershipStatus) Valid() bool {
	switch s {
	case MembershipActive, MembershipInactive, MembershipPending, MembershipSuspended:
		return true
	}
	return false
}

type User struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email,omitempty"`
	CompanyID        *uuid.UUID       `json:"company_id,omitempty"`
	Position         string           `json:"position,omitempty"`
	IsActive         bool             `json:"is_active"`
	MembershipStatus MembershipStatus `json:"membership_status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// IsActiveMember reports whether the user may take part in meetings and recommendations.
func (u *User) IsActiveMember() bool {
	return u.IsActive && u.MembershipStatus == MembershipActive
}

type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConnectionStatus constants.
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionDeclined ConnectionStatus = "declined"
)

func (s ConnectionStatus) Valid() bool {
	switch s {
	case ConnectionPending, ConnectionAccepted, ConnectionDeclined:
		return true
	}
	return false
}

type Connection struct {
	ID          uuid.UUID        `json:"id"`
	RequesterID uuid.UUID        `json:"requester_id"`
	AddresseeID uuid.UUID        `json:"addressee_id"`
	Status      ConnectionStatus `json:"status"`
	Message     string           `json:"message,omitempty"`
	AcceptedAt  *time.Time       `json:"accepted_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// MeetingStatus constants.
type MeetingStatus string

const (
	MeetingPending   MeetingStatus = "pending"
	MeetingAccepted  MeetingStatus = "accepted"
	MeetingDeclined  MeetingStatus = "declined"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
)

func (s MeetingStatus) Valid() bool {
	switch s {
	case MeetingPending, MeetingAccepted, MeetingDeclined, MeetingCompleted, MeetingCancelled:
		return true
	}
	return false
}

// MeetingType constants.
type MeetingType string

const (
	MeetingInPerson MeetingType = "in_person"
	MeetingVirtual  MeetingType = "virtual"
	MeetingPhone    MeetingType = "phone"
)

func (t MeetingType) Valid() bool {
	switch t {
	case MeetingInPerson, MeetingVirtual, MeetingPhone:
		return true
	}
	return false
}

// Priority is shared by meetings and recommendations.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Meeting struct {
	ID             uuid.UUID     `json:"id"`
	RequesterID    uuid.UUID     `json:"requester_id"`
	RequestedID    uuid.UUID     `json:"requested_id"`
	MeetingDate    time.Time     `json:"meeting_date"`
	ConfirmedDate  *time.Time    `json:"confirmed_date,omitempty"`
	Location       string        `json:"location,omitempty"`
	MeetingType    MeetingType   `json:"meeting_type"`
	Status         MeetingStatus `json:"status"`
	Purpose        string        `json:"purpose"`
	Agenda         string        `json:"agenda,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	RequesterNotes string        `json:"requester_notes,omitempty"`
	RequestedNotes string        `json:"requested_notes,omitempty"`
	Priority       Priority      `json:"priority"`
	AcceptedAt     *time.Time    `json:"accepted_at,omitempty"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// HasParty reports whether userID is the requester or the requested user.
func (m *Meeting) HasParty(userID uuid.UUID) bool {
	return m.RequesterID == userID || m.RequestedID == userID
}

// IsUpcoming reports whether the meeting is still ahead and not yet resolved.
func (m *Meeting) IsUpcoming(now time.Time) bool {
	return m.MeetingDate.After(now) && (m.Status == MeetingPending || m.Status == MeetingAccepted)
}

// ReferralStatus constants.
type ReferralStatus string

const (
	ReferralDraft     ReferralStatus = "draft"
	ReferralSent      ReferralStatus = "sent"
	ReferralReceived  ReferralStatus = "received"
	ReferralCompleted ReferralStatus = "completed"
)

func (s ReferralStatus) Valid() bool {
	switch s {
	case ReferralDraft, ReferralSent, ReferralReceived, ReferralCompleted:
		return true
	}
	return false
}

// ReferralType constants.
type ReferralType string

const (
	ReferralInternal ReferralType = "internal"
	ReferralExternal ReferralType = "external"
)

func (t ReferralType) Valid() bool {
	return t == ReferralInternal || t == ReferralExternal
}

// InterestLevel constants.
type InterestLevel string

const (
	InterestVeryLow  InterestLevel = "very_low"
	InterestLow      InterestLevel = "low"
	InterestMedium   InterestLevel = "medium"
	InterestHigh     InterestLevel = "high"
	InterestVeryHigh InterestLevel = "very_high"
)

func (l InterestLevel) Valid() bool {
	switch l {
	case InterestVeryLow, InterestLow, InterestMedium, InterestHigh, InterestVeryHigh:
		return true
	}
	return false
}

type ReferralCard struct {
	ID                  uuid.UUID      `json:"id"`
	MeetingID           uuid.UUID      `json:"meeting_id"`
	FromUserID          uuid.UUID      `json:"from_user_id"`
	ToUserID            uuid.UUID      `json:"to_user_id"`
	ReferralDate        time.Time      `json:"referral_date"`
	ReferralDescription string         `json:"referral_description"`
	ReferralType        ReferralType   `json:"referral_type"`
	ContactName         string         `json:"contact_name,omitempty"`
	ContactPhone        string         `json:"contact_phone,omitempty"`
	ContactEmail        string         `json:"contact_email,omitempty"`
	ContactAddress      string         `json:"contact_address,omitempty"`
	Comments            string         `json:"comments,omitempty"`
	InterestLevel       InterestLevel  `json:"interest_level"`
	Status              ReferralStatus `json:"status"`
	FollowUpActions     []string       `json:"follow_up_actions,omitempty"`
	SentAt              *time.Time     `json:"sent_at,omitempty"`
	ReceivedAt          *time.Time     `json:"received_at,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// RecommendationStatus constants.
type RecommendationStatus string

const (
	RecommendationPending          RecommendationStatus = "pending"
	RecommendationContacted        RecommendationStatus = "contacted"
	RecommendationMeetingScheduled RecommendationStatus = "meeting_scheduled"
	RecommendationBusinessDone     RecommendationStatus = "business_done"
	RecommendationNotInterested    RecommendationStatus = "not_interested"
	RecommendationNoResponse       RecommendationStatus = "no_response"
)

func (s RecommendationStatus) Valid() bool {
	switch s {
	case RecommendationPending, RecommendationContacted, RecommendationMeetingScheduled:
		return true
	}
	return s.IsOutcome()
}

// IsOutcome reports whether s is one of the final outcomes set by MarkCompleted.
func (s RecommendationStatus) IsOutcome() bool {
	switch s {
	case RecommendationBusinessDone, RecommendationNotInterested, RecommendationNoResponse:
		return true
	}
	return false
}

// RecommendationType constants.
type RecommendationType string

const (
	RecommendationBusinessOpportunity RecommendationType = "business_opportunity"
	RecommendationServiceProvider     RecommendationType = "service_provider"
	RecommendationPotentialClient     RecommendationType = "potential_client"
	RecommendationPartnership         RecommendationType = "partnership"
	RecommendationOther               RecommendationType = "other"
)

func (t RecommendationType) Valid() bool {
	switch t {
	case RecommendationBusinessOpportunity, RecommendationServiceProvider,
		RecommendationPotentialClient, RecommendationPartnership, RecommendationOther:
		return true
	}
	return false
}

type Recommendation struct {
	ID                  uuid.UUID            `json:"id"`
	RecommenderID       uuid.UUID            `json:"recommender_id"`
	RecommendedToID     uuid.UUID            `json:"recommended_to_id"`
	RecommendedUserID   uuid.UUID            `json:"recommended_user_id"`
	RecommendationDate  time.Time            `json:"recommendation_date"`
	BusinessDescription string               `json:"business_description"`
	WhyRecommended      string               `json:"why_recommended"`
	RecommendationType  RecommendationType   `json:"recommendation_type"`
	PriorityLevel       Priority             `json:"priority_level"`
	Status              RecommendationStatus `json:"status"`
	FollowUpNotes       string               `json:"follow_up_notes,omitempty"`
	OutcomeNotes        string               `json:"outcome_notes,omitempty"`
	Tags                []string             `json:"tags,omitempty"`
	IsMutual            bool                 `json:"is_mutual"`
	EstimatedValue      *int64               `json:"estimated_value,omitempty"` // in cents
	ContactedAt         *time.Time           `json:"contacted_at,omitempty"`
	CompletedAt         *time.Time           `json:"completed_at,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// Activity records one successful state-changing operation.
type Activity struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	ActorID    uuid.UUID `json:"actor_id"`
	Action     string    `json:"action"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Entity type names used by the activity log.
const (
	EntityConnection     = "connection"
	EntityMeeting        = "meeting"
	EntityReferralCard   = "referral_card"
	EntityRecommendation = "recommendation"
	EntityFollowUp       = "follow_up"
)
