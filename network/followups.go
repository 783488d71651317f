// ABOUTME: Follow-up records owned by the member who wrote them
// ABOUTME: Status is derived from follow-up actions unless the caller sets it explicitly
package network

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
)

type FollowUpService struct {
	*base
}

// FollowUpDraft describes a meeting the owner wants to log.
type FollowUpDraft struct {
	MetWithUserID         uuid.UUID
	InvitedByUserID       *uuid.UUID
	GroupName             string
	Location              string
	MeetingDate           time.Time
	ConversationTopics    string
	MeetingType           models.FollowUpMeetingType // defaults to one_to_one
	DurationMinutes       *int
	Outcome               models.Outcome // defaults to good
	FollowUpActions       string
	BusinessOpportunities string
	ReferralsGiven        string
	ReferralsReceived     string
	FutureMeetingPlanned  bool
	NextMeetingDate       *time.Time
	Notes                 string
	Status                models.FollowUpStatus // derived when empty
}

// FollowUpUpdate holds editable fields. Nil means unchanged.
type FollowUpUpdate struct {
	InvitedByUserID       *uuid.UUID
	GroupName             *string
	Location              *string
	MeetingDate           *time.Time
	ConversationTopics    *string
	MeetingType           *models.FollowUpMeetingType
	DurationMinutes       *int
	Outcome               *models.Outcome
	FollowUpActions       *string
	BusinessOpportunities *string
	ReferralsGiven        *string
	ReferralsReceived     *string
	FutureMeetingPlanned  *bool
	NextMeetingDate       *time.Time
	Notes                 *string
	Status                *models.FollowUpStatus

	// Clear* unset the optional field. They win over a value in the same update.
	ClearInvitedBy       bool
	ClearDuration        bool
	ClearNextMeetingDate bool
}

func validateFollowUp(op string, f *models.FollowUp) error {
	if !f.MeetingType.Valid() {
		return invalidf(op, "invalid meeting type %q", f.MeetingType)
	}
	if !f.Outcome.Valid() {
		return invalidf(op, "invalid outcome %q", f.Outcome)
	}
	if !f.Status.Valid() {
		return invalidf(op, "invalid status %q", f.Status)
	}
	if strings.TrimSpace(f.Location) == "" || strings.TrimSpace(f.ConversationTopics) == "" {
		return invalidf(op, "location and conversation topics are required")
	}
	if f.MeetingDate.IsZero() {
		return invalidf(op, "meeting date is required")
	}
	if f.DurationMinutes != nil && *f.DurationMinutes <= 0 {
		return invalidf(op, "duration must be positive")
	}
	if f.NextMeetingDate != nil && !f.NextMeetingDate.After(f.MeetingDate) {
		return invalidf(op, "next meeting date must be after the meeting date")
	}
	return nil
}

// Create logs a follow-up owned by userID.
func (s *FollowUpService) Create(ctx context.Context, userID uuid.UUID, d FollowUpDraft) (*models.FollowUp, error) {
	const op = "followups.create"

	if d.MetWithUserID == userID {
		return nil, invalidf(op, "cannot log a meeting with yourself")
	}
	if d.MeetingType == "" {
		d.MeetingType = models.FollowUpOneToOne
	}
	if d.Outcome == "" {
		d.Outcome = models.OutcomeGood
	}
	d.FollowUpActions = strings.TrimSpace(d.FollowUpActions)
	if d.Status == "" {
		d.Status = models.DeriveFollowUpStatus(d.FollowUpActions)
	}

	now := s.now()
	f := &models.FollowUp{
		ID:                    uuid.New(),
		UserID:                userID,
		MetWithUserID:         d.MetWithUserID,
		InvitedByUserID:       d.InvitedByUserID,
		GroupName:             d.GroupName,
		Location:              d.Location,
		MeetingDate:           d.MeetingDate.UTC(),
		ConversationTopics:    d.ConversationTopics,
		MeetingType:           d.MeetingType,
		DurationMinutes:       d.DurationMinutes,
		Outcome:               d.Outcome,
		FollowUpActions:       d.FollowUpActions,
		BusinessOpportunities: d.BusinessOpportunities,
		ReferralsGiven:        d.ReferralsGiven,
		ReferralsReceived:     d.ReferralsReceived,
		FutureMeetingPlanned:  d.FutureMeetingPlanned,
		NextMeetingDate:       utcPtr(d.NextMeetingDate),
		Notes:                 d.Notes,
		Status:                d.Status,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := validateFollowUp(op, f); err != nil {
		return nil, err
	}
	if err := s.requireActiveMember(ctx, op, d.MetWithUserID, "met-with user"); err != nil {
		return nil, err
	}
	if d.InvitedByUserID != nil {
		if err := s.requireUser(ctx, op, *d.InvitedByUserID, "inviting user"); err != nil {
			return nil, err
		}
	}

	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		if err := db.CreateFollowUp(ctx, tx, f); err != nil {
			return err
		}
		return s.record(ctx, tx, models.EntityFollowUp, f.ID, userID, "create", "", string(f.Status), now)
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Update edits a follow-up. Only its owner may edit; status is re-derived unless supplied.
func (s *FollowUpService) Update(ctx context.Context, id, actorID uuid.UUID, u FollowUpUpdate) (*models.FollowUp, error) {
	const op = "followups.update"

	if u.InvitedByUserID != nil && !u.ClearInvitedBy {
		if err := s.requireUser(ctx, op, *u.InvitedByUserID, "inviting user"); err != nil {
			return nil, err
		}
	}

	var f *models.FollowUp
	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		var err error
		f, err = db.GetFollowUp(ctx, tx, id)
		if err != nil {
			return err
		}
		if f == nil {
			return notFound(op, "follow-up")
		}
		if f.UserID != actorID {
			return forbidden(op, "only the author may edit a follow-up")
		}

		from := f.Status
		applyFollowUpUpdate(f, u)
		if err := validateFollowUp(op, f); err != nil {
			return err
		}

		now := s.now()
		f.UpdatedAt = now
		ok, err := db.UpdateFollowUp(ctx, tx, f)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(op, "follow-up")
		}
		return s.record(ctx, tx, models.EntityFollowUp, f.ID, actorID, "update", string(from), string(f.Status), now)
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func applyFollowUpUpdate(f *models.FollowUp, u FollowUpUpdate) {
	if u.InvitedByUserID != nil {
		f.InvitedByUserID = u.InvitedByUserID
	}
	if u.GroupName != nil {
		f.GroupName = *u.GroupName
	}
	if u.Location != nil {
		f.Location = *u.Location
	}
	if u.MeetingDate != nil {
		f.MeetingDate = u.MeetingDate.UTC()
	}
	if u.ConversationTopics != nil {
		f.ConversationTopics = *u.ConversationTopics
	}
	if u.MeetingType != nil {
		f.MeetingType = *u.MeetingType
	}
	if u.DurationMinutes != nil {
		f.DurationMinutes = u.DurationMinutes
	}
	if u.Outcome != nil {
		f.Outcome = *u.Outcome
	}
	if u.FollowUpActions != nil {
		f.FollowUpActions = strings.TrimSpace(*u.FollowUpActions)
	}
	if u.BusinessOpportunities != nil {
		f.BusinessOpportunities = *u.BusinessOpportunities
	}
	if u.ReferralsGiven != nil {
		f.ReferralsGiven = *u.ReferralsGiven
	}
	if u.ReferralsReceived != nil {
		f.ReferralsReceived = *u.ReferralsReceived
	}
	if u.FutureMeetingPlanned != nil {
		f.FutureMeetingPlanned = *u.FutureMeetingPlanned
	}
	if u.NextMeetingDate != nil {
		f.NextMeetingDate = utcPtr(u.NextMeetingDate)
	}
	if u.Notes != nil {
		f.Notes = *u.Notes
	}
	if u.ClearInvitedBy {
		f.InvitedByUserID = nil
	}
	if u.ClearDuration {
		f.DurationMinutes = nil
	}
	if u.ClearNextMeetingDate {
		f.NextMeetingDate = nil
	}

	if u.Status != nil {
		f.Status = *u.Status
	} else {
		f.Status = models.DeriveFollowUpStatus(f.FollowUpActions)
	}
}

// Remove deletes a follow-up. Only its owner may remove it.
func (s *FollowUpService) Remove(ctx context.Context, id, actorID uuid.UUID) error {
	const op = "followups.remove"
	return s.inTx(ctx, op, func(tx *sql.Tx) error {
		f, err := db.GetFollowUp(ctx, tx, id)
		if err != nil {
			return err
		}
		if f == nil {
			return notFound(op, "follow-up")
		}
		if f.UserID != actorID {
			return forbidden(op, "only the author may remove a follow-up")
		}
		if err := db.DeleteFollowUp(ctx, tx, f.ID); err != nil {
			return err
		}
		return s.record(ctx, tx, models.EntityFollowUp, f.ID, actorID, "remove", string(f.Status), "", s.now())
	})
}

// Get returns a follow-up to its author or the member it was written about.
func (s *FollowUpService) Get(ctx context.Context, id, actorID uuid.UUID) (*models.FollowUp, error) {
	const op = "followups.get"
	f, err := db.GetFollowUp(ctx, s.db, id)
	if err != nil {
		return nil, internal(op, "failed to load follow-up", err)
	}
	if f == nil {
		return nil, notFound(op, "follow-up")
	}
	if f.UserID != actorID && f.MetWithUserID != actorID {
		return nil, forbidden(op, "only the author or the member met with may view a follow-up")
	}
	return f, nil
}

// List returns follow-ups written by actorID.
func (s *FollowUpService) List(ctx context.Context, actorID uuid.UUID, filter db.FollowUpFilter) ([]models.FollowUp, error) {
	const op = "followups.list"
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalidf(op, "invalid status %q", filter.Status)
	}
	if filter.Outcome != "" && !filter.Outcome.Valid() {
		return nil, invalidf(op, "invalid outcome %q", filter.Outcome)
	}
	followUps, err := db.ListFollowUps(ctx, s.db, actorID, filter)
	if err != nil {
		return nil, internal(op, "failed to list follow-ups", err)
	}
	return followUps, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
