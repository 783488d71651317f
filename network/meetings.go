// ABOUTME: One-to-one meeting state machine
// ABOUTME: Proposals, the requested user's accept/decline, completion, cancellation and removal
package network

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
)

type MeetingService struct {
	*base
}

// MeetingProposal is what a requester supplies to propose a meeting.
type MeetingProposal struct {
	RequestedID uuid.UUID
	MeetingDate time.Time
	Purpose     string
	Location    string
	Agenda      string
	Notes       string
	MeetingType models.MeetingType // defaults to in_person
	Priority    models.Priority    // defaults to medium
}

// AcceptOptions optionally overwrite scheduling details on acceptance.
type AcceptOptions struct {
	ConfirmedDate *time.Time
	Location      *string
	Notes         *string
}

// MeetingUpdate holds the fields a party may change. Nil means unchanged.
type MeetingUpdate struct {
	MeetingDate    *time.Time
	Location       *string
	MeetingType    *models.MeetingType
	Purpose        *string
	Agenda         *string
	Notes          *string
	Priority       *models.Priority
	RequesterNotes *string
	RequestedNotes *string
}

// MeetingListFilter narrows List.
type MeetingListFilter struct {
	Status   models.MeetingStatus
	Priority models.Priority
	Upcoming bool
	Past     bool
	Limit    int
}

// Propose creates a pending meeting request from requesterID.
func (s *MeetingService) Propose(ctx context.Context, requesterID uuid.UUID, p MeetingProposal) (*models.Meeting, error) {
	const op = "meetings.propose"

	if p.RequestedID == requesterID {
		return nil, invalidf(op, "cannot request a meeting with yourself")
	}
	if p.MeetingType == "" {
		p.MeetingType = models.MeetingInPerson
	}
	if p.Priority == "" {
		p.Priority = models.PriorityMedium
	}
	if !p.MeetingType.Valid() {
		return nil, invalidf(op, "invalid meeting type %q", p.MeetingType)
	}
	if !p.Priority.Valid() {
		return nil, invalidf(op, "invalid priority %q", p.Priority)
	}
	if strings.TrimSpace(p.Purpose) == "" {
		return nil, invalidf(op, "purpose is required")
	}

	now := s.now()
	if !p.MeetingDate.After(now) {
		return nil, invalidf(op, "meeting date must be in the future")
	}
	if err := s.requireActiveMember(ctx, op, p.RequestedID, "requested user"); err != nil {
		return nil, err
	}

	m := &models.Meeting{
		ID:          uuid.New(),
		RequesterID: requesterID,
		RequestedID: p.RequestedID,
		MeetingDate: p.MeetingDate.UTC(),
		Location:    p.Location,
		MeetingType: p.MeetingType,
		Status:      models.MeetingPending,
		Purpose:     p.Purpose,
		Agenda:      p.Agenda,
		Notes:       p.Notes,
		Priority:    p.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		existing, err := db.FindPendingMeetingBetween(ctx, tx, requesterID, p.RequestedID)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflict(op, "a pending meeting already exists between these users", nil)
		}
		if err := db.CreateMeeting(ctx, tx, m); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				return conflict(op, "a pending meeting already exists between these users", err)
			}
			return err
		}
		return s.record(ctx, tx, models.EntityMeeting, m.ID, requesterID, "propose", "", string(m.Status), now)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// transition loads the meeting inside a transaction, lets check authorize the actor
// and mutate the copy, then writes it back only if the status is still from.
func (s *MeetingService) transition(ctx context.Context, op, action string, id, actorID uuid.UUID, from models.MeetingStatus,
	check func(m *models.Meeting) error, apply func(m *models.Meeting, now time.Time)) (*models.Meeting, error) {

	var m *models.Meeting
	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		var err error
		m, err = db.GetMeeting(ctx, tx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return notFound(op, "meeting")
		}
		if err := check(m); err != nil {
			return err
		}
		if m.Status != from {
			return preconditionf(op, "meeting is %s, expected %s", m.Status, from)
		}

		now := s.now()
		prev := m.Status
		apply(m, now)
		m.UpdatedAt = now

		ok, err := db.SaveMeetingIf(ctx, tx, m, from)
		if err != nil {
			return err
		}
		if !ok {
			return preconditionf(op, "meeting is no longer %s", from)
		}
		return s.record(ctx, tx, models.EntityMeeting, m.ID, actorID, action, string(prev), string(m.Status), now)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func requireRequested(op string, actorID uuid.UUID) func(*models.Meeting) error {
	return func(m *models.Meeting) error {
		if m.RequestedID != actorID {
			return forbidden(op, "only the requested user may answer a meeting request")
		}
		return nil
	}
}

func requireParty(op string, actorID uuid.UUID) func(*models.Meeting) error {
	return func(m *models.Meeting) error {
		if !m.HasParty(actorID) {
			return forbidden(op, "only a meeting participant may do this")
		}
		return nil
	}
}

// Accept confirms a pending meeting. Only the requested user may accept.
func (s *MeetingService) Accept(ctx context.Context, id, actorID uuid.UUID, opts AcceptOptions) (*models.Meeting, error) {
	const op = "meetings.accept"
	if opts.ConfirmedDate != nil && !opts.ConfirmedDate.After(s.now()) {
		return nil, invalidf(op, "confirmed date must be in the future")
	}
	return s.transition(ctx, op, "accept", id, actorID, models.MeetingPending, requireRequested(op, actorID),
		func(m *models.Meeting, now time.Time) {
			m.Status = models.MeetingAccepted
			m.AcceptedAt = &now
			if opts.ConfirmedDate != nil {
				confirmed := opts.ConfirmedDate.UTC()
				m.ConfirmedDate = &confirmed
			}
			if opts.Location != nil {
				m.Location = *opts.Location
			}
			if opts.Notes != nil {
				m.RequestedNotes = *opts.Notes
			}
		})
}

// Decline rejects a pending meeting. The reason is kept in the requested user's notes.
func (s *MeetingService) Decline(ctx context.Context, id, actorID uuid.UUID, reason string) (*models.Meeting, error) {
	const op = "meetings.decline"
	return s.transition(ctx, op, "decline", id, actorID, models.MeetingPending, requireRequested(op, actorID),
		func(m *models.Meeting, now time.Time) {
			m.Status = models.MeetingDeclined
			if reason != "" {
				m.RequestedNotes = reason
			}
		})
}

// Complete marks an accepted meeting as held. Notes land in the actor's own notes field.
func (s *MeetingService) Complete(ctx context.Context, id, actorID uuid.UUID, notes string) (*models.Meeting, error) {
	const op = "meetings.complete"
	return s.transition(ctx, op, "complete", id, actorID, models.MeetingAccepted, requireParty(op, actorID),
		func(m *models.Meeting, now time.Time) {
			m.Status = models.MeetingCompleted
			m.CompletedAt = &now
			if notes == "" {
				return
			}
			if m.RequesterID == actorID {
				m.RequesterNotes = notes
			} else {
				m.RequestedNotes = notes
			}
		})
}

// Cancel calls off an accepted meeting. Either party may cancel.
func (s *MeetingService) Cancel(ctx context.Context, id, actorID uuid.UUID) (*models.Meeting, error) {
	const op = "meetings.cancel"
	return s.transition(ctx, op, "cancel", id, actorID, models.MeetingAccepted, requireParty(op, actorID),
		func(m *models.Meeting, now time.Time) {
			m.Status = models.MeetingCancelled
		})
}

// Update edits a meeting's details. Each side may only write its own notes.
func (s *MeetingService) Update(ctx context.Context, id, actorID uuid.UUID, u MeetingUpdate) (*models.Meeting, error) {
	const op = "meetings.update"

	if u.MeetingType != nil && !u.MeetingType.Valid() {
		return nil, invalidf(op, "invalid meeting type %q", *u.MeetingType)
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return nil, invalidf(op, "invalid priority %q", *u.Priority)
	}
	if u.Purpose != nil && strings.TrimSpace(*u.Purpose) == "" {
		return nil, invalidf(op, "purpose cannot be empty")
	}
	if u.MeetingDate != nil && !u.MeetingDate.After(s.now()) {
		return nil, invalidf(op, "meeting date must be in the future")
	}

	var m *models.Meeting
	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		var err error
		m, err = db.GetMeeting(ctx, tx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return notFound(op, "meeting")
		}
		if !m.HasParty(actorID) {
			return forbidden(op, "only a meeting participant may update it")
		}
		if u.RequesterNotes != nil && actorID != m.RequesterID {
			return forbidden(op, "only the requester may write requester notes")
		}
		if u.RequestedNotes != nil && actorID != m.RequestedID {
			return forbidden(op, "only the requested user may write requested notes")
		}

		if u.MeetingDate != nil {
			m.MeetingDate = u.MeetingDate.UTC()
		}
		if u.Location != nil {
			m.Location = *u.Location
		}
		if u.MeetingType != nil {
			m.MeetingType = *u.MeetingType
		}
		if u.Purpose != nil {
			m.Purpose = *u.Purpose
		}
		if u.Agenda != nil {
			m.Agenda = *u.Agenda
		}
		if u.Notes != nil {
			m.Notes = *u.Notes
		}
		if u.Priority != nil {
			m.Priority = *u.Priority
		}
		if u.RequesterNotes != nil {
			m.RequesterNotes = *u.RequesterNotes
		}
		if u.RequestedNotes != nil {
			m.RequestedNotes = *u.RequestedNotes
		}

		now := s.now()
		m.UpdatedAt = now
		ok, err := db.SaveMeetingIf(ctx, tx, m, m.Status)
		if err != nil {
			return err
		}
		if !ok {
			return preconditionf(op, "meeting changed while updating")
		}
		return s.record(ctx, tx, models.EntityMeeting, m.ID, actorID, "update", string(m.Status), string(m.Status), now)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Remove deletes a meeting that is still pending.
func (s *MeetingService) Remove(ctx context.Context, id, actorID uuid.UUID) error {
	const op = "meetings.remove"
	return s.inTx(ctx, op, func(tx *sql.Tx) error {
		m, err := db.GetMeeting(ctx, tx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return notFound(op, "meeting")
		}
		if !m.HasParty(actorID) {
			return forbidden(op, "only a meeting participant may remove it")
		}
		if m.Status != models.MeetingPending {
			return preconditionf(op, "only pending meetings can be removed, meeting is %s", m.Status)
		}
		ok, err := db.DeleteMeetingIf(ctx, tx, m.ID, models.MeetingPending)
		if err != nil {
			return err
		}
		if !ok {
			return preconditionf(op, "meeting is no longer pending")
		}
		return s.record(ctx, tx, models.EntityMeeting, m.ID, actorID, "remove", string(m.Status), "", s.now())
	})
}

// Get returns a meeting visible to actorID.
func (s *MeetingService) Get(ctx context.Context, id, actorID uuid.UUID) (*models.Meeting, error) {
	const op = "meetings.get"
	m, err := db.GetMeeting(ctx, s.db, id)
	if err != nil {
		return nil, internal(op, "failed to load meeting", err)
	}
	if m == nil {
		return nil, notFound(op, "meeting")
	}
	if !m.HasParty(actorID) {
		return nil, forbidden(op, "only a meeting participant may view it")
	}
	return m, nil
}

// List returns meetings actorID takes part in.
func (s *MeetingService) List(ctx context.Context, actorID uuid.UUID, f MeetingListFilter) ([]models.Meeting, error) {
	const op = "meetings.list"
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalidf(op, "invalid status %q", f.Status)
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return nil, invalidf(op, "invalid priority %q", f.Priority)
	}

	filter := db.MeetingFilter{Status: f.Status, Priority: f.Priority, Limit: f.Limit}
	now := s.now()
	if f.Upcoming {
		filter.After = &now
		filter.Statuses = []models.MeetingStatus{models.MeetingPending, models.MeetingAccepted}
	}
	if f.Past {
		filter.Before = &now
	}

	meetings, err := db.ListMeetings(ctx, s.db, actorID, filter)
	if err != nil {
		return nil, internal(op, "failed to list meetings", err)
	}
	return meetings, nil
}

// OtherParticipant returns the party on m that is not actorID.
func (s *MeetingService) OtherParticipant(m *models.Meeting, actorID uuid.UUID) (uuid.UUID, error) {
	const op = "meetings.other_participant"
	switch actorID {
	case m.RequesterID:
		return m.RequestedID, nil
	case m.RequestedID:
		return m.RequesterID, nil
	}
	return uuid.Nil, forbidden(op, "not a meeting participant")
}

// PartiesOf returns the requester and requested user of a meeting.
func (s *MeetingService) PartiesOf(ctx context.Context, meetingID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	const op = "meetings.parties_of"
	requester, requested, found, err := db.MeetingParties(ctx, s.db, meetingID)
	if err != nil {
		return uuid.Nil, uuid.Nil, internal(op, "failed to load meeting", err)
	}
	if !found {
		return uuid.Nil, uuid.Nil, notFound(op, "meeting")
	}
	return requester, requested, nil
}
