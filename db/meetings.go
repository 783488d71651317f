// ABOUTME: One-to-one meeting database operations
// ABOUTME: Handles meeting storage, pending-pair lookups and conditional status transitions
package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
)

const meetingColumns = `id, requester_id, requested_id, meeting_date, confirmed_date, location, meeting_type, status,
	purpose, agenda, notes, requester_notes, requested_notes, priority, accepted_at, completed_at, created_at, updated_at`

func CreateMeeting(ctx context.Context, q Querier, m *models.Meeting) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	low, high := orderUserIDs(m.RequesterID, m.RequestedID)

	_, err := q.ExecContext(ctx, `
		INSERT INTO meetings (id, requester_id, requested_id, pair_low, pair_high, meeting_date, confirmed_date, location,
			meeting_type, status, purpose, agenda, notes, requester_notes, requested_notes, priority,
			accepted_at, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID.String(), m.RequesterID.String(), m.RequestedID.String(), low, high, m.MeetingDate, m.ConfirmedDate, m.Location,
		string(m.MeetingType), string(m.Status), m.Purpose, m.Agenda, m.Notes, m.RequesterNotes, m.RequestedNotes, string(m.Priority),
		m.AcceptedAt, m.CompletedAt, m.CreatedAt, m.UpdatedAt)

	return translateError(err)
}

func scanMeeting(row interface{ Scan(...any) error }) (*models.Meeting, error) {
	m := &models.Meeting{}
	var meetingType, status, priority string
	err := row.Scan(&m.ID, &m.RequesterID, &m.RequestedID, &m.MeetingDate, &m.ConfirmedDate, &m.Location, &meetingType, &status,
		&m.Purpose, &m.Agenda, &m.Notes, &m.RequesterNotes, &m.RequestedNotes, &priority,
		&m.AcceptedAt, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.MeetingType = models.MeetingType(meetingType)
	m.Status = models.MeetingStatus(status)
	m.Priority = models.Priority(priority)
	return m, nil
}

func GetMeeting(ctx context.Context, q Querier, id uuid.UUID) (*models.Meeting, error) {
	m, err := scanMeeting(q.QueryRowContext(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id.String()))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// FindPendingMeetingBetween returns the pending meeting for an unordered pair, if any
func FindPendingMeetingBetween(ctx context.Context, q Querier, a, b uuid.UUID) (*models.Meeting, error) {
	low, high := orderUserIDs(a, b)
	m, err := scanMeeting(q.QueryRowContext(ctx, `
		SELECT `+meetingColumns+` FROM meetings WHERE pair_low = ? AND pair_high = ? AND status = ?
	`, low, high, string(models.MeetingPending)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// MeetingParties returns the requester and requested user of a meeting.
func MeetingParties(ctx context.Context, q Querier, id uuid.UUID) (uuid.UUID, uuid.UUID, bool, error) {
	var requester, requested uuid.UUID
	err := q.QueryRowContext(ctx, `SELECT requester_id, requested_id FROM meetings WHERE id = ?`, id.String()).Scan(&requester, &requested)
	if err == sql.ErrNoRows {
		return uuid.Nil, uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, uuid.Nil, false, err
	}
	return requester, requested, true, nil
}

// SaveMeetingIf writes every mutable column of m, but only while the stored
// status still equals expected. It reports whether the row was written.
func SaveMeetingIf(ctx context.Context, q Querier, m *models.Meeting, expected models.MeetingStatus) (bool, error) {
	result, err := q.ExecContext(ctx, `
		UPDATE meetings SET meeting_date = ?, confirmed_date = ?, location = ?, meeting_type = ?, status = ?,
			purpose = ?, agenda = ?, notes = ?, requester_notes = ?, requested_notes = ?, priority = ?,
			accepted_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`, m.MeetingDate, m.ConfirmedDate, m.Location, string(m.MeetingType), string(m.Status),
		m.Purpose, m.Agenda, m.Notes, m.RequesterNotes, m.RequestedNotes, string(m.Priority),
		m.AcceptedAt, m.CompletedAt, m.UpdatedAt, m.ID.String(), string(expected))
	if err != nil {
		return false, translateError(err)
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

// DeleteMeetingIf removes a meeting only while it is in the given status.
func DeleteMeetingIf(ctx context.Context, q Querier, id uuid.UUID, expected models.MeetingStatus) (bool, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM meetings WHERE id = ? AND status = ?`, id.String(), string(expected))
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

// MeetingFilter narrows ListMeetings.
type MeetingFilter struct {
	Status   models.MeetingStatus
	Statuses []models.MeetingStatus // any of these, on top of Status
	Priority models.Priority
	After    *time.Time // meeting_date strictly after
	Before   *time.Time // meeting_date strictly before
	Limit    int
}

func ListMeetings(ctx context.Context, q Querier, userID uuid.UUID, filter MeetingFilter) ([]models.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE (requester_id = ? OR requested_id = ?)`
	args := []any{userID.String(), userID.String()}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if len(filter.Statuses) > 0 {
		query += ` AND status IN (?` + strings.Repeat(`, ?`, len(filter.Statuses)-1) + `)`
		for _, st := range filter.Statuses {
			args = append(args, string(st))
		}
	}
	if filter.Priority != "" {
		query += ` AND priority = ?`
		args = append(args, string(filter.Priority))
	}
	if filter.After != nil {
		query += ` AND meeting_date > ?`
		args = append(args, *filter.After)
	}
	if filter.Before != nil {
		query += ` AND meeting_date < ?`
		args = append(args, *filter.Before)
	}
	query += ` ORDER BY meeting_date DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []models.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *m)
	}
	return meetings, rows.Err()
}

// ListAcceptedMeetings returns accepted meetings involving userID scheduled after from.
func ListAcceptedMeetings(ctx context.Context, q Querier, userID uuid.UUID, from time.Time) ([]models.Meeting, error) {
	return ListMeetings(ctx, q, userID, MeetingFilter{Status: models.MeetingAccepted, After: &from})
}
