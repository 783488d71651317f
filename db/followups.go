// ABOUTME: Database operations for one-to-one follow-up records
// ABOUTME: Handles follow-up storage, owner listings and pending follow-up queries
package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
)

const followUpColumns = `id, user_id, met_with_user_id, invited_by_user_id, group_name, location, meeting_date,
	conversation_topics, meeting_type, duration_minutes, outcome, follow_up_actions, business_opportunities,
	referrals_given, referrals_received, future_meeting_planned, next_meeting_date, notes, status, created_at, updated_at`

func CreateFollowUp(ctx context.Context, q Querier, f *models.FollowUp) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO follow_ups (`+followUpColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, f.ID.String(), f.UserID.String(), f.MetWithUserID.String(), nullableID(f.InvitedByUserID), f.GroupName,
		f.Location, f.MeetingDate, f.ConversationTopics, string(f.MeetingType), f.DurationMinutes, string(f.Outcome),
		f.FollowUpActions, f.BusinessOpportunities, f.ReferralsGiven, f.ReferralsReceived, f.FutureMeetingPlanned,
		f.NextMeetingDate, f.Notes, string(f.Status), f.CreatedAt, f.UpdatedAt)

	return translateError(err)
}

func scanFollowUp(row interface{ Scan(...any) error }) (*models.FollowUp, error) {
	f := &models.FollowUp{}
	var meetingType, outcome, status string
	err := row.Scan(&f.ID, &f.UserID, &f.MetWithUserID, &f.InvitedByUserID, &f.GroupName, &f.Location, &f.MeetingDate,
		&f.ConversationTopics, &meetingType, &f.DurationMinutes, &outcome, &f.FollowUpActions, &f.BusinessOpportunities,
		&f.ReferralsGiven, &f.ReferralsReceived, &f.FutureMeetingPlanned, &f.NextMeetingDate, &f.Notes, &status,
		&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.MeetingType = models.FollowUpMeetingType(meetingType)
	f.Outcome = models.Outcome(outcome)
	f.Status = models.FollowUpStatus(status)
	return f, nil
}

func GetFollowUp(ctx context.Context, q Querier, id uuid.UUID) (*models.FollowUp, error) {
	f, err := scanFollowUp(q.QueryRowContext(ctx, `SELECT `+followUpColumns+` FROM follow_ups WHERE id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// UpdateFollowUp rewrites a follow-up owned by f.UserID.
func UpdateFollowUp(ctx context.Context, q Querier, f *models.FollowUp) (bool, error) {
	result, err := q.ExecContext(ctx, `
		UPDATE follow_ups SET met_with_user_id = ?, invited_by_user_id = ?, group_name = ?, location = ?,
			meeting_date = ?, conversation_topics = ?, meeting_type = ?, duration_minutes = ?, outcome = ?,
			follow_up_actions = ?, business_opportunities = ?, referrals_given = ?, referrals_received = ?,
			future_meeting_planned = ?, next_meeting_date = ?, notes = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, f.MetWithUserID.String(), nullableID(f.InvitedByUserID), f.GroupName, f.Location,
		f.MeetingDate, f.ConversationTopics, string(f.MeetingType), f.DurationMinutes, string(f.Outcome),
		f.FollowUpActions, f.BusinessOpportunities, f.ReferralsGiven, f.ReferralsReceived,
		f.FutureMeetingPlanned, f.NextMeetingDate, f.Notes, string(f.Status), f.UpdatedAt,
		f.ID.String(), f.UserID.String())
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

func DeleteFollowUp(ctx context.Context, q Querier, id uuid.UUID) error {
	_, err := q.ExecContext(ctx, `DELETE FROM follow_ups WHERE id = ?`, id.String())
	return err
}

// FollowUpFilter narrows ListFollowUps.
type FollowUpFilter struct {
	Status        models.FollowUpStatus
	Outcome       models.Outcome
	MetWithUserID *uuid.UUID
	Limit         int
}

// ListFollowUps returns follow-ups written by userID, newest meeting first.
func ListFollowUps(ctx context.Context, q Querier, userID uuid.UUID, filter FollowUpFilter) ([]models.FollowUp, error) {
	query := `SELECT ` + followUpColumns + ` FROM follow_ups WHERE user_id = ?`
	args := []any{userID.String()}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Outcome != "" {
		query += ` AND outcome = ?`
		args = append(args, string(filter.Outcome))
	}
	if filter.MetWithUserID != nil {
		query += ` AND met_with_user_id = ?`
		args = append(args, filter.MetWithUserID.String())
	}
	query += ` ORDER BY meeting_date DESC, created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var followUps []models.FollowUp
	for rows.Next() {
		f, err := scanFollowUp(rows)
		if err != nil {
			return nil, err
		}
		followUps = append(followUps, *f)
	}
	return followUps, rows.Err()
}
