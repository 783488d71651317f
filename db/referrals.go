// ABOUTME: Referral card database operations
// ABOUTME: Persists referral cards with JSON-encoded follow-up actions and guarded status changes
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
)

const referralColumns = `id, meeting_id, from_user_id, to_user_id, referral_date, referral_description, referral_type,
	contact_name, contact_phone, contact_email, contact_address, comments, interest_level, status,
	follow_up_actions, sent_at, received_at, created_at, updated_at`

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(b), nil
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func CreateReferralCard(ctx context.Context, q Querier, card *models.ReferralCard) error {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	actions, err := encodeStrings(card.FollowUpActions)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO referral_cards (`+referralColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, card.ID.String(), card.MeetingID.String(), card.FromUserID.String(), card.ToUserID.String(),
		card.ReferralDate, card.ReferralDescription, string(card.ReferralType),
		card.ContactName, card.ContactPhone, card.ContactEmail, card.ContactAddress, card.Comments,
		string(card.InterestLevel), string(card.Status), actions, card.SentAt, card.ReceivedAt,
		card.CreatedAt, card.UpdatedAt)

	return translateError(err)
}

func scanReferralCard(row interface{ Scan(...any) error }) (*models.ReferralCard, error) {
	c := &models.ReferralCard{}
	var referralType, interest, status, actions string
	err := row.Scan(&c.ID, &c.MeetingID, &c.FromUserID, &c.ToUserID, &c.ReferralDate, &c.ReferralDescription, &referralType,
		&c.ContactName, &c.ContactPhone, &c.ContactEmail, &c.ContactAddress, &c.Comments, &interest, &status,
		&actions, &c.SentAt, &c.ReceivedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.ReferralType = models.ReferralType(referralType)
	c.InterestLevel = models.InterestLevel(interest)
	c.Status = models.ReferralStatus(status)
	if c.FollowUpActions, err = decodeStrings(actions); err != nil {
		return nil, err
	}
	return c, nil
}

func GetReferralCard(ctx context.Context, q Querier, id uuid.UUID) (*models.ReferralCard, error) {
	c, err := scanReferralCard(q.QueryRowContext(ctx, `SELECT `+referralColumns+` FROM referral_cards WHERE id = ?`, id.String()))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SaveReferralCardIf writes the card only while its stored status equals expected.
func SaveReferralCardIf(ctx context.Context, q Querier, card *models.ReferralCard, expected models.ReferralStatus) (bool, error) {
	actions, err := encodeStrings(card.FollowUpActions)
	if err != nil {
		return false, err
	}

	result, err := q.ExecContext(ctx, `
		UPDATE referral_cards SET to_user_id = ?, referral_date = ?, referral_description = ?, referral_type = ?,
			contact_name = ?, contact_phone = ?, contact_email = ?, contact_address = ?, comments = ?,
			interest_level = ?, status = ?, follow_up_actions = ?, sent_at = ?, received_at = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`, card.ToUserID.String(), card.ReferralDate, card.ReferralDescription, string(card.ReferralType),
		card.ContactName, card.ContactPhone, card.ContactEmail, card.ContactAddress, card.Comments,
		string(card.InterestLevel), string(card.Status), actions, card.SentAt, card.ReceivedAt, card.UpdatedAt,
		card.ID.String(), string(expected))
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

func DeleteReferralCardIf(ctx context.Context, q Querier, id uuid.UUID, expected models.ReferralStatus) (bool, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM referral_cards WHERE id = ? AND status = ?`, id.String(), string(expected))
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

// ReferralDirection selects cards the user sent, received, or both.
type ReferralDirection string

const (
	ReferralsSent     ReferralDirection = "sent"
	ReferralsReceived ReferralDirection = "received"
	ReferralsAll      ReferralDirection = "all"
)

func ListReferralCards(ctx context.Context, q Querier, userID uuid.UUID, dir ReferralDirection, status models.ReferralStatus) ([]models.ReferralCard, error) {
	query := `SELECT ` + referralColumns + ` FROM referral_cards WHERE `
	var args []any
	switch dir {
	case ReferralsSent:
		query += `from_user_id = ?`
		args = append(args, userID.String())
	case ReferralsReceived:
		query += `to_user_id = ?`
		args = append(args, userID.String())
	default:
		query += `(from_user_id = ? OR to_user_id = ?)`
		args = append(args, userID.String(), userID.String())
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY referral_date DESC, created_at DESC`

	return queryReferralCards(ctx, q, query, args...)
}

func ListReferralCardsByMeeting(ctx context.Context, q Querier, meetingID uuid.UUID) ([]models.ReferralCard, error) {
	return queryReferralCards(ctx, q, `SELECT `+referralColumns+` FROM referral_cards WHERE meeting_id = ? ORDER BY created_at`, meetingID.String())
}

func queryReferralCards(ctx context.Context, q Querier, query string, args ...any) ([]models.ReferralCard, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.ReferralCard
	for rows.Next() {
		c, err := scanReferralCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}
