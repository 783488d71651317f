// ABOUTME: Business recommendation database operations
// ABOUTME: Handles three-party recommendation records and recommendation network queries
package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
)

const recommendationColumns = `id, recommender_id, recommended_to_id, recommended_user_id, recommendation_date,
	business_description, why_recommended, recommendation_type, priority_level, status, follow_up_notes,
	outcome_notes, tags, is_mutual, estimated_value, contacted_at, completed_at, created_at, updated_at`

func CreateRecommendation(ctx context.Context, q Querier, r *models.Recommendation) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	tags, err := encodeStrings(r.Tags)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO recommendations (`+recommendationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID.String(), r.RecommenderID.String(), r.RecommendedToID.String(), r.RecommendedUserID.String(),
		r.RecommendationDate, r.BusinessDescription, r.WhyRecommended, string(r.RecommendationType),
		string(r.PriorityLevel), string(r.Status), r.FollowUpNotes, r.OutcomeNotes, tags, r.IsMutual,
		r.EstimatedValue, r.ContactedAt, r.CompletedAt, r.CreatedAt, r.UpdatedAt)

	return translateError(err)
}

func scanRecommendation(row interface{ Scan(...any) error }) (*models.Recommendation, error) {
	r := &models.Recommendation{}
	var recType, priority, status, tags string
	err := row.Scan(&r.ID, &r.RecommenderID, &r.RecommendedToID, &r.RecommendedUserID, &r.RecommendationDate,
		&r.BusinessDescription, &r.WhyRecommended, &recType, &priority, &status, &r.FollowUpNotes,
		&r.OutcomeNotes, &tags, &r.IsMutual, &r.EstimatedValue, &r.ContactedAt, &r.CompletedAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.RecommendationType = models.RecommendationType(recType)
	r.PriorityLevel = models.Priority(priority)
	r.Status = models.RecommendationStatus(status)
	if r.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	return r, nil
}

func GetRecommendation(ctx context.Context, q Querier, id uuid.UUID) (*models.Recommendation, error) {
	r, err := scanRecommendation(q.QueryRowContext(ctx, `SELECT `+recommendationColumns+` FROM recommendations WHERE id = ?`, id.String()))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// SaveRecommendation writes every mutable column. When expected is non-empty the
// write only happens while the stored status still equals it.
func SaveRecommendation(ctx context.Context, q Querier, r *models.Recommendation, expected models.RecommendationStatus) (bool, error) {
	tags, err := encodeStrings(r.Tags)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE recommendations SET recommendation_date = ?, business_description = ?, why_recommended = ?,
			recommendation_type = ?, priority_level = ?, status = ?, follow_up_notes = ?, outcome_notes = ?,
			tags = ?, is_mutual = ?, estimated_value = ?, contacted_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	args := []any{r.RecommendationDate, r.BusinessDescription, r.WhyRecommended,
		string(r.RecommendationType), string(r.PriorityLevel), string(r.Status), r.FollowUpNotes, r.OutcomeNotes,
		tags, r.IsMutual, r.EstimatedValue, r.ContactedAt, r.CompletedAt, r.UpdatedAt, r.ID.String()}
	if expected != "" {
		query += ` AND status = ?`
		args = append(args, string(expected))
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

func DeleteRecommendationIf(ctx context.Context, q Querier, id uuid.UUID, expected models.RecommendationStatus) (bool, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM recommendations WHERE id = ? AND status = ?`, id.String(), string(expected))
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

// RecommendationDirection selects which role the listing user plays.
type RecommendationDirection string

const (
	RecommendationsGiven    RecommendationDirection = "given"
	RecommendationsReceived RecommendationDirection = "received"
	RecommendationsAboutMe  RecommendationDirection = "about_me"
	RecommendationsAll      RecommendationDirection = "all"
)

func ListRecommendations(ctx context.Context, q Querier, userID uuid.UUID, dir RecommendationDirection, status models.RecommendationStatus) ([]models.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE `
	id := userID.String()
	var args []any
	switch dir {
	case RecommendationsGiven:
		query += `recommender_id = ?`
		args = append(args, id)
	case RecommendationsReceived:
		query += `recommended_to_id = ?`
		args = append(args, id)
	case RecommendationsAboutMe:
		query += `recommended_user_id = ?`
		args = append(args, id)
	default:
		query += `(recommender_id = ? OR recommended_to_id = ? OR recommended_user_id = ?)`
		args = append(args, id, id, id)
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY recommendation_date DESC, created_at DESC`

	return queryRecommendations(ctx, q, query, args...)
}

// ListAllRecommendations returns every recommendation, for graphing.
func ListAllRecommendations(ctx context.Context, q Querier) ([]models.Recommendation, error) {
	return queryRecommendations(ctx, q, `SELECT `+recommendationColumns+` FROM recommendations ORDER BY created_at`)
}

func queryRecommendations(ctx context.Context, q Querier, query string, args ...any) ([]models.Recommendation, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		r, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *r)
	}
	return recs, rows.Err()
}

// UserCount pairs a user with a tally.
type UserCount struct {
	UserID uuid.UUID
	Name   string
	Count  int
}

// MostRecommendedUsers ranks users by how often they were recommended.
func MostRecommendedUsers(ctx context.Context, q Querier, limit int) ([]UserCount, error) {
	return rankUsers(ctx, q, "recommended_user_id", limit)
}

// TopRecommenders ranks users by how many recommendations they gave.
func TopRecommenders(ctx context.Context, q Querier, limit int) ([]UserCount, error) {
	return rankUsers(ctx, q, "recommender_id", limit)
}

func rankUsers(ctx context.Context, q Querier, column string, limit int) ([]UserCount, error) {
	if limit <= 0 {
		limit = 10
	}
	// column is one of two fixed identifiers, never user input
	rows, err := q.QueryContext(ctx, `
		SELECT u.id, u.name, COUNT(r.id) AS n
		FROM recommendations r
		JOIN users u ON u.id = r.`+column+`
		GROUP BY u.id, u.name
		ORDER BY n DESC, u.name ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []UserCount
	for rows.Next() {
		var uc UserCount
		if err := rows.Scan(&uc.UserID, &uc.Name, &uc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, uc)
	}
	return counts, rows.Err()
}
