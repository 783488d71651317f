// ABOUTME: Activity log database operations
// ABOUTME: Appends one row per state change and lists an entity's history
package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
	"github.com/oklog/ulid/v2"
)

// RecordActivity appends an activity row. IDs are ULIDs so rows sort by time.
func RecordActivity(ctx context.Context, q Querier, a *models.Activity) error {
	if a.ID == "" {
		a.ID = ulid.MustNew(ulid.Timestamp(a.OccurredAt), ulid.DefaultEntropy()).String()
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO activity_log (id, entity_type, entity_id, actor_id, action, from_status, to_status, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.EntityType, a.EntityID.String(), a.ActorID.String(), a.Action, a.FromStatus, a.ToStatus, a.OccurredAt)
	return err
}

const activityColumns = `id, entity_type, entity_id, actor_id, action, from_status, to_status, occurred_at`

// ListActivity returns the history of one entity in the order it happened.
func ListActivity(ctx context.Context, q Querier, entityType string, entityID uuid.UUID) ([]models.Activity, error) {
	return queryActivity(ctx, q, `
		SELECT `+activityColumns+` FROM activity_log
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY id ASC
	`, entityType, entityID.String())
}

// ListActivityByActor returns the most recent actions taken by a user.
func ListActivityByActor(ctx context.Context, q Querier, actorID uuid.UUID, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	return queryActivity(ctx, q, `
		SELECT `+activityColumns+` FROM activity_log
		WHERE actor_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, actorID.String(), limit)
}

func queryActivity(ctx context.Context, q Querier, query string, args ...any) ([]models.Activity, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.EntityType, &a.EntityID, &a.ActorID, &a.Action, &a.FromStatus, &a.ToStatus, &a.OccurredAt); err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}
