// ABOUTME: Tracks which meetings were pushed to an external calendar
// ABOUTME: Maps meeting IDs to calendar event IDs so exports update instead of duplicating
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type CalendarExport struct {
	MeetingID  uuid.UUID
	CalendarID string
	EventID    string
	ExportedAt time.Time
}

func GetCalendarExport(ctx context.Context, q Querier, meetingID uuid.UUID) (*CalendarExport, error) {
	e := &CalendarExport{}
	err := q.QueryRowContext(ctx, `
		SELECT meeting_id, calendar_id, event_id, exported_at FROM calendar_exports WHERE meeting_id = ?
	`, meetingID.String()).Scan(&e.MeetingID, &e.CalendarID, &e.EventID, &e.ExportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func SaveCalendarExport(ctx context.Context, q Querier, e *CalendarExport) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO calendar_exports (meeting_id, calendar_id, event_id, exported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(meeting_id) DO UPDATE SET
			calendar_id = excluded.calendar_id,
			event_id = excluded.event_id,
			exported_at = excluded.exported_at
	`, e.MeetingID.String(), e.CalendarID, e.EventID, e.ExportedAt)
	return err
}
