// ABOUTME: Exports accepted bizlink meetings to a Google Calendar
// ABOUTME: Inserts new events once per meeting and updates them on later runs
package calsync

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
	"google.golang.org/api/calendar/v3"
)

// MeetingIDProperty is the private extended property carrying the bizlink meeting id.
const MeetingIDProperty = "bizlinkMeetingId"

const defaultMeetingLength = time.Hour

type ExportResult struct {
	Created int
	Updated int
	Failed  int
}

type Exporter struct {
	svc        *network.Service
	cal        Calendar
	calendarID string
}

func NewExporter(svc *network.Service, cal Calendar, calendarID string) *Exporter {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Exporter{svc: svc, cal: cal, calendarID: calendarID}
}

// Export pushes every accepted meeting of actor that starts after now.
// A failed meeting is logged and counted; the rest still export.
func (e *Exporter) Export(ctx context.Context, actor uuid.UUID) (*ExportResult, error) {
	database := e.svc.DB()
	meetings, err := db.ListAcceptedMeetings(ctx, database, actor, e.svc.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	result := &ExportResult{}
	for i := range meetings {
		m := &meetings[i]
		created, err := e.exportMeeting(ctx, m, actor)
		if err != nil {
			log.Printf("calendar export failed for meeting %s: %v", m.ID, err)
			result.Failed++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, nil
}

func (e *Exporter) exportMeeting(ctx context.Context, m *models.Meeting, actor uuid.UUID) (bool, error) {
	database := e.svc.DB()
	otherID := m.RequestedID
	if otherID == actor {
		otherID = m.RequesterID
	}
	otherName := "unknown member"
	if other, err := db.GetUser(ctx, database, otherID); err == nil && other != nil {
		otherName = other.Name
	}
	event := BuildEvent(m, otherName)

	existing, err := db.GetCalendarExport(ctx, database, m.ID)
	if err != nil {
		return false, fmt.Errorf("failed to read export record: %w", err)
	}

	var saved *calendar.Event
	created := existing == nil || existing.CalendarID != e.calendarID
	if created {
		saved, err = e.cal.Insert(ctx, e.calendarID, event)
	} else {
		saved, err = e.cal.Update(ctx, e.calendarID, existing.EventID, event)
	}
	if err != nil {
		return false, err
	}

	record := &db.CalendarExport{
		MeetingID:  m.ID,
		CalendarID: e.calendarID,
		EventID:    saved.Id,
		ExportedAt: e.svc.Now(),
	}
	if err := db.SaveCalendarExport(ctx, database, record); err != nil {
		return false, fmt.Errorf("failed to save export record: %w", err)
	}
	return created, nil
}

// BuildEvent converts a meeting into a calendar event. The confirmed date wins over the proposed one.
func BuildEvent(m *models.Meeting, otherName string) *calendar.Event {
	start := m.MeetingDate
	if m.ConfirmedDate != nil {
		start = *m.ConfirmedDate
	}
	start = start.UTC()
	end := start.Add(defaultMeetingLength)

	var desc strings.Builder
	desc.WriteString(m.Purpose)
	if m.Agenda != "" {
		desc.WriteString("\n\nAgenda:\n")
		desc.WriteString(m.Agenda)
	}

	return &calendar.Event{
		Summary:     fmt.Sprintf("Meeting with %s", otherName),
		Description: desc.String(),
		Location:    m.Location,
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: "UTC"},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: "UTC"},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{MeetingIDProperty: m.ID.String()},
		},
	}
}
