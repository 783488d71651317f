package calsync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

var testNow = time.Date(2026, 5, 4, 15, 30, 0, 0, time.UTC)

type fakeCalendar struct {
	inserted []*calendar.Event
	updated  map[string]*calendar.Event
	failOn   string
	next     int
}

func (f *fakeCalendar) Insert(_ context.Context, _ string, event *calendar.Event) (*calendar.Event, error) {
	if event.Summary == f.failOn {
		return nil, errors.New("quota exceeded")
	}
	f.next++
	event.Id = fmt.Sprintf("evt%d", f.next)
	f.inserted = append(f.inserted, event)
	return event, nil
}

func (f *fakeCalendar) Update(_ context.Context, _ string, eventID string, event *calendar.Event) (*calendar.Event, error) {
	if f.updated == nil {
		f.updated = map[string]*calendar.Event{}
	}
	event.Id = eventID
	f.updated[eventID] = event
	return event, nil
}

func setupService(t *testing.T) *network.Service {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return network.New(database, network.WithClock(network.FixedClock(testNow)))
}

func seedMember(t *testing.T, svc *network.Service, name string) uuid.UUID {
	t.Helper()
	u := &models.User{Name: name, IsActive: true, MembershipStatus: models.MembershipActive}
	require.NoError(t, db.CreateUser(context.Background(), svc.DB(), u))
	return u.ID
}

func acceptedMeeting(t *testing.T, svc *network.Service, a, b uuid.UUID, when time.Time) *models.Meeting {
	t.Helper()
	ctx := context.Background()
	m, err := svc.Meetings.Propose(ctx, a, network.MeetingProposal{RequestedID: b, MeetingDate: when, Purpose: "Swap referrals", Agenda: "intros"})
	require.NoError(t, err)
	m, err = svc.Meetings.Accept(ctx, m.ID, b, network.AcceptOptions{})
	require.NoError(t, err)
	return m
}

func TestBuildEvent(t *testing.T) {
	confirmed := time.Date(2026, 5, 8, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	m := &models.Meeting{
		ID:            uuid.New(),
		MeetingDate:   time.Date(2026, 5, 7, 10, 0, 0, 0, time.UTC),
		ConfirmedDate: &confirmed,
		Location:      "Cafe Central",
		Purpose:       "Swap referrals",
		Agenda:        "intros",
	}

	event := BuildEvent(m, "Bob")
	assert.Equal(t, "Meeting with Bob", event.Summary)
	assert.Equal(t, "Cafe Central", event.Location)
	assert.Contains(t, event.Description, "Swap referrals")
	assert.Contains(t, event.Description, "Agenda:\nintros")
	assert.Equal(t, "2026-05-08T07:00:00Z", event.Start.DateTime)
	assert.Equal(t, "2026-05-08T08:00:00Z", event.End.DateTime)
	assert.Equal(t, m.ID.String(), event.ExtendedProperties.Private[MeetingIDProperty])
}

func TestExportInsertsThenUpdates(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice")
	bob := seedMember(t, svc, "Bob")
	carol := seedMember(t, svc, "Carol")

	first := acceptedMeeting(t, svc, alice, bob, testNow.Add(48*time.Hour))
	acceptedMeeting(t, svc, carol, alice, testNow.Add(96*time.Hour))

	// pending meetings are not exported
	_, err := svc.Meetings.Propose(ctx, bob, network.MeetingProposal{RequestedID: carol, MeetingDate: testNow.Add(24 * time.Hour), Purpose: "Hello"})
	require.NoError(t, err)

	cal := &fakeCalendar{}
	exporter := NewExporter(svc, cal, "")

	result, err := exporter.Export(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, &ExportResult{Created: 2}, result)
	require.Len(t, cal.inserted, 2)

	record, err := db.GetCalendarExport(ctx, svc.DB(), first.ID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "primary", record.CalendarID)

	result, err = exporter.Export(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, &ExportResult{Updated: 2}, result)
	assert.Len(t, cal.inserted, 2)
	assert.Contains(t, cal.updated, record.EventID)
}

func TestExportCountsFailures(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice")
	bob := seedMember(t, svc, "Bob")
	carol := seedMember(t, svc, "Carol")

	failed := acceptedMeeting(t, svc, alice, bob, testNow.Add(48*time.Hour))
	acceptedMeeting(t, svc, alice, carol, testNow.Add(72*time.Hour))

	cal := &fakeCalendar{failOn: "Meeting with Bob"}
	result, err := NewExporter(svc, cal, "work").Export(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Failed)

	record, err := db.GetCalendarExport(ctx, svc.DB(), failed.ID)
	require.NoError(t, err)
	assert.Nil(t, record)
}
