package handlers

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 4, 15, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func setupService(t *testing.T) (*network.Service, *sql.DB) {
	t.Helper()
	database := setupTestDB(t)
	return network.New(database, network.WithClock(network.FixedClock(testNow))), database
}

func seedMember(t *testing.T, database *sql.DB, name string) uuid.UUID {
	t.Helper()
	u := &models.User{Name: name, IsActive: true, MembershipStatus: models.MembershipActive}
	require.NoError(t, db.CreateUser(context.Background(), database, u))
	return u.ID
}

func futureDate() string {
	return testNow.Add(72 * time.Hour).Format(time.RFC3339)
}

// acceptedMeeting proposes from a to b and accepts it as b.
func acceptedMeeting(t *testing.T, svc *network.Service, a, b uuid.UUID) MeetingOutput {
	t.Helper()
	ctx := context.Background()
	_, proposed, err := NewMeetingHandlers(svc, a).ProposeMeeting(ctx, nil, ProposeMeetingInput{
		RequestedID: b.String(),
		MeetingDate: futureDate(),
		Purpose:     "Talk about referrals",
	})
	require.NoError(t, err)
	_, accepted, err := NewMeetingHandlers(svc, b).AcceptMeeting(ctx, nil, AcceptMeetingInput{MeetingID: proposed.ID})
	require.NoError(t, err)
	return accepted
}
