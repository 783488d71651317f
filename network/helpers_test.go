package network

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
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

func setupService(t *testing.T) (*Service, *sql.DB) {
	t.Helper()
	database := setupTestDB(t)
	return New(database, WithClock(FixedClock(testNow))), database
}

func seedMember(t *testing.T, database *sql.DB, name string) uuid.UUID {
	t.Helper()
	u := &models.User{Name: name, IsActive: true, MembershipStatus: models.MembershipActive}
	require.NoError(t, db.CreateUser(context.Background(), database, u))
	return u.ID
}

func seedInactive(t *testing.T, database *sql.DB, name string) uuid.UUID {
	t.Helper()
	u := &models.User{Name: name, IsActive: true, MembershipStatus: models.MembershipPending}
	require.NoError(t, db.CreateUser(context.Background(), database, u))
	return u.ID
}

func proposal(requested uuid.UUID) MeetingProposal {
	return MeetingProposal{
		RequestedID: requested,
		MeetingDate: testNow.Add(72 * time.Hour),
		Purpose:     "Explore a partnership",
	}
}

func strPtr(s string) *string { return &s }

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}
