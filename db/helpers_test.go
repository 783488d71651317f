package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, db *sql.DB, name string) uuid.UUID {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", IsActive: true, MembershipStatus: models.MembershipActive}
	if err := CreateUser(context.Background(), db, u); err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return u.ID
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func seedMeeting(t *testing.T, db *sql.DB, requester, requested uuid.UUID, status models.MeetingStatus, when time.Time) *models.Meeting {
	t.Helper()
	m := &models.Meeting{
		RequesterID: requester,
		RequestedID: requested,
		MeetingDate: when,
		MeetingType: models.MeetingInPerson,
		Status:      status,
		Purpose:     "Intro coffee",
		Priority:    models.PriorityMedium,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	if err := CreateMeeting(context.Background(), db, m); err != nil {
		t.Fatalf("Failed to create meeting: %v", err)
	}
	return m
}
