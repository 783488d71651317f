// ABOUTME: Tests for meeting database operations
// ABOUTME: Verifies the pending-pair index and status-guarded writes
package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnlyOnePendingMeetingPerPair(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")

	first := seedMeeting(t, db, a, b, models.MeetingPending, testNow.Add(24*time.Hour))

	dup := &models.Meeting{
		RequesterID: b, RequestedID: a, MeetingDate: testNow, MeetingType: models.MeetingPhone,
		Status: models.MeetingPending, Purpose: "Again", Priority: models.PriorityLow,
		CreatedAt: testNow, UpdatedAt: testNow,
	}
	err := CreateMeeting(ctx, db, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))

	// Once the first is resolved a new pending meeting is allowed
	first.Status = models.MeetingDeclined
	ok, err := SaveMeetingIf(ctx, db, first, models.MeetingPending)
	require.NoError(t, err)
	require.True(t, ok)

	dup.ID = uuid.Nil
	require.NoError(t, CreateMeeting(ctx, db, dup))

	pending, err := FindPendingMeetingBetween(ctx, db, a, b)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, dup.ID, pending.ID)
}

func TestSaveMeetingIfChecksStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")

	m := seedMeeting(t, db, a, b, models.MeetingPending, testNow.Add(time.Hour))

	m.Status = models.MeetingAccepted
	m.AcceptedAt = &testNow
	m.Location = "Cafe"
	ok, err := SaveMeetingIf(ctx, db, m, models.MeetingPending)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = SaveMeetingIf(ctx, db, m, models.MeetingPending)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := GetMeeting(ctx, db, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingAccepted, got.Status)
	assert.Equal(t, "Cafe", got.Location)
	require.NotNil(t, got.AcceptedAt)
	assert.Nil(t, got.CompletedAt)
}

func TestMeetingPartiesAndDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	m := seedMeeting(t, db, a, b, models.MeetingAccepted, testNow)

	requester, requested, found, err := MeetingParties(ctx, db, m.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, a, requester)
	assert.Equal(t, b, requested)

	ok, err := DeleteMeetingIf(ctx, db, m.ID, models.MeetingPending)
	require.NoError(t, err)
	assert.False(t, ok, "accepted meeting must not be deleted")

	_, _, found, err = MeetingParties(ctx, db, uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListMeetingsFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	c := seedUser(t, db, "c")

	seedMeeting(t, db, a, b, models.MeetingAccepted, testNow.Add(48*time.Hour))
	seedMeeting(t, db, c, a, models.MeetingCompleted, testNow.Add(-48*time.Hour))

	all, err := ListMeetings(ctx, db, a, MeetingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upcoming, err := ListAcceptedMeetings(ctx, db, a, testNow)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, b, upcoming[0].RequestedID)

	past, err := ListMeetings(ctx, db, a, MeetingFilter{Before: &testNow})
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, models.MeetingCompleted, past[0].Status)

	other, err := ListMeetings(ctx, db, b, MeetingFilter{Status: models.MeetingCompleted})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestListMeetingsStatusesAppliedBeforeLimit(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	c := seedUser(t, db, "c")

	seedMeeting(t, db, a, b, models.MeetingCancelled, testNow.Add(96*time.Hour))
	want := seedMeeting(t, db, a, c, models.MeetingAccepted, testNow.Add(48*time.Hour))

	got, err := ListMeetings(ctx, db, a, MeetingFilter{
		Statuses: []models.MeetingStatus{models.MeetingPending, models.MeetingAccepted},
		After:    &testNow,
		Limit:    1,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want.ID, got[0].ID)
}
