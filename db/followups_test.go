// ABOUTME: Tests for follow-up database operations
// ABOUTME: Verifies optional columns, owner-scoped updates and filters
package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFollowUp(t *testing.T, q Querier, owner, metWith uuid.UUID, actions string) *models.FollowUp {
	t.Helper()
	f := &models.FollowUp{
		UserID:             owner,
		MetWithUserID:      metWith,
		Location:           "Downtown cafe",
		MeetingDate:        testNow,
		ConversationTopics: "Expansion plans",
		MeetingType:        models.FollowUpCoffeeChat,
		Outcome:            models.OutcomeGood,
		FollowUpActions:    actions,
		Status:             models.DeriveFollowUpStatus(actions),
		CreatedAt:          testNow,
		UpdatedAt:          testNow,
	}
	require.NoError(t, CreateFollowUp(context.Background(), q, f))
	return f
}

func TestFollowUpRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")

	f := seedFollowUp(t, db, a, b, "")

	got, err := GetFollowUp(ctx, db, f.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.FollowUpCompleted, got.Status)
	assert.Nil(t, got.DurationMinutes)
	assert.Nil(t, got.InvitedByUserID)
	assert.Nil(t, got.NextMeetingDate)

	minutes := 75
	next := testNow.Add(14 * 24 * time.Hour)
	got.DurationMinutes = &minutes
	got.NextMeetingDate = &next
	got.FutureMeetingPlanned = true
	got.InvitedByUserID = &b
	ok, err := UpdateFollowUp(ctx, db, got)
	require.NoError(t, err)
	assert.True(t, ok)

	again, err := GetFollowUp(ctx, db, f.ID)
	require.NoError(t, err)
	require.NotNil(t, again.DurationMinutes)
	assert.Equal(t, 75, *again.DurationMinutes)
	assert.True(t, again.FutureMeetingPlanned)
	require.NotNil(t, again.InvitedByUserID)
	assert.Equal(t, b, *again.InvitedByUserID)
}

func TestUpdateFollowUpScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")

	f := seedFollowUp(t, db, a, b, "")
	f.UserID = b
	ok, err := UpdateFollowUp(ctx, db, f)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListFollowUps(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	c := seedUser(t, db, "c")

	seedFollowUp(t, db, a, b, "send deck")
	seedFollowUp(t, db, a, c, "")
	seedFollowUp(t, db, b, a, "")

	mine, err := ListFollowUps(ctx, db, a, FollowUpFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	pending, err := ListFollowUps(ctx, db, a, FollowUpFilter{Status: models.FollowUpPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b, pending[0].MetWithUserID)

	withC, err := ListFollowUps(ctx, db, a, FollowUpFilter{MetWithUserID: &c})
	require.NoError(t, err)
	assert.Len(t, withC, 1)

	require.NoError(t, DeleteFollowUp(ctx, db, withC[0].ID))
	mine, err = ListFollowUps(ctx, db, a, FollowUpFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
