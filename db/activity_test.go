// ABOUTME: Tests for the activity log and per-user stats queries
// ABOUTME: Verifies ULID ordering and counter aggregation
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

func TestActivityLogOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	entity := uuid.New()
	actor := uuid.New()

	for i, action := range []string{"propose", "accept", "complete"} {
		require.NoError(t, RecordActivity(ctx, db, &models.Activity{
			EntityType: models.EntityMeeting,
			EntityID:   entity,
			ActorID:    actor,
			Action:     action,
			OccurredAt: testNow.Add(time.Duration(i) * time.Minute),
		}))
	}

	history, err := ListActivity(ctx, db, models.EntityMeeting, entity)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "propose", history[0].Action)
	assert.Equal(t, "complete", history[2].Action)
	assert.Len(t, history[0].ID, 26)

	recent, err := ListActivityByActor(ctx, db, actor, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "complete", recent[0].Action)
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	c := seedUser(t, db, "c")

	seedMeeting(t, db, b, a, models.MeetingPending, testNow.Add(24*time.Hour))
	done := seedMeeting(t, db, a, c, models.MeetingCompleted, testNow.Add(-24*time.Hour))

	ms, err := GetMeetingStats(ctx, db, a, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, ms.Total)
	assert.Equal(t, 1, ms.PendingReceived)
	assert.Equal(t, 0, ms.PendingSent)
	assert.Equal(t, 1, ms.Upcoming)
	assert.Equal(t, 1, ms.Completed)
	assert.Equal(t, 2, ms.ScheduledInMonth)

	seedReferral(t, db, done.ID, a, c)
	rs, err := GetReferralStats(ctx, db, a)
	require.NoError(t, err)
	assert.Equal(t, 1, rs.Sent)
	assert.Equal(t, 1, rs.Drafts)
	assert.Equal(t, 1, rs.HighInterest)

	rec := seedRecommendation(t, db, b, a, c)
	value := int64(5000)
	rec.Status = models.RecommendationBusinessDone
	rec.EstimatedValue = &value
	rec.CompletedAt = &testNow
	_, err = SaveRecommendation(ctx, db, rec, "")
	require.NoError(t, err)

	recStats, err := GetRecommendationStats(ctx, db, a)
	require.NoError(t, err)
	assert.Equal(t, 1, recStats.Received)
	assert.Equal(t, 1, recStats.BusinessDone)
	assert.Equal(t, int64(5000), recStats.TotalEstimatedValue)

	seedFollowUp(t, db, a, b, "call back")
	fs, err := GetFollowUpStats(ctx, db, a)
	require.NoError(t, err)
	assert.Equal(t, 1, fs.Total)
	assert.Equal(t, 1, fs.PendingFollowUp)
}
