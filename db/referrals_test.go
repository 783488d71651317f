// ABOUTME: Tests for referral card database operations
// ABOUTME: Verifies follow-up action encoding, guarded saves and listings
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

func seedReferral(t *testing.T, q Querier, meetingID, from, to uuid.UUID) *models.ReferralCard {
	t.Helper()
	card := &models.ReferralCard{
		MeetingID:           meetingID,
		FromUserID:          from,
		ToUserID:            to,
		ReferralDate:        testNow,
		ReferralDescription: "Needs a new roof",
		ReferralType:        models.ReferralExternal,
		InterestLevel:       models.InterestHigh,
		Status:              models.ReferralDraft,
		CreatedAt:           testNow,
		UpdatedAt:           testNow,
	}
	require.NoError(t, CreateReferralCard(context.Background(), q, card))
	return card
}

func TestReferralCardRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	m := seedMeeting(t, db, a, b, models.MeetingAccepted, testNow)

	card := seedReferral(t, db, m.ID, a, b)

	got, err := GetReferralCard(ctx, db, card.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.ReferralDraft, got.Status)
	assert.Nil(t, got.FollowUpActions)
	assert.Nil(t, got.SentAt)

	got.FollowUpActions = []string{"call Tuesday", "send quote"}
	got.Status = models.ReferralSent
	sent := testNow.Add(time.Hour)
	got.SentAt = &sent
	ok, err := SaveReferralCardIf(ctx, db, got, models.ReferralDraft)
	require.NoError(t, err)
	assert.True(t, ok)

	again, err := GetReferralCard(ctx, db, card.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"call Tuesday", "send quote"}, again.FollowUpActions)
	assert.Equal(t, models.ReferralSent, again.Status)
	require.NotNil(t, again.SentAt)
	assert.True(t, again.SentAt.Equal(sent))

	ok, err = SaveReferralCardIf(ctx, db, got, models.ReferralDraft)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = DeleteReferralCardIf(ctx, db, card.ID, models.ReferralDraft)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListReferralCards(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	m := seedMeeting(t, db, a, b, models.MeetingAccepted, testNow)

	seedReferral(t, db, m.ID, a, b)
	seedReferral(t, db, m.ID, b, a)

	sent, err := ListReferralCards(ctx, db, a, ReferralsSent, "")
	require.NoError(t, err)
	assert.Len(t, sent, 1)

	received, err := ListReferralCards(ctx, db, a, ReferralsReceived, models.ReferralDraft)
	require.NoError(t, err)
	assert.Len(t, received, 1)

	byMeeting, err := ListReferralCardsByMeeting(ctx, db, m.ID)
	require.NoError(t, err)
	assert.Len(t, byMeeting, 2)
}

func TestDecodeStrings(t *testing.T) {
	values, err := decodeStrings("[]")
	require.NoError(t, err)
	assert.Nil(t, values)

	_, err = decodeStrings("{not json")
	assert.Error(t, err)

	raw, err := encodeStrings(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}
