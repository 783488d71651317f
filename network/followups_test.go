package network

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followUpDraft(metWith uuid.UUID, actions string) FollowUpDraft {
	return FollowUpDraft{
		MetWithUserID:      metWith,
		Location:           "Harbor Cafe",
		MeetingDate:        testNow.Add(-24 * time.Hour),
		ConversationTopics: "Supply chain, hiring",
		FollowUpActions:    actions,
	}
}

func TestFollowUpCreateDerivesStatus(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")
	inactive := seedInactive(t, database, "inactive")

	_, err := svc.FollowUps.Create(ctx, a, followUpDraft(inactive, ""))
	requireKind(t, err, KindPreconditionFailed)

	_, err = svc.FollowUps.Create(ctx, a, followUpDraft(a, ""))
	requireKind(t, err, KindInvalidArgument)

	withActions, err := svc.FollowUps.Create(ctx, a, followUpDraft(b, "Send the proposal"))
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpPending, withActions.Status)
	assert.Equal(t, models.FollowUpOneToOne, withActions.MeetingType)
	assert.Equal(t, models.OutcomeGood, withActions.Outcome)

	without, err := svc.FollowUps.Create(ctx, a, followUpDraft(b, ""))
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpCompleted, without.Status)

	explicit := followUpDraft(b, "Send the proposal")
	explicit.Status = models.FollowUpDraft
	draft, err := svc.FollowUps.Create(ctx, a, explicit)
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpDraft, draft.Status)

	badNext := followUpDraft(b, "")
	before := badNext.MeetingDate.Add(-time.Hour)
	badNext.NextMeetingDate = &before
	_, err = svc.FollowUps.Create(ctx, a, badNext)
	requireKind(t, err, KindInvalidArgument)
}

func TestFollowUpUpdateRederivesStatus(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")

	f, err := svc.FollowUps.Create(ctx, a, followUpDraft(b, ""))
	require.NoError(t, err)

	_, err = svc.FollowUps.Update(ctx, f.ID, b, FollowUpUpdate{Notes: strPtr("hijack")})
	requireKind(t, err, KindForbidden)

	updated, err := svc.FollowUps.Update(ctx, f.ID, a, FollowUpUpdate{FollowUpActions: strPtr("Intro to Dana")})
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpPending, updated.Status)

	cleared, err := svc.FollowUps.Update(ctx, f.ID, a, FollowUpUpdate{FollowUpActions: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpCompleted, cleared.Status)

	draft := models.FollowUpDraft
	pinned, err := svc.FollowUps.Update(ctx, f.ID, a, FollowUpUpdate{FollowUpActions: strPtr("More work"), Status: &draft})
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpDraft, pinned.Status)

	bogus := models.FollowUpStatus("archived")
	_, err = svc.FollowUps.Update(ctx, f.ID, a, FollowUpUpdate{Status: &bogus})
	requireKind(t, err, KindInvalidArgument)
}

func TestFollowUpVisibilityAndRemove(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")
	c := seedMember(t, database, "c")

	f, err := svc.FollowUps.Create(ctx, a, followUpDraft(b, ""))
	require.NoError(t, err)

	_, err = svc.FollowUps.Get(ctx, f.ID, b)
	require.NoError(t, err)
	_, err = svc.FollowUps.Get(ctx, f.ID, c)
	requireKind(t, err, KindForbidden)

	err = svc.FollowUps.Remove(ctx, f.ID, b)
	requireKind(t, err, KindForbidden)
	require.NoError(t, svc.FollowUps.Remove(ctx, f.ID, a))

	_, err = svc.FollowUps.Get(ctx, f.ID, a)
	requireKind(t, err, KindNotFound)
}

func TestStatsForMember(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")
	c := seedMember(t, database, "c")

	m := setupMeeting(t, svc, a, b)
	_, err := svc.Referrals.Create(ctx, a, referralDraft(m.ID, b))
	require.NoError(t, err)
	_, err = svc.Recommendations.Create(ctx, a, recDraft(b, c))
	require.NoError(t, err)
	_, err = svc.FollowUps.Create(ctx, a, followUpDraft(b, "call"))
	require.NoError(t, err)

	stats, err := svc.Stats.For(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Meetings.Total)
	assert.Equal(t, 1, stats.Meetings.Upcoming)
	assert.Equal(t, 1, stats.Referrals.Drafts)
	assert.Equal(t, 1, stats.Recommendations.Given)
	assert.Equal(t, 1, stats.FollowUps.PendingFollowUp)
}

func TestFollowUpBlankActionsStoredEmpty(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")

	f, err := svc.FollowUps.Create(ctx, a, followUpDraft(b, "   "))
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpCompleted, f.Status)
	assert.Equal(t, "", f.FollowUpActions)
	assert.False(t, f.NeedsFollowUp())

	updated, err := svc.FollowUps.Update(ctx, f.ID, a, FollowUpUpdate{FollowUpActions: strPtr("\t ")})
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpCompleted, updated.Status)
	assert.False(t, updated.NeedsFollowUp())

	stored, err := svc.FollowUps.Get(ctx, f.ID, a)
	require.NoError(t, err)
	assert.Equal(t, "", stored.FollowUpActions)
}

func TestFollowUpUpdateClearsOptionalFields(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")
	c := seedMember(t, database, "c")

	d := followUpDraft(b, "")
	next := testNow.Add(24 * time.Hour)
	minutes := 45
	d.NextMeetingDate = &next
	d.DurationMinutes = &minutes
	d.InvitedByUserID = &c
	f, err := svc.FollowUps.Create(ctx, a, d)
	require.NoError(t, err)

	// moving the meeting past the planned next one needs the next date cleared
	later := testNow.Add(48 * time.Hour)
	_, err = svc.FollowUps.Update(ctx, f.ID, a, FollowUpUpdate{MeetingDate: &later})
	requireKind(t, err, KindInvalidArgument)

	updated, err := svc.FollowUps.Update(ctx, f.ID, a, FollowUpUpdate{
		MeetingDate:          &later,
		ClearNextMeetingDate: true,
		ClearDuration:        true,
		ClearInvitedBy:       true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.NextMeetingDate)
	assert.Nil(t, updated.DurationMinutes)
	assert.Nil(t, updated.InvitedByUserID)

	stored, err := svc.FollowUps.Get(ctx, f.ID, a)
	require.NoError(t, err)
	assert.Nil(t, stored.NextMeetingDate)
	assert.Nil(t, stored.DurationMinutes)
	assert.Nil(t, stored.InvitedByUserID)
	assert.True(t, stored.MeetingDate.Equal(later))
}
