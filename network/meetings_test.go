package network

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposeMeetingValidation(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")
	pending := seedInactive(t, database, "pending")

	_, err := svc.Meetings.Propose(ctx, a, proposal(a))
	requireKind(t, err, KindInvalidArgument)

	_, err = svc.Meetings.Propose(ctx, a, proposal(uuid.New()))
	requireKind(t, err, KindNotFound)

	_, err = svc.Meetings.Propose(ctx, a, proposal(pending))
	requireKind(t, err, KindPreconditionFailed)

	bad := proposal(b)
	bad.MeetingType = "telepathy"
	_, err = svc.Meetings.Propose(ctx, a, bad)
	requireKind(t, err, KindInvalidArgument)

	past := proposal(b)
	past.MeetingDate = testNow.Add(-time.Hour)
	_, err = svc.Meetings.Propose(ctx, a, past)
	requireKind(t, err, KindInvalidArgument)

	m, err := svc.Meetings.Propose(ctx, a, proposal(b))
	require.NoError(t, err)
	assert.Equal(t, models.MeetingPending, m.Status)
	assert.Equal(t, models.MeetingInPerson, m.MeetingType)
	assert.Equal(t, models.PriorityMedium, m.Priority)

	// One pending meeting per pair, whichever side asks
	_, err = svc.Meetings.Propose(ctx, b, proposal(a))
	requireKind(t, err, KindConflict)
}

func TestMeetingDeclineScenario(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	u1 := seedMember(t, database, "u1")
	u2 := seedMember(t, database, "u2")

	m, err := svc.Meetings.Propose(ctx, u1, proposal(u2))
	require.NoError(t, err)

	_, err = svc.Meetings.Decline(ctx, m.ID, u1, "")
	requireKind(t, err, KindForbidden)

	declined, err := svc.Meetings.Decline(ctx, m.ID, u2, "Travelling that week")
	require.NoError(t, err)
	assert.Equal(t, models.MeetingDeclined, declined.Status)
	assert.Equal(t, "Travelling that week", declined.RequestedNotes)

	_, err = svc.Meetings.Accept(ctx, m.ID, u2, AcceptOptions{})
	requireKind(t, err, KindPreconditionFailed)

	err = svc.Meetings.Remove(ctx, m.ID, u1)
	requireKind(t, err, KindPreconditionFailed)

	// A declined meeting no longer blocks a new request
	_, err = svc.Meetings.Propose(ctx, u2, proposal(u1))
	require.NoError(t, err)
}

func TestMeetingAcceptCompleteFlow(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")
	c := seedMember(t, database, "c")

	m, err := svc.Meetings.Propose(ctx, a, proposal(b))
	require.NoError(t, err)

	_, err = svc.Meetings.Complete(ctx, m.ID, a, "")
	requireKind(t, err, KindPreconditionFailed)

	confirmed := testNow.Add(96 * time.Hour)
	accepted, err := svc.Meetings.Accept(ctx, m.ID, b, AcceptOptions{
		ConfirmedDate: &confirmed,
		Location:      strPtr("Union Hall"),
		Notes:         strPtr("Bring the brochure"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MeetingAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedAt)
	assert.True(t, accepted.AcceptedAt.Equal(testNow))
	require.NotNil(t, accepted.ConfirmedDate)
	assert.True(t, accepted.ConfirmedDate.Equal(confirmed))
	assert.Equal(t, "Union Hall", accepted.Location)
	assert.Equal(t, "Bring the brochure", accepted.RequestedNotes)

	_, err = svc.Meetings.Accept(ctx, m.ID, b, AcceptOptions{})
	requireKind(t, err, KindPreconditionFailed)

	_, err = svc.Meetings.Complete(ctx, m.ID, c, "")
	requireKind(t, err, KindForbidden)

	done, err := svc.Meetings.Complete(ctx, m.ID, a, "Great chat")
	require.NoError(t, err)
	assert.Equal(t, models.MeetingCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, "Great chat", done.RequesterNotes)

	_, err = svc.Meetings.Cancel(ctx, m.ID, a)
	requireKind(t, err, KindPreconditionFailed)

	history, err := svc.History(ctx, models.EntityMeeting, m.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "accept", history[1].Action)
	assert.Equal(t, "accepted", history[1].ToStatus)
}

func TestMeetingCancel(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")

	m, err := svc.Meetings.Propose(ctx, a, proposal(b))
	require.NoError(t, err)

	_, err = svc.Meetings.Cancel(ctx, m.ID, a)
	requireKind(t, err, KindPreconditionFailed)

	_, err = svc.Meetings.Accept(ctx, m.ID, b, AcceptOptions{})
	require.NoError(t, err)

	cancelled, err := svc.Meetings.Cancel(ctx, m.ID, b)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingCancelled, cancelled.Status)
}

func TestMeetingUpdateNotesOwnership(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")
	c := seedMember(t, database, "c")

	m, err := svc.Meetings.Propose(ctx, a, proposal(b))
	require.NoError(t, err)

	_, err = svc.Meetings.Update(ctx, m.ID, c, MeetingUpdate{Agenda: strPtr("x")})
	requireKind(t, err, KindForbidden)

	_, err = svc.Meetings.Update(ctx, m.ID, b, MeetingUpdate{RequesterNotes: strPtr("not mine")})
	requireKind(t, err, KindForbidden)

	updated, err := svc.Meetings.Update(ctx, m.ID, b, MeetingUpdate{
		Agenda:         strPtr("1. intros 2. referrals"),
		RequestedNotes: strPtr("Looking forward"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1. intros 2. referrals", updated.Agenda)
	assert.Equal(t, "Looking forward", updated.RequestedNotes)
	assert.Equal(t, models.MeetingPending, updated.Status)
}

func TestMeetingRemovePending(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")
	c := seedMember(t, database, "c")

	m, err := svc.Meetings.Propose(ctx, a, proposal(b))
	require.NoError(t, err)

	err = svc.Meetings.Remove(ctx, m.ID, c)
	requireKind(t, err, KindForbidden)

	require.NoError(t, svc.Meetings.Remove(ctx, m.ID, b))

	_, err = svc.Meetings.Get(ctx, m.ID, a)
	requireKind(t, err, KindNotFound)
}

func TestConcurrentAcceptHasOneWinner(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")

	m, err := svc.Meetings.Propose(ctx, a, proposal(b))
	require.NoError(t, err)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, errs[i] = svc.Meetings.Accept(ctx, m.ID, b, AcceptOptions{})
			} else {
				_, errs[i] = svc.Meetings.Decline(ctx, m.ID, b, "")
			}
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.Equal(t, KindPreconditionFailed, KindOf(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, wins)
}

func TestMeetingOtherParticipantAndList(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")
	c := seedMember(t, database, "c")

	m, err := svc.Meetings.Propose(ctx, a, proposal(b))
	require.NoError(t, err)

	other, err := svc.Meetings.OtherParticipant(m, a)
	require.NoError(t, err)
	assert.Equal(t, b, other)

	other, err = svc.Meetings.OtherParticipant(m, b)
	require.NoError(t, err)
	assert.Equal(t, a, other)

	_, err = svc.Meetings.OtherParticipant(m, c)
	requireKind(t, err, KindForbidden)

	requester, requested, err := svc.Meetings.PartiesOf(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, a, requester)
	assert.Equal(t, b, requested)

	_, _, err = svc.Meetings.PartiesOf(ctx, uuid.New())
	requireKind(t, err, KindNotFound)

	upcoming, err := svc.Meetings.List(ctx, b, MeetingListFilter{Upcoming: true})
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)

	none, err := svc.Meetings.List(ctx, c, MeetingListFilter{})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.Meetings.List(ctx, a, MeetingListFilter{Status: "postponed"})
	requireKind(t, err, KindInvalidArgument)
}

func TestUpcomingMeetingsSkipResolvedBeforeLimit(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	a := seedMember(t, database, "a")
	b := seedMember(t, database, "b")
	c := seedMember(t, database, "c")

	open, err := svc.Meetings.Propose(ctx, a, MeetingProposal{RequestedID: b, MeetingDate: testNow.Add(24 * time.Hour), Purpose: "Soon"})
	require.NoError(t, err)

	later, err := svc.Meetings.Propose(ctx, a, MeetingProposal{RequestedID: c, MeetingDate: testNow.Add(240 * time.Hour), Purpose: "Later"})
	require.NoError(t, err)
	_, err = svc.Meetings.Decline(ctx, later.ID, c, "")
	require.NoError(t, err)

	upcoming, err := svc.Meetings.List(ctx, a, MeetingListFilter{Upcoming: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, open.ID, upcoming[0].ID)
}
