package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionTools(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	alice := seedMember(t, database, "Alice")
	bob := seedMember(t, database, "Bob")

	_, conn, err := NewConnectionHandlers(svc, alice).RequestConnection(ctx, nil, RequestConnectionInput{AddresseeID: bob.String(), Message: "Met at the mixer"})
	require.NoError(t, err)
	assert.Equal(t, "pending", conn.Status)

	_, _, err = NewConnectionHandlers(svc, bob).RequestConnection(ctx, nil, RequestConnectionInput{AddresseeID: alice.String()})
	assert.ErrorContains(t, err, "conflict: ")

	_, _, err = NewConnectionHandlers(svc, alice).RespondConnection(ctx, nil, RespondConnectionInput{ConnectionID: conn.ID, Decision: "accept"})
	assert.ErrorContains(t, err, "forbidden: ")

	_, pending, err := NewConnectionHandlers(svc, bob).ListConnections(ctx, nil, ListConnectionsInput{View: "pending"})
	require.NoError(t, err)
	require.Len(t, pending.Connections, 1)

	_, conn, err = NewConnectionHandlers(svc, bob).RespondConnection(ctx, nil, RespondConnectionInput{ConnectionID: conn.ID, Decision: "accept"})
	require.NoError(t, err)
	assert.Equal(t, "accepted", conn.Status)
	assert.NotNil(t, conn.AcceptedAt)

	_, _, err = NewConnectionHandlers(svc, bob).ListConnections(ctx, nil, ListConnectionsInput{View: "blocked"})
	assert.ErrorContains(t, err, "invalid view")

	_, removed, err := NewConnectionHandlers(svc, alice).RemoveConnection(ctx, nil, RemoveConnectionInput{ConnectionID: conn.ID})
	require.NoError(t, err)
	assert.True(t, removed.Removed)
}

func TestMeetingTools(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	alice := seedMember(t, database, "Alice")
	bob := seedMember(t, database, "Bob")
	carol := seedMember(t, database, "Carol")

	_, _, err := NewMeetingHandlers(svc, alice).ProposeMeeting(ctx, nil, ProposeMeetingInput{
		RequestedID: bob.String(),
		MeetingDate: "2020-01-01",
		Purpose:     "Too late",
	})
	assert.ErrorContains(t, err, "invalid argument: ")

	m := acceptedMeeting(t, svc, alice, bob)
	assert.Equal(t, "accepted", m.Status)
	assert.NotEmpty(t, m.StatusText)
	assert.NotEmpty(t, m.PriorityColor)

	_, _, err = NewMeetingHandlers(svc, carol).GetMeeting(ctx, nil, MeetingIDInput{MeetingID: m.ID})
	assert.ErrorContains(t, err, "forbidden: ")

	_, _, err = NewMeetingHandlers(svc, bob).DeclineMeeting(ctx, nil, DeclineMeetingInput{MeetingID: m.ID, Reason: "changed my mind"})
	assert.ErrorContains(t, err, "precondition failed: ")

	_, detail, err := NewMeetingHandlers(svc, alice).GetMeeting(ctx, nil, MeetingIDInput{MeetingID: m.ID})
	require.NoError(t, err)
	assert.Equal(t, bob.String(), detail.OtherParticipant)
	assert.Equal(t, 0, detail.ReferralCount)

	_, done, err := NewMeetingHandlers(svc, alice).CompleteMeeting(ctx, nil, CompleteMeetingInput{MeetingID: m.ID, Notes: "Good talk"})
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)

	_, list, err := NewMeetingHandlers(svc, bob).ListMeetings(ctx, nil, ListMeetingsInput{Status: "completed"})
	require.NoError(t, err)
	assert.Len(t, list.Meetings, 1)

	_, _, err = NewMeetingHandlers(svc, bob).ListMeetings(ctx, nil, ListMeetingsInput{Status: "someday"})
	assert.ErrorContains(t, err, "invalid argument: ")
}

func TestReferralTools(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	alice := seedMember(t, database, "Alice")
	bob := seedMember(t, database, "Bob")
	m := acceptedMeeting(t, svc, alice, bob)

	sender := NewReferralHandlers(svc, alice)
	receiver := NewReferralHandlers(svc, bob)

	_, card, err := sender.CreateReferral(ctx, nil, CreateReferralInput{
		MeetingID:           m.ID,
		ToUserID:            bob.String(),
		ReferralDescription: "Needs a bookkeeper",
		InterestLevel:       "high",
		FollowUpActions:     []string{"call Tuesday"},
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", card.Status)
	assert.Equal(t, "external", card.ReferralType)
	assert.Equal(t, []string{"call Tuesday"}, card.FollowUpActions)
	assert.NotEmpty(t, card.InterestLevelColor)

	_, _, err = receiver.ReceiveReferral(ctx, nil, ReferralIDInput{ReferralID: card.ID})
	assert.Error(t, err)

	_, card, err = sender.SendReferral(ctx, nil, ReferralIDInput{ReferralID: card.ID})
	require.NoError(t, err)
	assert.NotNil(t, card.SentAt)

	_, _, err = sender.UpdateReferral(ctx, nil, UpdateReferralInput{ReferralID: card.ID, Comments: "too late"})
	assert.ErrorContains(t, err, "precondition failed: ")

	_, card, err = receiver.ReceiveReferral(ctx, nil, ReferralIDInput{ReferralID: card.ID})
	require.NoError(t, err)
	assert.Equal(t, "received", card.Status)

	_, card, err = receiver.CompleteReferral(ctx, nil, CompleteReferralInput{ReferralID: card.ID, Comments: "Signed them up"})
	require.NoError(t, err)
	assert.Equal(t, "completed", card.Status)

	_, byMeeting, err := receiver.ListReferrals(ctx, nil, ListReferralsInput{MeetingID: m.ID})
	require.NoError(t, err)
	assert.Len(t, byMeeting.Referrals, 1)

	_, sent, err := sender.ListReferrals(ctx, nil, ListReferralsInput{Direction: "sent"})
	require.NoError(t, err)
	assert.Len(t, sent.Referrals, 1)

	_, got, err := receiver.GetReferral(ctx, nil, ReferralIDInput{ReferralID: card.ID})
	require.NoError(t, err)
	assert.Equal(t, "Signed them up", got.Comments)
}

func TestRecommendationTools(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	alice := seedMember(t, database, "Alice")
	bob := seedMember(t, database, "Bob")
	carol := seedMember(t, database, "Carol")

	value := int64(500000)
	_, rec, err := NewRecommendationHandlers(svc, alice).CreateRecommendation(ctx, nil, CreateRecommendationInput{
		RecommendedToID:     bob.String(),
		RecommendedUserID:   carol.String(),
		BusinessDescription: "Office fit-outs",
		WhyRecommended:      "Did our new floor",
		EstimatedValue:      &value,
	})
	require.NoError(t, err)
	assert.Equal(t, "recommender", rec.MyRole)
	assert.Equal(t, "pending", rec.Status)

	_, _, err = NewRecommendationHandlers(svc, bob).UpdateRecommendation(ctx, nil, UpdateRecommendationInput{RecommendationID: rec.ID, WhyRecommended: "edited"})
	assert.ErrorContains(t, err, "forbidden: ")

	_, got, err := NewRecommendationHandlers(svc, carol).GetRecommendation(ctx, nil, RecommendationIDInput{RecommendationID: rec.ID})
	require.NoError(t, err)
	assert.Equal(t, "recommended_user", got.MyRole)

	_, rec, err = NewRecommendationHandlers(svc, bob).MarkContacted(ctx, nil, MarkContactedInput{RecommendationID: rec.ID, Notes: "Left a message"})
	require.NoError(t, err)
	assert.Equal(t, "contacted", rec.Status)
	assert.Equal(t, "recommended_to", rec.MyRole)

	_, _, err = NewRecommendationHandlers(svc, bob).MarkCompleted(ctx, nil, MarkCompletedInput{RecommendationID: rec.ID, Outcome: "pending"})
	assert.ErrorContains(t, err, "invalid argument: ")

	_, rec, err = NewRecommendationHandlers(svc, bob).MarkCompleted(ctx, nil, MarkCompletedInput{RecommendationID: rec.ID, Outcome: "business_done", OutcomeNotes: "Hired them"})
	require.NoError(t, err)
	assert.Equal(t, "business_done", rec.Status)
	assert.NotNil(t, rec.CompletedAt)

	_, net, err := NewRecommendationHandlers(svc, bob).RecommendationNetwork(ctx, nil, NetworkInput{})
	require.NoError(t, err)
	require.Len(t, net.MostRecommended, 1)
	assert.Equal(t, "Carol", net.MostRecommended[0].Name)
	require.Len(t, net.TopRecommenders, 1)
	assert.Equal(t, "Alice", net.TopRecommenders[0].Name)
}

func TestFollowUpTools(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	alice := seedMember(t, database, "Alice")
	bob := seedMember(t, database, "Bob")

	duration := 90
	h := NewFollowUpHandlers(svc, alice)
	_, f, err := h.LogFollowUp(ctx, nil, LogFollowUpInput{
		MetWithUserID:      bob.String(),
		Location:           "Harbor Cafe",
		MeetingDate:        "2026-05-01",
		ConversationTopics: "Hiring",
		DurationMinutes:    &duration,
		Outcome:            "excellent",
		FollowUpActions:    "Send intro email",
	})
	require.NoError(t, err)
	assert.Equal(t, "follow_up_pending", f.Status)
	assert.Equal(t, "1h 30m", f.Duration)
	assert.True(t, f.NeedsFollowUp)
	assert.NotEmpty(t, f.OutcomeColor)

	empty := ""
	_, f, err = h.UpdateFollowUp(ctx, nil, UpdateFollowUpInput{FollowUpID: f.ID, FollowUpActions: &empty})
	require.NoError(t, err)
	assert.Equal(t, "completed", f.Status)

	_, _, err = NewFollowUpHandlers(svc, bob).GetFollowUp(ctx, nil, FollowUpIDInput{FollowUpID: f.ID})
	require.NoError(t, err)

	_, _, err = NewFollowUpHandlers(svc, bob).RemoveFollowUp(ctx, nil, FollowUpIDInput{FollowUpID: f.ID})
	assert.ErrorContains(t, err, "forbidden: ")

	_, list, err := h.ListFollowUps(ctx, nil, ListFollowUpsInput{MetWithUserID: bob.String()})
	require.NoError(t, err)
	assert.Len(t, list.FollowUps, 1)
}

func TestStatsAndHistoryTools(t *testing.T) {
	svc, database := setupService(t)
	ctx := context.Background()
	alice := seedMember(t, database, "Alice")
	bob := seedMember(t, database, "Bob")
	carol := seedMember(t, database, "Carol")
	m := acceptedMeeting(t, svc, alice, bob)

	_, stats, err := NewStatsHandlers(svc, alice).GetStats(ctx, nil, GetStatsInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Meetings.Total)
	assert.Equal(t, 1, stats.Meetings.Upcoming)

	_, history, err := NewStatsHandlers(svc, bob).GetHistory(ctx, nil, GetHistoryInput{EntityType: "meeting", EntityID: m.ID})
	require.NoError(t, err)
	require.Len(t, history.Entries, 2)
	assert.Equal(t, "pending", history.Entries[1].FromStatus)
	assert.Equal(t, "accepted", history.Entries[1].ToStatus)

	_, _, err = NewStatsHandlers(svc, carol).GetHistory(ctx, nil, GetHistoryInput{EntityType: "meeting", EntityID: m.ID})
	assert.ErrorContains(t, err, "forbidden: ")

	_, _, err = NewStatsHandlers(svc, bob).GetHistory(ctx, nil, GetHistoryInput{EntityType: "deal", EntityID: m.ID})
	assert.ErrorContains(t, err, "invalid entity_type")

	_, recent, err := NewStatsHandlers(svc, bob).RecentActivity(ctx, nil, RecentActivityInput{})
	require.NoError(t, err)
	require.Len(t, recent.Entries, 1)
	assert.Equal(t, "accept", recent.Entries[0].Action)
}
