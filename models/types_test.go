// ABOUTME: Tests for networking data models
// ABOUTME: Validates enum membership, meeting helpers and follow-up predicates
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEnumValidity(t *testing.T) {
	assert.True(t, MeetingPending.Valid())
	assert.False(t, MeetingStatus("rescheduled").Valid())
	assert.True(t, MeetingVirtual.Valid())
	assert.False(t, MeetingType("carrier_pigeon").Valid())
	assert.True(t, PriorityUrgent.Valid())
	assert.False(t, Priority("critical").Valid())
	assert.True(t, InterestVeryHigh.Valid())
	assert.False(t, InterestLevel("extreme").Valid())
	assert.True(t, ReferralInternal.Valid())
	assert.False(t, ReferralType("").Valid())
	assert.True(t, RecommendationPartnership.Valid())
	assert.False(t, RecommendationType("friendship").Valid())
	assert.True(t, OutcomeNoShow.Valid())
	assert.True(t, FollowUpCoffeeChat.Valid())
	assert.True(t, MembershipSuspended.Valid())
	assert.False(t, ConnectionStatus("blocked").Valid())
}

func TestRecommendationOutcomes(t *testing.T) {
	for _, s := range []RecommendationStatus{RecommendationBusinessDone, RecommendationNotInterested, RecommendationNoResponse} {
		assert.True(t, s.IsOutcome(), s)
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, RecommendationContacted.IsOutcome())
	assert.False(t, RecommendationPending.IsOutcome())
}

func TestIsActiveMember(t *testing.T) {
	u := &User{IsActive: true, MembershipStatus: MembershipActive}
	assert.True(t, u.IsActiveMember())

	u.MembershipStatus = MembershipPending
	assert.False(t, u.IsActiveMember())

	u.MembershipStatus = MembershipActive
	u.IsActive = false
	assert.False(t, u.IsActiveMember())
}

func TestMeetingParties(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	m := &Meeting{RequesterID: a, RequestedID: b, Status: MeetingPending}

	assert.True(t, m.HasParty(a))
	assert.True(t, m.HasParty(b))
	assert.False(t, m.HasParty(uuid.New()))

	now := time.Now()
	m.MeetingDate = now.Add(time.Hour)
	assert.True(t, m.IsUpcoming(now))
	m.Status = MeetingDeclined
	assert.False(t, m.IsUpcoming(now))
}

func TestDeriveFollowUpStatus(t *testing.T) {
	assert.Equal(t, FollowUpPending, DeriveFollowUpStatus("send proposal"))
	assert.Equal(t, FollowUpCompleted, DeriveFollowUpStatus(""))
	assert.Equal(t, FollowUpCompleted, DeriveFollowUpStatus("   "))
}

func TestFollowUpPredicates(t *testing.T) {
	f := &FollowUp{Status: FollowUpCompleted}
	assert.False(t, f.NeedsFollowUp())
	assert.False(t, f.HasReferrals())
	assert.False(t, f.HasBusinessOpportunities())

	f.FutureMeetingPlanned = true
	assert.True(t, f.NeedsFollowUp())

	f.FutureMeetingPlanned = false
	f.ReferralsReceived = "Intro to Dana at Initech"
	assert.True(t, f.HasReferrals())

	f.BusinessOpportunities = "Joint bid on the city contract"
	assert.True(t, f.HasBusinessOpportunities())

	f.Status = FollowUpPending
	assert.True(t, f.NeedsFollowUp())

	blank := &FollowUp{FollowUpActions: "   "}
	blank.Status = DeriveFollowUpStatus(blank.FollowUpActions)
	assert.Equal(t, FollowUpCompleted, blank.Status)
	assert.False(t, blank.NeedsFollowUp())
}

func TestDurationText(t *testing.T) {
	tests := []struct {
		minutes  *int
		expected string
	}{
		{nil, "not specified"},
		{intPtr(45), "45 minutes"},
		{intPtr(60), "1h"},
		{intPtr(90), "1h 30m"},
	}

	for _, tt := range tests {
		f := &FollowUp{DurationMinutes: tt.minutes}
		if got := f.DurationText(); got != tt.expected {
			t.Errorf("DurationText() = %q, want %q", got, tt.expected)
		}
	}
}

func intPtr(v int) *int { return &v }
