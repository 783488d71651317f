package display

import (
	"testing"

	"github.com/harperreed/bizlink/models"
	"github.com/stretchr/testify/assert"
)

func TestEveryEnumHasALabel(t *testing.T) {
	for _, s := range []models.MeetingStatus{models.MeetingPending, models.MeetingAccepted, models.MeetingDeclined, models.MeetingCompleted, models.MeetingCancelled} {
		assert.NotEqual(t, Unknown, MeetingStatusText(s), s)
	}
	for _, s := range []models.RecommendationStatus{
		models.RecommendationPending, models.RecommendationContacted, models.RecommendationMeetingScheduled,
		models.RecommendationBusinessDone, models.RecommendationNotInterested, models.RecommendationNoResponse,
	} {
		assert.NotEqual(t, Unknown, RecommendationStatusText(s), s)
		assert.NotEqual(t, Grey, StatusColor(string(s)), s)
	}
	for _, l := range []models.InterestLevel{models.InterestVeryLow, models.InterestLow, models.InterestMedium, models.InterestHigh, models.InterestVeryHigh} {
		assert.NotEqual(t, Undefined, InterestLevelText(l), l)
	}
}

func TestFallbacks(t *testing.T) {
	assert.Equal(t, Unknown, ReferralStatusText("lost"))
	assert.Equal(t, Undefined, OutcomeText("meh"))
	assert.Equal(t, "#cccccc", InterestLevelColor("lukewarm"))
	assert.Equal(t, Grey, PriorityColor("whenever"))
}

func TestKnownColors(t *testing.T) {
	assert.Equal(t, "#dc3545", PriorityColor(models.PriorityUrgent))
	assert.Equal(t, "#20c997", OutcomeColor(models.OutcomeGood))
	assert.Equal(t, "#00aa00", InterestLevelColor(models.InterestVeryHigh))
	assert.Equal(t, "Follow-up pending", FollowUpStatusText(models.FollowUpPending))
}

func TestBadgePlainWhenNotATerminal(t *testing.T) {
	prev := Color
	Color = false
	t.Cleanup(func() { Color = prev })

	assert.Equal(t, "[Sent]", StatusBadge("sent", "Sent"))
	assert.Equal(t, "High", Tint("High", PriorityColor(models.PriorityHigh)))
}
