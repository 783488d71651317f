// ABOUTME: Per-user counters across meetings, referrals, recommendations and follow-ups
// ABOUTME: Aggregates with single COUNT/SUM queries per entity
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
)

type MeetingStats struct {
	Total            int `json:"total"`
	PendingReceived  int `json:"pending_received"`
	PendingSent      int `json:"pending_sent"`
	Upcoming         int `json:"upcoming"`
	Completed        int `json:"completed"`
	ScheduledInMonth int `json:"scheduled_this_month"`
}

type ReferralStats struct {
	Sent            int `json:"sent"`
	Received        int `json:"received"`
	Drafts          int `json:"drafts"`
	AwaitingReceipt int `json:"awaiting_receipt"`
	Completed       int `json:"completed"`
	HighInterest    int `json:"high_interest"`
}

type RecommendationStats struct {
	Given               int   `json:"given"`
	Received            int   `json:"received"`
	AboutMe             int   `json:"about_me"`
	PendingReceived     int   `json:"pending_received"`
	Completed           int   `json:"completed"`
	BusinessDone        int   `json:"business_done"`
	TotalEstimatedValue int64 `json:"total_estimated_value"`
}

type FollowUpStats struct {
	Total                 int `json:"total"`
	PendingFollowUp       int `json:"pending_follow_up"`
	FutureMeetingsPlanned int `json:"future_meetings_planned"`
	WithReferrals         int `json:"with_referrals"`
}

// GetMeetingStats counts meetings for userID. now anchors "upcoming" and the current month.
func GetMeetingStats(ctx context.Context, q Querier, userID uuid.UUID, now time.Time) (*MeetingStats, error) {
	id := userID.String()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	s := &MeetingStats{}
	err := q.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN requested_id = ? AND status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN requester_id = ? AND status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status IN ('pending', 'accepted') AND meeting_date > ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN meeting_date >= ? AND meeting_date < ? THEN 1 ELSE 0 END), 0)
		FROM meetings
		WHERE requester_id = ? OR requested_id = ?
	`, id, id, now, monthStart, monthEnd, id, id).Scan(
		&s.Total, &s.PendingReceived, &s.PendingSent, &s.Upcoming, &s.Completed, &s.ScheduledInMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count meetings: %w", err)
	}
	return s, nil
}

func GetReferralStats(ctx context.Context, q Querier, userID uuid.UUID) (*ReferralStats, error) {
	id := userID.String()
	s := &ReferralStats{}
	err := q.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN from_user_id = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN to_user_id = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN from_user_id = ? AND status = 'draft' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN to_user_id = ? AND status = 'sent' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN interest_level IN ('high', 'very_high') THEN 1 ELSE 0 END), 0)
		FROM referral_cards
		WHERE from_user_id = ? OR to_user_id = ?
	`, id, id, id, id, id, id).Scan(
		&s.Sent, &s.Received, &s.Drafts, &s.AwaitingReceipt, &s.Completed, &s.HighInterest,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count referral cards: %w", err)
	}
	return s, nil
}

func GetRecommendationStats(ctx context.Context, q Querier, userID uuid.UUID) (*RecommendationStats, error) {
	id := userID.String()
	s := &RecommendationStats{}
	err := q.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN recommender_id = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN recommended_to_id = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN recommended_user_id = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN recommended_to_id = ? AND status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN completed_at IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'business_done' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'business_done' THEN estimated_value ELSE 0 END), 0)
		FROM recommendations
		WHERE recommender_id = ? OR recommended_to_id = ? OR recommended_user_id = ?
	`, id, id, id, id, id, id, id).Scan(
		&s.Given, &s.Received, &s.AboutMe, &s.PendingReceived, &s.Completed, &s.BusinessDone, &s.TotalEstimatedValue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count recommendations: %w", err)
	}
	return s, nil
}

func GetFollowUpStats(ctx context.Context, q Querier, userID uuid.UUID) (*FollowUpStats, error) {
	s := &FollowUpStats{}
	err := q.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN future_meeting_planned = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN referrals_given <> '' OR referrals_received <> '' THEN 1 ELSE 0 END), 0)
		FROM follow_ups
		WHERE user_id = ?
	`, string(models.FollowUpPending), userID.String()).Scan(
		&s.Total, &s.PendingFollowUp, &s.FutureMeetingsPlanned, &s.WithReferrals,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count follow-ups: %w", err)
	}
	return s, nil
}
