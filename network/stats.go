// ABOUTME: Per-member statistics across meetings, referrals, recommendations and follow-ups
// ABOUTME: Thin service wrapper over the stats queries
package network

import (
	"context"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
)

type StatsService struct {
	*base
}

// Stats is a per-member dashboard across every entity.
type Stats struct {
	Meetings        *db.MeetingStats        `json:"meetings"`
	Referrals       *db.ReferralStats       `json:"referrals"`
	Recommendations *db.RecommendationStats `json:"recommendations"`
	FollowUps       *db.FollowUpStats       `json:"follow_ups"`
}

func (s *StatsService) For(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	const op = "stats.for"
	var (
		out Stats
		err error
	)
	if out.Meetings, err = db.GetMeetingStats(ctx, s.db, userID, s.now()); err != nil {
		return nil, internal(op, "meetings", err)
	}
	if out.Referrals, err = db.GetReferralStats(ctx, s.db, userID); err != nil {
		return nil, internal(op, "referrals", err)
	}
	if out.Recommendations, err = db.GetRecommendationStats(ctx, s.db, userID); err != nil {
		return nil, internal(op, "recommendations", err)
	}
	if out.FollowUps, err = db.GetFollowUpStats(ctx, s.db, userID); err != nil {
		return nil, internal(op, "follow-ups", err)
	}
	return &out, nil
}
