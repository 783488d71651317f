// ABOUTME: Inbox of items waiting on a member
// ABOUTME: Collects pending connections, meetings, referrals, recommendations and follow-ups
package network

import (
	"context"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
)

// Inbox lists everything waiting on one member's answer.
type Inbox struct {
	Connections     []models.Connection     `json:"connections"`
	Meetings        []models.Meeting        `json:"meetings"`
	Referrals       []models.ReferralCard   `json:"referrals"`
	Recommendations []models.Recommendation `json:"recommendations"`
	FollowUps       []models.FollowUp       `json:"follow_ups"`
}

// Len is the number of waiting items.
func (in *Inbox) Len() int {
	return len(in.Connections) + len(in.Meetings) + len(in.Referrals) + len(in.Recommendations) + len(in.FollowUps)
}

// Inbox collects pending connection requests addressed to the actor,
// meeting requests the actor has to answer, referral cards sent to the actor
// and not yet received, recommendations the actor has not acted on, and the
// actor's follow-ups with open actions.
func (s *Service) Inbox(ctx context.Context, actorID uuid.UUID) (*Inbox, error) {
	in := &Inbox{}
	var err error

	if in.Connections, err = s.Connections.ListPending(ctx, actorID); err != nil {
		return nil, err
	}

	meetings, err := s.Meetings.List(ctx, actorID, MeetingListFilter{Status: models.MeetingPending})
	if err != nil {
		return nil, err
	}
	for _, m := range meetings {
		if m.RequestedID == actorID {
			in.Meetings = append(in.Meetings, m)
		}
	}

	if in.Referrals, err = s.Referrals.List(ctx, actorID, db.ReferralsReceived, models.ReferralSent); err != nil {
		return nil, err
	}
	if in.Recommendations, err = s.Recommendations.List(ctx, actorID, db.RecommendationsReceived, models.RecommendationPending); err != nil {
		return nil, err
	}
	if in.FollowUps, err = s.FollowUps.List(ctx, actorID, db.FollowUpFilter{Status: models.FollowUpPending}); err != nil {
		return nil, err
	}
	return in, nil
}
