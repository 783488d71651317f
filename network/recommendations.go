// ABOUTME: Business recommendation state machine across three parties
// ABOUTME: Role-based checks decide who edits, who reports contact and outcome, and who removes
package network

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
)

// Role is the part a user plays in a recommendation.
type Role int

const (
	RoleNone Role = iota
	RoleRecommender
	RoleRecommendedTo
	RoleRecommendedUser
)

func (r Role) String() string {
	switch r {
	case RoleRecommender:
		return "recommender"
	case RoleRecommendedTo:
		return "recommended_to"
	case RoleRecommendedUser:
		return "recommended_user"
	}
	return "none"
}

// RoleOf reports which role actorID holds on rec.
func RoleOf(rec *models.Recommendation, actorID uuid.UUID) Role {
	switch actorID {
	case rec.RecommenderID:
		return RoleRecommender
	case rec.RecommendedToID:
		return RoleRecommendedTo
	case rec.RecommendedUserID:
		return RoleRecommendedUser
	}
	return RoleNone
}

type RecommendationService struct {
	*base
}

// RecommendationDraft is what the recommender supplies.
type RecommendationDraft struct {
	RecommendedToID     uuid.UUID
	RecommendedUserID   uuid.UUID
	RecommendationDate  time.Time
	BusinessDescription string
	WhyRecommended      string
	RecommendationType  models.RecommendationType // defaults to business_opportunity
	PriorityLevel       models.Priority           // defaults to medium
	Tags                []string
	IsMutual            bool
	EstimatedValue      *int64
}

// RecommendationUpdate holds recommender-editable fields. Nil means unchanged.
type RecommendationUpdate struct {
	RecommendationDate  *time.Time
	BusinessDescription *string
	WhyRecommended      *string
	RecommendationType  *models.RecommendationType
	PriorityLevel       *models.Priority
	Tags                []string
	IsMutual            *bool
	EstimatedValue      *int64
}

// Create records that recommenderID recommends RecommendedUserID to RecommendedToID.
func (s *RecommendationService) Create(ctx context.Context, recommenderID uuid.UUID, d RecommendationDraft) (*models.Recommendation, error) {
	const op = "recommendations.create"

	if recommenderID == d.RecommendedToID || recommenderID == d.RecommendedUserID || d.RecommendedToID == d.RecommendedUserID {
		return nil, invalidf(op, "recommender, recipient and recommended user must all be different")
	}
	if d.RecommendationType == "" {
		d.RecommendationType = models.RecommendationBusinessOpportunity
	}
	if d.PriorityLevel == "" {
		d.PriorityLevel = models.PriorityMedium
	}
	if !d.RecommendationType.Valid() {
		return nil, invalidf(op, "invalid recommendation type %q", d.RecommendationType)
	}
	if !d.PriorityLevel.Valid() {
		return nil, invalidf(op, "invalid priority %q", d.PriorityLevel)
	}
	if strings.TrimSpace(d.BusinessDescription) == "" || strings.TrimSpace(d.WhyRecommended) == "" {
		return nil, invalidf(op, "business description and reason are required")
	}
	if d.RecommendationDate.IsZero() {
		return nil, invalidf(op, "recommendation date is required")
	}
	if d.EstimatedValue != nil && *d.EstimatedValue < 0 {
		return nil, invalidf(op, "estimated value cannot be negative")
	}
	if err := s.requireActiveMember(ctx, op, d.RecommendedToID, "recipient"); err != nil {
		return nil, err
	}
	if err := s.requireActiveMember(ctx, op, d.RecommendedUserID, "recommended user"); err != nil {
		return nil, err
	}

	now := s.now()
	rec := &models.Recommendation{
		ID:                  uuid.New(),
		RecommenderID:       recommenderID,
		RecommendedToID:     d.RecommendedToID,
		RecommendedUserID:   d.RecommendedUserID,
		RecommendationDate:  d.RecommendationDate.UTC(),
		BusinessDescription: d.BusinessDescription,
		WhyRecommended:      d.WhyRecommended,
		RecommendationType:  d.RecommendationType,
		PriorityLevel:       d.PriorityLevel,
		Status:              models.RecommendationPending,
		Tags:                d.Tags,
		IsMutual:            d.IsMutual,
		EstimatedValue:      d.EstimatedValue,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		if err := db.CreateRecommendation(ctx, tx, rec); err != nil {
			return err
		}
		return s.record(ctx, tx, models.EntityRecommendation, rec.ID, recommenderID, "create", "", string(rec.Status), now)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// mutate loads rec in a transaction, requires role, applies change and saves.
// When guard is non-empty the current status must equal it.
func (s *RecommendationService) mutate(ctx context.Context, op, action string, id, actorID uuid.UUID, role Role,
	guard models.RecommendationStatus, apply func(r *models.Recommendation, now time.Time)) (*models.Recommendation, error) {

	var rec *models.Recommendation
	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		var err error
		rec, err = db.GetRecommendation(ctx, tx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return notFound(op, "recommendation")
		}
		if RoleOf(rec, actorID) != role {
			return forbidden(op, "only the "+role.String()+" may do this")
		}
		if guard != "" && rec.Status != guard {
			return preconditionf(op, "recommendation is %s, expected %s", rec.Status, guard)
		}

		now := s.now()
		from := rec.Status
		apply(rec, now)
		rec.UpdatedAt = now

		ok, err := db.SaveRecommendation(ctx, tx, rec, from)
		if err != nil {
			return err
		}
		if !ok {
			return preconditionf(op, "recommendation changed concurrently")
		}
		return s.record(ctx, tx, models.EntityRecommendation, rec.ID, actorID, action, string(from), string(rec.Status), now)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Update edits the recommendation. Only the recommender may edit, in any status.
func (s *RecommendationService) Update(ctx context.Context, id, actorID uuid.UUID, u RecommendationUpdate) (*models.Recommendation, error) {
	const op = "recommendations.update"
	if u.RecommendationType != nil && !u.RecommendationType.Valid() {
		return nil, invalidf(op, "invalid recommendation type %q", *u.RecommendationType)
	}
	if u.PriorityLevel != nil && !u.PriorityLevel.Valid() {
		return nil, invalidf(op, "invalid priority %q", *u.PriorityLevel)
	}
	if u.EstimatedValue != nil && *u.EstimatedValue < 0 {
		return nil, invalidf(op, "estimated value cannot be negative")
	}

	return s.mutate(ctx, op, "update", id, actorID, RoleRecommender, "", func(r *models.Recommendation, now time.Time) {
		if u.RecommendationDate != nil {
			r.RecommendationDate = u.RecommendationDate.UTC()
		}
		if u.BusinessDescription != nil {
			r.BusinessDescription = *u.BusinessDescription
		}
		if u.WhyRecommended != nil {
			r.WhyRecommended = *u.WhyRecommended
		}
		if u.RecommendationType != nil {
			r.RecommendationType = *u.RecommendationType
		}
		if u.PriorityLevel != nil {
			r.PriorityLevel = *u.PriorityLevel
		}
		if u.Tags != nil {
			r.Tags = u.Tags
		}
		if u.IsMutual != nil {
			r.IsMutual = *u.IsMutual
		}
		if u.EstimatedValue != nil {
			r.EstimatedValue = u.EstimatedValue
		}
	})
}

// MarkContacted records that the recipient reached out. Repeated calls re-stamp contacted_at.
func (s *RecommendationService) MarkContacted(ctx context.Context, id, actorID uuid.UUID, notes *string) (*models.Recommendation, error) {
	return s.mutate(ctx, "recommendations.mark_contacted", "contact", id, actorID, RoleRecommendedTo, "",
		func(r *models.Recommendation, now time.Time) {
			r.Status = models.RecommendationContacted
			r.ContactedAt = &now
			if notes != nil {
				r.FollowUpNotes = *notes
			}
		})
}

// MarkCompleted records the final outcome and stamps completed_at.
func (s *RecommendationService) MarkCompleted(ctx context.Context, id, actorID uuid.UUID, final models.RecommendationStatus, outcomeNotes *string, estimatedValue *int64) (*models.Recommendation, error) {
	const op = "recommendations.mark_completed"
	if !final.IsOutcome() {
		return nil, invalidf(op, "final status must be business_done, not_interested or no_response, got %q", final)
	}
	if estimatedValue != nil && *estimatedValue < 0 {
		return nil, invalidf(op, "estimated value cannot be negative")
	}

	return s.mutate(ctx, op, "complete", id, actorID, RoleRecommendedTo, "", func(r *models.Recommendation, now time.Time) {
		r.Status = final
		r.CompletedAt = &now
		if outcomeNotes != nil {
			r.OutcomeNotes = *outcomeNotes
		}
		if estimatedValue != nil {
			r.EstimatedValue = estimatedValue
		}
	})
}

// Remove deletes a pending recommendation. Only the recommender may remove it.
func (s *RecommendationService) Remove(ctx context.Context, id, actorID uuid.UUID) error {
	const op = "recommendations.remove"
	return s.inTx(ctx, op, func(tx *sql.Tx) error {
		rec, err := db.GetRecommendation(ctx, tx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return notFound(op, "recommendation")
		}
		if RoleOf(rec, actorID) != RoleRecommender {
			return forbidden(op, "only the recommender may remove a recommendation")
		}
		if rec.Status != models.RecommendationPending {
			return preconditionf(op, "only pending recommendations can be removed, recommendation is %s", rec.Status)
		}
		ok, err := db.DeleteRecommendationIf(ctx, tx, rec.ID, models.RecommendationPending)
		if err != nil {
			return err
		}
		if !ok {
			return preconditionf(op, "recommendation is no longer pending")
		}
		return s.record(ctx, tx, models.EntityRecommendation, rec.ID, actorID, "remove", string(rec.Status), "", s.now())
	})
}

// Get returns a recommendation visible to any of its three parties.
func (s *RecommendationService) Get(ctx context.Context, id, actorID uuid.UUID) (*models.Recommendation, error) {
	const op = "recommendations.get"
	rec, err := db.GetRecommendation(ctx, s.db, id)
	if err != nil {
		return nil, internal(op, "failed to load recommendation", err)
	}
	if rec == nil {
		return nil, notFound(op, "recommendation")
	}
	if RoleOf(rec, actorID) == RoleNone {
		return nil, forbidden(op, "not a party to this recommendation")
	}
	return rec, nil
}

// List returns recommendations by the role actorID plays.
func (s *RecommendationService) List(ctx context.Context, actorID uuid.UUID, dir db.RecommendationDirection, status models.RecommendationStatus) ([]models.Recommendation, error) {
	const op = "recommendations.list"
	if status != "" && !status.Valid() {
		return nil, invalidf(op, "invalid status %q", status)
	}
	switch dir {
	case "":
		dir = db.RecommendationsAll
	case db.RecommendationsGiven, db.RecommendationsReceived, db.RecommendationsAboutMe, db.RecommendationsAll:
	default:
		return nil, invalidf(op, "direction must be given, received, about_me or all, got %q", dir)
	}
	recs, err := db.ListRecommendations(ctx, s.db, actorID, dir, status)
	if err != nil {
		return nil, internal(op, "failed to list recommendations", err)
	}
	return recs, nil
}

// Network summarizes who gets recommended most and who recommends most.
type Network struct {
	MostRecommended []db.UserCount `json:"most_recommended"`
	TopRecommenders []db.UserCount `json:"top_recommenders"`
}

func (s *RecommendationService) Network(ctx context.Context, limit int) (*Network, error) {
	const op = "recommendations.network"
	most, err := db.MostRecommendedUsers(ctx, s.db, limit)
	if err != nil {
		return nil, internal(op, "failed to rank recommended users", err)
	}
	top, err := db.TopRecommenders(ctx, s.db, limit)
	if err != nil {
		return nil, internal(op, "failed to rank recommenders", err)
	}
	return &Network{MostRecommended: most, TopRecommenders: top}, nil
}
