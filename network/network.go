// ABOUTME: Entry point for the networking state machines
// ABOUTME: Wires connections, meetings, referrals, recommendations and follow-ups to one database
package network

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
)

// Directory answers identity questions about users.
type Directory interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	IsActiveMember(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service bundles every state machine over a shared store.
type Service struct {
	Connections     *ConnectionService
	Meetings        *MeetingService
	Referrals       *ReferralService
	Recommendations *RecommendationService
	FollowUps       *FollowUpService
	Stats           *StatsService

	base *base
}

type Option func(*base)

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(b *base) { b.clock = c }
}

// WithDirectory overrides the identity lookups. Defaults to the users table.
func WithDirectory(d Directory) Option {
	return func(b *base) { b.dir = d }
}

func New(database *sql.DB, opts ...Option) *Service {
	b := &base{db: database, clock: SystemClock, dir: db.NewDirectory(database)}
	for _, opt := range opts {
		opt(b)
	}

	meetings := &MeetingService{base: b}
	return &Service{
		Connections:     &ConnectionService{base: b},
		Meetings:        meetings,
		Referrals:       &ReferralService{base: b, meetings: meetings},
		Recommendations: &RecommendationService{base: b},
		FollowUps:       &FollowUpService{base: b},
		Stats:           &StatsService{base: b},
		base:            b,
	}
}

// History returns the recorded transitions of one entity.
func (s *Service) History(ctx context.Context, entityType string, id uuid.UUID) ([]models.Activity, error) {
	entries, err := db.ListActivity(ctx, s.base.db, entityType, id)
	if err != nil {
		return nil, internal("activity.history", "failed to load activity", err)
	}
	return entries, nil
}

// HistoryFor returns the history of an entity actorID may see. Visibility
// follows the entity's own Get rules.
func (s *Service) HistoryFor(ctx context.Context, actorID uuid.UUID, entityType string, id uuid.UUID) ([]models.Activity, error) {
	var err error
	switch entityType {
	case models.EntityConnection:
		_, err = s.Connections.Get(ctx, id, actorID)
	case models.EntityMeeting:
		_, err = s.Meetings.Get(ctx, id, actorID)
	case models.EntityReferralCard:
		_, err = s.Referrals.Get(ctx, id, actorID)
	case models.EntityRecommendation:
		_, err = s.Recommendations.Get(ctx, id, actorID)
	case models.EntityFollowUp:
		_, err = s.FollowUps.Get(ctx, id, actorID)
	default:
		return nil, invalidf("activity.history", "invalid entity_type %q", entityType)
	}
	if err != nil {
		return nil, err
	}
	return s.History(ctx, entityType, id)
}

// DB exposes the underlying store for read-only views outside the state machines.
func (s *Service) DB() *sql.DB {
	return s.base.db
}

// Now is the service clock, in UTC.
func (s *Service) Now() time.Time {
	return s.base.now()
}

type base struct {
	db    *sql.DB
	dir   Directory
	clock Clock
}

func (b *base) now() time.Time {
	return b.clock.Now().UTC()
}

// requireUser fails NotFound when id is unknown.
func (b *base) requireUser(ctx context.Context, op string, id uuid.UUID, label string) error {
	ok, err := b.dir.UserExists(ctx, id)
	if err != nil {
		return internal(op, "failed to look up "+label, err)
	}
	if !ok {
		return notFound(op, label)
	}
	return nil
}

// requireActiveMember fails NotFound for unknown users and PreconditionFailed for inactive ones.
func (b *base) requireActiveMember(ctx context.Context, op string, id uuid.UUID, label string) error {
	if err := b.requireUser(ctx, op, id, label); err != nil {
		return err
	}
	ok, err := b.dir.IsActiveMember(ctx, id)
	if err != nil {
		return internal(op, "failed to check membership of "+label, err)
	}
	if !ok {
		return preconditionf(op, "%s is not an active member", label)
	}
	return nil
}

// inTx runs fn in one transaction. Directory lookups must happen before this:
// the store holds a single connection.
func (b *base) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	err := db.WithTx(ctx, b.db, fn)
	if err != nil {
		return passthrough(op, "storage failure", err)
	}
	return nil
}

func (b *base) record(ctx context.Context, tx *sql.Tx, entityType string, entityID, actor uuid.UUID, action, from, to string, at time.Time) error {
	err := db.RecordActivity(ctx, tx, &models.Activity{
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actor,
		Action:     action,
		FromStatus: from,
		ToStatus:   to,
		OccurredAt: at,
	})
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}
