// ABOUTME: Referral card state machine tied to a meeting
// ABOUTME: Cards move strictly draft, sent, received, completed with a fixed party gating each step
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

type ReferralService struct {
	*base
	meetings *MeetingService
}

// ReferralDraft is what the sender supplies to create a card.
type ReferralDraft struct {
	MeetingID           uuid.UUID
	ToUserID            uuid.UUID
	ReferralDate        time.Time
	ReferralDescription string
	ReferralType        models.ReferralType  // defaults to external
	InterestLevel       models.InterestLevel // defaults to medium
	ContactName         string
	ContactPhone        string
	ContactEmail        string
	ContactAddress      string
	Comments            string
	FollowUpActions     []string
}

// ReferralUpdate holds editable draft fields. Nil means unchanged.
type ReferralUpdate struct {
	ReferralDate        *time.Time
	ReferralDescription *string
	ReferralType        *models.ReferralType
	InterestLevel       *models.InterestLevel
	ContactName         *string
	ContactPhone        *string
	ContactEmail        *string
	ContactAddress      *string
	Comments            *string
	FollowUpActions     []string
}

// Create stores a draft card from fromUserID, who must take part in the meeting.
func (s *ReferralService) Create(ctx context.Context, fromUserID uuid.UUID, d ReferralDraft) (*models.ReferralCard, error) {
	const op = "referrals.create"

	if d.ReferralType == "" {
		d.ReferralType = models.ReferralExternal
	}
	if d.InterestLevel == "" {
		d.InterestLevel = models.InterestMedium
	}
	if !d.ReferralType.Valid() {
		return nil, invalidf(op, "invalid referral type %q", d.ReferralType)
	}
	if !d.InterestLevel.Valid() {
		return nil, invalidf(op, "invalid interest level %q", d.InterestLevel)
	}
	if strings.TrimSpace(d.ReferralDescription) == "" {
		return nil, invalidf(op, "referral description is required")
	}
	if d.ToUserID == fromUserID {
		return nil, invalidf(op, "cannot send a referral to yourself")
	}
	if d.ReferralDate.IsZero() {
		return nil, invalidf(op, "referral date is required")
	}

	requester, requested, err := s.meetings.PartiesOf(ctx, d.MeetingID)
	if err != nil {
		return nil, err
	}
	if fromUserID != requester && fromUserID != requested {
		return nil, forbidden(op, "only a meeting participant may write a referral for it")
	}
	if err := s.requireUser(ctx, op, d.ToUserID, "recipient"); err != nil {
		return nil, err
	}

	now := s.now()
	card := &models.ReferralCard{
		ID:                  uuid.New(),
		MeetingID:           d.MeetingID,
		FromUserID:          fromUserID,
		ToUserID:            d.ToUserID,
		ReferralDate:        d.ReferralDate.UTC(),
		ReferralDescription: d.ReferralDescription,
		ReferralType:        d.ReferralType,
		ContactName:         d.ContactName,
		ContactPhone:        d.ContactPhone,
		ContactEmail:        d.ContactEmail,
		ContactAddress:      d.ContactAddress,
		Comments:            d.Comments,
		InterestLevel:       d.InterestLevel,
		Status:              models.ReferralDraft,
		FollowUpActions:     d.FollowUpActions,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = s.inTx(ctx, op, func(tx *sql.Tx) error {
		if err := db.CreateReferralCard(ctx, tx, card); err != nil {
			return err
		}
		return s.record(ctx, tx, models.EntityReferralCard, card.ID, fromUserID, "create", "", string(card.Status), now)
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

type referralRole int

const (
	roleSender referralRole = iota
	roleRecipient
)

// advance moves a card one step forward when the actor holds the required role.
func (s *ReferralService) advance(ctx context.Context, op, action string, id, actorID uuid.UUID, role referralRole,
	from, to models.ReferralStatus, apply func(c *models.ReferralCard, now time.Time)) (*models.ReferralCard, error) {

	var card *models.ReferralCard
	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		var err error
		card, err = db.GetReferralCard(ctx, tx, id)
		if err != nil {
			return err
		}
		if card == nil {
			return notFound(op, "referral card")
		}
		switch role {
		case roleSender:
			if card.FromUserID != actorID {
				return forbidden(op, "only the sender may do this")
			}
		case roleRecipient:
			if card.ToUserID != actorID {
				return forbidden(op, "only the recipient may do this")
			}
		}
		if card.Status != from {
			return preconditionf(op, "referral card is %s, expected %s", card.Status, from)
		}

		now := s.now()
		card.Status = to
		card.UpdatedAt = now
		if apply != nil {
			apply(card, now)
		}

		ok, err := db.SaveReferralCardIf(ctx, tx, card, from)
		if err != nil {
			return err
		}
		if !ok {
			return preconditionf(op, "referral card is no longer %s", from)
		}
		return s.record(ctx, tx, models.EntityReferralCard, card.ID, actorID, action, string(from), string(to), now)
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// Update edits a draft card. Only the sender may edit.
func (s *ReferralService) Update(ctx context.Context, id, actorID uuid.UUID, u ReferralUpdate) (*models.ReferralCard, error) {
	const op = "referrals.update"
	if u.ReferralType != nil && !u.ReferralType.Valid() {
		return nil, invalidf(op, "invalid referral type %q", *u.ReferralType)
	}
	if u.InterestLevel != nil && !u.InterestLevel.Valid() {
		return nil, invalidf(op, "invalid interest level %q", *u.InterestLevel)
	}
	if u.ReferralDescription != nil && strings.TrimSpace(*u.ReferralDescription) == "" {
		return nil, invalidf(op, "referral description cannot be empty")
	}

	return s.advance(ctx, op, "update", id, actorID, roleSender, models.ReferralDraft, models.ReferralDraft,
		func(c *models.ReferralCard, now time.Time) {
			if u.ReferralDate != nil {
				c.ReferralDate = u.ReferralDate.UTC()
			}
			if u.ReferralDescription != nil {
				c.ReferralDescription = *u.ReferralDescription
			}
			if u.ReferralType != nil {
				c.ReferralType = *u.ReferralType
			}
			if u.InterestLevel != nil {
				c.InterestLevel = *u.InterestLevel
			}
			if u.ContactName != nil {
				c.ContactName = *u.ContactName
			}
			if u.ContactPhone != nil {
				c.ContactPhone = *u.ContactPhone
			}
			if u.ContactEmail != nil {
				c.ContactEmail = *u.ContactEmail
			}
			if u.ContactAddress != nil {
				c.ContactAddress = *u.ContactAddress
			}
			if u.Comments != nil {
				c.Comments = *u.Comments
			}
			if u.FollowUpActions != nil {
				c.FollowUpActions = u.FollowUpActions
			}
		})
}

// Send hands a draft to the recipient.
func (s *ReferralService) Send(ctx context.Context, id, actorID uuid.UUID) (*models.ReferralCard, error) {
	return s.advance(ctx, "referrals.send", "send", id, actorID, roleSender, models.ReferralDraft, models.ReferralSent,
		func(c *models.ReferralCard, now time.Time) { c.SentAt = &now })
}

// MarkReceived acknowledges a sent card.
func (s *ReferralService) MarkReceived(ctx context.Context, id, actorID uuid.UUID) (*models.ReferralCard, error) {
	return s.advance(ctx, "referrals.mark_received", "receive", id, actorID, roleRecipient, models.ReferralSent, models.ReferralReceived,
		func(c *models.ReferralCard, now time.Time) { c.ReceivedAt = &now })
}

// Complete closes a received card, optionally recording comments and follow-up actions.
func (s *ReferralService) Complete(ctx context.Context, id, actorID uuid.UUID, comments *string, followUpActions []string) (*models.ReferralCard, error) {
	return s.advance(ctx, "referrals.complete", "complete", id, actorID, roleRecipient, models.ReferralReceived, models.ReferralCompleted,
		func(c *models.ReferralCard, now time.Time) {
			if comments != nil {
				c.Comments = *comments
			}
			if followUpActions != nil {
				c.FollowUpActions = followUpActions
			}
		})
}

// Remove deletes a draft card. Only the sender may remove it.
func (s *ReferralService) Remove(ctx context.Context, id, actorID uuid.UUID) error {
	const op = "referrals.remove"
	return s.inTx(ctx, op, func(tx *sql.Tx) error {
		card, err := db.GetReferralCard(ctx, tx, id)
		if err != nil {
			return err
		}
		if card == nil {
			return notFound(op, "referral card")
		}
		if card.FromUserID != actorID {
			return forbidden(op, "only the sender may remove a referral card")
		}
		if card.Status != models.ReferralDraft {
			return preconditionf(op, "only draft cards can be removed, card is %s", card.Status)
		}
		ok, err := db.DeleteReferralCardIf(ctx, tx, card.ID, models.ReferralDraft)
		if err != nil {
			return err
		}
		if !ok {
			return preconditionf(op, "referral card is no longer a draft")
		}
		return s.record(ctx, tx, models.EntityReferralCard, card.ID, actorID, "remove", string(card.Status), "", s.now())
	})
}

// Get returns a card visible to its sender or recipient.
func (s *ReferralService) Get(ctx context.Context, id, actorID uuid.UUID) (*models.ReferralCard, error) {
	const op = "referrals.get"
	card, err := db.GetReferralCard(ctx, s.db, id)
	if err != nil {
		return nil, internal(op, "failed to load referral card", err)
	}
	if card == nil {
		return nil, notFound(op, "referral card")
	}
	if card.FromUserID != actorID && card.ToUserID != actorID {
		return nil, forbidden(op, "only the sender or recipient may view a referral card")
	}
	return card, nil
}

// List returns cards actorID sent, received, or both.
func (s *ReferralService) List(ctx context.Context, actorID uuid.UUID, dir db.ReferralDirection, status models.ReferralStatus) ([]models.ReferralCard, error) {
	const op = "referrals.list"
	if status != "" && !status.Valid() {
		return nil, invalidf(op, "invalid status %q", status)
	}
	switch dir {
	case "":
		dir = db.ReferralsAll
	case db.ReferralsSent, db.ReferralsReceived, db.ReferralsAll:
	default:
		return nil, invalidf(op, "direction must be sent, received or all, got %q", dir)
	}
	cards, err := db.ListReferralCards(ctx, s.db, actorID, dir, status)
	if err != nil {
		return nil, internal(op, "failed to list referral cards", err)
	}
	return cards, nil
}

// ListByMeeting returns every card written for a meeting the actor took part in.
func (s *ReferralService) ListByMeeting(ctx context.Context, meetingID, actorID uuid.UUID) ([]models.ReferralCard, error) {
	const op = "referrals.list_by_meeting"
	requester, requested, err := s.meetings.PartiesOf(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if actorID != requester && actorID != requested {
		return nil, forbidden(op, "only a meeting participant may list its referral cards")
	}
	cards, err := db.ListReferralCardsByMeeting(ctx, s.db, meetingID)
	if err != nil {
		return nil, internal(op, "failed to list referral cards", err)
	}
	return cards, nil
}
