// ABOUTME: Flattens a member's inbox into rows for the inbox views
// ABOUTME: Each row knows its kind, the other member and which quick actions apply
package tui

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/network"
)

// Kind names one section of the inbox.
type Kind string

const (
	KindConnection     Kind = "connection"
	KindMeeting        Kind = "meeting"
	KindReferral       Kind = "referral"
	KindRecommendation Kind = "recommendation"
	KindFollowUp       Kind = "follow-up"
)

// Kinds is the tab order.
var Kinds = []Kind{KindConnection, KindMeeting, KindReferral, KindRecommendation, KindFollowUp}

// Item is one thing waiting on the member.
type Item struct {
	Kind    Kind
	ID      uuid.UUID
	From    string
	Summary string
	When    time.Time
	Details []string
}

func lookupName(ctx context.Context, database *sql.DB, cache map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := cache[id]; ok {
		return name
	}
	name := display.Unknown
	if u, err := db.GetUser(ctx, database, id); err == nil && u != nil {
		name = u.Name
	}
	cache[id] = name
	return name
}

// Items turns an inbox into rows, oldest first within each kind.
func Items(ctx context.Context, database *sql.DB, inbox *network.Inbox) []Item {
	cache := map[uuid.UUID]string{}
	name := func(id uuid.UUID) string { return lookupName(ctx, database, cache, id) }

	var items []Item
	for _, c := range inbox.Connections {
		items = append(items, Item{
			Kind:    KindConnection,
			ID:      c.ID,
			From:    name(c.RequesterID),
			Summary: fallback(c.Message, "wants to connect"),
			When:    c.CreatedAt,
		})
	}
	for _, m := range inbox.Meetings {
		details := []string{
			"Date: " + m.MeetingDate.Format("2006-01-02 15:04"),
			"Type: " + display.MeetingTypeText(m.MeetingType),
			"Priority: " + display.PriorityText(m.Priority),
		}
		if m.Location != "" {
			details = append(details, "Location: "+m.Location)
		}
		if m.Agenda != "" {
			details = append(details, "Agenda: "+m.Agenda)
		}
		items = append(items, Item{
			Kind:    KindMeeting,
			ID:      m.ID,
			From:    name(m.RequesterID),
			Summary: m.Purpose,
			When:    m.MeetingDate,
			Details: details,
		})
	}
	for _, r := range inbox.Referrals {
		details := []string{
			"Interest: " + display.InterestLevelText(r.InterestLevel),
			"Type: " + display.ReferralTypeText(r.ReferralType),
		}
		if r.ContactName != "" {
			details = append(details, fmt.Sprintf("Contact: %s %s %s", r.ContactName, r.ContactEmail, r.ContactPhone))
		}
		items = append(items, Item{
			Kind:    KindReferral,
			ID:      r.ID,
			From:    name(r.FromUserID),
			Summary: r.ReferralDescription,
			When:    r.ReferralDate,
			Details: details,
		})
	}
	for _, r := range inbox.Recommendations {
		items = append(items, Item{
			Kind:    KindRecommendation,
			ID:      r.ID,
			From:    name(r.RecommenderID),
			Summary: fmt.Sprintf("contact %s: %s", name(r.RecommendedUserID), r.BusinessDescription),
			When:    r.RecommendationDate,
			Details: []string{
				"Why: " + r.WhyRecommended,
				"Type: " + display.RecommendationTypeText(r.RecommendationType),
				"Priority: " + display.PriorityText(r.PriorityLevel),
			},
		})
	}
	for _, f := range inbox.FollowUps {
		items = append(items, Item{
			Kind:    KindFollowUp,
			ID:      f.ID,
			From:    name(f.MetWithUserID),
			Summary: f.FollowUpActions,
			When:    f.MeetingDate,
			Details: []string{
				"Topics: " + f.ConversationTopics,
				"Outcome: " + display.OutcomeText(f.Outcome),
				"Where: " + f.Location,
			},
		})
	}

	order := map[Kind]int{}
	for i, k := range Kinds {
		order[k] = i
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Kind != items[j].Kind {
			return order[items[i].Kind] < order[items[j].Kind]
		}
		return items[i].When.Before(items[j].When)
	})
	return items
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
