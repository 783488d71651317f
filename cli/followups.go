// ABOUTME: Follow-up CLI commands
// ABOUTME: Log meetings with other members, edit them and list the ones that still need action
package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
)

// FollowUpCommand routes `bizlink followup <log|update|remove|show|list>`.
func FollowUpCommand(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("followup requires a subcommand (log, update, remove, show, list)")
	}
	actor, err := env.actor()
	if err != nil {
		return err
	}
	switch args[0] {
	case "log":
		return logFollowUp(ctx, env, actor, args[1:])
	case "update":
		return updateFollowUp(ctx, env, actor, args[1:])
	case "remove":
		return removeFollowUp(ctx, env, actor, args[1:])
	case "show":
		return showFollowUp(ctx, env, actor, args[1:])
	case "list":
		return listFollowUps(ctx, env, actor, args[1:])
	default:
		return unknownSubcommand("followup", args[0])
	}
}

// followUpFlags are shared by log and update.
type followUpFlags struct {
	invitedBy, group, location, date, topics, meetingType string
	outcome, actions, opportunities, given, received     string
	next, notes, status                                  string
	duration                                             int
	futureMeeting                                        bool
}

func (f *followUpFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.invitedBy, "invited-by", "", "Member who invited you")
	fs.StringVar(&f.group, "group", "", "Group name")
	fs.StringVar(&f.location, "location", "", "Where you met")
	fs.StringVar(&f.date, "date", "", "When you met")
	fs.StringVar(&f.topics, "topics", "", "What you talked about")
	fs.StringVar(&f.meetingType, "type", "", "one_to_one, group_meeting, coffee_chat, business_lunch or other")
	fs.IntVar(&f.duration, "duration", 0, "Length in minutes")
	fs.StringVar(&f.outcome, "outcome", "", "excellent, good, average, poor or no_show")
	fs.StringVar(&f.actions, "actions", "", "Follow-up actions still to do")
	fs.StringVar(&f.opportunities, "opportunities", "", "Business opportunities")
	fs.StringVar(&f.given, "referrals-given", "", "Referrals you gave")
	fs.StringVar(&f.received, "referrals-received", "", "Referrals you received")
	fs.BoolVar(&f.futureMeeting, "future-meeting", false, "Another meeting is planned")
	fs.StringVar(&f.next, "next", "", "Next meeting date")
	fs.StringVar(&f.notes, "notes", "", "Notes")
	fs.StringVar(&f.status, "status", "", "draft, completed or follow_up_pending (derived when omitted)")
}

func logFollowUp(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("followup log")
	with := fs.String("with", "", "Member you met (required)")
	var f followUpFlags
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *with == "" {
		return fmt.Errorf("--with is required")
	}
	metWith, err := ResolveMember(ctx, env.DB, *with)
	if err != nil {
		return err
	}
	when, err := parseTime("date", f.date)
	if err != nil {
		return err
	}
	next, err := parseOptionalTime("next", f.next)
	if err != nil {
		return err
	}
	var invitedBy *uuid.UUID
	if f.invitedBy != "" {
		id, err := ResolveMember(ctx, env.DB, f.invitedBy)
		if err != nil {
			return err
		}
		invitedBy = &id
	}
	set := setFlags(fs)
	var duration *int
	if set["duration"] {
		duration = &f.duration
	}

	followUp, err := env.Svc.FollowUps.Create(ctx, actor, network.FollowUpDraft{
		MetWithUserID:         metWith,
		InvitedByUserID:       invitedBy,
		GroupName:             f.group,
		Location:              f.location,
		MeetingDate:           when,
		ConversationTopics:    f.topics,
		MeetingType:           models.FollowUpMeetingType(f.meetingType),
		DurationMinutes:       duration,
		Outcome:               models.Outcome(f.outcome),
		FollowUpActions:       f.actions,
		BusinessOpportunities: f.opportunities,
		ReferralsGiven:        f.given,
		ReferralsReceived:     f.received,
		FutureMeetingPlanned:  f.futureMeeting,
		NextMeetingDate:       next,
		Notes:                 f.notes,
		Status:                models.FollowUpStatus(f.status),
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stdout, "✓ Follow-up logged (ID: %s)\n", followUp.ID)
	_, _ = fmt.Fprintf(stdout, "  Status: %s\n", display.FollowUpStatusText(followUp.Status))
	return nil
}

func updateFollowUp(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("followup update")
	var f followUpFlags
	f.register(fs)
	clearNext := fs.Bool("clear-next", false, "Remove the next meeting date")
	clearDuration := fs.Bool("clear-duration", false, "Remove the duration")
	clearInvitedBy := fs.Bool("clear-invited-by", false, "Remove who invited you")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "follow-up")
	if err != nil {
		return err
	}
	set := setFlags(fs)

	u := network.FollowUpUpdate{
		ClearNextMeetingDate: *clearNext,
		ClearDuration:        *clearDuration,
		ClearInvitedBy:       *clearInvitedBy,
	}
	if u.MeetingDate, err = parseOptionalTime("date", f.date); err != nil {
		return err
	}
	if u.NextMeetingDate, err = parseOptionalTime("next", f.next); err != nil {
		return err
	}
	if f.invitedBy != "" {
		invited, err := ResolveMember(ctx, env.DB, f.invitedBy)
		if err != nil {
			return err
		}
		u.InvitedByUserID = &invited
	}
	u.GroupName = optString(set, "group", f.group)
	u.Location = optString(set, "location", f.location)
	u.ConversationTopics = optString(set, "topics", f.topics)
	u.FollowUpActions = optString(set, "actions", f.actions)
	u.BusinessOpportunities = optString(set, "opportunities", f.opportunities)
	u.ReferralsGiven = optString(set, "referrals-given", f.given)
	u.ReferralsReceived = optString(set, "referrals-received", f.received)
	u.Notes = optString(set, "notes", f.notes)
	if set["type"] {
		t := models.FollowUpMeetingType(f.meetingType)
		u.MeetingType = &t
	}
	if set["outcome"] {
		o := models.Outcome(f.outcome)
		u.Outcome = &o
	}
	if set["status"] {
		s := models.FollowUpStatus(f.status)
		u.Status = &s
	}
	if set["duration"] {
		u.DurationMinutes = &f.duration
	}
	if set["future-meeting"] {
		u.FutureMeetingPlanned = &f.futureMeeting
	}

	followUp, err := env.Svc.FollowUps.Update(ctx, id, actor, u)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Follow-up updated (%s)\n", display.FollowUpStatusText(followUp.Status))
	return nil
}

func removeFollowUp(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("followup remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "follow-up")
	if err != nil {
		return err
	}
	if err := env.Svc.FollowUps.Remove(ctx, id, actor); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Follow-up removed: %s\n", id)
	return nil
}

func showFollowUp(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("followup show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "follow-up")
	if err != nil {
		return err
	}
	f, err := env.Svc.FollowUps.Get(ctx, id, actor)
	if err != nil {
		return err
	}

	n := newNames(ctx, env.DB)
	_, _ = fmt.Fprintf(stdout, "Follow-up %s\n", f.ID)
	_, _ = fmt.Fprintf(stdout, "  Logged by: %s\n", n.of(f.UserID))
	_, _ = fmt.Fprintf(stdout, "  Met with:  %s\n", n.of(f.MetWithUserID))
	_, _ = fmt.Fprintf(stdout, "  Date:      %s (%s)\n", formatDate(f.MeetingDate), f.DurationText())
	_, _ = fmt.Fprintf(stdout, "  Where:     %s\n", f.Location)
	_, _ = fmt.Fprintf(stdout, "  Type:      %s\n", display.FollowUpTypeText(f.MeetingType))
	_, _ = fmt.Fprintf(stdout, "  Outcome:   %s\n", display.Tint(display.OutcomeText(f.Outcome), display.OutcomeColor(f.Outcome)))
	_, _ = fmt.Fprintf(stdout, "  Status:    %s\n", display.StatusBadge(string(f.Status), display.FollowUpStatusText(f.Status)))
	_, _ = fmt.Fprintf(stdout, "  Topics:    %s\n", f.ConversationTopics)
	if f.FollowUpActions != "" {
		_, _ = fmt.Fprintf(stdout, "  Actions:   %s\n", f.FollowUpActions)
	}
	if f.HasBusinessOpportunities() {
		_, _ = fmt.Fprintf(stdout, "  Business:  %s\n", f.BusinessOpportunities)
	}
	if f.HasReferrals() {
		_, _ = fmt.Fprintf(stdout, "  Referrals: given %s / received %s\n", dash(f.ReferralsGiven), dash(f.ReferralsReceived))
	}
	if f.NextMeetingDate != nil {
		_, _ = fmt.Fprintf(stdout, "  Next:      %s\n", formatDate(*f.NextMeetingDate))
	}
	return nil
}

func listFollowUps(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("followup list")
	status := fs.String("status", "", "Filter by status")
	outcome := fs.String("outcome", "", "Filter by outcome")
	with := fs.String("with", "", "Only meetings with this member")
	limit := fs.Int("limit", 20, "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := db.FollowUpFilter{
		Status:  models.FollowUpStatus(*status),
		Outcome: models.Outcome(*outcome),
		Limit:   *limit,
	}
	if *with != "" {
		id, err := ResolveMember(ctx, env.DB, *with)
		if err != nil {
			return err
		}
		filter.MetWithUserID = &id
	}

	followUps, err := env.Svc.FollowUps.List(ctx, actor, filter)
	if err != nil {
		return err
	}

	if len(followUps) == 0 {
		_, _ = fmt.Fprintln(stdout, "No follow-ups found")
		return nil
	}

	n := newNames(ctx, env.DB)
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tWITH\tOUTCOME\tSTATUS\tACTIONS\tID")
	_, _ = fmt.Fprintln(w, "----\t----\t-------\t------\t-------\t--")
	for i := range followUps {
		f := &followUps[i]
		indicator := "🟢"
		if f.NeedsFollowUp() {
			indicator = "🟡"
		}
		_, _ = fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\t%s\n",
			indicator, f.MeetingDate.Format("2006-01-02"), n.of(f.MetWithUserID), display.OutcomeText(f.Outcome),
			display.FollowUpStatusText(f.Status), dash(f.FollowUpActions), f.ID)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(stdout, "\nTotal: %d follow-up(s)\n", len(followUps))
	return nil
}
