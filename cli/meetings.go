// ABOUTME: One-to-one meeting CLI commands
// ABOUTME: Propose, answer, complete, cancel, edit and list meetings for the acting member
package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
)

// MeetingCommand routes `bizlink meeting <subcommand>`.
func MeetingCommand(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("meeting requires a subcommand (propose, accept, decline, complete, cancel, update, remove, show, list)")
	}
	actor, err := env.actor()
	if err != nil {
		return err
	}
	switch args[0] {
	case "propose":
		return proposeMeeting(ctx, env, actor, args[1:])
	case "accept":
		return acceptMeeting(ctx, env, actor, args[1:])
	case "decline":
		return declineMeeting(ctx, env, actor, args[1:])
	case "complete":
		return completeMeeting(ctx, env, actor, args[1:])
	case "cancel":
		return cancelMeeting(ctx, env, actor, args[1:])
	case "update":
		return updateMeeting(ctx, env, actor, args[1:])
	case "remove":
		return removeMeeting(ctx, env, actor, args[1:])
	case "show":
		return showMeeting(ctx, env, actor, args[1:])
	case "list":
		return listMeetings(ctx, env, actor, args[1:])
	default:
		return unknownSubcommand("meeting", args[0])
	}
}

func proposeMeeting(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("meeting propose")
	with := fs.String("with", "", "Member to meet (required)")
	date := fs.String("date", "", "Proposed date, must be in the future (required)")
	purpose := fs.String("purpose", "", "What the meeting is for (required)")
	location := fs.String("location", "", "Where to meet")
	agenda := fs.String("agenda", "", "Agenda")
	notes := fs.String("notes", "", "Notes")
	meetingType := fs.String("type", "", "in_person, virtual or phone (default in_person)")
	priority := fs.String("priority", "", "low, medium, high or urgent (default medium)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *with == "" {
		return fmt.Errorf("--with is required")
	}
	requested, err := ResolveMember(ctx, env.DB, *with)
	if err != nil {
		return err
	}
	when, err := parseTime("date", *date)
	if err != nil {
		return err
	}

	m, err := env.Svc.Meetings.Propose(ctx, actor, network.MeetingProposal{
		RequestedID: requested,
		MeetingDate: when,
		Purpose:     *purpose,
		Location:    *location,
		Agenda:      *agenda,
		Notes:       *notes,
		MeetingType: models.MeetingType(*meetingType),
		Priority:    models.Priority(*priority),
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stdout, "✓ Meeting proposed (ID: %s)\n", m.ID)
	_, _ = fmt.Fprintf(stdout, "  With: %s on %s\n", newNames(ctx, env.DB).of(requested), formatDate(m.MeetingDate))
	return nil
}

func acceptMeeting(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("meeting accept")
	confirmed := fs.String("confirmed-date", "", "Confirmed date if different from the proposal")
	location := fs.String("location", "", "Confirmed location")
	notes := fs.String("notes", "", "Notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "meeting")
	if err != nil {
		return err
	}
	confirmedDate, err := parseOptionalTime("confirmed-date", *confirmed)
	if err != nil {
		return err
	}
	set := setFlags(fs)

	m, err := env.Svc.Meetings.Accept(ctx, id, actor, network.AcceptOptions{
		ConfirmedDate: confirmedDate,
		Location:      optString(set, "location", *location),
		Notes:         optString(set, "notes", *notes),
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Meeting accepted for %s\n", formatDate(meetingWhen(m)))
	return nil
}

func declineMeeting(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("meeting decline")
	reason := fs.String("reason", "", "Optional reason, kept in the meeting notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "meeting")
	if err != nil {
		return err
	}
	if _, err := env.Svc.Meetings.Decline(ctx, id, actor, *reason); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "✓ Meeting declined")
	return nil
}

func completeMeeting(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("meeting complete")
	notes := fs.String("notes", "", "Your notes from the meeting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "meeting")
	if err != nil {
		return err
	}
	if _, err := env.Svc.Meetings.Complete(ctx, id, actor, *notes); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "✓ Meeting completed")
	return nil
}

func cancelMeeting(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("meeting cancel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "meeting")
	if err != nil {
		return err
	}
	if _, err := env.Svc.Meetings.Cancel(ctx, id, actor); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "✓ Meeting cancelled")
	return nil
}

func updateMeeting(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("meeting update")
	date := fs.String("date", "", "New date")
	location := fs.String("location", "", "Location")
	meetingType := fs.String("type", "", "in_person, virtual or phone")
	purpose := fs.String("purpose", "", "Purpose")
	agenda := fs.String("agenda", "", "Agenda")
	notes := fs.String("notes", "", "Notes")
	priority := fs.String("priority", "", "low, medium, high or urgent")
	requesterNotes := fs.String("requester-notes", "", "Requester's private notes")
	requestedNotes := fs.String("requested-notes", "", "Requested member's private notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "meeting")
	if err != nil {
		return err
	}
	set := setFlags(fs)

	var u network.MeetingUpdate
	if u.MeetingDate, err = parseOptionalTime("date", *date); err != nil {
		return err
	}
	u.Location = optString(set, "location", *location)
	u.Purpose = optString(set, "purpose", *purpose)
	u.Agenda = optString(set, "agenda", *agenda)
	u.Notes = optString(set, "notes", *notes)
	u.RequesterNotes = optString(set, "requester-notes", *requesterNotes)
	u.RequestedNotes = optString(set, "requested-notes", *requestedNotes)
	if set["type"] {
		t := models.MeetingType(*meetingType)
		u.MeetingType = &t
	}
	if set["priority"] {
		p := models.Priority(*priority)
		u.Priority = &p
	}

	m, err := env.Svc.Meetings.Update(ctx, id, actor, u)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Meeting updated (%s)\n", display.MeetingStatusText(m.Status))
	return nil
}

func removeMeeting(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("meeting remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "meeting")
	if err != nil {
		return err
	}
	if err := env.Svc.Meetings.Remove(ctx, id, actor); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Meeting removed: %s\n", id)
	return nil
}

func showMeeting(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("meeting show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "meeting")
	if err != nil {
		return err
	}

	m, err := env.Svc.Meetings.Get(ctx, id, actor)
	if err != nil {
		return err
	}
	referrals, err := env.Svc.Referrals.ListByMeeting(ctx, id, actor)
	if err != nil {
		return err
	}

	n := newNames(ctx, env.DB)
	_, _ = fmt.Fprintf(stdout, "Meeting %s\n", m.ID)
	_, _ = fmt.Fprintf(stdout, "  Requester: %s\n", n.of(m.RequesterID))
	_, _ = fmt.Fprintf(stdout, "  Requested: %s\n", n.of(m.RequestedID))
	_, _ = fmt.Fprintf(stdout, "  Date:      %s\n", formatDate(meetingWhen(m)))
	_, _ = fmt.Fprintf(stdout, "  Status:    %s\n", display.StatusBadge(string(m.Status), display.MeetingStatusText(m.Status)))
	_, _ = fmt.Fprintf(stdout, "  Type:      %s\n", display.MeetingTypeText(m.MeetingType))
	_, _ = fmt.Fprintf(stdout, "  Priority:  %s\n", display.Tint(display.PriorityText(m.Priority), display.PriorityColor(m.Priority)))
	_, _ = fmt.Fprintf(stdout, "  Location:  %s\n", dash(m.Location))
	_, _ = fmt.Fprintf(stdout, "  Purpose:   %s\n", m.Purpose)
	if m.Agenda != "" {
		_, _ = fmt.Fprintf(stdout, "  Agenda:    %s\n", m.Agenda)
	}
	if m.Notes != "" {
		_, _ = fmt.Fprintf(stdout, "  Notes:     %s\n", m.Notes)
	}
	if len(referrals) > 0 {
		_, _ = fmt.Fprintf(stdout, "\n  Referral cards: %d\n", len(referrals))
		for _, r := range referrals {
			_, _ = fmt.Fprintf(stdout, "  - %s → %s: %s (%s)\n",
				n.of(r.FromUserID), n.of(r.ToUserID), r.ReferralDescription, display.ReferralStatusText(r.Status))
		}
	}
	return nil
}

func listMeetings(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("meeting list")
	status := fs.String("status", "", "Filter by status")
	priority := fs.String("priority", "", "Filter by priority")
	upcoming := fs.Bool("upcoming", false, "Only pending or accepted meetings still ahead")
	past := fs.Bool("past", false, "Only meetings before now")
	limit := fs.Int("limit", 50, "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	meetings, err := env.Svc.Meetings.List(ctx, actor, network.MeetingListFilter{
		Status:   models.MeetingStatus(*status),
		Priority: models.Priority(*priority),
		Upcoming: *upcoming,
		Past:     *past,
		Limit:    *limit,
	})
	if err != nil {
		return err
	}

	if len(meetings) == 0 {
		_, _ = fmt.Fprintln(stdout, "No meetings found")
		return nil
	}

	n := newNames(ctx, env.DB)
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tWITH\tSTATUS\tPURPOSE\tID")
	_, _ = fmt.Fprintln(w, "----\t----\t------\t-------\t--")
	for i := range meetings {
		m := &meetings[i]
		other := m.RequestedID
		if other == actor {
			other = m.RequesterID
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			formatDate(meetingWhen(m)), n.of(other), display.MeetingStatusText(m.Status), m.Purpose, m.ID)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(stdout, "\nTotal: %d meeting(s)\n", len(meetings))
	return nil
}

func meetingWhen(m *models.Meeting) time.Time {
	if m.ConfirmedDate != nil {
		return *m.ConfirmedDate
	}
	return m.MeetingDate
}
