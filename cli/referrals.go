// ABOUTME: Referral card CLI commands
// ABOUTME: Draft, edit, send, receive, complete and list referral cards tied to meetings
package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
)

// ReferralCommand routes `bizlink referral <subcommand>`.
func ReferralCommand(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("referral requires a subcommand (create, update, send, receive, complete, remove, show, list)")
	}
	actor, err := env.actor()
	if err != nil {
		return err
	}
	switch args[0] {
	case "create":
		return createReferral(ctx, env, actor, args[1:])
	case "update":
		return updateReferral(ctx, env, actor, args[1:])
	case "send":
		return advanceReferral(ctx, env, actor, "send", args[1:])
	case "receive":
		return advanceReferral(ctx, env, actor, "receive", args[1:])
	case "complete":
		return completeReferral(ctx, env, actor, args[1:])
	case "remove":
		return removeReferral(ctx, env, actor, args[1:])
	case "show":
		return showReferral(ctx, env, actor, args[1:])
	case "list":
		return listReferrals(ctx, env, actor, args[1:])
	default:
		return unknownSubcommand("referral", args[0])
	}
}

func createReferral(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("referral create")
	meeting := fs.String("meeting", "", "Meeting the card belongs to (required)")
	to := fs.String("to", "", "Member receiving the referral (required)")
	date := fs.String("date", "", "Referral date (default now)")
	description := fs.String("description", "", "What is being referred (required)")
	referralType := fs.String("type", "", "internal or external (default external)")
	interest := fs.String("interest", "", "very_low, low, medium, high or very_high (default medium)")
	contactName := fs.String("contact-name", "", "Referred contact's name")
	contactPhone := fs.String("contact-phone", "", "Referred contact's phone")
	contactEmail := fs.String("contact-email", "", "Referred contact's email")
	contactAddress := fs.String("contact-address", "", "Referred contact's address")
	comments := fs.String("comments", "", "Comments")
	actions := fs.String("actions", "", "Comma-separated follow-up actions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	meetingID, err := parseID("meeting", *meeting)
	if err != nil {
		return err
	}
	if *to == "" {
		return fmt.Errorf("--to is required")
	}
	toUser, err := ResolveMember(ctx, env.DB, *to)
	if err != nil {
		return err
	}
	referralDate := env.Svc.Now()
	if *date != "" {
		if referralDate, err = parseTime("date", *date); err != nil {
			return err
		}
	}

	card, err := env.Svc.Referrals.Create(ctx, actor, network.ReferralDraft{
		MeetingID:           meetingID,
		ToUserID:            toUser,
		ReferralDate:        referralDate,
		ReferralDescription: *description,
		ReferralType:        models.ReferralType(*referralType),
		InterestLevel:       models.InterestLevel(*interest),
		ContactName:         *contactName,
		ContactPhone:        *contactPhone,
		ContactEmail:        *contactEmail,
		ContactAddress:      *contactAddress,
		Comments:            *comments,
		FollowUpActions:     splitList(*actions),
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Referral card drafted (ID: %s)\n", card.ID)
	return nil
}

func updateReferral(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("referral update")
	date := fs.String("date", "", "Referral date")
	description := fs.String("description", "", "Description")
	referralType := fs.String("type", "", "internal or external")
	interest := fs.String("interest", "", "Interest level")
	contactName := fs.String("contact-name", "", "Contact name")
	contactPhone := fs.String("contact-phone", "", "Contact phone")
	contactEmail := fs.String("contact-email", "", "Contact email")
	contactAddress := fs.String("contact-address", "", "Contact address")
	comments := fs.String("comments", "", "Comments")
	actions := fs.String("actions", "", "Comma-separated follow-up actions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "referral")
	if err != nil {
		return err
	}
	set := setFlags(fs)

	var u network.ReferralUpdate
	if u.ReferralDate, err = parseOptionalTime("date", *date); err != nil {
		return err
	}
	u.ReferralDescription = optString(set, "description", *description)
	u.ContactName = optString(set, "contact-name", *contactName)
	u.ContactPhone = optString(set, "contact-phone", *contactPhone)
	u.ContactEmail = optString(set, "contact-email", *contactEmail)
	u.ContactAddress = optString(set, "contact-address", *contactAddress)
	u.Comments = optString(set, "comments", *comments)
	if set["type"] {
		t := models.ReferralType(*referralType)
		u.ReferralType = &t
	}
	if set["interest"] {
		l := models.InterestLevel(*interest)
		u.InterestLevel = &l
	}
	if set["actions"] {
		u.FollowUpActions = splitList(*actions)
	}

	if _, err := env.Svc.Referrals.Update(ctx, id, actor, u); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "✓ Referral card updated")
	return nil
}

func advanceReferral(ctx context.Context, env *Env, actor uuid.UUID, step string, args []string) error {
	fs := newFlagSet("referral " + step)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "referral")
	if err != nil {
		return err
	}

	var card *models.ReferralCard
	if step == "send" {
		card, err = env.Svc.Referrals.Send(ctx, id, actor)
	} else {
		card, err = env.Svc.Referrals.MarkReceived(ctx, id, actor)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Referral card %s\n", display.ReferralStatusText(card.Status))
	return nil
}

func completeReferral(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("referral complete")
	comments := fs.String("comments", "", "Closing comments")
	actions := fs.String("actions", "", "Comma-separated follow-up actions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "referral")
	if err != nil {
		return err
	}
	set := setFlags(fs)

	var followUps []string
	if set["actions"] {
		followUps = splitList(*actions)
	}
	if _, err := env.Svc.Referrals.Complete(ctx, id, actor, optString(set, "comments", *comments), followUps); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "✓ Referral card completed")
	return nil
}

func removeReferral(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("referral remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "referral")
	if err != nil {
		return err
	}
	if err := env.Svc.Referrals.Remove(ctx, id, actor); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Referral card removed: %s\n", id)
	return nil
}

func showReferral(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("referral show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "referral")
	if err != nil {
		return err
	}
	r, err := env.Svc.Referrals.Get(ctx, id, actor)
	if err != nil {
		return err
	}

	n := newNames(ctx, env.DB)
	_, _ = fmt.Fprintf(stdout, "Referral card %s\n", r.ID)
	_, _ = fmt.Fprintf(stdout, "  From:     %s\n", n.of(r.FromUserID))
	_, _ = fmt.Fprintf(stdout, "  To:       %s\n", n.of(r.ToUserID))
	_, _ = fmt.Fprintf(stdout, "  Meeting:  %s\n", r.MeetingID)
	_, _ = fmt.Fprintf(stdout, "  Date:     %s\n", formatDate(r.ReferralDate))
	_, _ = fmt.Fprintf(stdout, "  Status:   %s\n", display.StatusBadge(string(r.Status), display.ReferralStatusText(r.Status)))
	_, _ = fmt.Fprintf(stdout, "  Type:     %s\n", display.ReferralTypeText(r.ReferralType))
	_, _ = fmt.Fprintf(stdout, "  Interest: %s\n", display.Tint(display.InterestLevelText(r.InterestLevel), display.InterestLevelColor(r.InterestLevel)))
	_, _ = fmt.Fprintf(stdout, "  Referral: %s\n", r.ReferralDescription)
	if r.ContactName != "" {
		_, _ = fmt.Fprintf(stdout, "  Contact:  %s %s %s\n", r.ContactName, r.ContactEmail, r.ContactPhone)
	}
	if r.Comments != "" {
		_, _ = fmt.Fprintf(stdout, "  Comments: %s\n", r.Comments)
	}
	for _, a := range r.FollowUpActions {
		_, _ = fmt.Fprintf(stdout, "  - %s\n", a)
	}
	return nil
}

func listReferrals(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("referral list")
	direction := fs.String("direction", string(db.ReferralsAll), "sent, received or all")
	status := fs.String("status", "", "Filter by status")
	meeting := fs.String("meeting", "", "Only cards of this meeting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	meetingID, err := parseOptionalID("meeting", *meeting)
	if err != nil {
		return err
	}

	var cards []models.ReferralCard
	if meetingID != nil {
		cards, err = env.Svc.Referrals.ListByMeeting(ctx, *meetingID, actor)
	} else {
		cards, err = env.Svc.Referrals.List(ctx, actor, db.ReferralDirection(*direction), models.ReferralStatus(*status))
	}
	if err != nil {
		return err
	}

	if len(cards) == 0 {
		_, _ = fmt.Fprintln(stdout, "No referral cards found")
		return nil
	}

	n := newNames(ctx, env.DB)
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FROM\tTO\tSTATUS\tINTEREST\tREFERRAL\tID")
	_, _ = fmt.Fprintln(w, "----\t--\t------\t--------\t--------\t--")
	for _, r := range cards {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			n.of(r.FromUserID), n.of(r.ToUserID), display.ReferralStatusText(r.Status),
			display.InterestLevelText(r.InterestLevel), r.ReferralDescription, r.ID)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(stdout, "\nTotal: %d referral card(s)\n", len(cards))
	return nil
}
