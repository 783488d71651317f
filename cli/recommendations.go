// ABOUTME: Business recommendation CLI commands
// ABOUTME: Recommend members to each other, track contact and outcome, and rank the network
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

// RecommendCommand routes `bizlink recommend <subcommand>`.
func RecommendCommand(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("recommend requires a subcommand (create, update, contacted, complete, remove, show, list, network)")
	}
	if args[0] == "network" {
		return recommendationNetwork(ctx, env, args[1:])
	}
	actor, err := env.actor()
	if err != nil {
		return err
	}
	switch args[0] {
	case "create":
		return createRecommendation(ctx, env, actor, args[1:])
	case "update":
		return updateRecommendation(ctx, env, actor, args[1:])
	case "contacted":
		return markContacted(ctx, env, actor, args[1:])
	case "complete":
		return markCompleted(ctx, env, actor, args[1:])
	case "remove":
		return removeRecommendation(ctx, env, actor, args[1:])
	case "show":
		return showRecommendation(ctx, env, actor, args[1:])
	case "list":
		return listRecommendations(ctx, env, actor, args[1:])
	default:
		return unknownSubcommand("recommend", args[0])
	}
}

func createRecommendation(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("recommend create")
	to := fs.String("to", "", "Member receiving the recommendation (required)")
	member := fs.String("member", "", "Member being recommended (required)")
	date := fs.String("date", "", "Recommendation date (default now)")
	description := fs.String("description", "", "Business description (required)")
	why := fs.String("why", "", "Why you recommend them (required)")
	recType := fs.String("type", "", "business_opportunity, service_provider, potential_client, partnership or other")
	priority := fs.String("priority", "", "low, medium, high or urgent (default medium)")
	tags := fs.String("tags", "", "Comma-separated tags")
	mutual := fs.Bool("mutual", false, "Both sides benefit")
	value := fs.Int64("value-cents", 0, "Estimated value in cents")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *to == "" || *member == "" {
		return fmt.Errorf("--to and --member are required")
	}
	toID, err := ResolveMember(ctx, env.DB, *to)
	if err != nil {
		return err
	}
	memberID, err := ResolveMember(ctx, env.DB, *member)
	if err != nil {
		return err
	}
	recDate := env.Svc.Now()
	if *date != "" {
		if recDate, err = parseTime("date", *date); err != nil {
			return err
		}
	}
	var estimated *int64
	if setFlags(fs)["value-cents"] {
		estimated = value
	}

	rec, err := env.Svc.Recommendations.Create(ctx, actor, network.RecommendationDraft{
		RecommendedToID:     toID,
		RecommendedUserID:   memberID,
		RecommendationDate:  recDate,
		BusinessDescription: *description,
		WhyRecommended:      *why,
		RecommendationType:  models.RecommendationType(*recType),
		PriorityLevel:       models.Priority(*priority),
		Tags:                splitList(*tags),
		IsMutual:            *mutual,
		EstimatedValue:      estimated,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Recommendation created (ID: %s)\n", rec.ID)
	return nil
}

func updateRecommendation(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("recommend update")
	date := fs.String("date", "", "Recommendation date")
	description := fs.String("description", "", "Business description")
	why := fs.String("why", "", "Why you recommend them")
	recType := fs.String("type", "", "Recommendation type")
	priority := fs.String("priority", "", "Priority")
	tags := fs.String("tags", "", "Comma-separated tags")
	mutual := fs.Bool("mutual", false, "Both sides benefit")
	value := fs.Int64("value-cents", 0, "Estimated value in cents")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "recommendation")
	if err != nil {
		return err
	}
	set := setFlags(fs)

	var u network.RecommendationUpdate
	if u.RecommendationDate, err = parseOptionalTime("date", *date); err != nil {
		return err
	}
	u.BusinessDescription = optString(set, "description", *description)
	u.WhyRecommended = optString(set, "why", *why)
	if set["type"] {
		t := models.RecommendationType(*recType)
		u.RecommendationType = &t
	}
	if set["priority"] {
		p := models.Priority(*priority)
		u.PriorityLevel = &p
	}
	if set["tags"] {
		u.Tags = splitList(*tags)
	}
	if set["mutual"] {
		u.IsMutual = mutual
	}
	if set["value-cents"] {
		u.EstimatedValue = value
	}

	if _, err := env.Svc.Recommendations.Update(ctx, id, actor, u); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "✓ Recommendation updated")
	return nil
}

func markContacted(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("recommend contacted")
	notes := fs.String("notes", "", "Follow-up notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "recommendation")
	if err != nil {
		return err
	}
	if _, err := env.Svc.Recommendations.MarkContacted(ctx, id, actor, optString(setFlags(fs), "notes", *notes)); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "✓ Recommendation marked as contacted")
	return nil
}

func markCompleted(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("recommend complete")
	outcome := fs.String("outcome", "", "business_done, not_interested or no_response (required)")
	notes := fs.String("notes", "", "Outcome notes")
	value := fs.Int64("value-cents", 0, "Estimated value in cents")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "recommendation")
	if err != nil {
		return err
	}
	set := setFlags(fs)
	var estimated *int64
	if set["value-cents"] {
		estimated = value
	}

	rec, err := env.Svc.Recommendations.MarkCompleted(ctx, id, actor, models.RecommendationStatus(*outcome), optString(set, "notes", *notes), estimated)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Recommendation closed: %s\n", display.RecommendationStatusText(rec.Status))
	return nil
}

func removeRecommendation(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("recommend remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "recommendation")
	if err != nil {
		return err
	}
	if err := env.Svc.Recommendations.Remove(ctx, id, actor); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Recommendation removed: %s\n", id)
	return nil
}

func showRecommendation(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("recommend show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "recommendation")
	if err != nil {
		return err
	}
	r, err := env.Svc.Recommendations.Get(ctx, id, actor)
	if err != nil {
		return err
	}

	n := newNames(ctx, env.DB)
	_, _ = fmt.Fprintf(stdout, "Recommendation %s (you are the %s)\n", r.ID, network.RoleOf(r, actor))
	_, _ = fmt.Fprintf(stdout, "  Recommender: %s\n", n.of(r.RecommenderID))
	_, _ = fmt.Fprintf(stdout, "  To:          %s\n", n.of(r.RecommendedToID))
	_, _ = fmt.Fprintf(stdout, "  Member:      %s\n", n.of(r.RecommendedUserID))
	_, _ = fmt.Fprintf(stdout, "  Status:      %s\n", display.StatusBadge(string(r.Status), display.RecommendationStatusText(r.Status)))
	_, _ = fmt.Fprintf(stdout, "  Type:        %s\n", display.RecommendationTypeText(r.RecommendationType))
	_, _ = fmt.Fprintf(stdout, "  Priority:    %s\n", display.Tint(display.PriorityText(r.PriorityLevel), display.PriorityColor(r.PriorityLevel)))
	_, _ = fmt.Fprintf(stdout, "  Business:    %s\n", r.BusinessDescription)
	_, _ = fmt.Fprintf(stdout, "  Why:         %s\n", r.WhyRecommended)
	if r.EstimatedValue != nil {
		_, _ = fmt.Fprintf(stdout, "  Value:       $%d.%02d\n", *r.EstimatedValue/100, *r.EstimatedValue%100)
	}
	if r.OutcomeNotes != "" {
		_, _ = fmt.Fprintf(stdout, "  Outcome:     %s\n", r.OutcomeNotes)
	}
	return nil
}

func listRecommendations(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("recommend list")
	direction := fs.String("direction", string(db.RecommendationsAll), "given, received, about_me or all")
	status := fs.String("status", "", "Filter by status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	recs, err := env.Svc.Recommendations.List(ctx, actor, db.RecommendationDirection(*direction), models.RecommendationStatus(*status))
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		_, _ = fmt.Fprintln(stdout, "No recommendations found")
		return nil
	}

	n := newNames(ctx, env.DB)
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RECOMMENDER\tTO\tMEMBER\tSTATUS\tPRIORITY\tID")
	_, _ = fmt.Fprintln(w, "-----------\t--\t------\t------\t--------\t--")
	for _, r := range recs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			n.of(r.RecommenderID), n.of(r.RecommendedToID), n.of(r.RecommendedUserID),
			display.RecommendationStatusText(r.Status), display.PriorityText(r.PriorityLevel), r.ID)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(stdout, "\nTotal: %d recommendation(s)\n", len(recs))
	return nil
}

func recommendationNetwork(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("recommend network")
	limit := fs.Int("limit", 10, "How many members per ranking")
	if err := fs.Parse(args); err != nil {
		return err
	}

	nw, err := env.Svc.Recommendations.Network(ctx, *limit)
	if err != nil {
		return err
	}

	printRanking := func(title string, counts []db.UserCount) {
		_, _ = fmt.Fprintln(stdout, title)
		if len(counts) == 0 {
			_, _ = fmt.Fprintln(stdout, "  (none)")
		}
		for i, c := range counts {
			_, _ = fmt.Fprintf(stdout, "  %2d. %-30s %d\n", i+1, c.Name, c.Count)
		}
	}
	printRanking("MOST RECOMMENDED", nw.MostRecommended)
	_, _ = fmt.Fprintln(stdout)
	printRanking("TOP RECOMMENDERS", nw.TopRecommenders)
	return nil
}
