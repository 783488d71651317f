// ABOUTME: Dashboard, history and activity CLI commands
// ABOUTME: Renders the acting member's stats and the recorded state transitions
package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/viz"
)

// StatsCommand prints the dashboard for the acting member.
func StatsCommand(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("stats")
	if err := fs.Parse(args); err != nil {
		return err
	}
	actor, err := env.actor()
	if err != nil {
		return err
	}

	stats, err := env.Svc.Stats.For(ctx, actor)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(stdout, viz.RenderDashboard(newNames(ctx, env.DB).of(actor), stats))
	return nil
}

// HistoryCommand prints `bizlink history <entity-type> <id>`.
func HistoryCommand(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("history")
	if err := fs.Parse(args); err != nil {
		return err
	}
	actor, err := env.actor()
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: history <connection|meeting|referral_card|recommendation|follow_up> <id>")
	}
	id, err := parseID("id", fs.Arg(1))
	if err != nil {
		return err
	}

	entries, err := env.Svc.HistoryFor(ctx, actor, fs.Arg(0), id)
	if err != nil {
		return err
	}
	return printActivity(ctx, env, entries)
}

// ActivityCommand prints the acting member's most recent transitions.
func ActivityCommand(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("activity")
	limit := fs.Int("limit", 20, "Maximum entries")
	if err := fs.Parse(args); err != nil {
		return err
	}
	actor, err := env.actor()
	if err != nil {
		return err
	}

	entries, err := db.ListActivityByActor(ctx, env.DB, actor, *limit)
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}
	return printActivity(ctx, env, entries)
}

func printActivity(ctx context.Context, env *Env, entries []models.Activity) error {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(stdout, "No activity recorded")
		return nil
	}

	n := newNames(ctx, env.DB)
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "WHEN\tWHO\tACTION\tENTITY\tTRANSITION")
	_, _ = fmt.Fprintln(w, "----\t---\t------\t------\t----------")
	for _, a := range entries {
		transition := dash(a.FromStatus) + " → " + dash(a.ToStatus)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
			formatDate(a.OccurredAt), n.of(a.ActorID), a.Action, a.EntityType, shortID(a.EntityID), transition)
	}
	return w.Flush()
}
