// ABOUTME: Inbox CLI command
// ABOUTME: Opens the interactive inbox on a terminal and prints a plain list otherwise
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/harperreed/bizlink/tui"
	"golang.org/x/term"
)

// InboxCommand shows everything waiting on the acting member.
func InboxCommand(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("inbox")
	plain := fs.Bool("plain", false, "Print the list instead of opening the interactive view")
	if err := fs.Parse(args); err != nil {
		return err
	}
	actor, err := env.actor()
	if err != nil {
		return err
	}

	if !*plain && stdout == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
		return tui.Run(ctx, env.Svc, actor)
	}

	inbox, err := env.Svc.Inbox(ctx, actor)
	if err != nil {
		return err
	}
	items := tui.Items(ctx, env.DB, inbox)
	if len(items) == 0 {
		_, _ = fmt.Fprintln(stdout, "Nothing is waiting on you")
		return nil
	}
	for _, item := range items {
		_, _ = fmt.Fprintf(stdout, "[%s] %s: %s (%s)\n", item.Kind, item.From, item.Summary, item.ID)
	}
	_, _ = fmt.Fprintf(stdout, "\nTotal: %d item(s)\n", len(items))
	return nil
}
