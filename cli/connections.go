// ABOUTME: Connection CLI commands
// ABOUTME: Request, answer, remove and list connections for the acting member
package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
)

// ConnectCommand routes `bizlink connect <request|accept|decline|remove|list>`.
func ConnectCommand(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("connect requires a subcommand (request, accept, decline, remove, list)")
	}
	actor, err := env.actor()
	if err != nil {
		return err
	}
	switch args[0] {
	case "request":
		return requestConnection(ctx, env, actor, args[1:])
	case "accept":
		return respondConnection(ctx, env, actor, network.DecisionAccept, args[1:])
	case "decline":
		return respondConnection(ctx, env, actor, network.DecisionDecline, args[1:])
	case "remove":
		return removeConnection(ctx, env, actor, args[1:])
	case "list":
		return listConnections(ctx, env, actor, args[1:])
	default:
		return unknownSubcommand("connect", args[0])
	}
}

func requestConnection(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("connect request")
	to := fs.String("to", "", "Member to connect with (required)")
	message := fs.String("message", "", "Optional note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *to == "" {
		return fmt.Errorf("--to is required")
	}
	addressee, err := ResolveMember(ctx, env.DB, *to)
	if err != nil {
		return err
	}

	conn, err := env.Svc.Connections.Request(ctx, actor, addressee, *message)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Connection requested (ID: %s)\n", conn.ID)
	return nil
}

func respondConnection(ctx context.Context, env *Env, actor uuid.UUID, decision network.Decision, args []string) error {
	fs := newFlagSet("connect " + string(decision))
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "connection")
	if err != nil {
		return err
	}

	conn, err := env.Svc.Connections.Respond(ctx, id, actor, decision)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Connection %s\n", display.ConnectionStatusText(conn.Status))
	return nil
}

func removeConnection(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("connect remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "connection")
	if err != nil {
		return err
	}
	if err := env.Svc.Connections.Remove(ctx, id, actor); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "✓ Connection removed: %s\n", id)
	return nil
}

func listConnections(ctx context.Context, env *Env, actor uuid.UUID, args []string) error {
	fs := newFlagSet("connect list")
	which := fs.String("which", "accepted", "accepted, pending (waiting on you) or sent")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		conns []models.Connection
		err   error
	)
	switch *which {
	case "accepted":
		conns, err = env.Svc.Connections.ListAccepted(ctx, actor)
	case "pending":
		conns, err = env.Svc.Connections.ListPending(ctx, actor)
	case "sent":
		conns, err = env.Svc.Connections.ListSent(ctx, actor)
	default:
		return fmt.Errorf("invalid --which %q", *which)
	}
	if err != nil {
		return err
	}

	if len(conns) == 0 {
		_, _ = fmt.Fprintln(stdout, "No connections found")
		return nil
	}

	n := newNames(ctx, env.DB)
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "WITH\tSTATUS\tSINCE\tMESSAGE\tID")
	_, _ = fmt.Fprintln(w, "----\t------\t-----\t-------\t--")
	for _, c := range conns {
		other := c.AddresseeID
		if other == actor {
			other = c.RequesterID
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			n.of(other), display.ConnectionStatusText(c.Status), c.CreatedAt.Format("2006-01-02"), dash(c.Message), c.ID)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(stdout, "\nTotal: %d connection(s)\n", len(conns))
	return nil
}
