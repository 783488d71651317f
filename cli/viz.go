// ABOUTME: Visualization CLI commands
// ABOUTME: Handles the network graph and dashboard commands
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/viz"
)

// VizCommand routes `bizlink viz <graph|dashboard>`.
func VizCommand(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("viz requires a subcommand (graph, dashboard)")
	}
	switch args[0] {
	case "graph":
		return vizGraph(ctx, env, args[1:])
	case "dashboard":
		return StatsCommand(ctx, env, args[1:])
	default:
		return unknownSubcommand("viz", args[0])
	}
}

// vizGraph writes the member network as DOT.
func vizGraph(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("viz graph")
	output := fs.String("output", "", "Output file (default: stdout)")
	member := fs.String("member", "", "Only show this member and their direct ties")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var focus *uuid.UUID
	if *member != "" {
		id, err := ResolveMember(ctx, env.DB, *member)
		if err != nil {
			return err
		}
		focus = &id
	}

	dot, err := viz.NewGraphGenerator(env.DB).NetworkGraph(ctx, focus)
	if err != nil {
		return fmt.Errorf("failed to generate graph: %w", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(dot), 0644); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
		_, _ = fmt.Fprintf(stdout, "✓ Graph written to %s\n", *output)
		return nil
	}

	_, _ = fmt.Fprintln(stdout, dot)
	return nil
}
