// ABOUTME: Shared plumbing for the bizlink CLI commands
// ABOUTME: Resolves the acting member, parses flags and maps failures to exit codes
package cli

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/config"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/network"
)

// stdout is swapped by tests to capture command output.
var stdout io.Writer = os.Stdout

// Env is what every command runs against.
type Env struct {
	DB     *sql.DB
	Svc    *network.Service
	Actor  uuid.UUID // uuid.Nil when no --as was given
	Config *config.Config
}

// ErrNoActor is returned by commands that act on behalf of a member when none was chosen.
var ErrNoActor = errors.New("no acting member: pass --as <id|name> or set BIZLINK_USER")

func (e *Env) actor() (uuid.UUID, error) {
	if e.Actor == uuid.Nil {
		return uuid.Nil, ErrNoActor
	}
	return e.Actor, nil
}

// ResolveMember turns a member reference into a user id. ref may be a uuid or an exact, unique name.
func ResolveMember(ctx context.Context, database *sql.DB, ref string) (uuid.UUID, error) {
	if ref == "" {
		return uuid.Nil, nil
	}
	if id, err := uuid.Parse(ref); err == nil {
		u, err := db.GetUser(ctx, database, id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to look up member: %w", err)
		}
		if u == nil {
			return uuid.Nil, fmt.Errorf("member %s not found", ref)
		}
		return id, nil
	}

	users, err := db.FindUsers(ctx, database, ref, nil, 0)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up member: %w", err)
	}
	var matches []uuid.UUID
	for _, u := range users {
		if strings.EqualFold(u.Name, ref) {
			matches = append(matches, u.ID)
		}
	}
	switch len(matches) {
	case 0:
		return uuid.Nil, fmt.Errorf("member %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		return uuid.Nil, fmt.Errorf("%d members are named %q, use the id instead", len(matches), ref)
	}
}

// ExitStatus maps an error to the process exit code.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var e *network.Error
	if !errors.As(err, &e) {
		if errors.Is(err, ErrNoActor) {
			return 2
		}
		return 1
	}
	switch e.Kind {
	case network.KindInvalidArgument:
		return 2
	case network.KindNotFound:
		return 3
	case network.KindForbidden:
		return 4
	case network.KindPreconditionFailed:
		return 5
	case network.KindConflict:
		return 6
	default:
		return 1
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func parseID(field, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("--%s is required", field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --%s: %w", field, err)
	}
	return id, nil
}

func parseOptionalID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// argID reads the id from the first positional argument.
func argID(fs *flag.FlagSet, what string) (uuid.UUID, error) {
	if fs.NArg() < 1 {
		return uuid.Nil, fmt.Errorf("%s id is required", what)
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id: %w", what, err)
	}
	return id, nil
}

// parseTime accepts RFC3339, "2006-01-02 15:04" or a bare date.
func parseTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("--%s is required", field)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --%s %q (use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC3339)", field, value)
}

func parseOptionalTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseTime(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// setFlags reports which flags were passed explicitly so updates can tell "unset" from "empty".
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func optString(set map[string]bool, name, value string) *string {
	if !set[name] {
		return nil
	}
	return &value
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// names caches member names for table output.
type names struct {
	ctx   context.Context
	db    *sql.DB
	cache map[uuid.UUID]string
}

func newNames(ctx context.Context, database *sql.DB) *names {
	return &names{ctx: ctx, db: database, cache: map[uuid.UUID]string{}}
}

func (n *names) of(id uuid.UUID) string {
	if name, ok := n.cache[id]; ok {
		return name
	}
	name := shortID(id)
	if u, err := db.GetUser(n.ctx, n.db, id); err == nil && u != nil {
		name = u.Name
	}
	n.cache[id] = name
	return name
}

func unknownSubcommand(group, sub string) error {
	return fmt.Errorf("unknown %s command: %s", group, sub)
}
