// ABOUTME: Entry point for the bizlink CLI and MCP server
// ABOUTME: Loads config, opens the database, resolves the acting member and routes commands
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/harperreed/bizlink/cli"
	"github.com/harperreed/bizlink/config"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/network"
)

const version = "0.2.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: $XDG_DATA_HOME/bizlink/bizlink.db)")
	as := flag.String("as", "", "Acting member id or name (default: $BIZLINK_USER)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("bizlink version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 && !*initOnly {
		printUsage()
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *dbPath, *as, *initOnly, args); err != nil {
		log.Printf("Error: %v", err)
		stop()
		os.Exit(cli.ExitStatus(err))
	}
}

func run(ctx context.Context, dbPath, as string, initOnly bool, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Override(dbPath, as)

	database, err := db.OpenDatabase(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	if initOnly {
		log.Printf("Database initialized: %s", cfg.DBPath)
		return nil
	}

	actor, err := cli.ResolveMember(ctx, database, cfg.User)
	if err != nil {
		return fmt.Errorf("--as: %w", err)
	}

	env := &cli.Env{
		DB:     database,
		Svc:    network.New(database),
		Actor:  actor,
		Config: cfg,
	}

	command, commandArgs := args[0], args[1:]
	switch command {
	case "mcp":
		return cli.MCPCommand(ctx, env, version)
	case "member":
		return cli.MemberCommand(ctx, env, commandArgs)
	case "company":
		return cli.CompanyCommand(ctx, env, commandArgs)
	case "connect":
		return cli.ConnectCommand(ctx, env, commandArgs)
	case "meeting":
		return cli.MeetingCommand(ctx, env, commandArgs)
	case "referral":
		return cli.ReferralCommand(ctx, env, commandArgs)
	case "recommend":
		return cli.RecommendCommand(ctx, env, commandArgs)
	case "followup":
		return cli.FollowUpCommand(ctx, env, commandArgs)
	case "stats":
		return cli.StatsCommand(ctx, env, commandArgs)
	case "history":
		return cli.HistoryCommand(ctx, env, commandArgs)
	case "activity":
		return cli.ActivityCommand(ctx, env, commandArgs)
	case "inbox":
		return cli.InboxCommand(ctx, env, commandArgs)
	case "viz":
		return cli.VizCommand(ctx, env, commandArgs)
	case "calendar":
		return cli.CalendarCommand(ctx, env, commandArgs)
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	fmt.Printf(`bizlink v%s - business networking from the terminal

USAGE:
  bizlink [global flags] <command> [subcommand] [flags] [id]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/bizlink/bizlink.db)
  --as <id|name>         Acting member (default: $BIZLINK_USER)
  --init                 Initialize database and exit

  Flags must come before positional ids, e.g. 'meeting accept --location Cafe <id>'.
  Dates accept YYYY-MM-DD, "YYYY-MM-DD HH:MM" or RFC3339.

DIRECTORY:
  bizlink member add --name <name> [--email] [--position] [--company] [--status]
  bizlink member list [--query] [--company-id] [--limit]
  bizlink member show <id>
  bizlink member set-status --status <active|inactive|pending|suspended> <id>
  bizlink company add --name <name> [--industry] [--website]
  bizlink company list [--query] [--limit]
  bizlink company delete <id>

CONNECTIONS (need --as):
  bizlink connect request --to <member> [--message]
  bizlink connect accept|decline|remove <id>
  bizlink connect list [--which accepted|pending|sent]

MEETINGS (need --as):
  bizlink meeting propose --with <member> --date <date> --purpose <text>
                          [--location] [--agenda] [--notes] [--type] [--priority]
  bizlink meeting accept [--confirmed-date] [--location] [--notes] <id>
  bizlink meeting decline [--reason] <id>
  bizlink meeting complete [--notes] <id>
  bizlink meeting cancel|remove|show <id>
  bizlink meeting update [--date] [--location] [--purpose] ... <id>
  bizlink meeting list [--status] [--priority] [--upcoming] [--past] [--limit]

REFERRAL CARDS (need --as):
  bizlink referral create --meeting <id> --to <member> --description <text>
                          [--type] [--interest] [--contact-name] [--actions a,b]
  bizlink referral update [flags] <id>
  bizlink referral send|receive|remove|show <id>
  bizlink referral complete [--comments] [--actions a,b] <id>
  bizlink referral list [--direction sent|received|all] [--status] [--meeting]

RECOMMENDATIONS (need --as, except network):
  bizlink recommend create --to <member> --member <member> --description <text> --why <text>
                           [--type] [--priority] [--tags] [--mutual] [--value-cents]
  bizlink recommend update [flags] <id>
  bizlink recommend contacted [--notes] <id>
  bizlink recommend complete --outcome <business_done|not_interested|no_response> <id>
  bizlink recommend remove|show <id>
  bizlink recommend list [--direction given|received|about_me|all] [--status]
  bizlink recommend network [--limit]

FOLLOW-UPS (need --as):
  bizlink followup log --with <member> --date <date> --location <text> --topics <text>
                       [--outcome] [--actions] [--duration] [--next] ...
  bizlink followup update [flags] [--clear-next] [--clear-duration] [--clear-invited-by] <id>
  bizlink followup remove|show <id>
  bizlink followup list [--status] [--outcome] [--with] [--limit]

OVERVIEW (need --as):
  bizlink stats                        Dashboard
  bizlink inbox [--plain]              Everything waiting on you
  bizlink history <entity-type> <id>   Recorded transitions of an entity
  bizlink activity [--limit]           Your recent actions

VISUALIZATION:
  bizlink viz graph [--member <member>] [--output <file>]
  bizlink viz dashboard

GOOGLE CALENDAR:
  bizlink calendar auth                Authorize (needs GOOGLE_CLIENT_ID/SECRET)
  bizlink --as <you> calendar export [--calendar <id>]

MCP SERVER:
  bizlink --as <you> mcp               Serve tools on stdio for Claude Desktop

EXIT CODES:
  1 internal, 2 invalid argument, 3 not found, 4 forbidden,
  5 precondition failed, 6 conflict

`, version)
}
