// ABOUTME: Directory CLI commands
// ABOUTME: Human-friendly commands for managing companies and members
package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/models"
)

// CompanyCommand routes `bizlink company <add|list|delete>`.
func CompanyCommand(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("company requires a subcommand (add, list, delete)")
	}
	switch args[0] {
	case "add":
		return addCompany(ctx, env, args[1:])
	case "list":
		return listCompanies(ctx, env, args[1:])
	case "delete":
		return deleteCompany(ctx, env, args[1:])
	default:
		return unknownSubcommand("company", args[0])
	}
}

func addCompany(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("company add")
	name := fs.String("name", "", "Company name (required)")
	industry := fs.String("industry", "", "Industry")
	website := fs.String("website", "", "Company website")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	company := &models.Company{Name: *name, Industry: *industry, Website: *website}
	if err := db.CreateCompany(ctx, env.DB, company); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	_, _ = fmt.Fprintf(stdout, "✓ Company created: %s (ID: %s)\n", company.Name, company.ID)
	if company.Industry != "" {
		_, _ = fmt.Fprintf(stdout, "  Industry: %s\n", company.Industry)
	}
	return nil
}

func listCompanies(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("company list")
	query := fs.String("query", "", "Search by name or industry")
	limit := fs.Int("limit", 50, "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	companies, err := db.FindCompanies(ctx, env.DB, *query, *limit)
	if err != nil {
		return fmt.Errorf("failed to find companies: %w", err)
	}

	if len(companies) == 0 {
		_, _ = fmt.Fprintln(stdout, "No companies found")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tINDUSTRY\tWEBSITE\tID")
	_, _ = fmt.Fprintln(w, "----\t--------\t-------\t--")
	for _, c := range companies {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, dash(c.Industry), dash(c.Website), c.ID)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(stdout, "\nTotal: %d company(ies)\n", len(companies))
	return nil
}

func deleteCompany(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("company delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "company")
	if err != nil {
		return err
	}

	company, err := db.GetCompany(ctx, env.DB, id)
	if err != nil {
		return fmt.Errorf("failed to get company: %w", err)
	}
	if company == nil {
		return fmt.Errorf("company not found: %s", id)
	}
	if err := db.DeleteCompany(ctx, env.DB, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	_, _ = fmt.Fprintf(stdout, "✓ Company deleted: %s\n", company.Name)
	return nil
}

// MemberCommand routes `bizlink member <add|list|show|set-status>`.
func MemberCommand(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("member requires a subcommand (add, list, show, set-status)")
	}
	switch args[0] {
	case "add":
		return addMember(ctx, env, args[1:])
	case "list":
		return listMembers(ctx, env, args[1:])
	case "show":
		return showMember(ctx, env, args[1:])
	case "set-status":
		return setMemberStatus(ctx, env, args[1:])
	default:
		return unknownSubcommand("member", args[0])
	}
}

func addMember(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("member add")
	name := fs.String("name", "", "Member name (required)")
	email := fs.String("email", "", "Email address")
	position := fs.String("position", "", "Job title")
	companyName := fs.String("company", "", "Company name (created if missing)")
	status := fs.String("status", string(models.MembershipActive), "Membership status (active, inactive, pending, suspended)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	membership := models.MembershipStatus(*status)
	if !membership.Valid() {
		return fmt.Errorf("invalid --status %q", *status)
	}

	user := &models.User{
		Name:             *name,
		Email:            *email,
		Position:         *position,
		IsActive:         membership == models.MembershipActive,
		MembershipStatus: membership,
	}

	if *companyName != "" {
		company, err := db.FindCompanyByName(ctx, env.DB, *companyName)
		if err != nil {
			return fmt.Errorf("failed to look up company: %w", err)
		}
		if company == nil {
			company = &models.Company{Name: *companyName}
			if err := db.CreateCompany(ctx, env.DB, company); err != nil {
				return fmt.Errorf("failed to create company: %w", err)
			}
		}
		user.CompanyID = &company.ID
	}

	if err := db.CreateUser(ctx, env.DB, user); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	_, _ = fmt.Fprintf(stdout, "✓ Member created: %s (ID: %s)\n", user.Name, user.ID)
	if *companyName != "" {
		_, _ = fmt.Fprintf(stdout, "  Company: %s\n", *companyName)
	}
	return nil
}

func listMembers(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("member list")
	query := fs.String("query", "", "Search by name or email")
	companyID := fs.String("company-id", "", "Only members of this company")
	limit := fs.Int("limit", 50, "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	company, err := parseOptionalID("company-id", *companyID)
	if err != nil {
		return err
	}

	users, err := db.FindUsers(ctx, env.DB, *query, company, *limit)
	if err != nil {
		return fmt.Errorf("failed to find members: %w", err)
	}

	if len(users) == 0 {
		_, _ = fmt.Fprintln(stdout, "No members found")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tPOSITION\tMEMBERSHIP\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t--------\t----------\t--")
	for _, u := range users {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			u.Name, dash(u.Email), dash(u.Position), display.StatusBadge(string(u.MembershipStatus), string(u.MembershipStatus)), u.ID)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(stdout, "\nTotal: %d member(s)\n", len(users))
	return nil
}

func showMember(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("member show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "member")
	if err != nil {
		return err
	}

	user, err := db.GetUser(ctx, env.DB, id)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}
	if user == nil {
		return fmt.Errorf("member not found: %s", id)
	}

	_, _ = fmt.Fprintf(stdout, "%s\n", user.Name)
	_, _ = fmt.Fprintf(stdout, "  ID:         %s\n", user.ID)
	_, _ = fmt.Fprintf(stdout, "  Email:      %s\n", dash(user.Email))
	_, _ = fmt.Fprintf(stdout, "  Position:   %s\n", dash(user.Position))
	_, _ = fmt.Fprintf(stdout, "  Membership: %s (active member: %t)\n", user.MembershipStatus, user.IsActiveMember())
	if user.CompanyID != nil {
		if company, err := db.GetCompany(ctx, env.DB, *user.CompanyID); err == nil && company != nil {
			_, _ = fmt.Fprintf(stdout, "  Company:    %s\n", company.Name)
		}
	}
	return nil
}

func setMemberStatus(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("member set-status")
	status := fs.String("status", "", "Membership status (active, inactive, pending, suspended)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, "member")
	if err != nil {
		return err
	}

	membership := models.MembershipStatus(*status)
	if !membership.Valid() {
		return fmt.Errorf("invalid --status %q", *status)
	}

	user, err := db.GetUser(ctx, env.DB, id)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}
	if user == nil {
		return fmt.Errorf("member not found: %s", id)
	}

	if err := db.SetMembership(ctx, env.DB, id, membership == models.MembershipActive, membership); err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}

	_, _ = fmt.Fprintf(stdout, "✓ %s is now %s\n", user.Name, membership)
	return nil
}
