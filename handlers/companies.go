// ABOUTME: Directory MCP tool handlers for companies and members
// ABOUTME: Implements add_company, find_companies, add_member, find_members and set_membership tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DirectoryHandlers struct {
	db *sql.DB
}

func NewDirectoryHandlers(database *sql.DB) *DirectoryHandlers {
	return &DirectoryHandlers{db: database}
}

type AddCompanyInput struct {
	Name     string `json:"name" jsonschema:"Company name (required)"`
	Industry string `json:"industry,omitempty" jsonschema:"Industry or sector"`
	Website  string `json:"website,omitempty" jsonschema:"Company website"`
}

type CompanyOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Industry  string `json:"industry,omitempty"`
	Website   string `json:"website,omitempty"`
	CreatedAt string `json:"created_at"`
}

func (h *DirectoryHandlers) AddCompany(ctx context.Context, _ *mcp.CallToolRequest, input AddCompanyInput) (*mcp.CallToolResult, CompanyOutput, error) {
	if input.Name == "" {
		return nil, CompanyOutput{}, fmt.Errorf("name is required")
	}

	company := &models.Company{Name: input.Name, Industry: input.Industry, Website: input.Website}
	if err := db.CreateCompany(ctx, h.db, company); err != nil {
		return nil, CompanyOutput{}, fmt.Errorf("failed to create company: %w", err)
	}
	return nil, companyToOutput(company), nil
}

type FindCompaniesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (searches name and industry)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindCompaniesOutput struct {
	Companies []CompanyOutput `json:"companies"`
}

func (h *DirectoryHandlers) FindCompanies(ctx context.Context, _ *mcp.CallToolRequest, input FindCompaniesInput) (*mcp.CallToolResult, FindCompaniesOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	companies, err := db.FindCompanies(ctx, h.db, input.Query, limit)
	if err != nil {
		return nil, FindCompaniesOutput{}, fmt.Errorf("failed to find companies: %w", err)
	}

	result := make([]CompanyOutput, len(companies))
	for i := range companies {
		result[i] = companyToOutput(&companies[i])
	}
	return nil, FindCompaniesOutput{Companies: result}, nil
}

func companyToOutput(company *models.Company) CompanyOutput {
	return CompanyOutput{
		ID:        company.ID.String(),
		Name:      company.Name,
		Industry:  company.Industry,
		Website:   company.Website,
		CreatedAt: formatTime(company.CreatedAt),
	}
}

type AddMemberInput struct {
	Name        string `json:"name" jsonschema:"Member name (required)"`
	Email       string `json:"email,omitempty" jsonschema:"Email address"`
	Position    string `json:"position,omitempty" jsonschema:"Job title"`
	CompanyName string `json:"company_name,omitempty" jsonschema:"Company name (will be looked up or created)"`
	Active      bool   `json:"active,omitempty" jsonschema:"Activate the membership immediately"`
}

type MemberOutput struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email,omitempty"`
	Position         string  `json:"position,omitempty"`
	CompanyID        *string `json:"company_id,omitempty"`
	IsActive         bool    `json:"is_active"`
	MembershipStatus string  `json:"membership_status"`
	ActiveMember     bool    `json:"active_member"`
}

func (h *DirectoryHandlers) AddMember(ctx context.Context, _ *mcp.CallToolRequest, input AddMemberInput) (*mcp.CallToolResult, MemberOutput, error) {
	if input.Name == "" {
		return nil, MemberOutput{}, fmt.Errorf("name is required")
	}

	user := &models.User{Name: input.Name, Email: input.Email, Position: input.Position, IsActive: true}
	if input.Active {
		user.MembershipStatus = models.MembershipActive
	}

	if input.CompanyName != "" {
		company, err := db.FindCompanyByName(ctx, h.db, input.CompanyName)
		if err != nil {
			return nil, MemberOutput{}, fmt.Errorf("failed to lookup company: %w", err)
		}
		if company == nil {
			company = &models.Company{Name: input.CompanyName}
			if err := db.CreateCompany(ctx, h.db, company); err != nil {
				return nil, MemberOutput{}, fmt.Errorf("failed to create company: %w", err)
			}
		}
		user.CompanyID = &company.ID
	}

	if err := db.CreateUser(ctx, h.db, user); err != nil {
		return nil, MemberOutput{}, fmt.Errorf("failed to create member: %w", err)
	}
	return nil, memberToOutput(user), nil
}

type FindMembersInput struct {
	Query     string `json:"query,omitempty" jsonschema:"Search query (searches name and email)"`
	CompanyID string `json:"company_id,omitempty" jsonschema:"Filter by company ID"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindMembersOutput struct {
	Members []MemberOutput `json:"members"`
}

func (h *DirectoryHandlers) FindMembers(ctx context.Context, _ *mcp.CallToolRequest, input FindMembersInput) (*mcp.CallToolResult, FindMembersOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}
	companyID, err := parseOptionalID("company_id", input.CompanyID)
	if err != nil {
		return nil, FindMembersOutput{}, err
	}

	users, err := db.FindUsers(ctx, h.db, input.Query, companyID, limit)
	if err != nil {
		return nil, FindMembersOutput{}, fmt.Errorf("failed to find members: %w", err)
	}

	result := make([]MemberOutput, len(users))
	for i := range users {
		result[i] = memberToOutput(&users[i])
	}
	return nil, FindMembersOutput{Members: result}, nil
}

type SetMembershipInput struct {
	MemberID string `json:"member_id" jsonschema:"Member ID (required)"`
	Status   string `json:"status" jsonschema:"Membership status: active, inactive, pending or suspended"`
	IsActive *bool  `json:"is_active,omitempty" jsonschema:"Account enabled flag (default true)"`
}

func (h *DirectoryHandlers) SetMembership(ctx context.Context, _ *mcp.CallToolRequest, input SetMembershipInput) (*mcp.CallToolResult, MemberOutput, error) {
	id, err := parseID("member_id", input.MemberID)
	if err != nil {
		return nil, MemberOutput{}, err
	}
	status := models.MembershipStatus(input.Status)
	if !status.Valid() {
		return nil, MemberOutput{}, fmt.Errorf("invalid status %q", input.Status)
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	user, err := db.GetUser(ctx, h.db, id)
	if err != nil {
		return nil, MemberOutput{}, fmt.Errorf("failed to get member: %w", err)
	}
	if user == nil {
		return nil, MemberOutput{}, fmt.Errorf("member not found")
	}
	if err := db.SetMembership(ctx, h.db, id, isActive, status); err != nil {
		return nil, MemberOutput{}, fmt.Errorf("failed to update membership: %w", err)
	}

	user.IsActive = isActive
	user.MembershipStatus = status
	return nil, memberToOutput(user), nil
}

func memberToOutput(u *models.User) MemberOutput {
	return MemberOutput{
		ID:               u.ID.String(),
		Name:             u.Name,
		Email:            u.Email,
		Position:         u.Position,
		CompanyID:        formatOptionalID(u.CompanyID),
		IsActive:         u.IsActive,
		MembershipStatus: string(u.MembershipStatus),
		ActiveMember:     u.IsActiveMember(),
	}
}
