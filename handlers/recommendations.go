// ABOUTME: Business recommendation MCP tool handlers
// ABOUTME: Implements create, update, mark_contacted, mark_completed, remove, list and network tools
package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/display"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type RecommendationHandlers struct {
	session
}

func NewRecommendationHandlers(svc *network.Service, actor uuid.UUID) *RecommendationHandlers {
	return &RecommendationHandlers{session{svc: svc, actor: actor}}
}

type RecommendationOutput struct {
	ID                  string   `json:"id"`
	RecommenderID       string   `json:"recommender_id"`
	RecommendedToID     string   `json:"recommended_to_id"`
	RecommendedUserID   string   `json:"recommended_user_id"`
	MyRole              string   `json:"my_role"`
	RecommendationDate  string   `json:"recommendation_date"`
	BusinessDescription string   `json:"business_description"`
	WhyRecommended      string   `json:"why_recommended"`
	RecommendationType  string   `json:"recommendation_type"`
	PriorityLevel       string   `json:"priority_level"`
	PriorityColor       string   `json:"priority_color"`
	Status              string   `json:"status"`
	StatusText          string   `json:"status_text"`
	FollowUpNotes       string   `json:"follow_up_notes,omitempty"`
	OutcomeNotes        string   `json:"outcome_notes,omitempty"`
	Tags                []string `json:"tags,omitempty"`
	IsMutual            bool     `json:"is_mutual"`
	EstimatedValue      *int64   `json:"estimated_value,omitempty"`
	ContactedAt         *string  `json:"contacted_at,omitempty"`
	CompletedAt         *string  `json:"completed_at,omitempty"`
	CreatedAt           string   `json:"created_at"`
}

type CreateRecommendationInput struct {
	RecommendedToID     string   `json:"recommended_to_id" jsonschema:"Member receiving the recommendation (required)"`
	RecommendedUserID   string   `json:"recommended_user_id" jsonschema:"Member being recommended (required)"`
	RecommendationDate  string   `json:"recommendation_date,omitempty" jsonschema:"Date (RFC3339, defaults to now)"`
	BusinessDescription string   `json:"business_description" jsonschema:"What the recommended member does (required)"`
	WhyRecommended      string   `json:"why_recommended" jsonschema:"Why you recommend them (required)"`
	RecommendationType  string   `json:"recommendation_type,omitempty" jsonschema:"business_opportunity (default), service_provider, potential_client, partnership or other"`
	PriorityLevel       string   `json:"priority_level,omitempty" jsonschema:"low, medium (default), high or urgent"`
	Tags                []string `json:"tags,omitempty" jsonschema:"Free-form tags"`
	IsMutual            bool     `json:"is_mutual,omitempty" jsonschema:"Whether the recommendation goes both ways"`
	EstimatedValue      *int64   `json:"estimated_value,omitempty" jsonschema:"Estimated value in cents"`
}

func (h *RecommendationHandlers) CreateRecommendation(ctx context.Context, _ *mcp.CallToolRequest, input CreateRecommendationInput) (*mcp.CallToolResult, RecommendationOutput, error) {
	to, err := parseID("recommended_to_id", input.RecommendedToID)
	if err != nil {
		return nil, RecommendationOutput{}, err
	}
	about, err := parseID("recommended_user_id", input.RecommendedUserID)
	if err != nil {
		return nil, RecommendationOutput{}, err
	}
	date, err := parseOptionalTime("recommendation_date", input.RecommendationDate)
	if err != nil {
		return nil, RecommendationOutput{}, err
	}

	d := network.RecommendationDraft{
		RecommendedToID:     to,
		RecommendedUserID:   about,
		BusinessDescription: input.BusinessDescription,
		WhyRecommended:      input.WhyRecommended,
		RecommendationType:  models.RecommendationType(input.RecommendationType),
		PriorityLevel:       models.Priority(input.PriorityLevel),
		Tags:                input.Tags,
		IsMutual:            input.IsMutual,
		EstimatedValue:      input.EstimatedValue,
	}
	if date != nil {
		d.RecommendationDate = *date
	} else {
		d.RecommendationDate = network.SystemClock.Now()
	}

	rec, err := h.svc.Recommendations.Create(ctx, h.actor, d)
	if err != nil {
		return nil, RecommendationOutput{}, toolError(err)
	}
	return nil, recommendationToOutput(rec, h.actor), nil
}

type UpdateRecommendationInput struct {
	RecommendationID    string   `json:"recommendation_id" jsonschema:"Recommendation ID (required)"`
	BusinessDescription string   `json:"business_description,omitempty" jsonschema:"New description"`
	WhyRecommended      string   `json:"why_recommended,omitempty" jsonschema:"New reason"`
	RecommendationType  string   `json:"recommendation_type,omitempty" jsonschema:"New type"`
	PriorityLevel       string   `json:"priority_level,omitempty" jsonschema:"New priority"`
	Tags                []string `json:"tags,omitempty" jsonschema:"Replace the tags"`
	IsMutual            *bool    `json:"is_mutual,omitempty" jsonschema:"Mutual flag"`
	EstimatedValue      *int64   `json:"estimated_value,omitempty" jsonschema:"Estimated value in cents"`
}

func (h *RecommendationHandlers) UpdateRecommendation(ctx context.Context, _ *mcp.CallToolRequest, input UpdateRecommendationInput) (*mcp.CallToolResult, RecommendationOutput, error) {
	id, err := parseID("recommendation_id", input.RecommendationID)
	if err != nil {
		return nil, RecommendationOutput{}, err
	}
	u := network.RecommendationUpdate{
		BusinessDescription: optString(input.BusinessDescription),
		WhyRecommended:      optString(input.WhyRecommended),
		Tags:                input.Tags,
		IsMutual:            input.IsMutual,
		EstimatedValue:      input.EstimatedValue,
	}
	if input.RecommendationType != "" {
		t := models.RecommendationType(input.RecommendationType)
		u.RecommendationType = &t
	}
	if input.PriorityLevel != "" {
		p := models.Priority(input.PriorityLevel)
		u.PriorityLevel = &p
	}

	rec, err := h.svc.Recommendations.Update(ctx, id, h.actor, u)
	if err != nil {
		return nil, RecommendationOutput{}, toolError(err)
	}
	return nil, recommendationToOutput(rec, h.actor), nil
}

type MarkContactedInput struct {
	RecommendationID string `json:"recommendation_id" jsonschema:"Recommendation ID (required)"`
	Notes            string `json:"notes,omitempty" jsonschema:"How the contact went"`
}

func (h *RecommendationHandlers) MarkContacted(ctx context.Context, _ *mcp.CallToolRequest, input MarkContactedInput) (*mcp.CallToolResult, RecommendationOutput, error) {
	id, err := parseID("recommendation_id", input.RecommendationID)
	if err != nil {
		return nil, RecommendationOutput{}, err
	}
	rec, err := h.svc.Recommendations.MarkContacted(ctx, id, h.actor, optString(input.Notes))
	if err != nil {
		return nil, RecommendationOutput{}, toolError(err)
	}
	return nil, recommendationToOutput(rec, h.actor), nil
}

type MarkCompletedInput struct {
	RecommendationID string `json:"recommendation_id" jsonschema:"Recommendation ID (required)"`
	Outcome          string `json:"outcome" jsonschema:"business_done, not_interested or no_response"`
	OutcomeNotes     string `json:"outcome_notes,omitempty" jsonschema:"What happened"`
	EstimatedValue   *int64 `json:"estimated_value,omitempty" jsonschema:"Value of the business done, in cents"`
}

func (h *RecommendationHandlers) MarkCompleted(ctx context.Context, _ *mcp.CallToolRequest, input MarkCompletedInput) (*mcp.CallToolResult, RecommendationOutput, error) {
	id, err := parseID("recommendation_id", input.RecommendationID)
	if err != nil {
		return nil, RecommendationOutput{}, err
	}
	rec, err := h.svc.Recommendations.MarkCompleted(ctx, id, h.actor,
		models.RecommendationStatus(input.Outcome), optString(input.OutcomeNotes), input.EstimatedValue)
	if err != nil {
		return nil, RecommendationOutput{}, toolError(err)
	}
	return nil, recommendationToOutput(rec, h.actor), nil
}

type RecommendationIDInput struct {
	RecommendationID string `json:"recommendation_id" jsonschema:"Recommendation ID (required)"`
}

func (h *RecommendationHandlers) RemoveRecommendation(ctx context.Context, _ *mcp.CallToolRequest, input RecommendationIDInput) (*mcp.CallToolResult, RemovedOutput, error) {
	id, err := parseID("recommendation_id", input.RecommendationID)
	if err != nil {
		return nil, RemovedOutput{}, err
	}
	if err := h.svc.Recommendations.Remove(ctx, id, h.actor); err != nil {
		return nil, RemovedOutput{}, toolError(err)
	}
	return nil, RemovedOutput{ID: id.String(), Removed: true}, nil
}

func (h *RecommendationHandlers) GetRecommendation(ctx context.Context, _ *mcp.CallToolRequest, input RecommendationIDInput) (*mcp.CallToolResult, RecommendationOutput, error) {
	id, err := parseID("recommendation_id", input.RecommendationID)
	if err != nil {
		return nil, RecommendationOutput{}, err
	}
	rec, err := h.svc.Recommendations.Get(ctx, id, h.actor)
	if err != nil {
		return nil, RecommendationOutput{}, toolError(err)
	}
	return nil, recommendationToOutput(rec, h.actor), nil
}

type ListRecommendationsInput struct {
	Direction string `json:"direction,omitempty" jsonschema:"given, received, about_me or all (default)"`
	Status    string `json:"status,omitempty" jsonschema:"Filter by status"`
}

type ListRecommendationsOutput struct {
	Recommendations []RecommendationOutput `json:"recommendations"`
}

func (h *RecommendationHandlers) ListRecommendations(ctx context.Context, _ *mcp.CallToolRequest, input ListRecommendationsInput) (*mcp.CallToolResult, ListRecommendationsOutput, error) {
	recs, err := h.svc.Recommendations.List(ctx, h.actor,
		db.RecommendationDirection(input.Direction), models.RecommendationStatus(input.Status))
	if err != nil {
		return nil, ListRecommendationsOutput{}, toolError(err)
	}

	result := make([]RecommendationOutput, len(recs))
	for i := range recs {
		result[i] = recommendationToOutput(&recs[i], h.actor)
	}
	return nil, ListRecommendationsOutput{Recommendations: result}, nil
}

type NetworkInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"How many members per ranking (default 10)"`
}

type RankedMember struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

type NetworkOutput struct {
	MostRecommended []RankedMember `json:"most_recommended"`
	TopRecommenders []RankedMember `json:"top_recommenders"`
}

func (h *RecommendationHandlers) RecommendationNetwork(ctx context.Context, _ *mcp.CallToolRequest, input NetworkInput) (*mcp.CallToolResult, NetworkOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}
	net, err := h.svc.Recommendations.Network(ctx, limit)
	if err != nil {
		return nil, NetworkOutput{}, toolError(err)
	}
	return nil, NetworkOutput{
		MostRecommended: rankedMembers(net.MostRecommended),
		TopRecommenders: rankedMembers(net.TopRecommenders),
	}, nil
}

func rankedMembers(counts []db.UserCount) []RankedMember {
	out := make([]RankedMember, len(counts))
	for i, c := range counts {
		out[i] = RankedMember{MemberID: c.UserID.String(), Name: c.Name, Count: c.Count}
	}
	return out
}

func recommendationToOutput(r *models.Recommendation, actor uuid.UUID) RecommendationOutput {
	return RecommendationOutput{
		ID:                  r.ID.String(),
		RecommenderID:       r.RecommenderID.String(),
		RecommendedToID:     r.RecommendedToID.String(),
		RecommendedUserID:   r.RecommendedUserID.String(),
		MyRole:              network.RoleOf(r, actor).String(),
		RecommendationDate:  formatTime(r.RecommendationDate),
		BusinessDescription: r.BusinessDescription,
		WhyRecommended:      r.WhyRecommended,
		RecommendationType:  string(r.RecommendationType),
		PriorityLevel:       string(r.PriorityLevel),
		PriorityColor:       display.PriorityColor(r.PriorityLevel),
		Status:              string(r.Status),
		StatusText:          display.RecommendationStatusText(r.Status),
		FollowUpNotes:       r.FollowUpNotes,
		OutcomeNotes:        r.OutcomeNotes,
		Tags:                r.Tags,
		IsMutual:            r.IsMutual,
		EstimatedValue:      r.EstimatedValue,
		ContactedAt:         formatOptionalTime(r.ContactedAt),
		CompletedAt:         formatOptionalTime(r.CompletedAt),
		CreatedAt:           formatTime(r.CreatedAt),
	}
}
