// ABOUTME: Dashboard and audit trail MCP tool handlers
// ABOUTME: Implements get_stats, get_history and recent_activity tools
package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type StatsHandlers struct {
	session
}

func NewStatsHandlers(svc *network.Service, actor uuid.UUID) *StatsHandlers {
	return &StatsHandlers{session{svc: svc, actor: actor}}
}

type GetStatsInput struct{}

type StatsOutput struct {
	Meetings        db.MeetingStats        `json:"meetings"`
	Referrals       db.ReferralStats       `json:"referrals"`
	Recommendations db.RecommendationStats `json:"recommendations"`
	FollowUps       db.FollowUpStats       `json:"follow_ups"`
}

func (h *StatsHandlers) GetStats(ctx context.Context, _ *mcp.CallToolRequest, _ GetStatsInput) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := h.svc.Stats.For(ctx, h.actor)
	if err != nil {
		return nil, StatsOutput{}, toolError(err)
	}
	return nil, StatsOutput{
		Meetings:        *stats.Meetings,
		Referrals:       *stats.Referrals,
		Recommendations: *stats.Recommendations,
		FollowUps:       *stats.FollowUps,
	}, nil
}

type ActivityOutput struct {
	ID         string `json:"id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	ActorID    string `json:"actor_id"`
	Action     string `json:"action"`
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type GetHistoryInput struct {
	EntityType string `json:"entity_type" jsonschema:"connection, meeting, referral_card, recommendation or follow_up"`
	EntityID   string `json:"entity_id" jsonschema:"ID of the entity (required)"`
}

type HistoryOutput struct {
	Entries []ActivityOutput `json:"entries"`
}

// GetHistory shows the transitions of an entity the actor can see.
func (h *StatsHandlers) GetHistory(ctx context.Context, _ *mcp.CallToolRequest, input GetHistoryInput) (*mcp.CallToolResult, HistoryOutput, error) {
	id, err := parseID("entity_id", input.EntityID)
	if err != nil {
		return nil, HistoryOutput{}, err
	}
	entries, err := h.svc.HistoryFor(ctx, h.actor, input.EntityType, id)
	if err != nil {
		return nil, HistoryOutput{}, toolError(err)
	}
	return nil, HistoryOutput{Entries: activitiesToOutput(entries)}, nil
}

type RecentActivityInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of entries (default 20)"`
}

func (h *StatsHandlers) RecentActivity(ctx context.Context, _ *mcp.CallToolRequest, input RecentActivityInput) (*mcp.CallToolResult, HistoryOutput, error) {
	entries, err := db.ListActivityByActor(ctx, h.svc.DB(), h.actor, input.Limit)
	if err != nil {
		return nil, HistoryOutput{}, fmt.Errorf("failed to load activity: %w", err)
	}
	return nil, HistoryOutput{Entries: activitiesToOutput(entries)}, nil
}

func activitiesToOutput(entries []models.Activity) []ActivityOutput {
	out := make([]ActivityOutput, len(entries))
	for i, a := range entries {
		out[i] = ActivityOutput{
			ID:         a.ID,
			EntityType: a.EntityType,
			EntityID:   a.EntityID.String(),
			ActorID:    a.ActorID.String(),
			Action:     a.Action,
			FromStatus: a.FromStatus,
			ToStatus:   a.ToStatus,
			OccurredAt: formatTime(a.OccurredAt),
		}
	}
	return out
}
