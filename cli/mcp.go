// ABOUTME: MCP server subcommand
// ABOUTME: Registers every networking tool, resource and prompt and serves them on stdio
package cli

import (
	"context"
	"log"

	"github.com/harperreed/bizlink/handlers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer builds the server for the acting member. Every tool acts as env.Actor.
func NewMCPServer(env *Env, version string) (*mcp.Server, error) {
	actor, err := env.actor()
	if err != nil {
		return nil, err
	}

	directory := handlers.NewDirectoryHandlers(env.DB)
	connections := handlers.NewConnectionHandlers(env.Svc, actor)
	meetings := handlers.NewMeetingHandlers(env.Svc, actor)
	referrals := handlers.NewReferralHandlers(env.Svc, actor)
	recommendations := handlers.NewRecommendationHandlers(env.Svc, actor)
	followUps := handlers.NewFollowUpHandlers(env.Svc, actor)
	stats := handlers.NewStatsHandlers(env.Svc, actor)
	vizHandlers := handlers.NewVizHandlers(env.DB)
	resources := handlers.NewResourceHandlers(env.Svc, actor)
	prompts := handlers.NewPromptHandlers(env.Svc, actor)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "bizlink",
		Version: version,
	}, nil)

	// Directory
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_company",
		Description: "Add a company to the directory",
	}, directory.AddCompany)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_companies",
		Description: "Search companies by name or industry",
	}, directory.FindCompanies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_member",
		Description: "Add a member, optionally linking or creating their company",
	}, directory.AddMember)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_members",
		Description: "Search members by name, email or company",
	}, directory.FindMembers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_membership",
		Description: "Change a member's membership status",
	}, directory.SetMembership)

	// Connections
	mcp.AddTool(server, &mcp.Tool{
		Name:        "request_connection",
		Description: "Ask another member to connect",
	}, connections.RequestConnection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "respond_connection",
		Description: "Accept or decline a connection request addressed to you",
	}, connections.RespondConnection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_connection",
		Description: "Remove a connection you are part of",
	}, connections.RemoveConnection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_connections",
		Description: "List accepted connections, requests waiting on you, or requests you sent",
	}, connections.ListConnections)

	// Meetings
	mcp.AddTool(server, &mcp.Tool{
		Name:        "propose_meeting",
		Description: "Propose a one-to-one meeting with an active member",
	}, meetings.ProposeMeeting)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "accept_meeting",
		Description: "Accept a meeting request, optionally confirming date and location",
	}, meetings.AcceptMeeting)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "decline_meeting",
		Description: "Decline a pending meeting request",
	}, meetings.DeclineMeeting)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_meeting",
		Description: "Mark an accepted meeting as completed",
	}, meetings.CompleteMeeting)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cancel_meeting",
		Description: "Cancel an accepted meeting",
	}, meetings.CancelMeeting)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_meeting",
		Description: "Edit a pending or accepted meeting",
	}, meetings.UpdateMeeting)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_meeting",
		Description: "Delete a pending meeting you requested",
	}, meetings.RemoveMeeting)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_meeting",
		Description: "Show a meeting you take part in",
	}, meetings.GetMeeting)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_meetings",
		Description: "List your meetings with optional status, priority and time filters",
	}, meetings.ListMeetings)

	// Referral cards
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_referral",
		Description: "Draft a referral card for the other participant of a meeting",
	}, referrals.CreateReferral)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_referral",
		Description: "Edit a draft referral card",
	}, referrals.UpdateReferral)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_referral",
		Description: "Send a draft referral card",
	}, referrals.SendReferral)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "receive_referral",
		Description: "Acknowledge a referral card sent to you",
	}, referrals.ReceiveReferral)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_referral",
		Description: "Close a received referral card",
	}, referrals.CompleteReferral)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_referral",
		Description: "Delete a draft referral card",
	}, referrals.RemoveReferral)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_referral",
		Description: "Show a referral card you sent or received",
	}, referrals.GetReferral)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_referrals",
		Description: "List referral cards by direction, status or meeting",
	}, referrals.ListReferrals)

	// Recommendations
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_recommendation",
		Description: "Recommend one member to another",
	}, recommendations.CreateRecommendation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_recommendation",
		Description: "Edit a recommendation you made",
	}, recommendations.UpdateRecommendation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_contacted",
		Description: "Record that you contacted the member recommended to you",
	}, recommendations.MarkContacted)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_completed",
		Description: "Record the final outcome of a recommendation made to you",
	}, recommendations.MarkCompleted)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_recommendation",
		Description: "Delete a pending recommendation you made",
	}, recommendations.RemoveRecommendation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_recommendation",
		Description: "Show a recommendation you are a party to",
	}, recommendations.GetRecommendation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_recommendations",
		Description: "List recommendations you gave, received, or that are about you",
	}, recommendations.ListRecommendations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recommendation_network",
		Description: "Rank the most recommended members and the most active recommenders",
	}, recommendations.RecommendationNetwork)

	// Follow-ups
	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_follow_up",
		Description: "Log a meeting you had with another member",
	}, followUps.LogFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_follow_up",
		Description: "Edit one of your follow-up records",
	}, followUps.UpdateFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_follow_up",
		Description: "Delete one of your follow-up records",
	}, followUps.RemoveFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_follow_up",
		Description: "Show a follow-up you wrote or that is about you",
	}, followUps.GetFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_follow_ups",
		Description: "List your follow-ups by status, outcome or member",
	}, followUps.ListFollowUps)

	// Stats and history
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stats",
		Description: "Dashboard counters across meetings, referrals, recommendations and follow-ups",
	}, stats.GetStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_history",
		Description: "Show the recorded transitions of an entity you can see",
	}, stats.GetHistory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recent_activity",
		Description: "Show your most recent actions",
	}, stats.RecentActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "network_graph",
		Description: "Render the member network as Graphviz DOT, optionally around one member",
	}, vizHandlers.NetworkGraph)

	for _, r := range resources.Resources() {
		server.AddResource(r, resources.ReadResource)
	}
	server.AddResourceTemplate(resources.MeetingTemplate(), resources.ReadResource)

	for _, p := range prompts.Prompts() {
		server.AddPrompt(p, prompts.GetPrompt)
	}

	return server, nil
}

// MCPCommand starts the MCP server on stdio
func MCPCommand(ctx context.Context, env *Env, version string) error {
	server, err := NewMCPServer(env, version)
	if err != nil {
		return err
	}

	log.Printf("Starting bizlink MCP server as %s...", env.Actor)
	return server.Run(ctx, &mcp.StdioTransport{})
}
