// ABOUTME: Quick actions run from the inbox
// ABOUTME: Maps accept and decline keys onto the network services
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/bizlink/network"
)

// actionDoneMsg reports the result of a quick action back to Update.
type actionDoneMsg struct {
	status string
	err    error
}

// act answers item. positive is "a", otherwise "d". Kinds without a
// matching action report that instead of failing.
func (m Model) act(item Item, positive bool) tea.Cmd {
	ctx, svc, actor := m.ctx, m.svc, m.actor
	return func() tea.Msg {
		var err error
		status := ""
		switch {
		case item.Kind == KindConnection && positive:
			_, err = svc.Connections.Respond(ctx, item.ID, actor, network.DecisionAccept)
			status = "Connected with " + item.From
		case item.Kind == KindConnection:
			_, err = svc.Connections.Respond(ctx, item.ID, actor, network.DecisionDecline)
			status = "Declined connection from " + item.From
		case item.Kind == KindMeeting && positive:
			_, err = svc.Meetings.Accept(ctx, item.ID, actor, network.AcceptOptions{})
			status = "Accepted meeting with " + item.From
		case item.Kind == KindMeeting:
			_, err = svc.Meetings.Decline(ctx, item.ID, actor, "")
			status = "Declined meeting with " + item.From
		case item.Kind == KindReferral && positive:
			_, err = svc.Referrals.MarkReceived(ctx, item.ID, actor)
			status = "Referral from " + item.From + " marked received"
		case item.Kind == KindRecommendation && positive:
			_, err = svc.Recommendations.MarkContacted(ctx, item.ID, actor, nil)
			status = "Recommendation marked contacted"
		default:
			status = "No quick action for this " + string(item.Kind)
		}
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: status}
	}
}
