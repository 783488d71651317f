// ABOUTME: Detail view for a single inbox item
// ABOUTME: Shows every field of the item with accept and decline shortcuts
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) renderDetailView() string {
	item, ok := m.selected()
	if !ok {
		return "Nothing selected"
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("%s from %s", strings.ToUpper(string(item.Kind)), item.From)))
	s.WriteString("\n\n")
	s.WriteString(item.Summary)
	s.WriteString("\n\n")
	for _, line := range item.Details {
		s.WriteString("  " + line + "\n")
	}
	s.WriteString(fmt.Sprintf("\n  ID: %s\n", item.ID))

	s.WriteString(m.renderStatus())
	s.WriteString(helpStyle.Render(strings.Join([]string{actionHelp(item.Kind), "Esc: Back", "q: Quit"}, " • ")))
	return s.String()
}

func actionHelp(k Kind) string {
	switch k {
	case KindConnection, KindMeeting:
		return "a: Accept • d: Decline"
	case KindReferral:
		return "a: Mark received"
	case KindRecommendation:
		return "a: Mark contacted"
	default:
		return "No quick actions"
	}
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.viewMode = ViewList
	case "a", "d":
		if item, ok := m.selected(); ok {
			return m, m.act(item, msg.String() == "a")
		}
	}
	return m, nil
}
