// ABOUTME: Inbox list view with kind tabs
// ABOUTME: Renders the table of waiting items and handles list navigation
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var listColumns = []table.Column{
	{Title: "Kind", Width: 15},
	{Title: "From", Width: 20},
	{Title: "Summary", Width: 45},
	{Title: "Date", Width: 10},
}

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("BIZLINK INBOX (%d waiting)", len(m.items))))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if len(m.visible) == 0 {
		s.WriteString("Nothing is waiting here.")
	} else {
		s.WriteString(m.table.View())
	}
	s.WriteString("\n")

	s.WriteString(m.renderStatus())
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	counts := map[Kind]int{}
	for _, item := range m.items {
		counts[item.Kind]++
	}

	var rendered []string
	for i := 0; i <= len(Kinds); i++ {
		label := fmt.Sprintf("All (%d)", len(m.items))
		if i < len(Kinds) {
			label = fmt.Sprintf("%ss (%d)", Kinds[i], counts[Kinds[i]])
		}
		if i == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return "\n" + errorStyle.Render("Error: "+m.err.Error())
	}
	if m.status != "" {
		return "\n" + statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch kind",
		"Enter: Details",
		"a: Accept/Ack",
		"d: Decline",
		"g: Refresh",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.tab = (m.tab + 1) % (len(Kinds) + 1)
		m.table.SetCursor(0)
		m.applyTab()
		return m, nil
	case "shift+tab":
		m.tab = (m.tab + len(Kinds)) % (len(Kinds) + 1)
		m.table.SetCursor(0)
		m.applyTab()
		return m, nil
	case "enter":
		if _, ok := m.selected(); ok {
			m.viewMode = ViewDetail
		}
		return m, nil
	case "g":
		m.status, m.err = "", nil
		m.refresh()
		return m, nil
	case "a", "d":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.act(item, msg.String() == "a")
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
