// ABOUTME: Terminal inbox using the bubbletea framework
// ABOUTME: Lists what is waiting on the member and answers it with single keys
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/harperreed/bizlink/network"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// Model is the main bubbletea model
type Model struct {
	ctx   context.Context
	svc   *network.Service
	actor uuid.UUID

	viewMode ViewMode
	tab      int // index into Kinds, or len(Kinds) for everything
	items    []Item
	visible  []Item
	table    table.Model

	status string
	err    error

	width  int
	height int
}

// NewModel creates the inbox model and loads the first snapshot.
func NewModel(ctx context.Context, svc *network.Service, actor uuid.UUID) Model {
	t := table.New(
		table.WithColumns(listColumns),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	styles := table.DefaultStyles()
	styles.Selected = selectedStyle
	t.SetStyles(styles)

	m := Model{
		ctx:    ctx,
		svc:    svc,
		actor:  actor,
		tab:    len(Kinds),
		table:  t,
		width:  100,
		height: 24,
	}
	m.refresh()
	return m
}

// Run opens the inbox full screen until the member quits.
func Run(ctx context.Context, svc *network.Service, actor uuid.UUID) error {
	p := tea.NewProgram(NewModel(ctx, svc, actor), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 10; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil
	case actionDoneMsg:
		m.status, m.err = msg.status, msg.err
		m.viewMode = ViewList
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewDetail:
		return m.renderDetailView()
	default:
		return m.renderListView()
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	}
	return m, nil
}

// refresh reloads the inbox and rebuilds the visible rows.
func (m *Model) refresh() {
	inbox, err := m.svc.Inbox(m.ctx, m.actor)
	if err != nil {
		m.err = err
		return
	}
	m.items = Items(m.ctx, m.svc.DB(), inbox)
	m.applyTab()
}

func (m *Model) applyTab() {
	m.visible = nil
	for _, item := range m.items {
		if m.tab == len(Kinds) || item.Kind == Kinds[m.tab] {
			m.visible = append(m.visible, item)
		}
	}
	rows := make([]table.Row, len(m.visible))
	for i, item := range m.visible {
		rows[i] = table.Row{string(item.Kind), item.From, item.Summary, item.When.Format("2006-01-02")}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// selected returns the highlighted item, if any.
func (m Model) selected() (Item, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return Item{}, false
	}
	return m.visible[i], true
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
