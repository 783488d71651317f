package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 4, 15, 30, 0, 0, time.UTC)

func setupService(t *testing.T) *network.Service {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return network.New(database, network.WithClock(network.FixedClock(testNow)))
}

func seedMember(t *testing.T, svc *network.Service, name string) uuid.UUID {
	t.Helper()
	u := &models.User{Name: name, IsActive: true, MembershipStatus: models.MembershipActive}
	require.NoError(t, db.CreateUser(context.Background(), svc.DB(), u))
	return u.ID
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds a key and runs any returned command back through Update.
func press(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, cmd := m.Update(key(s))
	m = next.(Model)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			if _, ok := msg.(actionDoneMsg); ok {
				next, _ = m.Update(msg)
				m = next.(Model)
			}
		}
	}
	return m
}

func seedInbox(t *testing.T, svc *network.Service) (alice, bob, carol uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	alice = seedMember(t, svc, "Alice")
	bob = seedMember(t, svc, "Bob")
	carol = seedMember(t, svc, "Carol")

	_, err := svc.Connections.Request(ctx, bob, alice, "met at the breakfast")
	require.NoError(t, err)
	_, err = svc.Meetings.Propose(ctx, carol, network.MeetingProposal{
		RequestedID: alice,
		MeetingDate: testNow.Add(48 * time.Hour),
		Purpose:     "Coffee",
	})
	require.NoError(t, err)
	return alice, bob, carol
}

func TestItemsOrderedByKind(t *testing.T) {
	svc := setupService(t)
	alice, _, _ := seedInbox(t, svc)

	inbox, err := svc.Inbox(context.Background(), alice)
	require.NoError(t, err)
	items := Items(context.Background(), svc.DB(), inbox)

	require.Len(t, items, 2)
	assert.Equal(t, KindConnection, items[0].Kind)
	assert.Equal(t, "Bob", items[0].From)
	assert.Equal(t, "met at the breakfast", items[0].Summary)
	assert.Equal(t, KindMeeting, items[1].Kind)
	assert.Equal(t, "Carol", items[1].From)
	assert.Contains(t, items[1].Details, "Type: In person")
}

func TestTabsFilterRows(t *testing.T) {
	svc := setupService(t)
	alice, _, _ := seedInbox(t, svc)

	m := NewModel(context.Background(), svc, alice)
	assert.Len(t, m.visible, 2)
	assert.Contains(t, m.View(), "BIZLINK INBOX (2 waiting)")

	m = press(t, m, "tab")
	require.Len(t, m.visible, 1)
	assert.Equal(t, KindConnection, m.visible[0].Kind)

	m = press(t, m, "tab")
	require.Len(t, m.visible, 1)
	assert.Equal(t, KindMeeting, m.visible[0].Kind)

	m = press(t, m, "tab")
	assert.Empty(t, m.visible)
	assert.Contains(t, m.View(), "Nothing is waiting here.")
}

func TestAcceptFromInbox(t *testing.T) {
	svc := setupService(t)
	alice, bob, _ := seedInbox(t, svc)
	ctx := context.Background()

	m := NewModel(ctx, svc, alice)
	m = press(t, m, "enter")
	assert.Equal(t, ViewDetail, m.viewMode)
	assert.Contains(t, m.View(), "CONNECTION from Bob")

	m = press(t, m, "a")
	require.NoError(t, m.err)
	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, "Connected with Bob", m.status)
	require.Len(t, m.items, 1)
	assert.Equal(t, KindMeeting, m.items[0].Kind)

	accepted, err := svc.Connections.ListAccepted(ctx, alice)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, bob, accepted[0].RequesterID)

	m = press(t, m, "d")
	require.NoError(t, m.err)
	assert.Empty(t, m.items)
}

func TestQuit(t *testing.T) {
	svc := setupService(t)
	alice := seedMember(t, svc, "Alice")

	m := NewModel(context.Background(), svc, alice)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
