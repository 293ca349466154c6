package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/projecthub/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavModel_EntriesFollowRole(t *testing.T) {
	s := createTestStore(t)

	pm := NewNavModel(login(t, s, "pm@demo.com"), 3)
	assert.Len(t, pm.list.Items(), 7)
	assert.Contains(t, pm.View(), "Notifications (3 unread)")

	member := NewNavModel(login(t, s, "member1@demo.com"), 0)
	assert.Len(t, member.list.Items(), 5)
	view := member.View()
	assert.NotContains(t, view, "Drafts")
	assert.NotContains(t, view, "unread")

	exec := NewNavModel(login(t, s, "exec@demo.com"), 0)
	assert.Len(t, exec.list.Items(), 6)
}

func TestNavModel_Select(t *testing.T) {
	s := createTestStore(t)
	m := NewNavModel(login(t, s, "pm@demo.com"), 0)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, NavSelectedMsg{Screen: session.ScreenDashboard}, cmd())

	_, cmd = m.Update(runes("3"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavSelectedMsg{Screen: session.ScreenMyTasks}, cmd())
}

func TestNavModel_Quit(t *testing.T) {
	s := createTestStore(t)
	m := NewNavModel(login(t, s, "pm@demo.com"), 0)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, QuitMsg{}, cmd())
}
