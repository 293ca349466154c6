package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/projecthub/internal/session"
	"github.com/robby/projecthub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 4, 5, 12, 0, 0, 0, time.UTC)
}

func login(t *testing.T, s *store.Store, email string) session.Session {
	t.Helper()
	sess, err := session.Login(s.Users(), session.Credentials{Email: email, Password: "demo"})
	require.NoError(t, err)
	return sess
}

// drive feeds msg to the app and then every message produced by the returned
// command, ignoring batches and commands that block on the terminal.
func drive(t *testing.T, app AppModel, msg tea.Msg) AppModel {
	t.Helper()
	model, cmd := app.Update(msg)
	app = model.(AppModel)
	if cmd == nil {
		return app
	}
	switch next := cmd().(type) {
	case LoggedInMsg, NavSelectedMsg, ProjectSelectedMsg, OpenBoardMsg, backMsg, showLoginMsg:
		return drive(t, app, next)
	}
	return app
}

func newSignedInApp(t *testing.T, email string) AppModel {
	t.Helper()
	s := createTestStore(t)
	sess := login(t, s, email)
	app := NewAppModel(Options{Store: s, Clock: fixedClock, UpcomingDays: 30, Session: &sess, ReportDir: t.TempDir()})
	return drive(t, app, app.Init()())
}

func TestAppModel_StartsAtLogin(t *testing.T) {
	s := createTestStore(t)
	app := NewAppModel(Options{Store: s})

	app = drive(t, app, app.Init()())
	assert.IsType(t, LoginModel{}, app.current)
	assert.Contains(t, app.View(), "Sign in")
}

func TestAppModel_LoginThenMenu(t *testing.T) {
	s := createTestStore(t)
	app := NewAppModel(Options{Store: s, Clock: fixedClock})
	app = drive(t, app, app.Init()())

	app = drive(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	app = drive(t, app, runes("demo"))
	app = drive(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, app.session)
	assert.Equal(t, "u1", app.session.User.ID)
	assert.IsType(t, NavModel{}, app.current)
	assert.Contains(t, app.View(), "Drafts")
}

func TestAppModel_SessionSkipsLogin(t *testing.T) {
	app := newSignedInApp(t, "member1@demo.com")

	assert.IsType(t, NavModel{}, app.current)
	assert.NotContains(t, app.View(), "Drafts")
	assert.NotContains(t, app.View(), "Delay Requests")
}

func TestAppModel_ScreenStack(t *testing.T) {
	app := newSignedInApp(t, "pm@demo.com")

	app = drive(t, app, NavSelectedMsg{Screen: session.ScreenProjects})
	assert.IsType(t, ProjectPickerModel{}, app.current)

	p, err := app.store.GetProject("p1")
	require.NoError(t, err)
	app = drive(t, app, ProjectSelectedMsg{Project: p})
	assert.IsType(t, ProjectDetailModel{}, app.current)

	app = drive(t, app, runes("b"))
	assert.IsType(t, BoardModel{}, app.current)
	assert.Len(t, app.stack, 3)

	app = drive(t, app, backMsg{})
	assert.IsType(t, ProjectDetailModel{}, app.current)
	app = drive(t, app, backMsg{})
	assert.IsType(t, ProjectPickerModel{}, app.current)
	app = drive(t, app, backMsg{})
	assert.IsType(t, NavModel{}, app.current)
	assert.Empty(t, app.stack)

	_, cmd := app.Update(backMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestAppModel_EveryMenuEntryOpens(t *testing.T) {
	tests := []struct {
		screen session.Screen
		want   tea.Model
	}{
		{session.ScreenDashboard, PageModel{}},
		{session.ScreenProjects, ProjectPickerModel{}},
		{session.ScreenMyTasks, BoardModel{}},
		{session.ScreenDelayRequests, PageModel{}},
		{session.ScreenReports, ReportsModel{}},
		{session.ScreenDrafts, PageModel{}},
		{session.ScreenNotifications, PageModel{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.screen), func(t *testing.T) {
			app := newSignedInApp(t, "pm@demo.com")
			app = drive(t, app, NavSelectedMsg{Screen: tt.screen})
			assert.IsType(t, tt.want, app.current)
			assert.NotEmpty(t, app.View())
		})
	}
}

func TestAppModel_HiddenScreenIgnored(t *testing.T) {
	app := newSignedInApp(t, "member1@demo.com")

	app = drive(t, app, NavSelectedMsg{Screen: session.ScreenDrafts})
	assert.IsType(t, NavModel{}, app.current)
	assert.Empty(t, app.stack)
}

func TestAppModel_MyTasksBoard(t *testing.T) {
	app := newSignedInApp(t, "member2@demo.com")

	app = drive(t, app, NavSelectedMsg{Screen: session.ScreenMyTasks})
	board, ok := app.current.(BoardModel)
	require.True(t, ok)
	assert.True(t, board.filterMyOnly)
	assert.Equal(t, "u3", board.opts.ViewerID)
}

func TestAppModel_ProjectFlag(t *testing.T) {
	s := createTestStore(t)
	sess := login(t, s, "pm@demo.com")

	app := NewAppModel(Options{Store: s, Clock: fixedClock, Session: &sess, ProjectID: "p2"})
	app = drive(t, app, app.Init()())

	detail, ok := app.current.(ProjectDetailModel)
	require.True(t, ok)
	assert.Equal(t, "p2", detail.project.ID)
	assert.Len(t, app.stack, 1)
}

func TestAppModel_UnknownProjectFlag(t *testing.T) {
	s := createTestStore(t)
	sess := login(t, s, "pm@demo.com")

	app := NewAppModel(Options{Store: s, Session: &sess, ProjectID: "nope"})
	app = drive(t, app, app.Init()())

	assert.ErrorIs(t, app.err, store.ErrProjectNotFound)
	assert.Contains(t, app.View(), "project not found")
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	app := newSignedInApp(t, "pm@demo.com")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
