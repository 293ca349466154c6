package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/projecthub/internal/calendar"
	"github.com/robby/projecthub/internal/session"
	"github.com/robby/projecthub/internal/store"
	"go.uber.org/zap"
)

// Options configures the application.
type Options struct {
	Store  *store.Store
	Logger *zap.Logger
	// Clock supplies "now". Nil means time.Now.
	Clock        func() time.Time
	UpcomingDays int
	// Session skips the login screen when set.
	Session *session.Session
	// ProjectID opens that project's detail view right after login.
	ProjectID string
	// ReportDir is where HTML exports are written. Empty means the OS temp dir.
	ReportDir string
}

// AppModel is the root Bubble Tea model that manages screen transitions.
// Screens form a stack: opening a screen pushes it and going back pops it.
type AppModel struct {
	// Dependencies
	store *store.Store
	log   *zap.Logger
	opts  Options

	session *session.Session

	// Current state
	current tea.Model
	stack   []tea.Model
	err     error
}

// NewAppModel creates a new app model.
func NewAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.ReportDir == "" {
		opts.ReportDir = os.TempDir()
	}

	return AppModel{
		store:   opts.Store,
		log:     opts.Logger,
		opts:    opts,
		session: opts.Session,
	}
}

// Init initializes the app model.
func (m AppModel) Init() tea.Cmd {
	return func() tea.Msg {
		if m.session != nil {
			return LoggedInMsg{Session: *m.session}
		}
		return showLoginMsg{}
	}
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case showLoginMsg:
		m.stack = nil
		return m.show(NewLoginModel(m.store.Users(), m.log))

	case LoggedInMsg:
		s := msg.Session
		m.session = &s
		m.stack = nil
		m.log.Info("session started", zap.String("user", s.User.ID), zap.String("role", string(s.Role())))

		cmd := m.showScreen(m.newNav())
		if m.opts.ProjectID == "" {
			return m, cmd
		}
		p, err := m.store.GetProject(m.opts.ProjectID)
		if err != nil {
			m.err = fmt.Errorf("failed to open --project: %w", err)
			return m, nil
		}
		m.opts.ProjectID = "" // only on the first login
		return m, tea.Batch(cmd, m.push(NewProjectDetailModel(m.store, p, m.opts.Clock)))

	case NavSelectedMsg:
		next := m.screenFor(msg.Screen)
		if next == nil {
			return m, nil
		}
		m.log.Debug("screen opened", zap.String("screen", string(msg.Screen)))
		return m, m.push(next)

	case ProjectSelectedMsg:
		return m, m.push(NewProjectDetailModel(m.store, msg.Project, m.opts.Clock))

	case OpenBoardMsg:
		opts := BoardOptions{ProjectID: msg.ProjectID, ViewerID: m.viewerID(), MyOnly: msg.ProjectID == ""}
		return m, m.push(NewBoardModel(m.store, m.log, opts))

	case backMsg:
		return m, m.pop()
	}

	// Delegate to current screen's model
	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current screen.
func (m AppModel) View() string {
	// Show error if present
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress Ctrl+C to quit", m.err))
	}

	// Delegate to current screen
	if m.current != nil {
		return m.current.View()
	}

	return "Loading...\n\nPress Ctrl+C to quit"
}

// show replaces the whole stack with model.
func (m AppModel) show(model tea.Model) (tea.Model, tea.Cmd) {
	cmd := m.showScreen(model)
	return m, cmd
}

func (m *AppModel) showScreen(model tea.Model) tea.Cmd {
	m.current = model
	return model.Init()
}

func (m *AppModel) push(model tea.Model) tea.Cmd {
	if m.current != nil {
		m.stack = append(m.stack, m.current)
	}
	m.current = model
	return model.Init()
}

// pop returns to the previous screen, quitting when there is none. The
// restored screen is resized so it re-renders from the store's current state.
func (m *AppModel) pop() tea.Cmd {
	if len(m.stack) == 0 {
		return tea.Quit
	}
	m.current = m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return tea.WindowSize()
}

func (m AppModel) newNav() NavModel {
	return NewNavModel(*m.session, session.UnreadCount(m.store.NotificationsFor(m.session.User.ID)))
}

func (m AppModel) viewerID() string {
	if m.session == nil {
		return ""
	}
	return m.session.User.ID
}

// screenFor builds the model behind a menu entry, nil when the role may not see it.
func (m AppModel) screenFor(screen session.Screen) tea.Model {
	if m.session == nil || !session.CanSee(m.session.Role(), screen) {
		return nil
	}

	today := calendar.Today(m.opts.Clock)
	switch screen {
	case session.ScreenDashboard:
		return NewDashboardModel(m.store, today, m.opts.UpcomingDays)
	case session.ScreenProjects:
		return NewProjectPickerModel(m.store)
	case session.ScreenMyTasks:
		return NewBoardModel(m.store, m.log, BoardOptions{ViewerID: m.viewerID(), MyOnly: true})
	case session.ScreenDelayRequests:
		return NewDelayRequestsModel(m.store, *m.session)
	case session.ScreenReports:
		return NewReportsModel(m.store, m.log, today, m.opts.ReportDir)
	case session.ScreenDrafts:
		return NewDraftsModel(m.store, *m.session)
	case session.ScreenNotifications:
		return NewNotificationsModel(m.store, *m.session, m.opts.Clock)
	}
	return nil
}

// Custom messages for app transitions.
type showLoginMsg struct{}
