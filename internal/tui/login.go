package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/session"
	"go.uber.org/zap"
)

// userItem represents a demo account in the list.
type userItem struct {
	user domain.User
}

func (i userItem) FilterValue() string { return i.user.Name + " " + i.user.Email }

// userItemDelegate handles rendering of user items.
type userItemDelegate struct{}

func (d userItemDelegate) Height() int                             { return 1 }
func (d userItemDelegate) Spacing() int                            { return 0 }
func (d userItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d userItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(userItem)
	if !ok {
		return
	}

	// Format: name (role) email
	str := fmt.Sprintf("%s (%s) %s", i.user.Name, i.user.Role, i.user.Email)

	fn := NormalItemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return SelectedItemStyle.Render("> " + s[0])
		}
	}

	fmt.Fprint(w, fn(str))
}

// LoginModel lets the user pick an account and enter its password.
type LoginModel struct {
	list     list.Model
	password textinput.Model
	users    []domain.User
	log      *zap.Logger

	selected *domain.User
	err      error
}

// NewLoginModel creates a login screen listing users.
func NewLoginModel(users []domain.User, log *zap.Logger) LoginModel {
	items := make([]list.Item, len(users))
	for i, u := range users {
		items[i] = userItem{user: u}
	}

	// Start with a reasonable default - will be resized by WindowSizeMsg
	l := list.New(items, userItemDelegate{}, 80, 20)
	l.Title = "ProjectHub - Sign in"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = TitleStyle
	l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	l.Styles.HelpStyle = HelpStyle

	ti := textinput.New()
	ti.Placeholder = "password"
	ti.Prompt = "Password: "
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return LoginModel{
		list:     l,
		password: ti,
		users:    users,
		log:      log,
	}
}

// Init initializes the model.
func (m LoginModel) Init() tea.Cmd {
	// Request window size on init to properly size the list
	return tea.WindowSize()
}

// Update handles messages.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selected != nil {
			return m.updatePassword(msg)
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(userItem); ok {
				u := item.user
				m.selected = &u
				m.err = nil
				m.password.Reset()
				m.password.Focus()
				return m, textinput.Blink
			}
		case "q", "esc":
			if !m.list.SettingFilter() {
				return m, func() tea.Msg {
					return QuitMsg{}
				}
			}
		}

	case tea.WindowSizeMsg:
		// Use full terminal width and height (minus small margin for borders)
		m.list.SetWidth(msg.Width - 2)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m LoginModel) updatePassword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.selected = nil
		m.password.Blur()
		return m, nil
	case "enter":
		creds := session.Credentials{Email: m.selected.Email, Password: m.password.Value(), Role: m.selected.Role}
		s, err := session.Login(m.users, creds)
		if err != nil {
			m.log.Warn("login failed", zap.String("email", creds.Email))
			m.err = err
			m.password.Reset()
			return m, nil
		}
		m.log.Info("login succeeded", zap.String("user", s.User.ID), zap.String("role", string(s.Role())))
		return m, func() tea.Msg { return LoggedInMsg{Session: s} }
	}

	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return m, cmd
}

// View renders the model.
func (m LoginModel) View() string {
	var view string
	if m.selected != nil {
		view = TitleStyle.Render("ProjectHub - Sign in") + "\n" +
			PromptStyle.Render(fmt.Sprintf("%s (%s)", m.selected.Name, m.selected.Role)) + "\n" +
			m.password.View() + "\n" +
			HelpStyle.Render("enter: sign in • esc: choose another account")
	} else {
		view = m.list.View()
	}

	if m.err != nil {
		view += "\n" + ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	return view
}
