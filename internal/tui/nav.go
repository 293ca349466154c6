package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robby/projecthub/internal/session"
)

// navItem wraps a session.NavItem for use in bubbles/list.
type navItem struct {
	item  session.NavItem
	badge string
}

func (i navItem) FilterValue() string {
	return i.item.Label
}

func (i navItem) Title() string {
	if i.badge != "" {
		return i.item.Label + " " + i.badge
	}
	return i.item.Label
}

// navDelegate is a custom item delegate for menu entries.
type navDelegate struct{}

func (d navDelegate) Height() int                             { return 1 }
func (d navDelegate) Spacing() int                            { return 0 }
func (d navDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d navDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(navItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())

	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+str))
	} else {
		fmt.Fprint(w, NormalItemStyle.Render("  "+str))
	}
}

// NavModel is the main menu; entries depend on the session's role.
type NavModel struct {
	list    list.Model
	session session.Session
	err     error
}

// NewNavModel creates the menu for s. unread is shown next to Notifications.
func NewNavModel(s session.Session, unread int) NavModel {
	entries := session.NavItems(s.Role())
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		ni := navItem{item: e}
		if e.Screen == session.ScreenNotifications && unread > 0 {
			ni.badge = fmt.Sprintf("(%d unread)", unread)
		}
		items[i] = ni
	}

	l := list.New(items, navDelegate{}, 80, 20)
	l.Title = fmt.Sprintf("ProjectHub - %s (%s)", s.User.Name, s.Role())
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = TitleStyle
	l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	l.Styles.HelpStyle = HelpStyle

	return NavModel{
		list:    l,
		session: s,
	}
}

// Init initializes the model.
func (m NavModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages and updates the model state.
func (m NavModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg {
				return QuitMsg{}
			}
		case "enter":
			if item, ok := m.list.SelectedItem().(navItem); ok {
				return m, func() tea.Msg {
					return NavSelectedMsg{Screen: item.item.Screen}
				}
			}
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(msg.Runes[0] - '1')
			items := m.list.Items()
			if idx < len(items) {
				item := items[idx].(navItem)
				return m, func() tea.Msg {
					return NavSelectedMsg{Screen: item.item.Screen}
				}
			}
		}

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m NavModel) View() string {
	view := m.list.View()

	if m.err != nil {
		errorMsg := ErrorStyle.Render(fmt.Sprintf("\nError: %v", m.err))
		view += errorMsg
	}

	return view
}
