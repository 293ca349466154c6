// Package tui provides Bubble Tea models for the interactive TUI.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/session"
)

// LoggedInMsg is emitted when the login screen verified the credentials.
type LoggedInMsg struct {
	Session session.Session
}

// NavSelectedMsg is emitted when the user picks a menu entry.
type NavSelectedMsg struct {
	Screen session.Screen
}

// ProjectSelectedMsg is emitted when the user selects a project.
type ProjectSelectedMsg struct {
	Project domain.Project
}

// OpenBoardMsg asks for the task board of a project. An empty ProjectID means
// every project, restricted to the current user's tasks.
type OpenBoardMsg struct {
	ProjectID string
}

// ErrorMsg is emitted when an error occurs.
type ErrorMsg struct {
	Err error
}

// QuitMsg is emitted when the user requests to quit.
type QuitMsg struct{}

// backMsg returns to the previous screen.
type backMsg struct{}

func back() tea.Msg { return backMsg{} }
