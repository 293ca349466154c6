package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var helpOverlayStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(1, 2).
	MarginTop(2)

// HelpModel renders the key bindings of one screen, either as the boxed
// full listing or as a one-line footer.
type HelpModel struct {
	help     help.Model
	bindings help.KeyMap
}

// NewHelpModel creates a help model over bindings.
func NewHelpModel(bindings help.KeyMap) HelpModel {
	return HelpModel{help: help.New(), bindings: bindings}
}

// View renders every binding inside the overlay box.
func (m HelpModel) View(width int) string {
	m.help.ShowAll = true
	m.help.Width = width - 8 // border and padding
	return helpOverlayStyle.Render(m.help.View(m.bindings))
}

// ShortView renders the short bindings on one line.
func (m HelpModel) ShortView(width int) string {
	m.help.ShowAll = false
	m.help.Width = width
	return m.help.View(m.bindings)
}
