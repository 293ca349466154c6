package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/robby/projecthub/internal/domain"
)

var (
	// TitleStyle is used for screen titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")). // Purple
			MarginBottom(1)

	// SelectedItemStyle is used for highlighted/selected items.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")). // Light purple
				Bold(true)

	// NormalItemStyle is used for non-selected items.
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// PromptStyle is used for prompt text.
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")). // Light blue
			MarginBottom(1)

	// HelpStyle is used for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Dark gray
			MarginTop(1)

	// SectionStyle heads a block inside a page.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// healthStyle colors a traffic-light health value.
func healthStyle(h domain.HealthStatus) lipgloss.Style {
	switch h {
	case domain.HealthGreen:
		return successStyle
	case domain.HealthYellow:
		return warnStyle
	default:
		return ErrorStyle
	}
}

// statusColor is the bar color of a task or milestone status.
func statusColor(status string) lipgloss.Color {
	switch status {
	case string(domain.TaskDone), string(domain.MilestoneCompleted):
		return lipgloss.Color("34")
	case string(domain.TaskBlocked), string(domain.MilestoneOverdue):
		return lipgloss.Color("196")
	case string(domain.TaskReview):
		return lipgloss.Color("141")
	case string(domain.TaskInProgress):
		return lipgloss.Color("39")
	default:
		return lipgloss.Color("245")
	}
}

// impactStyle colors a risk impact.
func impactStyle(i domain.Impact) lipgloss.Style {
	switch i {
	case domain.ImpactCritical:
		return ErrorStyle
	case domain.ImpactHigh:
		return warnStyle
	default:
		return NormalItemStyle
	}
}
