package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robby/projecthub/internal/calendar"
	"github.com/robby/projecthub/internal/report"
	"github.com/robby/projecthub/internal/store"
)

var kpiBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(0, 2).
	MarginRight(1)

// PageModel is a read-only scrolling screen. render is called with the
// content width whenever the screen is resized.
type PageModel struct {
	title    string
	render   func(width int) string
	viewport viewport.Model
	width    int
	height   int
}

func newPageModel(title string, render func(width int) string) PageModel {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	vp.SetContent(render(80))

	return PageModel{title: title, render: render, viewport: vp}
}

// Init initializes the model.
func (m PageModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages.
func (m PageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-2, 20)
		m.viewport.Height = max(msg.Height-3, 3)
		m.viewport.SetContent(m.render(m.viewport.Width))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, back
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the model.
func (m PageModel) View() string {
	return TitleStyle.Render(m.title) + "\n" + m.viewport.View() + "\n" +
		dimStyle.Render("j/k: scroll • esc: back")
}

// NewDashboardModel shows KPIs, upcoming milestones, open risks, pending
// delay requests and warning projects as of today.
func NewDashboardModel(s *store.Store, today calendar.Date, window int) PageModel {
	return newPageModel("Dashboard", func(int) string {
		return renderDashboard(report.BuildDashboard(s, today, window))
	})
}

func renderDashboard(d report.Dashboard) string {
	var b strings.Builder

	kpi := func(label string, n int, style lipgloss.Style) string {
		return kpiBoxStyle.Render(detailLabelStyle.Render(label) + "\n" + style.Render(fmt.Sprintf("%d", n)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		kpi("Projects", d.KPIs.Total, detailTitleStyle),
		kpi("In progress", d.KPIs.InProgress, detailTitleStyle),
		kpi("Completed", d.KPIs.Completed, successStyle),
		kpi("At risk", d.KPIs.Red, ErrorStyle),
	))
	b.WriteString("\n\n")

	b.WriteString(SectionStyle.Render(fmt.Sprintf("Upcoming milestones (as of %s)", d.Today)))
	b.WriteString("\n")
	if len(d.Upcoming) == 0 {
		b.WriteString(dimStyle.Render("Nothing due soon"))
		b.WriteString("\n")
	}
	for _, u := range d.Upcoming {
		fmt.Fprintf(&b, "%s %s due %s %s\n",
			padRight(u.Milestone.Name, 26), padRight(u.Project, 30), u.Milestone.DueDate,
			warnStyle.Render(fmt.Sprintf("(%d days)", u.DaysLeft)))
	}

	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("Open risks"))
	b.WriteString("\n")
	if len(d.OpenRisks) == 0 {
		b.WriteString(dimStyle.Render("No open risks"))
		b.WriteString("\n")
	}
	for _, r := range d.OpenRisks {
		fmt.Fprintf(&b, "%s %s %s\n",
			impactStyle(r.Risk.Impact).Render(padRight("["+string(r.Risk.Impact)+"]", 11)),
			padRight(r.Risk.Title, 34), dimStyle.Render(r.Project))
	}

	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("Pending delay requests"))
	b.WriteString("\n")
	if len(d.PendingDelays) == 0 {
		b.WriteString(dimStyle.Render("None"))
		b.WriteString("\n")
	}
	for _, l := range d.PendingDelays {
		fmt.Fprintf(&b, "%s %s +%d days\n", padRight(l.Task, 26), padRight(l.Requester, 18), l.ExtraDays)
	}

	if len(d.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render("Needs attention"))
		b.WriteString("\n")
		for _, w := range d.Warnings {
			dot := healthStyle(w.Project.HealthStatus).Render("●")
			fmt.Fprintf(&b, "%s %s %d%% done\n", dot, padRight(w.Project.Name, 32), w.Progress)
		}
	}

	return b.String()
}
