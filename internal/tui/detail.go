package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/robby/projecthub/internal/baseline"
	"github.com/robby/projecthub/internal/calendar"
	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/gantt"
	"github.com/robby/projecthub/internal/progress"
	"github.com/robby/projecthub/internal/report"
	"github.com/robby/projecthub/internal/store"
)

// Layout constants
const (
	headerHeight    = 2 // title + tab bar
	footerHeight    = 1
	ganttLabelWidth = 28
	minGanttCols    = 20
)

// Detail view styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Padding(0, 1)

	logAuthorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	scrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type detailTab int

const (
	tabOverview detailTab = iota
	tabGantt
	tabBaseline
	tabRisks
	tabTeam
	tabActivity
)

var tabNames = []string{"Overview", "Gantt", "Baseline", "Risks", "Team", "Activity"}

// ProjectDetailModel shows one project across several tabs.
type ProjectDetailModel struct {
	// Dependencies
	store *store.Store
	clock func() time.Time

	project domain.Project
	today   calendar.Date

	// UI components
	keymap   DetailKeyMap
	help     HelpModel
	viewport viewport.Model

	// State
	tab      detailTab
	showHelp bool

	// View dimensions
	width  int
	height int
}

// NewProjectDetailModel creates the detail view of project. clock is read once
// so every tab shares the same "today".
func NewProjectDetailModel(s *store.Store, project domain.Project, clock func() time.Time) ProjectDetailModel {
	vp := viewport.New(80, 20) // Will be resized in WindowSizeMsg
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := ProjectDetailModel{
		store:    s,
		clock:    clock,
		project:  project,
		today:    calendar.Today(clock),
		keymap:   DefaultDetailKeyMap(),
		help:     NewHelpModel(DefaultDetailKeyMap()),
		viewport: vp,
	}
	m.refresh()
	return m
}

// Init initializes the detail model
func (m ProjectDetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m ProjectDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-2, 20)
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 3)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ProjectDetailModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "?", "q", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		return m, back
	case "?":
		m.showHelp = true
		return m, nil
	case "tab", "right", "l":
		m.setTab((m.tab + 1) % detailTab(len(tabNames)))
		return m, nil
	case "shift+tab", "left", "h":
		m.setTab((m.tab + detailTab(len(tabNames)) - 1) % detailTab(len(tabNames)))
		return m, nil
	case "1", "2", "3", "4", "5", "6":
		m.setTab(detailTab(msg.Runes[0] - '1'))
		return m, nil
	case "b":
		id := m.project.ID
		return m, func() tea.Msg { return OpenBoardMsg{ProjectID: id} }
	}

	// Scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *ProjectDetailModel) setTab(tab detailTab) {
	m.tab = tab
	m.refresh()
	m.viewport.GotoTop()
}

// refresh re-renders the active tab from the store's current state.
func (m *ProjectDetailModel) refresh() {
	if p, err := m.store.GetProject(m.project.ID); err == nil {
		m.project = p
	}
	m.viewport.SetContent(m.renderTab(m.viewport.Width))
}

// View renders the detail view
func (m ProjectDetailModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	title := detailTitleStyle.Render(fmt.Sprintf("%s  %s", m.project.Code, m.project.Name)) +
		"  " + healthStyle(m.project.HealthStatus).Render("● "+string(m.project.HealthStatus))

	var body string
	if m.showHelp {
		body = m.help.View(width)
	} else {
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, m.renderTabBar(), body, m.renderFooter(width))
}

func (m ProjectDetailModel) renderTabBar() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if detailTab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = inactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ProjectDetailModel) renderFooter(width int) string {
	left := m.help.ShortView(width / 2)

	right := ""
	if m.viewport.TotalLineCount() > m.viewport.Height {
		switch {
		case m.viewport.AtTop():
			right = scrollIndicatorStyle.Render("↓")
		case m.viewport.AtBottom():
			right = scrollIndicatorStyle.Render("↑")
		default:
			right = fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
		}
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + right
}

func (m ProjectDetailModel) renderTab(width int) string {
	switch m.tab {
	case tabGantt:
		return m.renderGantt(width)
	case tabBaseline:
		return m.renderBaseline()
	case tabRisks:
		return m.renderRisks(width)
	case tabTeam:
		return m.renderTeam()
	case tabActivity:
		return m.renderActivity(width)
	default:
		return m.renderOverview(width)
	}
}

func field(b *strings.Builder, label, value string) {
	b.WriteString(detailLabelStyle.Render(label + ": "))
	b.WriteString(detailValueStyle.Render(value))
	b.WriteString("\n")
}

// renderOverview renders project metadata, SMART goals and milestones.
func (m ProjectDetailModel) renderOverview(width int) string {
	var b strings.Builder
	p := m.project
	wrapWidth := max(width-4, 30)

	field(&b, "Status", string(p.Status))
	field(&b, "Owner", m.store.UserName(p.OwnerID, "Unknown"))
	field(&b, "Dates", fmt.Sprintf("%s → %s", p.StartDate, p.EndDate))
	field(&b, "Progress", fmt.Sprintf("%d%%", m.store.ProjectProgress(p.ID)))

	line := report.ProjectLine{Project: p}
	line.Budget, line.HasBudget = progress.BudgetPercent(p)
	field(&b, "Budget", fmt.Sprintf("%s of %s (%s used)", report.Money(p.BudgetUsed), report.Money(p.Budget), report.BudgetLabel(line)))

	tasks := m.store.TasksByProject(p.ID)
	stats := progress.Count(tasks)
	field(&b, "Tasks", fmt.Sprintf("%d total, %d todo, %d in progress, %d review, %d done, %d blocked",
		stats.Total, stats.Todo, stats.InProgress, stats.Review, stats.Done, stats.Blocked))
	field(&b, "Hours", fmt.Sprintf("%.0f estimated, %.0f actual", progress.EstimatedHours(tasks), progress.ActualHours(tasks)))

	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(wordwrap.String(p.Description, wrapWidth))
		b.WriteString("\n")
	}

	goals := []struct{ letter, text string }{
		{"S", p.SmartGoals.Specific},
		{"M", p.SmartGoals.Measurable},
		{"A", p.SmartGoals.Achievable},
		{"R", p.SmartGoals.Relevant},
		{"T", p.SmartGoals.TimeBound},
	}
	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("SMART goals"))
	b.WriteString("\n")
	for _, g := range goals {
		text := g.text
		if text == "" {
			text = "-"
		}
		b.WriteString(detailTitleStyle.Render(g.letter) + " ")
		b.WriteString(strings.ReplaceAll(wordwrap.String(text, wrapWidth-2), "\n", "\n  "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("Milestones"))
	b.WriteString("\n")
	milestones := m.store.MilestonesOf(p.ID)
	if len(milestones) == 0 {
		b.WriteString(dimStyle.Render("No milestones"))
		b.WriteString("\n")
	}
	for _, ms := range milestones {
		status := lipgloss.NewStyle().Foreground(statusColor(string(ms.Status))).Render(string(ms.Status))
		fmt.Fprintf(&b, "%-26s %s  %3d%%  due %s\n", ms.Name, status, ms.Progress, ms.DueDate)
	}

	deps := report.Dependencies(m.store, p.ID)
	if len(deps) > 0 {
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render("Dependencies"))
		b.WriteString("\n")
		for _, d := range deps {
			fmt.Fprintf(&b, "%s %s %s\n", d.Task, dimStyle.Render("←"+string(d.Dependency.Type)), d.DependsOn)
		}
	}

	return b.String()
}

// renderGantt draws the timeline into character cells.
func (m ProjectDetailModel) renderGantt(width int) string {
	layout := gantt.Compute(m.project, m.store.MilestonesOf(m.project.ID), m.store.TasksGroupedByMilestone(m.project.ID), m.today)
	if len(layout.Bars) == 0 {
		return dimStyle.Render("No milestones to chart")
	}

	cols := max(width-ganttLabelWidth-1, minGanttCols)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", ganttLabelWidth+1))
	b.WriteString(detailLabelStyle.Render(layout.HeaderCells(cols)))
	b.WriteString("\n")

	for _, bar := range layout.Bars {
		label := bar.Label
		style := lipgloss.NewStyle().Foreground(statusColor(bar.Status))
		if bar.Kind == gantt.KindMilestone {
			style = style.Bold(true)
		} else {
			label = "  " + label
		}
		b.WriteString(padRight(label, ganttLabelWidth))
		b.WriteString(" ")
		b.WriteString(style.Render(layout.BarCells(bar, cols)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	legend := fmt.Sprintf("%c done  %c remaining", gantt.GlyphFilled, gantt.GlyphEmpty)
	if layout.HasToday {
		legend += "  " + todayStyle.Render(fmt.Sprintf("%c today %s", gantt.GlyphToday, m.today))
	}
	b.WriteString(dimStyle.Render(legend))
	return b.String()
}

// renderBaseline compares recorded baselines with actual completion.
func (m ProjectDetailModel) renderBaseline() string {
	rows := baseline.Compare(m.store.BaselinesOf(m.project.ID), m.store.MilestonesOf(m.project.ID))
	if len(rows) == 0 {
		return dimStyle.Render("No baselines recorded")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-26s %-12s %-12s %-18s %s\n", "Milestone", "Planned", "Actual", "Deviation", "Progress")
	for _, r := range rows {
		actual := "-"
		if r.Baseline.ActualEnd != nil && !r.Baseline.ActualEnd.IsZero() {
			actual = r.Baseline.ActualEnd.String()
		}

		dev := padRight(baseline.Label(r.Deviation, r.HasDeviation), 18)
		switch r.Class {
		case baseline.Late:
			dev = ErrorStyle.Render(dev)
		case baseline.OnTimeOrEarly:
			dev = successStyle.Render(dev)
		default:
			dev = dimStyle.Render(dev)
		}
		fmt.Fprintf(&b, "%s %-12s %-12s %s %d%%\n", padRight(r.MilestoneName, 26), r.Baseline.PlannedEnd, actual, dev, r.Progress)
	}

	sum := baseline.Summarize(rows)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d on time, %d late, %d pending", sum.OnTime, sum.Late, sum.Pending)))
	return b.String()
}

// renderRisks lists the project's risks.
func (m ProjectDetailModel) renderRisks(width int) string {
	risks := m.store.RisksOf(m.project.ID)
	if len(risks) == 0 {
		return dimStyle.Render("No risks recorded")
	}

	var b strings.Builder
	for i, r := range risks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(impactStyle(r.Impact).Render(fmt.Sprintf("[%s]", r.Impact)))
		b.WriteString(" ")
		b.WriteString(detailTitleStyle.Render(r.Title))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s • probability %.0f%% • owner %s\n", r.Status, r.Probability*100, m.store.UserName(r.OwnerID, "Unassigned"))
		if r.Mitigation != "" {
			b.WriteString("  ")
			b.WriteString(strings.ReplaceAll(wordwrap.String("Mitigation: "+r.Mitigation, max(width-6, 30)), "\n", "\n  "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderTeam lists the owner and assignees with their task counts.
func (m ProjectDetailModel) renderTeam() string {
	members, err := report.Team(m.store, m.project.ID)
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}

	var b strings.Builder
	for _, mem := range members {
		role := string(mem.User.Role)
		if mem.Owner {
			role += ", owner"
		}
		fmt.Fprintf(&b, "%s %s  %d/%d tasks done\n",
			padRight(mem.User.Name, 22), detailLabelStyle.Render(padRight("("+role+")", 18)), mem.Done, mem.Tasks)
	}
	return b.String()
}

// renderActivity renders the task log grouped by day.
func (m ProjectDetailModel) renderActivity(width int) string {
	days := report.Activity(m.store, m.project.ID)
	if len(days) == 0 {
		return dimStyle.Render("No activity yet")
	}

	now := m.clock()
	var b strings.Builder
	for i, d := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(SectionStyle.Render(d.Date))
		b.WriteString("\n")
		for _, e := range d.Entries {
			b.WriteString(logAuthorStyle.Render(e.User))
			b.WriteString(" ")
			b.WriteString(logTimeStyle.Render(formatTimeAgo(e.Log.Timestamp, now)))
			b.WriteString(" ")
			b.WriteString(dimStyle.Render(e.Task))
			b.WriteString("\n  ")
			b.WriteString(strings.ReplaceAll(wordwrap.String(e.Log.Detail, max(width-6, 30)), "\n", "\n  "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// padRight pads or truncates s to exactly n display cells.
func padRight(s string, n int) string {
	w := lipgloss.Width(s)
	if w > n {
		r := []rune(s)
		for lipgloss.Width(string(r)) > n-1 && len(r) > 0 {
			r = r[:len(r)-1]
		}
		return string(r) + "…"
	}
	return s + strings.Repeat(" ", n-w)
}

// formatTimeAgo converts an RFC3339 timestamp to time relative to now.
func formatTimeAgo(timestamp string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		if len(timestamp) >= 10 {
			return timestamp[:10]
		}
		return timestamp
	}

	duration := now.Sub(t)

	switch {
	case duration < 0:
		return t.Format(time.DateOnly)
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hours)
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	case duration < 30*24*time.Hour:
		weeks := int(duration.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	case duration < 365*24*time.Hour:
		months := int(duration.Hours() / 24 / 30)
		if months == 1 {
			return "1mo ago"
		}
		return fmt.Sprintf("%dmo ago", months)
	default:
		years := int(duration.Hours() / 24 / 365)
		if years == 1 {
			return "1y ago"
		}
		return fmt.Sprintf("%dy ago", years)
	}
}
