package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"
	"github.com/robby/projecthub/internal/calendar"
	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/report"
	"github.com/robby/projecthub/internal/store"
	"go.uber.org/zap"
)

// ReportsModel shows the cross-project summary and exports it as HTML.
type ReportsModel struct {
	store *store.Store
	log   *zap.Logger
	today calendar.Date
	dir   string
	open  func(path string) error

	spinner  spinner.Model
	viewport viewport.Model

	exporting  bool
	exported   string
	errorToast string
	width      int
}

// NewReportsModel creates the reports screen. Exports are written to dir.
func NewReportsModel(s *store.Store, log *zap.Logger, today calendar.Date, dir string) ReportsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := ReportsModel{
		store:    s,
		log:      log,
		today:    today,
		dir:      dir,
		open:     browser.OpenFile,
		spinner:  sp,
		viewport: vp,
	}
	m.viewport.SetContent(renderSummary(report.BuildSummary(s, today)))
	return m
}

// Init initializes the model.
func (m ReportsModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages.
func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = max(msg.Width-2, 20)
		m.viewport.Height = max(msg.Height-4, 3)
		return m, nil

	case spinner.TickMsg:
		if !m.exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reportExportedMsg:
		m.exporting = false
		m.exported = msg.path
		m.errorToast = ""
		if err := m.open(msg.path); err != nil {
			m.log.Warn("failed to open report", zap.String("path", msg.path), zap.Error(err))
		}
		return m, nil

	case reportErrorMsg:
		m.exporting = false
		m.errorToast = fmt.Sprintf("Export failed: %v", msg.err)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, back
		case "ctrl+c":
			return m, tea.Quit
		case "e":
			if m.exporting {
				return m, nil
			}
			m.exporting = true
			return m, tea.Batch(m.spinner.Tick, m.export())
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ReportsModel) export() tea.Cmd {
	path := filepath.Join(m.dir, fmt.Sprintf("projecthub-report-%s.html", m.today))
	s, log, today := m.store, m.log, m.today
	return func() tea.Msg {
		if err := report.ExportHTML(s, today, path); err != nil {
			log.Error("report export failed", zap.String("path", path), zap.Error(err))
			return reportErrorMsg{err: err}
		}
		log.Info("report exported", zap.String("path", path))
		return reportExportedMsg{path: path}
	}
}

// View renders the model.
func (m ReportsModel) View() string {
	var status string
	switch {
	case m.exporting:
		status = m.spinner.View() + " Exporting..."
	case m.errorToast != "":
		status = ErrorStyle.Render(m.errorToast)
	case m.exported != "":
		status = successStyle.Render("Saved " + m.exported)
	default:
		status = dimStyle.Render("e: export HTML • j/k: scroll • esc: back")
	}
	return TitleStyle.Render("Reports") + "\n" + m.viewport.View() + "\n" + status
}

func renderSummary(sum report.Summary) string {
	var b strings.Builder

	b.WriteString(SectionStyle.Render("Project status"))
	b.WriteString("\n")
	for _, st := range domain.ProjectStatuses {
		fmt.Fprintf(&b, "%s %d\n", padRight(string(st), 14), sum.Status[st])
	}

	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("Health"))
	b.WriteString("\n")
	for _, h := range domain.HealthStatuses {
		fmt.Fprintf(&b, "%s %d\n", healthStyle(h).Render(padRight(string(h), 14)), sum.Health[h])
	}

	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("Projects"))
	b.WriteString("\n")
	for _, l := range sum.Projects {
		fmt.Fprintf(&b, "%s %s %3d%% done  budget %s\n",
			padRight(l.Project.Code, 10), padRight(l.Project.Name, 32), l.Progress, report.BudgetLabel(l))
	}

	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("Top open risks"))
	b.WriteString("\n")
	if len(sum.TopRisks) == 0 {
		b.WriteString(dimStyle.Render("No open risks"))
		b.WriteString("\n")
	}
	for _, r := range sum.TopRisks {
		fmt.Fprintf(&b, "%s %3.0f%%  %s\n", padRight(r.Risk.Title, 34), r.Risk.Probability*100, dimStyle.Render(r.Project))
	}
	return b.String()
}

type (
	reportExportedMsg struct{ path string }
	reportErrorMsg    struct{ err error }
)
