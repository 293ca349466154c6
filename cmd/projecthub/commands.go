package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/browser"
	"github.com/robby/projecthub/internal/baseline"
	"github.com/robby/projecthub/internal/calendar"
	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/gantt"
	"github.com/robby/projecthub/internal/report"
	"github.com/robby/projecthub/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const ganttLabelWidth = 28

// openFile opens an exported report. Replaced in tests.
var openFile = browser.OpenFile

func newProjectsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects with progress and budget use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(f)
			if err != nil {
				return err
			}
			sum := report.BuildSummary(e.store, calendar.Today(e.cfg.Clock()))
			return printProjects(cmd.OutOrStdout(), sum.Projects)
		},
	}
}

func printProjects(w io.Writer, lines []report.ProjectLine) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "CODE", "NAME", "OWNER", "STATUS", "HEALTH", "PROGRESS", "BUDGET")
	for _, l := range lines {
		t.Row(
			l.Project.ID,
			l.Project.Code,
			l.Project.Name,
			l.Owner,
			string(l.Project.Status),
			string(l.Project.HealthStatus),
			fmt.Sprintf("%d%%", l.Progress),
			report.BudgetLabel(l),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newGanttCmd(f *flags) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "gantt <project>",
		Short: "Print a project's timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(f)
			if err != nil {
				return err
			}
			p, err := findProject(e.store, args[0])
			if err != nil {
				return err
			}
			today := calendar.Today(e.cfg.Clock())
			layout := gantt.Compute(p, e.store.MilestonesOf(p.ID), e.store.TasksGroupedByMilestone(p.ID), today)
			return printGantt(cmd.OutOrStdout(), p, layout, today, width)
		},
	}
	cmd.Flags().IntVar(&width, "width", 100, "Total output width in columns")
	return cmd
}

func printGantt(w io.Writer, p domain.Project, l gantt.Layout, today calendar.Date, width int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", p.Code, p.Name)

	if len(l.Bars) == 0 {
		b.WriteString("No milestones to chart\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	cols := max(width-ganttLabelWidth-1, 20)
	fmt.Fprintf(&b, "%s %s\n", strings.Repeat(" ", ganttLabelWidth), l.HeaderCells(cols))
	for _, bar := range l.Bars {
		label := bar.Label
		if bar.Kind == gantt.KindTask {
			label = "  " + label
		}
		fmt.Fprintf(&b, "%s %s\n", fit(label, ganttLabelWidth), l.BarCells(bar, cols))
	}

	fmt.Fprintf(&b, "\n%c done  %c remaining", gantt.GlyphFilled, gantt.GlyphEmpty)
	if l.HasToday {
		fmt.Fprintf(&b, "  %c today %s", gantt.GlyphToday, today)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func newBaselineCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "baseline <project>",
		Short: "Compare a project's baselines with actual completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(f)
			if err != nil {
				return err
			}
			p, err := findProject(e.store, args[0])
			if err != nil {
				return err
			}
			rows := baseline.Compare(e.store.BaselinesOf(p.ID), e.store.MilestonesOf(p.ID))
			return printBaseline(cmd.OutOrStdout(), rows)
		},
	}
}

func printBaseline(w io.Writer, rows []baseline.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No baselines recorded")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("MILESTONE", "SNAPSHOT", "PLANNED", "ACTUAL", "DEVIATION", "PROGRESS")
	for _, r := range rows {
		actual := "-"
		if r.Baseline.ActualEnd != nil && !r.Baseline.ActualEnd.IsZero() {
			actual = r.Baseline.ActualEnd.String()
		}
		t.Row(
			r.MilestoneName,
			r.Baseline.SnapshotName,
			r.Baseline.PlannedEnd.String(),
			actual,
			baseline.Label(r.Deviation, r.HasDeviation),
			fmt.Sprintf("%d%%", r.Progress),
		)
	}

	sum := baseline.Summarize(rows)
	_, err := fmt.Fprintf(w, "%s\n%d on time, %d late, %d pending\n", t.Render(), sum.OnTime, sum.Late, sum.Pending)
	return err
}

func newReportCmd(f *flags) *cobra.Command {
	var (
		htmlPath string
		open     bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the cross-project summary or export it as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(f)
			if err != nil {
				return err
			}
			today := calendar.Today(e.cfg.Clock())

			if htmlPath == "" && !open {
				return printSummary(cmd.OutOrStdout(), report.BuildSummary(e.store, today))
			}

			if htmlPath == "" {
				htmlPath = filepath.Join(os.TempDir(), fmt.Sprintf("projecthub-report-%s.html", today))
			}
			if err := report.ExportHTML(e.store, today, htmlPath); err != nil {
				return err
			}
			e.log.Info("report exported", zap.String("path", htmlPath))
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", htmlPath)

			if open {
				if err := openFile(htmlPath); err != nil {
					return fmt.Errorf("failed to open report: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&htmlPath, "html", "", "Write an HTML report to FILE")
	cmd.Flags().BoolVar(&open, "open", false, "Open the HTML report in the default browser")
	return cmd
}

func printSummary(w io.Writer, sum report.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "ProjectHub report (%s)\n\n", sum.Today)

	b.WriteString("Status:")
	for _, st := range domain.ProjectStatuses {
		fmt.Fprintf(&b, " %s=%d", st, sum.Status[st])
	}
	b.WriteString("\nHealth:")
	for _, h := range domain.HealthStatuses {
		fmt.Fprintf(&b, " %s=%d", h, sum.Health[h])
	}
	b.WriteString("\n\n")

	if err := printProjects(&b, sum.Projects); err != nil {
		return err
	}

	b.WriteString("\nTop open risks:\n")
	if len(sum.TopRisks) == 0 {
		b.WriteString("  none\n")
	}
	for _, r := range sum.TopRisks {
		fmt.Fprintf(&b, "  %3.0f%%  [%s] %s (%s)\n", r.Risk.Probability*100, r.Risk.Impact, r.Risk.Title, r.Project)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// findProject resolves a project by ID, or by code ignoring case.
func findProject(s *store.Store, ref string) (domain.Project, error) {
	if p, err := s.GetProject(ref); err == nil {
		return p, nil
	}
	for _, p := range s.Projects() {
		if strings.EqualFold(p.Code, ref) {
			return p, nil
		}
	}
	return domain.Project{}, fmt.Errorf("%w: %s", store.ErrProjectNotFound, ref)
}

// fit pads or truncates s to n runes.
func fit(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-len(r))
}
