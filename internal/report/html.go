package report

import (
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/robby/projecthub/internal/baseline"
	"github.com/robby/projecthub/internal/calendar"
	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/store"
)

var funcs = template.FuncMap{
	"budget": BudgetLabel,
	"money":  Money,
	"prob":   func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
	"status": func(s domain.ProjectStatus, counts map[domain.ProjectStatus]int) int {
		return counts[s]
	},
	"health": func(h domain.HealthStatus, counts map[domain.HealthStatus]int) int {
		return counts[h]
	},
	"deviation": baseline.Label,
}

var page = template.Must(template.New("report").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>ProjectHub report {{.Summary.Today}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #1e293b; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
th, td { border: 1px solid #cbd5e1; padding: .3rem .6rem; text-align: left; }
th { background: #f1f5f9; }
.bar { background: #e2e8f0; width: 10rem; height: .6rem; }
.bar span { display: block; height: 100%; background: #2563eb; }
.late { color: #dc2626; }
</style>
</head>
<body>
<h1>ProjectHub report</h1>
<p>Generated for {{.Summary.Today}}</p>

<h2>Project status</h2>
<table>
<tr>{{range .Statuses}}<th>{{.}}</th>{{end}}</tr>
<tr>{{range .Statuses}}<td>{{status . $.Summary.Status}}</td>{{end}}</tr>
</table>

<h2>Health</h2>
<table>
<tr>{{range .Healths}}<th>{{.}}</th>{{end}}</tr>
<tr>{{range .Healths}}<td>{{health . $.Summary.Health}}</td>{{end}}</tr>
</table>

<h2>Projects</h2>
<table>
<tr><th>Code</th><th>Name</th><th>Owner</th><th>Status</th><th>Progress</th><th>Budget used</th></tr>
{{range .Summary.Projects}}<tr>
<td>{{.Project.Code}}</td><td>{{.Project.Name}}</td><td>{{.Owner}}</td><td>{{.Project.Status}}</td>
<td><div class="bar"><span style="width: {{.Progress}}%"></span></div>{{.Progress}}%</td>
<td>{{budget .}} of {{money .Project.Budget}}</td>
</tr>{{end}}
</table>

<h2>Top open risks</h2>
{{if .Summary.TopRisks}}<table>
<tr><th>Risk</th><th>Project</th><th>Impact</th><th>Probability</th><th>Owner</th></tr>
{{range .Summary.TopRisks}}<tr><td>{{.Risk.Title}}</td><td>{{.Project}}</td><td>{{.Risk.Impact}}</td><td>{{prob .Risk.Probability}}</td><td>{{.Owner}}</td></tr>
{{end}}</table>{{else}}<p>No open risks.</p>{{end}}

{{range .Projects}}
<h2>{{.Line.Project.Code}} {{.Line.Project.Name}}</h2>
<p>{{.CompletedMilestones}} of {{.Milestones}} milestones completed. {{.Tasks.Done}} of {{.Tasks.Total}} tasks done, {{.Tasks.Blocked}} blocked.</p>
{{if .Baselines}}<table>
<tr><th>Milestone</th><th>Snapshot</th><th>Planned end</th><th>Actual end</th><th>Deviation</th></tr>
{{range .Baselines}}<tr><td>{{.MilestoneName}}</td><td>{{.Baseline.SnapshotName}}</td><td>{{.Baseline.PlannedEnd}}</td>
<td>{{if .Baseline.ActualEnd}}{{.Baseline.ActualEnd}}{{else}}-{{end}}</td>
<td{{if gt .Deviation 0}} class="late"{{end}}>{{deviation .Deviation .HasDeviation}}</td></tr>
{{end}}</table>{{end}}
{{end}}
</body>
</html>
`))

type pageData struct {
	Summary  Summary
	Projects []ProjectReport
	Statuses []domain.ProjectStatus
	Healths  []domain.HealthStatus
}

// WriteHTML renders a standalone HTML report of the summary and the given
// project reports.
func WriteHTML(w io.Writer, sum Summary, projects []ProjectReport) error {
	data := pageData{
		Summary:  sum,
		Projects: projects,
		Statuses: domain.ProjectStatuses,
		Healths:  domain.HealthStatuses,
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// ExportHTML writes the summary and every project report to path.
func ExportHTML(s *store.Store, today calendar.Date, path string) error {
	projects := s.Projects()
	reports := make([]ProjectReport, 0, len(projects))
	for _, p := range projects {
		r, err := BuildProjectReport(s, p.ID)
		if err != nil {
			return err
		}
		reports = append(reports, r)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteHTML(f, BuildSummary(s, today), reports); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
