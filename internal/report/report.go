// Package report derives the dashboard, my-tasks and report views from a store.
// Every function recomputes from the store's current state.
package report

import (
	"sort"

	"github.com/robby/projecthub/internal/baseline"
	"github.com/robby/projecthub/internal/calendar"
	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/progress"
	"github.com/robby/projecthub/internal/store"
)

// TopRisks is how many risks the summary lists.
const TopRisks = 5

// KPIs are the headline project counts.
type KPIs struct {
	Total      int
	InProgress int
	Completed  int
	Red        int // health red
}

// ProjectLine is a project with its derived figures.
type ProjectLine struct {
	Project   domain.Project
	Owner     string
	Progress  int
	Budget    int
	HasBudget bool
}

// MilestoneLine is an upcoming milestone with its project name.
type MilestoneLine struct {
	Milestone domain.Milestone
	Project   string
	DaysLeft  int
}

// RiskLine is a risk with its project and owner names.
type RiskLine struct {
	Risk    domain.Risk
	Project string
	Owner   string
}

// DelayLine is a delay request with the names it refers to.
type DelayLine struct {
	Request   domain.DelayRequest
	Task      string
	Project   string
	Requester string
	ExtraDays int
}

// Dashboard is the landing page.
type Dashboard struct {
	Today         calendar.Date
	KPIs          KPIs
	Upcoming      []MilestoneLine
	OpenRisks     []RiskLine
	PendingDelays []DelayLine
	Warnings      []ProjectLine
}

// BuildDashboard computes the dashboard for today. Upcoming milestones are the ones
// not completed and due within window days from today, soonest first.
func BuildDashboard(s *store.Store, today calendar.Date, window int) Dashboard {
	d := Dashboard{Today: today}
	projects := s.Projects()

	d.KPIs.Total = len(projects)
	for _, p := range projects {
		switch p.Status {
		case domain.ProjectInProgress:
			d.KPIs.InProgress++
			if p.HealthStatus == domain.HealthYellow || p.HealthStatus == domain.HealthRed {
				d.Warnings = append(d.Warnings, projectLine(s, p))
			}
		case domain.ProjectCompleted:
			d.KPIs.Completed++
		}
		if p.HealthStatus == domain.HealthRed {
			d.KPIs.Red++
		}
	}

	horizon := today.AddDays(window)
	for _, m := range s.Milestones() {
		if m.Status == domain.MilestoneCompleted || !m.DueDate.Within(today, horizon) {
			continue
		}
		d.Upcoming = append(d.Upcoming, MilestoneLine{
			Milestone: m,
			Project:   projectName(s, m.ProjectID),
			DaysLeft:  calendar.DaysBetween(today, m.DueDate),
		})
	}
	sort.SliceStable(d.Upcoming, func(i, j int) bool {
		return d.Upcoming[i].Milestone.DueDate.Before(d.Upcoming[j].Milestone.DueDate)
	})

	for _, r := range s.Risks() {
		if r.Status == domain.RiskOpen || r.Status == domain.RiskMitigating {
			d.OpenRisks = append(d.OpenRisks, riskLine(s, r))
		}
	}
	sort.SliceStable(d.OpenRisks, func(i, j int) bool {
		return d.OpenRisks[i].Risk.Impact.Rank() < d.OpenRisks[j].Risk.Impact.Rank()
	})

	for _, r := range s.DelayRequests() {
		if r.Status == domain.DelayPending {
			d.PendingDelays = append(d.PendingDelays, DelayLineFor(s, r))
		}
	}

	return d
}

// Summary is the cross-project report.
type Summary struct {
	Today    calendar.Date
	Status   map[domain.ProjectStatus]int
	Health   map[domain.HealthStatus]int
	TopRisks []RiskLine
	Projects []ProjectLine
}

// BuildSummary computes status and health distributions, the most probable open
// risks and per-project progress and budget use.
func BuildSummary(s *store.Store, today calendar.Date) Summary {
	sum := Summary{
		Today:  today,
		Status: make(map[domain.ProjectStatus]int),
		Health: make(map[domain.HealthStatus]int),
	}

	for _, p := range s.Projects() {
		sum.Status[p.Status]++
		sum.Health[p.HealthStatus]++
		sum.Projects = append(sum.Projects, projectLine(s, p))
	}

	var open []RiskLine
	for _, r := range s.Risks() {
		if r.Status == domain.RiskOpen {
			open = append(open, riskLine(s, r))
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].Risk.Probability > open[j].Risk.Probability
	})
	if len(open) > TopRisks {
		open = open[:TopRisks]
	}
	sum.TopRisks = open

	return sum
}

// ProjectReport is the single-project report.
type ProjectReport struct {
	Line                ProjectLine
	Milestones          int
	CompletedMilestones int
	Tasks               progress.Stats
	EstimatedHours      float64
	ActualHours         float64
	Risks               []RiskLine
	Baselines           []baseline.Row
	Deviation           baseline.Summary
}

// BuildProjectReport computes the report of one project.
func BuildProjectReport(s *store.Store, projectID string) (ProjectReport, error) {
	p, err := s.GetProject(projectID)
	if err != nil {
		return ProjectReport{}, err
	}

	milestones := s.MilestonesOf(projectID)
	tasks := s.TasksByProject(projectID)

	r := ProjectReport{
		Line:           projectLine(s, p),
		Milestones:     len(milestones),
		Tasks:          progress.Count(tasks),
		EstimatedHours: progress.EstimatedHours(tasks),
		ActualHours:    progress.ActualHours(tasks),
		Baselines:      baseline.Compare(s.BaselinesOf(projectID), milestones),
	}
	for _, m := range milestones {
		if m.Status == domain.MilestoneCompleted {
			r.CompletedMilestones++
		}
	}
	for _, risk := range s.RisksOf(projectID) {
		r.Risks = append(r.Risks, riskLine(s, risk))
	}
	r.Deviation = baseline.Summarize(r.Baselines)

	return r, nil
}

// TaskLine is an assigned task with its project name.
type TaskLine struct {
	Task     domain.Task
	Project  string
	Progress int
}

// MyTasks returns the tasks assigned to userID, highest priority first and then
// by due date. An empty status keeps every status.
func MyTasks(s *store.Store, userID string, status domain.TaskStatus) []TaskLine {
	lines := make([]TaskLine, 0)
	for _, t := range s.TasksAssignedTo(userID) {
		if status != "" && t.Status != status {
			continue
		}
		lines = append(lines, TaskLine{Task: t, Project: projectName(s, t.ProjectID), Progress: progress.TaskProgress(t)})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i].Task, lines[j].Task
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		return a.DueDate.Before(b.DueDate)
	})
	return lines
}

// DelayLineFor resolves the names a delay request refers to.
func DelayLineFor(s *store.Store, r domain.DelayRequest) DelayLine {
	line := DelayLine{
		Request:   r,
		Task:      r.TaskID,
		Project:   projectName(s, r.ProjectID),
		Requester: s.UserName(r.RequesterID, "Unknown"),
		ExtraDays: calendar.DaysBetween(r.OriginalDueDate, r.RequestedDueDate),
	}
	if t, err := s.GetTask(r.TaskID); err == nil {
		line.Task = t.Title
	}
	return line
}

func projectLine(s *store.Store, p domain.Project) ProjectLine {
	pct, ok := progress.BudgetPercent(p)
	return ProjectLine{
		Project:   p,
		Owner:     s.UserName(p.OwnerID, "Unknown"),
		Progress:  s.ProjectProgress(p.ID),
		Budget:    pct,
		HasBudget: ok,
	}
}

func riskLine(s *store.Store, r domain.Risk) RiskLine {
	return RiskLine{Risk: r, Project: projectName(s, r.ProjectID), Owner: s.UserName(r.OwnerID, "Unassigned")}
}

func projectName(s *store.Store, id string) string {
	p, err := s.GetProject(id)
	if err != nil {
		return "Unknown project"
	}
	return p.Name
}
