// Package progress computes rollup percentages. Every function is a pure function
// of its arguments; nothing is cached, so an edited task list always yields a fresh value.
package progress

import (
	"math"

	"github.com/robby/projecthub/internal/domain"
)

// ProjectProgress returns round(100 * done / total) for the given tasks, or 0 when
// there are no tasks. Ties round away from zero (12.5 becomes 13).
func ProjectProgress(tasks []domain.Task) int {
	if len(tasks) == 0 {
		return 0
	}

	done := 0
	for _, t := range tasks {
		if t.Status == domain.TaskDone {
			done++
		}
	}
	return Percent(float64(done), float64(len(tasks)))
}

// BudgetPercent returns the share of the budget already used.
// ok is false when the project has no budget set; the percentage is 0 in that case.
// Overspend is reported as is (values above 100).
func BudgetPercent(p domain.Project) (pct int, ok bool) {
	if p.Budget <= 0 {
		return 0, false
	}
	return Percent(p.BudgetUsed, p.Budget), true
}

// TaskProgress returns the effort-based fill of a task bar:
// round(min(100, actual/estimated*100)), or 0 when no estimate is set.
func TaskProgress(t domain.Task) int {
	if t.EstimatedHours <= 0 {
		return 0
	}
	return Percent(math.Min(t.ActualHours, t.EstimatedHours), t.EstimatedHours)
}

// Percent returns round(100 * part / whole), or 0 when whole is not positive.
func Percent(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * part / whole))
}

// Stats counts a task list by status.
type Stats struct {
	Total      int
	Todo       int
	InProgress int
	Review     int
	Done       int
	Blocked    int
}

// Count tallies tasks by status.
func Count(tasks []domain.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskTodo:
			s.Todo++
		case domain.TaskInProgress:
			s.InProgress++
		case domain.TaskReview:
			s.Review++
		case domain.TaskDone:
			s.Done++
		case domain.TaskBlocked:
			s.Blocked++
		}
	}
	return s
}

// EstimatedHours sums the estimates of a task list.
func EstimatedHours(tasks []domain.Task) float64 {
	var total float64
	for _, t := range tasks {
		total += t.EstimatedHours
	}
	return total
}

// ActualHours sums the logged hours of a task list.
func ActualHours(tasks []domain.Task) float64 {
	var total float64
	for _, t := range tasks {
		total += t.ActualHours
	}
	return total
}
