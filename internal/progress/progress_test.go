package progress

import (
	"fmt"
	"testing"

	"github.com/robby/projecthub/internal/domain"
	"github.com/stretchr/testify/assert"
)

// tasksWithDone builds total tasks of which the first done are complete.
func tasksWithDone(total, done int) []domain.Task {
	tasks := make([]domain.Task, total)
	for i := range tasks {
		tasks[i] = domain.Task{ID: fmt.Sprintf("t%d", i+1), Status: domain.TaskTodo}
		if i < done {
			tasks[i].Status = domain.TaskDone
		}
	}
	return tasks
}

func TestProjectProgress(t *testing.T) {
	tests := []struct {
		name        string
		total, done int
		want        int
	}{
		{"no tasks", 0, 0, 0},
		{"none done", 4, 0, 0},
		{"all done", 3, 3, 100},
		{"twenty tasks nine done", 20, 9, 45},
		{"one third", 3, 1, 33},
		{"two thirds", 3, 2, 67},
		{"half rounds up", 8, 1, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectProgress(tasksWithDone(tt.total, tt.done)))
		})
	}
}

func TestProjectProgress_IgnoresOtherStatuses(t *testing.T) {
	tasks := []domain.Task{
		{Status: domain.TaskDone},
		{Status: domain.TaskReview},
		{Status: domain.TaskBlocked},
		{Status: domain.TaskInProgress},
	}
	assert.Equal(t, 25, ProjectProgress(tasks))
}

func TestProjectProgress_MonotonicInDone(t *testing.T) {
	for total := 1; total <= 25; total++ {
		prev := -1
		for done := 0; done <= total; done++ {
			got := ProjectProgress(tasksWithDone(total, done))
			assert.GreaterOrEqual(t, got, prev, "total=%d done=%d", total, done)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
			prev = got
		}
	}
}

func TestBudgetPercent(t *testing.T) {
	pct, ok := BudgetPercent(domain.Project{Budget: 2000000, BudgetUsed: 750000})
	assert.True(t, ok)
	assert.Equal(t, 38, pct) // 37.5 rounds up

	pct, ok = BudgetPercent(domain.Project{Budget: 800000, BudgetUsed: 620000})
	assert.True(t, ok)
	assert.Equal(t, 78, pct)

	pct, ok = BudgetPercent(domain.Project{Budget: 100, BudgetUsed: 150})
	assert.True(t, ok)
	assert.Equal(t, 150, pct)

	pct, ok = BudgetPercent(domain.Project{Budget: 0, BudgetUsed: 10})
	assert.False(t, ok, "zero budget is reported as unset")
	assert.Equal(t, 0, pct)
}

func TestTaskProgress(t *testing.T) {
	tests := []struct {
		name              string
		estimated, actual float64
		want              int
	}{
		{"no estimate", 0, 12, 0},
		{"not started", 30, 0, 0},
		{"partial", 35, 20, 57},
		{"over estimate is capped", 20, 25, 100},
		{"exact", 40, 40, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := domain.Task{EstimatedHours: tt.estimated, ActualHours: tt.actual}
			assert.Equal(t, tt.want, TaskProgress(task))
		})
	}
}

func TestCount(t *testing.T) {
	tasks := []domain.Task{
		{Status: domain.TaskDone, EstimatedHours: 10, ActualHours: 8},
		{Status: domain.TaskDone, EstimatedHours: 5, ActualHours: 6},
		{Status: domain.TaskBlocked, EstimatedHours: 3},
		{Status: domain.TaskTodo},
		{Status: domain.TaskReview},
		{Status: domain.TaskInProgress},
	}

	stats := Count(tasks)
	assert.Equal(t, Stats{Total: 6, Todo: 1, InProgress: 1, Review: 1, Done: 2, Blocked: 1}, stats)
	assert.Equal(t, 18.0, EstimatedHours(tasks))
	assert.Equal(t, 14.0, ActualHours(tasks))
}
