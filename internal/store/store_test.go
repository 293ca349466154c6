package store

import (
	"testing"

	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newTestStore loads a fresh copy of the embedded fixture.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	data, err := fixture.Default()
	require.NoError(t, err)
	s, err := New(data, Options{})
	require.NoError(t, err)
	return s
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = id(item)
	}
	return out
}

func taskID(t domain.Task) string { return t.ID }

// TestNew verifies indexing and password hashing
func TestNew(t *testing.T) {
	s := newTestStore(t)

	assert.Len(t, s.Users(), 4)
	assert.Len(t, s.Projects(), 5)
	assert.Len(t, s.Milestones(), 14)
	assert.Len(t, s.Tasks(), 20)

	for _, u := range s.Users() {
		assert.Empty(t, u.Password, "plaintext must not survive loading")
		require.NotEmpty(t, u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("demo")))
	}
}

func TestNew_InvalidCost(t *testing.T) {
	data, err := fixture.Default()
	require.NoError(t, err)

	_, err = New(data, Options{BcryptCost: bcrypt.MaxCost + 1})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to hash password")
}

func TestLookups(t *testing.T) {
	s := newTestStore(t)

	t.Run("user", func(t *testing.T) {
		u, err := s.GetUser("u1")
		require.NoError(t, err)
		assert.Equal(t, domain.RolePM, u.Role)

		_, err = s.GetUser("nope")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("project", func(t *testing.T) {
		p, err := s.GetProject("p4")
		require.NoError(t, err)
		assert.Equal(t, domain.HealthRed, p.HealthStatus)

		_, err = s.GetProject("p99")
		assert.ErrorIs(t, err, ErrProjectNotFound)
		assert.Contains(t, err.Error(), "p99")
	})

	t.Run("milestone and task", func(t *testing.T) {
		m, err := s.GetMilestone("m2")
		require.NoError(t, err)
		assert.Equal(t, 45, m.Progress)

		_, err = s.GetMilestone("m0")
		assert.ErrorIs(t, err, ErrMilestoneNotFound)

		task, err := s.GetTask("t5")
		require.NoError(t, err)
		assert.Equal(t, domain.TaskInProgress, task.Status)

		_, err = s.GetTask("t0")
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("user name", func(t *testing.T) {
		assert.Equal(t, "Wang (PM)", s.UserName("u1", "?"))
		assert.Equal(t, "?", s.UserName("", "?"))
	})
}

func TestCollections(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, []string{"m1", "m2", "m3"}, ids(s.MilestonesOf("p1"), func(m domain.Milestone) string { return m.ID }))
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(s.TasksByMilestone("m1"), taskID))
	assert.Len(t, s.TasksByProject("p1"), 10)
	assert.Len(t, s.TasksAssignedTo("u3"), 6)
	assert.Len(t, s.RisksOf("p1"), 3)
	assert.Len(t, s.DelayRequestsOf("p1"), 2)
	assert.Len(t, s.Drafts("u1"), 2)
	assert.Len(t, s.Drafts(""), 2)
	assert.Empty(t, s.Drafts("u2"))
	assert.Len(t, s.NotificationsFor("u1"), 3)
	assert.Len(t, s.TaskLogsOf("p1"), 5)
	assert.Len(t, s.DependenciesOf("p1"), 5)
	assert.Equal(t, []string{"bl1", "bl2", "bl3"}, ids(s.BaselinesOf("p1"), func(b domain.Baseline) string { return b.ID }))
}

func TestCollections_EmptyResultsAreNotNil(t *testing.T) {
	s := newTestStore(t)

	assert.NotNil(t, s.MilestonesOf("p99"))
	assert.Empty(t, s.MilestonesOf("p99"))
	assert.NotNil(t, s.TasksByProject("p5"))
	assert.Empty(t, s.TasksByProject("p5"))
	assert.NotNil(t, s.TasksByMilestone("m99"))
}

func TestCollections_ReturnCopies(t *testing.T) {
	s := newTestStore(t)

	tasks := s.TasksByProject("p1")
	tasks[0].Status = domain.TaskBlocked

	got, err := s.GetTask(tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, got.Status)

	projects := s.Projects()
	projects[0].Name = "changed"
	p, _ := s.GetProject(projects[0].ID)
	assert.NotEqual(t, "changed", p.Name)
}

func TestTasksGroupedByMilestone(t *testing.T) {
	s := newTestStore(t)

	grouped := s.TasksGroupedByMilestone("p5")
	assert.Len(t, grouped, 3, "every milestone gets an entry")
	for _, tasks := range grouped {
		assert.Empty(t, tasks)
	}

	grouped = s.TasksGroupedByMilestone("p1")
	assert.Equal(t, []string{"t4", "t5", "t6", "t7"}, ids(grouped["m2"], taskID))
}

func TestProjectProgress(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		project string
		want    int
	}{
		{"p1", 50},
		{"p2", 25},
		{"p3", 0},
		{"p4", 33},
		{"p5", 0},
		{"missing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.project, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ProjectProgress(tt.project))
		})
	}
}

// TestSetTaskStatus verifies progress follows status edits
func TestSetTaskStatus(t *testing.T) {
	s := newTestStore(t)

	t.Run("progress is recomputed", func(t *testing.T) {
		before := s.ProjectProgress("p1")

		require.NoError(t, s.SetTaskStatus("t6", domain.TaskDone))
		assert.Greater(t, s.ProjectProgress("p1"), before)
		assert.Equal(t, 60, s.ProjectProgress("p1"))
	})

	t.Run("invalid status", func(t *testing.T) {
		err := s.SetTaskStatus("t6", domain.TaskStatus("archived"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("nonexistent task", func(t *testing.T) {
		err := s.SetTaskStatus("nonexistent", domain.TaskDone)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

// TestRollbackTaskStatus verifies status edit rollback
func TestRollbackTaskStatus(t *testing.T) {
	t.Run("successful rollback", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.SetTaskStatus("t5", domain.TaskReview))
		moved, err := s.GetTask("t5")
		require.NoError(t, err)
		assert.Equal(t, domain.TaskReview, moved.Status)

		require.NoError(t, s.RollbackTaskStatus())

		restored, err := s.GetTask("t5")
		require.NoError(t, err)
		assert.Equal(t, domain.TaskInProgress, restored.Status)
	})

	t.Run("no rollback state", func(t *testing.T) {
		s := newTestStore(t)
		err := s.RollbackTaskStatus()
		assert.ErrorIs(t, err, ErrNoRollback)
	})

	t.Run("rollback clears state", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.SetTaskStatus("t5", domain.TaskDone))
		require.NoError(t, s.RollbackTaskStatus())

		// Try to rollback again - should fail
		assert.ErrorIs(t, s.RollbackTaskStatus(), ErrNoRollback)
	})

	t.Run("failed edit keeps previous rollback", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.SetTaskStatus("t5", domain.TaskDone))
		assert.Error(t, s.SetTaskStatus("t5", "bogus"))

		require.NoError(t, s.RollbackTaskStatus())
		restored, _ := s.GetTask("t5")
		assert.Equal(t, domain.TaskInProgress, restored.Status)
	})
}
