package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)

	assert.Len(t, data.Users, 4)
	assert.Len(t, data.Projects, 5)
	assert.Len(t, data.Milestones, 14)
	assert.Len(t, data.Tasks, 20)
	assert.Len(t, data.TaskLogs, 12)
	assert.Len(t, data.Risks, 8)
	assert.Len(t, data.DelayRequests, 5)
	assert.Len(t, data.Drafts, 2)
	assert.Len(t, data.Notifications, 5)
	assert.Len(t, data.Dependencies, 10)
	assert.Len(t, data.Baselines, 10)

	// Spot-check decoding of dates, nested goals and optional fields
	p1 := data.Projects[0]
	assert.Equal(t, "EC-2026", p1.Code)
	assert.Equal(t, "2026-01-15", p1.StartDate.String())
	assert.NotEmpty(t, p1.SmartGoals.TimeBound)
	assert.Equal(t, "demo", data.Users[0].Password)
	assert.Empty(t, data.Drafts[1].ProjectID)
	require.NotNil(t, data.Baselines[0].ActualEnd)
	assert.Nil(t, data.Baselines[1].ActualEnd)
}

func TestDecode_FieldValidation(t *testing.T) {
	doc := `
users:
  - { id: u1, email: not-an-email, name: A, role: Boss }
projects:
  - { id: p1, name: P, code: P-1, status: planning, health_status: green, owner_id: u1, start_date: 2026-01-01, end_date: 2026-02-01, budget: 10, budget_used: 1 }
milestones:
  - { id: m1, project_id: p1, name: M, start_date: 2026-01-01, due_date: 2026-01-31, status: pending, progress: 140 }
`
	_, err := Decode(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFixture)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	joined := strings.Join(verr.Problems, "\n")
	assert.Contains(t, joined, "users[0].email")
	assert.Contains(t, joined, "users[0].role")
	assert.Contains(t, joined, "milestones[0].progress")
}

func TestDecode_References(t *testing.T) {
	doc := `
users:
  - { id: u1, email: a@demo.com, name: A, role: PM }
projects:
  - { id: p1, name: P, code: P-1, status: planning, health_status: green, owner_id: u9, start_date: 2026-01-01, end_date: 2026-02-01, budget: 10, budget_used: 1 }
  - { id: p2, name: Q, code: Q-1, status: planning, health_status: green, owner_id: u1, start_date: 2026-01-01, end_date: 2026-02-01, budget: 10, budget_used: 1 }
milestones:
  - { id: m1, project_id: p1, name: M, start_date: 2026-01-01, due_date: 2026-01-31, status: pending, progress: 0 }
tasks:
  - { id: t1, milestone_id: m1, project_id: p2, title: T, status: todo, priority: low, assignee_id: u1, start_date: 2026-01-01, due_date: 2026-01-02, estimated_hours: 1, actual_hours: 0 }
  - { id: t1, milestone_id: m7, project_id: p1, title: U, status: todo, priority: low, start_date: 2026-01-01, due_date: 2026-01-02, estimated_hours: 1, actual_hours: 0 }
`
	_, err := Decode(strings.NewReader(doc))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	joined := strings.Join(verr.Problems, "\n")
	assert.Contains(t, joined, `unknown owner "u9"`)
	assert.Contains(t, joined, `does not match milestone m1`)
	assert.Contains(t, joined, `duplicate id "t1"`)
	assert.Contains(t, joined, `unknown milestone "m7"`)
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader("userz: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode fixture")
}

func TestDecode_BadDate(t *testing.T) {
	doc := `
milestones:
  - { id: m1, project_id: p1, name: M, start_date: 2026-02-30, due_date: 2026-01-31, status: pending, progress: 0 }
`
	_, err := Decode(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2026-02-30")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, embedded, 0o600))

	data, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, data.Projects, 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecode_MissingDates(t *testing.T) {
	doc := `
users:
  - { id: u1, email: a@demo.com, name: A, role: PM }
projects:
  - { id: p1, name: P, code: P-1, status: planning, health_status: green, owner_id: u1, start_date: 2026-01-01, budget: 10, budget_used: 1 }
milestones:
  - { id: m1, project_id: p1, name: M, start_date: 2026-01-01, status: pending, progress: 0 }
`
	_, err := Decode(strings.NewReader(doc))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	assert.Contains(t, verr.Problems, "projects[p1]: missing end_date")
	assert.Contains(t, verr.Problems, "milestones[m1]: missing due_date")
}
