// Package fixture decodes and validates the static ProjectHub data set.
// The default data set is embedded in the binary; an alternate YAML file with the
// same shape can be loaded from disk.
package fixture

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robby/projecthub/internal/calendar"
	"github.com/robby/projecthub/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed projecthub.yaml
var embedded []byte

// ErrInvalidFixture indicates the data set failed validation.
var ErrInvalidFixture = errors.New("invalid fixture")

// Data is the full set of collections making up a fixture, in file order.
type Data struct {
	Users         []domain.User         `yaml:"users" validate:"dive"`
	Projects      []domain.Project      `yaml:"projects" validate:"dive"`
	Milestones    []domain.Milestone    `yaml:"milestones" validate:"dive"`
	Tasks         []domain.Task         `yaml:"tasks" validate:"dive"`
	TaskLogs      []domain.TaskLog      `yaml:"task_logs" validate:"dive"`
	Risks         []domain.Risk         `yaml:"risks" validate:"dive"`
	DelayRequests []domain.DelayRequest `yaml:"delay_requests" validate:"dive"`
	Drafts        []domain.Draft        `yaml:"drafts" validate:"dive"`
	Notifications []domain.Notification `yaml:"notifications" validate:"dive"`
	Dependencies  []domain.Dependency   `yaml:"dependencies" validate:"dive"`
	Baselines     []domain.Baseline     `yaml:"baselines" validate:"dive"`
}

// ValidationError lists every problem found in a fixture.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d problem(s): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidFixture).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidFixture
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml key names so problems point at the fixture file, not Go fields.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Default returns the embedded demo data set.
func Default() (*Data, error) {
	return Decode(bytes.NewReader(embedded))
}

// Load reads and validates a fixture file.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses YAML from r and validates the result.
// Unknown keys are rejected so that typos in a fixture surface immediately.
func Decode(r io.Reader) (*Data, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data Data
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Validate checks field constraints and cross-references between collections.
// It returns a *ValidationError describing every problem, or nil.
func (d *Data) Validate() error {
	var problems []string

	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate fixture: %w", err)
		}
		for _, e := range verrs {
			problems = append(problems, fmt.Sprintf("%s: failed %q", strings.TrimPrefix(e.Namespace(), "Data."), tagWithParam(e)))
		}
	}

	problems = append(problems, d.checkReferences()...)
	problems = append(problems, d.checkDates()...)

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func tagWithParam(e validator.FieldError) string {
	if e.Param() == "" {
		return e.Tag()
	}
	return e.Tag() + "=" + e.Param()
}

// checkReferences verifies ids are unique and that every reference resolves.
func (d *Data) checkReferences() []string {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	users := make(map[string]bool, len(d.Users))
	for _, u := range d.Users {
		if users[u.ID] {
			addf("users: duplicate id %q", u.ID)
		}
		users[u.ID] = true
	}

	projects := make(map[string]bool, len(d.Projects))
	for _, p := range d.Projects {
		if projects[p.ID] {
			addf("projects: duplicate id %q", p.ID)
		}
		projects[p.ID] = true
		if !users[p.OwnerID] {
			addf("projects[%s]: unknown owner %q", p.ID, p.OwnerID)
		}
	}

	milestoneProject := make(map[string]string, len(d.Milestones))
	for _, m := range d.Milestones {
		if _, dup := milestoneProject[m.ID]; dup {
			addf("milestones: duplicate id %q", m.ID)
		}
		milestoneProject[m.ID] = m.ProjectID
		if !projects[m.ProjectID] {
			addf("milestones[%s]: unknown project %q", m.ID, m.ProjectID)
		}
	}

	tasks := make(map[string]bool, len(d.Tasks))
	for _, t := range d.Tasks {
		if tasks[t.ID] {
			addf("tasks: duplicate id %q", t.ID)
		}
		tasks[t.ID] = true

		owner, ok := milestoneProject[t.MilestoneID]
		switch {
		case !ok:
			addf("tasks[%s]: unknown milestone %q", t.ID, t.MilestoneID)
		case owner != t.ProjectID:
			addf("tasks[%s]: project %q does not match milestone %s (project %q)", t.ID, t.ProjectID, t.MilestoneID, owner)
		}
		if t.AssigneeID != "" && !users[t.AssigneeID] {
			addf("tasks[%s]: unknown assignee %q", t.ID, t.AssigneeID)
		}
	}

	for _, l := range d.TaskLogs {
		if !tasks[l.TaskID] {
			addf("task_logs[%s]: unknown task %q", l.ID, l.TaskID)
		}
	}
	for _, r := range d.Risks {
		if !projects[r.ProjectID] {
			addf("risks[%s]: unknown project %q", r.ID, r.ProjectID)
		}
	}
	for _, dr := range d.DelayRequests {
		if !tasks[dr.TaskID] {
			addf("delay_requests[%s]: unknown task %q", dr.ID, dr.TaskID)
		}
		if !users[dr.RequesterID] {
			addf("delay_requests[%s]: unknown requester %q", dr.ID, dr.RequesterID)
		}
	}
	for _, dft := range d.Drafts {
		if dft.ProjectID != "" && !projects[dft.ProjectID] {
			addf("drafts[%s]: unknown project %q", dft.ID, dft.ProjectID)
		}
	}
	for _, n := range d.Notifications {
		if !users[n.UserID] {
			addf("notifications[%s]: unknown user %q", n.ID, n.UserID)
		}
	}
	for _, dep := range d.Dependencies {
		if !tasks[dep.TaskID] || !tasks[dep.DependsOnTaskID] {
			addf("dependencies[%s]: unknown task", dep.ID)
		}
	}
	for _, b := range d.Baselines {
		if owner, ok := milestoneProject[b.MilestoneID]; !ok || owner != b.ProjectID {
			addf("baselines[%s]: milestone %q does not belong to project %q", b.ID, b.MilestoneID, b.ProjectID)
		}
	}

	return problems
}

// checkDates requires every scheduled entity to carry its dates.
func (d *Data) checkDates() []string {
	var problems []string
	missing := func(kind, id, field string, date calendar.Date) {
		if date.IsZero() {
			problems = append(problems, fmt.Sprintf("%s[%s]: missing %s", kind, id, field))
		}
	}

	for _, p := range d.Projects {
		missing("projects", p.ID, "start_date", p.StartDate)
		missing("projects", p.ID, "end_date", p.EndDate)
	}
	for _, m := range d.Milestones {
		missing("milestones", m.ID, "start_date", m.StartDate)
		missing("milestones", m.ID, "due_date", m.DueDate)
	}
	for _, t := range d.Tasks {
		missing("tasks", t.ID, "start_date", t.StartDate)
		missing("tasks", t.ID, "due_date", t.DueDate)
	}
	for _, b := range d.Baselines {
		missing("baselines", b.ID, "planned_end", b.PlannedEnd)
	}
	return problems
}
