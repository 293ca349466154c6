// Package store provides read access over the ProjectHub fixture collections.
// Lookups are indexed once at construction; collection accessors return fresh
// slices in fixture order so callers can never mutate the store through them.
// The only write path is SetTaskStatus, the in-memory edit layer used by the board.
package store

import (
	"errors"
	"fmt"

	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/fixture"
	"github.com/robby/projecthub/internal/progress"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrProjectNotFound indicates the requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrMilestoneNotFound indicates the requested milestone does not exist.
	ErrMilestoneNotFound = errors.New("milestone not found")
	// ErrTaskNotFound indicates the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidStatus indicates a task status outside the known set.
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrNoRollback indicates there is no task edit to revert.
	ErrNoRollback = errors.New("no rollback state available")
)

// Options tunes store construction.
type Options struct {
	// BcryptCost is the cost used to hash fixture passwords. Zero means bcrypt.MinCost.
	BcryptCost int
	Logger     *zap.Logger
}

// Store holds one loaded fixture.
type Store struct {
	data *fixture.Data
	log  *zap.Logger

	users      map[string]int // ID -> index into data.Users
	projects   map[string]int
	milestones map[string]int
	tasks      map[string]int

	// Rollback state for the last status edit
	rollback *statusEdit
}

type statusEdit struct {
	taskID   string
	previous domain.TaskStatus
}

// New indexes data and replaces every plaintext fixture password with a bcrypt hash.
// The store takes ownership of data.
func New(data *fixture.Data, opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.MinCost
	}

	s := &Store{
		data:       data,
		log:        log,
		users:      make(map[string]int, len(data.Users)),
		projects:   make(map[string]int, len(data.Projects)),
		milestones: make(map[string]int, len(data.Milestones)),
		tasks:      make(map[string]int, len(data.Tasks)),
	}

	for i := range data.Users {
		u := &data.Users[i]
		if u.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password for user %s: %w", u.ID, err)
			}
			u.PasswordHash = hash
			u.Password = ""
		}
		s.users[u.ID] = i
	}
	for i, p := range data.Projects {
		s.projects[p.ID] = i
	}
	for i, m := range data.Milestones {
		s.milestones[m.ID] = i
	}
	for i, t := range data.Tasks {
		s.tasks[t.ID] = i
	}

	log.Info("fixture indexed",
		zap.Int("users", len(data.Users)),
		zap.Int("projects", len(data.Projects)),
		zap.Int("milestones", len(data.Milestones)),
		zap.Int("tasks", len(data.Tasks)),
	)

	return s, nil
}

// Users returns all users in fixture order.
func (s *Store) Users() []domain.User {
	return clone(s.data.Users)
}

// GetUser returns the user with the given ID, or ErrUserNotFound.
func (s *Store) GetUser(id string) (domain.User, error) {
	i, ok := s.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return s.data.Users[i], nil
}

// UserName returns the display name of a user, or fallback when the ID is unknown.
func (s *Store) UserName(id, fallback string) string {
	u, err := s.GetUser(id)
	if err != nil {
		return fallback
	}
	return u.Name
}

// Projects returns all projects in fixture order.
func (s *Store) Projects() []domain.Project {
	return clone(s.data.Projects)
}

// GetProject returns the project with the given ID, or ErrProjectNotFound.
func (s *Store) GetProject(id string) (domain.Project, error) {
	i, ok := s.projects[id]
	if !ok {
		return domain.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return s.data.Projects[i], nil
}

// GetMilestone returns the milestone with the given ID, or ErrMilestoneNotFound.
func (s *Store) GetMilestone(id string) (domain.Milestone, error) {
	i, ok := s.milestones[id]
	if !ok {
		return domain.Milestone{}, fmt.Errorf("%w: %s", ErrMilestoneNotFound, id)
	}
	return s.data.Milestones[i], nil
}

// GetTask returns the task with the given ID, or ErrTaskNotFound.
func (s *Store) GetTask(id string) (domain.Task, error) {
	i, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return s.data.Tasks[i], nil
}

// Milestones returns every milestone in fixture order.
func (s *Store) Milestones() []domain.Milestone {
	return clone(s.data.Milestones)
}

// MilestonesOf returns a project's milestones in fixture order.
func (s *Store) MilestonesOf(projectID string) []domain.Milestone {
	return filter(s.data.Milestones, func(m domain.Milestone) bool { return m.ProjectID == projectID })
}

// Tasks returns every task in fixture order.
func (s *Store) Tasks() []domain.Task {
	return clone(s.data.Tasks)
}

// TasksByMilestone returns the tasks of one milestone.
func (s *Store) TasksByMilestone(milestoneID string) []domain.Task {
	return filter(s.data.Tasks, func(t domain.Task) bool { return t.MilestoneID == milestoneID })
}

// TasksByProject returns every task of a project across its milestones.
func (s *Store) TasksByProject(projectID string) []domain.Task {
	return filter(s.data.Tasks, func(t domain.Task) bool { return t.ProjectID == projectID })
}

// TasksAssignedTo returns the tasks whose assignee is userID.
func (s *Store) TasksAssignedTo(userID string) []domain.Task {
	return filter(s.data.Tasks, func(t domain.Task) bool { return t.AssigneeID == userID })
}

// TasksGroupedByMilestone returns a project's tasks keyed by milestone ID.
// Every milestone of the project has an entry, even when it has no tasks.
func (s *Store) TasksGroupedByMilestone(projectID string) map[string][]domain.Task {
	grouped := make(map[string][]domain.Task)
	for _, m := range s.MilestonesOf(projectID) {
		grouped[m.ID] = []domain.Task{}
	}
	for _, t := range s.data.Tasks {
		if t.ProjectID == projectID {
			grouped[t.MilestoneID] = append(grouped[t.MilestoneID], t)
		}
	}
	return grouped
}

// Risks returns every risk in fixture order.
func (s *Store) Risks() []domain.Risk {
	return clone(s.data.Risks)
}

// RisksOf returns the risks of one project.
func (s *Store) RisksOf(projectID string) []domain.Risk {
	return filter(s.data.Risks, func(r domain.Risk) bool { return r.ProjectID == projectID })
}

// DelayRequests returns every delay request in fixture order.
func (s *Store) DelayRequests() []domain.DelayRequest {
	return clone(s.data.DelayRequests)
}

// DelayRequestsOf returns the delay requests raised in one project.
func (s *Store) DelayRequestsOf(projectID string) []domain.DelayRequest {
	return filter(s.data.DelayRequests, func(d domain.DelayRequest) bool { return d.ProjectID == projectID })
}

// Drafts returns the drafts written by authorID. An empty authorID returns all drafts.
func (s *Store) Drafts(authorID string) []domain.Draft {
	return filter(s.data.Drafts, func(d domain.Draft) bool { return authorID == "" || d.AuthorID == authorID })
}

// NotificationsFor returns the notifications addressed to userID.
func (s *Store) NotificationsFor(userID string) []domain.Notification {
	return filter(s.data.Notifications, func(n domain.Notification) bool { return n.UserID == userID })
}

// TaskLogsOf returns the activity log entries of every task in a project.
func (s *Store) TaskLogsOf(projectID string) []domain.TaskLog {
	return filter(s.data.TaskLogs, func(l domain.TaskLog) bool {
		i, ok := s.tasks[l.TaskID]
		return ok && s.data.Tasks[i].ProjectID == projectID
	})
}

// DependenciesOf returns the dependencies whose downstream task belongs to projectID.
func (s *Store) DependenciesOf(projectID string) []domain.Dependency {
	return filter(s.data.Dependencies, func(d domain.Dependency) bool {
		i, ok := s.tasks[d.TaskID]
		return ok && s.data.Tasks[i].ProjectID == projectID
	})
}

// BaselinesOf returns the recorded baselines of a project.
func (s *Store) BaselinesOf(projectID string) []domain.Baseline {
	return filter(s.data.Baselines, func(b domain.Baseline) bool { return b.ProjectID == projectID })
}

// ProjectProgress recomputes a project's completion percentage from its current tasks.
func (s *Store) ProjectProgress(projectID string) int {
	return progress.ProjectProgress(s.TasksByProject(projectID))
}

// SetTaskStatus changes a task's status in memory and records the previous value
// so the edit can be reverted with RollbackTaskStatus.
func (s *Store) SetTaskStatus(taskID string, status domain.TaskStatus) error {
	if !validStatus(status) {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	i, ok := s.tasks[taskID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	task := &s.data.Tasks[i]
	s.rollback = &statusEdit{taskID: taskID, previous: task.Status}
	task.Status = status

	s.log.Info("task status changed",
		zap.String("task", taskID),
		zap.String("from", string(s.rollback.previous)),
		zap.String("to", string(status)),
	)
	return nil
}

// RollbackTaskStatus reverts the last SetTaskStatus call.
// Returns ErrNoRollback if there is nothing to revert.
func (s *Store) RollbackTaskStatus() error {
	if s.rollback == nil {
		return ErrNoRollback
	}

	i := s.tasks[s.rollback.taskID]
	s.data.Tasks[i].Status = s.rollback.previous
	s.log.Info("task status rolled back",
		zap.String("task", s.rollback.taskID),
		zap.String("to", string(s.rollback.previous)),
	)

	// Clear rollback state
	s.rollback = nil
	return nil
}

func validStatus(status domain.TaskStatus) bool {
	for _, known := range domain.TaskStatuses {
		if status == known {
			return true
		}
	}
	return false
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
