package report

import (
	"sort"
	"time"

	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/store"
)

// Member is one person on a project team.
type Member struct {
	User  domain.User
	Owner bool
	Tasks int
	Done  int
}

// Team lists the project owner followed by every assignee of the project's tasks,
// in the order they first appear. Users missing from the store are skipped.
func Team(s *store.Store, projectID string) ([]Member, error) {
	p, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0)
	index := make(map[string]int)
	add := func(userID string) int {
		if i, ok := index[userID]; ok {
			return i
		}
		u, err := s.GetUser(userID)
		if err != nil {
			return -1
		}
		index[userID] = len(members)
		members = append(members, Member{User: u})
		return len(members) - 1
	}

	if i := add(p.OwnerID); i >= 0 {
		members[i].Owner = true
	}
	for _, t := range s.TasksByProject(projectID) {
		if t.AssigneeID == "" {
			continue
		}
		i := add(t.AssigneeID)
		if i < 0 {
			continue
		}
		members[i].Tasks++
		if t.Status == domain.TaskDone {
			members[i].Done++
		}
	}
	return members, nil
}

// Entry is one task log line with its names resolved.
type Entry struct {
	Log  domain.TaskLog
	At   time.Time
	Task string
	User string
}

// Day groups the log entries of one calendar day (UTC), newest first.
type Day struct {
	Date    string
	Entries []Entry
}

// Activity returns a project's task log grouped by day, newest day first.
func Activity(s *store.Store, projectID string) []Day {
	entries := make([]Entry, 0)
	for _, l := range s.TaskLogsOf(projectID) {
		at, err := time.Parse(time.RFC3339, l.Timestamp)
		if err != nil {
			continue
		}
		e := Entry{Log: l, At: at.UTC(), Task: l.TaskID, User: s.UserName(l.UserID, "System")}
		if t, err := s.GetTask(l.TaskID); err == nil {
			e.Task = t.Title
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].At.After(entries[j].At) })

	days := make([]Day, 0)
	for _, e := range entries {
		date := e.At.Format(time.DateOnly)
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, Day{Date: date})
		}
		last := &days[len(days)-1]
		last.Entries = append(last.Entries, e)
	}
	return days
}

// DependencyLine is a task dependency with both task titles resolved.
type DependencyLine struct {
	Dependency domain.Dependency
	Task       string
	DependsOn  string
}

// Dependencies lists a project's task dependencies.
func Dependencies(s *store.Store, projectID string) []DependencyLine {
	title := func(id string) string {
		if t, err := s.GetTask(id); err == nil {
			return t.Title
		}
		return id
	}

	lines := make([]DependencyLine, 0)
	for _, d := range s.DependenciesOf(projectID) {
		lines = append(lines, DependencyLine{Dependency: d, Task: title(d.TaskID), DependsOn: title(d.DependsOnTaskID)})
	}
	return lines
}
