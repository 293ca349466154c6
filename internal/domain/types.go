// Package domain defines the ProjectHub entities: users, projects, milestones, tasks
// and the records that hang off them (risks, delay requests, drafts, notifications).
// Entities are plain values; derived figures such as progress live in other packages.
package domain

import "github.com/robby/projecthub/internal/calendar"

// Role gates which screens and actions a user is shown.
type Role string

const (
	RolePM        Role = "PM"
	RoleMember    Role = "Member"
	RoleExecutive Role = "Executive"
)

// User is a person who can log in to the dashboard.
type User struct {
	ID         string `yaml:"id" validate:"required"`
	Email      string `yaml:"email" validate:"required,email"`
	Name       string `yaml:"name" validate:"required"`
	Role       Role   `yaml:"role" validate:"oneof=PM Member Executive"`
	Department string `yaml:"department"`

	// Password is only populated while decoding a fixture; the store replaces it
	// with PasswordHash on load.
	Password     string `yaml:"password,omitempty"`
	PasswordHash []byte `yaml:"-"`
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// ProjectStatuses lists project statuses in display order.
var ProjectStatuses = []ProjectStatus{ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled}

// HealthStatus is the traffic-light health of a project.
type HealthStatus string

const (
	HealthGreen  HealthStatus = "green"
	HealthYellow HealthStatus = "yellow"
	HealthRed    HealthStatus = "red"
)

// HealthStatuses lists health values in display order.
var HealthStatuses = []HealthStatus{HealthGreen, HealthYellow, HealthRed}

// SmartGoals holds the five SMART goal statements of a project.
type SmartGoals struct {
	Specific   string `yaml:"S"`
	Measurable string `yaml:"M"`
	Achievable string `yaml:"A"`
	Relevant   string `yaml:"R"`
	TimeBound  string `yaml:"T"`
}

// Project is the top-level unit of work.
type Project struct {
	ID           string        `yaml:"id" validate:"required"`
	Name         string        `yaml:"name" validate:"required"`
	Code         string        `yaml:"code" validate:"required"`
	Type         string        `yaml:"type" validate:"omitempty,oneof=internal external research"`
	Level        string        `yaml:"level" validate:"omitempty,oneof=high medium low"`
	Status       ProjectStatus `yaml:"status" validate:"oneof=planning in_progress on_hold completed cancelled"`
	HealthStatus HealthStatus  `yaml:"health_status" validate:"oneof=green yellow red"`
	StartDate    calendar.Date `yaml:"start_date"`
	EndDate      calendar.Date `yaml:"end_date"`
	Budget       float64       `yaml:"budget" validate:"gte=0"`
	BudgetUsed   float64       `yaml:"budget_used" validate:"gte=0"`
	OwnerID      string        `yaml:"owner_id" validate:"required"`
	SmartGoals   SmartGoals    `yaml:"smart_goals"`
	Description  string        `yaml:"description"`
}

// MilestoneStatus is the state of a milestone.
type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneOverdue    MilestoneStatus = "overdue"
)

// Milestone groups tasks within a project. Progress is stored, not derived.
type Milestone struct {
	ID          string          `yaml:"id" validate:"required"`
	ProjectID   string          `yaml:"project_id" validate:"required"`
	Name        string          `yaml:"name" validate:"required"`
	Description string          `yaml:"description"`
	StartDate   calendar.Date   `yaml:"start_date"`
	DueDate     calendar.Date   `yaml:"due_date"`
	Status      MilestoneStatus `yaml:"status" validate:"oneof=pending in_progress completed overdue"`
	Progress    int             `yaml:"progress" validate:"gte=0,lte=100"`
}

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
	TaskBlocked    TaskStatus = "blocked"
)

// TaskStatuses lists task statuses in board column order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskDone, TaskBlocked}

// Label returns the display name of a task status.
func (s TaskStatus) Label() string {
	switch s {
	case TaskTodo:
		return "Todo"
	case TaskInProgress:
		return "In Progress"
	case TaskReview:
		return "Review"
	case TaskDone:
		return "Done"
	case TaskBlocked:
		return "Blocked"
	}
	return string(s)
}

// Priority ranks tasks.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities from most to least urgent (high = 0).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Task is a unit of assigned work. ProjectID is denormalized from the milestone.
type Task struct {
	ID             string        `yaml:"id" validate:"required"`
	MilestoneID    string        `yaml:"milestone_id" validate:"required"`
	ProjectID      string        `yaml:"project_id" validate:"required"`
	Title          string        `yaml:"title" validate:"required"`
	Description    string        `yaml:"description"`
	Status         TaskStatus    `yaml:"status" validate:"oneof=todo in_progress review done blocked"`
	Priority       Priority      `yaml:"priority" validate:"oneof=high medium low"`
	AssigneeID     string        `yaml:"assignee_id"`
	StartDate      calendar.Date `yaml:"start_date"`
	DueDate        calendar.Date `yaml:"due_date"`
	EstimatedHours float64       `yaml:"estimated_hours" validate:"gte=0"`
	ActualHours    float64       `yaml:"actual_hours" validate:"gte=0"`
}

// TaskLog is one entry in a task's activity history.
type TaskLog struct {
	ID        string `yaml:"id" validate:"required"`
	TaskID    string `yaml:"task_id" validate:"required"`
	UserID    string `yaml:"user_id"`
	Action    string `yaml:"action" validate:"oneof=status_change comment"`
	Detail    string `yaml:"detail"`
	Timestamp string `yaml:"timestamp" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Impact is the severity of a risk.
type Impact string

const (
	ImpactCritical Impact = "critical"
	ImpactHigh     Impact = "high"
	ImpactMedium   Impact = "medium"
	ImpactLow      Impact = "low"
)

// Rank orders impacts from most to least severe (critical = 0).
func (i Impact) Rank() int {
	switch i {
	case ImpactCritical:
		return 0
	case ImpactHigh:
		return 1
	case ImpactMedium:
		return 2
	case ImpactLow:
		return 3
	}
	return 4
}

// RiskStatus is the handling state of a risk.
type RiskStatus string

const (
	RiskOpen       RiskStatus = "open"
	RiskMitigating RiskStatus = "mitigating"
	RiskResolved   RiskStatus = "resolved"
	RiskAccepted   RiskStatus = "accepted"
)

// Risk is a tracked project risk.
type Risk struct {
	ID          string     `yaml:"id" validate:"required"`
	ProjectID   string     `yaml:"project_id" validate:"required"`
	Title       string     `yaml:"title" validate:"required"`
	Description string     `yaml:"description"`
	Impact      Impact     `yaml:"impact" validate:"oneof=critical high medium low"`
	Probability float64    `yaml:"probability" validate:"gte=0,lte=1"`
	Status      RiskStatus `yaml:"status" validate:"oneof=open mitigating resolved accepted"`
	Mitigation  string     `yaml:"mitigation"`
	OwnerID     string     `yaml:"owner_id"`
	CreatedAt   string     `yaml:"created_at"`
}

// DelayStatus is the review state of a delay request.
type DelayStatus string

const (
	DelayPending  DelayStatus = "pending"
	DelayApproved DelayStatus = "approved"
	DelayRejected DelayStatus = "rejected"
)

// DelayRequest asks to move a task's due date.
type DelayRequest struct {
	ID               string        `yaml:"id" validate:"required"`
	TaskID           string        `yaml:"task_id" validate:"required"`
	ProjectID        string        `yaml:"project_id" validate:"required"`
	RequesterID      string        `yaml:"requester_id" validate:"required"`
	Reason           string        `yaml:"reason"`
	OriginalDueDate  calendar.Date `yaml:"original_due_date"`
	RequestedDueDate calendar.Date `yaml:"requested_due_date"`
	Status           DelayStatus   `yaml:"status" validate:"oneof=pending approved rejected"`
	ReviewerID       string        `yaml:"reviewer_id,omitempty"`
	ReviewComment    string        `yaml:"review_comment,omitempty"`
	CreatedAt        string        `yaml:"created_at"`
}

// Draft is an unpublished note, optionally attached to a project.
type Draft struct {
	ID        string `yaml:"id" validate:"required"`
	ProjectID string `yaml:"project_id,omitempty"`
	Title     string `yaml:"title" validate:"required"`
	Content   string `yaml:"content"`
	AuthorID  string `yaml:"author_id" validate:"required"`
	UpdatedAt string `yaml:"updated_at"`
}

// NotificationType drives the notification icon/color.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifyWarning NotificationType = "warning"
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
)

// Notification is a message addressed to one user.
type Notification struct {
	ID        string           `yaml:"id" validate:"required"`
	UserID    string           `yaml:"user_id" validate:"required"`
	Title     string           `yaml:"title" validate:"required"`
	Message   string           `yaml:"message"`
	Type      NotificationType `yaml:"type" validate:"oneof=info warning success error"`
	Read      bool             `yaml:"read"`
	CreatedAt string           `yaml:"created_at"`
	Link      string           `yaml:"link,omitempty"`
}

// DependencyType is the scheduling relation between two tasks.
type DependencyType string

const (
	DependencyFS DependencyType = "FS" // finish-to-start
	DependencySS DependencyType = "SS" // start-to-start
	DependencyFF DependencyType = "FF" // finish-to-finish
	DependencySF DependencyType = "SF" // start-to-finish
)

// Dependency links a downstream task to the upstream task it waits on.
type Dependency struct {
	ID              string         `yaml:"id" validate:"required"`
	TaskID          string         `yaml:"task_id" validate:"required"`
	DependsOnTaskID string         `yaml:"depends_on_task_id" validate:"required,nefield=TaskID"`
	Type            DependencyType `yaml:"type" validate:"oneof=FS SS FF SF"`
}

// Baseline is a recorded planned completion date for a milestone.
type Baseline struct {
	ID           string         `yaml:"id" validate:"required"`
	ProjectID    string         `yaml:"project_id" validate:"required"`
	MilestoneID  string         `yaml:"milestone_id" validate:"required"`
	SnapshotName string         `yaml:"snapshot_name" validate:"required"`
	SnapshotAt   calendar.Date  `yaml:"snapshot_at"`
	PlannedEnd   calendar.Date  `yaml:"planned_end"`
	ActualEnd    *calendar.Date `yaml:"actual_end,omitempty"`
}
