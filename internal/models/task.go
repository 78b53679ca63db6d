package models

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusBlocked    TaskStatus = "blocked"
)

// TaskPriority represents how urgent a task is.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task represents a unit of work on a project. AssignedTo is the ownership
// reference consulted when a worker tries to modify the task.
type Task struct {
	Base
	Title                string       `gorm:"not null" json:"title"`
	Description          string       `json:"description"`
	ProjectID            *uint        `gorm:"index" json:"project_id,omitempty"`
	AssignedTo           *uint        `gorm:"index" json:"assigned_to,omitempty"`
	CreatedBy            uint         `gorm:"not null" json:"created_by"`
	Priority             TaskPriority `gorm:"not null;default:'medium'" json:"priority"`
	Status               TaskStatus   `gorm:"not null;default:'pending'" json:"status"`
	DueDate              *time.Time   `json:"due_date,omitempty"`
	ProgressNotes        string       `json:"progress_notes"`
	CompletionPercentage int          `gorm:"default:0" json:"completion_percentage"`

	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee *User    `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Creator  *User    `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// TaskActivity is a progress log entry against a task.
type TaskActivity struct {
	Base
	TaskID       uint    `gorm:"not null;index" json:"task_id"`
	UserID       uint    `gorm:"not null" json:"user_id"`
	ActivityType string  `json:"activity_type"`
	Description  string  `json:"description"`
	HoursWorked  float64 `json:"hours_worked"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
