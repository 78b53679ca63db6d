package models

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Project represents a construction project.
type Project struct {
	Base
	Name         string        `gorm:"not null" json:"name"`
	Description  string        `json:"description"`
	Location     string        `json:"location"`
	StartDate    *time.Time    `json:"start_date,omitempty"`
	EndDate      *time.Time    `json:"end_date,omitempty"`
	SupervisorID *uint         `json:"supervisor_id,omitempty"`
	Status       ProjectStatus `gorm:"not null;default:'planning'" json:"status"`

	Supervisor *User          `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Staff      []ProjectStaff `gorm:"foreignKey:ProjectID" json:"staff,omitempty"`
}

// ProjectStaff assigns a user to a project's team.
type ProjectStaff struct {
	Base
	ProjectID  uint      `gorm:"not null;index" json:"project_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
