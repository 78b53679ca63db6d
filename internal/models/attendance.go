package models

import "time"

// AttendanceStatus represents a worker's presence for a day.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusOnLeave AttendanceStatus = "on_leave"
)

// Attendance records one user's presence on one day, optionally with
// clock-in/clock-out times.
type Attendance struct {
	Base
	UserID         uint             `gorm:"not null;index" json:"user_id"`
	ProjectID      *uint            `gorm:"index" json:"project_id,omitempty"`
	AttendanceDate time.Time        `gorm:"not null;index" json:"attendance_date"`
	ClockInTime    *time.Time       `json:"clock_in_time,omitempty"`
	ClockOutTime   *time.Time       `json:"clock_out_time,omitempty"`
	HoursWorked    float64          `json:"hours_worked"`
	Status         AttendanceStatus `gorm:"not null;default:'present'" json:"status"`
	Notes          string           `json:"notes"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// LeaveStatus represents the review state of a leave request.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// LeaveRequest is a worker's request for time off. UserID is the ownership
// reference: workers only see their own requests.
type LeaveRequest struct {
	Base
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	StartDate      time.Time   `gorm:"not null" json:"start_date"`
	EndDate        time.Time   `gorm:"not null" json:"end_date"`
	LeaveType      string      `json:"leave_type"`
	Reason         string      `json:"reason"`
	Status         LeaveStatus `gorm:"not null;default:'pending'" json:"status"`
	ReviewedBy     *uint       `json:"reviewed_by,omitempty"`
	ReviewComments string      `json:"review_comments"`
	ReviewedAt     *time.Time  `json:"reviewed_at,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
