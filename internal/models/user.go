package models

// Role represents a user's role in the system.
// Roles are flat: no role inherits another's permissions. Each protected
// route declares its own allow-list.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
	RoleWorker     Role = "worker"
)

// User represents a system user. Users are never hard-deleted; an admin
// deactivates them instead.
type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `gorm:"not null;default:'worker'" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
