// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("user_role", validateUserRole)
		_ = v.RegisterValidation("project_status", validateProjectStatus)
		_ = v.RegisterValidation("task_status", validateTaskStatus)
		_ = v.RegisterValidation("task_priority", validateTaskPriority)
		_ = v.RegisterValidation("attendance_status", validateAttendanceStatus)
		_ = v.RegisterValidation("review_status", validateReviewStatus)
		_ = v.RegisterValidation("equipment_status", validateEquipmentStatus)
		_ = v.RegisterValidation("audit_entity", validateAuditEntity)
	}
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "manager", "supervisor", "worker":
		return true
	}
	return false
}

func validateProjectStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "planning", "active", "on_hold", "completed":
		return true
	}
	return false
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "in_progress", "completed", "blocked":
		return true
	}
	return false
}

func validateTaskPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "low", "medium", "high", "urgent":
		return true
	}
	return false
}

func validateAttendanceStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "present", "absent", "late", "on_leave":
		return true
	}
	return false
}

// validateReviewStatus covers the shared approve/reject vocabulary used by
// leave requests and material requisitions.
func validateReviewStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "approved", "rejected":
		return true
	}
	return false
}

func validateEquipmentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "operational", "maintenance", "broken", "retired":
		return true
	}
	return false
}

func validateAuditEntity(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "AUTH", "USER", "PROJECT", "PROJECT_TEAM", "TASK", "TASK_ACTIVITY",
		"MATERIAL", "MATERIAL_USAGE", "MATERIAL_REQUISITION",
		"EQUIPMENT", "EQUIPMENT_BREAKDOWN", "EQUIPMENT_MAINTENANCE",
		"ATTENDANCE", "LEAVE_REQUEST", "DOCUMENT":
		return true
	}
	return false
}
