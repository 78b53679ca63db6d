// Package errors provides custom error types for the operations tracker API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors. ErrInvalidCredentials carries the
// same wording for an unknown username, a wrong password, and a deactivated
// account so that login failures are not enumerable.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "UNAUTHORIZED", Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Insufficient permissions", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound  = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUser = &AppError{Code: "DUPLICATE_USER", Message: "Username or email already exists", StatusCode: http.StatusBadRequest}
)

// Project errors.
var (
	ErrProjectNotFound = &AppError{Code: "PROJECT_NOT_FOUND", Message: "Project not found", StatusCode: http.StatusNotFound}
)

// Task errors.
var (
	ErrTaskNotFound = &AppError{Code: "TASK_NOT_FOUND", Message: "Task not found", StatusCode: http.StatusNotFound}
)

// Material errors.
var (
	ErrMaterialNotFound    = &AppError{Code: "MATERIAL_NOT_FOUND", Message: "Material not found", StatusCode: http.StatusNotFound}
	ErrInsufficientBalance = &AppError{Code: "INSUFFICIENT_BALANCE", Message: "Insufficient material balance", StatusCode: http.StatusBadRequest}
	ErrRequisitionNotFound = &AppError{Code: "REQUISITION_NOT_FOUND", Message: "Requisition not found", StatusCode: http.StatusNotFound}
)

// Equipment errors.
var (
	ErrEquipmentNotFound = &AppError{Code: "EQUIPMENT_NOT_FOUND", Message: "Equipment not found", StatusCode: http.StatusNotFound}
)

// Attendance errors.
var (
	ErrAttendanceNotFound   = &AppError{Code: "ATTENDANCE_NOT_FOUND", Message: "Attendance record not found", StatusCode: http.StatusNotFound}
	ErrAlreadyClockedIn     = &AppError{Code: "ALREADY_CLOCKED_IN", Message: "Already clocked in today", StatusCode: http.StatusBadRequest}
	ErrNoActiveClockIn      = &AppError{Code: "NO_ACTIVE_CLOCK_IN", Message: "No active clock-in found", StatusCode: http.StatusBadRequest}
	ErrLeaveRequestNotFound = &AppError{Code: "LEAVE_REQUEST_NOT_FOUND", Message: "Leave request not found", StatusCode: http.StatusNotFound}
)

// Document errors.
var (
	ErrDocumentNotFound = &AppError{Code: "DOCUMENT_NOT_FOUND", Message: "Document not found", StatusCode: http.StatusNotFound}
)

// Notification errors.
var (
	ErrNotificationNotFound = &AppError{Code: "NOTIFICATION_NOT_FOUND", Message: "Notification not found", StatusCode: http.StatusNotFound}
)
