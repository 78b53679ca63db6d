package services

import (
	"time"

	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
)

// UserServicer defines the contract for user and credential management.
type UserServicer interface {
	CreateUser(username, password, email, fullName string, role models.Role) (*models.User, error)
	AttemptLogin(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	UpdateUser(actorID uint, actorRole models.Role, userID uint, params UpdateUserParams) (*models.User, error)
	SetUserActive(userID uint, active bool) (*models.User, error)
}

// UpdateUserParams holds optional fields for a partial user update.
type UpdateUserParams struct {
	Email    *string
	FullName *string
	Role     *models.Role
	Password *string
}

// ProjectServicer defines the contract for project management.
type ProjectServicer interface {
	CreateProject(params ProjectParams) (*models.Project, error)
	ListProjects(page pagination.PageRequest) (*pagination.PageResponse[models.Project], error)
	GetProjectByID(projectID uint) (*models.Project, error)
	UpdateProject(projectID uint, params ProjectParams) (*models.Project, error)
	AssignTeam(projectID uint, userIDs []uint) error
}

// ProjectParams holds fields for creating or partially updating a project.
type ProjectParams struct {
	Name         *string
	Description  *string
	Location     *string
	StartDate    *time.Time
	EndDate      *time.Time
	SupervisorID *uint
	Status       *models.ProjectStatus
}

// TaskFilter holds optional filter parameters for listing tasks.
type TaskFilter struct {
	ProjectID  *uint
	AssignedTo *uint
	Status     *models.TaskStatus
}

// CreateTaskParams holds fields for creating a task.
type CreateTaskParams struct {
	Title       string
	Description string
	ProjectID   *uint
	AssignedTo  *uint
	Priority    models.TaskPriority
	Status      models.TaskStatus
	DueDate     *time.Time
}

// UpdateTaskParams holds optional fields for a partial task update.
type UpdateTaskParams struct {
	Title                *string
	Description          *string
	AssignedTo           *uint
	Priority             *models.TaskPriority
	DueDate              *time.Time
	Status               *models.TaskStatus
	ProgressNotes        *string
	CompletionPercentage *int
}

// TaskServicer defines the contract for task management. UpdateTask applies
// the ownership policy: a worker may only update a task assigned to them.
type TaskServicer interface {
	CreateTask(creatorID uint, params CreateTaskParams) (*models.Task, error)
	ListTasks(filter TaskFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Task], error)
	GetTaskByID(taskID uint) (*models.Task, error)
	UpdateTask(actorID uint, actorRole models.Role, taskID uint, params UpdateTaskParams) (*models.Task, error)
	LogActivity(taskID, userID uint, activityType, description string, hoursWorked float64) (*models.TaskActivity, error)
	GetTaskActivities(taskID uint) ([]models.TaskActivity, error)
}

// MaterialParams holds fields for creating or partially updating a material.
type MaterialParams struct {
	Name        *string
	Description *string
	Unit        *string
	Quantity    *float64
	ProjectID   *uint
	UnitPrice   *float64
	Supplier    *string
}

// RequisitionFilter holds optional filter parameters for listing requisitions.
type RequisitionFilter struct {
	Status    *models.RequisitionStatus
	ProjectID *uint
}

// MaterialServicer defines the contract for material stock management.
type MaterialServicer interface {
	CreateMaterial(params MaterialParams) (*models.Material, error)
	ListMaterials(projectID *uint, page pagination.PageRequest) (*pagination.PageResponse[models.Material], error)
	GetMaterialByID(materialID uint) (*models.Material, error)
	UpdateMaterial(materialID uint, params MaterialParams) (*models.Material, error)
	RecordUsage(materialID, userID uint, quantityUsed float64, notes string) (*models.MaterialUsage, error)
	ListUsage(materialID uint) ([]models.MaterialUsage, error)
	CreateRequisition(requesterID, materialID uint, projectID *uint, quantityRequested float64, notes string) (*models.MaterialRequisition, error)
	ListRequisitions(filter RequisitionFilter) ([]models.MaterialRequisition, error)
	ReviewRequisition(reviewerID, requisitionID uint, status models.RequisitionStatus, approvedQuantity *float64) (*models.MaterialRequisition, error)
}

// EquipmentParams holds fields for creating or partially updating equipment.
type EquipmentParams struct {
	Name                *string
	Type                *string
	SerialNumber        *string
	ProjectID           *uint
	Status              *models.EquipmentStatus
	LastMaintenanceDate *time.Time
	NextMaintenanceDate *time.Time
}

// EquipmentServicer defines the contract for equipment tracking.
type EquipmentServicer interface {
	CreateEquipment(params EquipmentParams) (*models.Equipment, error)
	ListEquipment(projectID *uint, status *models.EquipmentStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Equipment], error)
	GetEquipmentByID(equipmentID uint) (*models.Equipment, error)
	UpdateEquipment(equipmentID uint, params EquipmentParams) (*models.Equipment, error)
	ReportBreakdown(equipmentID, reporterID uint, description, severity string, estimatedRepairDate *time.Time) (*models.EquipmentBreakdown, error)
	RecordMaintenance(equipmentID, performerID uint, maintenanceType, description string, cost float64, nextMaintenanceDate *time.Time) (*models.EquipmentMaintenance, error)
	ListBreakdowns(equipmentID uint) ([]models.EquipmentBreakdown, error)
	ListMaintenance(equipmentID uint) ([]models.EquipmentMaintenance, error)
}

// AttendanceFilter holds optional filter parameters for listing attendance.
type AttendanceFilter struct {
	UserID    *uint
	ProjectID *uint
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
}

// MarkAttendanceParams holds fields for a supervisor marking attendance.
type MarkAttendanceParams struct {
	UserID         uint
	ProjectID      *uint
	AttendanceDate time.Time
	ClockInTime    *time.Time
	ClockOutTime   *time.Time
	Status         models.AttendanceStatus
	Notes          string
}

// UpdateAttendanceParams holds optional fields for a partial attendance update.
type UpdateAttendanceParams struct {
	Status       *models.AttendanceStatus
	ClockInTime  *time.Time
	ClockOutTime *time.Time
	Notes        *string
}

// LeaveRequestFilter holds optional filter parameters for listing leave requests.
type LeaveRequestFilter struct {
	UserID *uint
	Status *models.LeaveStatus
}

// AttendanceServicer defines the contract for attendance and leave tracking.
// ListLeaveRequests applies the ownership policy: a worker without an
// explicit user filter only sees their own requests.
type AttendanceServicer interface {
	ListAttendance(filter AttendanceFilter) ([]models.Attendance, error)
	ClockIn(userID uint, projectID *uint, notes string) (*models.Attendance, error)
	ClockOut(userID uint) (*models.Attendance, error)
	MarkAttendance(params MarkAttendanceParams) (*models.Attendance, error)
	UpdateAttendance(attendanceID uint, params UpdateAttendanceParams) (*models.Attendance, error)
	CreateLeaveRequest(userID uint, startDate, endDate time.Time, leaveType, reason string) (*models.LeaveRequest, error)
	ListLeaveRequests(actorID uint, actorRole models.Role, filter LeaveRequestFilter) ([]models.LeaveRequest, error)
	ReviewLeaveRequest(reviewerID, requestID uint, status models.LeaveStatus, comments string) (*models.LeaveRequest, error)
}

// DocumentParams holds metadata for a document record.
type DocumentParams struct {
	ProjectID    *uint
	DocumentType string
	FileName     string
	FilePath     string
	FileSize     int64
	Description  string
}

// DocumentServicer defines the contract for document metadata. DeleteDocument
// applies the ownership policy: only an admin or the uploader may delete.
type DocumentServicer interface {
	CreateDocument(uploaderID uint, params DocumentParams) (*models.Document, error)
	ListDocuments(projectID *uint, page pagination.PageRequest) (*pagination.PageResponse[models.Document], error)
	GetDocumentByID(documentID uint) (*models.Document, error)
	DeleteDocument(actorID uint, actorRole models.Role, documentID uint) error
}

// NotificationServicer defines the contract for in-app notifications.
type NotificationServicer interface {
	ListNotifications(userID uint, unreadOnly bool) ([]models.Notification, error)
	MarkRead(userID, notificationID uint) (*models.Notification, error)
	MarkAllRead(userID uint) error
}

// DashboardReport aggregates headline counts for the dashboard.
type DashboardReport struct {
	Projects      EntityCount `json:"projects"`
	Tasks         EntityCount `json:"tasks"`
	Materials     int64       `json:"materials"`
	Equipment     EntityCount `json:"equipment"`
	PresentToday  int64       `json:"present_today"`
	ActiveWorkers int64       `json:"active_workers"`
	PendingLeaves int64       `json:"pending_leave_requests"`
}

// EntityCount is a total with an "active"-style sub-count.
type EntityCount struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// ProjectProgress summarizes task completion for one project.
type ProjectProgress struct {
	ProjectID      uint    `json:"project_id"`
	ProjectName    string  `json:"project_name"`
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	Percentage     float64 `json:"percentage"`
}

// ReportServicer defines the contract for read-only aggregation reports.
type ReportServicer interface {
	Dashboard() (*DashboardReport, error)
	ProjectProgressReport() ([]ProjectProgress, error)
}

// AuditFilter holds optional filter parameters for listing audit records.
type AuditFilter struct {
	EntityType *models.AuditEntity
	EntityID   *uint
	UserID     *uint
	StartDate  *time.Time
	EndDate    *time.Time
}

// AuditServicer defines the contract for audit logging. Log is best-effort
// and asynchronous: it never blocks the caller on persistence and never
// returns an error. List is the admin/manager read path.
type AuditServicer interface {
	Log(userID uint, action models.AuditAction, entityType models.AuditEntity, entityID uint, changes map[string]interface{})
	List(filter AuditFilter) ([]models.AuditLog, error)
	Close()
}
