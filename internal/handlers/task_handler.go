package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
	"operationaltracker/internal/services"
)

// TaskHandler handles task management requests.
type TaskHandler struct {
	taskService services.TaskServicer
	audit       services.AuditServicer
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService services.TaskServicer, audit services.AuditServicer) *TaskHandler {
	return &TaskHandler{taskService: taskService, audit: audit}
}

// CreateTaskRequest represents the task creation payload.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	ProjectID   *uint      `json:"project_id"`
	AssignedTo  *uint      `json:"assigned_to"`
	Priority    string     `json:"priority" binding:"omitempty,task_priority"`
	Status      string     `json:"status" binding:"omitempty,task_status"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest represents a partial task update payload.
type UpdateTaskRequest struct {
	Title                *string    `json:"title" binding:"omitempty,max=255"`
	Description          *string    `json:"description"`
	AssignedTo           *uint      `json:"assigned_to"`
	Priority             *string    `json:"priority" binding:"omitempty,task_priority"`
	DueDate              *time.Time `json:"due_date"`
	Status               *string    `json:"status" binding:"omitempty,task_status"`
	ProgressNotes        *string    `json:"progress_notes"`
	CompletionPercentage *int       `json:"completion_percentage" binding:"omitempty,min=0,max=100"`
}

// LogActivityRequest represents the task activity payload.
type LogActivityRequest struct {
	ActivityType string  `json:"activity_type" binding:"required,max=100"`
	Description  string  `json:"description"`
	HoursWorked  float64 `json:"hours_worked" binding:"omitempty,min=0"`
}

// ListTasks returns tasks matching the optional filters.
// @Summary     List tasks
// @Description Get a paginated list of tasks, optionally filtered
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       project_id  query int    false "Filter by project"
// @Param       assigned_to query int    false "Filter by assignee"
// @Param       status      query string false "Filter by status"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Task] "Paginated tasks"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	filter := services.TaskFilter{}
	projectID, err := parseUintQuery(c, "project_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.ProjectID = projectID

	assignedTo, err := parseUintQuery(c, "assigned_to")
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.AssignedTo = assignedTo

	if status := c.Query("status"); status != "" {
		s := models.TaskStatus(status)
		filter.Status = &s
	}

	result, err := h.taskService.ListTasks(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTask returns one task.
// @Summary     Get task by ID
// @Description Get a single task with its project and assignee
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Task ID"
// @Success     200 {object} map[string]interface{} "Task details"
// @Failure     400 {object} ErrorResponse "Invalid task ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Router      /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.taskService.GetTaskByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// CreateTask creates a task (admin/manager/supervisor only).
// @Summary     Create task
// @Description Create a task; priority defaults to medium and status to pending
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTaskRequest true "Task data"
// @Success     201 {object} map[string]interface{} "Created task"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	task, err := h.taskService.CreateTask(identity.ID, services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		Priority:    models.TaskPriority(req.Priority),
		Status:      models.TaskStatus(req.Status),
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityTask, task.ID, map[string]interface{}{
		"title":      task.Title,
		"project_id": task.ProjectID,
	})

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// UpdateTask partially updates a task. Workers may only update tasks
// assigned to them; the ownership check lives in the service.
// @Summary     Update task
// @Description Partially update a task; workers may only update tasks assigned to them
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Task ID"
// @Param       request body UpdateTaskRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated task"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the task assignee"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Router      /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	params := services.UpdateTaskParams{
		Title:                req.Title,
		Description:          req.Description,
		AssignedTo:           req.AssignedTo,
		DueDate:              req.DueDate,
		ProgressNotes:        req.ProgressNotes,
		CompletionPercentage: req.CompletionPercentage,
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		params.Priority = &priority
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		params.Status = &status
	}

	task, err := h.taskService.UpdateTask(identity.ID, identity.Role, id, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionUpdate, models.AuditEntityTask, id, auditChanges(req))

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// LogActivity appends a progress entry to a task.
// @Summary     Log task activity
// @Description Append a progress entry to a task's activity log
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Task ID"
// @Param       request body LogActivityRequest true "Activity details"
// @Success     201 {object} map[string]interface{} "Created activity"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Router      /tasks/{id}/activity [post]
func (h *TaskHandler) LogActivity(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	activity, err := h.taskService.LogActivity(id, identity.ID, req.ActivityType, req.Description, req.HoursWorked)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityTaskActivity, activity.ID, map[string]interface{}{
		"task_id":       id,
		"activity_type": req.ActivityType,
	})

	c.JSON(http.StatusCreated, gin.H{"activity": activity})
}

// GetActivities returns a task's activity log.
// @Summary     List task activities
// @Description Get a task's activity log, newest first
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Task ID"
// @Success     200 {object} map[string]interface{} "Activity log"
// @Failure     400 {object} ErrorResponse "Invalid task ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Router      /tasks/{id}/activities [get]
func (h *TaskHandler) GetActivities(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	activities, err := h.taskService.GetTaskActivities(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}
