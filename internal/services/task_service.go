package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
)

// taskService handles task management and the task ownership policy.
type taskService struct {
	db *gorm.DB
}

// NewTaskService creates a new TaskServicer.
func NewTaskService(db *gorm.DB) TaskServicer {
	return &taskService{db: db}
}

// CreateTask creates a task; priority defaults to medium, status to pending.
func (s *taskService) CreateTask(creatorID uint, params CreateTaskParams) (*models.Task, error) {
	if params.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "task title is required")
	}

	task := &models.Task{
		Title:       params.Title,
		Description: params.Description,
		ProjectID:   params.ProjectID,
		AssignedTo:  params.AssignedTo,
		CreatedBy:   creatorID,
		Priority:    params.Priority,
		Status:      params.Status,
		DueDate:     params.DueDate,
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}

	if err := s.db.Create(task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return task, nil
}

// ListTasks returns tasks matching the filter, newest first.
func (s *taskService) ListTasks(filter TaskFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Task], error) {
	query := s.db.Model(&models.Task{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var tasks []models.Task
	if err := query.Preload("Project").
		Preload("Assignee").
		Preload("Creator").
		Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(tasks, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetTaskByID returns one task with its project, assignee and creator.
func (s *taskService) GetTaskByID(taskID uint) (*models.Task, error) {
	var task models.Task
	err := s.db.Preload("Project").
		Preload("Assignee").
		Preload("Creator").
		First(&task, taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &task, nil
}

// UpdateTask applies a partial update after the ownership check: elevated
// roles may update any task, a worker only a task assigned to them.
func (s *taskService) UpdateTask(actorID uint, actorRole models.Role, taskID uint, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	if actorRole == models.RoleWorker {
		if task.AssignedTo == nil || *task.AssignedTo != actorID {
			return nil, apperrors.ErrForbidden
		}
	}

	updates := map[string]interface{}{}
	if params.Title != nil {
		updates["title"] = *params.Title
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.AssignedTo != nil {
		updates["assigned_to"] = *params.AssignedTo
	}
	if params.Priority != nil {
		updates["priority"] = *params.Priority
	}
	if params.DueDate != nil {
		updates["due_date"] = *params.DueDate
	}
	if params.Status != nil {
		updates["status"] = *params.Status
	}
	if params.ProgressNotes != nil {
		updates["progress_notes"] = *params.ProgressNotes
	}
	if params.CompletionPercentage != nil {
		updates["completion_percentage"] = *params.CompletionPercentage
	}

	if len(updates) > 0 {
		if err := s.db.Model(task).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return task, nil
}

// LogActivity appends a progress entry to a task.
func (s *taskService) LogActivity(taskID, userID uint, activityType, description string, hoursWorked float64) (*models.TaskActivity, error) {
	if _, err := s.GetTaskByID(taskID); err != nil {
		return nil, err
	}

	activity := &models.TaskActivity{
		TaskID:       taskID,
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		HoursWorked:  hoursWorked,
	}
	if err := s.db.Create(activity).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return activity, nil
}

// GetTaskActivities returns a task's activity log, newest first.
func (s *taskService) GetTaskActivities(taskID uint) ([]models.TaskActivity, error) {
	var activities []models.TaskActivity
	err := s.db.Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return activities, nil
}
