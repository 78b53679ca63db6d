package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
	"operationaltracker/internal/services"
)

type mockTaskService struct {
	createTaskFn        func(creatorID uint, params services.CreateTaskParams) (*models.Task, error)
	listTasksFn         func(filter services.TaskFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Task], error)
	getTaskByIDFn       func(taskID uint) (*models.Task, error)
	updateTaskFn        func(actorID uint, actorRole models.Role, taskID uint, params services.UpdateTaskParams) (*models.Task, error)
	logActivityFn       func(taskID, userID uint, activityType, description string, hoursWorked float64) (*models.TaskActivity, error)
	getTaskActivitiesFn func(taskID uint) ([]models.TaskActivity, error)
}

func (m *mockTaskService) CreateTask(creatorID uint, params services.CreateTaskParams) (*models.Task, error) {
	if m.createTaskFn != nil {
		return m.createTaskFn(creatorID, params)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) ListTasks(filter services.TaskFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Task], error) {
	if m.listTasksFn != nil {
		return m.listTasksFn(filter, page)
	}
	resp := pagination.NewPageResponse([]models.Task{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTaskService) GetTaskByID(taskID uint) (*models.Task, error) {
	if m.getTaskByIDFn != nil {
		return m.getTaskByIDFn(taskID)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) UpdateTask(actorID uint, actorRole models.Role, taskID uint, params services.UpdateTaskParams) (*models.Task, error) {
	if m.updateTaskFn != nil {
		return m.updateTaskFn(actorID, actorRole, taskID, params)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) LogActivity(taskID, userID uint, activityType, description string, hoursWorked float64) (*models.TaskActivity, error) {
	if m.logActivityFn != nil {
		return m.logActivityFn(taskID, userID, activityType, description, hoursWorked)
	}
	return &models.TaskActivity{}, nil
}

func (m *mockTaskService) GetTaskActivities(taskID uint) ([]models.TaskActivity, error) {
	if m.getTaskActivitiesFn != nil {
		return m.getTaskActivitiesFn(taskID)
	}
	return nil, nil
}

func setupTaskRouter(handler *TaskHandler, role models.Role) *gin.Engine {
	r := gin.New()
	auth := injectIdentity(1, "actor", role)
	r.GET("/tasks", auth, handler.ListTasks)
	r.POST("/tasks", auth, handler.CreateTask)
	r.PUT("/tasks/:id", auth, handler.UpdateTask)
	r.POST("/tasks/:id/activity", auth, handler.LogActivity)
	return r
}

func TestTaskHandler_Create(t *testing.T) {
	t.Run("returns 201 and audits", func(t *testing.T) {
		taskSvc := &mockTaskService{
			createTaskFn: func(creatorID uint, params services.CreateTaskParams) (*models.Task, error) {
				task := &models.Task{Title: params.Title, CreatedBy: creatorID}
				task.ID = 9
				return task, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTaskRouter(NewTaskHandler(taskSvc, audit), models.RoleManager)

		rec := doRequest(r, "POST", "/tasks", `{"title":"Pour foundation","priority":"high"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(audit.calls) != 1 {
			t.Fatalf("expected 1 audit call, got %d", len(audit.calls))
		}
		call := audit.calls[0]
		if call.Action != models.AuditActionCreate || call.EntityType != models.AuditEntityTask || call.EntityID != 9 {
			t.Errorf("unexpected audit call: %+v", call)
		}
	})

	t.Run("returns 400 on invalid priority", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}, &mockAuditService{}), models.RoleManager)

		rec := doRequest(r, "POST", "/tasks", `{"title":"x","priority":"whenever"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTaskHandler_Update(t *testing.T) {
	t.Run("returns 403 when the service denies ownership", func(t *testing.T) {
		taskSvc := &mockTaskService{
			updateTaskFn: func(_ uint, _ models.Role, _ uint, _ services.UpdateTaskParams) (*models.Task, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		audit := &mockAuditService{}
		r := setupTaskRouter(NewTaskHandler(taskSvc, audit), models.RoleWorker)

		rec := doRequest(r, "PUT", "/tasks/3", `{"status":"completed"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "FORBIDDEN")

		// A denied update is not audited.
		if len(audit.calls) != 0 {
			t.Errorf("expected no audit calls, got %d", len(audit.calls))
		}
	})

	t.Run("returns 200 and audits the changed fields", func(t *testing.T) {
		taskSvc := &mockTaskService{
			updateTaskFn: func(actorID uint, actorRole models.Role, taskID uint, _ services.UpdateTaskParams) (*models.Task, error) {
				task := &models.Task{Status: models.TaskStatusCompleted}
				task.ID = taskID
				return task, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTaskRouter(NewTaskHandler(taskSvc, audit), models.RoleWorker)

		rec := doRequest(r, "PUT", "/tasks/3", `{"status":"completed"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(audit.calls) != 1 {
			t.Fatalf("expected 1 audit call, got %d", len(audit.calls))
		}
		call := audit.calls[0]
		if call.EntityType != models.AuditEntityTask || call.EntityID != 3 {
			t.Errorf("unexpected audit target: %+v", call)
		}
		if call.Changes["status"] != "completed" {
			t.Errorf("expected status change recorded, got %v", call.Changes)
		}
		// Fields that were not sent must not appear in the change set.
		if _, ok := call.Changes["title"]; ok {
			t.Errorf("unset fields should be stripped from changes, got %v", call.Changes)
		}
	})

	t.Run("returns 400 on non-numeric id", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}, &mockAuditService{}), models.RoleWorker)

		rec := doRequest(r, "PUT", "/tasks/abc", `{"status":"completed"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTaskHandler_LogActivity(t *testing.T) {
	taskSvc := &mockTaskService{
		logActivityFn: func(taskID, userID uint, activityType, _ string, hours float64) (*models.TaskActivity, error) {
			activity := &models.TaskActivity{TaskID: taskID, UserID: userID, ActivityType: activityType, HoursWorked: hours}
			activity.ID = 11
			return activity, nil
		},
	}
	audit := &mockAuditService{}
	r := setupTaskRouter(NewTaskHandler(taskSvc, audit), models.RoleWorker)

	rec := doRequest(r, "POST", "/tasks/4/activity", `{"activity_type":"progress","hours_worked":2.5}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(audit.calls) != 1 {
		t.Fatalf("expected 1 audit call, got %d", len(audit.calls))
	}
	if audit.calls[0].EntityType != models.AuditEntityTaskActivity || audit.calls[0].EntityID != 11 {
		t.Errorf("unexpected audit call: %+v", audit.calls[0])
	}
}
