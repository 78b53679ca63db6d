package services_test

import (
	"testing"

	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
	"operationaltracker/internal/services"
	"operationaltracker/internal/testutil"
)

func TestCreateTaskDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewTaskService(db)

	creator := testutil.CreateTestUserWithRole(t, db, models.RoleManager)

	task, err := svc.CreateTask(creator.ID, services.CreateTaskParams{Title: "Pour foundation"})
	testutil.AssertNoError(t, err)

	if task.Priority != models.TaskPriorityMedium {
		t.Errorf("expected default priority medium, got %s", task.Priority)
	}
	if task.Status != models.TaskStatusPending {
		t.Errorf("expected default status pending, got %s", task.Status)
	}
	if task.CreatedBy != creator.ID {
		t.Errorf("expected creator %d, got %d", creator.ID, task.CreatedBy)
	}
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewTaskService(db)

	creator := testutil.CreateTestUserWithRole(t, db, models.RoleManager)

	_, err := svc.CreateTask(creator.ID, services.CreateTaskParams{})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

// Elevated roles may update any task; a worker only one assigned to them.
func TestUpdateTaskOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewTaskService(db)

	manager := testutil.CreateTestUserWithRole(t, db, models.RoleManager)
	assignee := testutil.CreateTestUser(t, db)
	bystander := testutil.CreateTestUser(t, db)

	task := testutil.CreateTestTask(t, db, manager.ID, &assignee.ID)
	unassigned := testutil.CreateTestTask(t, db, manager.ID, nil)

	status := models.TaskStatusInProgress

	cases := []struct {
		name       string
		actorID    uint
		actorRole  models.Role
		taskID     uint
		wantDenied bool
	}{
		{"assigned worker", assignee.ID, models.RoleWorker, task.ID, false},
		{"unassigned worker", bystander.ID, models.RoleWorker, task.ID, true},
		{"worker on unassigned task", assignee.ID, models.RoleWorker, unassigned.ID, true},
		{"manager on any task", manager.ID, models.RoleManager, task.ID, false},
		{"admin on any task", bystander.ID, models.RoleAdmin, task.ID, false},
		{"supervisor on any task", bystander.ID, models.RoleSupervisor, task.ID, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateTask(tc.actorID, tc.actorRole, tc.taskID, services.UpdateTaskParams{Status: &status})
			if tc.wantDenied {
				testutil.AssertAppError(t, err, "FORBIDDEN")
			} else {
				testutil.AssertNoError(t, err)
			}
		})
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewTaskService(db)

	manager := testutil.CreateTestUserWithRole(t, db, models.RoleManager)
	task := testutil.CreateTestTask(t, db, manager.ID, nil)

	pct := 40
	notes := "halfway through excavation"
	_, err := svc.UpdateTask(manager.ID, manager.Role, task.ID, services.UpdateTaskParams{
		CompletionPercentage: &pct,
		ProgressNotes:        &notes,
	})
	testutil.AssertNoError(t, err)

	var check models.Task
	testutil.AssertNoError(t, db.First(&check, task.ID).Error)
	if check.CompletionPercentage != pct {
		t.Errorf("expected completion %d, got %d", pct, check.CompletionPercentage)
	}
	if check.ProgressNotes != notes {
		t.Errorf("expected notes %q, got %q", notes, check.ProgressNotes)
	}
	// Untouched fields keep their values.
	if check.Title != task.Title {
		t.Errorf("title should be unchanged, got %q", check.Title)
	}
	if check.Status != models.TaskStatusPending {
		t.Errorf("status should be unchanged, got %s", check.Status)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewTaskService(db)

	status := models.TaskStatusCompleted
	_, err := svc.UpdateTask(1, models.RoleAdmin, 999999, services.UpdateTaskParams{Status: &status})
	testutil.AssertAppError(t, err, "TASK_NOT_FOUND")
}

func TestListTasksFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewTaskService(db)

	manager := testutil.CreateTestUserWithRole(t, db, models.RoleManager)
	worker := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db)

	assigned := testutil.CreateTestTask(t, db, manager.ID, &worker.ID)
	inProject := testutil.CreateTestTask(t, db, manager.ID, nil)
	testutil.AssertNoError(t, db.Model(inProject).Update("project_id", project.ID).Error)

	page := pagination.PageRequest{Page: 1, PageSize: 20}

	byAssignee, err := svc.ListTasks(services.TaskFilter{AssignedTo: &worker.ID}, page)
	testutil.AssertNoError(t, err)
	if len(byAssignee.Data) != 1 || byAssignee.Data[0].ID != assigned.ID {
		t.Errorf("expected only the assigned task, got %d rows", len(byAssignee.Data))
	}

	byProject, err := svc.ListTasks(services.TaskFilter{ProjectID: &project.ID}, page)
	testutil.AssertNoError(t, err)
	if len(byProject.Data) != 1 || byProject.Data[0].ID != inProject.ID {
		t.Errorf("expected only the project task, got %d rows", len(byProject.Data))
	}
}

func TestLogActivity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewTaskService(db)

	manager := testutil.CreateTestUserWithRole(t, db, models.RoleManager)
	worker := testutil.CreateTestUser(t, db)
	task := testutil.CreateTestTask(t, db, manager.ID, &worker.ID)

	_, err := svc.LogActivity(task.ID, worker.ID, "progress", "laid rebar", 3.5)
	testutil.AssertNoError(t, err)

	activities, err := svc.GetTaskActivities(task.ID)
	testutil.AssertNoError(t, err)
	if len(activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(activities))
	}
	if activities[0].HoursWorked != 3.5 {
		t.Errorf("expected 3.5 hours, got %f", activities[0].HoursWorked)
	}

	_, err = svc.LogActivity(999999, worker.ID, "progress", "ghost", 1)
	testutil.AssertAppError(t, err, "TASK_NOT_FOUND")
}
