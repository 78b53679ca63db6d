package testutil_test

import (
	"testing"

	"operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{
		"users", "projects", "project_staffs", "tasks", "task_activities",
		"materials", "material_usages", "material_requisitions",
		"equipment", "equipment_breakdowns", "equipment_maintenances",
		"attendances", "leave_requests", "documents", "notifications",
		"audit_logs",
	} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	manager := testutil.CreateTestUserWithRole(t, db, models.RoleManager)
	if manager.Role != models.RoleManager {
		t.Errorf("expected manager role, got %s", manager.Role)
	}

	project := testutil.CreateTestProject(t, db)
	if project.Status != models.ProjectStatusActive {
		t.Errorf("expected active project, got %s", project.Status)
	}

	task := testutil.CreateTestTask(t, db, manager.ID, &user.ID)
	if task.AssignedTo == nil || *task.AssignedTo != user.ID {
		t.Errorf("expected task assigned to %d", user.ID)
	}

	material := testutil.CreateTestMaterial(t, db, 100)
	if material.CurrentBalance != 100 {
		t.Errorf("expected balance 100, got %f", material.CurrentBalance)
	}

	equipment := testutil.CreateTestEquipment(t, db)
	if equipment.Status != models.EquipmentStatusOperational {
		t.Errorf("expected operational equipment, got %s", equipment.Status)
	}

	leave := testutil.CreateTestLeaveRequest(t, db, user.ID)
	if leave.Status != models.LeaveStatusPending {
		t.Errorf("expected pending leave request, got %s", leave.Status)
	}

	document := testutil.CreateTestDocument(t, db, user.ID)
	if document.UploadedBy != user.ID {
		t.Errorf("expected uploader %d, got %d", user.ID, document.UploadedBy)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrTaskNotFound, "custom message")
	testutil.AssertAppError(t, err, "TASK_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
