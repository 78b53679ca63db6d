package services_test

import (
	"testing"

	"operationaltracker/internal/models"
	"operationaltracker/internal/services"
	"operationaltracker/internal/testutil"
)

func TestCreateProjectDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewProjectService(db)

	name := "Harbour Bridge Upgrade"
	project, err := svc.CreateProject(services.ProjectParams{Name: &name})
	testutil.AssertNoError(t, err)

	if project.Status != models.ProjectStatusPlanning {
		t.Errorf("expected default status planning, got %s", project.Status)
	}

	_, err = svc.CreateProject(services.ProjectParams{})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestUpdateProjectPartial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewProjectService(db)

	project := testutil.CreateTestProject(t, db)

	status := models.ProjectStatusOnHold
	_, err := svc.UpdateProject(project.ID, services.ProjectParams{Status: &status})
	testutil.AssertNoError(t, err)

	var check models.Project
	testutil.AssertNoError(t, db.First(&check, project.ID).Error)
	if check.Status != models.ProjectStatusOnHold {
		t.Errorf("expected on_hold status, got %s", check.Status)
	}
	if check.Name != project.Name {
		t.Errorf("name should be unchanged, got %q", check.Name)
	}
}

// Assigning a team replaces the previous assignment wholesale.
func TestAssignTeamReplaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewProjectService(db)

	project := testutil.CreateTestProject(t, db)
	a := testutil.CreateTestUser(t, db)
	b := testutil.CreateTestUser(t, db)
	c := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.AssignTeam(project.ID, []uint{a.ID, b.ID}))
	testutil.AssertNoError(t, svc.AssignTeam(project.ID, []uint{c.ID}))

	got, err := svc.GetProjectByID(project.ID)
	testutil.AssertNoError(t, err)
	if len(got.Staff) != 1 {
		t.Fatalf("expected 1 staff member after reassignment, got %d", len(got.Staff))
	}
	if got.Staff[0].UserID != c.ID {
		t.Errorf("expected user %d on team, got %d", c.ID, got.Staff[0].UserID)
	}

	err = svc.AssignTeam(999999, []uint{a.ID})
	testutil.AssertAppError(t, err, "PROJECT_NOT_FOUND")
}
