package services_test

import (
	"testing"
	"time"

	"operationaltracker/internal/models"
	"operationaltracker/internal/services"
	"operationaltracker/internal/testutil"
)

func TestCreateEquipmentDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewEquipmentService(db)

	name := "Excavator CAT 320"
	equipmentType := "heavy"
	equipment, err := svc.CreateEquipment(services.EquipmentParams{
		Name: &name,
		Type: &equipmentType,
	})
	testutil.AssertNoError(t, err)
	if equipment.Status != models.EquipmentStatusOperational {
		t.Errorf("expected new equipment to be operational, got %q", equipment.Status)
	}

	_, err = svc.CreateEquipment(services.EquipmentParams{})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

// Reporting a breakdown flags the equipment as broken atomically with the
// breakdown row; recording maintenance returns it to service.
func TestBreakdownAndMaintenanceLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewEquipmentService(db)

	reporter := testutil.CreateTestUser(t, db)
	mechanic := testutil.CreateTestUser(t, db)
	equipment := testutil.CreateTestEquipment(t, db)

	breakdown, err := svc.ReportBreakdown(equipment.ID, reporter.ID, "hydraulic leak", "high", nil)
	testutil.AssertNoError(t, err)
	if breakdown.Status != "open" {
		t.Errorf("expected new breakdown to be open, got %q", breakdown.Status)
	}

	var check models.Equipment
	if err := db.First(&check, equipment.ID).Error; err != nil {
		t.Fatalf("reloading equipment: %v", err)
	}
	if check.Status != models.EquipmentStatusBroken {
		t.Errorf("expected equipment to be broken after report, got %q", check.Status)
	}

	next := time.Now().AddDate(0, 3, 0)
	maintenance, err := svc.RecordMaintenance(equipment.ID, mechanic.ID, "repair", "replaced hydraulic hose", 450.00, &next)
	testutil.AssertNoError(t, err)
	if maintenance.PerformedBy != mechanic.ID {
		t.Errorf("expected performer %d, got %d", mechanic.ID, maintenance.PerformedBy)
	}

	if err := db.First(&check, equipment.ID).Error; err != nil {
		t.Fatalf("reloading equipment: %v", err)
	}
	if check.Status != models.EquipmentStatusOperational {
		t.Errorf("expected equipment back in service, got %q", check.Status)
	}
	if check.LastMaintenanceDate == nil {
		t.Error("expected last maintenance date to be set")
	}
	if check.NextMaintenanceDate == nil {
		t.Error("expected next maintenance date to roll forward")
	}
}

func TestReportBreakdownUnknownEquipment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewEquipmentService(db)

	reporter := testutil.CreateTestUser(t, db)

	_, err := svc.ReportBreakdown(99999, reporter.ID, "gone", "low", nil)
	testutil.AssertAppError(t, err, "EQUIPMENT_NOT_FOUND")
}

func TestListBreakdownsNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewEquipmentService(db)

	reporter := testutil.CreateTestUser(t, db)
	equipment := testutil.CreateTestEquipment(t, db)

	first, err := svc.ReportBreakdown(equipment.ID, reporter.ID, "first fault", "low", nil)
	testutil.AssertNoError(t, err)
	second, err := svc.ReportBreakdown(equipment.ID, reporter.ID, "second fault", "medium", nil)
	testutil.AssertNoError(t, err)

	breakdowns, err := svc.ListBreakdowns(equipment.ID)
	testutil.AssertNoError(t, err)
	if len(breakdowns) != 2 {
		t.Fatalf("expected 2 breakdowns, got %d", len(breakdowns))
	}
	// Same-timestamp rows may tie on created_at; accept either order but
	// both reports must be present.
	ids := map[uint]bool{breakdowns[0].ID: true, breakdowns[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Errorf("expected both breakdowns in history, got %v", ids)
	}
}
