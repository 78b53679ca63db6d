package services_test

import (
	"encoding/json"
	"testing"

	"operationaltracker/internal/models"
	"operationaltracker/internal/services"
	"operationaltracker/internal/testutil"
)

func TestAuditLogPersistsExactlyOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	svc := services.NewAuditService(db)

	svc.Log(user.ID, models.AuditActionCreate, models.AuditEntityTask, 42, map[string]interface{}{
		"title": "Pour foundation",
	})
	svc.Close() // drains the queue

	var records []models.AuditLog
	testutil.AssertNoError(t, db.Where("user_id = ?", user.ID).Find(&records).Error)
	if len(records) != 1 {
		t.Fatalf("expected exactly 1 audit record, got %d", len(records))
	}

	record := records[0]
	if record.Action != models.AuditActionCreate {
		t.Errorf("expected action CREATE, got %s", record.Action)
	}
	if record.EntityType != models.AuditEntityTask {
		t.Errorf("expected entity TASK, got %s", record.EntityType)
	}
	if record.EntityID != 42 {
		t.Errorf("expected entity id 42, got %d", record.EntityID)
	}

	var changes map[string]interface{}
	testutil.AssertNoError(t, json.Unmarshal([]byte(record.Changes), &changes))
	if changes["title"] != "Pour foundation" {
		t.Errorf("expected title in changes, got %v", changes)
	}
}

// A failing audit write must never surface to the caller: Log stays silent
// and Close still returns.
func TestAuditLogSwallowsWriteFailures(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := testutil.CreateTestUser(t, db)
	svc := services.NewAuditService(db)

	// Kill the database out from under the writer.
	testutil.TeardownTestDB(t, db)

	svc.Log(user.ID, models.AuditActionUpdate, models.AuditEntityProject, 1, nil)
	svc.Close()
	// Reaching here without a panic or a hang is the assertion.
}

func TestAuditCloseIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := services.NewAuditService(db)
	svc.Close()
	svc.Close()
}

func TestAuditListFiltersAndOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)
	svc := services.NewAuditService(db)

	svc.Log(alice.ID, models.AuditActionCreate, models.AuditEntityProject, 1, nil)
	svc.Log(alice.ID, models.AuditActionUpdate, models.AuditEntityProject, 1, nil)
	svc.Log(bob.ID, models.AuditActionCreate, models.AuditEntityTask, 7, nil)
	svc.Close()

	// Filter by user.
	entityProject := models.AuditEntityProject
	records, err := svc.List(services.AuditFilter{UserID: &alice.ID})
	testutil.AssertNoError(t, err)
	if len(records) != 2 {
		t.Fatalf("expected 2 records for alice, got %d", len(records))
	}
	// Newest first.
	if records[0].Action != models.AuditActionUpdate {
		t.Errorf("expected newest record first, got action %s", records[0].Action)
	}

	// Filter by entity type and id.
	entityID := uint(7)
	entityTask := models.AuditEntityTask
	records, err = svc.List(services.AuditFilter{EntityType: &entityTask, EntityID: &entityID})
	testutil.AssertNoError(t, err)
	if len(records) != 1 || records[0].UserID != bob.ID {
		t.Fatalf("expected bob's task record, got %d rows", len(records))
	}

	// Combined user + entity filter that matches nothing.
	records, err = svc.List(services.AuditFilter{UserID: &bob.ID, EntityType: &entityProject})
	testutil.AssertNoError(t, err)
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestAuditListCap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	svc := services.NewAuditService(db)
	defer svc.Close()

	// Insert past the cap directly; the read path must truncate.
	rows := make([]models.AuditLog, 0, 510)
	for i := 0; i < 510; i++ {
		rows = append(rows, models.AuditLog{
			UserID:     user.ID,
			Action:     models.AuditActionCreate,
			EntityType: models.AuditEntityMaterial,
			EntityID:   uint(i),
		})
	}
	testutil.AssertNoError(t, db.CreateInBatches(rows, 100).Error)

	records, err := svc.List(services.AuditFilter{UserID: &user.ID})
	testutil.AssertNoError(t, err)
	if len(records) != 500 {
		t.Errorf("expected result capped at 500, got %d", len(records))
	}
}
