package services_test

import (
	"testing"

	"operationaltracker/internal/models"
	"operationaltracker/internal/services"
	"operationaltracker/internal/testutil"
)

func TestCreateMaterialStartsBalanceAtQuantity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewMaterialService(db)

	name := "Cement"
	qty := 120.0
	material, err := svc.CreateMaterial(services.MaterialParams{Name: &name, Quantity: &qty})
	testutil.AssertNoError(t, err)

	if material.CurrentBalance != qty {
		t.Errorf("expected starting balance %f, got %f", qty, material.CurrentBalance)
	}
}

func TestRecordUsageDecrementsBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewMaterialService(db)

	user := testutil.CreateTestUser(t, db)
	material := testutil.CreateTestMaterial(t, db, 100)

	usage, err := svc.RecordUsage(material.ID, user.ID, 30, "slab pour")
	testutil.AssertNoError(t, err)
	if usage.QuantityUsed != 30 {
		t.Errorf("expected quantity used 30, got %f", usage.QuantityUsed)
	}

	var check models.Material
	testutil.AssertNoError(t, db.First(&check, material.ID).Error)
	if check.CurrentBalance != 70 {
		t.Errorf("expected balance 70, got %f", check.CurrentBalance)
	}
}

// The balance can never go negative: a withdrawal larger than the remaining
// balance is rejected and leaves both the balance and the usage log untouched.
func TestRecordUsageInsufficientBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewMaterialService(db)

	user := testutil.CreateTestUser(t, db)
	material := testutil.CreateTestMaterial(t, db, 50)

	_, err := svc.RecordUsage(material.ID, user.ID, 50.01, "")
	testutil.AssertAppError(t, err, "INSUFFICIENT_BALANCE")

	var check models.Material
	testutil.AssertNoError(t, db.First(&check, material.ID).Error)
	if check.CurrentBalance != 50 {
		t.Errorf("failed withdrawal should not change balance, got %f", check.CurrentBalance)
	}

	usage, err := svc.ListUsage(material.ID)
	testutil.AssertNoError(t, err)
	if len(usage) != 0 {
		t.Errorf("failed withdrawal should not be logged, got %d rows", len(usage))
	}

	// Withdrawing the exact remaining balance is allowed.
	_, err = svc.RecordUsage(material.ID, user.ID, 50, "")
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, db.First(&check, material.ID).Error)
	if check.CurrentBalance != 0 {
		t.Errorf("expected balance 0 after draining, got %f", check.CurrentBalance)
	}
}

func TestRecordUsageRejectsNonPositiveQuantity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewMaterialService(db)

	user := testutil.CreateTestUser(t, db)
	material := testutil.CreateTestMaterial(t, db, 10)

	_, err := svc.RecordUsage(material.ID, user.ID, 0, "")
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.RecordUsage(material.ID, user.ID, -5, "")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestReviewRequisitionApprovalRestocks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewMaterialService(db)

	requester := testutil.CreateTestUser(t, db)
	reviewer := testutil.CreateTestUserWithRole(t, db, models.RoleManager)
	material := testutil.CreateTestMaterial(t, db, 20)

	requisition, err := svc.CreateRequisition(requester.ID, material.ID, nil, 80, "running low")
	testutil.AssertNoError(t, err)
	if requisition.Status != models.RequisitionStatusPending {
		t.Errorf("expected pending status, got %s", requisition.Status)
	}

	approved := 60.0
	_, err = svc.ReviewRequisition(reviewer.ID, requisition.ID, models.RequisitionStatusApproved, &approved)
	testutil.AssertNoError(t, err)

	var checkMaterial models.Material
	testutil.AssertNoError(t, db.First(&checkMaterial, material.ID).Error)
	if checkMaterial.CurrentBalance != 80 {
		t.Errorf("expected balance 80 after restock, got %f", checkMaterial.CurrentBalance)
	}

	var checkReq models.MaterialRequisition
	testutil.AssertNoError(t, db.First(&checkReq, requisition.ID).Error)
	if checkReq.Status != models.RequisitionStatusApproved {
		t.Errorf("expected approved status, got %s", checkReq.Status)
	}
	if checkReq.ApprovedBy == nil || *checkReq.ApprovedBy != reviewer.ID {
		t.Error("expected reviewer recorded on requisition")
	}
}

// A reviewed requisition is final: approving it a second time must not
// restock the balance again.
func TestReviewRequisitionOnlyOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewMaterialService(db)

	requester := testutil.CreateTestUser(t, db)
	reviewer := testutil.CreateTestUserWithRole(t, db, models.RoleManager)
	material := testutil.CreateTestMaterial(t, db, 10)

	requisition, err := svc.CreateRequisition(requester.ID, material.ID, nil, 40, "restock")
	testutil.AssertNoError(t, err)

	approved := 40.0
	_, err = svc.ReviewRequisition(reviewer.ID, requisition.ID, models.RequisitionStatusApproved, &approved)
	testutil.AssertNoError(t, err)

	_, err = svc.ReviewRequisition(reviewer.ID, requisition.ID, models.RequisitionStatusApproved, &approved)
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	// Rejecting after approval is equally final.
	_, err = svc.ReviewRequisition(reviewer.ID, requisition.ID, models.RequisitionStatusRejected, nil)
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	var checkMaterial models.Material
	testutil.AssertNoError(t, db.First(&checkMaterial, material.ID).Error)
	if checkMaterial.CurrentBalance != 50 {
		t.Errorf("expected balance 50 after a single restock, got %f", checkMaterial.CurrentBalance)
	}
}

func TestReviewRequisitionRejectionDoesNotRestock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewMaterialService(db)

	requester := testutil.CreateTestUser(t, db)
	reviewer := testutil.CreateTestUserWithRole(t, db, models.RoleManager)
	material := testutil.CreateTestMaterial(t, db, 20)

	requisition, err := svc.CreateRequisition(requester.ID, material.ID, nil, 80, "")
	testutil.AssertNoError(t, err)

	_, err = svc.ReviewRequisition(reviewer.ID, requisition.ID, models.RequisitionStatusRejected, nil)
	testutil.AssertNoError(t, err)

	var check models.Material
	testutil.AssertNoError(t, db.First(&check, material.ID).Error)
	if check.CurrentBalance != 20 {
		t.Errorf("rejection should not change balance, got %f", check.CurrentBalance)
	}
}
