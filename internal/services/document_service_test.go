package services_test

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"operationaltracker/internal/models"
	"operationaltracker/internal/services"
	"operationaltracker/internal/testutil"
)

func TestCreateDocumentRequiresFileFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewDocumentService(db)

	uploader := testutil.CreateTestUser(t, db)

	_, err := svc.CreateDocument(uploader.ID, services.DocumentParams{FileName: "plan.pdf"})
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	document, err := svc.CreateDocument(uploader.ID, services.DocumentParams{
		DocumentType: "blueprint",
		FileName:     "plan.pdf",
		FilePath:     "/uploads/plan.pdf",
		FileSize:     2048,
	})
	testutil.AssertNoError(t, err)
	if document.UploadedBy != uploader.ID {
		t.Errorf("expected uploader %d, got %d", uploader.ID, document.UploadedBy)
	}
}

// Only an admin or the original uploader may delete a document.
func TestDeleteDocumentOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewDocumentService(db)

	uploader := testutil.CreateTestUser(t, db)
	bystander := testutil.CreateTestUserWithRole(t, db, models.RoleSupervisor)
	admin := testutil.CreateTestUserWithRole(t, db, models.RoleAdmin)

	document := testutil.CreateTestDocument(t, db, uploader.ID)

	// A supervisor who didn't upload it is denied: elevation short of admin
	// does not override ownership here.
	err := svc.DeleteDocument(bystander.ID, bystander.Role, document.ID)
	testutil.AssertAppError(t, err, "FORBIDDEN")

	// The uploader may delete their own document.
	err = svc.DeleteDocument(uploader.ID, uploader.Role, document.ID)
	testutil.AssertNoError(t, err)

	var check models.Document
	if err := db.First(&check, document.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected document to be deleted, got err=%v", err)
	}

	// An admin may delete anyone's document.
	other := testutil.CreateTestDocument(t, db, uploader.ID)
	err = svc.DeleteDocument(admin.ID, admin.Role, other.ID)
	testutil.AssertNoError(t, err)

	// Deleting a missing document reports not found, not forbidden.
	err = svc.DeleteDocument(admin.ID, admin.Role, 999999)
	testutil.AssertAppError(t, err, "DOCUMENT_NOT_FOUND")
}
