package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"operationaltracker/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plaintext password all user fixtures are created with.
const TestPassword = "password123"

// CreateTestUser creates an active worker with a hashed password and unique
// username and email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, models.RoleWorker)
}

// CreateTestUserWithRole creates an active user with the given role.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	n := nextID()
	user := &models.User{
		Username: fmt.Sprintf("user%d", n),
		Password: string(hash),
		Email:    fmt.Sprintf("user%d@test.com", n),
		FullName: fmt.Sprintf("Test User %d", n),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProject creates an active project.
func CreateTestProject(t *testing.T, db *gorm.DB) *models.Project {
	t.Helper()

	n := nextID()
	project := &models.Project{
		Name:     fmt.Sprintf("Test Project %d", n),
		Location: "Site A",
		Status:   models.ProjectStatusActive,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateTestTask creates a pending task created by creatorID and assigned to
// assignedTo (nil for unassigned).
func CreateTestTask(t *testing.T, db *gorm.DB, creatorID uint, assignedTo *uint) *models.Task {
	t.Helper()

	n := nextID()
	task := &models.Task{
		Title:      fmt.Sprintf("Test Task %d", n),
		CreatedBy:  creatorID,
		AssignedTo: assignedTo,
		Priority:   models.TaskPriorityMedium,
		Status:     models.TaskStatusPending,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestMaterial creates a material with the given starting balance.
func CreateTestMaterial(t *testing.T, db *gorm.DB, balance float64) *models.Material {
	t.Helper()

	n := nextID()
	material := &models.Material{
		Name:           fmt.Sprintf("Test Material %d", n),
		Unit:           "kg",
		Quantity:       balance,
		CurrentBalance: balance,
	}
	if err := db.Create(material).Error; err != nil {
		t.Fatalf("failed to create test material: %v", err)
	}
	return material
}

// CreateTestEquipment creates a piece of operational equipment.
func CreateTestEquipment(t *testing.T, db *gorm.DB) *models.Equipment {
	t.Helper()

	n := nextID()
	equipment := &models.Equipment{
		Name:         fmt.Sprintf("Test Equipment %d", n),
		Type:         "excavator",
		SerialNumber: fmt.Sprintf("SN-%d", n),
		Status:       models.EquipmentStatusOperational,
	}
	if err := db.Create(equipment).Error; err != nil {
		t.Fatalf("failed to create test equipment: %v", err)
	}
	return equipment
}

// CreateTestLeaveRequest creates a pending leave request for the given user.
func CreateTestLeaveRequest(t *testing.T, db *gorm.DB, userID uint) *models.LeaveRequest {
	t.Helper()

	start := time.Now().Truncate(24 * time.Hour).Add(48 * time.Hour)
	request := &models.LeaveRequest{
		UserID:    userID,
		StartDate: start,
		EndDate:   start.Add(72 * time.Hour),
		LeaveType: "annual",
		Status:    models.LeaveStatusPending,
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("failed to create test leave request: %v", err)
	}
	return request
}

// CreateTestDocument creates a document record uploaded by uploaderID.
func CreateTestDocument(t *testing.T, db *gorm.DB, uploaderID uint) *models.Document {
	t.Helper()

	n := nextID()
	document := &models.Document{
		DocumentType: "blueprint",
		FileName:     fmt.Sprintf("plan-%d.pdf", n),
		FilePath:     fmt.Sprintf("/uploads/plan-%d.pdf", n),
		FileSize:     1024,
		UploadedBy:   uploaderID,
	}
	if err := db.Create(document).Error; err != nil {
		t.Fatalf("failed to create test document: %v", err)
	}
	return document
}
