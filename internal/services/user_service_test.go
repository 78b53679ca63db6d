package services_test

import (
	"testing"

	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
	"operationaltracker/internal/services"
	"operationaltracker/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewUserService(db)

	user, err := svc.CreateUser("alice-create", "secret123", "Alice-Create@Test.com", "Alice", "")
	testutil.AssertNoError(t, err)

	if user.Role != models.RoleWorker {
		t.Errorf("expected default role worker, got %s", user.Role)
	}
	if user.Email != "alice-create@test.com" {
		t.Errorf("expected lowercased email, got %s", user.Email)
	}
	if !user.IsActive {
		t.Error("new users should be active")
	}
	if user.Password == "secret123" {
		t.Error("password should be stored hashed")
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewUserService(db)

	_, err := svc.CreateUser("bob-dup", "secret123", "bob-dup@test.com", "Bob", "")
	testutil.AssertNoError(t, err)

	// Same username, different email.
	_, err = svc.CreateUser("bob-dup", "secret123", "other-dup@test.com", "Bob", "")
	testutil.AssertAppError(t, err, "DUPLICATE_USER")

	// Same email, different username.
	_, err = svc.CreateUser("bob-dup-2", "secret123", "bob-dup@test.com", "Bob", "")
	testutil.AssertAppError(t, err, "DUPLICATE_USER")
}

func TestAttemptLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewUserService(db)

	user := testutil.CreateTestUser(t, db)

	got, err := svc.AttemptLogin(user.Username, testutil.TestPassword)
	testutil.AssertNoError(t, err)
	if got.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, got.ID)
	}
}

// Login failures must not reveal whether the username exists, the password is
// wrong, or the account is deactivated: every case surfaces the same code and
// message.
func TestAttemptLoginFailuresAreUniform(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewUserService(db)

	user := testutil.CreateTestUser(t, db)
	deactivated := testutil.CreateTestUser(t, db)
	if err := db.Model(deactivated).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "no-such-user", testutil.TestPassword},
		{"wrong password", user.Username, "wrong-password"},
		{"deactivated account", deactivated.Username, testutil.TestPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AttemptLogin(tc.username, tc.password)
			testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
			if err.Error() != "Invalid credentials" {
				t.Errorf("expected uniform message, got %q", err.Error())
			}
		})
	}
}

func TestUpdateUserOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewUserService(db)

	admin := testutil.CreateTestUserWithRole(t, db, models.RoleAdmin)
	worker := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	newName := "Updated Name"

	// A worker may not update someone else's account.
	_, err := svc.UpdateUser(worker.ID, worker.Role, other.ID, services.UpdateUserParams{FullName: &newName})
	testutil.AssertAppError(t, err, "FORBIDDEN")

	// A worker may update their own account.
	updated, err := svc.UpdateUser(worker.ID, worker.Role, worker.ID, services.UpdateUserParams{FullName: &newName})
	testutil.AssertNoError(t, err)
	if updated.FullName != newName {
		t.Errorf("expected full name %q, got %q", newName, updated.FullName)
	}

	// An admin may update anyone.
	_, err = svc.UpdateUser(admin.ID, admin.Role, other.ID, services.UpdateUserParams{FullName: &newName})
	testutil.AssertNoError(t, err)
}

func TestUpdateUserRoleChangeIsAdminOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewUserService(db)

	admin := testutil.CreateTestUserWithRole(t, db, models.RoleAdmin)
	worker := testutil.CreateTestUser(t, db)

	manager := models.RoleManager

	// A worker asking for a role change on their own account is rejected as
	// an empty update: the role field is silently ignored for non-admins.
	_, err := svc.UpdateUser(worker.ID, worker.Role, worker.ID, services.UpdateUserParams{Role: &manager})
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	var check models.User
	testutil.AssertNoError(t, db.First(&check, worker.ID).Error)
	if check.Role != models.RoleWorker {
		t.Errorf("worker should not be able to change their own role, got %s", check.Role)
	}

	// An admin can.
	_, err = svc.UpdateUser(admin.ID, admin.Role, worker.ID, services.UpdateUserParams{Role: &manager})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, db.First(&check, worker.ID).Error)
	if check.Role != models.RoleManager {
		t.Errorf("expected role manager after admin update, got %s", check.Role)
	}
}

func TestSetUserActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewUserService(db)

	user := testutil.CreateTestUser(t, db)

	_, err := svc.SetUserActive(user.ID, false)
	testutil.AssertNoError(t, err)

	// Deactivation is a soft delete: the row survives, login stops working.
	var check models.User
	testutil.AssertNoError(t, db.First(&check, user.ID).Error)
	if check.IsActive {
		t.Error("user should be inactive")
	}

	_, err = svc.AttemptLogin(user.Username, testutil.TestPassword)
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")

	// Reactivation restores login.
	_, err = svc.SetUserActive(user.ID, true)
	testutil.AssertNoError(t, err)
	_, err = svc.AttemptLogin(user.Username, testutil.TestPassword)
	testutil.AssertNoError(t, err)
}

func TestListUsersPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewUserService(db)

	for i := 0; i < 3; i++ {
		testutil.CreateTestUser(t, db)
	}

	page := pagination.PageRequest{Page: 1, PageSize: 2}
	resp, err := svc.ListUsers(page)
	testutil.AssertNoError(t, err)

	if len(resp.Data) != 2 {
		t.Errorf("expected 2 users on page, got %d", len(resp.Data))
	}
	if resp.TotalItems < 3 {
		t.Errorf("expected at least 3 total users, got %d", resp.TotalItems)
	}
}
