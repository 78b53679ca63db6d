package services_test

import (
	"testing"

	"operationaltracker/internal/models"
	"operationaltracker/internal/services"
	"operationaltracker/internal/testutil"
)

func TestNotificationsAreOwnerScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewNotificationService(db)

	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	for _, n := range []models.Notification{
		{UserID: owner.ID, Type: "task_assigned", Title: "New task", Message: "You were assigned a task"},
		{UserID: owner.ID, Type: "leave_reviewed", Title: "Leave approved", Message: "Your leave was approved", IsRead: true},
		{UserID: other.ID, Type: "task_assigned", Title: "New task", Message: "You were assigned a task"},
	} {
		notification := n
		if err := db.Create(&notification).Error; err != nil {
			t.Fatalf("seeding notification: %v", err)
		}
	}

	all, err := svc.ListNotifications(owner.ID, false)
	testutil.AssertNoError(t, err)
	if len(all) != 2 {
		t.Fatalf("expected 2 notifications for owner, got %d", len(all))
	}

	unread, err := svc.ListNotifications(owner.ID, true)
	testutil.AssertNoError(t, err)
	if len(unread) != 1 {
		t.Fatalf("expected 1 unread notification, got %d", len(unread))
	}
	if unread[0].Title != "New task" {
		t.Errorf("unexpected unread notification %q", unread[0].Title)
	}
}

func TestMarkReadRejectsForeignNotification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewNotificationService(db)

	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)

	notification := models.Notification{UserID: owner.ID, Type: "general", Title: "Hello", Message: "hi"}
	if err := db.Create(&notification).Error; err != nil {
		t.Fatalf("seeding notification: %v", err)
	}

	// Another user's ID scopes the lookup, so the row is simply not found.
	_, err := svc.MarkRead(intruder.ID, notification.ID)
	testutil.AssertAppError(t, err, "NOTIFICATION_NOT_FOUND")

	updated, err := svc.MarkRead(owner.ID, notification.ID)
	testutil.AssertNoError(t, err)
	if !updated.IsRead {
		t.Error("expected notification to be marked read")
	}
}

func TestMarkAllRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewNotificationService(db)

	owner := testutil.CreateTestUser(t, db)
	for i := 0; i < 3; i++ {
		notification := models.Notification{UserID: owner.ID, Type: "general", Title: "Ping", Message: "ping"}
		if err := db.Create(&notification).Error; err != nil {
			t.Fatalf("seeding notification: %v", err)
		}
	}

	testutil.AssertNoError(t, svc.MarkAllRead(owner.ID))

	unread, err := svc.ListNotifications(owner.ID, true)
	testutil.AssertNoError(t, err)
	if len(unread) != 0 {
		t.Errorf("expected no unread notifications, got %d", len(unread))
	}
}
