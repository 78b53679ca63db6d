package services_test

import (
	"testing"

	"operationaltracker/internal/models"
	"operationaltracker/internal/services"
	"operationaltracker/internal/testutil"
)

func TestClockInAndOut(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewAttendanceService(db)

	worker := testutil.CreateTestUser(t, db)

	record, err := svc.ClockIn(worker.ID, nil, "")
	testutil.AssertNoError(t, err)
	if record.ClockInTime == nil {
		t.Fatal("expected clock-in time to be set")
	}
	if record.Status != models.AttendanceStatusPresent {
		t.Errorf("expected present status, got %s", record.Status)
	}

	closed, err := svc.ClockOut(worker.ID)
	testutil.AssertNoError(t, err)

	var check models.Attendance
	testutil.AssertNoError(t, db.First(&check, closed.ID).Error)
	if check.ClockOutTime == nil {
		t.Fatal("expected clock-out time to be set")
	}
	if check.HoursWorked < 0 {
		t.Errorf("hours worked should be non-negative, got %f", check.HoursWorked)
	}
}

func TestClockInTwiceSameDayRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewAttendanceService(db)

	worker := testutil.CreateTestUser(t, db)

	_, err := svc.ClockIn(worker.ID, nil, "")
	testutil.AssertNoError(t, err)

	_, err = svc.ClockIn(worker.ID, nil, "")
	testutil.AssertAppError(t, err, "ALREADY_CLOCKED_IN")

	// After clocking out, a new clock-in is allowed again.
	_, err = svc.ClockOut(worker.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.ClockIn(worker.ID, nil, "")
	testutil.AssertNoError(t, err)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewAttendanceService(db)

	worker := testutil.CreateTestUser(t, db)

	_, err := svc.ClockOut(worker.ID)
	testutil.AssertAppError(t, err, "NO_ACTIVE_CLOCK_IN")
}

func TestMarkAttendanceRequiresUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewAttendanceService(db)

	_, err := svc.MarkAttendance(services.MarkAttendanceParams{})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

// A worker listing leave requests without an explicit user filter is scoped
// to their own rows. Elevated roles see everything.
func TestListLeaveRequestsWorkerDefaultFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewAttendanceService(db)

	worker := testutil.CreateTestUser(t, db)
	colleague := testutil.CreateTestUser(t, db)
	manager := testutil.CreateTestUserWithRole(t, db, models.RoleManager)

	own := testutil.CreateTestLeaveRequest(t, db, worker.ID)
	testutil.CreateTestLeaveRequest(t, db, colleague.ID)

	// Worker, no filter: only their own.
	requests, err := svc.ListLeaveRequests(worker.ID, models.RoleWorker, services.LeaveRequestFilter{})
	testutil.AssertNoError(t, err)
	if len(requests) != 1 || requests[0].ID != own.ID {
		t.Fatalf("expected only the worker's own request, got %d rows", len(requests))
	}

	// Worker with an explicit filter: the filter wins.
	requests, err = svc.ListLeaveRequests(worker.ID, models.RoleWorker, services.LeaveRequestFilter{UserID: &colleague.ID})
	testutil.AssertNoError(t, err)
	if len(requests) != 1 || requests[0].UserID != colleague.ID {
		t.Fatalf("expected the filtered user's request, got %d rows", len(requests))
	}

	// Manager, no filter: everything.
	requests, err = svc.ListLeaveRequests(manager.ID, models.RoleManager, services.LeaveRequestFilter{})
	testutil.AssertNoError(t, err)
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests for manager, got %d", len(requests))
	}
}

func TestReviewLeaveRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := services.NewAttendanceService(db)

	worker := testutil.CreateTestUser(t, db)
	reviewer := testutil.CreateTestUserWithRole(t, db, models.RoleSupervisor)
	request := testutil.CreateTestLeaveRequest(t, db, worker.ID)

	_, err := svc.ReviewLeaveRequest(reviewer.ID, request.ID, models.LeaveStatusApproved, "enjoy")
	testutil.AssertNoError(t, err)

	var check models.LeaveRequest
	testutil.AssertNoError(t, db.First(&check, request.ID).Error)
	if check.Status != models.LeaveStatusApproved {
		t.Errorf("expected approved status, got %s", check.Status)
	}
	if check.ReviewedBy == nil || *check.ReviewedBy != reviewer.ID {
		t.Error("expected reviewer recorded on request")
	}
	if check.ReviewedAt == nil {
		t.Error("expected review timestamp to be set")
	}

	_, err = svc.ReviewLeaveRequest(reviewer.ID, 999999, models.LeaveStatusApproved, "")
	testutil.AssertAppError(t, err, "LEAVE_REQUEST_NOT_FOUND")
}
