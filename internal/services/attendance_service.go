package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
)

// attendanceService handles attendance and leave tracking.
type attendanceService struct {
	db *gorm.DB
}

// NewAttendanceService creates a new AttendanceServicer.
func NewAttendanceService(db *gorm.DB) AttendanceServicer {
	return &attendanceService{db: db}
}

// ListAttendance returns attendance records matching the filter, newest first.
func (s *attendanceService) ListAttendance(filter AttendanceFilter) ([]models.Attendance, error) {
	query := s.db.Model(&models.Attendance{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Date != nil {
		query = query.Where("DATE(attendance_date) = DATE(?)", *filter.Date)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("DATE(attendance_date) BETWEEN DATE(?) AND DATE(?)", *filter.StartDate, *filter.EndDate)
	}

	var records []models.Attendance
	err := query.Preload("User").
		Preload("Project").
		Order("attendance_date DESC, clock_in_time DESC").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return records, nil
}

// ClockIn opens today's attendance record for a user. A second clock-in on
// the same day without a clock-out is rejected.
func (s *attendanceService) ClockIn(userID uint, projectID *uint, notes string) (*models.Attendance, error) {
	now := time.Now()

	var count int64
	err := s.db.Model(&models.Attendance{}).
		Where("user_id = ? AND DATE(attendance_date) = DATE(?) AND clock_out_time IS NULL", userID, now).
		Count(&count).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrAlreadyClockedIn
	}

	attendance := &models.Attendance{
		UserID:         userID,
		ProjectID:      projectID,
		AttendanceDate: now,
		ClockInTime:    &now,
		Status:         models.AttendanceStatusPresent,
		Notes:          notes,
	}
	if err := s.db.Create(attendance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return attendance, nil
}

// ClockOut closes today's open attendance record and computes hours worked.
func (s *attendanceService) ClockOut(userID uint) (*models.Attendance, error) {
	now := time.Now()

	var attendance models.Attendance
	err := s.db.Where("user_id = ? AND DATE(attendance_date) = DATE(?) AND clock_out_time IS NULL", userID, now).
		First(&attendance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoActiveClockIn
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hoursWorked := 0.0
	if attendance.ClockInTime != nil {
		hoursWorked = now.Sub(*attendance.ClockInTime).Hours()
	}

	updates := map[string]interface{}{
		"clock_out_time": now,
		"hours_worked":   hoursWorked,
	}
	if err := s.db.Model(&attendance).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &attendance, nil
}

// MarkAttendance records attendance on someone's behalf (supervisor path).
func (s *attendanceService) MarkAttendance(params MarkAttendanceParams) (*models.Attendance, error) {
	if params.UserID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user_id is required")
	}

	attendance := &models.Attendance{
		UserID:         params.UserID,
		ProjectID:      params.ProjectID,
		AttendanceDate: params.AttendanceDate,
		ClockInTime:    params.ClockInTime,
		ClockOutTime:   params.ClockOutTime,
		Status:         params.Status,
		Notes:          params.Notes,
	}
	if attendance.Status == "" {
		attendance.Status = models.AttendanceStatusPresent
	}
	if attendance.AttendanceDate.IsZero() {
		attendance.AttendanceDate = time.Now()
	}

	if err := s.db.Create(attendance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return attendance, nil
}

// UpdateAttendance applies a partial update to an existing record.
func (s *attendanceService) UpdateAttendance(attendanceID uint, params UpdateAttendanceParams) (*models.Attendance, error) {
	var attendance models.Attendance
	if err := s.db.First(&attendance, attendanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{}
	if params.Status != nil {
		updates["status"] = *params.Status
	}
	if params.ClockInTime != nil {
		updates["clock_in_time"] = *params.ClockInTime
	}
	if params.ClockOutTime != nil {
		updates["clock_out_time"] = *params.ClockOutTime
	}
	if params.Notes != nil {
		updates["notes"] = *params.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(&attendance).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &attendance, nil
}

// CreateLeaveRequest files a pending leave request for a user.
func (s *attendanceService) CreateLeaveRequest(userID uint, startDate, endDate time.Time, leaveType, reason string) (*models.LeaveRequest, error) {
	if endDate.Before(startDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not be before start_date")
	}

	request := &models.LeaveRequest{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		LeaveType: leaveType,
		Reason:    reason,
		Status:    models.LeaveStatusPending,
	}
	if err := s.db.Create(request).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return request, nil
}

// ListLeaveRequests returns leave requests matching the filter, newest
// first. A worker who does not name a user filter is implicitly scoped to
// their own rows; this is injected into the query, not rejected afterwards.
func (s *attendanceService) ListLeaveRequests(actorID uint, actorRole models.Role, filter LeaveRequestFilter) ([]models.LeaveRequest, error) {
	query := s.db.Model(&models.LeaveRequest{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	} else if actorRole == models.RoleWorker {
		query = query.Where("user_id = ?", actorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var requests []models.LeaveRequest
	err := query.Preload("User").
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return requests, nil
}

// ReviewLeaveRequest approves or rejects a pending request.
func (s *attendanceService) ReviewLeaveRequest(reviewerID, requestID uint, status models.LeaveStatus, comments string) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLeaveRequestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":          status,
		"reviewed_by":     reviewerID,
		"review_comments": comments,
		"reviewed_at":     now,
	}
	if err := s.db.Model(&request).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &request, nil
}
