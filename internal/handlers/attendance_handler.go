package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/services"
)

// AttendanceHandler handles attendance and leave requests.
type AttendanceHandler struct {
	attendanceService services.AttendanceServicer
	audit             services.AuditServicer
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService services.AttendanceServicer, audit services.AuditServicer) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService, audit: audit}
}

// ClockInRequest represents the clock-in payload.
type ClockInRequest struct {
	ProjectID *uint  `json:"project_id"`
	Notes     string `json:"notes"`
}

// MarkAttendanceRequest represents a supervisor marking attendance for a worker.
type MarkAttendanceRequest struct {
	UserID         uint       `json:"user_id" binding:"required"`
	ProjectID      *uint      `json:"project_id"`
	AttendanceDate string     `json:"attendance_date" binding:"required"`
	ClockInTime    *time.Time `json:"clock_in_time"`
	ClockOutTime   *time.Time `json:"clock_out_time"`
	Status         string     `json:"status" binding:"required,attendance_status"`
	Notes          string     `json:"notes"`
}

// UpdateAttendanceRequest represents a partial attendance correction.
type UpdateAttendanceRequest struct {
	Status       *string    `json:"status" binding:"omitempty,attendance_status"`
	ClockInTime  *time.Time `json:"clock_in_time"`
	ClockOutTime *time.Time `json:"clock_out_time"`
	Notes        *string    `json:"notes"`
}

// CreateLeaveRequestRequest represents the leave request payload.
type CreateLeaveRequestRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	LeaveType string `json:"leave_type" binding:"required,max=50"`
	Reason    string `json:"reason"`
}

// ReviewLeaveRequestRequest represents the leave review payload.
type ReviewLeaveRequestRequest struct {
	Status   string `json:"status" binding:"required,review_status"`
	Comments string `json:"comments"`
}

// ListAttendance returns attendance records matching the optional filters.
// @Summary     List attendance
// @Description Get attendance records, optionally filtered by user, project, or date
// @Tags        attendance
// @Produce     json
// @Security    BearerAuth
// @Param       user_id    query int    false "Filter by user"
// @Param       project_id query int    false "Filter by project"
// @Param       date       query string false "Filter by date (YYYY-MM-DD)"
// @Success     200 {object} map[string]interface{} "Attendance records"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /attendance [get]
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	filter := services.AttendanceFilter{}

	userID, err := parseUintQuery(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.UserID = userID

	projectID, err := parseUintQuery(c, "project_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.ProjectID = projectID

	if filter.Date, err = parseDateQuery(c, "date"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.StartDate, err = parseDateQuery(c, "start_date"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.EndDate, err = parseDateQuery(c, "end_date"); err != nil {
		respondWithError(c, err)
		return
	}

	records, err := h.attendanceService.ListAttendance(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": records})
}

// ClockIn opens today's attendance record for the caller.
// @Summary     Clock in
// @Description Open today's attendance record for the caller; a second clock-in on the same day is rejected
// @Tags        attendance
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ClockInRequest true "Clock-in details"
// @Success     201 {object} map[string]interface{} "Opened attendance record"
// @Failure     400 {object} ErrorResponse "Invalid input or already clocked in"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /attendance/clock-in [post]
func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.attendanceService.ClockIn(identity.ID, req.ProjectID, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityAttendance, record.ID, map[string]interface{}{
		"event": "clock_in",
	})

	c.JSON(http.StatusCreated, gin.H{"attendance": record})
}

// ClockOut closes today's open attendance record for the caller.
// @Summary     Clock out
// @Description Close today's open attendance record and compute hours worked
// @Tags        attendance
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Closed attendance record"
// @Failure     400 {object} ErrorResponse "No open clock-in today"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /attendance/clock-out [post]
func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.attendanceService.ClockOut(identity.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionUpdate, models.AuditEntityAttendance, record.ID, map[string]interface{}{
		"event":        "clock_out",
		"hours_worked": record.HoursWorked,
	})

	c.JSON(http.StatusOK, gin.H{"attendance": record})
}

// MarkAttendance lets a supervisor record attendance on a worker's behalf.
// @Summary     Mark attendance
// @Description Record attendance for a user on a given date
// @Tags        attendance
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body MarkAttendanceRequest true "Attendance details"
// @Success     201 {object} map[string]interface{} "Marked attendance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /attendance/mark [post]
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := time.Parse("2006-01-02", req.AttendanceDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "attendance_date must be in YYYY-MM-DD format"))
		return
	}

	record, err := h.attendanceService.MarkAttendance(services.MarkAttendanceParams{
		UserID:         req.UserID,
		ProjectID:      req.ProjectID,
		AttendanceDate: date,
		ClockInTime:    req.ClockInTime,
		ClockOutTime:   req.ClockOutTime,
		Status:         models.AttendanceStatus(req.Status),
		Notes:          req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityAttendance, record.ID, map[string]interface{}{
		"user_id": req.UserID,
		"status":  req.Status,
	})

	c.JSON(http.StatusCreated, gin.H{"attendance": record})
}

// UpdateAttendance corrects an attendance record.
// @Summary     Update attendance
// @Description Partially update an attendance record
// @Tags        attendance
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                     true "Attendance ID"
// @Param       request body UpdateAttendanceRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated attendance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     404 {object} ErrorResponse "Attendance record not found"
// @Router      /attendance/{id} [put]
func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	params := services.UpdateAttendanceParams{
		ClockInTime:  req.ClockInTime,
		ClockOutTime: req.ClockOutTime,
		Notes:        req.Notes,
	}
	if req.Status != nil {
		status := models.AttendanceStatus(*req.Status)
		params.Status = &status
	}

	record, err := h.attendanceService.UpdateAttendance(id, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionUpdate, models.AuditEntityAttendance, id, auditChanges(req))

	c.JSON(http.StatusOK, gin.H{"attendance": record})
}

// CreateLeaveRequest files a leave request for the caller.
// @Summary     Request leave
// @Description File a leave request; the end date must not precede the start date
// @Tags        attendance
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateLeaveRequestRequest true "Leave request details"
// @Success     201 {object} map[string]interface{} "Created leave request"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /attendance/leave-requests [post]
func (h *AttendanceHandler) CreateLeaveRequest(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date must be in YYYY-MM-DD format"))
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must be in YYYY-MM-DD format"))
		return
	}
	if endDate.Before(startDate) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not be before start_date"))
		return
	}

	request, err := h.attendanceService.CreateLeaveRequest(identity.ID, startDate, endDate, req.LeaveType, req.Reason)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityLeaveRequest, request.ID, map[string]interface{}{
		"leave_type": req.LeaveType,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
	})

	c.JSON(http.StatusCreated, gin.H{"leave_request": request})
}

// ListLeaveRequests returns leave requests visible to the caller. Workers see
// only their own unless they pass an explicit user filter matching themselves.
// @Summary     List leave requests
// @Description Get leave requests; workers without an explicit filter see only their own
// @Tags        attendance
// @Produce     json
// @Security    BearerAuth
// @Param       user_id query int    false "Filter by user"
// @Param       status  query string false "Filter by status"
// @Success     200 {object} map[string]interface{} "Leave requests"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /attendance/leave-requests [get]
func (h *AttendanceHandler) ListLeaveRequests(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.LeaveRequestFilter{}
	userID, err := parseUintQuery(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.UserID = userID

	if s := c.Query("status"); s != "" {
		status := models.LeaveStatus(s)
		filter.Status = &status
	}

	requests, err := h.attendanceService.ListLeaveRequests(identity.ID, identity.Role, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leave_requests": requests})
}

// ReviewLeaveRequest approves or rejects a leave request.
// @Summary     Review leave request
// @Description Approve or reject a leave request
// @Tags        attendance
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                       true "Leave request ID"
// @Param       request body ReviewLeaveRequestRequest true "Review decision"
// @Success     200 {object} map[string]interface{} "Reviewed leave request"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     404 {object} ErrorResponse "Leave request not found"
// @Router      /attendance/leave-requests/{id}/review [patch]
func (h *AttendanceHandler) ReviewLeaveRequest(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReviewLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	request, err := h.attendanceService.ReviewLeaveRequest(identity.ID, id, models.LeaveStatus(req.Status), req.Comments)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionUpdate, models.AuditEntityLeaveRequest, id, map[string]interface{}{
		"status": req.Status,
	})

	c.JSON(http.StatusOK, gin.H{"leave_request": request})
}
