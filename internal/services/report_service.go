package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
)

// reportService produces read-only aggregations. It never mutates, so it
// records no audit entries.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// Dashboard returns headline counts across the tracker.
func (s *reportService) Dashboard() (*DashboardReport, error) {
	report := &DashboardReport{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&report.Projects.Total, s.db.Model(&models.Project{})},
		{&report.Projects.Active, s.db.Model(&models.Project{}).Where("status = ?", models.ProjectStatusActive)},
		{&report.Tasks.Total, s.db.Model(&models.Task{})},
		{&report.Tasks.Active, s.db.Model(&models.Task{}).Where("status IN ?", []models.TaskStatus{models.TaskStatusPending, models.TaskStatusInProgress})},
		{&report.Materials, s.db.Model(&models.Material{})},
		{&report.Equipment.Total, s.db.Model(&models.Equipment{})},
		{&report.Equipment.Active, s.db.Model(&models.Equipment{}).Where("status = ?", models.EquipmentStatusOperational)},
		{&report.PresentToday, s.db.Model(&models.Attendance{}).Where("DATE(attendance_date) = DATE(?) AND status = ?", time.Now(), models.AttendanceStatusPresent)},
		{&report.ActiveWorkers, s.db.Model(&models.User{}).Where("role = ? AND is_active = ?", models.RoleWorker, true)},
		{&report.PendingLeaves, s.db.Model(&models.LeaveRequest{}).Where("status = ?", models.LeaveStatusPending)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return report, nil
}

// ProjectProgressReport returns per-project task completion.
func (s *reportService) ProjectProgressReport() ([]ProjectProgress, error) {
	var rows []ProjectProgress
	err := s.db.Model(&models.Project{}).
		Select(`projects.id AS project_id,
			projects.name AS project_name,
			COUNT(tasks.id) AS total_tasks,
			SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END) AS completed_tasks`, models.TaskStatusCompleted).
		Joins("LEFT JOIN tasks ON tasks.project_id = projects.id").
		Group("projects.id, projects.name").
		Order("projects.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range rows {
		if rows[i].TotalTasks > 0 {
			rows[i].Percentage = float64(rows[i].CompletedTasks) / float64(rows[i].TotalTasks) * 100
		}
	}
	return rows, nil
}
