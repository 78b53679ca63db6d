package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"operationaltracker/internal/services"
)

// ReportHandler handles read-only aggregation reports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns headline counts across projects, tasks, equipment,
// materials and attendance.
// @Summary     Dashboard report
// @Description Get headline counts across projects, tasks, materials, equipment, and attendance
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Dashboard counts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	report, err := h.reportService.Dashboard()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": report})
}

// ProjectProgress returns per-project task completion percentages.
// @Summary     Project progress report
// @Description Get per-project task completion percentages
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Per-project progress"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/progress [get]
func (h *ReportHandler) ProjectProgress(c *gin.Context) {
	report, err := h.reportService.ProjectProgressReport()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": report})
}
