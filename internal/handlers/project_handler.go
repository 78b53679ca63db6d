package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
	"operationaltracker/internal/services"
)

// ProjectHandler handles project management requests.
type ProjectHandler struct {
	projectService services.ProjectServicer
	audit          services.AuditServicer
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService services.ProjectServicer, audit services.AuditServicer) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, audit: audit}
}

// ProjectRequest represents a create or partial-update project payload.
type ProjectRequest struct {
	Name         *string    `json:"name" binding:"omitempty,max=255"`
	Description  *string    `json:"description"`
	Location     *string    `json:"location" binding:"omitempty,max=255"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	SupervisorID *uint      `json:"supervisor_id"`
	Status       *string    `json:"status" binding:"omitempty,project_status"`
}

// AssignTeamRequest represents the team assignment payload.
type AssignTeamRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
}

func (r *ProjectRequest) params() services.ProjectParams {
	params := services.ProjectParams{
		Name:         r.Name,
		Description:  r.Description,
		Location:     r.Location,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		SupervisorID: r.SupervisorID,
	}
	if r.Status != nil {
		status := models.ProjectStatus(*r.Status)
		params.Status = &status
	}
	return params
}

// ListProjects returns all projects.
// @Summary     List projects
// @Description Get a paginated list of projects with supervisor and team size
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Project] "Paginated projects"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	result, err := h.projectService.ListProjects(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProject returns one project with its team.
// @Summary     Get project by ID
// @Description Get a single project including its assigned team
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Project ID"
// @Success     200 {object} map[string]interface{} "Project with team"
// @Failure     400 {object} ErrorResponse "Invalid project ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	project, err := h.projectService.GetProjectByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// CreateProject creates a project (admin/manager only).
// @Summary     Create project
// @Description Create a project; status defaults to planning
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ProjectRequest true "Project data"
// @Success     201 {object} map[string]interface{} "Created project"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	project, err := h.projectService.CreateProject(req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := map[string]interface{}{"name": project.Name}
	if req.Location != nil {
		changes["location"] = *req.Location
	}
	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityProject, project.ID, changes)

	c.JSON(http.StatusCreated, gin.H{"project": project})
}

// UpdateProject partially updates a project (admin/manager only).
// @Summary     Update project
// @Description Partially update a project's details or status
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int            true "Project ID"
// @Param       request body ProjectRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated project"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
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

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	project, err := h.projectService.UpdateProject(id, req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionUpdate, models.AuditEntityProject, id, auditChanges(req))

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// AssignTeam replaces a project's team (admin/manager/supervisor only).
// @Summary     Assign project team
// @Description Replace the project's staff assignments with the given user IDs
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Project ID"
// @Param       request body AssignTeamRequest true "Team member user IDs"
// @Success     200 {object} map[string]interface{} "Assignment result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id}/team [post]
func (h *ProjectHandler) AssignTeam(c *gin.Context) {
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

	var req AssignTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.projectService.AssignTeam(id, req.UserIDs); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionUpdate, models.AuditEntityProjectTeam, id, map[string]interface{}{
		"user_ids": req.UserIDs,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Team assigned successfully"})
}
