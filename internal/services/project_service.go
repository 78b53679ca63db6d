package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
)

// projectService handles project management.
type projectService struct {
	db *gorm.DB
}

// NewProjectService creates a new ProjectServicer.
func NewProjectService(db *gorm.DB) ProjectServicer {
	return &projectService{db: db}
}

// CreateProject creates a project; status defaults to planning.
func (s *projectService) CreateProject(params ProjectParams) (*models.Project, error) {
	if params.Name == nil || *params.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "project name is required")
	}

	project := &models.Project{
		Name:         *params.Name,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		SupervisorID: params.SupervisorID,
		Status:       models.ProjectStatusPlanning,
	}
	if params.Description != nil {
		project.Description = *params.Description
	}
	if params.Location != nil {
		project.Location = *params.Location
	}
	if params.Status != nil {
		project.Status = *params.Status
	}

	if err := s.db.Create(project).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return project, nil
}

// ListProjects returns all projects with their supervisors, newest first.
func (s *projectService) ListProjects(page pagination.PageRequest) (*pagination.PageResponse[models.Project], error) {
	var total int64
	if err := s.db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var projects []models.Project
	if err := s.db.Preload("Supervisor").
		Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(projects, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetProjectByID returns one project with its supervisor and team.
func (s *projectService) GetProjectByID(projectID uint) (*models.Project, error) {
	var project models.Project
	err := s.db.Preload("Supervisor").
		Preload("Staff").
		Preload("Staff.User").
		First(&project, projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &project, nil
}

// UpdateProject applies a partial update.
func (s *projectService) UpdateProject(projectID uint, params ProjectParams) (*models.Project, error) {
	project, err := s.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Location != nil {
		updates["location"] = *params.Location
	}
	if params.StartDate != nil {
		updates["start_date"] = *params.StartDate
	}
	if params.EndDate != nil {
		updates["end_date"] = *params.EndDate
	}
	if params.SupervisorID != nil {
		updates["supervisor_id"] = *params.SupervisorID
	}
	if params.Status != nil {
		updates["status"] = *params.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return project, nil
}

// AssignTeam replaces a project's team with the given users.
func (s *projectService) AssignTeam(projectID uint, userIDs []uint) error {
	if _, err := s.GetProjectByID(projectID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectStaff{}).Error; err != nil {
			return err
		}
		now := time.Now()
		for _, userID := range userIDs {
			staff := models.ProjectStaff{
				ProjectID:  projectID,
				UserID:     userID,
				AssignedAt: now,
			}
			if err := tx.Create(&staff).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
