package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
)

// equipmentService handles equipment tracking, breakdowns and maintenance.
type equipmentService struct {
	db *gorm.DB
}

// NewEquipmentService creates a new EquipmentServicer.
func NewEquipmentService(db *gorm.DB) EquipmentServicer {
	return &equipmentService{db: db}
}

// CreateEquipment registers equipment; status defaults to operational.
func (s *equipmentService) CreateEquipment(params EquipmentParams) (*models.Equipment, error) {
	if params.Name == nil || *params.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "equipment name is required")
	}

	equipment := &models.Equipment{
		Name:                *params.Name,
		ProjectID:           params.ProjectID,
		Status:              models.EquipmentStatusOperational,
		LastMaintenanceDate: params.LastMaintenanceDate,
		NextMaintenanceDate: params.NextMaintenanceDate,
	}
	if params.Type != nil {
		equipment.Type = *params.Type
	}
	if params.SerialNumber != nil {
		equipment.SerialNumber = *params.SerialNumber
	}
	if params.Status != nil {
		equipment.Status = *params.Status
	}

	if err := s.db.Create(equipment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return equipment, nil
}

// ListEquipment returns equipment, optionally filtered by project and status.
func (s *equipmentService) ListEquipment(projectID *uint, status *models.EquipmentStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Equipment], error) {
	query := s.db.Model(&models.Equipment{})
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var equipment []models.Equipment
	if err := query.Preload("Project").
		Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&equipment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(equipment, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetEquipmentByID returns one piece of equipment.
func (s *equipmentService) GetEquipmentByID(equipmentID uint) (*models.Equipment, error) {
	var equipment models.Equipment
	if err := s.db.Preload("Project").First(&equipment, equipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEquipmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &equipment, nil
}

// UpdateEquipment applies a partial update.
func (s *equipmentService) UpdateEquipment(equipmentID uint, params EquipmentParams) (*models.Equipment, error) {
	equipment, err := s.GetEquipmentByID(equipmentID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.Type != nil {
		updates["type"] = *params.Type
	}
	if params.SerialNumber != nil {
		updates["serial_number"] = *params.SerialNumber
	}
	if params.ProjectID != nil {
		updates["project_id"] = *params.ProjectID
	}
	if params.Status != nil {
		updates["status"] = *params.Status
	}
	if params.LastMaintenanceDate != nil {
		updates["last_maintenance_date"] = *params.LastMaintenanceDate
	}
	if params.NextMaintenanceDate != nil {
		updates["next_maintenance_date"] = *params.NextMaintenanceDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(equipment).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return equipment, nil
}

// ReportBreakdown records a failure and marks the equipment broken.
func (s *equipmentService) ReportBreakdown(equipmentID, reporterID uint, description, severity string, estimatedRepairDate *time.Time) (*models.EquipmentBreakdown, error) {
	equipment, err := s.GetEquipmentByID(equipmentID)
	if err != nil {
		return nil, err
	}

	breakdown := &models.EquipmentBreakdown{
		EquipmentID:         equipmentID,
		ReportedBy:          reporterID,
		Description:         description,
		Severity:            severity,
		EstimatedRepairDate: estimatedRepairDate,
		Status:              "open",
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(equipment).Update("status", models.EquipmentStatusBroken).Error; err != nil {
			return err
		}
		return tx.Create(breakdown).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return breakdown, nil
}

// RecordMaintenance logs a maintenance job and rolls the maintenance dates
// forward, returning the equipment to service.
func (s *equipmentService) RecordMaintenance(equipmentID, performerID uint, maintenanceType, description string, cost float64, nextMaintenanceDate *time.Time) (*models.EquipmentMaintenance, error) {
	equipment, err := s.GetEquipmentByID(equipmentID)
	if err != nil {
		return nil, err
	}

	maintenance := &models.EquipmentMaintenance{
		EquipmentID:         equipmentID,
		PerformedBy:         performerID,
		MaintenanceType:     maintenanceType,
		Description:         description,
		Cost:                cost,
		NextMaintenanceDate: nextMaintenanceDate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(maintenance).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"status":                models.EquipmentStatusOperational,
			"last_maintenance_date": time.Now(),
		}
		if nextMaintenanceDate != nil {
			updates["next_maintenance_date"] = *nextMaintenanceDate
		}
		return tx.Model(equipment).Updates(updates).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return maintenance, nil
}

// ListBreakdowns returns a machine's breakdown history, newest first.
func (s *equipmentService) ListBreakdowns(equipmentID uint) ([]models.EquipmentBreakdown, error) {
	var breakdowns []models.EquipmentBreakdown
	err := s.db.Preload("Reporter").
		Where("equipment_id = ?", equipmentID).
		Order("created_at DESC").
		Find(&breakdowns).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return breakdowns, nil
}

// ListMaintenance returns a machine's maintenance history, newest first.
func (s *equipmentService) ListMaintenance(equipmentID uint) ([]models.EquipmentMaintenance, error) {
	var maintenance []models.EquipmentMaintenance
	err := s.db.Preload("Performer").
		Where("equipment_id = ?", equipmentID).
		Order("created_at DESC").
		Find(&maintenance).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return maintenance, nil
}
