package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
)

// materialService handles material stock, usage, and requisitions.
type materialService struct {
	db *gorm.DB
}

// NewMaterialService creates a new MaterialServicer.
func NewMaterialService(db *gorm.DB) MaterialServicer {
	return &materialService{db: db}
}

// CreateMaterial creates a material; the current balance starts at the
// delivered quantity.
func (s *materialService) CreateMaterial(params MaterialParams) (*models.Material, error) {
	if params.Name == nil || *params.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "material name is required")
	}

	material := &models.Material{
		Name:      *params.Name,
		ProjectID: params.ProjectID,
	}
	if params.Description != nil {
		material.Description = *params.Description
	}
	if params.Unit != nil {
		material.Unit = *params.Unit
	}
	if params.Quantity != nil {
		material.Quantity = *params.Quantity
		material.CurrentBalance = *params.Quantity
	}
	if params.UnitPrice != nil {
		material.UnitPrice = *params.UnitPrice
	}
	if params.Supplier != nil {
		material.Supplier = *params.Supplier
	}

	if err := s.db.Create(material).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return material, nil
}

// ListMaterials returns materials, optionally scoped to a project.
func (s *materialService) ListMaterials(projectID *uint, page pagination.PageRequest) (*pagination.PageResponse[models.Material], error) {
	query := s.db.Model(&models.Material{})
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var materials []models.Material
	if err := query.Preload("Project").
		Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&materials).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(materials, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetMaterialByID returns one material.
func (s *materialService) GetMaterialByID(materialID uint) (*models.Material, error) {
	var material models.Material
	if err := s.db.Preload("Project").First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMaterialNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &material, nil
}

// UpdateMaterial applies a partial update to a material's descriptive fields.
func (s *materialService) UpdateMaterial(materialID uint, params MaterialParams) (*models.Material, error) {
	material, err := s.GetMaterialByID(materialID)
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
	if params.Unit != nil {
		updates["unit"] = *params.Unit
	}
	if params.Quantity != nil {
		updates["quantity"] = *params.Quantity
	}
	if params.UnitPrice != nil {
		updates["unit_price"] = *params.UnitPrice
	}
	if params.Supplier != nil {
		updates["supplier"] = *params.Supplier
	}

	if len(updates) > 0 {
		if err := s.db.Model(material).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return material, nil
}

// RecordUsage withdraws quantityUsed from a material's balance and records
// the withdrawal. The decrement is a single conditional UPDATE so that
// concurrent withdrawals cannot drive the balance negative.
func (s *materialService) RecordUsage(materialID, userID uint, quantityUsed float64, notes string) (*models.MaterialUsage, error) {
	if quantityUsed <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity_used must be positive")
	}

	if _, err := s.GetMaterialByID(materialID); err != nil {
		return nil, err
	}

	result := s.db.Model(&models.Material{}).
		Where("id = ? AND current_balance >= ?", materialID, quantityUsed).
		Update("current_balance", gorm.Expr("current_balance - ?", quantityUsed))
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrInsufficientBalance
	}

	usage := &models.MaterialUsage{
		MaterialID:   materialID,
		UserID:       userID,
		QuantityUsed: quantityUsed,
		Notes:        notes,
	}
	if err := s.db.Create(usage).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return usage, nil
}

// ListUsage returns a material's usage log, newest first.
func (s *materialService) ListUsage(materialID uint) ([]models.MaterialUsage, error) {
	var usage []models.MaterialUsage
	err := s.db.Preload("User").
		Where("material_id = ?", materialID).
		Order("created_at DESC").
		Find(&usage).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return usage, nil
}

// CreateRequisition files a pending stock request.
func (s *materialService) CreateRequisition(requesterID, materialID uint, projectID *uint, quantityRequested float64, notes string) (*models.MaterialRequisition, error) {
	if quantityRequested <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity_requested must be positive")
	}
	if _, err := s.GetMaterialByID(materialID); err != nil {
		return nil, err
	}

	requisition := &models.MaterialRequisition{
		MaterialID:        materialID,
		ProjectID:         projectID,
		RequestedBy:       requesterID,
		QuantityRequested: quantityRequested,
		Status:            models.RequisitionStatusPending,
		Notes:             notes,
	}
	if err := s.db.Create(requisition).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return requisition, nil
}

// ListRequisitions returns requisitions matching the filter, newest first.
func (s *materialService) ListRequisitions(filter RequisitionFilter) ([]models.MaterialRequisition, error) {
	query := s.db.Model(&models.MaterialRequisition{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	var requisitions []models.MaterialRequisition
	err := query.Preload("Material").
		Preload("Project").
		Preload("Requester").
		Order("created_at DESC").
		Find(&requisitions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return requisitions, nil
}

// ReviewRequisition approves or rejects a pending requisition. Approval with
// a quantity restocks the material's balance; a requisition can only be
// reviewed once, so a repeated approval cannot restock twice.
func (s *materialService) ReviewRequisition(reviewerID, requisitionID uint, status models.RequisitionStatus, approvedQuantity *float64) (*models.MaterialRequisition, error) {
	var requisition models.MaterialRequisition
	if err := s.db.First(&requisition, requisitionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRequisitionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if requisition.Status != models.RequisitionStatusPending {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "requisition has already been reviewed")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      status,
		"approved_by": reviewerID,
		"approved_at": now,
	}
	if approvedQuantity != nil {
		updates["approved_quantity"] = *approvedQuantity
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&requisition).Updates(updates).Error; err != nil {
			return err
		}
		if status == models.RequisitionStatusApproved && approvedQuantity != nil {
			return tx.Model(&models.Material{}).
				Where("id = ?", requisition.MaterialID).
				Update("current_balance", gorm.Expr("current_balance + ?", *approvedQuantity)).Error
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &requisition, nil
}
