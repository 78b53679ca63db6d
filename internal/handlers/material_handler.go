package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
	"operationaltracker/internal/services"
)

// MaterialHandler handles material stock requests.
type MaterialHandler struct {
	materialService services.MaterialServicer
	audit           services.AuditServicer
}

// NewMaterialHandler creates a new MaterialHandler
func NewMaterialHandler(materialService services.MaterialServicer, audit services.AuditServicer) *MaterialHandler {
	return &MaterialHandler{materialService: materialService, audit: audit}
}

// MaterialRequest represents a create or partial-update material payload.
type MaterialRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	Unit        *string  `json:"unit" binding:"omitempty,max=50"`
	Quantity    *float64 `json:"quantity" binding:"omitempty,min=0"`
	ProjectID   *uint    `json:"project_id"`
	UnitPrice   *float64 `json:"unit_price" binding:"omitempty,min=0"`
	Supplier    *string  `json:"supplier" binding:"omitempty,max=255"`
}

// RecordUsageRequest represents the material usage payload.
type RecordUsageRequest struct {
	QuantityUsed float64 `json:"quantity_used" binding:"required,gt=0"`
	Notes        string  `json:"notes"`
}

// CreateRequisitionRequest represents the requisition payload.
type CreateRequisitionRequest struct {
	MaterialID        uint    `json:"material_id" binding:"required"`
	QuantityRequested float64 `json:"quantity_requested" binding:"required,gt=0"`
	ProjectID         *uint   `json:"project_id"`
	Notes             string  `json:"notes"`
}

// ReviewRequisitionRequest represents the requisition review payload.
type ReviewRequisitionRequest struct {
	Status           string   `json:"status" binding:"required,review_status"`
	ApprovedQuantity *float64 `json:"approved_quantity" binding:"omitempty,gt=0"`
}

func (r *MaterialRequest) params() services.MaterialParams {
	return services.MaterialParams{
		Name:        r.Name,
		Description: r.Description,
		Unit:        r.Unit,
		Quantity:    r.Quantity,
		ProjectID:   r.ProjectID,
		UnitPrice:   r.UnitPrice,
		Supplier:    r.Supplier,
	}
}

// ListMaterials returns materials, optionally scoped to a project.
// @Summary     List materials
// @Description Get a paginated list of materials, optionally scoped to a project
// @Tags        materials
// @Produce     json
// @Security    BearerAuth
// @Param       project_id query int false "Filter by project"
// @Param       page       query int false "Page number (default 1)"
// @Param       page_size  query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Material] "Paginated materials"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /materials [get]
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	projectID, err := parseUintQuery(c, "project_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.materialService.ListMaterials(projectID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMaterial returns one material.
// @Summary     Get material by ID
// @Description Get a single material with its current balance
// @Tags        materials
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Material ID"
// @Success     200 {object} map[string]interface{} "Material details"
// @Failure     400 {object} ErrorResponse "Invalid material ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Material not found"
// @Router      /materials/{id} [get]
func (h *MaterialHandler) GetMaterial(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	material, err := h.materialService.GetMaterialByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"material": material})
}

// CreateMaterial records a material delivery.
// @Summary     Create material
// @Description Record a material delivery; the balance starts at the delivered quantity
// @Tags        materials
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body MaterialRequest true "Material data"
// @Success     201 {object} map[string]interface{} "Created material"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /materials [post]
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	material, err := h.materialService.CreateMaterial(req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityMaterial, material.ID, map[string]interface{}{
		"name":     material.Name,
		"quantity": material.Quantity,
	})

	c.JSON(http.StatusCreated, gin.H{"material": material})
}

// UpdateMaterial partially updates a material.
// @Summary     Update material
// @Description Partially update a material's details
// @Tags        materials
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int             true "Material ID"
// @Param       request body MaterialRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated material"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     404 {object} ErrorResponse "Material not found"
// @Router      /materials/{id} [put]
func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
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

	var req MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	material, err := h.materialService.UpdateMaterial(id, req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionUpdate, models.AuditEntityMaterial, id, auditChanges(req))

	c.JSON(http.StatusOK, gin.H{"material": material})
}

// RecordUsage withdraws stock from a material's balance.
// @Summary     Record material usage
// @Description Withdraw stock from a material's balance; rejected when the balance is insufficient
// @Tags        materials
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Material ID"
// @Param       request body RecordUsageRequest true "Usage details"
// @Success     201 {object} map[string]interface{} "Recorded usage"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Material not found"
// @Router      /materials/{id}/usage [post]
func (h *MaterialHandler) RecordUsage(c *gin.Context) {
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

	var req RecordUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	usage, err := h.materialService.RecordUsage(id, identity.ID, req.QuantityUsed, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionUpdate, models.AuditEntityMaterialUsage, id, map[string]interface{}{
		"quantity_used": req.QuantityUsed,
	})

	c.JSON(http.StatusCreated, gin.H{"usage": usage})
}

// ListUsage returns a material's usage log.
// @Summary     List material usage
// @Description Get a material's usage log, newest first
// @Tags        materials
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Material ID"
// @Success     200 {object} map[string]interface{} "Usage log"
// @Failure     400 {object} ErrorResponse "Invalid material ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Material not found"
// @Router      /materials/{id}/usage [get]
func (h *MaterialHandler) ListUsage(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	usage, err := h.materialService.ListUsage(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

// CreateRequisition files a stock request.
// @Summary     Create requisition
// @Description File a stock request for a material
// @Tags        materials
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateRequisitionRequest true "Requisition details"
// @Success     201 {object} map[string]interface{} "Created requisition"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Material not found"
// @Router      /materials/requisitions [post]
func (h *MaterialHandler) CreateRequisition(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	requisition, err := h.materialService.CreateRequisition(identity.ID, req.MaterialID, req.ProjectID, req.QuantityRequested, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityMaterialRequisition, requisition.ID, map[string]interface{}{
		"quantity_requested": req.QuantityRequested,
	})

	c.JSON(http.StatusCreated, gin.H{"requisition": requisition})
}

// ListRequisitions returns requisitions matching the optional filters.
// @Summary     List requisitions
// @Description Get requisitions, optionally filtered by status or project
// @Tags        materials
// @Produce     json
// @Security    BearerAuth
// @Param       status     query string false "Filter by status"
// @Param       project_id query int    false "Filter by project"
// @Success     200 {object} map[string]interface{} "Requisitions"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /materials/requisitions [get]
func (h *MaterialHandler) ListRequisitions(c *gin.Context) {
	filter := services.RequisitionFilter{}
	if status := c.Query("status"); status != "" {
		s := models.RequisitionStatus(status)
		filter.Status = &s
	}
	projectID, err := parseUintQuery(c, "project_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.ProjectID = projectID

	requisitions, err := h.materialService.ListRequisitions(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requisitions": requisitions})
}

// ReviewRequisition approves or rejects a requisition (admin/manager only).
// @Summary     Review requisition
// @Description Approve or reject a pending requisition; approval restocks the balance
// @Tags        materials
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Requisition ID"
// @Param       request body ReviewRequisitionRequest true "Review decision"
// @Success     200 {object} map[string]interface{} "Reviewed requisition"
// @Failure     400 {object} ErrorResponse "Invalid input or already reviewed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     404 {object} ErrorResponse "Requisition not found"
// @Router      /materials/requisitions/{id}/review [patch]
func (h *MaterialHandler) ReviewRequisition(c *gin.Context) {
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

	var req ReviewRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	requisition, err := h.materialService.ReviewRequisition(identity.ID, id, models.RequisitionStatus(req.Status), req.ApprovedQuantity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionUpdate, models.AuditEntityMaterialRequisition, id, map[string]interface{}{
		"status": req.Status,
	})

	c.JSON(http.StatusOK, gin.H{"requisition": requisition})
}
