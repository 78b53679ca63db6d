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

// EquipmentHandler handles equipment tracking requests.
type EquipmentHandler struct {
	equipmentService services.EquipmentServicer
	audit            services.AuditServicer
}

// NewEquipmentHandler creates a new EquipmentHandler
func NewEquipmentHandler(equipmentService services.EquipmentServicer, audit services.AuditServicer) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService, audit: audit}
}

// EquipmentRequest represents a create or partial-update equipment payload.
type EquipmentRequest struct {
	Name                *string    `json:"name" binding:"omitempty,max=255"`
	Type                *string    `json:"type" binding:"omitempty,max=100"`
	SerialNumber        *string    `json:"serial_number" binding:"omitempty,max=100"`
	ProjectID           *uint      `json:"project_id"`
	Status              *string    `json:"status" binding:"omitempty,equipment_status"`
	LastMaintenanceDate *time.Time `json:"last_maintenance_date"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
}

// ReportBreakdownRequest represents the breakdown report payload.
type ReportBreakdownRequest struct {
	Description         string     `json:"description" binding:"required"`
	Severity            string     `json:"severity" binding:"omitempty,oneof=low medium high critical"`
	EstimatedRepairDate *time.Time `json:"estimated_repair_date"`
}

// RecordMaintenanceRequest represents the maintenance record payload.
type RecordMaintenanceRequest struct {
	MaintenanceType     string     `json:"maintenance_type" binding:"required,max=100"`
	Description         string     `json:"description"`
	Cost                float64    `json:"cost" binding:"omitempty,min=0"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
}

func (r *EquipmentRequest) params() services.EquipmentParams {
	params := services.EquipmentParams{
		Name:                r.Name,
		Type:                r.Type,
		SerialNumber:        r.SerialNumber,
		ProjectID:           r.ProjectID,
		LastMaintenanceDate: r.LastMaintenanceDate,
		NextMaintenanceDate: r.NextMaintenanceDate,
	}
	if r.Status != nil {
		status := models.EquipmentStatus(*r.Status)
		params.Status = &status
	}
	return params
}

// ListEquipment returns equipment, optionally filtered by project or status.
// @Summary     List equipment
// @Description Get a paginated list of equipment, optionally filtered
// @Tags        equipment
// @Produce     json
// @Security    BearerAuth
// @Param       project_id query int    false "Filter by project"
// @Param       status     query string false "Filter by status"
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Equipment] "Paginated equipment"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /equipment [get]
func (h *EquipmentHandler) ListEquipment(c *gin.Context) {
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

	var status *models.EquipmentStatus
	if s := c.Query("status"); s != "" {
		es := models.EquipmentStatus(s)
		status = &es
	}

	result, err := h.equipmentService.ListEquipment(projectID, status, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEquipment returns one piece of equipment.
// @Summary     Get equipment by ID
// @Description Get a single piece of equipment
// @Tags        equipment
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Equipment ID"
// @Success     200 {object} map[string]interface{} "Equipment details"
// @Failure     400 {object} ErrorResponse "Invalid equipment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Equipment not found"
// @Router      /equipment/{id} [get]
func (h *EquipmentHandler) GetEquipment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	equipment, err := h.equipmentService.GetEquipmentByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"equipment": equipment})
}

// CreateEquipment registers a piece of equipment.
// @Summary     Create equipment
// @Description Register equipment; status defaults to operational
// @Tags        equipment
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EquipmentRequest true "Equipment data"
// @Success     201 {object} map[string]interface{} "Created equipment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /equipment [post]
func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	equipment, err := h.equipmentService.CreateEquipment(req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityEquipment, equipment.ID, map[string]interface{}{
		"name": equipment.Name,
		"type": equipment.Type,
	})

	c.JSON(http.StatusCreated, gin.H{"equipment": equipment})
}

// UpdateEquipment partially updates a piece of equipment.
// @Summary     Update equipment
// @Description Partially update a piece of equipment
// @Tags        equipment
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int              true "Equipment ID"
// @Param       request body EquipmentRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated equipment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Equipment not found"
// @Router      /equipment/{id} [put]
func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
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

	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	equipment, err := h.equipmentService.UpdateEquipment(id, req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionUpdate, models.AuditEntityEquipment, id, auditChanges(req))

	c.JSON(http.StatusOK, gin.H{"equipment": equipment})
}

// ReportBreakdown files a breakdown report and marks the equipment broken.
// @Summary     Report breakdown
// @Description Report an equipment failure; the equipment is marked broken
// @Tags        equipment
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                    true "Equipment ID"
// @Param       request body ReportBreakdownRequest true "Breakdown details"
// @Success     201 {object} map[string]interface{} "Reported breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Equipment not found"
// @Router      /equipment/{id}/breakdown [post]
func (h *EquipmentHandler) ReportBreakdown(c *gin.Context) {
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

	var req ReportBreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	breakdown, err := h.equipmentService.ReportBreakdown(id, identity.ID, req.Description, req.Severity, req.EstimatedRepairDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityEquipmentBreakdown, breakdown.ID, map[string]interface{}{
		"equipment_id": id,
		"severity":     breakdown.Severity,
	})

	c.JSON(http.StatusCreated, gin.H{"breakdown": breakdown})
}

// RecordMaintenance records completed maintenance and restores the equipment
// to operational status.
// @Summary     Record maintenance
// @Description Log a maintenance job; the equipment returns to service
// @Tags        equipment
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Equipment ID"
// @Param       request body RecordMaintenanceRequest true "Maintenance details"
// @Success     201 {object} map[string]interface{} "Recorded maintenance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Equipment not found"
// @Router      /equipment/{id}/maintenance [post]
func (h *EquipmentHandler) RecordMaintenance(c *gin.Context) {
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

	var req RecordMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	maintenance, err := h.equipmentService.RecordMaintenance(id, identity.ID, req.MaintenanceType, req.Description, req.Cost, req.NextMaintenanceDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityEquipmentMaintenance, maintenance.ID, map[string]interface{}{
		"equipment_id":     id,
		"maintenance_type": req.MaintenanceType,
	})

	c.JSON(http.StatusCreated, gin.H{"maintenance": maintenance})
}

// ListBreakdowns returns an equipment's breakdown history.
// @Summary     List breakdowns
// @Description Get a machine's breakdown history, newest first
// @Tags        equipment
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Equipment ID"
// @Success     200 {object} map[string]interface{} "Breakdown history"
// @Failure     400 {object} ErrorResponse "Invalid equipment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /equipment/{id}/breakdowns [get]
func (h *EquipmentHandler) ListBreakdowns(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdowns, err := h.equipmentService.ListBreakdowns(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdowns": breakdowns})
}

// ListMaintenance returns an equipment's maintenance history.
// @Summary     List maintenance
// @Description Get a machine's maintenance history, newest first
// @Tags        equipment
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Equipment ID"
// @Success     200 {object} map[string]interface{} "Maintenance history"
// @Failure     400 {object} ErrorResponse "Invalid equipment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /equipment/{id}/maintenance [get]
func (h *EquipmentHandler) ListMaintenance(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	records, err := h.equipmentService.ListMaintenance(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"maintenance": records})
}
