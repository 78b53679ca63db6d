package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"operationaltracker/internal/models"
	"operationaltracker/internal/services"
)

// AuditHandler exposes the audit trail read path.
type AuditHandler struct {
	audit services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(audit services.AuditServicer) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListAuditLogs returns audit records matching the optional filters, newest
// first, capped at the service's result limit.
// @Summary     List audit logs
// @Description Get audit entries matching the filters, newest first, capped at 500 rows
// @Tags        audit
// @Produce     json
// @Security    BearerAuth
// @Param       entity_type query string false "Filter by entity type"
// @Param       entity_id   query int    false "Filter by entity ID"
// @Param       user_id     query int    false "Filter by acting user"
// @Param       start_date  query string false "Earliest date (YYYY-MM-DD)"
// @Param       end_date    query string false "Latest date (YYYY-MM-DD)"
// @Success     200 {object} map[string]interface{} "Audit entries"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Router      /audit [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	filter := services.AuditFilter{}

	if s := c.Query("entity_type"); s != "" {
		entity := models.AuditEntity(s)
		filter.EntityType = &entity
	}

	entityID, err := parseUintQuery(c, "entity_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.EntityID = entityID

	userID, err := parseUintQuery(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.UserID = userID

	if filter.StartDate, err = parseDateQuery(c, "start_date"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.EndDate, err = parseDateQuery(c, "end_date"); err != nil {
		respondWithError(c, err)
		return
	}

	logs, err := h.audit.List(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audit_logs": logs})
}
