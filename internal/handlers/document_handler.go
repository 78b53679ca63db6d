package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
	"operationaltracker/internal/services"
)

// DocumentHandler handles document metadata requests.
type DocumentHandler struct {
	documentService services.DocumentServicer
	audit           services.AuditServicer
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService services.DocumentServicer, audit services.AuditServicer) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, audit: audit}
}

// CreateDocumentRequest represents the document registration payload.
type CreateDocumentRequest struct {
	ProjectID    *uint  `json:"project_id"`
	DocumentType string `json:"document_type" binding:"required,max=100"`
	FileName     string `json:"file_name" binding:"required,max=255"`
	FilePath     string `json:"file_path" binding:"required,max=512"`
	FileSize     int64  `json:"file_size" binding:"omitempty,min=0"`
	Description  string `json:"description"`
}

// ListDocuments returns documents, optionally scoped to a project.
// @Summary     List documents
// @Description Get document records, optionally filtered by project or type
// @Tags        documents
// @Produce     json
// @Security    BearerAuth
// @Param       project_id    query int    false "Filter by project"
// @Param       document_type query string false "Filter by type"
// @Success     200 {object} map[string]interface{} "Documents"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
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

	result, err := h.documentService.ListDocuments(projectID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDocument returns one document's metadata.
// @Summary     Get document by ID
// @Description Get a single document record
// @Tags        documents
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Document ID"
// @Success     200 {object} map[string]interface{} "Document details"
// @Failure     400 {object} ErrorResponse "Invalid document ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	document, err := h.documentService.GetDocumentByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": document})
}

// CreateDocument registers an uploaded document.
// @Summary     Create document
// @Description Record a document's metadata; the file itself is stored elsewhere
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDocumentRequest true "Document metadata"
// @Success     201 {object} map[string]interface{} "Created document"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	document, err := h.documentService.CreateDocument(identity.ID, services.DocumentParams{
		ProjectID:    req.ProjectID,
		DocumentType: req.DocumentType,
		FileName:     req.FileName,
		FilePath:     req.FilePath,
		FileSize:     req.FileSize,
		Description:  req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityDocument, document.ID, map[string]interface{}{
		"file_name":     req.FileName,
		"document_type": req.DocumentType,
	})

	c.JSON(http.StatusCreated, gin.H{"document": document})
}

// DeleteDocument removes a document record. Only an admin or the original
// uploader may delete.
// @Summary     Delete document
// @Description Delete a document record; only the uploader or an admin may delete
// @Tags        documents
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Document ID"
// @Success     200 {object} map[string]interface{} "Deletion result"
// @Failure     400 {object} ErrorResponse "Invalid document ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the uploader"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
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

	if err := h.documentService.DeleteDocument(identity.ID, identity.Role, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionDelete, models.AuditEntityDocument, id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
