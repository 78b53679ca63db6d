package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
)

// documentService handles document metadata and the document ownership
// policy. File blobs live in external storage.
type documentService struct {
	db *gorm.DB
}

// NewDocumentService creates a new DocumentServicer.
func NewDocumentService(db *gorm.DB) DocumentServicer {
	return &documentService{db: db}
}

// CreateDocument records the metadata of an uploaded file.
func (s *documentService) CreateDocument(uploaderID uint, params DocumentParams) (*models.Document, error) {
	if params.FileName == "" || params.FilePath == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "file_name and file_path are required")
	}

	document := &models.Document{
		ProjectID:    params.ProjectID,
		DocumentType: params.DocumentType,
		FileName:     params.FileName,
		FilePath:     params.FilePath,
		FileSize:     params.FileSize,
		Description:  params.Description,
		UploadedBy:   uploaderID,
	}
	if err := s.db.Create(document).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return document, nil
}

// ListDocuments returns documents, optionally scoped to a project.
func (s *documentService) ListDocuments(projectID *uint, page pagination.PageRequest) (*pagination.PageResponse[models.Document], error) {
	query := s.db.Model(&models.Document{})
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var documents []models.Document
	if err := query.Preload("Project").
		Preload("Uploader").
		Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(documents, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetDocumentByID returns one document record.
func (s *documentService) GetDocumentByID(documentID uint) (*models.Document, error) {
	var document models.Document
	err := s.db.Preload("Project").
		Preload("Uploader").
		First(&document, documentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &document, nil
}

// DeleteDocument removes a document record. Only an admin or the original
// uploader may delete.
func (s *documentService) DeleteDocument(actorID uint, actorRole models.Role, documentID uint) error {
	document, err := s.GetDocumentByID(documentID)
	if err != nil {
		return err
	}

	if actorRole != models.RoleAdmin && document.UploadedBy != actorID {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(document).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
