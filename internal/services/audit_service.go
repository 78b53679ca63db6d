package services

import (
	"encoding/json"
	"sync"

	"gorm.io/gorm"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/logger"
	"operationaltracker/internal/models"
)

// auditQueueSize bounds the number of in-flight audit entries. When the
// queue is full, entries are dropped with a warning rather than blocking
// the request path.
const auditQueueSize = 256

// auditListLimit caps the audit read path. Callers needing more must
// narrow their filters.
const auditListLimit = 500

// auditService records audit entries through an asynchronous writer
// goroutine so that a slow or failing audit write never delays or aborts
// the business operation that triggered it.
type auditService struct {
	db      *gorm.DB
	entries chan models.AuditLog
	done    chan struct{}
	closing sync.Once
}

// NewAuditService creates a new AuditServicer and starts its writer.
func NewAuditService(db *gorm.DB) AuditServicer {
	s := &auditService{
		db:      db,
		entries: make(chan models.AuditLog, auditQueueSize),
		done:    make(chan struct{}),
	}
	go s.writeLoop()
	return s
}

// Log queues an audit event. It never blocks and never reports failure to
// the caller: audit completeness is best-effort, business-operation success
// is authoritative.
func (s *auditService) Log(userID uint, action models.AuditAction, entityType models.AuditEntity, entityID uint, changes map[string]interface{}) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit changes",
				"error", err,
				"action", action,
				"entity_type", entityType,
			)
		} else {
			changesJSON = string(data)
		}
	}

	entry := models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changesJSON,
	}

	select {
	case s.entries <- entry:
	default:
		logger.Get().Warnw("audit queue full, dropping entry",
			"user_id", userID,
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
		)
	}
}

// writeLoop persists queued entries until the channel is closed.
func (s *auditService) writeLoop() {
	defer close(s.done)
	for entry := range s.entries {
		if err := s.db.Create(&entry).Error; err != nil {
			logger.Get().Errorw("failed to persist audit entry",
				"error", err,
				"user_id", entry.UserID,
				"action", entry.Action,
				"entity_type", entry.EntityType,
				"entity_id", entry.EntityID,
			)
		}
	}
}

// Close drains any queued entries and stops the writer. Safe to call more
// than once.
func (s *auditService) Close() {
	s.closing.Do(func() {
		close(s.entries)
	})
	<-s.done
}

// List returns audit records matching the filter, newest first, capped at
// 500 rows.
func (s *auditService) List(filter AuditFilter) ([]models.AuditLog, error) {
	query := s.db.Model(&models.AuditLog{}).Preload("User")

	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.StartDate != nil {
		query = query.Where("DATE(created_at) >= DATE(?)", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("DATE(created_at) <= DATE(?)", *filter.EndDate)
	}

	var records []models.AuditLog
	if err := query.Order("created_at DESC, id DESC").Limit(auditListLimit).Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return records, nil
}
