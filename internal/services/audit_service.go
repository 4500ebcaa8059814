package services

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/wzsamuels/budget-project/internal/events"
	"github.com/wzsamuels/budget-project/internal/logger"
	"github.com/wzsamuels/budget-project/internal/models"
)

// auditService handles audit log recording.
type auditService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewAuditService creates a new AuditServicer. Entries are also handed to
// publisher; pass events.NopPublisher{} to only record them.
func NewAuditService(db *gorm.DB, publisher events.Publisher) AuditServicer {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &auditService{db: db, publisher: publisher}
}

// Log records an audit event. Errors are logged and never propagate.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
		return
	}

	err := s.publisher.Publish(context.Background(), events.Event{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      changes,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		logger.Get().Warnw("failed to publish audit event",
			"error", err,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}
