package repository

import (
	"github.com/clientdesk/assignment-api/internal/database"
	"github.com/clientdesk/assignment-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityLogRepository is a GORM implementation of ActivityLogRepository
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create appends one activity record
func (r *GormActivityLogRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// ListByEntity lists activity for one entity, newest first
func (r *GormActivityLogRepository) ListByEntity(entityType string, entityID uint64, offset, limit int) ([]models.ActivityLog, int64, error) {
	var entries []models.ActivityLog

	query := r.db.Model(&models.ActivityLog{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("activity_logs.created_at DESC, activity_logs.id DESC").
		Scopes(database.Paginate(offset, limit)).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormActivityLogRepository) WithTx(tx *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: tx}
}
