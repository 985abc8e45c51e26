package repository

import (
	"github.com/clientdesk/assignment-api/internal/models"
	"gorm.io/gorm"
)

// GormSettingRepository is a GORM implementation of SettingRepository
type GormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &GormSettingRepository{db: db}
}

// FindByAssignmentAndAsset finds the live setting for one (assignment, asset) pair
func (r *GormSettingRepository) FindByAssignmentAndAsset(assignmentID, assetID uint64) (*models.AssignmentSiteAssetSetting, error) {
	var setting models.AssignmentSiteAssetSetting
	err := r.db.
		Where("assignment_id = ? AND template_site_asset_id = ?", assignmentID, assetID).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// ListByAssignment lists all live settings of an assignment
func (r *GormSettingRepository) ListByAssignment(assignmentID uint64) ([]models.AssignmentSiteAssetSetting, error) {
	var settings []models.AssignmentSiteAssetSetting
	if err := r.db.Where("assignment_id = ?", assignmentID).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// Create creates a new setting row
func (r *GormSettingRepository) Create(setting *models.AssignmentSiteAssetSetting) error {
	return r.db.Create(setting).Error
}

// Update updates a setting row
func (r *GormSettingRepository) Update(setting *models.AssignmentSiteAssetSetting) error {
	return r.db.Save(setting).Error
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormSettingRepository) WithTx(tx *gorm.DB) SettingRepository {
	return &GormSettingRepository{db: tx}
}
