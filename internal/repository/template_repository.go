package repository

import (
	"github.com/clientdesk/assignment-api/internal/database"
	"github.com/clientdesk/assignment-api/internal/models"
	"gorm.io/gorm"
)

// GormTemplateRepository is a GORM implementation of TemplateRepository
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: db}
}

// Create creates a template together with its site assets
func (r *GormTemplateRepository) Create(template *models.Template) error {
	return r.db.Create(template).Error
}

// FindByID finds a template by ID with its site assets preloaded
func (r *GormTemplateRepository) FindByID(id uint64) (*models.Template, error) {
	var template models.Template
	if err := r.db.Preload("SiteAssets").First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// List retrieves templates with pagination
func (r *GormTemplateRepository) List(offset, limit int) ([]models.Template, int64, error) {
	var templates []models.Template

	var total int64
	if err := r.db.Model(&models.Template{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Preload("SiteAssets").
		Order("templates.created_at DESC").
		Scopes(database.Paginate(offset, limit)).
		Find(&templates).Error; err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormTemplateRepository) WithTx(tx *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: tx}
}
