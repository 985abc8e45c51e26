package repository

import (
	"errors"

	"github.com/clientdesk/assignment-api/internal/models"
	"gorm.io/gorm"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// UpsertByName creates the category if absent and returns the row. Existing
// rows are returned untouched.
func (r *GormCategoryRepository) UpsertByName(name string) (*models.TaskCategory, error) {
	var category models.TaskCategory
	err := r.db.Where("name = ?", name).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category = models.TaskCategory{Name: name}
	if err := r.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List lists all categories
func (r *GormCategoryRepository) List() ([]models.TaskCategory, error) {
	var categories []models.TaskCategory
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: tx}
}
