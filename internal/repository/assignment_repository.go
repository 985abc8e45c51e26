package repository

import (
	"github.com/clientdesk/assignment-api/internal/database"
	"github.com/clientdesk/assignment-api/internal/models"
	"gorm.io/gorm"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Create creates a new assignment
func (r *GormAssignmentRepository) Create(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

// FindByID finds an assignment by ID with optional preloading
func (r *GormAssignmentRepository) FindByID(id uint64, preload ...string) (*models.Assignment, error) {
	var assignment models.Assignment
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&assignment, id).Error; err != nil {
		return nil, err
	}

	return &assignment, nil
}

// FindDetailed finds an assignment fully rehydrated for returning to callers
func (r *GormAssignmentRepository) FindDetailed(id uint64) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.
		Preload("Client").
		Preload("Template.SiteAssets").
		Preload("TeamMembers.User").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at DESC, tasks.id DESC")
		}).
		Preload("Tasks.Assignee").
		Preload("Tasks.Category").
		Preload("Tasks.SiteAsset").
		Preload("Settings.SiteAsset").
		First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// List retrieves assignments, optionally filtered by client
func (r *GormAssignmentRepository) List(clientID *uint64, offset, limit int) ([]models.Assignment, int64, error) {
	var assignments []models.Assignment

	query := r.db.Model(&models.Assignment{})
	if clientID != nil {
		query = query.Where("assignments.client_id = ?", *clientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Client").Preload("Template").
		Order("assignments.created_at DESC").
		Scopes(database.Paginate(offset, limit)).
		Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

// UpdateTemplateID sets the assignment's template pointer
func (r *GormAssignmentRepository) UpdateTemplateID(id, templateID uint64) error {
	return r.db.Model(&models.Assignment{}).
		Where("id = ?", id).
		Update("template_id", templateID).Error
}

// AddTeamMember adds a team member to an assignment
func (r *GormAssignmentRepository) AddTeamMember(member *models.AssignmentTeamMember) error {
	return r.db.Create(member).Error
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormAssignmentRepository) WithTx(tx *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: tx}
}
