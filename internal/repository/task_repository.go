package repository

import (
	"github.com/clientdesk/assignment-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByAssignment lists an assignment's tasks newest first
func (r *GormTaskRepository) ListByAssignment(assignmentID uint64, status *models.TaskStatus) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Where("tasks.assignment_id = ?", assignmentID)
	if status != nil {
		query = query.Where("tasks.status = ?", *status)
	}

	err := query.Preload("Assignee").Preload("Category").Preload("SiteAsset").
		Order("tasks.created_at DESC, tasks.id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// FindActiveByAsset lists an assignment's non-cancelled tasks for one asset
func (r *GormTaskRepository) FindActiveByAsset(assignmentID, assetID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("tasks.assignment_id = ?", assignmentID).
		Where("tasks.template_site_asset_id = ?", assetID).
		Where("tasks.status <> ?", models.TaskStatusCancelled).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormTaskRepository) WithTx(tx *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: tx}
}
