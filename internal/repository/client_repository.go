package repository

import (
	"github.com/clientdesk/assignment-api/internal/database"
	"github.com/clientdesk/assignment-api/internal/models"
	"gorm.io/gorm"
)

// GormClientRepository is a GORM implementation of ClientRepository
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

// Create creates a new client
func (r *GormClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// FindByID finds a client by ID
func (r *GormClientRepository) FindByID(id uint64) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// List retrieves clients with pagination
func (r *GormClientRepository) List(offset, limit int) ([]models.Client, int64, error) {
	var clients []models.Client

	var total int64
	if err := r.db.Model(&models.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Order("clients.created_at DESC").
		Scopes(database.Paginate(offset, limit)).
		Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

// Update updates a client
func (r *GormClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// Delete soft deletes a client
func (r *GormClientRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Client{}, id).Error
}
