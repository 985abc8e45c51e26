package repository

import (
	"github.com/clientdesk/assignment-api/internal/models"
	"gorm.io/gorm"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	// Create creates a new client
	Create(client *models.Client) error

	// FindByID finds a client by ID
	FindByID(id uint64) (*models.Client, error)

	// List retrieves clients with pagination
	List(offset, limit int) ([]models.Client, int64, error)

	// Update updates a client
	Update(client *models.Client) error

	// Delete soft deletes a client
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// TemplateRepository defines the interface for template data access
type TemplateRepository interface {
	// Create creates a template together with its site assets
	Create(template *models.Template) error

	// FindByID finds a template by ID with its site assets preloaded
	FindByID(id uint64) (*models.Template, error)

	// List retrieves templates with pagination
	List(offset, limit int) ([]models.Template, int64, error)

	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx *gorm.DB) TemplateRepository
}

// AssignmentRepository defines the interface for assignment data access
type AssignmentRepository interface {
	// Create creates a new assignment
	Create(assignment *models.Assignment) error

	// FindByID finds an assignment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Assignment, error)

	// FindDetailed finds an assignment fully rehydrated: template with
	// assets, team members with users, tasks newest first with assignee,
	// category and asset joined, and settings with their asset joined.
	FindDetailed(id uint64) (*models.Assignment, error)

	// List retrieves assignments, optionally filtered by client
	List(clientID *uint64, offset, limit int) ([]models.Assignment, int64, error)

	// UpdateTemplateID sets the assignment's template pointer
	UpdateTemplateID(id, templateID uint64) error

	// AddTeamMember adds a team member to an assignment
	AddTeamMember(member *models.AssignmentTeamMember) error

	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx *gorm.DB) AssignmentRepository
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByAssignment lists an assignment's tasks newest first,
	// optionally filtered by status
	ListByAssignment(assignmentID uint64, status *models.TaskStatus) ([]models.Task, error)

	// FindActiveByAsset lists an assignment's non-cancelled tasks bound to
	// the given template site asset
	FindActiveByAsset(assignmentID, assetID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx *gorm.DB) TaskRepository
}

// SettingRepository defines the interface for assignment site asset settings
type SettingRepository interface {
	// FindByAssignmentAndAsset finds the live setting for one
	// (assignment, asset) pair
	FindByAssignmentAndAsset(assignmentID, assetID uint64) (*models.AssignmentSiteAssetSetting, error)

	// ListByAssignment lists all live settings of an assignment
	ListByAssignment(assignmentID uint64) ([]models.AssignmentSiteAssetSetting, error)

	// Create creates a new setting row
	Create(setting *models.AssignmentSiteAssetSetting) error

	// Update updates a setting row
	Update(setting *models.AssignmentSiteAssetSetting) error

	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx *gorm.DB) SettingRepository
}

// CategoryRepository defines the interface for task category lookup rows
type CategoryRepository interface {
	// UpsertByName creates the category if absent and returns the row
	UpsertByName(name string) (*models.TaskCategory, error)

	// List lists all categories
	List() ([]models.TaskCategory, error)

	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx *gorm.DB) CategoryRepository
}

// ActivityLogRepository defines the interface for the append-only audit log
type ActivityLogRepository interface {
	// Create appends one activity record
	Create(entry *models.ActivityLog) error

	// ListByEntity lists activity for one entity, newest first
	ListByEntity(entityType string, entityID uint64, offset, limit int) ([]models.ActivityLog, int64, error)

	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx *gorm.DB) ActivityLogRepository
}
