package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clientdesk/assignment-api/internal/constants"
	"github.com/clientdesk/assignment-api/internal/models"
	"github.com/clientdesk/assignment-api/internal/repository"
	"gorm.io/gorm"
)

// AssignmentService handles assignment business logic: onboarding a client
// onto a template and reading assignments back. Template syncs live in
// TemplateSyncService.
type AssignmentService struct {
	db             *gorm.DB
	assignmentRepo repository.AssignmentRepository
	templateRepo   repository.TemplateRepository
	clientRepo     repository.ClientRepository
	taskRepo       repository.TaskRepository
	settingRepo    repository.SettingRepository
	categoryRepo   repository.CategoryRepository
	activityRepo   repository.ActivityLogRepository
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	db *gorm.DB,
	assignmentRepo repository.AssignmentRepository,
	templateRepo repository.TemplateRepository,
	clientRepo repository.ClientRepository,
	taskRepo repository.TaskRepository,
	settingRepo repository.SettingRepository,
	categoryRepo repository.CategoryRepository,
	activityRepo repository.ActivityLogRepository,
) *AssignmentService {
	return &AssignmentService{
		db:             db,
		assignmentRepo: assignmentRepo,
		templateRepo:   templateRepo,
		clientRepo:     clientRepo,
		taskRepo:       taskRepo,
		settingRepo:    settingRepo,
		categoryRepo:   categoryRepo,
		activityRepo:   activityRepo,
	}
}

// CreateAssignmentInput represents input for onboarding a client onto a template
type CreateAssignmentInput struct {
	ClientID   uint64
	TemplateID uint64
}

// CreateAssignment binds a client to a template and seeds one task and one
// setting per template asset, atomically.
func (s *AssignmentService) CreateAssignment(ctx context.Context, input CreateAssignmentInput) (*models.Assignment, error) {
	var result *models.Assignment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments := s.assignmentRepo.WithTx(tx)
		templates := s.templateRepo.WithTx(tx)
		tasks := s.taskRepo.WithTx(tx)
		settings := s.settingRepo.WithTx(tx)
		categories := s.categoryRepo.WithTx(tx)

		if err := tx.First(&models.Client{}, input.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return fmt.Errorf("failed to load client: %w", err)
		}

		template, err := templates.FindByID(input.TemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTemplateNotFound
			}
			return fmt.Errorf("failed to load template: %w", err)
		}

		assignment := &models.Assignment{
			ClientID:   input.ClientID,
			TemplateID: template.ID,
			Status:     models.AssignmentStatusActive,
		}
		if err := assignments.Create(assignment); err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		categoryIDs, err := resolveCategoryIDs(categories)
		if err != nil {
			return fmt.Errorf("failed to resolve task categories: %w", err)
		}

		dueDate := time.Now().AddDate(0, 0, constants.SyncDefaultDueDateOffsetDays)
		for _, asset := range template.SiteAssets {
			duration := constants.SyncDefaultDurationMinutes
			if asset.DefaultIdealDurationMinutes != nil {
				duration = *asset.DefaultIdealDurationMinutes
			}

			task := &models.Task{
				AssignmentID:         assignment.ID,
				TemplateSiteAssetID:  asset.ID,
				Name:                 asset.Name,
				Status:               models.TaskStatusPending,
				Priority:             models.TaskPriorityMedium,
				DueDate:              &dueDate,
				IdealDurationMinutes: duration,
				CategoryID:           categoryIDForAsset(asset, categoryIDs),
			}
			if err := tasks.Create(task); err != nil {
				return fmt.Errorf("failed to seed task for asset %d: %w", asset.ID, err)
			}

			setting := &models.AssignmentSiteAssetSetting{
				AssignmentID:         assignment.ID,
				TemplateSiteAssetID:  asset.ID,
				RequiredFrequency:    asset.DefaultPostingFrequency,
				Period:               models.PeriodMonthly,
				IdealDurationMinutes: duration,
			}
			if err := settings.Create(setting); err != nil {
				return fmt.Errorf("failed to seed setting for asset %d: %w", asset.ID, err)
			}
		}

		result, err = assignments.FindDetailed(assignment.ID)
		if err != nil {
			return fmt.Errorf("failed to reload assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetAssignment returns the fully rehydrated assignment
func (s *AssignmentService) GetAssignment(id uint64) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.FindDetailed(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	return assignment, nil
}

// ListAssignments returns assignments, optionally filtered by client
func (s *AssignmentService) ListAssignments(clientID *uint64, offset, limit int) ([]models.Assignment, int64, error) {
	assignments, total, err := s.assignmentRepo.List(clientID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, total, nil
}

// AddTeamMemberInput represents input for adding a team member
type AddTeamMemberInput struct {
	AssignmentID uint64
	UserID       uint64
	Role         models.TeamMemberRole
}

// AddTeamMember adds a user to an assignment's team
func (s *AssignmentService) AddTeamMember(input AddTeamMemberInput) (*models.AssignmentTeamMember, error) {
	if _, err := s.assignmentRepo.FindByID(input.AssignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.TeamRoleContributor
	}

	member := &models.AssignmentTeamMember{
		AssignmentID: input.AssignmentID,
		UserID:       input.UserID,
		Role:         role,
	}
	if err := s.assignmentRepo.AddTeamMember(member); err != nil {
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}

	return member, nil
}

// ListActivity returns the assignment's append-only activity log, newest first
func (s *AssignmentService) ListActivity(assignmentID uint64, offset, limit int) ([]models.ActivityLog, int64, error) {
	if _, err := s.assignmentRepo.FindByID(assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrAssignmentNotFound
		}
		return nil, 0, fmt.Errorf("failed to find assignment: %w", err)
	}

	entries, total, err := s.activityRepo.ListByEntity(models.ActivityEntityAssignment, assignmentID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, total, nil
}
