package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/clientdesk/assignment-api/internal/constants"
	"github.com/clientdesk/assignment-api/internal/models"
	"github.com/clientdesk/assignment-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrTemplateNotFound   = errors.New("template not found")
)

// Task note annotations written by the sync engine. Archival annotations are
// appended to the existing notes, never overwrite them.
const (
	noteArchivedPrefix    = "[AUTO-ARCHIVED] Replaced by new asset: "
	noteReplacementPrefix = "[REPLACEMENT] This replaces old asset ID: "
	noteNewAsset          = "[NEW ASSET] Added to existing assignment"
)

// TemplateSyncService reconciles an assignment's tasks and settings against a
// target template. One call runs one transaction; either every mutation
// commits, including the assignment's template pointer flip and exactly one
// audit record, or none of them do.
type TemplateSyncService struct {
	db             *gorm.DB
	assignmentRepo repository.AssignmentRepository
	templateRepo   repository.TemplateRepository
	taskRepo       repository.TaskRepository
	settingRepo    repository.SettingRepository
	categoryRepo   repository.CategoryRepository
	activityRepo   repository.ActivityLogRepository
}

// NewTemplateSyncService creates a new TemplateSyncService
func NewTemplateSyncService(
	db *gorm.DB,
	assignmentRepo repository.AssignmentRepository,
	templateRepo repository.TemplateRepository,
	taskRepo repository.TaskRepository,
	settingRepo repository.SettingRepository,
	categoryRepo repository.CategoryRepository,
	activityRepo repository.ActivityLogRepository,
) *TemplateSyncService {
	return &TemplateSyncService{
		db:             db,
		assignmentRepo: assignmentRepo,
		templateRepo:   templateRepo,
		taskRepo:       taskRepo,
		settingRepo:    settingRepo,
		categoryRepo:   categoryRepo,
		activityRepo:   activityRepo,
	}
}

// SyncTemplateInput represents one sync invocation.
type SyncTemplateInput struct {
	AssignmentID  uint64
	NewTemplateID uint64

	// Replacements declare that one template asset supersedes another.
	Replacements []AssetMapping

	// CommonAssetMappings declare assets that are the same entity under a
	// new id; only their settings are carried over.
	CommonAssetMappings []AssetMapping

	// AutoArchiveOld archives superseded tasks on the replacement path.
	AutoArchiveOld bool

	// ActorID attributes the audit record, when known.
	ActorID *uint64
}

// SyncTemplate brings the assignment in line with the target template and
// returns the rehydrated assignment.
func (s *TemplateSyncService) SyncTemplate(ctx context.Context, input SyncTemplateInput) (*models.Assignment, error) {
	var result *models.Assignment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments := s.assignmentRepo.WithTx(tx)
		templates := s.templateRepo.WithTx(tx)
		tasks := s.taskRepo.WithTx(tx)
		settings := s.settingRepo.WithTx(tx)
		categories := s.categoryRepo.WithTx(tx)
		activity := s.activityRepo.WithTx(tx)

		// Loading. The settings loaded here are the fixed read-view for the
		// whole invocation; the common-mapping path must see the state as of
		// the start of the transaction, not whatever a later re-query would.
		assignment, err := assignments.FindByID(input.AssignmentID, "Client", "Settings")
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssignmentNotFound
			}
			return fmt.Errorf("failed to load assignment: %w", err)
		}

		template, err := templates.FindByID(input.NewTemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTemplateNotFound
			}
			return fmt.Errorf("failed to load template: %w", err)
		}

		oldTemplateID := assignment.TemplateID

		settingsSnapshot := make(map[uint64]models.AssignmentSiteAssetSetting, len(assignment.Settings))
		existingAssetIDs := make(map[uint64]struct{}, len(assignment.Settings))
		for _, setting := range assignment.Settings {
			settingsSnapshot[setting.TemplateSiteAssetID] = setting
			existingAssetIDs[setting.TemplateSiteAssetID] = struct{}{}
		}

		// Resolving categories. Must complete before any task write so that
		// every created task has its category id resolved.
		categoryIDs, err := resolveCategoryIDs(categories)
		if err != nil {
			return fmt.Errorf("failed to resolve task categories: %w", err)
		}

		// Classifying
		plan := classifyAssets(existingAssetIDs, template.SiteAssets, input.Replacements)
		for _, skipped := range plan.SkippedReplacements {
			log.Printf("WARN: sync assignment %d: replacement target asset %d not in template %d, skipping",
				input.AssignmentID, skipped.NewAssetID, input.NewTemplateID)
		}

		ledger := &syncLedger{}
		dueDate := time.Now().AddDate(0, 0, constants.SyncDefaultDueDateOffsetDays)

		// Mutating tasks. Replacements strictly before new additions.
		for _, replacement := range plan.Replacements {
			if input.AutoArchiveOld {
				active, err := tasks.FindActiveByAsset(assignment.ID, replacement.OldAssetID)
				if err != nil {
					return fmt.Errorf("failed to load tasks for asset %d: %w", replacement.OldAssetID, err)
				}
				for i := range active {
					task := &active[i]
					task.Status = models.TaskStatusCancelled
					task.Notes = task.Notes + "\n\n" + noteArchivedPrefix + replacement.NewAsset.Name
					if err := tasks.Update(task); err != nil {
						return fmt.Errorf("failed to archive task %d: %w", task.ID, err)
					}
					ledger.TasksArchived = append(ledger.TasksArchived, ArchivedTaskEntry{
						TaskID:     task.ID,
						Name:       task.Name,
						OldAssetID: replacement.OldAssetID,
					})
				}
			}

			note := fmt.Sprintf("%s%d", noteReplacementPrefix, replacement.OldAssetID)
			if err := s.createSyncTask(tasks, assignment.ID, replacement.NewAsset, categoryIDs, dueDate, note, SyncKindReplacement, ledger); err != nil {
				return err
			}
		}

		for _, asset := range plan.NewAssets {
			if err := s.createSyncTask(tasks, assignment.ID, asset, categoryIDs, dueDate, noteNewAsset, SyncKindNew, ledger); err != nil {
				return err
			}
		}

		// Reconciling settings for every asset touched by a replacement or
		// addition, in the same order the tasks were created.
		for _, replacement := range plan.Replacements {
			if err := s.upsertSetting(settings, assignment.ID, replacement.NewAsset, SyncKindReplacement, ledger); err != nil {
				return err
			}
		}
		for _, asset := range plan.NewAssets {
			if err := s.upsertSetting(settings, assignment.ID, asset, SyncKindNew, ledger); err != nil {
				return err
			}
		}

		// Migrating settings for common assets, from the pre-transaction
		// snapshot. A mapping with no prior setting is skipped per-pair.
		for _, mapping := range input.CommonAssetMappings {
			old, ok := settingsSnapshot[mapping.OldAssetID]
			if !ok {
				continue
			}
			migrated := models.AssignmentSiteAssetSetting{
				AssignmentID:         assignment.ID,
				TemplateSiteAssetID:  mapping.NewAssetID,
				RequiredFrequency:    old.RequiredFrequency,
				Period:               old.Period,
				IdealDurationMinutes: old.IdealDurationMinutes,
			}
			if err := settings.Create(&migrated); err != nil {
				return fmt.Errorf("failed to migrate setting for asset %d: %w", mapping.OldAssetID, err)
			}
			ledger.SettingsMigrated = append(ledger.SettingsMigrated, MigratedSettingEntry{
				SettingID:  migrated.ID,
				OldAssetID: mapping.OldAssetID,
				NewAssetID: mapping.NewAssetID,
			})
		}

		// Updating the pointer, strictly after every dependent row exists.
		if err := assignments.UpdateTemplateID(assignment.ID, template.ID); err != nil {
			return fmt.Errorf("failed to update assignment template: %w", err)
		}

		// Recording audit: exactly one row per invocation.
		details := SyncDetails{
			OldTemplateID:           oldTemplateID,
			NewTemplateID:           template.ID,
			ClientID:                assignment.ClientID,
			ClientName:              assignment.Client.Name,
			ReplacementCount:        len(input.Replacements),
			CommonAssetMappingCount: len(input.CommonAssetMappings),
			TasksCreatedCount:       len(ledger.TasksCreated),
			TasksArchivedCount:      len(ledger.TasksArchived),
			SettingsCreatedCount:    len(ledger.SettingsCreated),
			SettingsMigratedCount:   len(ledger.SettingsMigrated),
			TasksCreated:            ledger.TasksCreated,
			TasksArchived:           ledger.TasksArchived,
			SettingsCreated:         ledger.SettingsCreated,
			SettingsMigrated:        ledger.SettingsMigrated,
		}
		payload, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to serialize sync details: %w", err)
		}
		entry := &models.ActivityLog{
			EntityType: models.ActivityEntityAssignment,
			EntityID:   assignment.ID,
			Action:     models.ActivityActionSync,
			UserID:     input.ActorID,
			Details:    payload,
		}
		if err := activity.Create(entry); err != nil {
			return fmt.Errorf("failed to record sync activity: %w", err)
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

// createSyncTask creates exactly one task for a target asset with the sync
// defaults and ledgers it.
func (s *TemplateSyncService) createSyncTask(
	tasks repository.TaskRepository,
	assignmentID uint64,
	asset models.TemplateSiteAsset,
	categoryIDs map[string]uint64,
	dueDate time.Time,
	note string,
	kind string,
	ledger *syncLedger,
) error {
	duration := constants.SyncDefaultDurationMinutes
	if asset.DefaultIdealDurationMinutes != nil {
		duration = *asset.DefaultIdealDurationMinutes
	}

	task := &models.Task{
		AssignmentID:         assignmentID,
		TemplateSiteAssetID:  asset.ID,
		Name:                 asset.Name,
		Status:               models.TaskStatusPending,
		Priority:             models.TaskPriorityMedium,
		DueDate:              &dueDate,
		IdealDurationMinutes: duration,
		Notes:                note,
		CategoryID:           categoryIDForAsset(asset, categoryIDs),
	}
	if err := tasks.Create(task); err != nil {
		return fmt.Errorf("failed to create task for asset %d: %w", asset.ID, err)
	}

	ledger.TasksCreated = append(ledger.TasksCreated, CreatedTaskEntry{
		TaskID:    task.ID,
		Name:      task.Name,
		AssetID:   asset.ID,
		AssetName: asset.Name,
		Kind:      kind,
	})
	return nil
}

// upsertSetting reconciles the setting row for one touched asset: refresh the
// frequency and duration when a row exists (period untouched), create one with
// the defaults otherwise.
func (s *TemplateSyncService) upsertSetting(
	settings repository.SettingRepository,
	assignmentID uint64,
	asset models.TemplateSiteAsset,
	kind string,
	ledger *syncLedger,
) error {
	duration := constants.SyncDefaultDurationMinutes
	if asset.DefaultIdealDurationMinutes != nil {
		duration = *asset.DefaultIdealDurationMinutes
	}

	existing, err := settings.FindByAssignmentAndAsset(assignmentID, asset.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up setting for asset %d: %w", asset.ID, err)
	}

	if existing != nil {
		existing.RequiredFrequency = asset.DefaultPostingFrequency
		existing.IdealDurationMinutes = duration
		if err := settings.Update(existing); err != nil {
			return fmt.Errorf("failed to update setting for asset %d: %w", asset.ID, err)
		}
		ledger.SettingsCreated = append(ledger.SettingsCreated, CreatedSettingEntry{
			SettingID: existing.ID,
			AssetID:   asset.ID,
			AssetName: asset.Name,
			Kind:      kind,
			Updated:   true,
		})
		return nil
	}

	setting := &models.AssignmentSiteAssetSetting{
		AssignmentID:         assignmentID,
		TemplateSiteAssetID:  asset.ID,
		RequiredFrequency:    asset.DefaultPostingFrequency,
		Period:               models.PeriodMonthly,
		IdealDurationMinutes: duration,
	}
	if err := settings.Create(setting); err != nil {
		return fmt.Errorf("failed to create setting for asset %d: %w", asset.ID, err)
	}
	ledger.SettingsCreated = append(ledger.SettingsCreated, CreatedSettingEntry{
		SettingID: setting.ID,
		AssetID:   asset.ID,
		AssetName: asset.Name,
		Kind:      kind,
		Updated:   false,
	})
	return nil
}

// resolveCategoryIDs upserts every category from the fixed asset type table
// and returns a name to id lookup.
func resolveCategoryIDs(categories repository.CategoryRepository) (map[string]uint64, error) {
	ids := make(map[string]uint64)
	for _, name := range constants.CategoryNames() {
		category, err := categories.UpsertByName(name)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert category %q: %w", name, err)
		}
		ids[category.Name] = category.ID
	}
	return ids, nil
}

// categoryIDForAsset resolves a task's category from its asset type. Types
// without a mapping yield a null category, never a guessed one.
func categoryIDForAsset(asset models.TemplateSiteAsset, categoryIDs map[string]uint64) *uint64 {
	name, ok := constants.AssetTypeCategories[asset.Type]
	if !ok {
		return nil
	}
	id, ok := categoryIDs[name]
	if !ok {
		return nil
	}
	return &id
}
