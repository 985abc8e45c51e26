package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/clientdesk/assignment-api/internal/models"
	"github.com/clientdesk/assignment-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TemplateSyncServiceTestSuite defines the test suite for TemplateSyncService
type TemplateSyncServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TemplateSyncService
}

// SetupTest runs before each test
func (suite *TemplateSyncServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Template{},
		&models.TemplateSiteAsset{},
		&models.Assignment{},
		&models.AssignmentTeamMember{},
		&models.TaskCategory{},
		&models.Task{},
		&models.AssignmentSiteAssetSetting{},
		&models.ActivityLog{},
	)
	suite.Require().NoError(err)

	suite.service = NewTemplateSyncService(
		suite.db,
		repository.NewAssignmentRepository(suite.db),
		repository.NewTemplateRepository(suite.db),
		repository.NewTaskRepository(suite.db),
		repository.NewSettingRepository(suite.db),
		repository.NewCategoryRepository(suite.db),
		repository.NewActivityLogRepository(suite.db),
	)
}

// TearDownTest runs after each test
func (suite *TemplateSyncServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *TemplateSyncServiceTestSuite) createTestClient(name string) *models.Client {
	client := &models.Client{
		Name:       name,
		ClientCode: name + "_CODE",
		Status:     models.ClientStatusActive,
	}
	suite.Require().NoError(suite.db.Create(client).Error)
	return client
}

func (suite *TemplateSyncServiceTestSuite) createTestTemplate(name string, assetNames ...string) *models.Template {
	template := &models.Template{Name: name}
	for _, assetName := range assetNames {
		template.SiteAssets = append(template.SiteAssets, models.TemplateSiteAsset{
			Type:                    models.AssetTypeGBPPost,
			Name:                    assetName,
			DefaultPostingFrequency: 2,
		})
	}
	suite.Require().NoError(suite.db.Create(template).Error)
	return template
}

func (suite *TemplateSyncServiceTestSuite) createTestAssignment(clientID, templateID uint64) *models.Assignment {
	assignment := &models.Assignment{
		ClientID:   clientID,
		TemplateID: templateID,
		Status:     models.AssignmentStatusActive,
	}
	suite.Require().NoError(suite.db.Create(assignment).Error)
	return assignment
}

func (suite *TemplateSyncServiceTestSuite) createTestSetting(assignmentID, assetID uint64, frequency int, period models.SettingPeriod, duration int) *models.AssignmentSiteAssetSetting {
	setting := &models.AssignmentSiteAssetSetting{
		AssignmentID:         assignmentID,
		TemplateSiteAssetID:  assetID,
		RequiredFrequency:    frequency,
		Period:               period,
		IdealDurationMinutes: duration,
	}
	suite.Require().NoError(suite.db.Create(setting).Error)
	return setting
}

func (suite *TemplateSyncServiceTestSuite) createTestTask(assignmentID, assetID uint64, name, notes string) *models.Task {
	task := &models.Task{
		AssignmentID:        assignmentID,
		TemplateSiteAssetID: assetID,
		Name:                name,
		Status:              models.TaskStatusPending,
		Priority:            models.TaskPriorityMedium,
		Notes:               notes,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func (suite *TemplateSyncServiceTestSuite) countRows(model interface{}, query string, args ...interface{}) int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}

// TestSyncTemplate_EndToEnd covers the full replacement plus addition flow
func (suite *TemplateSyncServiceTestSuite) TestSyncTemplate_EndToEnd() {
	client := suite.createTestClient("Acme Dental")
	templateA := suite.createTestTemplate("Starter", "GBP Monthly", "Blog Monthly")
	templateB := suite.createTestTemplate("Growth", "GBP Weekly", "Blog Weekly", "Social Weekly")

	assetA1 := templateA.SiteAssets[0]
	assetA2 := templateA.SiteAssets[1]
	assetB5 := templateB.SiteAssets[0]
	assetB6 := templateB.SiteAssets[1]
	assetB7 := templateB.SiteAssets[2]

	assignment := suite.createTestAssignment(client.ID, templateA.ID)
	suite.createTestSetting(assignment.ID, assetA1.ID, 1, models.PeriodMonthly, 30)
	suite.createTestSetting(assignment.ID, assetA2.ID, 1, models.PeriodMonthly, 30)
	oldTask := suite.createTestTask(assignment.ID, assetA1.ID, "GBP Monthly", "client prefers Tuesday posts")

	result, err := suite.service.SyncTemplate(context.Background(), SyncTemplateInput{
		AssignmentID:   assignment.ID,
		NewTemplateID:  templateB.ID,
		Replacements:   []AssetMapping{{OldAssetID: assetA1.ID, NewAssetID: assetB5.ID}},
		AutoArchiveOld: true,
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(result)

	// The pointer flipped and the result is rehydrated against template B.
	assert.Equal(suite.T(), templateB.ID, result.TemplateID)
	assert.Equal(suite.T(), templateB.ID, result.Template.ID)
	assert.Len(suite.T(), result.Template.SiteAssets, 3)

	// The superseded task was archived, not deleted, and its notes survived.
	var archived models.Task
	suite.Require().NoError(suite.db.First(&archived, oldTask.ID).Error)
	assert.Equal(suite.T(), models.TaskStatusCancelled, archived.Status)
	assert.Contains(suite.T(), archived.Notes, "client prefers Tuesday posts")
	assert.Contains(suite.T(), archived.Notes, "[AUTO-ARCHIVED] Replaced by new asset: "+assetB5.Name)
	assert.True(suite.T(), len(archived.Notes) > len(oldTask.Notes))

	// One replacement task and two addition tasks.
	assert.Equal(suite.T(), int64(1), suite.countRows(&models.Task{},
		"assignment_id = ? AND template_site_asset_id = ?", assignment.ID, assetB5.ID))
	assert.Equal(suite.T(), int64(1), suite.countRows(&models.Task{},
		"assignment_id = ? AND template_site_asset_id = ?", assignment.ID, assetB6.ID))
	assert.Equal(suite.T(), int64(1), suite.countRows(&models.Task{},
		"assignment_id = ? AND template_site_asset_id = ?", assignment.ID, assetB7.ID))

	var replacementTask models.Task
	suite.Require().NoError(suite.db.
		Where("assignment_id = ? AND template_site_asset_id = ?", assignment.ID, assetB5.ID).
		First(&replacementTask).Error)
	assert.Equal(suite.T(), models.TaskStatusPending, replacementTask.Status)
	assert.Equal(suite.T(), models.TaskPriorityMedium, replacementTask.Priority)
	assert.NotNil(suite.T(), replacementTask.DueDate)
	assert.NotNil(suite.T(), replacementTask.CategoryID)
	assert.Contains(suite.T(), replacementTask.Notes, "[REPLACEMENT] This replaces old asset ID:")

	var newTask models.Task
	suite.Require().NoError(suite.db.
		Where("assignment_id = ? AND template_site_asset_id = ?", assignment.ID, assetB6.ID).
		First(&newTask).Error)
	assert.Equal(suite.T(), "[NEW ASSET] Added to existing assignment", newTask.Notes)

	// Settings: the two original rows plus one per touched target asset.
	assert.Equal(suite.T(), int64(5), suite.countRows(&models.AssignmentSiteAssetSetting{},
		"assignment_id = ?", assignment.ID))
	for _, assetID := range []uint64{assetB5.ID, assetB6.ID, assetB7.ID} {
		var setting models.AssignmentSiteAssetSetting
		suite.Require().NoError(suite.db.
			Where("assignment_id = ? AND template_site_asset_id = ?", assignment.ID, assetID).
			First(&setting).Error)
		assert.Equal(suite.T(), models.PeriodMonthly, setting.Period)
		assert.Equal(suite.T(), 2, setting.RequiredFrequency)
	}

	// Exactly one audit row with the full ledger.
	var logs []models.ActivityLog
	suite.Require().NoError(suite.db.
		Where("entity_type = ? AND entity_id = ?", models.ActivityEntityAssignment, assignment.ID).
		Find(&logs).Error)
	suite.Require().Len(logs, 1)
	assert.Equal(suite.T(), models.ActivityActionSync, logs[0].Action)

	var details SyncDetails
	suite.Require().NoError(json.Unmarshal(logs[0].Details, &details))
	assert.Equal(suite.T(), templateA.ID, details.OldTemplateID)
	assert.Equal(suite.T(), templateB.ID, details.NewTemplateID)
	assert.Equal(suite.T(), client.ID, details.ClientID)
	assert.Equal(suite.T(), "Acme Dental", details.ClientName)
	assert.Len(suite.T(), details.TasksCreated, 3)
	assert.GreaterOrEqual(suite.T(), len(details.TasksArchived), 1)
	assert.Len(suite.T(), details.SettingsCreated, 3)
	assert.Len(suite.T(), details.SettingsMigrated, 0)
	assert.Equal(suite.T(), 1, details.ReplacementCount)

	kinds := map[string]int{}
	for _, entry := range details.TasksCreated {
		kinds[entry.Kind]++
	}
	assert.Equal(suite.T(), 1, kinds[SyncKindReplacement])
	assert.Equal(suite.T(), 2, kinds[SyncKindNew])
}

// TestSyncTemplate_AssignmentNotFound verifies the fail-fast path
func (suite *TemplateSyncServiceTestSuite) TestSyncTemplate_AssignmentNotFound() {
	template := suite.createTestTemplate("Starter", "GBP Monthly")

	_, err := suite.service.SyncTemplate(context.Background(), SyncTemplateInput{
		AssignmentID:   12345,
		NewTemplateID:  template.ID,
		AutoArchiveOld: true,
	})

	assert.ErrorIs(suite.T(), err, ErrAssignmentNotFound)
}

// TestSyncTemplate_TemplateNotFoundLeavesNoTrace verifies atomicity when the
// target template does not exist
func (suite *TemplateSyncServiceTestSuite) TestSyncTemplate_TemplateNotFoundLeavesNoTrace() {
	client := suite.createTestClient("Acme Dental")
	templateA := suite.createTestTemplate("Starter", "GBP Monthly")
	assignment := suite.createTestAssignment(client.ID, templateA.ID)
	suite.createTestSetting(assignment.ID, templateA.SiteAssets[0].ID, 1, models.PeriodMonthly, 30)
	suite.createTestTask(assignment.ID, templateA.SiteAssets[0].ID, "GBP Monthly", "")

	_, err := suite.service.SyncTemplate(context.Background(), SyncTemplateInput{
		AssignmentID:   assignment.ID,
		NewTemplateID:  99999,
		AutoArchiveOld: true,
	})
	assert.ErrorIs(suite.T(), err, ErrTemplateNotFound)

	var reloaded models.Assignment
	suite.Require().NoError(suite.db.First(&reloaded, assignment.ID).Error)
	assert.Equal(suite.T(), templateA.ID, reloaded.TemplateID)
	assert.Equal(suite.T(), int64(1), suite.countRows(&models.Task{}, "assignment_id = ?", assignment.ID))
	assert.Equal(suite.T(), int64(1), suite.countRows(&models.AssignmentSiteAssetSetting{}, "assignment_id = ?", assignment.ID))
	assert.Equal(suite.T(), int64(0), suite.countRows(&models.ActivityLog{}, "entity_id = ?", assignment.ID))
}

// TestSyncTemplate_NoDuplicateForReplacementTarget: an asset that is both
// unknown to the assignment and the target of a replacement is handled once
func (suite *TemplateSyncServiceTestSuite) TestSyncTemplate_NoDuplicateForReplacementTarget() {
	client := suite.createTestClient("Acme Dental")
	templateA := suite.createTestTemplate("Starter", "GBP Monthly")
	templateB := suite.createTestTemplate("Growth", "GBP Weekly")

	assetA1 := templateA.SiteAssets[0]
	assetB1 := templateB.SiteAssets[0]

	assignment := suite.createTestAssignment(client.ID, templateA.ID)
	suite.createTestSetting(assignment.ID, assetA1.ID, 1, models.PeriodMonthly, 30)

	_, err := suite.service.SyncTemplate(context.Background(), SyncTemplateInput{
		AssignmentID:   assignment.ID,
		NewTemplateID:  templateB.ID,
		Replacements:   []AssetMapping{{OldAssetID: assetA1.ID, NewAssetID: assetB1.ID}},
		AutoArchiveOld: true,
	})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), int64(1), suite.countRows(&models.Task{},
		"assignment_id = ? AND template_site_asset_id = ?", assignment.ID, assetB1.ID))
	assert.Equal(suite.T(), int64(1), suite.countRows(&models.AssignmentSiteAssetSetting{},
		"assignment_id = ? AND template_site_asset_id = ?", assignment.ID, assetB1.ID))
}

// TestSyncTemplate_CommonAssetMigration copies the old setting verbatim onto
// the new asset id and leaves the original untouched
func (suite *TemplateSyncServiceTestSuite) TestSyncTemplate_CommonAssetMigration() {
	client := suite.createTestClient("Acme Dental")
	templateA := suite.createTestTemplate("Starter", "GBP Monthly")
	templateB := suite.createTestTemplate("Growth", "GBP Weekly")

	assetA1 := templateA.SiteAssets[0]
	assignment := suite.createTestAssignment(client.ID, templateA.ID)
	original := suite.createTestSetting(assignment.ID, assetA1.ID, 5, models.PeriodWeekly, 45)

	const migratedAssetID = uint64(9001)

	_, err := suite.service.SyncTemplate(context.Background(), SyncTemplateInput{
		AssignmentID:  assignment.ID,
		NewTemplateID: templateB.ID,
		CommonAssetMappings: []AssetMapping{
			{OldAssetID: assetA1.ID, NewAssetID: migratedAssetID},
			{OldAssetID: 777, NewAssetID: 778}, // no prior setting, skipped
		},
		AutoArchiveOld: true,
	})
	suite.Require().NoError(err)

	var migrated models.AssignmentSiteAssetSetting
	suite.Require().NoError(suite.db.
		Where("assignment_id = ? AND template_site_asset_id = ?", assignment.ID, migratedAssetID).
		First(&migrated).Error)
	assert.Equal(suite.T(), 5, migrated.RequiredFrequency)
	assert.Equal(suite.T(), models.PeriodWeekly, migrated.Period)
	assert.Equal(suite.T(), 45, migrated.IdealDurationMinutes)

	var untouched models.AssignmentSiteAssetSetting
	suite.Require().NoError(suite.db.First(&untouched, original.ID).Error)
	assert.Equal(suite.T(), 5, untouched.RequiredFrequency)
	assert.Equal(suite.T(), models.PeriodWeekly, untouched.Period)
	assert.Equal(suite.T(), 45, untouched.IdealDurationMinutes)

	assert.Equal(suite.T(), int64(0), suite.countRows(&models.AssignmentSiteAssetSetting{},
		"assignment_id = ? AND template_site_asset_id = ?", assignment.ID, uint64(778)))
}

// TestSyncTemplate_AutoArchiveDisabled leaves superseded tasks active
func (suite *TemplateSyncServiceTestSuite) TestSyncTemplate_AutoArchiveDisabled() {
	client := suite.createTestClient("Acme Dental")
	templateA := suite.createTestTemplate("Starter", "GBP Monthly")
	templateB := suite.createTestTemplate("Growth", "GBP Weekly")

	assetA1 := templateA.SiteAssets[0]
	assetB1 := templateB.SiteAssets[0]

	assignment := suite.createTestAssignment(client.ID, templateA.ID)
	suite.createTestSetting(assignment.ID, assetA1.ID, 1, models.PeriodMonthly, 30)
	oldTask := suite.createTestTask(assignment.ID, assetA1.ID, "GBP Monthly", "keep me")

	_, err := suite.service.SyncTemplate(context.Background(), SyncTemplateInput{
		AssignmentID:   assignment.ID,
		NewTemplateID:  templateB.ID,
		Replacements:   []AssetMapping{{OldAssetID: assetA1.ID, NewAssetID: assetB1.ID}},
		AutoArchiveOld: false,
	})
	suite.Require().NoError(err)

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, oldTask.ID).Error)
	assert.Equal(suite.T(), models.TaskStatusPending, reloaded.Status)
	assert.Equal(suite.T(), "keep me", reloaded.Notes)

	// The replacement task is still created.
	assert.Equal(suite.T(), int64(1), suite.countRows(&models.Task{},
		"assignment_id = ? AND template_site_asset_id = ?", assignment.ID, assetB1.ID))
}

// TestSyncTemplate_UnresolvableReplacementIsSoftSkipped: the sync proceeds
// when a declared replacement target is not part of the target template
func (suite *TemplateSyncServiceTestSuite) TestSyncTemplate_UnresolvableReplacementIsSoftSkipped() {
	client := suite.createTestClient("Acme Dental")
	templateA := suite.createTestTemplate("Starter", "GBP Monthly")
	templateB := suite.createTestTemplate("Growth", "GBP Weekly")

	assetA1 := templateA.SiteAssets[0]
	assignment := suite.createTestAssignment(client.ID, templateA.ID)
	suite.createTestSetting(assignment.ID, assetA1.ID, 1, models.PeriodMonthly, 30)
	oldTask := suite.createTestTask(assignment.ID, assetA1.ID, "GBP Monthly", "")

	result, err := suite.service.SyncTemplate(context.Background(), SyncTemplateInput{
		AssignmentID:   assignment.ID,
		NewTemplateID:  templateB.ID,
		Replacements:   []AssetMapping{{OldAssetID: assetA1.ID, NewAssetID: 55555}},
		AutoArchiveOld: true,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), templateB.ID, result.TemplateID)

	// The skipped pair archived nothing and created nothing for its target.
	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, oldTask.ID).Error)
	assert.Equal(suite.T(), models.TaskStatusPending, reloaded.Status)
	assert.Equal(suite.T(), int64(0), suite.countRows(&models.Task{},
		"assignment_id = ? AND template_site_asset_id = ?", assignment.ID, uint64(55555)))

	// Template B's own asset still came in through the addition path.
	assert.Equal(suite.T(), int64(1), suite.countRows(&models.Task{},
		"assignment_id = ? AND template_site_asset_id = ?", assignment.ID, templateB.SiteAssets[0].ID))
}

// failingActivityLogRepo simulates an audit write fault at the end of the
// pipeline, after tasks, settings and the pointer update already ran.
type failingActivityLogRepo struct {
	repository.ActivityLogRepository
}

func (r *failingActivityLogRepo) Create(entry *models.ActivityLog) error {
	return errors.New("simulated audit write failure")
}

func (r *failingActivityLogRepo) WithTx(tx *gorm.DB) repository.ActivityLogRepository {
	return r
}

// TestSyncTemplate_RollsBackWhenAuditFails: a fault after the pointer update
// rolls back the entire transaction, so the pointer keeps its original value
func (suite *TemplateSyncServiceTestSuite) TestSyncTemplate_RollsBackWhenAuditFails() {
	client := suite.createTestClient("Acme Dental")
	templateA := suite.createTestTemplate("Starter", "GBP Monthly")
	templateB := suite.createTestTemplate("Growth", "GBP Weekly")

	assetA1 := templateA.SiteAssets[0]
	assignment := suite.createTestAssignment(client.ID, templateA.ID)
	suite.createTestSetting(assignment.ID, assetA1.ID, 1, models.PeriodMonthly, 30)
	suite.createTestTask(assignment.ID, assetA1.ID, "GBP Monthly", "")

	service := NewTemplateSyncService(
		suite.db,
		repository.NewAssignmentRepository(suite.db),
		repository.NewTemplateRepository(suite.db),
		repository.NewTaskRepository(suite.db),
		repository.NewSettingRepository(suite.db),
		repository.NewCategoryRepository(suite.db),
		&failingActivityLogRepo{},
	)

	_, err := service.SyncTemplate(context.Background(), SyncTemplateInput{
		AssignmentID:   assignment.ID,
		NewTemplateID:  templateB.ID,
		Replacements:   []AssetMapping{{OldAssetID: assetA1.ID, NewAssetID: templateB.SiteAssets[0].ID}},
		AutoArchiveOld: true,
	})
	suite.Require().Error(err)
	assert.Contains(suite.T(), err.Error(), "simulated audit write failure")

	var reloaded models.Assignment
	suite.Require().NoError(suite.db.First(&reloaded, assignment.ID).Error)
	assert.Equal(suite.T(), templateA.ID, reloaded.TemplateID)

	// No task or setting from the failed sync survived.
	assert.Equal(suite.T(), int64(1), suite.countRows(&models.Task{}, "assignment_id = ?", assignment.ID))
	assert.Equal(suite.T(), int64(1), suite.countRows(&models.AssignmentSiteAssetSetting{}, "assignment_id = ?", assignment.ID))
	assert.Equal(suite.T(), int64(0), suite.countRows(&models.ActivityLog{}, "entity_id = ?", assignment.ID))

	var archivedCheck models.Task
	suite.Require().NoError(suite.db.
		Where("assignment_id = ? AND template_site_asset_id = ?", assignment.ID, assetA1.ID).
		First(&archivedCheck).Error)
	assert.Equal(suite.T(), models.TaskStatusPending, archivedCheck.Status)
}

func TestTemplateSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TemplateSyncServiceTestSuite))
}
