package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clientdesk/assignment-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestSyncTemplate_RollsBackWhenLoadFails drives the service against a mocked
// connection and asserts the transaction is rolled back, never committed, when
// the very first load inside it errors.
func TestSyncTemplate_RollsBackWhenLoadFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	storageErr := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "assignments"`).WillReturnError(storageErr)
	mock.ExpectRollback()

	service := NewTemplateSyncService(
		db,
		repository.NewAssignmentRepository(db),
		repository.NewTemplateRepository(db),
		repository.NewTaskRepository(db),
		repository.NewSettingRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewActivityLogRepository(db),
	)

	_, err = service.SyncTemplate(context.Background(), SyncTemplateInput{
		AssignmentID:   1,
		NewTemplateID:  2,
		AutoArchiveOld: true,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
