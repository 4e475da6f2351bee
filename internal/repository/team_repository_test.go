package repository_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/intask-dev/intask/internal/models"
	"github.com/intask-dev/intask/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

func TestTeamRepository_Create(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	teamRepo := repository.NewTeamRepository(gormDB)

	creatorID := uint64(5)
	team := &models.Team{Name: "Platform", CreatedBy: &creatorID}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "teams"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := teamRepo.Create(team)

	assert.NoError(t, err)
	assert.EqualValues(t, 1, team.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_FindByName_ExcludesTombstones(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	teamRepo := repository.NewTeamRepository(gormDB)

	// The tombstone filter must be part of the query itself.
	mock.ExpectQuery(`SELECT .* FROM "teams" WHERE name = .* AND "teams"."deleted_at" IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "Platform", 5, time.Now(), time.Now(), nil))

	team, err := teamRepo.FindByName("Platform")

	assert.NoError(t, err)
	require.NotNil(t, team)
	assert.Equal(t, "Platform", team.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_FindByName_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	teamRepo := repository.NewTeamRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "teams" WHERE name = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by", "created_at", "updated_at", "deleted_at"}))

	team, err := teamRepo.FindByName("Missing")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, team)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_Delete_TombstonesOnly(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	teamRepo := repository.NewTeamRepository(gormDB)

	// Soft delete is an UPDATE of deleted_at; no project rows are touched.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "teams" SET "deleted_at"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := teamRepo.Delete(1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_Restore(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	teamRepo := repository.NewTeamRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "teams" SET "deleted_at"=.* WHERE id = .* AND deleted_at IS NOT NULL`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := teamRepo.Restore(1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_Restore_NotDeleted(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	teamRepo := repository.NewTeamRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "teams" SET "deleted_at"=`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := teamRepo.Restore(999)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_ListDeleted(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	teamRepo := repository.NewTeamRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "teams" WHERE deleted_at IS NOT NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "Platform", 5, time.Now(), time.Now(), time.Now()).
			AddRow(2, "Legacy", 5, time.Now(), time.Now(), time.Now()))

	teams, err := teamRepo.ListDeleted()

	assert.NoError(t, err)
	assert.Len(t, teams, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
