package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"court-register-go/pkg/logger"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *gorm.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return mock, gormDB
}

func writeMigrations(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, contents := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600))
	}
	return dir
}

func expectApplied(mock sqlmock.Sqlmock, name string, count int) {
	mock.ExpectQuery(`SELECT COUNT\(1\) FROM schema_migrations WHERE filename = \$1`).
		WithArgs(name).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func TestMigrateDirAppliesPendingFilesInOrder(t *testing.T) {
	mock, gormDB := setupMockDB(t)
	dir := writeMigrations(t, map[string]string{
		"0002_building.sql": "CREATE TABLE building (id BIGSERIAL PRIMARY KEY);",
		"0001_court.sql":    "CREATE TABLE court (id VARCHAR(12) PRIMARY KEY);",
		"0003_empty.sql":    "   \n",
		"README.txt":        "not a migration",
	})

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	expectApplied(mock, "0001_court.sql", 1)
	expectApplied(mock, "0002_building.sql", 0)
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE building`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).
		WithArgs("0002_building.sql", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectApplied(mock, "0003_empty.sql", 0)

	applied, err := MigrateDir(gormDB, dir, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"0002_building.sql"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateDirRollsBackFailedFile(t *testing.T) {
	mock, gormDB := setupMockDB(t)
	dir := writeMigrations(t, map[string]string{
		"0001_court.sql": "CREATE TABLE court (id VARCHAR(12) PRIMARY KEY);",
	})

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	expectApplied(mock, "0001_court.sql", 0)
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE court`).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	applied, err := MigrateDir(gormDB, dir, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply migration 0001_court.sql")
	assert.Empty(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
