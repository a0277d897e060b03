package database

import (
	"path/filepath"
	"testing"

	"schnorr-batch/pkg/logger"
	"schnorr-batch/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToDomainDefaults(t *testing.T) {
	cfg := DatabaseConfigJson{}.ConvertToDomain()
	assert.Equal(t, DriverSqlite, cfg.Driver)
	assert.Equal(t, "batch_runs.db", cfg.ConnectionString)
	assert.True(t, cfg.Migrate)

	off := false
	cfg = DatabaseConfigJson{Driver: DriverPostgres, Migrate: &off}.ConvertToDomain()
	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.False(t, cfg.Migrate)
}

func TestConnectToSqliteMigrates(t *testing.T) {
	logger.InitDefaultLogger(logger.GlobalLoggerConfig{})

	db, err := ConnectToDatabase(DatabaseConfig{
		Driver:           DriverSqlite,
		ConnectionString: filepath.Join(t.TempDir(), "runs.db"),
		Migrate:          true,
	})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&model.BatchRun{}))
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := ConnectToDatabase(DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported")
}
