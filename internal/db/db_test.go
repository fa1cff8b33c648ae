package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"mill-maintenance-backend/config"
	"mill-maintenance-backend/internal/model"
)

func TestInit_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:                 "sqlite",
		DSN:                    filepath.Join(t.TempDir(), "maintenance.db"),
		ConnMaxLifetimeMinutes: 5,
		LogLevel:               "silent",
	}

	gdb, err := Init(cfg, zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	for _, m := range model.All() {
		assert.True(t, gdb.Migrator().HasTable(m), "%T should be migrated", m)
	}
	assert.True(t, gdb.Migrator().HasIndex("wire_records", "idx_wire_records_active"))

	// Re-running migrations against an existing file is a no-op.
	again, err := Init(cfg, zap.NewNop())
	require.NoError(t, err)
	againDB, _ := again.DB()
	againDB.Close()
}

func TestInit_UnknownDriver(t *testing.T) {
	_, err := Init(&config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = Init(&config.DatabaseConfig{Driver: "postgres"}, zap.NewNop())
	assert.ErrorContains(t, err, "dsn is required")
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("SILENT"))
	assert.Equal(t, logger.Info, logLevel("info"))
	assert.Equal(t, logger.Warn, logLevel(""))
}
