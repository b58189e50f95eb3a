package database

import (
	"Fanboard/internal/api/config"
	"Fanboard/internal/model"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGormDB_SQLiteMigrates(t *testing.T) {
	db, err := NewGormDB(&config.DBConfig{
		Driver:      config.DriverSQLite,
		DSN:         filepath.Join(t.TempDir(), "club.db"),
		MaxIdle:     1,
		MaxOpen:     1,
		MaxLifetime: 5,
	})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&model.Member{}))
	assert.True(t, db.Migrator().HasTable(&model.Snapshot{}))
	assert.True(t, db.Migrator().HasIndex(&model.Snapshot{}, "idx_snapshot_member_time"))
}

func TestNewGormDB_UnknownDriver(t *testing.T) {
	_, err := NewGormDB(&config.DBConfig{Driver: "postgres", DSN: "x"})
	assert.Error(t, err)
}
