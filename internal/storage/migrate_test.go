package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsOnFileDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	mgr, err := NewMigrationManager(dbPath)
	require.NoError(t, err)

	require.NoError(t, mgr.Up())
	// Up is idempotent.
	require.NoError(t, mgr.Up())

	version, dirty, err := mgr.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)

	require.NoError(t, mgr.Close())

	// The migrated database opens and has the snapshots table.
	db, err := Open(DefaultConfig(dbPath))
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.Conn().QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'snapshots'`,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestApplySchemaInMemory(t *testing.T) {
	config := DefaultConfig(":memory:")
	config.AutoMigrate = true
	config.MaxOpenConns = 1

	db, err := Open(config)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Conn().Exec(
		`INSERT INTO snapshots (key, payload, encrypted, updated_at) VALUES ('x', 'y', 0, datetime('now'))`,
	)
	assert.NoError(t, err)
}

func TestIsUpMigration(t *testing.T) {
	assert.True(t, isUpMigration("000001_create_snapshots.up.sql"))
	assert.False(t, isUpMigration("000001_create_snapshots.down.sql"))
	assert.False(t, isUpMigration("README.md"))
}
