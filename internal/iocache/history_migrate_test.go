package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/drojas/deskmetrics/schema"
	"github.com/stretchr/testify/assert"
)

func TestMigrateHistoryUpAndDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	db, err := sql.Open("sqlite", dbPath)
	assert.NoError(t, err)
	defer func() { _ = db.Close() }()

	var name string
	row := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, runsTable)
	assert.NoError(t, row.Scan(&name))
	assert.Equal(t, runsTable, name)

	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))

	row = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, runsTable)
	assert.ErrorIs(t, row.Scan(&name), sql.ErrNoRows)
}

func TestMigrateHistoryToVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
	// Re-running to the same version is a no-op, not an error.
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
}

func TestMigrateHistoryNoneBackend(t *testing.T) {
	assert.Error(t, MigrateHistory(schema.NoneBackend, "", -1))
}
