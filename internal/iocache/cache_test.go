package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/drojas/deskmetrics/schema"
	"github.com/stretchr/testify/assert"
)

func newSQLiteSnapshotStore(t *testing.T) *SnapshotStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := NewSnapshotStore(snapshotTable, schema.SQLiteBackend, dbPath)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*SnapshotStoreImpl)
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store := newSQLiteSnapshotStore(t)

	payload := []byte(`[{"No.":"1"}]`)
	ts := time.Now().Unix()
	assert.NoError(t, store.Set("tickets:last", payload, 1, ts))

	value, version, gotTS, err := store.Get("tickets:last")
	assert.NoError(t, err)
	assert.Equal(t, payload, value)
	assert.Equal(t, 1, version)
	assert.Equal(t, ts, gotTS)
}

func TestSnapshotStoreOverwrite(t *testing.T) {
	store := newSQLiteSnapshotStore(t)

	assert.NoError(t, store.Set("k", []byte("old"), 1, 100))
	assert.NoError(t, store.Set("k", []byte("new"), 2, 200))

	value, version, ts, err := store.Get("k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)
}

func TestSnapshotStoreMissingKey(t *testing.T) {
	store := newSQLiteSnapshotStore(t)

	_, _, _, err := store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSnapshotStoreNoneBackend(t *testing.T) {
	store, err := NewSnapshotStore(snapshotTable, schema.NoneBackend, "")
	assert.NoError(t, err)

	assert.NoError(t, store.Set("k", []byte("v"), 1, 1))
	_, _, _, err = store.Get("k")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestSnapshotStoreInvalidTableName(t *testing.T) {
	_, err := NewSnapshotStore("bad;table", schema.SQLiteBackend, filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}

func TestSnapshotStoreStatus(t *testing.T) {
	store := newSQLiteSnapshotStore(t)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalEntries)

	assert.NoError(t, store.Set("a", []byte("1"), 1, 100))
	assert.NoError(t, store.Set("b", []byte("2"), 1, 200))

	status, err = store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, time.Unix(200, 0), status.LastEntryTime)
	assert.Equal(t, time.Unix(100, 0), status.OldestEntryTime)
	assert.Positive(t, status.TableSizeBytes)
}
