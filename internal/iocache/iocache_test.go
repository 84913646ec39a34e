package iocache

import (
	"testing"

	"github.com/drojas/deskmetrics/schema"
	"github.com/stretchr/testify/assert"
)

func TestCacheStoreManagerGetters(t *testing.T) {
	snapshot := &MockSnapshotStore{}
	history := &MockHistoryStore{}

	mgr := &CacheStoreManager{}
	mgr.snapshot = snapshot
	mgr.history = history

	assert.Same(t, snapshot, mgr.GetSnapshotStore().(*MockSnapshotStore))
	assert.Same(t, history, mgr.GetHistoryStore().(*MockHistoryStore))
}

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("ticket_snapshots"))
	assert.NoError(t, validateTableName("_internal"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("drop table;"))
	assert.Error(t, validateTableName("1badstart"))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
}
