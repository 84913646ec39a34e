// Package iocache is for durable storage of ticket snapshots and run history.
package iocache

import (
	"sync"

	"github.com/drojas/deskmetrics/internal/contract"
)

// CacheStoreManager manages the snapshot and history store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	snapshot     contract.SnapshotStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetSnapshotStore returns the ticket snapshot store.
func (mgr *CacheStoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshot
}

// GetHistoryStore returns the run history store.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
