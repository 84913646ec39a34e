package iocache

import (
	"time"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetSnapshotStore implements the CacheManager interface.
func (m *MockCacheManager) GetSnapshotStore() contract.SnapshotStore {
	args := m.Called()
	store, _ := args.Get(0).(contract.SnapshotStore)
	return store
}

// GetHistoryStore implements the CacheManager interface.
func (m *MockCacheManager) GetHistoryStore() contract.HistoryStore {
	args := m.Called()
	store, _ := args.Get(0).(contract.HistoryStore)
	return store
}

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// Get implements the SnapshotStore interface.
func (m *MockSnapshotStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	value, _ := args.Get(0).([]byte)
	return value, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the SnapshotStore interface.
func (m *MockSnapshotStore) Set(key string, value []byte, version int, timestamp int64) error {
	args := m.Called(key, value, version, timestamp)
	return args.Error(0)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, ticketCount int) error {
	args := m.Called(runID, endTime, ticketCount)
	return args.Error(0)
}

// RecordTechMetrics implements the HistoryStore interface.
func (m *MockHistoryStore) RecordTechMetrics(rec schema.TechMetricsRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

// GetRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetTechMetrics implements the HistoryStore interface.
func (m *MockHistoryStore) GetTechMetrics() ([]schema.TechMetricsRecord, error) {
	args := m.Called()
	recs, _ := args.Get(0).([]schema.TechMetricsRecord)
	return recs, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
