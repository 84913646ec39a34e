// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/drojas/deskmetrics/schema"
)

// TicketClient defines the operations against the helpdesk REST API.
// This allows the core aggregation logic to be tested without a live server.
type TicketClient interface {
	// FetchTickets retrieves the full ticket feed. Implementations must
	// bypass intermediary caches so that polling sees fresh data.
	FetchTickets(ctx context.Context) ([]schema.Ticket, error)

	// Login exchanges credentials for a session token and role.
	Login(ctx context.Context, username, password string) (schema.LoginResult, error)

	// Logout invalidates the current session. Best effort.
	Logout(ctx context.Context) error
}

// CacheManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetSnapshotStore() SnapshotStore
	GetHistoryStore() HistoryStore
}

// SnapshotStore defines the interface for caching raw ticket payloads
// between polls, so offline runs can fall back to the last good fetch.
type SnapshotStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking aggregation runs and
// storing the per-technician metric rows they produce.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, ticketCount int) error

	// RecordTechMetrics stores one technician metric row for a run
	RecordTechMetrics(rec schema.TechMetricsRecord) error

	// GetRuns returns all recorded runs, oldest first
	GetRuns() ([]schema.RunRecord, error)

	// GetTechMetrics returns all recorded metric rows, oldest first
	GetTechMetrics() ([]schema.TechMetricsRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
