package schema

import "time"

// CacheStatus represents the status of the snapshot store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the run history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalTickets  int              `json:"total_tickets"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the deskmetrics_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TicketCount   int32
	ConfigParams  *string
}

// TechMetricsRecord represents a row from the deskmetrics_tech_metrics table.
// One row is written per technician per aggregation run.
type TechMetricsRecord struct {
	RunID          int64
	Tech           string
	PeriodLabel    string
	RecordTime     time.Time
	Assigned       int32
	Resolved       int32
	Pending        int32
	Surveys        int32
	WeightedRating float64
	ResponseRate   float64
	SLAIdeal       float64
	Participation  float64
}
