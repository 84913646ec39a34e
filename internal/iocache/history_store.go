package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
)

// Table names for run history tracking.
const (
	runsTable        = "deskmetrics_runs"
	techMetricsTable = "deskmetrics_tech_metrics"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Check that the server is running and credentials are valid", backend, err)
	}

	// Create the table schemas
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createHistoryTables creates the run history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{techMetricsTable, getCreateTechMetricsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for deskmetrics_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				ticket_count INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				ticket_count INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				ticket_count INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateTechMetricsQuery returns the CREATE TABLE query for deskmetrics_tech_metrics.
func getCreateTechMetricsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(techMetricsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				tech VARCHAR(255) NOT NULL,
				period_label VARCHAR(100) NOT NULL,
				record_time DATETIME(6) NOT NULL,
				assigned INT NOT NULL,
				resolved INT NOT NULL,
				pending INT NOT NULL,
				surveys INT NOT NULL,
				weighted_rating DOUBLE NOT NULL,
				response_rate DOUBLE NOT NULL,
				sla_ideal DOUBLE NOT NULL,
				participation DOUBLE NOT NULL,
				PRIMARY KEY (run_id, tech, period_label)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				tech TEXT NOT NULL,
				period_label TEXT NOT NULL,
				record_time TIMESTAMPTZ NOT NULL,
				assigned INT NOT NULL,
				resolved INT NOT NULL,
				pending INT NOT NULL,
				surveys INT NOT NULL,
				weighted_rating DOUBLE PRECISION NOT NULL,
				response_rate DOUBLE PRECISION NOT NULL,
				sla_ideal DOUBLE PRECISION NOT NULL,
				participation DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (run_id, tech, period_label)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				tech TEXT NOT NULL,
				period_label TEXT NOT NULL,
				record_time TEXT NOT NULL,
				assigned INTEGER NOT NULL,
				resolved INTEGER NOT NULL,
				pending INTEGER NOT NULL,
				surveys INTEGER NOT NULL,
				weighted_rating REAL NOT NULL,
				response_rate REAL NOT NULL,
				sla_ideal REAL NOT NULL,
				participation REAL NOT NULL,
				PRIMARY KEY (run_id, tech, period_label)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new aggregation run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, formatTime(startTime, hs.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, ticketCount int) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(runsTable, hs.backend)
	var startTime time.Time

	var query string
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName)
	}

	row := hs.db.QueryRow(query, runID)

	// Handle different time storage formats per backend
	switch hs.backend {
	case schema.SQLiteBackend:
		var startTimeStr string
		if err := row.Scan(&startTimeStr); err != nil {
			return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		var err error
		startTime, err = time.Parse(time.RFC3339Nano, startTimeStr)
		if err != nil {
			return fmt.Errorf("failed to parse start_time: %w", err)
		}
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&startTime); err != nil {
			return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
	}

	// Calculate duration in milliseconds
	durationMs := endTime.Sub(startTime).Milliseconds()

	// Update the run with completion data
	var updateQuery string
	var args []any

	switch hs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, ticket_count = $3 WHERE run_id = $4`, quotedTableName)
		args = []any{endTime, durationMs, ticketCount, runID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, ticket_count = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, hs.backend), durationMs, ticketCount, runID}
	}

	_, err := hs.db.Exec(updateQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	return nil
}

// RecordTechMetrics stores one technician metric row for a run.
func (hs *HistoryStoreImpl) RecordTechMetrics(rec schema.TechMetricsRecord) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(techMetricsTable, hs.backend)

	var query string
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, tech, period_label, record_time, assigned, resolved,
			                pending, surveys, weighted_rating, response_rate, sla_ideal, participation)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, tech, period_label, record_time, assigned, resolved,
			                pending, surveys, weighted_rating, response_rate, sla_ideal, participation)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	args := []any{
		rec.RunID, rec.Tech, rec.PeriodLabel, formatTime(rec.RecordTime, hs.backend),
		rec.Assigned, rec.Resolved, rec.Pending, rec.Surveys,
		rec.WeightedRating, rec.ResponseRate, rec.SLAIdeal, rec.Participation,
	}
	if hs.backend == schema.PostgreSQLBackend {
		args[3] = rec.RecordTime
	}

	if _, err := hs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert technician metrics: %w", err)
	}

	return nil
}

// GetRuns retrieves all aggregation runs from the store, oldest first.
func (hs *HistoryStoreImpl) GetRuns() ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	query := fmt.Sprintf("SELECT run_id, start_time, end_time, run_duration_ms, ticket_count, config_params FROM %s ORDER BY run_id", quotedTableName)

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord

	for rows.Next() {
		var record schema.RunRecord
		var ticketCount sql.NullInt32

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.RunDurationMs, &ticketCount, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.RunDurationMs, &ticketCount, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}

		if ticketCount.Valid {
			record.TicketCount = ticketCount.Int32
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return results, nil
}

// GetTechMetrics retrieves all recorded technician metric rows, oldest first.
func (hs *HistoryStoreImpl) GetTechMetrics() ([]schema.TechMetricsRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(techMetricsTable, hs.backend)
	query := fmt.Sprintf(`SELECT run_id, tech, period_label, record_time, assigned, resolved,
    pending, surveys, weighted_rating, response_rate, sla_ideal, participation
    FROM %s ORDER BY run_id, tech`, quotedTableName)

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query technician metrics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.TechMetricsRecord

	for rows.Next() {
		var rec schema.TechMetricsRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var recordTimeStr string
			if err := rows.Scan(&rec.RunID, &rec.Tech, &rec.PeriodLabel, &recordTimeStr,
				&rec.Assigned, &rec.Resolved, &rec.Pending, &rec.Surveys,
				&rec.WeightedRating, &rec.ResponseRate, &rec.SLAIdeal, &rec.Participation); err != nil {
				return nil, fmt.Errorf("failed to scan technician metrics: %w", err)
			}
			recordTime, err := time.Parse(time.RFC3339Nano, recordTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse record_time: %w", err)
			}
			rec.RecordTime = recordTime
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&rec.RunID, &rec.Tech, &rec.PeriodLabel, &rec.RecordTime,
				&rec.Assigned, &rec.Resolved, &rec.Pending, &rec.Surveys,
				&rec.WeightedRating, &rec.ResponseRate, &rec.SLAIdeal, &rec.Participation); err != nil {
				return nil, fmt.Errorf("failed to scan technician metrics: %w", err)
			}
		}

		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating technician metrics: %w", err)
	}

	return results, nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runsTable, hs.backend))
	row := hs.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(runsTable, hs.backend))
		row = hs.db.QueryRow(lastRunQuery)

		switch hs.backend {
		case schema.SQLiteBackend:
			var lastRunID int64
			var lastRunTimeStr string
			if err := row.Scan(&lastRunID, &lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			status.LastRunID = lastRunID
			lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = lastRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
		}

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(runsTable, hs.backend))
		row = hs.db.QueryRow(oldestRunQuery)

		switch hs.backend {
		case schema.SQLiteBackend:
			var oldestRunTimeStr string
			if err := row.Scan(&oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
			oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse oldest run time: %w", err)
			}
			status.OldestRunTime = oldestRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.OldestRunTime); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
		}

		// Get total tickets processed
		ticketsQuery := fmt.Sprintf("SELECT COALESCE(SUM(ticket_count), 0) FROM %s", quoteTableName(runsTable, hs.backend))
		row = hs.db.QueryRow(ticketsQuery)
		if err := row.Scan(&status.TotalTickets); err != nil {
			return status, fmt.Errorf("failed to get total tickets: %w", err)
		}
	}

	// Get table sizes
	tables := []string{runsTable, techMetricsTable}
	for _, table := range tables {
		quotedTable := quoteTableName(table, hs.backend)
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTable)
		row = hs.db.QueryRow(countQuery)
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}
