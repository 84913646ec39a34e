package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
)

// snapshotTable is the name of the table for ticket snapshot storage.
const snapshotTable = "ticket_snapshots"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetDBFilePath() string {
	return contract.GetCacheDBFilePath()
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	return contract.GetHistoryDBFilePath()
}

// InitStores initializes the global cache manager with separate snapshot and
// history stores. Either backend can be empty to skip its initialization.
func InitStores(snapshotBackend schema.DatabaseBackend, snapshotConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		var err error

		var snapshotStore contract.SnapshotStore
		if snapshotBackend != "" {
			snapshotStore, err = NewSnapshotStore(snapshotTable, snapshotBackend, snapshotConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize snapshot store: %w", err)
				return
			}
		}

		var historyStore contract.HistoryStore
		if historyBackend != "" {
			historyStore, err = NewHistoryStore(historyBackend, historyConnStr)
			if err != nil {
				if snapshotStore != nil {
					_ = snapshotStore.Close()
				}
				initErr = fmt.Errorf("failed to initialize history store: %w", err)
				return
			}
		}

		// Assign to global manager
		Manager.snapshot = snapshotStore
		Manager.history = historyStore
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.snapshot != nil {
			_ = Manager.snapshot.Close()
		}
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// ClearCache clears the snapshot store for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeDBFile(dbFilePath)

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, snapshotTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, snapshotTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported snapshot backend for clearing: %s", backend)
	}
}

// ClearHistory clears the run history for the specified backend.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeDBFile(dbFilePath)

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		driverName := "mysql"
		if backend == schema.PostgreSQLBackend {
			driverName = "pgx"
		}
		for _, table := range []string{runsTable, techMetricsTable} {
			if err := clearSQLTable(driverName, connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// removeDBFile deletes a SQLite database file, ignoring a missing file.
func removeDBFile(dbFilePath string) error {
	if dbFilePath == "" {
		return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
	}
	if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
	}
	return nil
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
