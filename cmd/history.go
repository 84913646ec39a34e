package cmd

import (
	"fmt"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/iocache"
	"github.com/drojas/deskmetrics/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize stores with the loaded config (no snapshot cache for history commands)
	if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on run history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by report commands.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage aggregation run history and exports",
	Long: `Manage the run history used for trend tracking and reporting.

When enabled, deskmetrics tracks every technician aggregation run, storing:
- Run metadata (timestamp, configuration, duration)
- Per-technician metric rows for the report month

This enables longitudinal analysis, trend detection, and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  # Check run history status
  deskmetrics history status

  # Export for analysis in pandas/DuckDB
  deskmetrics history export --output-file deskmetrics-data.parquet`,
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded aggregation runs",
	Long: `Delete all stored aggregation runs and technician metric rows.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  deskmetrics history export --output-file backup.parquet
  deskmetrics history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history data", err)
		}
		fmt.Println("History data cleared successfully.")
	},
}

// historyStatusCmd shows run history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show detailed information about the run history store.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- Total tickets processed across all runs
- Database table sizes

Examples:
  # Check run history status
  deskmetrics history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(status)
	},
}

// historyExportCmd exports run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored run history to Parquet format for use with analytics tools.

Exports two datasets:
- Runs - metadata about each aggregation execution
- Tech metrics - per-technician metric rows per run

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  deskmetrics history export --output-file deskmetrics-data.parquet

  # Use with DuckDB for analysis
  deskmetrics history export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history data", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

Migrations allow:
- Upgrading to new schema versions when deskmetrics is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  deskmetrics history migrate

  # Migrate to specific version
  deskmetrics history migrate --target-version 2

  # Rollback to previous version
  deskmetrics history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
