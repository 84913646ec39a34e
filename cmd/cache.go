package cmd

import (
	"fmt"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/iocache"
	"github.com/drojas/deskmetrics/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize caching with the loaded config (no run history for cache commands)
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on snapshot cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by report commands. This avoids API validation
// and complex config processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the ticket snapshot cache (enables offline runs)",
	Long: `Manage the snapshot cache that stores the last good ticket feed.

Every successful fetch refreshes the snapshot. When the API is down or
unreachable, reports fall back to the snapshot so dashboards keep
working offline.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show snapshot statistics and connection info
  clear  - Remove the stored snapshot

Examples:
  # Check snapshot status
  deskmetrics cache status

  # Drop the snapshot after a feed schema change
  deskmetrics cache clear`,
}

// cacheClearCmd clears the snapshot cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored ticket snapshot",
	Long: `Delete the cached ticket snapshot from the configured backend.

Use this when:
- The feed format changed and the snapshot no longer decodes
- The snapshot may be stale or corrupted
- Testing offline fallback behavior

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the snapshot table

Examples:
  # Clear SQLite snapshot (default)
  deskmetrics cache clear

  # Clear MySQL snapshot (set connection string via env variable)
  DESKMETRICS_CACHE_BACKEND=mysql DESKMETRICS_CACHE_DB_CONNECT="..." deskmetrics cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows snapshot cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot statistics and connection details",
	Long: `Show detailed information about the ticket snapshot cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Last and oldest snapshot timestamps
- Cache database size

Examples:
  # Check snapshot status
  deskmetrics cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetSnapshotStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
