// Package cmd defines the command-line interface for deskmetrics.
package cmd

import (
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(techsCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(resolvedCmd)
	rootCmd.AddCommand(unresolvedCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("api-url", "", "Base URL of the helpdesk REST API")
	rootCmd.PersistentFlags().String("token", "", "Bearer token for the ticket feed (falls back to the saved login session)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("report-month", "", "Report month in YYYY-MM form (defaults to the current month)")
	rootCmd.PersistentFlags().String("search", "", "Search term matched against technician names ('*' acts as a wildcard)")
	rootCmd.PersistentFlags().String("status", "", "Filter tickets by status ('Pendiente' matches every non-primary status)")
	rootCmd.PersistentFlags().String("tech", "", "Filter tickets by technician alias or raw name")
	rootCmd.PersistentFlags().String("store", "", "Filter tickets by location substring")
	rootCmd.PersistentFlags().String("brand", "", "Filter tickets by client name")
	rootCmd.PersistentFlags().String("month", "", "Restrict tickets to a calendar month in YYYY-MM form")
	rootCmd.PersistentFlags().String("from", "", "Keep tickets created on or after this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("to", "", "Keep tickets created on or before this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().IntSlice("rating", nil, "Filter tickets by survey rating 1-5; 0 matches tickets without a survey (repeatable)")
	rootCmd.PersistentFlags().String("sort-by", "", "Sort key for ticket listings: no, date, status, tech, client, location, or subject")
	rootCmd.PersistentFlags().Bool("desc", false, "Sort in descending order")
	rootCmd.PersistentFlags().String("poll-interval", contract.DefaultPollInterval.String(), "Refresh interval for watch mode (e.g. 2m, 30s)")
	rootCmd.PersistentFlags().Float64("sla-expected-total", contract.DefaultExpectedMonthlyTotal, "Expected team ticket total per month for SLA percentages")
	rootCmd.PersistentFlags().Float64("sla-headcount", contract.DefaultHeadcount, "Technician headcount used for per-tech ideals")
	rootCmd.PersistentFlags().Float64("workdays-per-week", contract.DefaultWorkdaysPerWeek, "Workdays per week used for daily averages")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Snapshot cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
