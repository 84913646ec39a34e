package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/helpdesk"
	"github.com/drojas/deskmetrics/internal/iocache"
	"github.com/drojas/deskmetrics/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// ticketClient talks to the helpdesk REST API.
var ticketClient contract.TicketClient

// cacheManager is the global persistence manager instance.
var cacheManager contract.CacheManager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "deskmetrics",
	Short:              "Aggregate helpdesk tickets into per-technician dashboards.",
	Long:               `Deskmetrics pulls the helpdesk ticket feed and turns it into technician scorecards, board statistics, and aging reports.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".deskmetrics") // Name of config file (without extension)
		viper.SetConfigType("yaml")         // We'll use YAML format
		viper.AddConfigPath(".")            // Look in the current directory
		viper.AddConfigPath("$HOME")        // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("DESKMETRICS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("poll-interval", contract.DefaultPollInterval.String())
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("sla-expected-total", contract.DefaultExpectedMonthlyTotal)
	viper.SetDefault("sla-headcount", contract.DefaultHeadcount)
	viper.SetDefault("workdays-per-week", contract.DefaultWorkdaysPerWeek)
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Fall back to a persisted session token when none was provided.
	if input.APIToken == "" {
		token, err := contract.LoadToken()
		if err != nil {
			return fmt.Errorf("unable to load session token: %w", err)
		}
		input.APIToken = token
	}

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	color.NoColor = !cfg.Color

	// 5. Initialize persistence layer with validated config
	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect, cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	if cacheManager == nil {
		cacheManager = iocache.Manager
	}

	if ticketClient == nil {
		ticketClient = helpdesk.NewClient(cfg.APIBaseURL, cfg.APIToken)
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".deskmetrics")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetCacheManager sets the global cache manager.
func SetCacheManager(mgr contract.CacheManager) {
	cacheManager = mgr
}

// SetTicketClient sets the global ticket client.
func SetTicketClient(client contract.TicketClient) {
	ticketClient = client
}
