package cmd

import (
	"time"

	"github.com/drojas/deskmetrics/core"
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/outwriter"
	"github.com/spf13/cobra"
)

// techsCmd runs the per-technician aggregation.
var techsCmd = &cobra.Command{
	Use:   "techs",
	Short: "Show per-technician metrics for the report month.",
	Long: `Fetch the ticket feed and compute the technician scorecard.

For every technician on the roster this reports:
- Assigned, resolved, and pending counts for the report month
- Survey counts and the weighted survey rating
- Response and resolution rates
- SLA attainment and participation against the team ideal
- Daily average assignments

Counts are also bucketed per configured week and per rolling month pair.
Every run is recorded in the history store when a history backend is
configured, enabling trend analysis over time.

Examples:
  # Scorecard for the current month
  deskmetrics techs

  # Scorecard for a specific report month
  deskmetrics techs --report-month 2025-10

  # Export one row per technician per period
  deskmetrics techs --output csv --output-file techs.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		results, summary, err := core.ExecuteTechs(rootCtx, cfg, ticketClient, cacheManager)
		if err != nil {
			contract.LogFatal("Cannot aggregate technician metrics", err)
		}
		if err := outwriter.WriteTechResults(results, summary, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write technician metrics", err)
		}
	},
}
