package cmd

import (
	"time"

	"github.com/drojas/deskmetrics/core"
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/outwriter"
	"github.com/spf13/cobra"
)

// monthCmd shows the single-month breakdown.
var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show the status and survey breakdown for one month.",
	Long: `Fetch the ticket feed and break one calendar month down.

Displays:
- Assigned, resolved, and survey totals for the month
- Status distribution
- Survey coverage (tickets with and without a response)
- The individual surveyed tickets

The --month flag picks the month; without it the report month is used.

Examples:
  # Breakdown for the report month
  deskmetrics month

  # Breakdown for October 2025
  deskmetrics month --month 2025-10`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		report, err := core.ExecuteMonth(rootCtx, cfg, ticketClient, cacheManager)
		if err != nil {
			contract.LogFatal("Cannot build month report", err)
		}
		if err := outwriter.WriteMonthReport(report, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write month report", err)
		}
	},
}
