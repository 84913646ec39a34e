package cmd

import (
	"time"

	"github.com/drojas/deskmetrics/core"
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/outwriter"
	"github.com/spf13/cobra"
)

// boardCmd shows the control-panel statistics.
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the ticket board: status counters and distributions.",
	Long: `Fetch the ticket feed and summarize it as a control panel.

Displays:
- Total, open, closed, pending, and cancelled counters
- The oldest ticket still open
- Ticket counts per month, per week of month, and per day of week
- Status breakdown within each month

All root filters apply, so the board can be narrowed to one technician,
status, store, brand, or month.

Examples:
  # Full board for the whole feed
  deskmetrics board

  # Board for a single month
  deskmetrics board --month 2025-10

  # Board for one technician, exported as JSON
  deskmetrics board --tech "José Castro" --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		stats, err := core.ExecuteBoard(rootCtx, cfg, ticketClient, cacheManager)
		if err != nil {
			contract.LogFatal("Cannot build board statistics", err)
		}
		if err := outwriter.WriteBoardStats(stats, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write board statistics", err)
		}
	},
}
