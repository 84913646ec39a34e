package cmd

import (
	"time"

	"github.com/drojas/deskmetrics/core"
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/outwriter"
	"github.com/spf13/cobra"
)

// resolvedCmd lists resolved tickets.
var resolvedCmd = &cobra.Command{
	Use:   "resolved",
	Short: "List resolved tickets matching the active filters.",
	Long: `Fetch the ticket feed and list every resolved ticket.

A ticket counts as resolved when its status is Cerrado or Resuelto.
The listing honors all root filters and can be sorted by any column.

Examples:
  # All resolved tickets, newest first
  deskmetrics resolved --sort-by date --desc

  # Resolved tickets for one store
  deskmetrics resolved --store "Tienda Centro"

  # Resolved tickets with a top survey rating inside a date range
  deskmetrics resolved --rating 5 --from 2025-10-01 --to 2025-10-15

  # Resolved tickets for one technician as CSV
  deskmetrics resolved --tech "José Castro" --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		tickets, err := core.ExecuteResolved(rootCtx, cfg, ticketClient, cacheManager)
		if err != nil {
			contract.LogFatal("Cannot list resolved tickets", err)
		}
		if err := outwriter.WriteTicketResults(tickets, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write resolved tickets", err)
		}
	},
}
