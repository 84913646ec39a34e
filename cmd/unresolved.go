package cmd

import (
	"time"

	"github.com/drojas/deskmetrics/core"
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/outwriter"
	"github.com/spf13/cobra"
)

// unresolvedCmd shows the aging-ticket report.
var unresolvedCmd = &cobra.Command{
	Use:   "unresolved",
	Short: "Show the oldest unresolved tickets, ranked by age.",
	Long: `Fetch the ticket feed and rank unresolved tickets oldest first.

Each row shows the ticket's rank, days open, status, and a stall reason
derived from the status. The first three ranks are flagged as urgent.

Examples:
  # Ten oldest unresolved tickets
  deskmetrics unresolved

  # Top 25, for one technician
  deskmetrics unresolved --limit 25 --tech "José Castro"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		tickets, err := core.ExecuteUnresolved(rootCtx, cfg, ticketClient, cacheManager)
		if err != nil {
			contract.LogFatal("Cannot rank unresolved tickets", err)
		}
		if err := outwriter.WriteUnresolvedResults(tickets, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write unresolved tickets", err)
		}
	},
}
