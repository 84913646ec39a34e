package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drojas/deskmetrics/core"
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/helpdesk"
	"github.com/drojas/deskmetrics/internal/outwriter"
	"github.com/drojas/deskmetrics/schema"
	"github.com/spf13/cobra"
)

// watchCmd keeps the board on screen and refreshes it on an interval.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the ticket board on screen, refreshing periodically.",
	Long: `Poll the ticket feed and redraw the board after every refresh.

The poller stamps each fetch with an epoch and discards responses that
arrive after a newer fetch has started, so a slow response never
overwrites fresher data. Failed fetches keep the previous board on
screen. Press Ctrl+C to stop.

Examples:
  # Refresh every two minutes (default)
  deskmetrics watch

  # Refresh every 30 seconds, filtered to one store
  deskmetrics watch --poll-interval 30s --store "Tienda Centro"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		roster := core.NewRoster(cfg.Technicians, cfg.Aliases)
		filters, err := core.NewFilters(cfg, roster)
		if err != nil {
			contract.LogFatal("Cannot build filters", err)
		}

		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		onUpdate := func(tickets []schema.Ticket) {
			start := time.Now()
			stats := core.BuildBoardStats(filters.Apply(roster.FilterAllowed(tickets)))

			// Clear the screen before each redraw
			fmt.Print("\033[2J\033[H")
			fmt.Printf("deskmetrics watch (every %s, Ctrl+C to stop) - %s\n\n",
				cfg.PollInterval, time.Now().Format("2006-01-02 15:04:05"))
			if err := outwriter.WriteBoardStats(stats, cfg, time.Since(start)); err != nil {
				contract.LogWarn("writing board statistics", err)
			}
		}

		poller := helpdesk.NewPoller(ticketClient, cfg.PollInterval, onUpdate)
		poller.Run(ctx)
	},
}
