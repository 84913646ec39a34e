package cmd

import (
	"fmt"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/spf13/cobra"
)

// logoutCmd invalidates the session and removes the saved token.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the helpdesk API and remove the saved token.",
	Long: `Invalidate the current session on the server and delete the
persisted token. A server that no longer knows the session is treated
as already logged out.

Examples:
  deskmetrics logout`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := ticketClient.Logout(rootCtx); err != nil {
			contract.LogWarn("logging out on server, removing local token anyway", err)
		}
		if err := contract.ClearToken(); err != nil {
			contract.LogFatal("Cannot remove session token", err)
		}
		fmt.Println("Logged out.")
	},
}
