package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd exchanges credentials for a session token and persists it.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the helpdesk API and save the session token.",
	Long: `Authenticate against the helpdesk API with username and password.

The returned session token is saved to the home directory and picked up
automatically by every other command until logout.

Examples:
  # Interactive login
  deskmetrics login --api-url https://helpdesk.example.com`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Username: ")
		username, err := reader.ReadString('\n')
		if err != nil {
			contract.LogFatal("Cannot read username", err)
		}
		username = strings.TrimSpace(username)

		fmt.Print("Password: ")
		passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			contract.LogFatal("Cannot read password", err)
		}

		result, err := ticketClient.Login(rootCtx, username, string(passwordBytes))
		if err != nil {
			contract.LogFatal("Login failed", err)
		}
		if err := contract.SaveToken(result.Token); err != nil {
			contract.LogFatal("Cannot save session token", err)
		}
		fmt.Printf("Logged in as %s (role: %s). Token saved.\n", username, result.Role)
	},
}
