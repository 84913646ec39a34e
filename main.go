// main holds the entry logic for the deskmetrics CLI.
package main

import (
	"os"

	"github.com/drojas/deskmetrics/cmd"
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/iocache"
)

func main() {
	defer iocache.CloseStores()

	if err := cmd.Execute(); err != nil {
		contract.LogWarn("running command", err)
		iocache.CloseStores()
		os.Exit(1)
	}
}
