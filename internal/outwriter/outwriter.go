// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/drojas/deskmetrics/internal/contract"
	"golang.org/x/term"
)

// getMaxTableSubjectWidth calculates the maximum width for ticket subjects in
// table output based on terminal width and the fixed columns.
func getMaxTableSubjectWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for number, date, status, tech and location columns
	// plus table borders, separators, and padding.
	baseWidth := 65

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
