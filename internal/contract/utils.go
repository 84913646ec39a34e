package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Rating label constants.
const (
	ExcellentValue = "Excellent" // weighted rating at or above 4.5
	GoodValue      = "Good"      // at or above 4.0
	FairValue      = "Fair"      // at or above 3.0
	PoorValue      = "Poor"      // everything below
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // target met
	GoodColor      = color.New(color.FgCyan)              // acceptable
	FairColor      = color.New(color.FgYellow)            // needs attention
	PoorColor      = color.New(color.FgRed, color.Bold)   // below target
)

// GetPlainRatingLabel returns a plain text label for a weighted survey
// rating. This is the core logic used for CSV, JSON, and table printing.
func GetPlainRatingLabel(rating float64) string {
	switch {
	case rating >= 4.5:
		return ExcellentValue
	case rating >= 4.0:
		return GoodValue
	case rating >= 3.0:
		return FairValue
	default:
		return PoorValue
	}
}

// GetColorRatingLabel returns a colored label for console output (table).
func GetColorRatingLabel(rating float64) string {
	text := GetPlainRatingLabel(rating)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// GetColorPercent colors a percentage against a target threshold: green at
// or above target, red below. Used for survey coverage and SLA columns.
func GetColorPercent(value, target float64, formatted string) string {
	if value >= target {
		return ExcellentColor.Sprint(formatted)
	}
	return PoorColor.Sprint(formatted)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".deskmetrics_cache.db"
	}
	return filepath.Join(homeDir, ".deskmetrics_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".deskmetrics_history.db"
	}
	return filepath.Join(homeDir, ".deskmetrics_history.db")
}

// GetTokenFilePath returns the path where the session token is persisted.
func GetTokenFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".deskmetrics_token"
	}
	return filepath.Join(homeDir, ".deskmetrics_token")
}

// SaveToken persists the session token for later runs.
func SaveToken(token string) error {
	return os.WriteFile(GetTokenFilePath(), []byte(token+"\n"), 0o600)
}

// LoadToken reads a previously persisted session token. A missing file
// yields an empty token with no error.
func LoadToken() (string, error) {
	data, err := os.ReadFile(GetTokenFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ClearToken removes the persisted session token.
func ClearToken() error {
	if err := os.Remove(GetTokenFilePath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// TruncateText truncates a string to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and content.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
