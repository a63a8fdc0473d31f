package tui

import (
	"os"
)

// GetLogFilePath returns the path of the debug log file.
// If PATCHY_LOG_FILE is set, uses that path. Otherwise file logging is off
// and the empty string is returned.
func GetLogFilePath() string {
	return os.Getenv("PATCHY_LOG_FILE")
}
