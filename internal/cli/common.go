package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"patchy.dev/patchy/internal/runtime"
	"patchy.dev/patchy/internal/tui"
)

// newSplog creates the logger for one command invocation
func newSplog(flags *globalFlags) (*tui.Splog, error) {
	logFile := flags.logFile
	if logFile == "" {
		logFile = tui.GetLogFilePath()
	}
	return tui.NewSplogWithConfig(tui.SplogOptions{
		Debug:       flags.verbose || os.Getenv("DEBUG") != "",
		LogFilePath: logFile,
	})
}

// withContext is a helper that provides a runtime context to a command's execution function
func withContext(cmd *cobra.Command, flags *globalFlags, fn func(ctx *runtime.Context) error) error {
	splog, err := newSplog(flags)
	if err != nil {
		return err
	}
	defer func() { _ = splog.Close() }()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	ctx, err := runtime.GetContext(cmd.Context(), cwd, splog)
	if err != nil {
		return err
	}
	return fn(ctx)
}

// confirm asks through the terminal prompt
func confirm(message string) (bool, error) {
	return tui.Confirm(message, false)
}
