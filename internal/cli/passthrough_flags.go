package cli

import (
	"github.com/spf13/cobra"

	"patchy.dev/patchy/internal/flags"
)

// Commands that take per-argument flags parse their own arguments, so the
// global flags are recognized here as well.
var (
	helpFlag    = &flags.Flag{Short: "-h", Long: "--help", Description: "Print help"}
	verboseFlag = &flags.Flag{Short: "--verbose", Long: "--verbose", Description: "Print every git command that is run"}
	logFileFlag = &flags.Flag{Short: "--log-file=", Long: "--log-file=", Description: "Write a debug log to this file"}
)

// parseArgs parses args against available plus the global flags. It reports
// whether help was requested.
func parseArgs(cmd *cobra.Command, global *globalFlags, args []string, available ...*flags.Flag) (*flags.Args, bool, error) {
	available = append(available, helpFlag, verboseFlag, logFileFlag)
	parsed, err := flags.Parse(args, available)
	if err != nil {
		return nil, false, err
	}
	if parsed.Has(helpFlag) {
		return parsed, true, cmd.Help()
	}
	if parsed.Has(verboseFlag) {
		global.verbose = true
	}
	if logFile, ok := parsed.Value(logFileFlag); ok {
		global.logFile = logFile
	}
	return parsed, false, nil
}

// flagUsage renders flag help for commands with DisableFlagParsing
func flagUsage(available ...*flags.Flag) string {
	usage := "\nFlags:\n"
	for _, flag := range append(available, helpFlag) {
		usage += "  " + flag.String() + "\n      " + flag.Description + "\n"
	}
	return usage
}
