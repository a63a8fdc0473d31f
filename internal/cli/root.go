// Package cli wires patchy's commands to cobra.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every command
type globalFlags struct {
	verbose bool
	logFile string
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "patchy",
		Short: "Patchy makes it easy to maintain personal forks in which you merge some pull requests of your liking",
		Long: `Patchy makes it easy to maintain personal forks in which you merge some pull requests of your liking.

It fetches a branch of an upstream repository, merges the pull requests listed
in .patchy/config.toml on top of it, applies your patch files and replaces your
local branch with the result.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Print every git command that is run")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Write a debug log to this file (defaults to $PATCHY_LOG_FILE)")

	rootCmd.AddCommand(
		newRunCmd(flags),
		newInitCmd(flags),
		newPrFetchCmd(flags),
		newGenPatchCmd(flags),
	)

	return rootCmd
}
