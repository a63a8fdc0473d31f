package cli

import (
	"github.com/spf13/cobra"

	"patchy.dev/patchy/internal/actions/initconfig"
	"patchy.dev/patchy/internal/runtime"
	"patchy.dev/patchy/internal/tui"
)

// newInitCmd creates the init command
func newInitCmd(flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create example config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, flags, func(ctx *runtime.Context) error {
				opts := initconfig.Options{Force: force}
				if tui.IsInteractive() {
					opts.Confirm = confirm
				}
				return initconfig.Action(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}
