package cli

import (
	"os"

	"github.com/spf13/cobra"

	"patchy.dev/patchy/internal/actions/run"
	"patchy.dev/patchy/internal/config"
	"patchy.dev/patchy/internal/runtime"
)

// newRunCmd creates the run command
func newRunCmd(flags *globalFlags) *cobra.Command {
	var (
		yes         bool
		autoResolve bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start patchy",
		Long: `Fetch the remote branch from .patchy/config.toml, merge every listed pull
request into it, apply the listed patch files and overwrite the local branch
with the result.

Overwriting the local branch is irreversible, so patchy asks first unless
--yes is passed. Without a terminal the answer is no.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, flags, func(ctx *runtime.Context) error {
				cfg, err := config.Load(ctx.RepoRoot)
				if err != nil {
					return err
				}
				return run.Action(ctx, cfg, run.Options{
					Yes:         yes,
					AutoResolve: autoResolve,
					CloneBase:   os.Getenv("PATCHY_CLONE_BASE"),
					Confirm:     confirm,
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Overwrite the local branch without asking")
	cmd.Flags().BoolVar(&autoResolve, "auto-resolve", false, "Keep the current side of conflicts that only touch Markdown files instead of skipping the pull request")

	return cmd
}
