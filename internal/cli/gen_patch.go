package cli

import (
	"github.com/spf13/cobra"

	"patchy.dev/patchy/internal/actions/genpatch"
	"patchy.dev/patchy/internal/flags"
	"patchy.dev/patchy/internal/runtime"
)

var genPatchNameFlag = &flags.Flag{
	Short:       "-n=",
	Long:        "--patch-filename=",
	Description: "Choose filename for the patch",
}

// newGenPatchCmd creates the gen-patch command
func newGenPatchCmd(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-patch <commit> [-n=<name>] ...",
		Short: "Generate a .patch file from commit hashes",
		Long: `Write each commit to .patchy/<name>.patch, where <name> comes from a
following -n=<name>, the commit message, or the commit hash.` + flagUsage(genPatchNameFlag),
		Example: `  patchy gen-patch 133cbaae83f710b793c98018cea697a04479bbe4
  patchy gen-patch 133cbaae -n=remove-tab 9ad5aa63 -n=add-newline`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, help, err := parseArgs(cmd, global, args, genPatchNameFlag)
			if err != nil || help {
				return err
			}

			return withContext(cmd, global, func(ctx *runtime.Context) error {
				var opts genpatch.Options
				for _, positional := range parsed.Positionals {
					name, _ := positional.TrailingValue(genPatchNameFlag)
					opts.Patches = append(opts.Patches, genpatch.Patch{Commit: positional.Value, Name: name})
				}
				_, err := genpatch.Action(ctx, opts)
				return err
			})
		},
	}

	return cmd
}
