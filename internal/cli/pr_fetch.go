package cli

import (
	"github.com/spf13/cobra"

	"patchy.dev/patchy/internal/actions/prfetch"
	"patchy.dev/patchy/internal/flags"
	"patchy.dev/patchy/internal/pullrequest"
	"patchy.dev/patchy/internal/runtime"
)

var (
	prFetchBranchNameFlag = &flags.Flag{
		Short:       "-b=",
		Long:        "--branch-name=",
		Description: "Choose local name for the branch belonging to the preceding pull request",
	}
	prFetchCheckoutFlag = &flags.Flag{
		Short:       "-c",
		Long:        "--checkout",
		Description: "Check out the branch belonging to the first pull request",
	}
	prFetchRepoNameFlag = &flags.Flag{
		Short:       "-r=",
		Long:        "--repo-name=",
		Description: "Choose a github repository, using the `origin` remote of the current repository by default",
	}
)

// newPrFetchCmd creates the pr-fetch command
func newPrFetchCmd(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pr-fetch <pr>[@<commit>] [-b=<branch-name>] ... [-r=<owner/repo>] [-c]",
		Short: "Fetch pull requests into local branches",
		Long: `Fetch pull requests into local branches named <number>/<head-branch>.

A -b=<name> right after a pull request names its branch. A pull request can be
pinned to a commit with <number>@<commit>.` + flagUsage(prFetchBranchNameFlag, prFetchCheckoutFlag, prFetchRepoNameFlag),
		Example: `  patchy pr-fetch 11745 10000 9191 -c
  patchy pr-fetch 11745 -b=some-pr 9191@be8f264 -r=helix-editor/helix`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, help, err := parseArgs(cmd, global, args, prFetchBranchNameFlag, prFetchCheckoutFlag, prFetchRepoNameFlag)
			if err != nil || help {
				return err
			}

			return withContext(cmd, global, func(ctx *runtime.Context) error {
				opts := prfetch.Options{Checkout: parsed.Has(prFetchCheckoutFlag)}
				opts.Repo, _ = parsed.Value(prFetchRepoNameFlag)

				for _, positional := range parsed.Positionals {
					ref, err := pullrequest.ParseRef(positional.Value)
					if err != nil {
						ctx.Splog.Fail("%v", err)
						continue
					}
					ref.CustomBranchName, _ = positional.TrailingValue(prFetchBranchNameFlag)
					opts.PullRequests = append(opts.PullRequests, ref)
				}

				_, err := prfetch.Action(ctx, opts)
				return err
			})
		},
	}

	return cmd
}
