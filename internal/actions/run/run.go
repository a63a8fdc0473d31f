// Package run rebuilds the local branch from an upstream branch, a list of
// pull requests and a set of patch files.
package run

import (
	"fmt"

	"patchy.dev/patchy/internal/backup"
	"patchy.dev/patchy/internal/config"
	patchyerrors "patchy.dev/patchy/internal/errors"
	"patchy.dev/patchy/internal/git"
	"patchy.dev/patchy/internal/runtime"
	"patchy.dev/patchy/internal/tui/style"
)

// DefaultCloneBase is prepended to "owner/name" to build the upstream URL
const DefaultCloneBase = "https://github.com/"

// RestoreCommitMessage is the message of the commit that brings back the configuration directory
const RestoreCommitMessage = "patchy: Restore configuration files"

// Options contains options for the run command
type Options struct {
	// Yes skips the confirmation before overwriting the local branch.
	Yes bool
	// AutoResolve resolves conflicts that only touch Markdown files by
	// keeping the current side.
	AutoResolve bool
	// CloneBase replaces DefaultCloneBase, e.g. for mirrors.
	CloneBase string
	// Confirm asks the user a yes/no question. Required unless Yes is set.
	Confirm func(message string) (bool, error)
}

// upstream is the fetched remote branch everything is merged onto
type upstream struct {
	remote   git.Remote
	branch   git.Branch
	previous string
}

// Action performs the run operation
func Action(ctx *runtime.Context, cfg *config.Config, opts Options) error {
	splog := ctx.Splog

	if err := cfg.Validate(); err != nil {
		return err
	}
	if !git.IsValidBranchName(cfg.LocalBranch) {
		return fmt.Errorf("local-branch %q is not a valid branch name", cfg.LocalBranch)
	}

	configDir := config.DirPath(ctx.RepoRoot)
	entries, err := backup.Snapshot(configDir)
	if err != nil {
		return fmt.Errorf("could not back up %s files: %w", config.Dir, err)
	}
	defer backup.Release(entries)
	splog.Debug("backed up %d file(s) from %s", len(entries), configDir)

	up, err := fetchUpstream(ctx, cfg, opts)
	if err != nil {
		return err
	}

	if len(cfg.PullRequests) == 0 {
		splog.Info("You haven't specified any pull requests to fetch in your config.")
	} else {
		mergePullRequests(ctx, cfg, opts)
	}

	if err := restoreConfigDir(ctx, entries); err != nil {
		return rollback(ctx, up, "could not restore "+config.Dir, err)
	}

	applyPatches(ctx, cfg, entries)

	if err := commitConfigDir(ctx, entries); err != nil {
		return rollback(ctx, up, "could not commit "+config.Dir, err)
	}

	tempBranch := git.UniqueAlias("temp-branch")
	if err := git.CreateAndSwitchBranch(ctx, ctx.Runner, tempBranch); err != nil {
		return rollback(ctx, up, "could not create temporary branch", err)
	}

	if err := git.Cleanup(ctx, ctx.Runner, up.remote.LocalAlias, up.branch.LocalName); err != nil {
		splog.Warn("Could not clean up upstream remote %s: %v", up.remote.LocalAlias, err)
	}

	return overwriteLocalBranch(ctx, cfg, opts, tempBranch)
}

// fetchUpstream materializes the configured remote branch and checks it out
func fetchUpstream(ctx *runtime.Context, cfg *config.Config, opts Options) (*upstream, error) {
	cloneBase := opts.CloneBase
	if cloneBase == "" {
		cloneBase = DefaultCloneBase
	}

	branchName, pin := parseRemoteBranch(cfg.RemoteBranch)
	up := &upstream{
		remote: git.Remote{
			LocalAlias:    git.UniqueAlias(cfg.Repo),
			RepositoryURL: cloneBase + cfg.Repo + ".git",
		},
		branch: git.Branch{
			LocalName:    git.UniqueAlias(branchName),
			UpstreamName: branchName,
		},
	}

	if err := git.Materialize(ctx, ctx.Runner, up.remote, up.branch, pin); err != nil {
		rollbackErr := cleanupExisting(ctx, up.remote.LocalAlias, up.branch.LocalName)
		return nil, patchyerrors.NewFatalAbortError("could not fetch upstream branch "+branchName, err, rollbackErr)
	}

	previous, err := git.CheckoutFromRemote(ctx, ctx.Runner, up.branch.LocalName, up.remote.LocalAlias)
	if err != nil {
		return nil, patchyerrors.NewFatalAbortError("could not check out upstream branch "+branchName, err, nil)
	}
	up.previous = previous

	ctx.Splog.Success("Fetched branch %s of %s", style.ColorBranchName(branchName), up.remote.RepositoryURL)
	return up, nil
}

// rollback returns to the branch the run started on and drops the upstream.
// Every failure after the upstream was fetched goes through here.
func rollback(ctx *runtime.Context, up *upstream, step string, cause error) error {
	var rollbackErr error
	if err := git.CheckoutBranch(ctx, ctx.Runner, up.previous); err != nil {
		rollbackErr = err
	}
	if err := cleanupExisting(ctx, up.remote.LocalAlias, up.branch.LocalName); err != nil {
		if rollbackErr != nil {
			rollbackErr = fmt.Errorf("%w\n%w", rollbackErr, err)
		} else {
			rollbackErr = err
		}
	}
	return patchyerrors.NewFatalAbortError(step, cause, rollbackErr)
}

// cleanupExisting removes the remote and branch if they exist
func cleanupExisting(ctx *runtime.Context, remoteAlias, branchName string) error {
	if !git.RemoteExists(ctx, ctx.Runner, remoteAlias) {
		remoteAlias = ""
	}
	if !git.BranchExists(ctx, ctx.Runner, branchName) {
		branchName = ""
	}
	return git.Cleanup(ctx, ctx.Runner, remoteAlias, branchName)
}

// overwriteLocalBranch force-renames tempBranch onto the configured local
// branch once the user agrees
func overwriteLocalBranch(ctx *runtime.Context, cfg *config.Config, opts Options, tempBranch string) error {
	splog := ctx.Splog

	confirmed := opts.Yes
	if !confirmed {
		if opts.Confirm == nil {
			return fmt.Errorf("%w: no way to confirm overwriting %s, use --yes", patchyerrors.ErrConfirmationDeclined, cfg.LocalBranch)
		}
		answer, err := opts.Confirm(fmt.Sprintf("Overwrite branch %s? This is irreversible.", style.ColorBranchName(cfg.LocalBranch)))
		if err != nil {
			splog.Debug("confirmation failed: %v", err)
		}
		confirmed = err == nil && answer
	}

	if !confirmed {
		splog.Newline()
		splog.Info("You can still manually overwrite %s with the following command:", style.ColorBranchName(cfg.LocalBranch))
		splog.Page(fmt.Sprintf("\n%s%s\n\n", "    ", style.ColorMagenta(ManualOverwriteCommand(tempBranch, cfg.LocalBranch))))
		splog.Tip("Pass --yes to overwrite %s without being asked", cfg.LocalBranch)
		return fmt.Errorf("%w: %s was left on %s", patchyerrors.ErrConfirmationDeclined, cfg.LocalBranch, tempBranch)
	}

	if err := git.ForceRenameBranch(ctx, ctx.Runner, tempBranch, cfg.LocalBranch); err != nil {
		return err
	}
	splog.Newline()
	splog.Success("%s", style.ColorGreen("Success!"))
	return nil
}

// ManualOverwriteCommand is the command that finishes a declined run
func ManualOverwriteCommand(tempBranch, localBranch string) string {
	return fmt.Sprintf("git branch --move --force %s %s", tempBranch, localBranch)
}
