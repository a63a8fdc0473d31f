package run

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"patchy.dev/patchy/internal/backup"
	"patchy.dev/patchy/internal/config"
	patchyerrors "patchy.dev/patchy/internal/errors"
	"patchy.dev/patchy/internal/git"
	"patchy.dev/patchy/internal/github"
	"patchy.dev/patchy/internal/pullrequest"
	"patchy.dev/patchy/internal/runtime"
	"patchy.dev/patchy/internal/tui/style"
)

func parseRemoteBranch(remoteBranch string) (name, pin string) {
	return pullrequest.ParsePin(remoteBranch, pullrequest.PinSeparator)
}

// MergeCommitMessage is the message of the squash commit for one pull request
func MergeCommitMessage(upstreamBranch, repositoryURL string) string {
	return fmt.Sprintf("patchy: Merge branch %s of %s", upstreamBranch, repositoryURL)
}

// mergePullRequests merges every configured pull request in order. Failures
// are reported and skipped.
func mergePullRequests(ctx *runtime.Context, cfg *config.Config, opts Options) {
	splog := ctx.Splog

	refs := make([]pullrequest.Ref, 0, len(cfg.PullRequests))
	for _, token := range cfg.PullRequests {
		ref, err := pullrequest.ParseRef(token)
		if err != nil {
			splog.Fail("%v", err)
			continue
		}
		refs = append(refs, ref)
	}

	policy := git.PolicyManual
	if opts.AutoResolve {
		policy = git.PolicyAutoResolve
	}
	merger := git.NewMergeEngine(ctx.Runner, policy)
	resolver := pullrequest.NewResolver(ctx.GitHub, ctx.Runner)

	// Lookups run concurrently; everything touching the working tree below is sequential.
	lookups := resolver.LookupAll(ctx, cfg.Repo, refs)
	for i, ref := range refs {
		if lookups[i].Err != nil {
			splog.Fail("Could not fetch pull request %s, skipping\n%v", style.ColorCyan(ref.String()), lookups[i].Err)
			continue
		}
		mergePullRequest(ctx, resolver, merger, ref, lookups[i].Info)
	}
}

func mergePullRequest(ctx *runtime.Context, resolver *pullrequest.Resolver, merger *git.MergeEngine, ref pullrequest.Ref, info *github.PullRequestInfo) {
	splog := ctx.Splog

	resolved, err := resolver.Materialize(ctx, info, ref)
	if resolved != nil {
		defer func() {
			if cleanupErr := cleanupExisting(ctx, resolved.Remote.LocalAlias, resolved.Branch.LocalName); cleanupErr != nil {
				splog.Warn("Could not clean up after pull request %s: %v", ref, cleanupErr)
			}
		}()
	}
	if err != nil {
		splog.Fail("Could not fetch branch of pull request %s, skipping\n%s", style.ColorCyan(ref.String()), describe(err))
		return
	}

	message := MergeCommitMessage(resolved.Branch.UpstreamName, resolved.Remote.RepositoryURL)
	outcome, err := merger.Merge(ctx, resolved.Branch.LocalName, message)
	if err != nil {
		splog.Fail("Could not merge pull request %s, skipping\n%s", style.ColorCyan(ref.String()), describe(err))
		return
	}

	title := style.Hyperlink(style.PullRequestTitle(info.Number, info.Title), info.HTMLURL)
	switch outcome {
	case git.OutcomeUpToDate:
		splog.Info("Pull request %s introduces no changes", title)
	case git.OutcomeResolved:
		splog.Success("Merged pull request %s, resolving conflicts in documentation files", title)
	default:
		splog.Success("Merged pull request %s", title)
	}
	if ref.CommitPin != "" {
		splog.Debug("pull request %s pinned to %s", ref, ref.CommitPin)
	}
}

// describe renders an error with the captured stderr of the git command that
// caused it, when there is one
func describe(err error) string {
	msg := err.Error()
	if stderr := patchyerrors.Stderr(err); stderr != "" && !strings.Contains(msg, stderr) {
		msg += "\n" + stderr
	}
	return msg
}

// restoreConfigDir recreates the configuration directory and writes back the snapshot
func restoreConfigDir(ctx *runtime.Context, entries []backup.Entry) error {
	dir := config.DirPath(ctx.RepoRoot)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("could not create directory %s: %w", config.Dir, err)
	}
	if err := backup.Restore(entries, dir); err != nil {
		return fmt.Errorf("could not restore backups: %w", err)
	}
	return nil
}

// applyPatches applies every restored patch file named in the config.
// A patch that does not apply is reported and skipped.
func applyPatches(ctx *runtime.Context, cfg *config.Config, entries []backup.Entry) {
	splog := ctx.Splog
	dir := config.DirPath(ctx.RepoRoot)

	for _, entry := range entries {
		name, isPatch := strings.CutSuffix(entry.Filename, config.PatchExtension)
		if !isPatch || !cfg.HasPatch(name) {
			continue
		}

		if err := git.ApplyPatch(ctx, ctx.Runner, filepath.Join(dir, entry.Filename)); err != nil {
			splog.Fail("Could not apply patch %s, skipping\n%s", name, describe(err))
			continue
		}

		subject, err := git.LastCommitSubject(ctx, ctx.Runner)
		if err != nil {
			splog.Debug("could not read subject of patch %s: %v", name, err)
		}
		splog.Success("Applied patch %s %s", name, style.ColorCyan(subject))
	}
}

// commitConfigDir commits the restored configuration directory if anything changed
func commitConfigDir(ctx *runtime.Context, entries []backup.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := git.Stage(ctx, ctx.Runner, config.Dir); err != nil {
		return err
	}
	if !git.HasStagedChanges(ctx, ctx.Runner) {
		ctx.Splog.Debug("%s is unchanged, nothing to commit", config.Dir)
		return nil
	}
	return git.Commit(ctx, ctx.Runner, RestoreCommitMessage)
}
