// Package prfetch fetches pull requests as local branches without merging them.
package prfetch

import (
	"fmt"

	"patchy.dev/patchy/internal/git"
	"patchy.dev/patchy/internal/github"
	"patchy.dev/patchy/internal/pullrequest"
	"patchy.dev/patchy/internal/runtime"
	"patchy.dev/patchy/internal/tui/style"
)

// Options contains options for the pr-fetch command
type Options struct {
	// Repo is "owner/name"; the origin remote is used when empty.
	Repo string
	// Checkout checks out the branch of the first pull request.
	Checkout bool
	// PullRequests are fetched in order.
	PullRequests []pullrequest.Ref
}

// Fetched is a pull request available as a local branch
type Fetched struct {
	Ref    pullrequest.Ref
	Branch string
}

// Action fetches every pull request and returns the ones that succeeded.
// A pull request that cannot be fetched is reported and skipped.
func Action(ctx *runtime.Context, opts Options) ([]Fetched, error) {
	splog := ctx.Splog

	repo := opts.Repo
	if repo == "" {
		origin, err := originRepo(ctx)
		if err != nil {
			return nil, err
		}
		repo = origin
	}
	if _, _, err := github.SplitRepo(repo); err != nil {
		return nil, err
	}

	resolver := pullrequest.NewResolver(ctx.GitHub, ctx.Runner)
	lookups := resolver.LookupAll(ctx, repo, opts.PullRequests)

	var fetched []Fetched
	for i, ref := range opts.PullRequests {
		if lookups[i].Err != nil {
			splog.Fail("%v", lookups[i].Err)
			continue
		}
		info := lookups[i].Info

		resolved, err := resolver.Materialize(ctx, info, ref)
		if err != nil {
			splog.Fail("%v", err)
			if resolved != nil {
				cleanupFailed(ctx, resolved)
			}
			continue
		}

		// The branch stays, only the remote is ephemeral
		if err := git.RemoveRemote(ctx, ctx.Runner, resolved.Remote.LocalAlias); err != nil {
			splog.Debug("%v", err)
		}

		at := ""
		if ref.CommitPin != "" {
			at = ", at commit " + style.ColorYellow(ref.CommitPin)
		}
		splog.Success("Fetched pull request %s available at branch %s%s",
			style.Hyperlink(style.PullRequestTitle(info.Number, info.Title), info.HTMLURL),
			style.ColorBranchName(resolved.Branch.LocalName),
			at,
		)
		fetched = append(fetched, Fetched{Ref: ref, Branch: resolved.Branch.LocalName})

		if i == 0 && opts.Checkout {
			if err := git.CheckoutBranch(ctx, ctx.Runner, resolved.Branch.LocalName); err != nil {
				splog.Fail("Could not check out branch %s:\n%v", resolved.Branch.LocalName, err)
			} else {
				splog.Success("Automatically checked out the first branch: %s", style.ColorBranchName(resolved.Branch.LocalName))
			}
		}
	}
	return fetched, nil
}

// originRepo derives "owner/name" from the origin remote
func originRepo(ctx *runtime.Context) (string, error) {
	url, err := git.OriginURL(ctx, ctx.Runner)
	if err != nil {
		return "", fmt.Errorf("could not get the remote, pass it with --repo-name, e.g. helix-editor/helix: %w", err)
	}
	info, err := github.ParseGitHubRemoteURL(url)
	if err != nil {
		return "", fmt.Errorf("could not get the remote, it should be in the form e.g. helix-editor/helix: %w", err)
	}
	return info.Slug(), nil
}

// cleanupFailed removes what a failed fetch left behind
func cleanupFailed(ctx *runtime.Context, resolved *pullrequest.Resolved) {
	alias, branch := resolved.Remote.LocalAlias, resolved.Branch.LocalName
	if !git.RemoteExists(ctx, ctx.Runner, alias) {
		alias = ""
	}
	if !git.BranchExists(ctx, ctx.Runner, branch) {
		branch = ""
	}
	if err := git.Cleanup(ctx, ctx.Runner, alias, branch); err != nil {
		ctx.Splog.Warn("%v", err)
	}
}
