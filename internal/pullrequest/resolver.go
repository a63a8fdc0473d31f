package pullrequest

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"patchy.dev/patchy/internal/git"
	"patchy.dev/patchy/internal/github"
)

// maxConcurrentLookups bounds the number of metadata requests in flight
const maxConcurrentLookups = 4

// Resolved is a pull request materialized as a local branch
type Resolved struct {
	Ref    Ref
	Info   *github.PullRequestInfo
	Branch git.Branch
	Remote git.Remote
}

// Lookup is the outcome of fetching the metadata of one pull request
type Lookup struct {
	Info *github.PullRequestInfo
	Err  error
}

// Resolver resolves pull requests through GitHub and fetches them with git
type Resolver struct {
	GitHub github.Client
	Runner git.Runner
}

// NewResolver creates a Resolver
func NewResolver(client github.Client, runner git.Runner) *Resolver {
	return &Resolver{GitHub: client, Runner: runner}
}

// Lookup fetches the metadata of one pull request
func (r *Resolver) Lookup(ctx context.Context, repo string, number int) (*github.PullRequestInfo, error) {
	info, err := r.GitHub.GetPullRequest(ctx, repo, number)
	if err != nil {
		return nil, fmt.Errorf("could not fetch pull request #%d: %w", number, err)
	}
	return info, nil
}

// LookupAll fetches the metadata of every ref concurrently. The result at
// index i always belongs to refs[i], whatever order the requests complete in.
func (r *Resolver) LookupAll(ctx context.Context, repo string, refs []Ref) []Lookup {
	results := make([]Lookup, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, ref := range refs {
		g.Go(func() error {
			info, err := r.Lookup(gctx, repo, ref.Number)
			results[i] = Lookup{Info: info, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Materialize fetches the head branch of info into a local branch that did
// not exist before. A custom name that is taken gets a numeric prefix like
// any generated one, so an existing branch is never fetched into.
// On failure the caller owns the cleanup of the returned remote and branch.
func (r *Resolver) Materialize(ctx context.Context, info *github.PullRequestInfo, ref Ref) (*Resolved, error) {
	number := strconv.Itoa(ref.Number)

	candidate := ref.CustomBranchName
	if candidate == "" || !git.IsValidBranchName(candidate) {
		candidate = number + "/" + info.HeadRef
	}
	localName, err := git.FirstAvailableBranchName(ctx, r.Runner, candidate)
	if err != nil {
		return nil, fmt.Errorf("pull request #%s: %w", number, err)
	}

	resolved := &Resolved{
		Ref:  ref,
		Info: info,
		Branch: git.Branch{
			LocalName:    localName,
			UpstreamName: info.HeadRef,
		},
		Remote: git.Remote{
			LocalAlias:    git.UniqueAlias("pr-" + number),
			RepositoryURL: info.HeadCloneURL,
		},
	}

	if err := git.Materialize(ctx, r.Runner, resolved.Remote, resolved.Branch, ref.CommitPin); err != nil {
		return resolved, fmt.Errorf("could not add remote branch for pull request #%s: %w", number, err)
	}
	return resolved, nil
}

// Resolve looks up one pull request and materializes it
func (r *Resolver) Resolve(ctx context.Context, repo string, ref Ref) (*Resolved, error) {
	info, err := r.Lookup(ctx, repo, ref.Number)
	if err != nil {
		return nil, err
	}
	return r.Materialize(ctx, info, ref)
}
