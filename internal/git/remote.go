package git

import (
	"context"
	"errors"
	"fmt"

	patchyerrors "patchy.dev/patchy/internal/errors"
)

// Remote is an ephemeral remote added for a single fetch
type Remote struct {
	LocalAlias    string
	RepositoryURL string
}

// Branch pairs a local branch name with the ref it is fetched from
type Branch struct {
	LocalName    string
	UpstreamName string
}

// Materialize adds remote, fetches branch.UpstreamName into branch.LocalName and,
// when pin is set, force-moves the local branch to that commit.
//
// A failed pin leaves both the remote and the branch in place; the caller owns
// their cleanup.
func Materialize(ctx context.Context, r Runner, remote Remote, branch Branch, pin string) error {
	if _, err := r.Run(ctx, "remote", "add", remote.LocalAlias, remote.RepositoryURL); err != nil {
		return fmt.Errorf("could not add remote %s for %s: %w", remote.LocalAlias, remote.RepositoryURL, err)
	}

	refspec := branch.UpstreamName + ":" + branch.LocalName
	if _, err := r.Run(ctx, "fetch", remote.RepositoryURL, refspec); err != nil {
		_ = RemoveRemote(ctx, r, remote.LocalAlias)
		return fmt.Errorf("could not find branch %s of repository %s, are you sure it exists?: %w",
			branch.UpstreamName, remote.RepositoryURL, err)
	}

	if pin != "" {
		if _, err := r.Run(ctx, "branch", "--force", branch.LocalName, pin); err != nil {
			return &patchyerrors.PinError{Commit: pin, Branch: branch.LocalName, Err: err}
		}
	}
	return nil
}

// Cleanup force-deletes branchName and removes remoteAlias. Both are attempted
// even when the first fails; empty names are skipped.
func Cleanup(ctx context.Context, r Runner, remoteAlias, branchName string) error {
	var errs []error
	if branchName != "" {
		if err := DeleteBranch(ctx, r, branchName); err != nil {
			errs = append(errs, err)
		}
	}
	if remoteAlias != "" {
		if err := RemoveRemote(ctx, r, remoteAlias); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CurrentBranch returns the name of the checked out branch
func CurrentBranch(ctx context.Context, r Runner) (string, error) {
	branch, err := r.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("%w: couldn't get the current branch, this usually happens when you have no commits: %w",
			patchyerrors.ErrNoCommits, err)
	}
	return branch, nil
}

// CheckoutFromRemote checks out branchName, returning the branch that was
// checked out before. When the checkout fails the branch and remoteAlias are
// cleaned up.
func CheckoutFromRemote(ctx context.Context, r Runner, branchName, remoteAlias string) (string, error) {
	previous, err := CurrentBranch(ctx, r)
	if err != nil {
		return "", err
	}

	if _, err := r.Run(ctx, "checkout", branchName); err != nil {
		checkoutErr := fmt.Errorf("could not checkout branch %s, which belongs to remote %s: %w", branchName, remoteAlias, err)
		if cleanupErr := Cleanup(ctx, r, remoteAlias, branchName); cleanupErr != nil {
			return "", errors.Join(checkoutErr, cleanupErr)
		}
		return "", checkoutErr
	}
	return previous, nil
}

// CheckoutBranch checks out an existing branch
func CheckoutBranch(ctx context.Context, r Runner, branchName string) error {
	if _, err := r.Run(ctx, "checkout", branchName); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// RemoveRemote removes a remote
func RemoveRemote(ctx context.Context, r Runner, alias string) error {
	if _, err := r.Run(ctx, "remote", "remove", alias); err != nil {
		return fmt.Errorf("failed to remove remote %s: %w", alias, err)
	}
	return nil
}

// OriginURL returns the URL of the origin remote
func OriginURL(ctx context.Context, r Runner) (string, error) {
	url, err := r.Run(ctx, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("failed to get origin remote: %w", err)
	}
	return url, nil
}

// RemoteExists reports whether a remote with the given alias is configured
func RemoteExists(ctx context.Context, r Runner, alias string) bool {
	_, err := r.Run(ctx, "remote", "get-url", alias)
	return err == nil
}
