package git

import (
	"context"
	"fmt"
	"strings"
)

// ApplyPatch applies a mailbox patch file on top of the current branch.
// A failed application is aborted so the repository is not left mid-am.
func ApplyPatch(ctx context.Context, r Runner, path string) error {
	if _, err := r.Run(ctx, "am", "--keep-cr", "--signoff", path); err != nil {
		_, _ = r.Run(ctx, "am", "--abort")
		return fmt.Errorf("could not apply patch %s: %w", path, err)
	}
	return nil
}

// LastCommitSubject returns the first line of the message of HEAD
func LastCommitSubject(ctx context.Context, r Runner) (string, error) {
	return CommitSubject(ctx, r, "HEAD")
}

// CommitSubject returns the first line of the message of rev
func CommitSubject(ctx context.Context, r Runner, rev string) (string, error) {
	message, err := r.Run(ctx, "log", "-1", "--format=%B", rev)
	if err != nil {
		return "", fmt.Errorf("failed to read commit message of %s: %w", rev, err)
	}
	subject, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(subject), nil
}

// IsMergeCommit reports whether rev has a second parent
func IsMergeCommit(ctx context.Context, r Runner, rev string) bool {
	_, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", rev+"^2")
	return err == nil
}

// FormatPatch writes the single commit rev as a mailbox patch to output
func FormatPatch(ctx context.Context, r Runner, rev, output string) error {
	if _, err := r.Run(ctx, "format-patch", "-1", rev, "--output", output); err != nil {
		return fmt.Errorf("could not create patch for commit %s: %w", rev, err)
	}
	return nil
}
