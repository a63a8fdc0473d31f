package git

import (
	"context"
	"fmt"
)

// Stage adds the given paths to the index
func Stage(ctx context.Context, r Runner, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	if _, err := r.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to stage %v: %w", paths, err)
	}
	return nil
}

// HasStagedChanges checks if the index differs from HEAD.
// git diff --cached --quiet exits non-zero when it does.
func HasStagedChanges(ctx context.Context, r Runner) bool {
	_, err := r.Run(ctx, "diff", "--cached", "--quiet")
	return err != nil
}

// UnmergedFiles lists the paths that still carry conflict markers in the index
func UnmergedFiles(ctx context.Context, r Runner) ([]string, error) {
	output, err := r.Run(ctx, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicting files: %w", err)
	}
	return Lines(output), nil
}

// Commit creates a commit of the staged changes with the given message
func Commit(ctx context.Context, r Runner, message string) error {
	if _, err := r.Run(ctx, "commit", "--message", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// HardReset discards all changes to tracked files and the index
func HardReset(ctx context.Context, r Runner) error {
	if _, err := r.Run(ctx, "reset", "--hard"); err != nil {
		return fmt.Errorf("failed to hard reset: %w", err)
	}
	return nil
}
