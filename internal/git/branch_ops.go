package git

import (
	"context"
	"fmt"
)

// CreateAndSwitchBranch creates a branch at HEAD and switches to it
func CreateAndSwitchBranch(ctx context.Context, r Runner, branchName string) error {
	if _, err := r.Run(ctx, "switch", "--create", branchName); err != nil {
		return fmt.Errorf("failed to create and switch to branch %s: %w", branchName, err)
	}
	return nil
}

// ForceRenameBranch renames oldName to newName, discarding whatever newName pointed to
func ForceRenameBranch(ctx context.Context, r Runner, oldName, newName string) error {
	if _, err := r.Run(ctx, "branch", "--move", "--force", oldName, newName); err != nil {
		return fmt.Errorf("failed to rename branch %s to %s: %w", oldName, newName, err)
	}
	return nil
}

// DeleteBranch force-deletes a branch
func DeleteBranch(ctx context.Context, r Runner, branchName string) error {
	if _, err := r.Run(ctx, "branch", "--delete", "--force", branchName); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}
