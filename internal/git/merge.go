package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	patchyerrors "patchy.dev/patchy/internal/errors"
)

// MergePolicy decides what happens when a squash merge does not apply cleanly
type MergePolicy int

const (
	// PolicyManual resets the working tree and leaves resolution to the user.
	PolicyManual MergePolicy = iota
	// PolicyAutoResolve keeps our side of conflicts confined to allow-listed
	// file extensions and gives up on anything else.
	PolicyAutoResolve
)

// DefaultAutoResolveExtensions lists the file types PolicyAutoResolve may resolve
var DefaultAutoResolveExtensions = []string{".md"}

// MergeOutcome describes a completed merge
type MergeOutcome int

const (
	// OutcomeMerged means a commit was created for the merged branch
	OutcomeMerged MergeOutcome = iota
	// OutcomeUpToDate means the merge staged nothing and no commit was needed
	OutcomeUpToDate
	// OutcomeResolved means conflicts were resolved automatically before committing
	OutcomeResolved
)

// MergeEngine squash-merges branches into the current branch
type MergeEngine struct {
	Runner     Runner
	Policy     MergePolicy
	Extensions []string
}

// NewMergeEngine creates a MergeEngine with the given policy
func NewMergeEngine(r Runner, policy MergePolicy) *MergeEngine {
	return &MergeEngine{
		Runner:     r,
		Policy:     policy,
		Extensions: DefaultAutoResolveExtensions,
	}
}

// Merge squash-merges branch into the current branch and commits the result
// with message. A conflicting merge is reset and reported as a
// *errors.MergeConflictError unless the policy can resolve it.
func (m *MergeEngine) Merge(ctx context.Context, branch, message string) (MergeOutcome, error) {
	outcome := OutcomeMerged
	if _, mergeErr := m.Runner.Run(ctx, "merge", "--squash", branch); mergeErr != nil {
		if m.Policy != PolicyAutoResolve {
			files, _ := UnmergedFiles(ctx, m.Runner)
			return m.giveUp(ctx, branch, files, mergeErr)
		}
		if err := m.resolve(ctx, branch, mergeErr); err != nil {
			return 0, err
		}
		outcome = OutcomeResolved
	}

	if !HasStagedChanges(ctx, m.Runner) {
		return OutcomeUpToDate, nil
	}
	if err := Commit(ctx, m.Runner, message); err != nil {
		return 0, err
	}
	return outcome, nil
}

// resolve takes our version of every conflicting file, provided they are all allow-listed
func (m *MergeEngine) resolve(ctx context.Context, branch string, mergeErr error) error {
	files, err := UnmergedFiles(ctx, m.Runner)
	if err != nil || len(files) == 0 {
		_, giveUpErr := m.giveUp(ctx, branch, nil, mergeErr)
		return giveUpErr
	}

	for _, file := range files {
		if !m.allowed(file) {
			_, giveUpErr := m.giveUp(ctx, branch, []string{file}, mergeErr)
			return giveUpErr
		}
	}

	for _, file := range files {
		if _, err := m.Runner.Run(ctx, "checkout", "--ours", "--", file); err != nil {
			_, giveUpErr := m.giveUp(ctx, branch, []string{file}, err)
			return giveUpErr
		}
		if err := Stage(ctx, m.Runner, file); err != nil {
			_, giveUpErr := m.giveUp(ctx, branch, []string{file}, err)
			return giveUpErr
		}
	}
	return nil
}

func (m *MergeEngine) allowed(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	for _, allowed := range m.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (m *MergeEngine) giveUp(ctx context.Context, branch string, files []string, cause error) (MergeOutcome, error) {
	if err := HardReset(ctx, m.Runner); err != nil {
		cause = fmt.Errorf("%w (and the working tree could not be reset: %w)", cause, err)
	}
	return 0, patchyerrors.NewMergeConflictError(branch, files, cause)
}
