// Package errors provides sentinel errors and custom error types for patchy.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrGitCommand indicates that an invocation of git exited unsuccessfully
	ErrGitCommand = errors.New("git command failed")

	// ErrFetch indicates that pull request metadata could not be fetched
	ErrFetch = errors.New("could not fetch pull request")

	// ErrMergeConflict indicates that a merge could not be completed without manual resolution
	ErrMergeConflict = errors.New("merge conflict")

	// ErrPinNotFound indicates that a pinned commit does not exist on the fetched branch
	ErrPinNotFound = errors.New("pinned commit not found")

	// ErrFatalAbort indicates that the run cannot proceed and was rolled back
	ErrFatalAbort = errors.New("fatal abort")

	// ErrNoCommits indicates that the repository has no history yet
	ErrNoCommits = errors.New("repository has no commits")

	// ErrNameExhausted indicates that no free branch name was found within the probe limit
	ErrNameExhausted = errors.New("no available branch name")

	// ErrConfirmationDeclined indicates that the user declined a destructive operation
	ErrConfirmationDeclined = errors.New("confirmation declined")

	// ErrInvalidPullRequest indicates that an argument is not a pull request number
	ErrInvalidPullRequest = errors.New("invalid pull request")
)

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", strings.TrimSpace(e.Stderr))
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", strings.TrimSpace(e.Stdout))
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrGitCommand
func (e *GitCommandError) Is(target error) bool {
	return target == ErrGitCommand
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// Stderr returns the captured stderr of the first GitCommandError in err's chain,
// or the empty string.
func Stderr(err error) string {
	var gitErr *GitCommandError
	if errors.As(err, &gitErr) {
		return strings.TrimSpace(gitErr.Stderr)
	}
	return ""
}

// FetchError represents a failed pull request metadata lookup
type FetchError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *FetchError) Error() string {
	msg := "could not fetch pull request"
	if e.Status != 0 {
		msg += fmt.Sprintf("\nrequest failed with status: %d", e.Status)
	}
	msg += fmt.Sprintf("\nrequested URL: %s", e.URL)
	if e.Body != "" {
		msg += fmt.Sprintf("\nresponse: %s", e.Body)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrFetch
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// MergeConflictError represents a merge that was reset instead of completed
type MergeConflictError struct {
	Branch string
	Files  []string
	Err    error
}

func (e *MergeConflictError) Error() string {
	msg := fmt.Sprintf("could not merge branch %s into the current branch", e.Branch)
	if len(e.Files) > 0 {
		msg += fmt.Sprintf(": unresolved conflict in %s", strings.Join(e.Files, ", "))
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *MergeConflictError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrMergeConflict
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

// NewMergeConflictError creates a new MergeConflictError
func NewMergeConflictError(branch string, files []string, err error) *MergeConflictError {
	return &MergeConflictError{Branch: branch, Files: files, Err: err}
}

// PinError represents a fetched branch that could not be moved to the requested commit
type PinError struct {
	Commit string
	Branch string
	Err    error
}

func (e *PinError) Error() string {
	msg := fmt.Sprintf("could not find commit %s of branch %s, are you sure it exists?", e.Commit, e.Branch)
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *PinError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrPinNotFound
func (e *PinError) Is(target error) bool {
	return target == ErrPinNotFound
}

// FatalAbortError represents a failure in a step the run cannot proceed without.
// RollbackErr is set when restoring the repository also failed.
type FatalAbortError struct {
	Step        string
	Err         error
	RollbackErr error
}

func (e *FatalAbortError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Step, e.Err)
	if e.RollbackErr != nil {
		msg += fmt.Sprintf("\nrollback was incomplete: %v", e.RollbackErr)
	}
	return msg
}

func (e *FatalAbortError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrFatalAbort
func (e *FatalAbortError) Is(target error) bool {
	return target == ErrFatalAbort
}

// NewFatalAbortError creates a new FatalAbortError
func NewFatalAbortError(step string, err, rollbackErr error) *FatalAbortError {
	return &FatalAbortError{Step: step, Err: err, RollbackErr: rollbackErr}
}
