package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGitCommandError(t *testing.T) {
	cause := fmt.Errorf("exit status 128")
	err := fmt.Errorf("could not fetch: %w", NewGitCommandError("git", []string{"fetch", "origin"}, "", "fatal: couldn't find remote ref\n", cause))

	require.ErrorIs(t, err, ErrGitCommand)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "fatal: couldn't find remote ref", Stderr(err))
	require.Contains(t, err.Error(), "git fetch origin")
	require.Empty(t, Stderr(errors.New("plain")))
}

func TestPinError(t *testing.T) {
	err := &PinError{Commit: "abc", Branch: "1/feature", Err: ErrGitCommand}
	require.ErrorIs(t, err, ErrPinNotFound)
	require.ErrorIs(t, err, ErrGitCommand)
	require.Contains(t, err.Error(), "could not find commit abc of branch 1/feature")
}

func TestMergeConflictError(t *testing.T) {
	err := NewMergeConflictError("5/feature", []string{"a.go", "b.go"}, nil)
	require.ErrorIs(t, err, ErrMergeConflict)
	require.Equal(t, "could not merge branch 5/feature into the current branch: unresolved conflict in a.go, b.go", err.Error())
}

func TestFatalAbortError(t *testing.T) {
	cause := errors.New("fetch failed")

	err := NewFatalAbortError("could not fetch upstream branch main", cause, nil)
	require.ErrorIs(t, err, ErrFatalAbort)
	require.ErrorIs(t, err, cause)
	require.NotContains(t, err.Error(), "rollback")

	err = NewFatalAbortError("step", cause, errors.New("checkout failed"))
	require.Contains(t, err.Error(), "rollback was incomplete: checkout failed")
}

func TestFetchError(t *testing.T) {
	err := &FetchError{URL: "https://api.github.com/repos/o/r/pulls/1", Status: 404, Body: "Not Found"}
	require.ErrorIs(t, err, ErrFetch)
	require.Equal(t, "could not fetch pull request\nrequest failed with status: 404\nrequested URL: https://api.github.com/repos/o/r/pulls/1\nresponse: Not Found", err.Error())
}
