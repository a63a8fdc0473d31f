// Package testhelpers provides testing utilities for patchy,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"sort"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"
)

// ExpectBranches asserts that the repository has exactly the expected local branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	r, err := gogit.PlainOpen(repo.Dir)
	require.NoError(t, err, "Failed to open repository")

	refs, err := r.Branches()
	require.NoError(t, err, "Failed to list branches")

	actual := []string{}
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		actual = append(actual, ref.Name().Short())
		return nil
	})
	require.NoError(t, err)

	expected = append([]string{}, expected...)
	sort.Strings(actual)
	sort.Strings(expected)
	require.Equal(t, expected, actual, "Branches do not match")
}

// ExpectRemotes asserts that the repository has exactly the expected remotes.
func ExpectRemotes(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	r, err := gogit.PlainOpen(repo.Dir)
	require.NoError(t, err, "Failed to open repository")

	remotes, err := r.Remotes()
	require.NoError(t, err, "Failed to list remotes")

	actual := []string{}
	for _, remote := range remotes {
		actual = append(actual, remote.Config().Name)
	}

	expected = append([]string{}, expected...)
	sort.Strings(actual)
	sort.Strings(expected)
	require.Equal(t, expected, actual, "Remotes do not match")
}

// ExpectCommits asserts that the newest commits of branch have the expected
// subjects, newest first.
func ExpectCommits(t *testing.T, repo *GitRepo, branch string, expected []string) {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("log", "--format=%s", branch)
	require.NoError(t, err, "Failed to list commits")

	actual := splitLines(output)
	if len(actual) < len(expected) {
		require.Fail(t, "Not enough commits", "Expected %d commits, got %d: %v", len(expected), len(actual), actual)
		return
	}
	require.Equal(t, expected, actual[:len(expected)], "Commits do not match")
}
