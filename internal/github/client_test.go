package github_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	patchyerrors "patchy.dev/patchy/internal/errors"
	"patchy.dev/patchy/internal/github"
	"patchy.dev/patchy/testhelpers"
)

func TestGetPullRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the fields patchy needs", func(t *testing.T) {
		cfg := testhelpers.NewMockGitHubServerConfig()
		cfg.AddPR(testhelpers.NewSamplePullRequest(testhelpers.DefaultPRData()))
		client := testhelpers.NewMockGitHubClient(t, cfg)

		info, err := client.GetPullRequest(ctx, cfg.Slug(), 123)
		require.NoError(t, err)
		require.Equal(t, &github.PullRequestInfo{
			Number:       123,
			Title:        "Test Pull Request",
			HTMLURL:      "https://github.com/owner/repo/pull/123",
			HeadRef:      "feature-branch",
			HeadCloneURL: "https://github.com/contributor/repo.git",
		}, info)
		require.Equal(t, []int{123}, cfg.Requests())
	})

	t.Run("an unknown pull request is a fetch error with the status", func(t *testing.T) {
		cfg := testhelpers.NewMockGitHubServerConfig()
		client := testhelpers.NewMockGitHubClient(t, cfg)

		_, err := client.GetPullRequest(ctx, cfg.Slug(), 5)
		require.ErrorIs(t, err, patchyerrors.ErrFetch)

		var fetchErr *patchyerrors.FetchError
		require.True(t, errors.As(err, &fetchErr))
		require.Equal(t, http.StatusNotFound, fetchErr.Status)
		require.Contains(t, fetchErr.URL, "repos/owner/repo/pulls/5")
		require.Contains(t, fetchErr.Body, "Not Found")
	})

	t.Run("server errors are fetch errors", func(t *testing.T) {
		cfg := testhelpers.NewMockGitHubServerConfig()
		cfg.ErrorStatuses[7] = http.StatusForbidden
		client := testhelpers.NewMockGitHubClient(t, cfg)

		_, err := client.GetPullRequest(ctx, cfg.Slug(), 7)
		require.ErrorIs(t, err, patchyerrors.ErrFetch)
		require.Contains(t, err.Error(), "status: 403")
	})

	t.Run("a deleted head repository cannot be fetched", func(t *testing.T) {
		data := testhelpers.DefaultPRData()
		data.HeadCloneURL = ""
		cfg := testhelpers.NewMockGitHubServerConfig()
		cfg.AddPR(testhelpers.NewSamplePullRequest(data))
		client := testhelpers.NewMockGitHubClient(t, cfg)

		_, err := client.GetPullRequest(ctx, cfg.Slug(), data.Number)
		require.ErrorIs(t, err, patchyerrors.ErrFetch)
		require.Contains(t, err.Error(), "no longer exists")
	})

	t.Run("rejects malformed repositories without a request", func(t *testing.T) {
		cfg := testhelpers.NewMockGitHubServerConfig()
		client := testhelpers.NewMockGitHubClient(t, cfg)

		_, err := client.GetPullRequest(ctx, "just-a-name", 1)
		require.Error(t, err)
		require.NotErrorIs(t, err, patchyerrors.ErrFetch)
		require.Empty(t, cfg.Requests())
	})
}

func TestSplitRepo(t *testing.T) {
	t.Parallel()

	owner, name, err := github.SplitRepo("helix-editor/helix")
	require.NoError(t, err)
	require.Equal(t, "helix-editor", owner)
	require.Equal(t, "helix", name)

	for _, repo := range []string{"", "helix", "/helix", "a/b/c"} {
		_, _, err := github.SplitRepo(repo)
		require.Error(t, err, repo)
	}
}

func TestParseGitHubRemoteURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url      string
		hostname string
		slug     string
	}{
		{"https://github.com/helix-editor/helix.git", "github.com", "helix-editor/helix"},
		{"https://github.com/helix-editor/helix", "github.com", "helix-editor/helix"},
		{"git@github.com:helix-editor/helix.git", "github.com", "helix-editor/helix"},
		{"ssh://git@github.example.com/team/tool.git", "github.example.com", "team/tool"},
		{"https://user@github.com/owner/repo.git\n", "github.com", "owner/repo"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			info, err := github.ParseGitHubRemoteURL(tt.url)
			require.NoError(t, err)
			require.Equal(t, tt.hostname, info.Hostname)
			require.Equal(t, tt.slug, info.Slug())
		})
	}

	for _, url := range []string{"not a url", "https://github.com/only-owner", "git@github.com"} {
		_, err := github.ParseGitHubRemoteURL(url)
		require.Error(t, err, url)
	}
}
