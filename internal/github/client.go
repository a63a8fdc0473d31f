// Package github provides a client for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"strings"
)

// PullRequestInfo contains the pull request fields patchy needs.
// This is a simplified struct to avoid coupling to go-github library
type PullRequestInfo struct {
	Number       int
	Title        string
	HTMLURL      string
	HeadRef      string
	HeadCloneURL string
}

// Client is an interface for GitHub API interactions
type Client interface {
	// GetPullRequest fetches a pull request of repo, given as "owner/name"
	GetPullRequest(ctx context.Context, repo string, number int) (*PullRequestInfo, error)
}

// SplitRepo splits "owner/name" into its parts
func SplitRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.Trim(repo, "/"), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repository %q should be in the form owner/name, e.g. helix-editor/helix", repo)
	}
	return owner, name, nil
}
