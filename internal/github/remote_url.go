package github

import (
	"fmt"
	"strings"
)

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// Slug returns "owner/repo"
func (r *RepoInfo) Slug() string {
	return r.Owner + "/" + r.Repo
}

// ParseGitHubRemoteURL parses a git remote URL and extracts hostname, owner, and repo
// Examples:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
func ParseGitHubRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	var hostname, path string
	if strings.Contains(remoteURL, "@") && !strings.Contains(remoteURL, "://") {
		// SSH format: git@hostname:owner/repo
		_, hostAndPath, _ := strings.Cut(remoteURL, "@")
		var ok bool
		hostname, path, ok = strings.Cut(hostAndPath, ":")
		if !ok {
			return nil, fmt.Errorf("invalid SSH remote URL: %s", remoteURL)
		}
	} else {
		// HTTPS or ssh:// format
		_, rest, ok := strings.Cut(remoteURL, "://")
		if !ok {
			return nil, fmt.Errorf("invalid remote URL: %s", remoteURL)
		}
		if _, afterUser, hasUser := strings.Cut(rest, "@"); hasUser {
			rest = afterUser
		}
		hostname, path, _ = strings.Cut(rest, "/")
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid remote URL: path must be owner/repo")
	}
	owner := parts[len(parts)-2]
	repo := parts[len(parts)-1]

	if hostname == "" || owner == "" || repo == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL")
	}

	return &RepoInfo{
		Hostname: hostname,
		Owner:    owner,
		Repo:     repo,
	}, nil
}
