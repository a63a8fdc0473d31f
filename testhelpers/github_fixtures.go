package testhelpers

import (
	"fmt"

	"github.com/google/go-github/v62/github"
)

// SamplePRData provides common PR data for testing
type SamplePRData struct {
	Number int
	Title  string
	// Head is the branch of the pull request
	Head string
	// HeadCloneURL is the repository the branch lives in
	HeadCloneURL string
	HTMLURL      string
}

// NewSamplePullRequest creates a github.PullRequest from sample data
func NewSamplePullRequest(data SamplePRData) *github.PullRequest {
	htmlURL := data.HTMLURL
	if htmlURL == "" {
		htmlURL = fmt.Sprintf("https://github.com/owner/repo/pull/%d", data.Number)
	}

	pr := &github.PullRequest{
		Number:  github.Int(data.Number),
		Title:   github.String(data.Title),
		HTMLURL: github.String(htmlURL),
		State:   github.String("open"),
		Head: &github.PullRequestBranch{
			Ref: github.String(data.Head),
		},
	}
	if data.HeadCloneURL != "" {
		pr.Head.Repo = &github.Repository{CloneURL: github.String(data.HeadCloneURL)}
	}
	return pr
}

// DefaultPRData returns a default PR data structure for testing
func DefaultPRData() SamplePRData {
	return SamplePRData{
		Number:       123,
		Title:        "Test Pull Request",
		Head:         "feature-branch",
		HeadCloneURL: "https://github.com/contributor/repo.git",
	}
}
