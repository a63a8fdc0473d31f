package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	patchyerrors "patchy.dev/patchy/internal/errors"
)

// DefaultAPIURL is the REST endpoint of github.com
const DefaultAPIURL = "https://api.github.com/"

// Options configures a RealClient
type Options struct {
	// Token authenticates requests; anonymous requests are used when empty.
	Token string
	// BaseURL overrides the REST endpoint (GitHub Enterprise, tests).
	BaseURL string
}

// OptionsFromEnv reads GITHUB_TOKEN and PATCHY_GITHUB_API_URL
func OptionsFromEnv() Options {
	return Options{
		Token:   os.Getenv("GITHUB_TOKEN"),
		BaseURL: os.Getenv("PATCHY_GITHUB_API_URL"),
	}
}

// RealClient implements Client using the real GitHub API
type RealClient struct {
	client *github.Client
}

// NewRealClient creates a new RealClient
func NewRealClient(ctx context.Context, opts Options) (*RealClient, error) {
	var httpClient *http.Client
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpClient)

	if opts.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse GitHub API URL %s: %w", opts.BaseURL, err)
		}
		client.BaseURL = baseURL
	}

	return &RealClient{client: client}, nil
}

// GetPullRequest fetches a single pull request
func (c *RealClient) GetPullRequest(ctx context.Context, repo string, number int) (*PullRequestInfo, error) {
	owner, name, err := SplitRepo(repo)
	if err != nil {
		return nil, err
	}

	requestURL := fmt.Sprintf("%srepos/%s/%s/pulls/%d", c.client.BaseURL, owner, name, number)
	pr, _, err := c.client.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return nil, toFetchError(requestURL, err)
	}

	info := toPullRequestInfo(pr)
	if info.HeadCloneURL == "" || info.HeadRef == "" {
		return nil, &patchyerrors.FetchError{
			URL:  requestURL,
			Body: "the head repository of the pull request no longer exists",
		}
	}
	return info, nil
}

func toFetchError(requestURL string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		body := ghErr.Message
		if ghErr.DocumentationURL != "" {
			body += " (" + ghErr.DocumentationURL + ")"
		}
		return &patchyerrors.FetchError{
			URL:    requestURL,
			Status: ghErr.Response.StatusCode,
			Body:   body,
			Err:    err,
		}
	}
	return &patchyerrors.FetchError{URL: requestURL, Err: err}
}

// toPullRequestInfo converts a github.PullRequest to PullRequestInfo
func toPullRequestInfo(pr *github.PullRequest) *PullRequestInfo {
	info := &PullRequestInfo{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		HTMLURL: pr.GetHTMLURL(),
	}
	if head := pr.GetHead(); head != nil {
		info.HeadRef = head.GetRef()
		info.HeadCloneURL = head.GetRepo().GetCloneURL()
	}
	return info
}
