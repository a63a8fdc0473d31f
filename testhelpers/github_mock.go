package testhelpers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"

	patchygithub "patchy.dev/patchy/internal/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// PRs maps pull request numbers to the data served for them
	PRs map[int]*github.PullRequest
	// ErrorStatuses maps pull request numbers to an HTTP status to fail with
	ErrorStatuses map[int]int
	// Owner and Repo for the mock server
	Owner string
	Repo  string

	mu       sync.Mutex
	requests []int
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		PRs:           make(map[int]*github.PullRequest),
		ErrorStatuses: make(map[int]int),
		Owner:         "owner",
		Repo:          "repo",
	}
}

// Slug returns "owner/repo"
func (c *MockGitHubServerConfig) Slug() string {
	return c.Owner + "/" + c.Repo
}

// AddPR registers a pull request to serve
func (c *MockGitHubServerConfig) AddPR(pr *github.PullRequest) *MockGitHubServerConfig {
	c.PRs[pr.GetNumber()] = pr
	return c
}

// Requests returns the pull request numbers requested so far, in arrival order
func (c *MockGitHubServerConfig) Requests() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int{}, c.requests...)
}

// NewMockGitHubServer creates an httptest server that serves
// GET /repos/{owner}/{repo}/pulls/{number}
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	basePath := "/repos/" + config.Owner + "/" + config.Repo + "/pulls/"

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !strings.HasPrefix(r.URL.Path, basePath) {
			writeGitHubError(w, http.StatusNotFound, "Not Found")
			return
		}

		prNumber := extractPRNumber(r.URL.Path)
		if prNumber == 0 {
			writeGitHubError(w, http.StatusBadRequest, "Invalid PR number")
			return
		}

		config.mu.Lock()
		config.requests = append(config.requests, prNumber)
		status, failing := config.ErrorStatuses[prNumber]
		pr, exists := config.PRs[prNumber]
		config.mu.Unlock()

		if failing {
			writeGitHubError(w, status, http.StatusText(status))
			return
		}
		if !exists {
			writeGitHubError(w, http.StatusNotFound, "Not Found")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(pr)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// NewMockGitHubClient creates a patchy GitHub client backed by a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) *patchygithub.RealClient {
	t.Helper()
	server := NewMockGitHubServer(t, config)
	client, err := patchygithub.NewRealClient(context.Background(), patchygithub.Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create GitHub client: %v", err)
	}
	return client
}

func writeGitHubError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message":           message,
		"documentation_url": "https://docs.github.com/rest",
	})
}

// extractPRNumber extracts the PR number from a path like /repos/owner/repo/pulls/123
func extractPRNumber(path string) int {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 {
		return 0
	}
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return n
}
