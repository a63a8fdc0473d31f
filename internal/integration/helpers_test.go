package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"patchy.dev/patchy/testhelpers"
)

// =============================================================================
// Test Shell - A helper to make integration tests read like terminal sessions
// =============================================================================

// TestShell wraps a test scene, an upstream repository and a mock GitHub API
// and runs the patchy binary against them.
type TestShell struct {
	t          *testing.T
	scene      *testhelpers.Scene
	upstream   *testhelpers.GitRepo
	github     *testhelpers.MockGitHubServerConfig
	apiURL     string
	binaryPath string
	lastOutput string
}

// NewTestShell creates a repository with one commit, an upstream "owner/repo"
// with README.md on main, and a GitHub API that knows no pull requests yet.
func NewTestShell(t *testing.T, binaryPath string) *TestShell {
	t.Helper()
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("initial", "init")
	})

	gh := testhelpers.NewMockGitHubServerConfig()
	server := testhelpers.NewMockGitHubServer(t, gh)

	upstream, err := scene.NewUpstream(gh.Slug())
	require.NoError(t, err)
	require.NoError(t, upstream.CommitFile("README.md", "upstream\n", "upstream: initial"))
	require.NoError(t, upstream.PushBranch("origin", "main"))

	return &TestShell{
		t:          t,
		scene:      scene,
		upstream:   upstream,
		github:     gh,
		apiURL:     server.URL,
		binaryPath: binaryPath,
	}
}

// Scene returns the underlying test scene for direct access when needed.
func (s *TestShell) Scene() *testhelpers.Scene {
	return s.scene
}

// =============================================================================
// Upstream
// =============================================================================

// PullRequest pushes branch head with one commit writing file to the upstream
// and registers it as pull request number.
func (s *TestShell) PullRequest(number int, head, file, content string) *TestShell {
	s.t.Helper()
	up := s.upstream
	require.NoError(s.t, up.CheckoutBranch("main"))
	require.NoError(s.t, up.CreateAndCheckoutBranch(head))
	require.NoError(s.t, up.CommitFile(file, content, "change "+file))
	require.NoError(s.t, up.PushBranch("origin", head))
	require.NoError(s.t, up.CheckoutBranch("main"))

	s.github.AddPR(testhelpers.NewSamplePullRequest(testhelpers.SamplePRData{
		Number:       number,
		Title:        "Change " + file,
		Head:         head,
		HeadCloneURL: s.scene.UpstreamURL(s.github.Slug()),
	}))
	return s
}

// =============================================================================
// Command Execution
// =============================================================================

func (s *TestShell) command(name string, args string) *exec.Cmd {
	cmd := exec.Command(name, splitArgs(args)...)
	cmd.Dir = s.scene.Dir
	cmd.Env = append(os.Environ(),
		"PATCHY_CLONE_BASE="+s.scene.Hosting,
		"PATCHY_GITHUB_API_URL="+s.apiURL,
		"PATCHY_NON_INTERACTIVE=1",
		"GITHUB_TOKEN=",
		"NO_COLOR=1",
	)
	return cmd
}

// Run executes a patchy CLI command (e.g., "pr-fetch 1 -b=mine")
func (s *TestShell) Run(args string) *TestShell {
	s.t.Helper()
	output, err := s.command(s.binaryPath, args).CombinedOutput()
	s.lastOutput = string(output)
	require.NoError(s.t, err, "$ patchy %s\n%s", args, s.lastOutput)
	return s
}

// RunExpectError executes a patchy CLI command and expects it to fail.
func (s *TestShell) RunExpectError(args string) *TestShell {
	s.t.Helper()
	output, err := s.command(s.binaryPath, args).CombinedOutput()
	s.lastOutput = string(output)
	require.Error(s.t, err, "$ patchy %s (expected error)\n%s", args, s.lastOutput)
	return s
}

// Git executes a raw git command
func (s *TestShell) Git(args string) *TestShell {
	s.t.Helper()
	output, err := s.command("git", args).CombinedOutput()
	s.lastOutput = string(output)
	require.NoError(s.t, err, "$ git %s\n%s", args, s.lastOutput)
	return s
}

// =============================================================================
// File Operations
// =============================================================================

// WriteFile creates or replaces a file relative to the repository root
func (s *TestShell) WriteFile(filename, content string) *TestShell {
	s.t.Helper()
	require.NoError(s.t, s.scene.Repo.WriteFile(filename, content), "failed to write file %s", filename)
	return s
}

// Config writes .patchy/config.toml
func (s *TestShell) Config(content string) *TestShell {
	s.t.Helper()
	return s.WriteFile(filepath.Join(".patchy", "config.toml"), content)
}

// =============================================================================
// Output Inspection
// =============================================================================

// Output returns the last command's output
func (s *TestShell) Output() string {
	return s.lastOutput
}

// OutputContains asserts the last output contains the given string
func (s *TestShell) OutputContains(substr string) *TestShell {
	s.t.Helper()
	require.Contains(s.t, s.lastOutput, substr)
	return s
}

// OutputNotContains asserts the last output does NOT contain the given string
func (s *TestShell) OutputNotContains(substr string) *TestShell {
	s.t.Helper()
	require.NotContains(s.t, s.lastOutput, substr)
	return s
}

// =============================================================================
// Assertions
// =============================================================================

// OnBranch asserts we're on the expected branch
func (s *TestShell) OnBranch(expected string) *TestShell {
	s.t.Helper()
	branch, err := s.scene.Repo.CurrentBranchName()
	require.NoError(s.t, err)
	require.Equal(s.t, expected, branch)
	return s
}

// HasBranches asserts the repo has exactly these branches
func (s *TestShell) HasBranches(branches ...string) *TestShell {
	s.t.Helper()
	testhelpers.ExpectBranches(s.t, s.scene.Repo, branches)
	return s
}

// HasCommits asserts the newest commit subjects of branch
func (s *TestShell) HasCommits(branch string, subjects ...string) *TestShell {
	s.t.Helper()
	testhelpers.ExpectCommits(s.t, s.scene.Repo, branch, subjects)
	return s
}

// FileEquals asserts the content of a file in the working tree
func (s *TestShell) FileEquals(filename, expected string) *TestShell {
	s.t.Helper()
	content, err := s.scene.Repo.ReadFile(filename)
	require.NoError(s.t, err)
	require.Equal(s.t, expected, content)
	return s
}

// Log prints a message (useful for documenting test steps)
func (s *TestShell) Log(msg string) *TestShell {
	s.t.Log(msg)
	return s
}

// =============================================================================
// Utility Functions
// =============================================================================

// splitArgs splits a command string into args, respecting quotes
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)

	for _, r := range s {
		switch {
		case r == '"' || r == '\'':
			switch {
			case inQuote && r == quoteChar:
				inQuote = false
			case !inQuote:
				inQuote = true
				quoteChar = r
			default:
				current.WriteRune(r)
			}
		case r == ' ' && !inQuote:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}
