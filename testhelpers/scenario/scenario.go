// Package scenario provides a high-level test scenario that combines a Scene,
// a mock GitHub and a runtime Context to provide a terse API for integration tests.
package scenario

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"patchy.dev/patchy/internal/config"
	"patchy.dev/patchy/internal/runtime"
	"patchy.dev/patchy/internal/tui"
	"patchy.dev/patchy/testhelpers"
)

// Scenario represents a high-level test scenario for patchy commands.
type Scenario struct {
	T       *testing.T
	Scene   *testhelpers.Scene
	GitHub  *testhelpers.MockGitHubServerConfig
	Context *runtime.Context
	Output  *bytes.Buffer
}

// NewScenario creates a new Scenario with an optional setup function.
// The GitHub mock serves the pull requests registered with WithPullRequest.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv and NewScene.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	scene := testhelpers.NewScene(t, setup)
	gh := testhelpers.NewMockGitHubServerConfig()
	client := testhelpers.NewMockGitHubClient(t, gh)

	output := &bytes.Buffer{}
	splog, err := tui.NewSplogWithConfig(tui.SplogOptions{Writer: output, Debug: true})
	require.NoError(t, err)

	return &Scenario{
		T:       t,
		Scene:   scene,
		GitHub:  gh,
		Context: runtime.NewContext(context.Background(), scene.Dir, splog, client),
		Output:  output,
	}
}

// WithInitialCommit creates an initial commit on the main branch.
func (s *Scenario) WithInitialCommit() *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.CreateChangeAndCommit("initial", "init")
	require.NoError(s.T, err)
	return s
}

// RunGit runs a git command in the scenario's repository.
func (s *Scenario) RunGit(args ...string) *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.RunGitCommand(args...)
	require.NoError(s.T, err)
	return s
}

// Checkout checks out a branch.
func (s *Scenario) Checkout(branch string) *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.CheckoutBranch(branch)
	require.NoError(s.T, err)
	return s
}

// CreateBranch creates and checks out a new branch.
func (s *Scenario) CreateBranch(name string) *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.CreateAndCheckoutBranch(name)
	require.NoError(s.T, err)
	return s
}

// WithConfigFile writes a file into the configuration directory of the working repository.
func (s *Scenario) WithConfigFile(name, content string) *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.WriteFile(filepath.Join(config.Dir, name), content)
	require.NoError(s.T, err)
	return s
}

// Upstream is an upstream repository hosted by the scene
type Upstream struct {
	s    *Scenario
	Slug string
	Repo *testhelpers.GitRepo
}

// WithUpstream creates an upstream repository for the GitHub mock's repo with
// one commit on main.
func (s *Scenario) WithUpstream() *Upstream {
	s.T.Helper()
	slug := s.GitHub.Slug()
	repo, err := s.Scene.NewUpstream(slug)
	require.NoError(s.T, err)
	require.NoError(s.T, repo.CommitFile("README.md", "upstream\n", "upstream: initial"))
	require.NoError(s.T, repo.PushBranch("origin", "main"))
	return &Upstream{s: s, Slug: slug, Repo: repo}
}

// URL returns the clone URL of the upstream
func (u *Upstream) URL() string {
	return u.s.Scene.UpstreamURL(u.Slug)
}

// CloneBase returns the prefix that turns the slug into URL
func (u *Upstream) CloneBase() string {
	return u.s.Scene.Hosting
}

// Commit commits a file on the upstream's checked out branch and pushes it.
func (u *Upstream) Commit(name, content, message string) *Upstream {
	u.s.T.Helper()
	branch, err := u.Repo.CurrentBranchName()
	require.NoError(u.s.T, err)
	require.NoError(u.s.T, u.Repo.CommitFile(name, content, message))
	require.NoError(u.s.T, u.Repo.PushBranch("origin", branch))
	return u
}

// WithPullRequest creates branch head off main in the upstream with one
// commit writing file, pushes it and registers pull request number with the
// GitHub mock. It returns the SHA of the pushed commit.
func (u *Upstream) WithPullRequest(number int, head, file, content string) string {
	u.s.T.Helper()
	require.NoError(u.s.T, u.Repo.CheckoutBranch("main"))
	require.NoError(u.s.T, u.Repo.CreateAndCheckoutBranch(head))
	require.NoError(u.s.T, u.Repo.CommitFile(file, content, fmt.Sprintf("pr %d: change %s", number, file)))
	require.NoError(u.s.T, u.Repo.PushBranch("origin", head))
	sha, err := u.Repo.GetRevision("HEAD")
	require.NoError(u.s.T, err)
	require.NoError(u.s.T, u.Repo.CheckoutBranch("main"))

	u.s.GitHub.AddPR(testhelpers.NewSamplePullRequest(testhelpers.SamplePRData{
		Number:       number,
		Title:        fmt.Sprintf("Pull request %d", number),
		Head:         head,
		HeadCloneURL: u.URL(),
	}))
	return sha
}

// ExpectFile asserts the content of a file in the working repository.
func (s *Scenario) ExpectFile(name, expected string) *Scenario {
	s.T.Helper()
	content, err := os.ReadFile(filepath.Join(s.Scene.Dir, name))
	require.NoError(s.T, err)
	require.Equal(s.T, expected, string(content))
	return s
}

// ExpectNoFile asserts that a file does not exist in the working repository.
func (s *Scenario) ExpectNoFile(name string) *Scenario {
	s.T.Helper()
	_, err := os.Stat(filepath.Join(s.Scene.Dir, name))
	require.True(s.T, os.IsNotExist(err), "expected %s not to exist", name)
	return s
}
