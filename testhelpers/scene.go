package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene represents a test scene: a working repository plus a directory of
// bare repositories standing in for github.com.
type Scene struct {
	Dir  string
	Repo *GitRepo
	// Hosting is the clone base for upstream repositories; "<Hosting><owner>/<repo>.git"
	// is a bare repository once created with NewUpstream.
	Hosting string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository.
// Cleanup is handled by t.TempDir.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	// The git runner under test inherits the environment
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("PATCHY_NON_INTERACTIVE", "true")

	root := t.TempDir()
	dir := filepath.Join(root, "work")

	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:     dir,
		Repo:    repo,
		Hosting: filepath.Join(root, "hosting") + string(filepath.Separator),
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// UpstreamURL returns the clone URL of slug ("owner/repo") on the scene's hosting
func (s *Scene) UpstreamURL(slug string) string {
	return s.Hosting + slug + ".git"
}

// NewUpstream creates a bare repository for slug and a working clone of it
// whose "origin" is the bare repository. Commits pushed from the clone become
// fetchable through UpstreamURL.
func (s *Scene) NewUpstream(slug string) (*GitRepo, error) {
	bare := s.UpstreamURL(slug)
	if err := NewBareRepo(bare); err != nil {
		return nil, err
	}

	work, err := NewGitRepo(filepath.Join(filepath.Dir(s.Dir), "clones", slug))
	if err != nil {
		return nil, err
	}
	if err := work.AddRemote("origin", bare); err != nil {
		return nil, err
	}
	return work, nil
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}
