package git_test

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	patchyerrors "patchy.dev/patchy/internal/errors"
	"patchy.dev/patchy/internal/git"
	"patchy.dev/patchy/testhelpers"
)

func missing(r *git.ScriptedRunner, names ...string) *git.ScriptedRunner {
	for _, name := range names {
		r.Fail("rev-parse --verify refs/heads/"+name, "fatal: Needed a single revision")
	}
	return r
}

func TestUniqueAlias(t *testing.T) {
	alias := git.UniqueAlias("helix-editor/helix")
	require.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}-helix-editor/helix$`), alias)
	require.NotEqual(t, alias, git.UniqueAlias("helix-editor/helix"))
}

func TestIsValidBranchName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"main", "42/fix-thing", "release_1.2", "ünïcode"} {
		require.True(t, git.IsValidBranchName(name), name)
	}
	for _, name := range []string{"", "has space", "semi;colon", "tilde~1", "x@y"} {
		require.False(t, git.IsValidBranchName(name), name)
	}
}

func TestFirstAvailableBranchName(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the candidate when it is free", func(t *testing.T) {
		r := missing(git.NewScriptedRunner(), "123/feature")
		name, err := git.FirstAvailableBranchName(ctx, r, "123/feature")
		require.NoError(t, err)
		require.Equal(t, "123/feature", name)
	})

	t.Run("prefixes a counter starting at 2", func(t *testing.T) {
		r := missing(git.NewScriptedRunner(), "3-123/feature")
		name, err := git.FirstAvailableBranchName(ctx, r, "123/feature")
		require.NoError(t, err)
		require.Equal(t, "3-123/feature", name)
		require.Equal(t, []string{
			"rev-parse --verify refs/heads/123/feature",
			"rev-parse --verify refs/heads/2-123/feature",
			"rev-parse --verify refs/heads/3-123/feature",
		}, r.Calls())
	})

	t.Run("gives up after the probe limit", func(t *testing.T) {
		r := git.NewScriptedRunner() // every branch exists
		_, err := git.FirstAvailableBranchName(ctx, r, "taken")
		require.ErrorIs(t, err, patchyerrors.ErrNameExhausted)
		require.ErrorContains(t, err, fmt.Sprintf("tried %d variants", git.MaxBranchNameProbes))

		calls := r.Calls()
		require.Len(t, calls, git.MaxBranchNameProbes)
		require.Equal(t, fmt.Sprintf("rev-parse --verify refs/heads/%d-taken", git.MaxBranchNameProbes), calls[len(calls)-1])
	})

	t.Run("against a real repository", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateBranch("1/fix"))
		require.NoError(t, scene.Repo.CreateBranch("2-1/fix"))

		r := git.NewCommandRunner(scene.Dir)
		name, err := git.FirstAvailableBranchName(ctx, r, "1/fix")
		require.NoError(t, err)
		require.Equal(t, "3-1/fix", name)
		require.False(t, git.BranchExists(ctx, r, name))
		require.True(t, git.BranchExists(ctx, r, "main"))
	})
}

func ExampleFirstAvailableBranchName() {
	r := git.NewScriptedRunner()
	r.Fail("rev-parse --verify refs/heads/2-main", "")

	name, _ := git.FirstAvailableBranchName(context.Background(), r, "main")
	fmt.Println(name)
	// Output: 2-main
}
