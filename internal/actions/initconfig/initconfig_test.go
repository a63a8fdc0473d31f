package initconfig

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"patchy.dev/patchy/internal/config"
	"patchy.dev/patchy/testhelpers/scenario"
)

func TestAction(t *testing.T) {
	t.Run("writes the example configuration", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithInitialCommit()

		require.NoError(t, Action(s.Context, Options{}))
		cfg, err := config.Load(s.Scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "helix-editor/helix", cfg.Repo)
		require.Contains(t, s.Output.String(), "Created config file")
	})

	t.Run("refuses to overwrite without a prompt", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithInitialCommit()
		s.WithConfigFile(config.File, "mine")

		err := Action(s.Context, Options{})
		require.ErrorIs(t, err, config.ErrConfigExists)
		require.ErrorContains(t, err, "--force")
		s.ExpectFile(".patchy/config.toml", "mine")
	})

	t.Run("asks before overwriting", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithInitialCommit()
		s.WithConfigFile(config.File, "mine")

		var asked string
		err := Action(s.Context, Options{Confirm: func(message string) (bool, error) {
			asked = message
			return false, nil
		}})
		require.NoError(t, err)
		require.Contains(t, asked, "already exists")
		s.ExpectFile(".patchy/config.toml", "mine")

		err = Action(s.Context, Options{Confirm: func(string) (bool, error) { return true, nil }})
		require.NoError(t, err)
		content, err := os.ReadFile(config.FilePath(s.Scene.Dir))
		require.NoError(t, err)
		require.NotEqual(t, "mine", string(content))
	})

	t.Run("force overwrites without asking", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithInitialCommit()
		s.WithConfigFile(config.File, "mine")

		err := Action(s.Context, Options{Force: true, Confirm: func(string) (bool, error) {
			t.Fatal("should not ask")
			return false, nil
		}})
		require.NoError(t, err)
		_, err = config.Load(s.Scene.Dir)
		require.NoError(t, err)
	})
}
