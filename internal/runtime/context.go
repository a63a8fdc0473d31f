package runtime

import (
	"context"
	"fmt"

	"patchy.dev/patchy/internal/git"
	"patchy.dev/patchy/internal/github"
	"patchy.dev/patchy/internal/tui"
)

// Context provides access to the repository, output and GitHub for commands
type Context struct {
	context.Context

	RepoRoot string
	Runner   git.Runner
	Splog    *tui.Splog
	GitHub   github.Client
}

// NewContext creates a context for the repository at repoRoot. Every git
// invocation is debug-logged through splog.
func NewContext(ctx context.Context, repoRoot string, splog *tui.Splog, client github.Client) *Context {
	return &Context{
		Context:  ctx,
		RepoRoot: repoRoot,
		Runner:   git.NewLoggingRunner(git.NewCommandRunner(repoRoot), splog),
		Splog:    splog,
		GitHub:   client,
	}
}

// GetContext resolves the repository containing dir and builds a context for it.
// The GitHub client is configured from the environment.
func GetContext(ctx context.Context, dir string, splog *tui.Splog) (*Context, error) {
	repoRoot, err := git.GetRepoRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	client, err := github.NewRealClient(ctx, github.OptionsFromEnv())
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return NewContext(ctx, repoRoot, splog, client), nil
}
