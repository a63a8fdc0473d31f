// Package initconfig writes an example configuration file.
package initconfig

import (
	"errors"
	"fmt"

	"patchy.dev/patchy/internal/config"
	"patchy.dev/patchy/internal/runtime"
)

// Options contains options for the init command
type Options struct {
	// Force overwrites an existing file without asking.
	Force bool
	// Confirm asks before overwriting an existing file. When nil an existing
	// file is kept.
	Confirm func(message string) (bool, error)
}

// Action creates .patchy/config.toml
func Action(ctx *runtime.Context, opts Options) error {
	splog := ctx.Splog

	overwrite := opts.Force
	if !overwrite && config.Exists(ctx.RepoRoot) {
		if opts.Confirm == nil {
			return fmt.Errorf("%w, use --force to overwrite it", config.ErrConfigExists)
		}
		answer, err := opts.Confirm(fmt.Sprintf("File %s already exists. Overwrite it?", config.FilePath(ctx.RepoRoot)))
		if err != nil {
			return err
		}
		if !answer {
			splog.Info("Did not overwrite %s", config.FilePath(ctx.RepoRoot))
			return nil
		}
		overwrite = true
	}

	path, err := config.WriteExample(ctx.RepoRoot, overwrite)
	if err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w, use --force to overwrite it", err)
		}
		return err
	}
	splog.Success("Created config file %s", path)
	return nil
}
