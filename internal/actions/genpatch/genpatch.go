// Package genpatch turns commits into patch files in the configuration directory.
package genpatch

import (
	"fmt"
	"os"
	"path/filepath"

	"patchy.dev/patchy/internal/config"
	"patchy.dev/patchy/internal/git"
	"patchy.dev/patchy/internal/runtime"
	"patchy.dev/patchy/internal/utils"
)

// Patch is one commit to export
type Patch struct {
	Commit string
	// Name is the file name without extension; derived from the commit
	// message when empty.
	Name string
}

// Options contains options for the gen-patch command
type Options struct {
	Patches []Patch
}

// Action writes a patch file per commit and returns the paths written.
// Merge commits and commits that cannot be exported are reported and skipped.
func Action(ctx *runtime.Context, opts Options) ([]string, error) {
	splog := ctx.Splog

	if len(opts.Patches) == 0 {
		return nil, fmt.Errorf("you haven't specified any commit hashes")
	}

	dir := config.DirPath(ctx.RepoRoot)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		splog.Success("Config directory %s does not exist, creating it...", dir)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var written []string
	for _, patch := range opts.Patches {
		// Only merge commits have a second parent
		if git.IsMergeCommit(ctx, ctx.Runner, patch.Commit) {
			splog.Fail("Commit %s is a merge commit, which cannot be turned into a .patch file", patch.Commit)
			continue
		}

		path := filepath.Join(dir, patchName(ctx, patch)+config.PatchExtension)
		if err := git.FormatPatch(ctx, ctx.Runner, patch.Commit, path); err != nil {
			splog.Fail("Could not get patch output for patch %s\n%v", patch.Commit, err)
			continue
		}
		splog.Success("Created patch file at %s", path)
		written = append(written, path)
	}
	return written, nil
}

// patchName picks the custom name, then the commit message, then the commit itself
func patchName(ctx *runtime.Context, patch Patch) string {
	if patch.Name != "" && git.IsValidBranchName(patch.Name) {
		return patch.Name
	}
	message, err := ctx.Runner.Run(ctx, "log", "--format=%B", "--max-count=1", patch.Commit)
	if err == nil {
		if name := utils.PatchNameFromMessage(message); name != "" {
			return name
		}
	}
	return patch.Commit
}
