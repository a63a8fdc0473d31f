// Package git provides the git operations patchy is built from.
//
// Every command goes through a Runner: CommandRunner executes the git binary
// one command at a time, ScriptedRunner returns canned output for tests. On
// top of it the package provides:
//   - Ephemeral remotes (Materialize, Cleanup)
//   - Collision-free branch names (UniqueAlias, FirstAvailableBranchName)
//   - Squash merges with a conflict policy (MergeEngine)
//   - Patch files (ApplyPatch, FormatPatch)
//
// This package should be the only place where direct git commands are executed.
package git
