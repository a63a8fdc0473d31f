// Package runtime provides the execution context for patchy commands.
//
// A Context is built once at startup and passed to every action. It carries
// the repository root, the git runner, the logger and the GitHub client so
// tests can substitute any of them.
package runtime
