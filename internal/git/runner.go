package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	patchyerrors "patchy.dev/patchy/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// Runner executes git commands against a fixed repository root.
// Every package that needs git goes through a Runner; nothing else shells out.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// CommandRunner handles execution of git commands.
// Invocations are serialized: a single working tree cannot service concurrent
// checkouts or merges.
type CommandRunner struct {
	mu         sync.Mutex
	workingDir string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", patchyerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", patchyerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// DebugLogger is the subset of the splog used for tracing git invocations.
type DebugLogger interface {
	Debug(format string, args ...interface{})
}

// LoggingRunner decorates a Runner and debug-logs every invocation and failure.
type LoggingRunner struct {
	Runner Runner
	Log    DebugLogger
}

// NewLoggingRunner wraps runner so every command is traced to log.
func NewLoggingRunner(runner Runner, log DebugLogger) *LoggingRunner {
	return &LoggingRunner{Runner: runner, Log: log}
}

// Run executes the command with the wrapped runner.
func (r *LoggingRunner) Run(ctx context.Context, args ...string) (string, error) {
	r.Log.Debug("git %s", strings.Join(args, " "))
	out, err := r.Runner.Run(ctx, args...)
	if err != nil {
		r.Log.Debug("git %s failed: %s", strings.Join(args, " "), patchyerrors.Stderr(err))
	}
	return out, err
}

// Lines splits command output into non-empty lines.
func Lines(output string) []string {
	if output == "" {
		return []string{}
	}
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
