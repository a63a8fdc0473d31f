package git

import (
	"context"
	"fmt"
	"strings"
	"sync"

	patchyerrors "patchy.dev/patchy/internal/errors"
)

// ScriptedResponse is the canned result of one command line.
type ScriptedResponse struct {
	Output string
	Err    error
}

// ScriptedRunner is an in-memory Runner that returns scripted output per
// command line and records every call. Unscripted commands succeed with no output.
type ScriptedRunner struct {
	mu        sync.Mutex
	responses map[string]ScriptedResponse
	calls     []string
}

// NewScriptedRunner creates an empty ScriptedRunner
func NewScriptedRunner() *ScriptedRunner {
	return &ScriptedRunner{responses: make(map[string]ScriptedResponse)}
}

// On scripts a successful response for the space-joined command line.
func (s *ScriptedRunner) On(command, output string) *ScriptedRunner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[command] = ScriptedResponse{Output: output}
	return s
}

// Fail scripts a failing response whose captured stderr is stderr.
func (s *ScriptedRunner) Fail(command, stderr string) *ScriptedRunner {
	s.mu.Lock()
	defer s.mu.Unlock()
	args := strings.Fields(command)
	s.responses[command] = ScriptedResponse{
		Err: patchyerrors.NewGitCommandError("git", args, "", stderr, fmt.Errorf("exit status 1")),
	}
	return s
}

// Run returns the scripted response for args.
func (s *ScriptedRunner) Run(_ context.Context, args ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	command := strings.Join(args, " ")
	s.calls = append(s.calls, command)
	resp, ok := s.responses[command]
	if !ok {
		return "", nil
	}
	return resp.Output, resp.Err
}

// Calls returns every command line run so far, in order.
func (s *ScriptedRunner) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Ran reports whether the exact command line was run.
func (s *ScriptedRunner) Ran(command string) bool {
	for _, c := range s.Calls() {
		if c == command {
			return true
		}
	}
	return false
}
