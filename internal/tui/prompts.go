package tui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// ErrInteractiveDisabled is returned when a prompt is needed but no terminal is attached
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (no terminal or PATCHY_NON_INTERACTIVE is set)")

// IsInteractive returns true if both stdin and stdout are terminals and
// PATCHY_NON_INTERACTIVE is unset
func IsInteractive() bool {
	if os.Getenv("PATCHY_NON_INTERACTIVE") != "" {
		return false
	}
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// Confirm asks a yes/no question. Without a terminal it returns
// ErrInteractiveDisabled rather than blocking on stdin.
func Confirm(message string, defaultValue bool) (bool, error) {
	if !IsInteractive() {
		return false, ErrInteractiveDisabled
	}

	var answer bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, fmt.Errorf("canceled: %w", err)
	}
	return answer, nil
}
