// Package tui provides the terminal user interface for patchy.
//
// It handles:
//   - Yes/no confirmation prompts (using survey)
//   - Structured logging and status reporting (Splog)
//   - Terminal styling, colors and hyperlinks (using lipgloss and termenv)
package tui
