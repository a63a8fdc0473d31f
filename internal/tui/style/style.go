// Package style holds the colors and glyphs used in patchy's terminal output.
package style

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// SuccessMark prefixes completed steps
func SuccessMark() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).Render("✓ ")
}

// FailMark prefixes skipped steps
func FailMark() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Render("✗ ")
}

// InfoMark prefixes informational messages
func InfoMark() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true).Render("ⓘ ")
}

// PromptMark prefixes questions
func PromptMark() string {
	return ColorDim("»")
}

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true).
		Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Render(text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("14")).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}

// ColorMagenta colors text magenta
func ColorMagenta(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("5")).
		Render(text)
}

// ColorGreen colors text bold green
func ColorGreen(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Bold(true).
		Render(text)
}

// ColorBranchName colors a branch name
func ColorBranchName(branchName string) string {
	return ColorCyan(branchName)
}

// PullRequestTitle renders "#<number> <title>"
func PullRequestTitle(number int, title string) string {
	blue := lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	return blue.Render("#"+strconv.Itoa(number)) + " " + blue.Italic(true).Render(title)
}

// Hyperlink wraps text in an OSC 8 terminal hyperlink to url
func Hyperlink(text, url string) string {
	if url == "" {
		return text
	}
	return termenv.Hyperlink(url, text)
}
