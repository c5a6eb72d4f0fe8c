package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette colours shared by every command.
const (
	colourPrimary   = lipgloss.Color("#7C3AED") // Purple
	colourSecondary = lipgloss.Color("#06B6D4") // Cyan
	colourMuted     = lipgloss.Color("#6C7086") // Medium gray
	colourSuccess   = lipgloss.Color("#A6E3A1") // Green
	colourWarning   = lipgloss.Color("#F9E2AF") // Yellow
)

// Styles contains pre-configured lipgloss styles for command output.
type Styles struct {
	// Title style for section headers.
	Title lipgloss.Style

	// Score style for similarity values.
	Score lipgloss.Style

	// Label style for publisher tags.
	Label lipgloss.Style

	// Muted style for body previews.
	Muted lipgloss.Style

	// Success style for completion messages.
	Success lipgloss.Style

	// Warning style for degraded results.
	Warning lipgloss.Style
}

// NewStyles creates the default styles.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colourPrimary),

		Score: lipgloss.NewStyle().
			Bold(true).
			Foreground(colourSecondary),

		Label: lipgloss.NewStyle().
			Foreground(colourSecondary),

		Muted: lipgloss.NewStyle().
			Foreground(colourMuted),

		Success: lipgloss.NewStyle().
			Foreground(colourSuccess),

		Warning: lipgloss.NewStyle().
			Foreground(colourWarning),
	}
}

var styles = NewStyles()
