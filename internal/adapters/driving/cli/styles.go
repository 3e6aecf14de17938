package cli

import "github.com/charmbracelet/lipgloss"

// Output styles. lipgloss drops colour automatically when stdout is not a
// terminal, so piped output stays plain.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	keyStyle = lipgloss.NewStyle().
			Width(28).
			Foreground(lipgloss.Color("#06B6D4"))
)
