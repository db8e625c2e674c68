// Package theme holds the terminal palette and styles for practice output.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary = lipgloss.Color("#6366F1") // Indigo
	Accent  = lipgloss.Color("#14B8A6") // Teal
	Warn    = lipgloss.Color("#F59E0B") // Amber
	Good    = lipgloss.Color("#22C55E") // Green
	Bad     = lipgloss.Color("#F43F5E") // Rose
	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	Border  = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Question = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Matched = lipgloss.NewStyle().
		Foreground(Good)

	Missing = lipgloss.NewStyle().
		Foreground(Bad)
)

// ScoreColor picks the color for a 0-10 score.
func ScoreColor(score float64) lipgloss.Style {
	c := Bad
	switch {
	case score >= 7:
		c = Good
	case score >= 5:
		c = Warn
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
