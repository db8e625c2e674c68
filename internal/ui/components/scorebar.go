package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviz/internal/ui/theme"
)

// MaxScore is the top of the score scale.
const MaxScore = 10.0

// ScoreBar displays a 0-10 score as a horizontal bar.
type ScoreBar struct {
	Label string
	Score float64
	Width int
}

// View renders the bar followed by the numeric score.
func (b ScoreBar) View() string {
	var out string
	if b.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(b.Label) + "  "
	}

	barWidth := b.Width - lipgloss.Width(out) - 5
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * b.Score / MaxScore)
	filled = max(0, min(filled, barWidth))

	out += theme.ScoreColor(b.Score).Render(strings.Repeat("█", filled))
	out += lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))
	out += theme.ScoreColor(b.Score).Render(fmt.Sprintf(" %4.1f", b.Score))
	return out
}
