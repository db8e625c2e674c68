// Package components renders practice results for the terminal.
package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/interviz/internal/evaluator"
	"github.com/abhisek/interviz/internal/profile"
	"github.com/abhisek/interviz/internal/ui/theme"
)

// Evaluation renders a graded answer as a card.
func Evaluation(ev *evaluator.Evaluation, width int) string {
	var b strings.Builder

	if ev.NoReference {
		b.WriteString(theme.Hint.Render(ev.Feedback))
		return theme.Card.Render(b.String())
	}

	b.WriteString(ScoreBar{Label: "Score", Score: ev.Score, Width: width - 4}.View())
	b.WriteString("\n\n")
	b.WriteString(ev.Feedback)

	if ev.Graded() {
		b.WriteString("\n\n")
		b.WriteString(theme.Label.Render(fmt.Sprintf("Concept coverage: %.0f%%", ev.Coverage*100)))
		if len(ev.MatchedConcepts) > 0 {
			b.WriteString("\n")
			b.WriteString(theme.Matched.Render("✓ " + strings.Join(ev.MatchedConcepts, ", ")))
		}
		if len(ev.MissingConcepts) > 0 {
			b.WriteString("\n")
			b.WriteString(theme.Missing.Render("✗ " + strings.Join(ev.MissingConcepts, ", ")))
		}
	}

	return theme.Card.Render(b.String())
}

// Progress renders per-concept averages, the weakest concept and the
// recommended questions.
func Progress(p profile.Progress, width int) string {
	if len(p.Averages) == 0 {
		return theme.Hint.Render("No answers recorded yet.")
	}

	labelWidth := 0
	for _, a := range p.Averages {
		labelWidth = max(labelWidth, len(a.Concept))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Skills"))
	for _, a := range p.Averages {
		label := fmt.Sprintf("%-*s", labelWidth, a.Concept)
		b.WriteString("\n")
		b.WriteString(ScoreBar{Label: label, Score: a.Average, Width: width}.View())
	}

	if p.Weakest != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Label.Render("Weakest concept: "))
		b.WriteString(theme.Missing.Render(string(p.Weakest)))
	}
	if len(p.Recommended) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Label.Render("Recommended:"))
		for _, q := range p.Recommended {
			b.WriteString("\n  • " + q)
		}
	}
	return b.String()
}
