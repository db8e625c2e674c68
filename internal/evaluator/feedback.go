package evaluator

import (
	"fmt"
	"strings"
)

const (
	feedbackNoReference = "No reference answer found for this question."
	feedbackBrevity     = "Your answer is too brief. Aim for at least 2-3 sentences (≈25+ words) covering core ideas, examples, and trade-offs."
	feedbackOffTopic    = "Your response appears off-topic. Re-read the question and address it directly with relevant details."
	feedbackEcho        = "Your answer closely mirrors the question. Provide an explanatory response with definitions, key concepts, and examples."

	feedbackTip = " Tip: Break the concept into smaller parts and explain each step."
)

// Score bands for composite feedback.
const (
	BandExcellent = 8.5
	BandStrong    = 7.0
	BandGood      = 5.0
	BandNeedsWork = 3.0
)

// Feedback returns the banded message for a composite score. missing lists
// the concepts to name, most important first.
func Feedback(score float64, missing []string) string {
	var fb string
	switch {
	case score >= BandExcellent:
		fb = "Excellent! You demonstrated deep understanding with clear examples and key concepts."
	case score >= BandStrong:
		fb = "Strong answer! You covered the core ideas well. To improve: add more specific details or real-world context."
	case score >= BandGood:
		fb = "Good start! You're on the right track."
		if len(missing) > 0 {
			fb += fmt.Sprintf(" Consider discussing: %s.", strings.Join(firstN(missing, 2), ", "))
		}
	case score >= BandNeedsWork:
		if len(missing) > 0 {
			fb = fmt.Sprintf("Needs work. Your answer misses key concepts like: %s. Review the topic and try again.",
				strings.Join(firstN(missing, 3), ", "))
		} else {
			fb = "Needs work. Review the topic and try again."
		}
	default:
		fb = "Study recommended. This response doesn't reflect understanding of the core concepts. Please review fundamentals."
	}

	if score < BandGood {
		fb += feedbackTip
	}
	return fb
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
