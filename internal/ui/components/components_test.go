package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviz/internal/evaluator"
	"github.com/abhisek/interviz/internal/profile"
)

func TestScoreBar_Width(t *testing.T) {
	for _, score := range []float64{0, 3.3, 10, 12, -1} {
		got := ScoreBar{Score: score, Width: 30}.View()
		if w := lipgloss.Width(got); w != 30 {
			t.Errorf("score %v: width = %d, want 30", score, w)
		}
	}
}

func TestScoreBar_ShowsScore(t *testing.T) {
	got := ScoreBar{Label: "hash", Score: 6.8, Width: 40}.View()
	if !strings.Contains(got, "6.8") || !strings.Contains(got, "hash") {
		t.Fatalf("bar missing label or score: %q", got)
	}
}

func TestEvaluation(t *testing.T) {
	ev := &evaluator.Evaluation{
		Score:           6.8,
		Feedback:        "Good",
		Gate:            evaluator.GateComposite,
		MatchedConcepts: []string{"bucket"},
		MissingConcepts: []string{"collision"},
		Coverage:        0.5,
	}
	got := Evaluation(ev, 60)
	for _, want := range []string{"6.8", "Good", "50%", "bucket", "collision"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestEvaluation_GateOmitsCoverage(t *testing.T) {
	ev := &evaluator.Evaluation{Score: 1.5, Feedback: "Short", Gate: evaluator.GateBrevity}
	if got := Evaluation(ev, 60); strings.Contains(got, "coverage") {
		t.Fatalf("gate result shows coverage: %q", got)
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(profile.Progress{}, 40); !strings.Contains(got, "No answers") {
		t.Fatalf("empty progress = %q", got)
	}

	p := profile.Progress{
		Averages:    []profile.ConceptAverage{{Concept: "hash", Average: 3.3}, {Concept: "tcp", Average: 8}},
		Weakest:     "hash",
		Recommended: []string{"Explain how a hash table works."},
	}
	got := Progress(p, 40)
	for _, want := range []string{"hash", "tcp", "3.3", "8.0", "Weakest", "Explain how a hash table works."} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
