package evaluator

import (
	"context"
	"errors"
)

// ErrServiceUnavailable is returned when the similarity capability fails or
// times out. No fallback score is ever substituted.
var ErrServiceUnavailable = errors.New("similarity service unavailable")

// Gate names, reported in Evaluation.Gate.
const (
	GateNoReference = "no-reference"
	GateBrevity     = "brevity"
	GateOffTopic    = "off-topic"
	GateEcho        = "echo"
	GateComposite   = "composite"
)

// Similarity scores how semantically close two texts are, in [-1, 1].
type Similarity interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Evaluation is the graded result for one answer.
type Evaluation struct {
	Score    float64
	Feedback string

	// Gate names the step that produced the score.
	Gate string

	// NoReference marks the terminal "nothing to compare against" result.
	// Such results must not be averaged into statistics.
	NoReference bool

	// Populated only by composite scoring.
	MatchedConcepts []string
	MissingConcepts []string
	Coverage        float64
}

// Graded reports whether the evaluation reflects composite scoring rather
// than a short-circuit gate.
func (e *Evaluation) Graded() bool {
	return e.Gate == GateComposite
}
