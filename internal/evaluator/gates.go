package evaluator

import (
	"context"
	"regexp"
	"strings"
)

// Thresholds for the short-circuit gates.
const (
	MinWords     = 25
	MinSentences = 2

	OffTopicThreshold = 0.20
	EchoSimThreshold  = 0.85
	EchoJaccard       = 0.6

	BrevityScore  = 1.5
	OffTopicScore = 2.0
	EchoScore     = 1.8
)

// Gate is one step of the evaluation cascade. Check returns a non-nil
// Evaluation to stop the cascade, or nil to pass the answer on.
type Gate interface {
	Name() string
	Check(ctx context.Context, in *Input) (*Evaluation, error)
}

// DefaultGates returns the gates in the order they must run.
func DefaultGates() []Gate {
	return []Gate{
		&NoReferenceGate{},
		&BrevityGate{},
		&OffTopicGate{},
		&EchoGate{},
	}
}

// RunGates executes gates in order and returns the first result.
// Returns (nil, nil) when every gate passes.
func RunGates(ctx context.Context, gates []Gate, in *Input) (*Evaluation, error) {
	for _, g := range gates {
		ev, err := g.Check(ctx, in)
		if err != nil {
			return nil, err
		}
		if ev != nil {
			ev.Gate = g.Name()
			return ev, nil
		}
	}
	return nil, nil
}

// NoReferenceGate stops evaluation when the question has no reference answer.
type NoReferenceGate struct{}

func (g *NoReferenceGate) Name() string { return GateNoReference }

func (g *NoReferenceGate) Check(_ context.Context, in *Input) (*Evaluation, error) {
	if strings.TrimSpace(in.Reference) != "" {
		return nil, nil
	}
	return &Evaluation{Score: 0, Feedback: feedbackNoReference, NoReference: true}, nil
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// SentenceCount counts non-blank segments between runs of '.', '!' and '?'.
func SentenceCount(s string) int {
	n := 0
	for _, seg := range sentenceSplit.Split(s, -1) {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}

// BrevityGate rejects answers that are too short to grade.
type BrevityGate struct{}

func (g *BrevityGate) Name() string { return GateBrevity }

func (g *BrevityGate) Check(_ context.Context, in *Input) (*Evaluation, error) {
	if WordCount(in.Answer) < MinWords || SentenceCount(in.Answer) < MinSentences {
		return &Evaluation{Score: BrevityScore, Feedback: feedbackBrevity}, nil
	}
	return nil, nil
}

// OffTopicGate rejects answers unrelated to the reference.
type OffTopicGate struct{}

func (g *OffTopicGate) Name() string { return GateOffTopic }

func (g *OffTopicGate) Check(ctx context.Context, in *Input) (*Evaluation, error) {
	sim, err := in.AnswerReferenceSimilarity(ctx)
	if err != nil {
		return nil, err
	}
	if sim < OffTopicThreshold {
		return &Evaluation{Score: OffTopicScore, Feedback: feedbackOffTopic}, nil
	}
	return nil, nil
}

var shortToken = regexp.MustCompile(`\b\w{3,}\b`)

// TokenJaccard returns the Jaccard overlap of the distinct lowercased tokens
// of length three or more in a and b. Two empty token sets give 0.
func TokenJaccard(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)

	inter := 0
	for t := range ta {
		if tb[t] {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range shortToken.FindAllString(strings.ToLower(s), -1) {
		set[t] = true
	}
	return set
}

// EchoGate rejects answers that restate the question.
type EchoGate struct{}

func (g *EchoGate) Name() string { return GateEcho }

func (g *EchoGate) Check(ctx context.Context, in *Input) (*Evaluation, error) {
	if TokenJaccard(in.Answer, in.Question) > EchoJaccard {
		return &Evaluation{Score: EchoScore, Feedback: feedbackEcho}, nil
	}
	sim, err := in.AnswerQuestionSimilarity(ctx)
	if err != nil {
		return nil, err
	}
	if sim > EchoSimThreshold {
		return &Evaluation{Score: EchoScore, Feedback: feedbackEcho}, nil
	}
	return nil, nil
}
