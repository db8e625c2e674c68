package evaluator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	hashQuestion  = "Explain how a hash table works"
	hashReference = "A hash table maps keys to buckets using a hash function. Collisions are resolved by chaining or open addressing, giving O(1) average lookups."

	// 36 words, 2 sentences; mentions "hash" and "bucket" only.
	hashAnswer = "A hash function maps each key to a bucket index in an array. " +
		"Lookups then jump straight to that bucket instead of scanning every stored element, " +
		"which keeps things quick even when the dataset grows large."
)

// fakeSim returns canned similarities keyed by the second text.
type fakeSim struct {
	mu      sync.Mutex
	byOther map[string]float64
	err     error
	block   bool
	calls   int
}

func (f *fakeSim) Similarity(ctx context.Context, a, b string) (float64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if f.err != nil {
		return 0, f.err
	}
	if v, ok := f.byOther[b]; ok {
		return v, nil
	}
	return 0.5, nil
}

func newTestEvaluator(sim *fakeSim) *Evaluator {
	return New(sim, Config{Timeout: 50 * time.Millisecond}, nil)
}

func TestEvaluate_HashTableScenario(t *testing.T) {
	sim := &fakeSim{byOther: map[string]float64{hashReference: 0.86, hashQuestion: 0.4}}
	ev, err := newTestEvaluator(sim).Evaluate(context.Background(), hashQuestion, hashAnswer, hashReference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ev.Gate != GateComposite || !ev.Graded() {
		t.Fatalf("gate = %q, want composite", ev.Gate)
	}
	if strings.Join(ev.MatchedConcepts, ",") != "hash,bucket" {
		t.Errorf("matched = %v, want [hash bucket]", ev.MatchedConcepts)
	}
	if strings.Join(ev.MissingConcepts, ",") != "collision,o(1)" {
		t.Errorf("missing = %v, want [collision o(1)]", ev.MissingConcepts)
	}
	if ev.Coverage != 0.5 {
		t.Errorf("coverage = %v, want 0.5", ev.Coverage)
	}
	// 0.8*6 + 0.5*4 = 6.8
	if ev.Score != 6.8 {
		t.Errorf("score = %v, want 6.8", ev.Score)
	}
	want := "Good start! You're on the right track. Consider discussing: collision, o(1)."
	if ev.Feedback != want {
		t.Errorf("feedback = %q, want %q", ev.Feedback, want)
	}
}

func TestEvaluate_NoReference(t *testing.T) {
	sim := &fakeSim{}
	ev, err := newTestEvaluator(sim).Evaluate(context.Background(), "Why do you want to work here?", hashAnswer, "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ev.NoReference || ev.Score != 0 || ev.Gate != GateNoReference {
		t.Fatalf("unexpected evaluation: %+v", ev)
	}
	if ev.Feedback != "No reference answer found for this question." {
		t.Errorf("feedback = %q", ev.Feedback)
	}
	if sim.calls != 0 {
		t.Errorf("similarity called %d times", sim.calls)
	}
}

func TestEvaluate_Brevity(t *testing.T) {
	tests := []struct {
		name   string
		answer string
	}{
		{"few words", "Hash maps keys to buckets."},
		{"one long sentence", strings.Repeat("word ", 30)},
		{"empty", ""},
		{"punctuation only", "... !!! ???"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := &fakeSim{err: errors.New("must not be called")}
			ev, err := newTestEvaluator(sim).Evaluate(context.Background(), hashQuestion, tt.answer, hashReference)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ev.Score != 1.5 || ev.Gate != GateBrevity {
				t.Fatalf("got %v via %q, want 1.5 via brevity", ev.Score, ev.Gate)
			}
			if sim.calls != 0 {
				t.Errorf("similarity called %d times", sim.calls)
			}
		})
	}
}

func TestEvaluate_OffTopic(t *testing.T) {
	sim := &fakeSim{byOther: map[string]float64{hashReference: 0.19}}
	ev, err := newTestEvaluator(sim).Evaluate(context.Background(), hashQuestion, hashAnswer, hashReference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Score != 2.0 || ev.Gate != GateOffTopic {
		t.Fatalf("got %v via %q, want 2.0 via off-topic", ev.Score, ev.Gate)
	}
	if !strings.HasPrefix(ev.Feedback, "Your response appears off-topic.") {
		t.Errorf("feedback = %q", ev.Feedback)
	}
}

func TestEvaluate_EchoBySimilarity(t *testing.T) {
	sim := &fakeSim{byOther: map[string]float64{hashReference: 0.7, hashQuestion: 0.9}}
	ev, err := newTestEvaluator(sim).Evaluate(context.Background(), hashQuestion, hashAnswer, hashReference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Score != 1.8 || ev.Gate != GateEcho {
		t.Fatalf("got %v via %q, want 1.8 via echo", ev.Score, ev.Gate)
	}
}

func TestEvaluate_EchoByTokenOverlap(t *testing.T) {
	answer := strings.Repeat(hashQuestion+". ", 5)
	sim := &fakeSim{byOther: map[string]float64{hashReference: 0.7, hashQuestion: 0.1}}
	ev, err := newTestEvaluator(sim).Evaluate(context.Background(), hashQuestion, answer, hashReference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Score != 1.8 || ev.Gate != GateEcho {
		t.Fatalf("got %v via %q, want 1.8 via echo", ev.Score, ev.Gate)
	}
}

func TestEvaluate_ClampedToTen(t *testing.T) {
	answer := "A hash function spreads keys across each bucket in an array. " +
		"For example, a collision is handled by chaining so lookups stay O(1) on average " +
		"and the table resizes when the load factor grows too high."
	sim := &fakeSim{byOther: map[string]float64{hashReference: 1.0, hashQuestion: 0.3}}
	ev, err := newTestEvaluator(sim).Evaluate(context.Background(), hashQuestion, answer, hashReference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Score != 10 {
		t.Fatalf("score = %v, want 10", ev.Score)
	}
	if ev.Coverage != 1 || len(ev.MissingConcepts) != 0 {
		t.Errorf("coverage = %v missing = %v", ev.Coverage, ev.MissingConcepts)
	}
	if !strings.HasPrefix(ev.Feedback, "Excellent!") {
		t.Errorf("feedback = %q", ev.Feedback)
	}
}

func TestEvaluate_LowSimilarityFloorsAtZero(t *testing.T) {
	// 0.25 passes the off-topic gate but is below the 0.30 floor.
	sim := &fakeSim{byOther: map[string]float64{hashReference: 0.25, hashQuestion: 0.1}}
	answer := strings.Repeat("Some unrelated filler words appear in this sentence here. ", 4)
	ev, err := newTestEvaluator(sim).Evaluate(context.Background(), hashQuestion, answer, hashReference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Score != 0 {
		t.Fatalf("score = %v, want 0", ev.Score)
	}
	if !strings.HasPrefix(ev.Feedback, "Study recommended.") || !strings.HasSuffix(ev.Feedback, feedbackTip) {
		t.Errorf("feedback = %q", ev.Feedback)
	}
}

func TestEvaluate_ServiceUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	sim := &fakeSim{err: cause}
	_, err := newTestEvaluator(sim).Evaluate(context.Background(), hashQuestion, hashAnswer, hashReference)
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not wrapped: %v", err)
	}
}

func TestEvaluate_SimilarityTimeout(t *testing.T) {
	sim := &fakeSim{block: true}
	start := time.Now()
	_, err := newTestEvaluator(sim).Evaluate(context.Background(), hashQuestion, hashAnswer, hashReference)
	if !errors.Is(err, ErrServiceUnavailable) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected unavailable deadline error, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("timeout not applied")
	}
}

func TestEvaluate_SimilarityMemoized(t *testing.T) {
	sim := &fakeSim{byOther: map[string]float64{hashReference: 0.86, hashQuestion: 0.4}}
	if _, err := newTestEvaluator(sim).Evaluate(context.Background(), hashQuestion, hashAnswer, hashReference); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// answer/reference once for off-topic and scoring, answer/question once for echo.
	if sim.calls != 2 {
		t.Fatalf("similarity calls = %d, want 2", sim.calls)
	}
}

func TestEvaluate_ScoreAlwaysInRange(t *testing.T) {
	sims := []float64{-1, -0.5, 0, 0.19, 0.2, 0.3, 0.5, 0.85, 0.99, 1}
	answers := []string{"", "short", hashAnswer, strings.Repeat("for example hash bucket collision o(1). ", 10)}
	for _, s := range sims {
		for _, a := range answers {
			sim := &fakeSim{byOther: map[string]float64{hashReference: s, hashQuestion: 0}}
			ev, err := newTestEvaluator(sim).Evaluate(context.Background(), hashQuestion, a, hashReference)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ev.Score < 0 || ev.Score > 10 {
				t.Fatalf("score %v out of range (sim %v, answer %q)", ev.Score, s, a)
			}
			if ev.Coverage < 0 || ev.Coverage > 1 {
				t.Fatalf("coverage %v out of range", ev.Coverage)
			}
		}
	}
}
