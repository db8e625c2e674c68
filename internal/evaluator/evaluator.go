package evaluator

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/interviz/internal/embedding"
	"github.com/abhisek/interviz/internal/logger"
)

// Composite scoring weights.
const (
	SimilarityFloor  = 0.30
	SimilarityWeight = 6.0
	CoverageWeight   = 4.0
	StructureBonus   = 0.5
	MaxScore         = 10.0

	// MaxMissingConcepts caps Evaluation.MissingConcepts.
	MaxMissingConcepts = 3
)

var exemplification = regexp.MustCompile(`\b(for example|such as|for instance)\b|\be\.g\.`)

// Config controls evaluator behavior.
type Config struct {
	// Timeout bounds each similarity call. Zero means no extra bound.
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the default evaluator config.
func DefaultConfig() Config {
	return Config{Timeout: 10 * time.Second}
}

// Evaluator grades free-text answers against reference answers.
type Evaluator struct {
	sim    Similarity
	gates  []Gate
	rules  []ConceptRule
	config Config
	log    *zap.Logger
}

// New creates an Evaluator using the default gates and concept rules.
func New(sim Similarity, cfg Config, log *zap.Logger) *Evaluator {
	return &Evaluator{
		sim:    sim,
		gates:  DefaultGates(),
		rules:  DefaultConceptRules(),
		config: cfg,
		log:    logger.OrNop(log),
	}
}

// Input carries one evaluation request through the gates. Similarities are
// computed on first use and memoized.
type Input struct {
	Question  string
	Answer    string
	Reference string

	sim     Similarity
	timeout time.Duration

	ansRef, ansQ *float64
}

// AnswerReferenceSimilarity returns similarity(answer, reference).
func (in *Input) AnswerReferenceSimilarity(ctx context.Context) (float64, error) {
	return in.memo(ctx, &in.ansRef, embedding.PurposeAnswerReference, in.Reference)
}

// AnswerQuestionSimilarity returns similarity(answer, question).
func (in *Input) AnswerQuestionSimilarity(ctx context.Context) (float64, error) {
	return in.memo(ctx, &in.ansQ, embedding.PurposeAnswerQuestion, in.Question)
}

func (in *Input) memo(ctx context.Context, slot **float64, purpose embedding.Purpose, other string) (float64, error) {
	if *slot != nil {
		return **slot, nil
	}

	if in.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, in.timeout)
		defer cancel()
	}

	v, err := in.sim.Similarity(embedding.WithPurpose(ctx, purpose), in.Answer, other)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	*slot = &v
	return v, nil
}

// Evaluate grades answer for questionText against reference. It returns
// ErrServiceUnavailable (wrapping the cause) when similarity cannot be
// computed; the caller must not treat that as a score.
func (e *Evaluator) Evaluate(ctx context.Context, questionText, answer, reference string) (*Evaluation, error) {
	in := &Input{
		Question:  questionText,
		Answer:    answer,
		Reference: reference,
		sim:       e.sim,
		timeout:   e.config.Timeout,
	}

	ev, err := RunGates(ctx, e.gates, in)
	if err != nil {
		e.log.Warn("evaluation failed", zap.Error(err),
			zap.String("question", logger.TruncateForLog(questionText, 60)))
		return nil, err
	}
	if ev != nil {
		e.log.Debug("answer short-circuited", zap.String("gate", ev.Gate), zap.Float64("score", ev.Score))
		return ev, nil
	}

	ev, err = e.composite(ctx, in)
	if err != nil {
		return nil, err
	}
	e.log.Debug("answer graded",
		zap.Float64("score", ev.Score),
		zap.Float64("coverage", ev.Coverage),
		zap.Strings("matched", ev.MatchedConcepts))
	return ev, nil
}

func (e *Evaluator) composite(ctx context.Context, in *Input) (*Evaluation, error) {
	sim, err := in.AnswerReferenceSimilarity(ctx)
	if err != nil {
		return nil, err
	}

	terms := ConceptTerms(e.rules, in.Reference)
	matched, missing := MatchTerms(terms, in.Answer)

	coverage := 0.0
	if len(terms) > 0 {
		coverage = float64(len(matched)) / float64(len(terms))
	}

	normalized := math.Max(0, (sim-SimilarityFloor)/(1-SimilarityFloor))

	bonus := 0.0
	if exemplification.MatchString(strings.ToLower(in.Answer)) {
		bonus = StructureBonus
	}

	score := clamp(round(normalized*SimilarityWeight+coverage*CoverageWeight+bonus, 1), 0, MaxScore)
	missing = firstN(missing, MaxMissingConcepts)

	return &Evaluation{
		Score:           score,
		Feedback:        Feedback(score, missing),
		Gate:            GateComposite,
		MatchedConcepts: matched,
		MissingConcepts: missing,
		Coverage:        round(coverage, 2),
	}, nil
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
