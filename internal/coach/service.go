// Package coach exposes the interview practice operations independent of
// how they are transported.
package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/interviz/internal/concept"
	"github.com/abhisek/interviz/internal/corpus"
	"github.com/abhisek/interviz/internal/evaluator"
	"github.com/abhisek/interviz/internal/logger"
	"github.com/abhisek/interviz/internal/profile"
	"github.com/abhisek/interviz/internal/selector"
	"github.com/abhisek/interviz/internal/store"
)

// Evaluator grades an answer against a reference.
type Evaluator interface {
	Evaluate(ctx context.Context, questionText, answer, reference string) (*evaluator.Evaluation, error)
}

// Deps are the collaborators of a Service. Events and Logger are optional.
type Deps struct {
	Corpus    *corpus.Corpus
	Profiles  profile.Store
	Selector  *selector.Selector
	Evaluator Evaluator
	Events    store.EventRepo
	Logger    *zap.Logger
}

// Service implements question selection, answer submission and progress.
type Service struct {
	corpus    *corpus.Corpus
	profiles  profile.Store
	selector  *selector.Selector
	evaluator Evaluator
	events    store.EventRepo
	log       *zap.Logger
}

// QuestionResult is the outcome of RequestQuestion. Exactly one of Question
// and Message is set.
type QuestionResult struct {
	Question string
	Category string
	Message  string
}

// SubmitResult is the outcome of SubmitAnswer.
type SubmitResult struct {
	*evaluator.Evaluation

	// Concept is the key the score was filed under.
	Concept concept.Key

	// Recorded is true when the score entered the weakness profile.
	Recorded bool
}

// New creates a Service.
func New(d Deps) (*Service, error) {
	switch {
	case d.Corpus == nil:
		return nil, errors.New("coach: corpus is required")
	case d.Profiles == nil:
		return nil, errors.New("coach: profile store is required")
	case d.Selector == nil:
		return nil, errors.New("coach: selector is required")
	case d.Evaluator == nil:
		return nil, errors.New("coach: evaluator is required")
	}
	if d.Events == nil {
		d.Events = store.NopRepo{}
	}
	return &Service{
		corpus:    d.Corpus,
		profiles:  d.Profiles,
		selector:  d.Selector,
		evaluator: d.Evaluator,
		events:    d.Events,
		log:       logger.OrNop(d.Logger),
	}, nil
}

// Categories returns the corpus categories in file order.
func (s *Service) Categories() []string {
	return s.corpus.Categories()
}

// RequestQuestion picks the next question in category for userID. An
// unknown category yields a result carrying InvalidCategoryMessage and a
// nil error.
func (s *Service) RequestQuestion(ctx context.Context, userID, category string) (*QuestionResult, error) {
	if userID == "" {
		return nil, missing("user_id")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, missing("category")
	}

	questions, ok := s.corpus.Questions(category)
	if !ok {
		s.log.Debug("unknown category requested",
			zap.String(logger.FieldUser, userID), zap.String("category", category))
		return &QuestionResult{Category: category, Message: InvalidCategoryMessage}, nil
	}

	q, err := s.selector.Next(s.profiles.GetOrCreate(userID), category, questions)
	if err != nil {
		return nil, fmt.Errorf("select question in %q: %w", category, err)
	}

	s.log.Debug("question served",
		zap.String(logger.FieldUser, userID),
		zap.String("category", category),
		zap.String("question", logger.TruncateForLog(q.Text, 60)))

	return &QuestionResult{Question: q.Text, Category: category}, nil
}

// SubmitAnswer grades answer for questionText and files positive scores
// under the question's concept. Errors wrapping
// evaluator.ErrServiceUnavailable mean no grade was produced.
func (s *Service) SubmitAnswer(ctx context.Context, userID, questionText, answer string) (*SubmitResult, error) {
	if strings.TrimSpace(questionText) == "" {
		return nil, missing("question")
	}
	if strings.TrimSpace(answer) == "" {
		return nil, missing("answer")
	}

	reference, _ := s.corpus.Reference(questionText)

	ev, err := s.evaluator.Evaluate(ctx, questionText, answer, reference)
	if err != nil {
		return nil, err
	}

	res := &SubmitResult{Evaluation: ev, Concept: concept.Extract(questionText)}
	if userID != "" && !ev.NoReference {
		res.Recorded = s.profiles.RecordScore(userID, res.Concept, ev.Score)
	}

	s.log.Info("answer evaluated",
		zap.String(logger.FieldUser, userID),
		zap.String("concept", string(res.Concept)),
		zap.String("gate", ev.Gate),
		zap.Float64("score", ev.Score),
		zap.Bool("recorded", res.Recorded))

	if err := s.events.AppendEvaluation(ctx, store.EvaluationEventData{
		UserID:   userID,
		Question: questionText,
		Concept:  string(res.Concept),
		Gate:     ev.Gate,
		Score:    ev.Score,
		Coverage: ev.Coverage,
		Recorded: res.Recorded,
	}); err != nil {
		s.log.Warn("failed to log evaluation event", zap.Error(err))
	}

	return res, nil
}

// Progress returns userID's weakness summary.
func (s *Service) Progress(userID string) profile.Progress {
	if userID == "" {
		return profile.Progress{}
	}
	return s.profiles.Progress(userID)
}
