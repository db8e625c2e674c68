// Package selector picks the next practice question for a user, biased
// toward the concepts they score worst on.
package selector

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/abhisek/interviz/internal/concept"
	"github.com/abhisek/interviz/internal/corpus"
	"github.com/abhisek/interviz/internal/profile"
)

// ErrEmptyCategory is returned when a category has no questions to choose from.
var ErrEmptyCategory = errors.New("category has no questions")

// Config controls selection.
type Config struct {
	// WeakestK is how many of the lowest-priority candidates the pick is
	// drawn from.
	WeakestK int `mapstructure:"weakest-k"`

	// NeutralScore is the priority of a concept with no history.
	NeutralScore float64 `mapstructure:"neutral-score"`

	// Seed fixes the random source when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns the default selection parameters.
func DefaultConfig() Config {
	return Config{
		WeakestK:     3,
		NeutralScore: 5.0,
	}
}

// Validate checks the selection parameters.
func (c Config) Validate() error {
	if c.WeakestK < 1 {
		return fmt.Errorf("selector weakest-k must be at least 1, got %d", c.WeakestK)
	}
	if c.NeutralScore < 0 || c.NeutralScore > 10 {
		return fmt.Errorf("selector neutral-score must be within [0, 10], got %v", c.NeutralScore)
	}
	return nil
}

// Selector chooses questions. It is safe for concurrent use.
type Selector struct {
	config Config

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Selector. When rng is nil the source is seeded from
// cfg.Seed, or randomly if that is zero.
func New(cfg Config, rng *rand.Rand) *Selector {
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return &Selector{config: cfg, rng: rng}
}

type candidate struct {
	question corpus.Question
	priority float64
}

// Next picks the next question for p from questions, the full ordered list
// of one category, and records it as served. The whole read-modify-write
// runs under the profile's lock so consecutive calls for the same user see
// each other's writes.
func (s *Selector) Next(p *profile.Profile, category string, questions []corpus.Question) (corpus.Question, error) {
	if len(questions) == 0 {
		return corpus.Question{}, ErrEmptyCategory
	}

	var chosen corpus.Question
	p.Update(func(st *profile.State) {
		pool := unused(st, category, questions)
		if len(pool) == 0 {
			st.ResetCategory(category)
			pool = append([]corpus.Question(nil), questions...)
		}

		pool = withoutLast(pool, st.LastByCategory[category])

		cands := make([]candidate, len(pool))
		for i, q := range pool {
			cands[i] = candidate{question: q, priority: s.priority(st, q)}
		}
		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].priority < cands[j].priority
		})

		k := min(s.config.WeakestK, len(cands))
		if k < 1 {
			k = 1
		}
		chosen = cands[s.intN(k)].question
		st.MarkServed(category, chosen.Text)
	})

	return chosen, nil
}

func (s *Selector) priority(st *profile.State, q corpus.Question) float64 {
	if avg, ok := st.Average(concept.Extract(q.Text)); ok {
		return avg
	}
	return s.config.NeutralScore
}

func (s *Selector) intN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

func unused(st *profile.State, category string, questions []corpus.Question) []corpus.Question {
	var pool []corpus.Question
	for _, q := range questions {
		if !st.Used(category, q.Text) {
			pool = append(pool, q)
		}
	}
	return pool
}

// withoutLast drops last from pool unless that would empty it.
func withoutLast(pool []corpus.Question, last string) []corpus.Question {
	if last == "" || len(pool) < 2 {
		return pool
	}
	out := make([]corpus.Question, 0, len(pool))
	for _, q := range pool {
		if q.Text != last {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return pool
	}
	return out
}
