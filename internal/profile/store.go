package profile

import (
	"math"
	"sync"

	"github.com/abhisek/interviz/internal/concept"
	"github.com/abhisek/interviz/internal/corpus"
)

// MaxRecommended caps Progress.Recommended.
const MaxRecommended = 3

// Store owns all user profiles.
type Store interface {
	// GetOrCreate returns the profile for id, creating it on first touch.
	GetOrCreate(id string) *Profile

	// Lookup returns the profile for id without creating it.
	Lookup(id string) (*Profile, bool)

	// RecordScore appends score under key when score > 0, creating the
	// profile if needed. It reports whether the score was recorded.
	RecordScore(id string, key concept.Key, score float64) bool

	// Progress summarizes the profile's history. Unknown ids yield an
	// empty Progress.
	Progress(id string) Progress
}

// ConceptAverage is one concept's mean score, rounded to one decimal.
type ConceptAverage struct {
	Concept concept.Key
	Average float64
}

// Progress is a user's weakness summary.
type Progress struct {
	// Averages lists concepts in first-scored order.
	Averages []ConceptAverage

	// Weakest is the concept with the lowest average, ties going to the
	// first-scored concept. Empty when nothing has been scored.
	Weakest concept.Key

	// Recommended holds up to MaxRecommended corpus questions about Weakest.
	Recommended []string
}

// MemoryStore keeps profiles in memory for the lifetime of the process.
type MemoryStore struct {
	corpus *corpus.Corpus

	mu       sync.RWMutex
	profiles map[string]*Profile
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store. c supplies recommendation
// candidates for Progress.
func NewMemoryStore(c *corpus.Corpus) *MemoryStore {
	return &MemoryStore{
		corpus:   c,
		profiles: make(map[string]*Profile),
	}
}

func (m *MemoryStore) GetOrCreate(id string) *Profile {
	if p, ok := m.Lookup(id); ok {
		return p
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[id]; ok {
		return p
	}
	p := newProfile(id)
	m.profiles[id] = p
	return p
}

func (m *MemoryStore) Lookup(id string) (*Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[id]
	return p, ok
}

func (m *MemoryStore) RecordScore(id string, key concept.Key, score float64) bool {
	if !(score > 0) {
		return false
	}
	var recorded bool
	m.GetOrCreate(id).Update(func(s *State) {
		recorded = s.RecordScore(key, score)
	})
	return recorded
}

// Len returns the number of profiles.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}

func (m *MemoryStore) Progress(id string) Progress {
	p, ok := m.Lookup(id)
	if !ok {
		return Progress{}
	}
	return Summarize(p.Snapshot(), m.corpus)
}

// Summarize computes progress from a state snapshot. c may be nil, in which
// case no questions are recommended.
func Summarize(s State, c *corpus.Corpus) Progress {
	var prog Progress

	best := math.Inf(1)
	for _, key := range s.ConceptOrder {
		avg, ok := s.Average(key)
		if !ok {
			continue
		}
		avg = math.Round(avg*10) / 10
		prog.Averages = append(prog.Averages, ConceptAverage{Concept: key, Average: avg})
		if avg < best {
			best = avg
			prog.Weakest = key
		}
	}

	if prog.Weakest == "" || c == nil {
		return prog
	}

	for _, q := range c.All() {
		if concept.Extract(q.Text) == prog.Weakest {
			prog.Recommended = append(prog.Recommended, q.Text)
			if len(prog.Recommended) == MaxRecommended {
				break
			}
		}
	}
	return prog
}
