// Package profile tracks per-user adaptive state: concept score history
// and which questions each user has already seen.
package profile

import (
	"sync"

	"github.com/abhisek/interviz/internal/concept"
)

// State is the mutable part of a profile. Access it only through
// Profile.Update or a Snapshot copy.
type State struct {
	// ConceptScores holds strictly positive scores per concept, in the
	// order they were recorded.
	ConceptScores map[concept.Key][]float64

	// ConceptOrder lists concepts in the order they were first scored.
	ConceptOrder []concept.Key

	// UsedByCategory is the set of questions already served per category.
	UsedByCategory map[string]map[string]bool

	// LastByCategory is the most recently served question per category.
	LastByCategory map[string]string
}

func newState() State {
	return State{
		ConceptScores:  make(map[concept.Key][]float64),
		UsedByCategory: make(map[string]map[string]bool),
		LastByCategory: make(map[string]string),
	}
}

// RecordScore appends score to the concept's history when score > 0.
// It reports whether the score was recorded.
func (s *State) RecordScore(key concept.Key, score float64) bool {
	if !(score > 0) {
		return false
	}
	if _, ok := s.ConceptScores[key]; !ok {
		s.ConceptOrder = append(s.ConceptOrder, key)
	}
	s.ConceptScores[key] = append(s.ConceptScores[key], score)
	return true
}

// Average returns the mean recorded score for key, or false if the concept
// has no history.
func (s State) Average(key concept.Key) (float64, bool) {
	scores := s.ConceptScores[key]
	if len(scores) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	return sum / float64(len(scores)), true
}

// Used reports whether question was already served in category.
func (s State) Used(category, question string) bool {
	return s.UsedByCategory[category][question]
}

// MarkServed records question as served and as the last question in category.
func (s *State) MarkServed(category, question string) {
	used := s.UsedByCategory[category]
	if used == nil {
		used = make(map[string]bool)
		s.UsedByCategory[category] = used
	}
	used[question] = true
	s.LastByCategory[category] = question
}

// ResetCategory forgets which questions were served in category. The last
// question is kept so the next pick can still avoid an immediate repeat.
func (s *State) ResetCategory(category string) {
	delete(s.UsedByCategory, category)
}

func (s *State) clone() State {
	out := newState()
	out.ConceptOrder = append([]concept.Key(nil), s.ConceptOrder...)
	for k, v := range s.ConceptScores {
		out.ConceptScores[k] = append([]float64(nil), v...)
	}
	for cat, used := range s.UsedByCategory {
		cp := make(map[string]bool, len(used))
		for q := range used {
			cp[q] = true
		}
		out.UsedByCategory[cat] = cp
	}
	for cat, q := range s.LastByCategory {
		out.LastByCategory[cat] = q
	}
	return out
}

// Profile is one user's adaptive state. Writers are serialized per profile;
// different profiles never contend.
type Profile struct {
	ID string

	mu    sync.Mutex
	state State
}

func newProfile(id string) *Profile {
	return &Profile{ID: id, state: newState()}
}

// Update runs fn with exclusive access to the profile state.
func (p *Profile) Update(fn func(s *State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.state)
}

// Snapshot returns a deep copy of the current state.
func (p *Profile) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.clone()
}
