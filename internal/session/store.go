package session

import (
	"sync"
	"time"

	"MultiplierSentinel/internal/model"
)

// Store is the append-only observation sequence of one session.
// All methods are safe for concurrent use; reads return copies.
type Store struct {
	mu           sync.RWMutex
	observations []model.Observation
	lastActive   time.Time
	now          func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return newStoreWithClock(time.Now)
}

func newStoreWithClock(now func() time.Time) *Store {
	return &Store{now: now, lastActive: now()}
}

// Add parses raw and appends it. On a ParseError the sequence is unchanged.
func (s *Store) Add(raw string) (model.Observation, error) {
	v, err := ParseObservation(raw)
	if err != nil {
		s.touch()
		return model.Observation{}, err
	}
	return s.Append(v), nil
}

// Append records v with the current time.
func (s *Store) Append(v float64) model.Observation {
	s.mu.Lock()
	defer s.mu.Unlock()

	obs := model.Observation{Value: v, RecordedAt: s.now()}
	s.observations = append(s.observations, obs)
	s.lastActive = obs.RecordedAt
	return obs
}

// Clear resets the sequence to empty.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observations = nil
	s.lastActive = s.now()
}

// History returns the most recent limit observations in chronological order.
// A non-positive limit returns the whole sequence.
func (s *Store) History(limit int) []model.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if limit > 0 && len(s.observations) > limit {
		start = len(s.observations) - limit
	}
	out := make([]model.Observation, len(s.observations)-start)
	copy(out, s.observations[start:])
	return out
}

// Values returns a snapshot of the observed values.
func (s *Store) Values() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]float64, len(s.observations))
	for i, o := range s.observations {
		out[i] = o.Value
	}
	return out
}

// Len returns the number of recorded observations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observations)
}

// LastActive returns the time of the last mutation or rejected input.
func (s *Store) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

func (s *Store) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.now()
}
