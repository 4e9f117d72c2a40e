package store

import (
	"sort"
	"sync"

	"github.com/masskeeper/masskeeper/internal/models"
)

// Compile-time check that InMemoryStore implements Store.
var _ Store = (*InMemoryStore)(nil)

// InMemoryStore keeps everything in process memory. Used by tests and as
// a reference implementation of the Store semantics.
type InMemoryStore struct {
	mu           sync.RWMutex
	sessions     map[int64]models.Session
	challenges   []models.Challenge
	measurements []models.Measurement
	nextID       int64
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[int64]models.Session), nextID: 1}
}

func (s *InMemoryStore) LoadSession(userID int64) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}
	return models.NewSession(userID), nil
}

func (s *InMemoryStore) SaveSession(sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
	return nil
}

func (s *InMemoryStore) LoadLatestChallenge(userID int64) (*models.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.challenges) - 1; i >= 0; i-- {
		if s.challenges[i].UserID == userID {
			c := s.challenges[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *InMemoryStore) SaveChallenge(c models.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	s.challenges = append(s.challenges, c)
	return nil
}

func (s *InMemoryStore) DeleteChallenges(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.challenges[:0]
	for _, c := range s.challenges {
		if c.UserID != userID {
			kept = append(kept, c)
		}
	}
	s.challenges = kept
	return nil
}

func (s *InMemoryStore) AppendMeasurement(m models.Measurement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.measurements = append(s.measurements, m)
	return nil
}

func (s *InMemoryStore) QueryMeasurements(userID int64) ([]models.Measurement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Measurement
	for _, m := range s.measurements {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	// Stable sort keeps insertion order for duplicate dates.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *InMemoryStore) DeleteMeasurements(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.measurements[:0]
	for _, m := range s.measurements {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	s.measurements = kept
	return nil
}

func (s *InMemoryStore) Close() error {
	return nil
}
