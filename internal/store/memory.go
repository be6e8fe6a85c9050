package store

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no bulletin matches the query.
	ErrNotFound = errors.New("no bulletin found")
)

// Bulletin is one generated bulletin: the text that was spoken and where the
// audio ended up.
type Bulletin struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generatedAt"` // always UTC
	AudioPath   string    `json:"audioPath"`
	AudioBytes  int       `json:"audioBytes"`
}

// MemoryStore is a concurrency-safe in-memory history of generated bulletins,
// ordered oldest first.
type MemoryStore struct {
	mu        sync.RWMutex
	bulletins []Bulletin

	maxHistory int           // max number of bulletins to keep
	maxAge     time.Duration // optional max age
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Save appends a bulletin and enforces retention.
func (s *MemoryStore) Save(b Bulletin) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bulletins = append(s.bulletins, b)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.bulletins) > s.maxHistory {
		over := len(s.bulletins) - s.maxHistory
		s.bulletins = s.bulletins[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.bulletins); i++ {
			if !s.bulletins[i].GeneratedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(s.bulletins) {
			s.bulletins = s.bulletins[i:]
		}
	}
}

// Latest returns the most recently generated bulletin.
func (s *MemoryStore) Latest() (Bulletin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.bulletins) == 0 {
		return Bulletin{}, ErrNotFound
	}
	return s.bulletins[len(s.bulletins)-1], nil
}

// Range returns all bulletins generated between from and to (inclusive).
func (s *MemoryStore) Range(from, to time.Time) ([]Bulletin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Bulletin
	for _, b := range s.bulletins {
		if !b.GeneratedAt.Before(from) && !b.GeneratedAt.After(to) {
			result = append(result, b)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
