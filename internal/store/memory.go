// internal/store/memory.go
//
// In-memory implementation of the session Store.
//
// Characteristics:
//   - Stores *session.Session objects keyed by session ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Delete stops the session's ticker and closes its subscribers.
//   - Sweep drops finished sessions nobody is watching.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordgrid/internal/metrics"
	"github.com/robalobadob/wordgrid/internal/session"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete stops and removes a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Len reports how many sessions are held.
	Len() int

	// Sweep stops and removes sessions that have been idle (finished and
	// unwatched) for at least grace, returning how many were removed.
	Sweep(ctx context.Context, grace time.Duration) int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                // guards sessions map
	sessions map[string]*session.Session // keyed by Session.ID()
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.sessions[s.ID()]; ok && old != s {
		old.Stop()
	}
	m.sessions[s.ID()] = s
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete stops the session and forgets it.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.mu.Unlock()
	if ok {
		s.Stop()
	}
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *memory) Sweep(ctx context.Context, grace time.Duration) int {
	now := time.Now()
	var idle []*session.Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.Idle(now, grace) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.mu.Unlock()
	for _, s := range idle {
		s.Stop()
	}
	return len(idle)
}
