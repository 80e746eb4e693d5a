// Package store provides in-memory session storage for design histories.
//
// Sessions are never evicted or persisted: history grows for the lifetime of
// the process unless a history limit is configured, and a restart starts
// empty. Stored blueprints are treated as immutable once recorded.
package store

import (
	"sync"
	"time"

	"github.com/ashureev/draftlab/internal/domain"
)

// SessionStore holds all design sessions for the process.
type SessionStore struct {
	mu           sync.RWMutex
	sessions     map[string]*domain.Session
	historyLimit int
}

// NewSessionStore creates an empty store. historyLimit caps iterations per
// session; 0 means unbounded.
func NewSessionStore(historyLimit int) *SessionStore {
	return &SessionStore{
		sessions:     make(map[string]*domain.Session),
		historyLimit: historyLimit,
	}
}

// Append records a blueprint for a session, creating the session on first
// use, and returns the stored iteration. The session key is an opaque bearer
// token; the only requirement is that it is non-empty.
func (s *SessionStore) Append(sessionID string, bp *domain.Blueprint, feedback string) (domain.Iteration, error) {
	if sessionID == "" {
		return domain.Iteration{}, &domain.ValidationError{Field: "session_id", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &domain.Session{ID: sessionID, CreatedAt: now, UpdatedAt: now}
		s.sessions[sessionID] = sess
	}
	if s.historyLimit > 0 && len(sess.Iterations) >= s.historyLimit {
		return domain.Iteration{}, domain.ErrHistoryLimit
	}
	return sess.Record(bp, feedback, now), nil
}

// History returns a copy of the session's ordered iterations.
func (s *SessionStore) History(sessionID string) ([]domain.Iteration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	out := make([]domain.Iteration, len(sess.Iterations))
	copy(out, sess.Iterations)
	return out, nil
}

// Current returns the session's latest blueprint and its version.
func (s *SessionStore) Current(sessionID string) (*domain.Blueprint, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, 0, domain.ErrSessionNotFound
	}
	cur, ok := sess.Current()
	if !ok {
		return nil, 0, domain.ErrSessionNotFound
	}
	return cur.Blueprint, cur.Version, nil
}

// Floor selects one floor plan from the current blueprint by zero-based
// index. It never mutates the session.
func (s *SessionStore) Floor(sessionID string, index int) (domain.FloorPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.FloorPlan{}, domain.ErrSessionNotFound
	}
	cur, ok := sess.Current()
	if !ok {
		return domain.FloorPlan{}, domain.ErrSessionNotFound
	}
	if index < 0 || index >= len(cur.Blueprint.FloorPlans) {
		return domain.FloorPlan{}, domain.ErrFloorOutOfRange
	}
	return cur.Blueprint.FloorPlans[index], nil
}

// Len reports the number of iterations recorded for a session, 0 when the
// session does not exist.
func (s *SessionStore) Len(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0
	}
	return len(sess.Iterations)
}
