package liveedit

import (
	"context"
	"sync"

	"bottling-backend/internal/schedule"
)

// Store keeps live-edit sessions in memory. Sessions are ephemeral working
// copies; losing them on restart only means re-forking from the plan.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewStore constructs a Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// Get returns the session with the given id.
func (s *Store) Get(ctx context.Context, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, schedule.ErrNotFound
	}
	return session.clone(), nil
}

// Put stores or replaces a session.
func (s *Store) Put(ctx context.Context, session Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = session.clone()
	return nil
}

// Delete discards a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
