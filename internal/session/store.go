package session

import (
	"sort"
	"sync"
)

// entry pairs a session state with its turn lock.
type entry struct {
	mu    sync.Mutex
	state *State
}

// Store holds all live sessions. Sessions are independent and may be
// processed concurrently; each session is protected by its own lock so a
// turn has exclusive ownership of its state from acquisition to release.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

// Acquire returns the state for sessionID, creating it if needed, with the
// session's turn lock held. The caller must invoke release when the turn
// completes. Two concurrent turns on the same session serialize here;
// turns on different sessions do not contend.
func (s *Store) Acquire(sessionID string) (state *State, release func()) {
	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	if !ok {
		e = &entry{state: New(sessionID)}
		s.sessions[sessionID] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	return e.state, e.mu.Unlock
}

// Peek returns the state for sessionID without taking its turn lock, or
// nil if the session does not exist. Only safe when no turn can be in
// flight; concurrent readers must go through Acquire.
func (s *Store) Peek(sessionID string) *State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.sessions[sessionID]; ok {
		return e.state
	}
	return nil
}

// Sessions returns the sorted ids of all known sessions.
func (s *Store) Sessions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of known sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
