package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store hands out per-cookie sessions and expires idle ones.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Get returns the session for id, creating a fresh one when the id is
// unknown or expired. The bool reports whether a new session was issued.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	if s, ok := st.sessions[id]; ok && now.Before(s.expiresAt) {
		s.expiresAt = now.Add(st.ttl)
		return s, false
	}

	s := &Session{
		ID:        uuid.NewString(),
		expiresAt: now.Add(st.ttl),
	}
	st.sessions[s.ID] = s
	return s, true
}

// Sweep drops expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, s := range st.sessions {
		if !now.Before(s.expiresAt) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
