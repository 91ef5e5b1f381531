package source

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an unknown session ID.
var ErrSessionNotFound = errors.New("session not found")

// Store keeps sessions in memory for the lifetime of the process.
//
// With runs one action at a time per session, so add, remove and generate
// requests against the same session never interleave.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	mu      sync.Mutex
	session *Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

// Create registers a new empty session and returns it.
func (st *Store) Create() *Session {
	s := NewSession(uuid.NewString())
	st.mu.Lock()
	st.sessions[s.ID] = &entry{session: s}
	st.mu.Unlock()
	return s
}

// Delete forgets a session. Deleting an unknown ID is not an error.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// With runs fn with exclusive access to the session.
func (st *Store) With(id string, fn func(*Session) error) error {
	st.mu.Lock()
	e, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}
