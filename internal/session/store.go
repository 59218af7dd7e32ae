package session

import "sync"

// Store is the in-memory collection of session states keyed by id.
// It owns State lifecycles exclusively; callers interact with states
// only through the pointers it hands out.
//
// Store is safe for concurrent use. The store lock guards only map
// lookup and insertion; it is never held while a session is being
// handled, so sessions never block each other.
type Store struct {
	mu sync.RWMutex
	m  map[string]*State
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{m: make(map[string]*State)}
}

// GetOrCreate returns the state for id, creating an unseeded state on
// first sight of the id.
func (st *Store) GetOrCreate(id string) *State {
	st.mu.RLock()
	s, ok := st.m[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.m[id]; ok { // lost the race, reuse the winner's state
		return s
	}
	s = &State{id: id}
	st.m[id] = s
	return s
}

// Peek returns the state for id without creating one.
func (st *Store) Peek(id string) (*State, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.m[id]
	return s, ok
}

// Remove deletes a session outright. Used by eviction policies;
// Reset on the engine keeps the id alive but unseeded instead.
func (st *Store) Remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.m, id)
}

// Len returns the number of tracked sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.m)
}
