package graph

import "sync"

// Store maps process_id to its current graph. Replacing a graph for one
// process_id is serialized against readers of that same id, while operations
// on distinct ids never contend: each id owns its own RWMutex entry, and the
// outer lock only guards the entry map itself.
//
// A Store is an explicit dependency of every operation rather than
// process-wide state, so tests can run isolated stores side by side.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*storeEntry
}

type storeEntry struct {
	mu    sync.RWMutex
	graph *Graph
}

// NewStore creates an empty graph store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*storeEntry)}
}

func (s *Store) entry(processID string, create bool) *storeEntry {
	s.mu.RLock()
	e, ok := s.entries[processID]
	s.mu.RUnlock()
	if ok || !create {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[processID]; ok {
		return e
	}
	e = &storeEntry{}
	s.entries[processID] = e
	return e
}

// Replace installs g as the graph for its process_id, discarding any prior
// graph wholesale. Readers holding the entry's shared lock finish against
// the old graph; nobody ever observes a mix of old and new nodes.
func (s *Store) Replace(g *Graph) {
	e := s.entry(g.ProcessID(), true)
	e.mu.Lock()
	e.graph = g
	e.mu.Unlock()
}

// Get returns the current graph for processID. The shared entry lock is held
// only long enough to take the snapshot: graphs are immutable once stored, so
// the returned pointer remains safe to read after the lock is released.
func (s *Store) Get(processID string) (*Graph, error) {
	e := s.entry(processID, false)
	if e == nil {
		return nil, ErrProcessNotFound
	}
	e.mu.RLock()
	g := e.graph
	e.mu.RUnlock()
	if g == nil {
		return nil, ErrProcessNotFound
	}
	return g, nil
}

// Delete removes the graph for processID. Deleting an unknown id is a no-op.
func (s *Store) Delete(processID string) {
	s.mu.Lock()
	e, ok := s.entries[processID]
	if ok {
		delete(s.entries, processID)
	}
	s.mu.Unlock()
	if ok {
		// Let in-flight readers drain before the graph becomes unreachable.
		e.mu.Lock()
		e.graph = nil
		e.mu.Unlock()
	}
}

// Len returns the number of stored graphs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		e.mu.RLock()
		if e.graph != nil {
			n++
		}
		e.mu.RUnlock()
	}
	return n
}
