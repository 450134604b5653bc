// Package collapse keeps expand/collapse state for tree nodes across frames.
package collapse

import "github.com/vanderheijden86/sceneview/pkg/identity"

// DefaultOpen is the state reported for an ID that has never been set.
const DefaultOpen = true

// Store maps node identities to their expanded state.
//
// Entries are never pruned: a node that is renamed, moved or removed leaves
// its old entry behind. The store is bounded by the distinct IDs ever seen
// and lives as long as the panel that owns it.
type Store struct {
	open map[identity.ID]bool
}

// New returns an empty store.
func New() *Store {
	return &Store{open: make(map[identity.ID]bool)}
}

// IsOpen reports whether id is expanded, DefaultOpen if unseen.
func (s *Store) IsOpen(id identity.ID) bool {
	if open, ok := s.open[id]; ok {
		return open
	}
	return DefaultOpen
}

// SetOpen records the expanded state for id.
func (s *Store) SetOpen(id identity.ID, open bool) {
	if s.open == nil {
		s.open = make(map[identity.ID]bool)
	}
	s.open[id] = open
}

// Toggle flips the state for id and returns the new value.
func (s *Store) Toggle(id identity.ID) bool {
	open := !s.IsOpen(id)
	s.SetOpen(id, open)
	return open
}

// Known reports whether id has an explicit entry.
func (s *Store) Known(id identity.ID) bool {
	_, ok := s.open[id]
	return ok
}

// Len returns the number of recorded entries, orphans included.
func (s *Store) Len() int {
	return len(s.open)
}

// Reset forgets every entry.
func (s *Store) Reset() {
	clear(s.open)
}
