// Package crud implements the list-view pattern shared by every dashboard
// page: an ordered entity store, a search/filter engine, a form buffer for
// add/edit drafts and a read-only detail overlay.
package crud

import (
	"fmt"

	"github.com/starford/plantdesk/internal/apperr"
)

// Record is implemented by every page entity. Clone must return a deep copy
// so that callers never alias the store's internal state.
type Record[T any] interface {
	RecordID() string
	Clone() T
}

// Store is the authoritative, insertion-ordered collection for one page.
type Store[T Record[T]] struct {
	items []T
}

// NewStore creates a store holding deep copies of seed, in order.
func NewStore[T Record[T]](seed []T) *Store[T] {
	s := &Store[T]{items: make([]T, 0, len(seed))}
	for _, rec := range seed {
		s.items = append(s.items, rec.Clone())
	}
	return s
}

// List returns a deep copy of every record in insertion order.
func (s *Store[T]) List() []T {
	out := make([]T, len(s.items))
	for i, rec := range s.items {
		out[i] = rec.Clone()
	}
	return out
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Get returns a copy of the record with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	i := s.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return s.items[i].Clone(), true
}

// Add appends rec. It fails if rec's identifier is already present.
func (s *Store[T]) Add(rec T) error {
	if s.index(rec.RecordID()) >= 0 {
		return fmt.Errorf("crud: add %q: %w", rec.RecordID(), apperr.ErrAlreadyExists)
	}
	s.items = append(s.items, rec.Clone())
	return nil
}

// Update applies patch to the record matching id. Absent ids are a no-op
// and report false. The patch must not change the identifier.
func (s *Store[T]) Update(id string, patch func(*T)) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	next := s.items[i].Clone()
	patch(&next)
	s.items[i] = next
	return true
}

// Remove deletes the record matching id. Absent ids are a no-op.
func (s *Store[T]) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

func (s *Store[T]) index(id string) int {
	for i, rec := range s.items {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}
