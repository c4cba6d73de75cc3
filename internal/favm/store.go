package favm

import (
	"context"
	"fmt"
	"sync"

	"berdoz/internal/core"
)

// LoadError is returned when the backend read fails. The store keeps its
// previous snapshot.
type LoadError struct {
	Module string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Module, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader fetches the full collection.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Store is the ordered in-memory snapshot of one collection. Ids are unique
// and the most recently written record comes first.
type Store[T core.Record[T]] struct {
	mu     sync.RWMutex
	module string
	items  []T
}

// NewStore returns an empty store for the named module.
func NewStore[T core.Record[T]](module string) *Store[T] {
	return &Store[T]{module: module}
}

// Load replaces the snapshot with the loader's result. Duplicate ids keep
// their first occurrence. On error the snapshot is left untouched.
func (s *Store[T]) Load(ctx context.Context, load Loader[T]) error {
	items, err := load(ctx)
	if err != nil {
		return &LoadError{Module: s.module, Err: err}
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		id := it.GetID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, it)
	}

	s.mu.Lock()
	s.items = out
	s.mu.Unlock()
	return nil
}

// Upsert places rec at the front, replacing any record with the same id.
func (s *Store[T]) Upsert(rec T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.GetID()
	out := make([]T, 0, len(s.items)+1)
	out = append(out, rec)
	for _, it := range s.items {
		if it.GetID() != id {
			out = append(out, it)
		}
	}
	s.items = out
}

// Remove drops the record with the given id. Unknown ids are ignored.
func (s *Store[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.items {
		if it.GetID() == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current ordered records.
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
