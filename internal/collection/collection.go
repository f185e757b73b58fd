// Package collection provides an in-memory snapshot of a remote collection:
// load once, filter and count in memory, and patch locally only after a
// confirmed remote write. The snapshot is never reconciled against the store
// automatically; callers that want fresh data call Invalidate.
package collection

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Store caches a remote collection keyed by entity ID. All reads after the
// first Load are served from memory. The zero value is not usable; use New.
type Store[T any] struct {
	mu     sync.Mutex
	loader func(ctx context.Context) ([]T, error)
	id     func(T) string
	less   func(a, b T) bool
	items  []T
	loaded bool
}

// New returns a Store that loads items with loader and identifies them with
// id. The loader runs at most once until Invalidate is called.
func New[T any](loader func(ctx context.Context) ([]T, error), id func(T) string) *Store[T] {
	return &Store[T]{loader: loader, id: id}
}

// WithSort sets the snapshot ordering, applied on load and kept across Upsert
// calls. Returns the store for chaining.
func (s *Store[T]) WithSort(less func(a, b T) bool) *Store[T] {
	s.less = less
	return s
}

// Items returns a copy of the collection, loading it first if needed.
func (s *Store[T]) Items(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Filter returns the items matching the predicate, loading the collection
// first if needed.
func (s *Store[T]) Filter(ctx context.Context, match func(T) bool) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for _, it := range s.items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

// Counts groups the full collection by the given status function.
func (s *Store[T]) Counts(ctx context.Context, status func(T) string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, it := range s.items {
		counts[status(it)]++
	}
	return counts, nil
}

// Upsert replaces the item with the same ID, or appends it. Call only after
// the remote write has been confirmed. A no-op if the collection has not been
// loaded yet (the next load will include the item anyway).
func (s *Store[T]) Upsert(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	id := s.id(item)
	replaced := false
	for i, it := range s.items {
		if s.id(it) == id {
			s.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, item)
	}
	if s.less != nil {
		sort.SliceStable(s.items, func(i, j int) bool { return s.less(s.items[i], s.items[j]) })
	}
}

// Remove deletes the item with the given ID from the snapshot. Call only
// after the remote delete has been confirmed.
func (s *Store[T]) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	for i, it := range s.items {
		if s.id(it) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Invalidate discards the snapshot; the next read reloads from the store.
func (s *Store[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.items = nil
}

func (s *Store[T]) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	items, err := s.loader(ctx)
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	if s.less != nil {
		sort.SliceStable(items, func(i, j int) bool { return s.less(items[i], items[j]) })
	}
	s.items = items
	s.loaded = true
	return nil
}

// MatchSubstring reports whether the query is a case-insensitive substring of
// any of the fields. An empty query matches everything.
func MatchSubstring(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
