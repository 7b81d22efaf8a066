// Package store implements the domain stores: per-session cached collections
// of one entity type each, reconciled against the clinic backends on every
// operation. A store never validates business rules locally; it displays
// what the backends return and requests changes.
package store

import "sync"

// state is the collection core every domain store embeds: the cached items
// plus the transient loading and error flags. All access goes through the
// mutex; network calls happen outside it, so concurrent operations interleave
// at call boundaries and the last list response to resolve wins.
type state[T any] struct {
	mu      sync.Mutex
	items   []T
	loading bool
	err     string
}

// begin marks an operation as in flight and clears any stale error.
func (s *state[T]) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

// settle clears the loading flag. Deferred by every operation so the flag
// cannot be left stuck on any exit path.
func (s *state[T]) settle() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *state[T]) fail(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// replaceAll overwrites the collection. Full overwrite, never a merge.
func (s *state[T]) replaceAll(items []T) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

func (s *state[T]) push(item T) {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
}

// mutate applies fn to the first item matching match. No match is a silent
// skip: the collection does not grow and no error is raised.
func (s *state[T]) mutate(match func(T) bool, fn func(*T)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if match(s.items[i]) {
			fn(&s.items[i])
			return
		}
	}
}

// drop removes every item matching match, preserving order of the rest.
func (s *state[T]) drop(match func(T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// Items returns a copy of the cached collection.
func (s *state[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Loading reports whether an operation is in flight.
func (s *state[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error text of the most recent failed operation, or the
// empty string.
func (s *state[T]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
