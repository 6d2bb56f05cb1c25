package store

import (
	"sync"

	"github.com/utkarsh5026/objectpool/internal/algorithms"
)

// Collection is an arbitrary container of items that has no efficient
// remove-first operation. Implementations need not be safe for concurrent use.
type Collection[E any] interface {
	// Add inserts item.
	Add(item *E)

	// Remove deletes item, reporting whether it was present.
	Remove(item *E) bool

	// Peek returns any one stored item without removing it, or nil.
	Peek() *E

	// Len returns the number of stored items.
	Len() int
}

// collectionStore adapts a Collection. Every call into the collection,
// reads included, runs under one mutex. Release peeks a candidate and removes
// it; if the collection refuses the removal, it backs off and peeks again.
// Retrying only happens while the collection still holds items.
type collectionStore[E any] struct {
	mu sync.Mutex
	c  Collection[E]
}

// NewCollection wraps c as a Store.
func NewCollection[E any](c Collection[E]) Store[E] {
	return &collectionStore[E]{c: c}
}

func (s *collectionStore[E]) Receive(item *E) bool {
	s.mu.Lock()
	s.c.Add(item)
	s.mu.Unlock()
	return true
}

func (s *collectionStore[E]) Release() *E {
	var backoff algorithms.Backoff
	for {
		s.mu.Lock()
		candidate := s.c.Peek()
		removed := candidate != nil && s.c.Remove(candidate)
		s.mu.Unlock()

		if candidate == nil {
			return nil
		}

		if removed {
			return candidate
		}
		debugLog("collection release lost candidate %p, retrying", candidate)
		backoff.Wait()
	}
}

func (s *collectionStore[E]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Len()
}

func (s *collectionStore[E]) Drain(fn func(*E)) int {
	return drainWith(s.Release, fn)
}

// Set is a map-backed Collection keyed by item identity.
type Set[E any] struct {
	items map[*E]struct{}
}

func NewSet[E any]() *Set[E] {
	return &Set[E]{items: make(map[*E]struct{})}
}

func (s *Set[E]) Add(item *E) { s.items[item] = struct{}{} }

func (s *Set[E]) Remove(item *E) bool {
	if _, ok := s.items[item]; !ok {
		return false
	}
	delete(s.items, item)
	return true
}

func (s *Set[E]) Peek() *E {
	for item := range s.items {
		return item
	}
	return nil
}

func (s *Set[E]) Len() int { return len(s.items) }
