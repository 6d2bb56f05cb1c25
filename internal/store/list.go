package store

import (
	"container/list"
	"sync"
)

// linkedList keeps items in a doubly linked list. Items are appended at the
// back and released from the back, so the most recently given item is handed
// out first.
type linkedList[E any] struct {
	mu sync.Mutex
	l  *list.List
}

func newLinkedList[E any]() *linkedList[E] {
	return &linkedList[E]{l: list.New()}
}

func (s *linkedList[E]) Receive(item *E) bool {
	s.mu.Lock()
	s.l.PushBack(item)
	s.mu.Unlock()
	return true
}

func (s *linkedList[E]) Release() *E {
	s.mu.Lock()
	defer s.mu.Unlock()

	back := s.l.Back()
	if back == nil {
		return nil
	}
	return s.l.Remove(back).(*E)
}

func (s *linkedList[E]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.l.Len()
}

func (s *linkedList[E]) Drain(fn func(*E)) int {
	return drainWith(s.Release, fn)
}
