package store

import (
	"sync"
	"sync/atomic"

	"github.com/utkarsh5026/objectpool/internal/algorithms"
)

type stackNode[E any] struct {
	value *E
	next  *stackNode[E]
}

// treiberStack is an unbounded lock-free LIFO. Nodes are never reused, so the
// ABA problem cannot occur under Go's garbage collector.
type treiberStack[E any] struct {
	top   atomic.Pointer[stackNode[E]]
	count atomic.Int64
}

func newTreiberStack[E any]() *treiberStack[E] {
	return &treiberStack[E]{}
}

func (s *treiberStack[E]) Receive(item *E) bool {
	n := &stackNode[E]{value: item}
	var backoff algorithms.Backoff
	for {
		top := s.top.Load()
		n.next = top
		if s.top.CompareAndSwap(top, n) {
			s.count.Add(1)
			return true
		}
		backoff.Wait()
	}
}

func (s *treiberStack[E]) Release() *E {
	var backoff algorithms.Backoff
	for {
		top := s.top.Load()
		if top == nil {
			return nil
		}
		if s.top.CompareAndSwap(top, top.next) {
			s.count.Add(-1)
			return top.value
		}
		backoff.Wait()
	}
}

func (s *treiberStack[E]) Count() int {
	return int(max(s.count.Load(), 0))
}

func (s *treiberStack[E]) Drain(fn func(*E)) int {
	return drainWith(s.Release, fn)
}

// lockedStack is a slice-backed LIFO guarded by a mutex.
type lockedStack[E any] struct {
	mu    sync.Mutex
	items []*E
}

func newLockedStack[E any](capacity int) *lockedStack[E] {
	return &lockedStack[E]{items: make([]*E, 0, capacity)}
}

func (s *lockedStack[E]) Receive(item *E) bool {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	return true
}

func (s *lockedStack[E]) Release() *E {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.items)
	if n == 0 {
		return nil
	}
	item := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	return item
}

func (s *lockedStack[E]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *lockedStack[E]) Drain(fn func(*E)) int {
	s.mu.Lock()
	items := s.items
	s.items = nil
	s.mu.Unlock()

	for i := len(items) - 1; i >= 0; i-- {
		if fn != nil {
			fn(items[i])
		}
	}
	return len(items)
}
