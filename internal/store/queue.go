package store

import (
	"sync"

	"github.com/eapache/queue"
)

// lockedQueue is a FIFO over eapache/queue, a ring buffer that grows and
// shrinks in powers of two. The queue itself is not safe for concurrent use.
type lockedQueue[E any] struct {
	mu sync.Mutex
	q  *queue.Queue
}

func newLockedQueue[E any](_ int) *lockedQueue[E] {
	return &lockedQueue[E]{q: queue.New()}
}

func (s *lockedQueue[E]) Receive(item *E) bool {
	s.mu.Lock()
	s.q.Add(item)
	s.mu.Unlock()
	return true
}

func (s *lockedQueue[E]) Release() *E {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.q.Length() == 0 {
		return nil
	}
	return s.q.Remove().(*E)
}

func (s *lockedQueue[E]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.Length()
}

func (s *lockedQueue[E]) Drain(fn func(*E)) int {
	return drainWith(s.Release, fn)
}
