// Package event implements the observer lists pools use for resize
// notifications and the pre-close hook.
package event

import (
	"sync"
	"sync/atomic"
)

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// List is a copy-on-write list of subscribers. Emit reads a snapshot without
// locking, so subscribing or unsubscribing while events fire is safe: an
// in-flight Emit finishes against the snapshot it loaded.
type List[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   atomic.Pointer[[]subscriber[T]]
}

// Subscribe registers fn and returns a function that removes it again.
// The returned function is idempotent.
func (l *List[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	l.mu.Lock()
	l.nextID++
	id := l.nextID
	cur := l.load()
	next := make([]subscriber[T], len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, subscriber[T]{id: id, fn: fn})
	l.subs.Store(&next)
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

// Emit calls every current subscriber with v, in subscription order.
func (l *List[T]) Emit(v T) {
	for _, s := range l.load() {
		s.fn(v)
	}
}

// Len returns the number of subscribers.
func (l *List[T]) Len() int {
	return len(l.load())
}

// Clear drops all subscribers.
func (l *List[T]) Clear() {
	l.mu.Lock()
	l.subs.Store(nil)
	l.mu.Unlock()
}

func (l *List[T]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.load()
	for i, s := range cur {
		if s.id != id {
			continue
		}
		next := make([]subscriber[T], 0, len(cur)-1)
		next = append(next, cur[:i]...)
		next = append(next, cur[i+1:]...)
		l.subs.Store(&next)
		return
	}
}

func (l *List[T]) load() []subscriber[T] {
	if p := l.subs.Load(); p != nil {
		return *p
	}
	return nil
}
