package store

import (
	"runtime"
	"sync"
	"sync/atomic"
)

type bagShard[E any] struct {
	mu    sync.Mutex
	items []*E
	_     [cacheLinePadding - 32]byte
}

// bag is an unordered store split into mutex-guarded shards. Producers and
// consumers start at different shards in round-robin order so contention is
// spread; a release that finds its shard empty walks the others.
type bag[E any] struct {
	shards []bagShard[E]
	next   atomic.Uint64
	total  atomic.Int64
}

// newBag creates a bag with n shards, or one per CPU when n is not positive.
func newBag[E any](n int) *bag[E] {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return &bag[E]{shards: make([]bagShard[E], n)}
}

func (b *bag[E]) pick() int {
	return int(b.next.Add(1) % uint64(len(b.shards))) // #nosec G115 -- shard count is positive
}

func (b *bag[E]) Receive(item *E) bool {
	sh := &b.shards[b.pick()]
	sh.mu.Lock()
	sh.items = append(sh.items, item)
	sh.mu.Unlock()
	b.total.Add(1)
	return true
}

func (b *bag[E]) Release() *E {
	if b.total.Load() <= 0 {
		return nil
	}

	start := b.pick()
	for i := range b.shards {
		sh := &b.shards[(start+i)%len(b.shards)]
		sh.mu.Lock()
		if n := len(sh.items); n > 0 {
			item := sh.items[n-1]
			sh.items[n-1] = nil
			sh.items = sh.items[:n-1]
			sh.mu.Unlock()
			b.total.Add(-1)
			return item
		}
		sh.mu.Unlock()
	}
	debugLog("bag release found every shard empty: total=%d", b.total.Load())
	return nil
}

func (b *bag[E]) Count() int {
	return int(max(b.total.Load(), 0))
}

func (b *bag[E]) Drain(fn func(*E)) int {
	n := 0
	for i := range b.shards {
		sh := &b.shards[i]
		sh.mu.Lock()
		items := sh.items
		sh.items = nil
		sh.mu.Unlock()

		b.total.Add(-int64(len(items)))
		for _, item := range items {
			n++
			if fn != nil {
				fn(item)
			}
		}
	}
	return n
}
