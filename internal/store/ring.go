package store

import (
	"sync/atomic"

	"github.com/utkarsh5026/objectpool/internal/algorithms"
)

const (
	// Cache line size for padding to prevent false sharing
	cacheLinePadding = 128
)

// ringCell represents a single cell in the ring buffer
type ringCell[E any] struct {
	// Sequence number for synchronization
	sequence atomic.Uint64
	// The stored item
	value *E
	// Padding to prevent false sharing between cells
	_ [cacheLinePadding - 16]byte
}

// ringQueue is a bounded lock-free multi-producer multi-consumer FIFO.
//
// Each cell carries a sequence number. A producer may write cell i only when
// its sequence equals the tail position; a consumer may read it only when the
// sequence equals head+1. Both claim their position with a CAS on tail/head.
type ringQueue[E any] struct {
	ring []ringCell[E]
	// Capacity mask (capacity - 1) for fast modulo
	mask uint64

	_    [cacheLinePadding]byte
	head atomic.Uint64
	_    [cacheLinePadding - 8]byte
	tail atomic.Uint64
	_    [cacheLinePadding - 8]byte

	count atomic.Int64
}

// newRingQueue creates a queue holding at least capacity items.
func newRingQueue[E any](capacity int) *ringQueue[E] {
	capacity = nextPowerOfTwo(max(capacity, 2))
	ring := make([]ringCell[E], capacity)

	for i := range ring {
		ring[i].sequence.Store(uint64(i)) // #nosec G115 -- i is loop index within valid ring bounds
	}

	return &ringQueue[E]{
		ring: ring,
		mask: uint64(capacity - 1), // #nosec G115 -- capacity is validated positive, no overflow possible
	}
}

// Receive enqueues item, returning false when the ring is full.
func (q *ringQueue[E]) Receive(item *E) bool {
	var backoff algorithms.Backoff
	for {
		tail := q.tail.Load()
		cell := &q.ring[tail&q.mask]
		diff := int64(cell.sequence.Load()) - int64(tail) // #nosec G115 -- intentional conversion for sequence comparison

		switch {
		case diff == 0:
			if q.tail.CompareAndSwap(tail, tail+1) {
				cell.value = item
				cell.sequence.Store(tail + 1)
				q.count.Add(1)
				return true
			}
		case diff < 0:
			return false
		}
		// Another producer moved tail, retry.
		backoff.Wait()
	}
}

// Release dequeues the oldest item, returning nil when the ring is empty.
func (q *ringQueue[E]) Release() *E {
	var backoff algorithms.Backoff
	for {
		head := q.head.Load()
		cell := &q.ring[head&q.mask]
		diff := int64(cell.sequence.Load()) - int64(head+1) // #nosec G115 -- intentional conversion for sequence comparison

		switch {
		case diff == 0:
			if q.head.CompareAndSwap(head, head+1) {
				item := cell.value
				cell.value = nil
				// Release the cell to producers
				// if head is N, next sequence should be N + capacity
				cell.sequence.Store(head + q.mask + 1)
				q.count.Add(-1)
				return item
			}
		case diff < 0:
			return nil
		}
		backoff.Wait()
	}
}

func (q *ringQueue[E]) Count() int {
	return int(max(q.count.Load(), 0))
}

func (q *ringQueue[E]) Drain(fn func(*E)) int {
	return drainWith(q.Release, fn)
}

// Cap returns the capacity of the ring
func (q *ringQueue[E]) Cap() int {
	return len(q.ring)
}

// nextPowerOfTwo returns the next power of 2 >= n
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	if n&(n-1) == 0 {
		return n
	}

	power := 1
	for power < n {
		power *= 2
	}
	return power
}

// drainWith repeatedly calls release until it reports empty.
func drainWith[E any](release func() *E, fn func(*E)) int {
	n := 0
	for {
		item := release()
		if item == nil {
			return n
		}
		n++
		if fn != nil {
			fn(item)
		}
	}
}
