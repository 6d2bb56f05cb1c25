// Package pool provides generic, thread-safe object pools for reusing
// expensive-to-build values.
//
// Every pool implements Pool[E] and hands out *E. Take never blocks: when the
// pool is empty it calls the factory. Give never blocks either: when the pool
// is full the item goes to the discard hook (if any) and is dropped. Array
// pools keep a single "pocket" slot that is checked before the array, which
// makes the uncontended give/take pair nearly free. The other pools go
// straight to their backing store and keep its order.
//
// # Basic Usage
//
//	p, err := pool.NewInterlockedArray(
//	    func() *bytes.Buffer { return new(bytes.Buffer) },
//	    pool.WithCapacity(32),
//	    pool.WithRecycler(func(b *bytes.Buffer) { b.Reset() }),
//	)
//	if err != nil {
//	    return err
//	}
//	buf := p.Take()
//	defer p.Give(buf)
//
// # Variants
//
// The variants differ by backing store:
//
//   - NewInterlockedArray: slot array, compare-and-swap everywhere, no item loss
//   - NewOptimisticArray: slot array with a cheaper store that can lose items under contention
//   - NewConcurrentQueue: lock-free bounded ring, FIFO
//   - NewConcurrentStack: lock-free stack, LIFO
//   - NewBag: per-CPU shards, unordered
//   - NewQueue, NewStack, NewLinkedList: plain containers behind a mutex
//   - NewCollection: any Collection behind a read/write lock
//   - NewChannel: buffered channel, adds TakeContext
//
// Array pools return *ArrayPool, whose Count is a scan meant for diagnostics.
// All other variants return *Trimmable (or *ChannelPool, which embeds it).
//
// # Trimming
//
// A Trimmable reports every size change through OnReceived and OnReleased and
// can be shrunk with TrimTo. An AutoTrimmer subscribes to those events and
// trims the pool back to a target size once it has stayed above it for the
// trim delay:
//
//	trimmer, err := pool.NewAutoTrimmer(p, 8, pool.WithTrimDelay(time.Second))
//
// # Asynchronous Recycling
//
// When resetting an item is expensive, a Recycler moves the work to a
// background goroutine. Recycle never blocks; it returns false when the
// recycler's queue is full.
//
//	r, err := pool.NewRecycler(p, func(c *Conn) { c.Reset() }, pool.WithRecyclerLimit(128))
//	if !r.Recycle(conn) {
//	    conn.Close()
//	}
//	err = r.Close().Wait()
//
// # Configuration Options
//
//   - WithCapacity(n): Maximum retained items (default: DefaultCapacity)
//   - WithRecycler(fn): Reset items before they re-enter the pool
//   - WithDiscard(fn): Receive items the pool will not keep
//   - WithCountTracking(bool): Exact counter versus asking the store
//   - WithAutoRecycle(): Use the item's Recycle method
//   - WithAutoDisposal(): Use the item's Close or Dispose method as discard
//   - WithLogger(l): zap logger for lifecycle events
//
// # Closing
//
// Close runs in two phases: OnBeforeClose observers run first, while the pool
// is still intact, then every retained item is drained through the discard
// hook. After Close, Take still works by calling the factory, Give discards,
// and TrimTo does nothing. The shared pools returned by Buffers, Builders,
// Slices and Maps refuse Close with ErrSharedPool.
package pool
