package pool

import "github.com/utkarsh5026/objectpool/internal/store"

// Collection is a container the pool can wrap with NewCollection. It does not
// need to be safe for concurrent use; the pool locks around every call.
type Collection[E any] = store.Collection[E]

// NewSet returns an identity-keyed Collection suitable for NewCollection.
func NewSet[E any]() Collection[E] {
	return store.NewSet[E]()
}

// NewConcurrentQueue creates a FIFO pool backed by a bounded lock-free ring.
// Count tracking is enabled by default.
func NewConcurrentQueue[E any](factory func() *E, opts ...PoolOption) (*Trimmable[E], error) {
	return newTrimmable(store.KindConcurrentQueue, factory, opts, true)
}

// NewConcurrentStack creates a LIFO pool backed by a lock-free stack.
// Count tracking is enabled by default.
func NewConcurrentStack[E any](factory func() *E, opts ...PoolOption) (*Trimmable[E], error) {
	return newTrimmable(store.KindConcurrentStack, factory, opts, true)
}

// NewBag creates an unordered pool backed by per-CPU shards.
// Count tracking is enabled by default.
func NewBag[E any](factory func() *E, opts ...PoolOption) (*Trimmable[E], error) {
	return newTrimmable(store.KindBag, factory, opts, true)
}

// NewQueue creates a FIFO pool backed by a ring-buffer queue under a mutex.
// Count is computed from the queue by default.
func NewQueue[E any](factory func() *E, opts ...PoolOption) (*Trimmable[E], error) {
	return newTrimmable(store.KindQueue, factory, opts, false)
}

// NewStack creates a LIFO pool backed by a slice under a mutex.
// Count is computed from the slice by default.
func NewStack[E any](factory func() *E, opts ...PoolOption) (*Trimmable[E], error) {
	return newTrimmable(store.KindStack, factory, opts, false)
}

// NewLinkedList creates a pool backed by a doubly linked list under a mutex.
// Items are released from the back, so the most recently given item is
// taken first. Count is computed from the list by default.
func NewLinkedList[E any](factory func() *E, opts ...PoolOption) (*Trimmable[E], error) {
	return newTrimmable(store.KindLinkedList, factory, opts, false)
}

// NewCollection creates a pool around c. Releasing peeks a candidate and then
// removes it, retrying if another goroutine removed it first. Count is
// computed from c by default. c must not be used directly afterwards.
func NewCollection[E any](factory func() *E, c Collection[E], opts ...PoolOption) (*Trimmable[E], error) {
	if c == nil {
		return nil, ErrNilCollection
	}

	cfg, err := createConfig(factory, opts)
	if err != nil {
		return nil, err
	}

	return buildTrimmable(store.KindCollection, store.NewCollection(c), factory, cfg, false), nil
}
