package pool

// DefaultCapacity is the capacity of a pool built without WithCapacity.
const DefaultCapacity = 64

// Pool is the contract every object pool implements.
//
// Items are pointers and a nil pointer means "no item". Give and Take never
// block: Take falls back to the factory when the pool is empty and Give hands
// the item to the discard hook when the pool is full.
type Pool[E any] interface {
	// Capacity returns the maximum number of retained items. It is 0 once the
	// pool is closed.
	Capacity() int

	// Generate calls the factory directly, bypassing the pool.
	Generate() *E

	// Give returns item to the pool. A nil item is ignored.
	Give(item *E)

	// TryTake returns a pooled item if one is available, without generating.
	TryTake() (*E, bool)

	// Take returns a pooled item, or a freshly generated one.
	Take() *E

	// Count returns the number of retained items. For array pools this is a
	// scan and only meant for diagnostics.
	Count() int

	// Close drains the pool through the discard hook. It is idempotent.
	Close() error
}

// Recyclable is implemented by items that know how to reset themselves.
// See WithAutoRecycle and NewAutoRecycler.
type Recyclable interface {
	Recycle()
}

// Disposer is implemented by items that release resources without
// returning an error. See WithAutoDisposal.
type Disposer interface {
	Dispose()
}
