package pool

import "github.com/utkarsh5026/objectpool/internal/store"

// ArrayPool is a pool backed by a fixed array of capacity-1 slots plus the
// pocket. Gives scan the array from the front; takes scan only up to the
// high-water mark of slots ever written. Count is a full scan.
type ArrayPool[E any] struct {
	core[E]
}

// NewInterlockedArray creates an array pool whose every store and retrieval
// goes through compare-and-swap. No item is ever lost or handed out twice,
// under any amount of concurrency.
//
// Example:
//
//	p, err := pool.NewInterlockedArray(func() *Conn { return dial() }, pool.WithCapacity(16))
func NewInterlockedArray[E any](factory func() *E, opts ...PoolOption) (*ArrayPool[E], error) {
	return newArrayPool(store.KindInterlockedArray, factory, opts)
}

// NewOptimisticArray creates an array pool whose stores skip compare-and-swap.
//
// Two gives racing on the same empty slot can both succeed, and the item
// written first is then lost to the garbage collector. Loss is therefore
// bounded by the number of same-slot store collisions, which in practice is
// small and only occurs under contention. Retrieval still swaps atomically, so
// an item is never handed out twice. Use NewInterlockedArray when every item
// must be conserved, for example when items hold resources that need Close.
func NewOptimisticArray[E any](factory func() *E, opts ...PoolOption) (*ArrayPool[E], error) {
	return newArrayPool(store.KindOptimisticArray, factory, opts)
}

func newArrayPool[E any](kind store.Kind, factory func() *E, opts []PoolOption) (*ArrayPool[E], error) {
	cfg, err := createConfig(factory, opts)
	if err != nil {
		return nil, err
	}

	s, err := store.New[E](kind, cfg.capacity)
	if err != nil {
		return nil, err
	}

	p := &ArrayPool[E]{}
	p.init(kind, s, factory, cfg)
	p.usePocket = true
	return p, nil
}
