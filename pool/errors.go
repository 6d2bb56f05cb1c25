package pool

import "errors"

var (
	ErrInvalidCapacity = errors.New("pool capacity must be at least 1")
	ErrNilFactory      = errors.New("pool factory must not be nil")
	ErrNotRecyclable   = errors.New("auto recycle requires an item type implementing Recyclable")
	ErrNotDisposable   = errors.New("auto disposal requires an item type implementing io.Closer or Disposer")
	ErrHookType        = errors.New("hook item type does not match pool item type")
	ErrNilCollection   = errors.New("pool collection must not be nil")

	// ErrPoolClosed is returned when attaching a trimmer or recycler to a pool
	// that has already been closed.
	ErrPoolClosed = errors.New("pool is closed")

	// ErrSharedPool is returned by Close on a process-wide shared pool.
	ErrSharedPool = errors.New("shared pools cannot be closed")

	ErrInvalidTarget = errors.New("trim target must not be negative")
	ErrFactoryPanic  = errors.New("factory panicked")
	ErrNilRecycler   = errors.New("recycle function must not be nil")
)
