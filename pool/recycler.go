package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/utkarsh5026/objectpool/internal/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Completion is returned by Recycler.Close and completes once the recycler
// has drained.
type Completion = types.Future

// RecycleTarget is the pool a Recycler feeds. Every pool in this package
// satisfies it.
type RecycleTarget[E any] interface {
	Give(item *E)
	OnBeforeClose(fn func()) func()
	Closed() bool
}

// RecyclerOption configures a Recycler.
type RecyclerOption func(*recyclerConfig)

type recyclerConfig struct {
	limit   int
	limiter *rate.Limiter
	logger  *zap.Logger
}

// WithRecyclerLimit sets how many items may wait for recycling at once.
// If not specified, defaults to DefaultCapacity.
func WithRecyclerLimit(n int) RecyclerOption {
	return func(cfg *recyclerConfig) {
		cfg.limit = n
	}
}

// WithRecycleRate throttles the background worker to perSecond recycled
// items, allowing bursts of burst items.
//
// Example:
//
//	WithRecycleRate(1000, 50) // at most 1000 items/sec, 50 at once
func WithRecycleRate(perSecond float64, burst int) RecyclerOption {
	return func(cfg *recyclerConfig) {
		if perSecond > 0 && burst > 0 {
			cfg.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithRecyclerLogger sets the logger for dropped items and shutdown.
func WithRecyclerLogger(l *zap.Logger) RecyclerOption {
	return func(cfg *recyclerConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

type recyclerState int32

const (
	recyclerOpen recyclerState = iota
	recyclerClosing
	recyclerClosed
)

// Recycler runs an expensive recycle function off the caller's goroutine.
//
// Recycle queues an item without blocking. A single background worker applies
// the recycle function to each queued item and then gives it to the target
// pool. If the queue is full, Recycle refuses the item.
//
// When the target pool begins closing, the recycler closes too and drops any
// items still queued instead of giving them to a dying pool.
type Recycler[E any] struct {
	target  RecycleTarget[E]
	fn      func(*E)
	limiter *rate.Limiter
	logger  *zap.Logger

	mu    sync.RWMutex
	state recyclerState
	bin   chan *E

	disposed atomic.Bool
	ctx      context.Context
	cancel   context.CancelFunc
	unsub    func()
	done     *types.Future

	recycled atomic.Int64
	dropped  atomic.Int64
}

// NewRecycler starts a recycler feeding target.
//
// Returns ErrPoolClosed if target is already closed, ErrInvalidCapacity for a
// limit below 1, and ErrNilRecycler when fn is nil.
func NewRecycler[E any](target RecycleTarget[E], fn func(*E), opts ...RecyclerOption) (*Recycler[E], error) {
	if fn == nil {
		return nil, ErrNilRecycler
	}
	if target.Closed() {
		return nil, ErrPoolClosed
	}

	cfg := &recyclerConfig{
		limit:  DefaultCapacity,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.limit < 1 {
		return nil, fmt.Errorf("%w: recycler limit %d", ErrInvalidCapacity, cfg.limit)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Recycler[E]{
		target:  target,
		fn:      fn,
		limiter: cfg.limiter,
		logger:  cfg.logger,
		bin:     make(chan *E, cfg.limit),
		ctx:     ctx,
		cancel:  cancel,
		done:    types.NewFuture(),
	}

	r.unsub = target.OnBeforeClose(r.targetClosing)
	if target.Closed() {
		r.unsub()
		cancel()
		return nil, ErrPoolClosed
	}

	go r.work()
	return r, nil
}

// NewAutoRecycler starts a recycler that calls the item's Recycle method.
// It fails with ErrNotRecyclable if *E does not implement Recyclable.
func NewAutoRecycler[E any](target RecycleTarget[E], opts ...RecyclerOption) (*Recycler[E], error) {
	if _, ok := any((*E)(nil)).(Recyclable); !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotRecyclable, (*E)(nil))
	}
	return NewRecycler(target, func(item *E) { any(item).(Recyclable).Recycle() }, opts...)
}

// Recycle queues item for recycling. It returns false, and the caller keeps
// ownership of item, when the queue is full or the recycler is closed.
func (r *Recycler[E]) Recycle(item *E) bool {
	if item == nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.state != recyclerOpen {
		return false
	}

	select {
	case r.bin <- item:
		return true
	default:
		return false
	}
}

// Close stops accepting items. The returned Completion finishes once every
// queued item has been recycled and given to the target, or dropped if the
// target closed. Calling Close again returns the same Completion.
func (r *Recycler[E]) Close() *Completion {
	r.mu.Lock()
	if r.state == recyclerOpen {
		r.state = recyclerClosing
		close(r.bin)
	}
	r.mu.Unlock()
	return r.done
}

// Recycled returns the number of items handed to the target so far.
func (r *Recycler[E]) Recycled() int {
	return int(r.recycled.Load())
}

// Dropped returns the number of accepted items that never reached the target.
func (r *Recycler[E]) Dropped() int {
	return int(r.dropped.Load())
}

func (r *Recycler[E]) targetClosing() {
	r.disposed.Store(true)
	r.cancel()
	r.Close()
}

func (r *Recycler[E]) work() {
	for item := range r.bin {
		if r.disposed.Load() {
			r.dropped.Add(1)
			continue
		}

		if r.limiter != nil {
			if err := r.limiter.Wait(r.ctx); err != nil {
				r.dropped.Add(1)
				continue
			}
		}

		if err := r.apply(item); err != nil {
			r.dropped.Add(1)
			r.logger.Warn("recycle failed, dropping item", zap.Error(err))
			continue
		}

		r.target.Give(item)
		r.recycled.Add(1)
	}

	r.mu.Lock()
	r.state = recyclerClosed
	r.mu.Unlock()

	r.unsub()
	r.cancel()
	r.logger.Debug("recycler closed",
		zap.Int64("recycled", r.recycled.Load()),
		zap.Int64("dropped", r.dropped.Load()),
	)
	r.done.Complete(nil)
}

func (r *Recycler[E]) apply(item *E) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("recycle panicked: %v", rec)
		}
	}()
	r.fn(item)
	return nil
}
