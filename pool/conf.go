package pool

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// PoolOption is a functional option for configuring an object pool.
type PoolOption func(*poolConfig)

type poolConfig struct {
	capacity      int
	countTracking *bool
	autoRecycle   bool
	autoDisposal  bool
	logger        *zap.Logger

	// recycler and discard hold func(*E) values for the pool's item type.
	// They are stored untyped because options are not generic, and are
	// checked against the item type when the pool is built.
	recycler     any
	recyclerType string
	discard      any
	discardType  string
}

// WithCapacity sets the maximum number of items the pool retains.
// If not specified, defaults to DefaultCapacity. A capacity below 1 makes
// the constructor fail with ErrInvalidCapacity.
func WithCapacity(n int) PoolOption {
	return func(cfg *poolConfig) {
		cfg.capacity = n
	}
}

// WithRecycler sets a function that runs on every item just before it
// re-enters the pool. Use it to reset an item to a clean state.
//
// Example:
//
//	WithRecycler(func(b *bytes.Buffer) { b.Reset() })
func WithRecycler[E any](fn func(*E)) PoolOption {
	return func(cfg *poolConfig) {
		if fn != nil {
			cfg.recycler = fn
			cfg.recyclerType = fmt.Sprintf("%T", (*E)(nil))
		}
	}
}

// WithDiscard sets a function that receives every item the pool will not
// keep: overflow on Give, items removed by trimming, and items drained on Close.
func WithDiscard[E any](fn func(*E)) PoolOption {
	return func(cfg *poolConfig) {
		if fn != nil {
			cfg.discard = fn
			cfg.discardType = fmt.Sprintf("%T", (*E)(nil))
		}
	}
}

// WithCountTracking selects exact counting (an atomic counter maintained on
// every accept and release) or computed counting (asking the backing store).
// Each constructor documents its default. Array pools always scan.
func WithCountTracking(enabled bool) PoolOption {
	return func(cfg *poolConfig) {
		cfg.countTracking = &enabled
	}
}

// WithAutoRecycle wires the item's own Recycle method as the recycler.
// The item pointer type must implement Recyclable, otherwise the constructor
// fails with ErrNotRecyclable. A recycler set with WithRecycler runs after it.
func WithAutoRecycle() PoolOption {
	return func(cfg *poolConfig) {
		cfg.autoRecycle = true
	}
}

// WithAutoDisposal wires the item's Close or Dispose method as the discard
// hook. The item pointer type must implement io.Closer or Disposer, otherwise
// the constructor fails with ErrNotDisposable. A discard set with WithDiscard
// runs before it.
func WithAutoDisposal() PoolOption {
	return func(cfg *poolConfig) {
		cfg.autoDisposal = true
	}
}

// WithLogger sets the logger used for lifecycle events. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) PoolOption {
	return func(cfg *poolConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// config is the validated, typed form of poolConfig.
type config[E any] struct {
	capacity      int
	countTracking *bool
	recycle       func(*E)
	discard       func(*E)
	logger        *zap.Logger
}

func (c *config[E]) tracking(def bool) bool {
	if c.countTracking != nil {
		return *c.countTracking
	}
	return def
}

// createConfig applies opts and validates them against the item type E.
func createConfig[E any](factory func() *E, opts []PoolOption) (*config[E], error) {
	if factory == nil {
		return nil, ErrNilFactory
	}

	cfg := &poolConfig{
		capacity: DefaultCapacity,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, cfg.capacity)
	}

	recycle, discard, err := checkfuncs[E](cfg)
	if err != nil {
		return nil, err
	}

	if cfg.autoRecycle {
		if _, ok := any((*E)(nil)).(Recyclable); !ok {
			return nil, fmt.Errorf("%w: %T", ErrNotRecyclable, (*E)(nil))
		}
		recycle = chain(func(item *E) { any(item).(Recyclable).Recycle() }, recycle)
	}

	if cfg.autoDisposal {
		dispose, ok := disposerFor[E](cfg.logger)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrNotDisposable, (*E)(nil))
		}
		discard = chain(discard, dispose)
	}

	return &config[E]{
		capacity:      cfg.capacity,
		countTracking: cfg.countTracking,
		recycle:       recycle,
		discard:       discard,
		logger:        cfg.logger,
	}, nil
}

// checkfuncs validates the untyped hooks against the pool's item type.
//
// Returns:
//   - recycle: the typed recycler, or nil if not configured.
//   - discard: the typed discard hook, or nil if not configured.
//   - err: ErrHookType when a hook was built for a different item type.
func checkfuncs[E any](cfg *poolConfig) (recycle func(*E), discard func(*E), err error) {
	expected := fmt.Sprintf("%T", (*E)(nil))

	if cfg.recycler != nil {
		fn, ok := cfg.recycler.(func(*E))
		if !ok {
			return nil, nil, fmt.Errorf("%w: WithRecycler expects %s, but pool holds %s",
				ErrHookType, cfg.recyclerType, expected)
		}
		recycle = fn
	}

	if cfg.discard != nil {
		fn, ok := cfg.discard.(func(*E))
		if !ok {
			return nil, nil, fmt.Errorf("%w: WithDiscard expects %s, but pool holds %s",
				ErrHookType, cfg.discardType, expected)
		}
		discard = fn
	}

	return recycle, discard, nil
}

func disposerFor[E any](logger *zap.Logger) (func(*E), bool) {
	switch any((*E)(nil)).(type) {
	case io.Closer:
		return func(item *E) {
			if err := any(item).(io.Closer).Close(); err != nil {
				logger.Warn("closing discarded item failed", zap.Error(err))
			}
		}, true
	case Disposer:
		return func(item *E) { any(item).(Disposer).Dispose() }, true
	default:
		return nil, false
	}
}

// chain returns a function calling first then second, skipping nil ones.
func chain[E any](first, second func(*E)) func(*E) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(item *E) {
		first(item)
		second(item)
	}
}
