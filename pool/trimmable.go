package pool

import (
	"sync/atomic"

	"github.com/utkarsh5026/objectpool/internal/event"
	"github.com/utkarsh5026/objectpool/internal/store"
	"go.uber.org/zap"
)

// Trimmable is a pool that tracks its size, reports every change through the
// Received and Released events, and can be shrunk with TrimTo.
//
// A Trimmable accepts an item only while its count is below capacity. The
// count is either exact, kept in an atomic counter, or computed by asking the
// backing store; see WithCountTracking.
type Trimmable[E any] struct {
	core[E]

	tracking bool
	count    atomic.Int64
	received event.List[int]
	released event.List[int]
}

func newTrimmable[E any](kind store.Kind, factory func() *E, opts []PoolOption, trackByDefault bool) (*Trimmable[E], error) {
	cfg, err := createConfig(factory, opts)
	if err != nil {
		return nil, err
	}

	s, err := store.New[E](kind, cfg.capacity)
	if err != nil {
		return nil, err
	}
	return buildTrimmable(kind, s, factory, cfg, trackByDefault), nil
}

func buildTrimmable[E any](kind store.Kind, s store.Store[E], factory func() *E, cfg *config[E], trackByDefault bool) *Trimmable[E] {
	t := &Trimmable[E]{}
	t.init(kind, s, factory, cfg)
	t.setup(cfg.tracking(trackByDefault))
	return t
}

func (t *Trimmable[E]) setup(tracking bool) {
	t.tracking = tracking

	t.canReceive = func() bool {
		return t.Count() < t.Capacity()
	}
	t.onReceived = func() { t.received.Emit(t.adjust(1)) }
	t.onReleased = func() { t.released.Emit(t.adjust(-1)) }
	t.onDrained = func(n int) {
		if t.tracking {
			t.count.Add(-int64(n))
		}
	}
}

// adjust applies delta to the exact counter and returns the new size. With
// computed counting the store has already changed, so it just reads it.
func (t *Trimmable[E]) adjust(delta int64) int {
	if t.tracking {
		return int(t.count.Add(delta))
	}
	return t.core.Count()
}

// Count returns the number of retained items.
func (t *Trimmable[E]) Count() int {
	if t.tracking {
		return int(t.count.Load())
	}
	return t.core.Count()
}

// CountTrackingEnabled reports whether Count reads an exact counter rather
// than asking the backing store.
func (t *Trimmable[E]) CountTrackingEnabled() bool {
	return t.tracking
}

// OnReceived registers fn to be called with the new size after every item
// the pool accepts. It returns a function that removes the registration.
func (t *Trimmable[E]) OnReceived(fn func(size int)) (unsubscribe func()) {
	return t.received.Subscribe(fn)
}

// OnReleased registers fn to be called with the new size after every item
// leaves the pool, and once after each TrimTo that removed anything.
func (t *Trimmable[E]) OnReleased(fn func(size int)) (unsubscribe func()) {
	return t.released.Subscribe(fn)
}

// TrimTo discards items until Count is at most target.
//
// The number of removals is capped at the excess measured on entry, so the
// call terminates even while other goroutines keep giving. Every removed item
// goes to the discard hook, and Released fires once at the end if anything
// was removed. A negative target, or a closed pool, is a no-op.
func (t *Trimmable[E]) TrimTo(target int) {
	if target < 0 || t.closed.Load() {
		return
	}

	excess := t.Count() - target
	removed := 0
	for ; removed < excess && t.Count() > target; removed++ {
		item := t.release()
		if item == nil {
			break
		}
		if t.tracking {
			t.count.Add(-1)
		}
		t.discardItem(item)
	}

	if removed > 0 {
		t.logger.Debug("pool trimmed", zap.Int("target", target), zap.Int("removed", removed))
		t.released.Emit(t.Count())
	}
}

// Close closes the pool; see Pool.Close. Event subscribers are dropped once
// the pool is drained.
func (t *Trimmable[E]) Close() error {
	err := t.core.Close()
	t.received.Clear()
	t.released.Clear()
	return err
}
