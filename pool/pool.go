package pool

import (
	"sync/atomic"

	"github.com/utkarsh5026/objectpool/internal/event"
	"github.com/utkarsh5026/objectpool/internal/slot"
	"github.com/utkarsh5026/objectpool/internal/store"
	"go.uber.org/zap"
)

// core implements the pool contract on top of a backing store. The variant
// types embed it and plug in counting and capacity policy through the hook
// fields.
type core[E any] struct {
	kind     store.Kind
	capacity atomic.Int64
	factory  func() *E
	recycle  func(*E)
	discard  func(*E)
	logger   *zap.Logger

	// pocket is checked before the store on every give and take when
	// usePocket is set. Only array pools set it; ordered stores would lose
	// their FIFO or LIFO order behind it.
	pocket     slot.Slot[E]
	usePocket  bool
	optimistic bool
	store      store.Store[E]

	closed      atomic.Bool
	beforeClose event.List[struct{}]

	canReceive func() bool
	onReceived func()
	onReleased func()
	onDrained  func(n int)
}

func (p *core[E]) init(kind store.Kind, s store.Store[E], factory func() *E, cfg *config[E]) {
	p.kind = kind
	p.capacity.Store(int64(cfg.capacity))
	p.factory = factory
	p.recycle = cfg.recycle
	p.discard = cfg.discard
	p.logger = cfg.logger.With(zap.Stringer("kind", kind))
	p.optimistic = kind == store.KindOptimisticArray
	p.store = s

	p.canReceive = func() bool { return true }
	p.onReceived = func() {}
	p.onReleased = func() {}
	p.onDrained = func(int) {}
}

// Capacity returns the maximum number of retained items, or 0 after Close.
func (p *core[E]) Capacity() int {
	return int(p.capacity.Load())
}

// Generate calls the factory directly.
func (p *core[E]) Generate() *E {
	return p.factory()
}

// Give returns item to the pool.
//
// When the pool has room, the recycler runs first and room is checked again,
// since a slow recycler can race with other gives. The item then goes to the
// pocket (array pools only), then the store. An item that finds no place is
// discarded. After Close every given item is discarded, including one that
// lands in the store while Close is draining it.
func (p *core[E]) Give(item *E) {
	if item == nil {
		return
	}

	if p.closed.Load() || !p.canReceive() {
		p.discardItem(item)
		return
	}

	if p.recycle != nil {
		p.recycle(item)
		if !p.canReceive() {
			p.discardItem(item)
			return
		}
	}

	if p.accept(item) {
		p.onReceived()
		if p.closed.Load() {
			// Close may have drained the store before item landed in it.
			p.sweep()
		}
		return
	}
	p.discardItem(item)
}

// TryTake returns a pooled item without falling back to the factory.
func (p *core[E]) TryTake() (*E, bool) {
	if p.closed.Load() {
		return nil, false
	}

	item := p.release()
	if item == nil {
		return nil, false
	}
	p.onReleased()
	return item, true
}

// Take returns a pooled item, or a new one from the factory.
func (p *core[E]) Take() *E {
	if item, ok := p.TryTake(); ok {
		return item
	}
	return p.Generate()
}

// Count returns the pocket occupancy plus the store's count.
func (p *core[E]) Count() int {
	n := p.store.Count()
	if p.pocket.Occupied() {
		n++
	}
	return n
}

// Closed reports whether Close has been called.
func (p *core[E]) Closed() bool {
	return p.closed.Load()
}

// OnBeforeClose registers fn to run synchronously when Close begins, before
// any item is drained. It returns a function that removes the registration.
// Registering on a closed pool does nothing.
func (p *core[E]) OnBeforeClose(fn func()) (unsubscribe func()) {
	if fn == nil || p.closed.Load() {
		return func() {}
	}
	return p.beforeClose.Subscribe(func(struct{}) { fn() })
}

// Close shuts the pool down in two phases. First it marks the pool closed and
// notifies the OnBeforeClose observers; then it drains every retained item
// through the discard hook and sets the capacity to 0. Calling Close again
// has no effect.
func (p *core[E]) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	p.beginClose()
	n := p.finishClose()

	p.logger.Debug("pool closed", zap.Int("drained", n))
	return nil
}

func (p *core[E]) beginClose() {
	p.beforeClose.Emit(struct{}{})
	p.beforeClose.Clear()
}

func (p *core[E]) finishClose() int {
	n := p.sweep()
	p.capacity.Store(0)
	return n
}

// sweep discards everything the pocket and store hold. Each item is
// released exactly once, so concurrent sweeps never discard twice.
func (p *core[E]) sweep() int {
	n := 0
	if item := p.pocket.TryRetrieve(); item != nil {
		n++
		p.discardItem(item)
	}
	n += p.store.Drain(p.discardItem)

	p.onDrained(n)
	return n
}

func (p *core[E]) accept(item *E) bool {
	if !p.usePocket {
		return p.store.Receive(item)
	}
	if p.optimistic {
		if p.pocket.SetIfNull(item) {
			return true
		}
	} else if p.pocket.TrySave(item) {
		return true
	}
	return p.store.Receive(item)
}

func (p *core[E]) release() *E {
	if !p.usePocket {
		return p.store.Release()
	}
	if item := p.pocket.TryRetrieve(); item != nil {
		return item
	}
	return p.store.Release()
}

func (p *core[E]) discardItem(item *E) {
	if p.discard != nil {
		p.discard(item)
	}
}
