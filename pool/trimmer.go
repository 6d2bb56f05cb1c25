package pool

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultTrimDelay is how long an AutoTrimmer waits after the pool grows past
// its target before trimming.
const DefaultTrimDelay = 500 * time.Millisecond

// Governable is what an AutoTrimmer needs from a pool. Every *Trimmable and
// *ChannelPool satisfies it.
type Governable interface {
	TrimTo(target int)
	OnReceived(fn func(size int)) func()
	OnReleased(fn func(size int)) func()
	OnBeforeClose(fn func()) func()
	Closed() bool
}

// TrimmerOption configures an AutoTrimmer.
type TrimmerOption func(*trimmerConfig)

type trimmerConfig struct {
	delay  time.Duration
	logger *zap.Logger
}

// WithTrimDelay sets the debounce delay. Non-positive values are ignored.
func WithTrimDelay(d time.Duration) TrimmerOption {
	return func(cfg *trimmerConfig) {
		if d > 0 {
			cfg.delay = d
		}
	}
}

// WithTrimmerLogger sets the logger for trim executions.
func WithTrimmerLogger(l *zap.Logger) TrimmerOption {
	return func(cfg *trimmerConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// AutoTrimmer keeps a pool near a target size.
//
// When the pool reports a size above target, a trim is scheduled after the
// delay, replacing any trim already scheduled. When the pool reports a size
// at or below target, the scheduled trim is cancelled. The trimmer closes
// itself when the pool begins closing.
type AutoTrimmer struct {
	pool   Governable
	target int
	delay  time.Duration
	logger *zap.Logger

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	closed bool
	unsubs []func()

	trims atomic.Int64
}

// NewAutoTrimmer attaches a trimmer to p. It fails with ErrPoolClosed if p is
// already closed and with ErrInvalidTarget if target is negative.
func NewAutoTrimmer(p Governable, target int, opts ...TrimmerOption) (*AutoTrimmer, error) {
	if target < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTarget, target)
	}
	if p.Closed() {
		return nil, ErrPoolClosed
	}

	cfg := &trimmerConfig{
		delay:  DefaultTrimDelay,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	t := &AutoTrimmer{
		pool:   p,
		target: target,
		delay:  cfg.delay,
		logger: cfg.logger,
	}

	t.mu.Lock()
	t.unsubs = []func(){
		p.OnBeforeClose(func() { _ = t.Close() }),
		p.OnReceived(t.received),
		p.OnReleased(t.released),
	}
	t.mu.Unlock()

	// A close that began before the subscription took effect never calls back.
	if p.Closed() {
		_ = t.Close()
		return nil, ErrPoolClosed
	}
	return t, nil
}

// Target returns the size the trimmer trims down to.
func (t *AutoTrimmer) Target() int {
	return t.target
}

// Trims returns how many scheduled trims have executed.
func (t *AutoTrimmer) Trims() int {
	return int(t.trims.Load())
}

// Pending reports whether a trim is currently scheduled.
func (t *AutoTrimmer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

func (t *AutoTrimmer) received(size int) {
	if size > t.target {
		t.schedule()
	}
}

func (t *AutoTrimmer) released(size int) {
	if size <= t.target {
		t.cancel()
	}
}

func (t *AutoTrimmer) schedule() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.stopLocked()
	gen := t.gen
	t.timer = time.AfterFunc(t.delay, func() { t.fire(gen) })
}

func (t *AutoTrimmer) cancel() {
	t.mu.Lock()
	t.stopLocked()
	t.mu.Unlock()
}

// stopLocked stops the pending timer and bumps the generation, so a timer
// whose callback is already running sees it is stale.
func (t *AutoTrimmer) stopLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *AutoTrimmer) fire(gen uint64) {
	t.mu.Lock()
	if t.closed || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.mu.Unlock()

	t.pool.TrimTo(t.target)
	t.trims.Add(1)
	t.logger.Debug("auto trim executed", zap.Int("target", t.target))
}

// Close cancels any scheduled trim and detaches from the pool. It is
// idempotent and always returns nil.
func (t *AutoTrimmer) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.stopLocked()
	unsubs := t.unsubs
	t.unsubs = nil
	t.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	return nil
}
