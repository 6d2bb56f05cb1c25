package pool

import (
	"context"
	"fmt"

	"github.com/utkarsh5026/objectpool/internal/store"
)

// ChannelPool is a FIFO pool backed by a buffered channel. Besides the
// non-blocking contract it offers TakeContext, which waits for an item to be
// given back while generating a fresh one, and returns whichever is ready
// first.
type ChannelPool[E any] struct {
	*Trimmable[E]
	ch *store.Channel[E]
}

// NewChannel creates a channel-backed pool. Count tracking is enabled by
// default. Every item passes through the channel, so a waiting TakeContext
// sees each one.
func NewChannel[E any](factory func() *E, opts ...PoolOption) (*ChannelPool[E], error) {
	cfg, err := createConfig(factory, opts)
	if err != nil {
		return nil, err
	}

	ch := store.NewChannel[E](cfg.capacity)
	t := buildTrimmable[E](store.KindChannel, ch, factory, cfg, true)
	return &ChannelPool[E]{Trimmable: t, ch: ch}, nil
}

type generated[E any] struct {
	item *E
	err  error
}

// TakeContext returns a pooled item if one is available. Otherwise it starts
// the factory in the background and waits for either an item to arrive in the
// pool or the factory to finish, whichever comes first.
//
// The losing side is not wasted: if an item arrived first, the generated item
// is given to the pool once the factory returns. A factory panic is reported
// as an error wrapping ErrFactoryPanic. If ctx ends first, ctx.Err() is
// returned and any generated item still goes to the pool.
func (p *ChannelPool[E]) TakeContext(ctx context.Context) (*E, error) {
	if item, ok := p.TryTake(); ok {
		return item, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gen := make(chan generated[E], 1)
	go func() {
		gen <- p.generateSafely()
	}()

	select {
	case item := <-p.ch.C():
		p.onReleased()
		go p.salvage(gen)
		return item, nil

	case r := <-gen:
		return r.item, r.err

	case <-ctx.Done():
		go p.salvage(gen)
		return nil, ctx.Err()
	}
}

func (p *ChannelPool[E]) generateSafely() (r generated[E]) {
	defer func() {
		if rec := recover(); rec != nil {
			r = generated[E]{err: fmt.Errorf("%w: %v", ErrFactoryPanic, rec)}
		}
	}()
	return generated[E]{item: p.Generate()}
}

func (p *ChannelPool[E]) salvage(gen <-chan generated[E]) {
	if r := <-gen; r.err == nil {
		p.Give(r.item)
	}
}
