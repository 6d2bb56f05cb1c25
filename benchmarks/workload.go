package benchmarks

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/utkarsh5026/objectpool/internal/cpu"
	"github.com/utkarsh5026/objectpool/pool"
	"golang.org/x/sync/errgroup"
)

// Phase names, in the order they run.
const (
	PhaseTakeFromEmpty = "Take From Empty (parallel)"
	PhaseGiveTo        = "Give To (parallel)"
	PhaseMixed         = "Mixed Read/Write (parallel)"
	PhaseEmpty         = "Empty Pool (TryTake)"
)

// Phases lists every phase name in run order.
var Phases = []string{PhaseTakeFromEmpty, PhaseGiveTo, PhaseMixed, PhaseEmpty}

// Config controls one workload run.
type Config struct {
	// Size is the pool capacity and the number of operations per phase.
	Size int

	// Workers is the number of goroutines in parallel phases.
	// If not positive, defaults to runtime.GOMAXPROCS(0).
	Workers int

	// Pin binds each worker goroutine to a CPU core.
	Pin bool
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Timing is the elapsed time of one phase.
type Timing struct {
	Phase   string
	Elapsed time.Duration
}

// RunOnce builds a fresh pool for v and times every phase against it.
//
// A side pool, the "tank", holds items taken out of the pool under test so
// its cost is the same for every variant.
func RunOnce(ctx context.Context, v Variant, cfg Config) ([]Timing, error) {
	if cfg.Size < 1 {
		return nil, fmt.Errorf("benchmark size must be at least 1, got %d", cfg.Size)
	}

	p, err := v.New(cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", v.Name, err)
	}
	defer p.Close()

	tank, err := pool.NewConcurrentStack(newItem, pool.WithCapacity(cfg.Size*3))
	if err != nil {
		return nil, err
	}
	defer tank.Close()

	timings := make([]Timing, 0, len(Phases))
	measure := func(phase string, fn func() error) error {
		start := time.Now()
		if err := fn(); err != nil {
			return fmt.Errorf("%s / %s: %w", v.Name, phase, err)
		}
		timings = append(timings, Timing{Phase: phase, Elapsed: time.Since(start)})
		return nil
	}

	if err := measure(PhaseTakeFromEmpty, func() error {
		return parallelFor(ctx, cfg, cfg.Size, func(int) {
			tank.Give(p.Take())
		})
	}); err != nil {
		return nil, err
	}

	for range cfg.Size {
		tank.Give(p.Generate())
	}
	items := drain(tank)

	if err := measure(PhaseGiveTo, func() error {
		return parallelFor(ctx, cfg, len(items), func(i int) {
			p.Give(items[i])
		})
	}); err != nil {
		return nil, err
	}

	if err := measure(PhaseMixed, func() error {
		return parallelFor(ctx, cfg, cfg.Size, func(i int) {
			if i%2 == 0 {
				tank.Give(p.Take())
			} else if it, ok := tank.TryTake(); ok {
				p.Give(it)
			}
		})
	}); err != nil {
		return nil, err
	}

	if err := measure(PhaseEmpty, func() error {
		for {
			if _, ok := p.TryTake(); !ok {
				return nil
			}
		}
	}); err != nil {
		return nil, err
	}

	return timings, nil
}

// parallelFor runs fn for every index in [0, n), split into contiguous
// chunks across the configured workers.
func parallelFor(ctx context.Context, cfg Config, n int, fn func(i int)) error {
	workers := min(cfg.workers(), n)
	if workers < 1 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers

	for w := range workers {
		lo, hi := w*chunk, min((w+1)*chunk, n)
		if lo >= hi {
			break
		}

		g.Go(func() error {
			if cfg.Pin {
				unpin, err := cpu.Pin(w)
				if err != nil {
					return fmt.Errorf("pinning worker %d: %w", w, err)
				}
				defer unpin()
			}

			for i := lo; i < hi; i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				fn(i)
			}
			return nil
		})
	}

	return g.Wait()
}

func drain[E any](p pool.Pool[E]) []*E {
	var items []*E
	for {
		it, ok := p.TryTake()
		if !ok {
			return items
		}
		items = append(items, it)
	}
}
