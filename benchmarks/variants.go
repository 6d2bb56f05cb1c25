// Package benchmarks holds the pool workload shared by the Go benchmarks and
// the poolbench command: the registry of pool variants, the timed phases, and
// the ranking of results.
package benchmarks

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/utkarsh5026/objectpool/pool"
)

// ErrUnknownVariant is returned by Select for a name not in the registry.
var ErrUnknownVariant = errors.New("unknown pool variant")

// Item is the pooled value used by every workload. The payload gives it a
// realistic allocation size.
type Item struct {
	ID      int
	Payload [64]byte
}

func newItem() *Item {
	return &Item{}
}

// Variant names a pool constructor under test.
type Variant struct {
	Name string
	New  func(capacity int) (pool.Pool[Item], error)
}

func variant[P pool.Pool[Item]](name string, build func(func() *Item, ...pool.PoolOption) (P, error)) Variant {
	return Variant{
		Name: name,
		New: func(capacity int) (pool.Pool[Item], error) {
			p, err := build(newItem, pool.WithCapacity(capacity))
			if err != nil {
				return nil, err
			}
			return p, nil
		},
	}
}

var registry = []Variant{
	variant("interlocked-array", pool.NewInterlockedArray[Item]),
	variant("optimistic-array", pool.NewOptimisticArray[Item]),
	variant("concurrent-queue", pool.NewConcurrentQueue[Item]),
	variant("concurrent-stack", pool.NewConcurrentStack[Item]),
	variant("bag", pool.NewBag[Item]),
	variant("queue", pool.NewQueue[Item]),
	variant("stack", pool.NewStack[Item]),
	variant("linked-list", pool.NewLinkedList[Item]),
	variant("collection", func(factory func() *Item, opts ...pool.PoolOption) (*pool.Trimmable[Item], error) {
		return pool.NewCollection(factory, pool.NewSet[Item](), opts...)
	}),
	variant("channel", pool.NewChannel[Item]),
}

// Variants returns every registered variant in a stable order.
func Variants() []Variant {
	return slices.Clone(registry)
}

// Names returns the registered variant names.
func Names() []string {
	names := make([]string, len(registry))
	for i, v := range registry {
		names[i] = v.Name
	}
	return names
}

// Select returns the variants with the given names, in the order given.
// An empty list selects every variant.
func Select(names []string) ([]Variant, error) {
	if len(names) == 0 {
		return Variants(), nil
	}

	selected := make([]Variant, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		idx := slices.IndexFunc(registry, func(v Variant) bool { return v.Name == name })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownVariant, name, strings.Join(Names(), ", "))
		}
		selected = append(selected, registry[idx])
	}
	return selected, nil
}
