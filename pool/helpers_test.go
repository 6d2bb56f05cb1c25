package pool

import (
	"sync/atomic"
	"testing"
	"time"
)

type tracked struct {
	id int
}

// counter hands out trackeds with increasing ids.
type counter struct {
	next atomic.Int64
}

func (c *counter) factory() *tracked {
	return &tracked{id: int(c.next.Add(1))}
}

func (c *counter) made() int {
	return int(c.next.Load())
}

type builder func(factory func() *tracked, opts ...PoolOption) (Pool[tracked], error)

// variantConfig defines a test configuration for one pool variant
type variantConfig struct {
	name      string
	build     builder
	trimmable bool
	strict    bool // no item is ever lost
}

func asPool[P Pool[tracked]](build func(func() *tracked, ...PoolOption) (P, error)) builder {
	return func(factory func() *tracked, opts ...PoolOption) (Pool[tracked], error) {
		p, err := build(factory, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func newSetCollection(factory func() *tracked, opts ...PoolOption) (*Trimmable[tracked], error) {
	return NewCollection(factory, NewSet[tracked](), opts...)
}

// getAllVariants returns every pool variant to test
func getAllVariants() []variantConfig {
	return []variantConfig{
		{name: "InterlockedArray", build: asPool(NewInterlockedArray[tracked]), strict: true},
		{name: "OptimisticArray", build: asPool(NewOptimisticArray[tracked])},
		{name: "ConcurrentQueue", build: asPool(NewConcurrentQueue[tracked]), trimmable: true, strict: true},
		{name: "ConcurrentStack", build: asPool(NewConcurrentStack[tracked]), trimmable: true, strict: true},
		{name: "Bag", build: asPool(NewBag[tracked]), trimmable: true, strict: true},
		{name: "Queue", build: asPool(NewQueue[tracked]), trimmable: true, strict: true},
		{name: "Stack", build: asPool(NewStack[tracked]), trimmable: true, strict: true},
		{name: "LinkedList", build: asPool(NewLinkedList[tracked]), trimmable: true, strict: true},
		{name: "Collection", build: asPool(newSetCollection), trimmable: true, strict: true},
		{name: "Channel", build: asPool(NewChannel[tracked]), trimmable: true, strict: true},
	}
}

func runVariantTest(t *testing.T, testFunc func(t *testing.T, v variantConfig)) {
	t.Helper()
	for _, v := range getAllVariants() {
		t.Run(v.name, func(t *testing.T) {
			testFunc(t, v)
		})
	}
}

func runTrimmableTest(t *testing.T, testFunc func(t *testing.T, v variantConfig)) {
	t.Helper()
	runVariantTest(t, func(t *testing.T, v variantConfig) {
		if !v.trimmable {
			t.Skip("array pools are not trimmable")
		}
		testFunc(t, v)
	})
}

func mustBuild(t *testing.T, v variantConfig, factory func() *tracked, opts ...PoolOption) Pool[tracked] {
	t.Helper()
	p, err := v.build(factory, opts...)
	if err != nil {
		t.Fatalf("failed to build %s pool: %v", v.name, err)
	}
	return p
}

// trimmableOf unwraps the Trimmable behind a variant's Pool.
func trimmableOf(t *testing.T, p Pool[tracked]) *Trimmable[tracked] {
	t.Helper()
	switch tp := p.(type) {
	case *Trimmable[tracked]:
		return tp
	case *ChannelPool[tracked]:
		return tp.Trimmable
	}
	t.Fatalf("pool %T is not trimmable", p)
	return nil
}

// eventually polls cond until it holds or timeout elapses.
func eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v: %s", timeout, msg)
}
