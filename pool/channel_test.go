package pool

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestChannelPool_TakeContextPooled(t *testing.T) {
	c := &counter{}
	p, err := NewChannel(c.factory)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	a := p.Generate()
	p.Give(a)

	got, err := p.TakeContext(context.Background())
	if err != nil || got != a {
		t.Fatalf("expected pooled item without error, got %v, %v", got, err)
	}
	if c.made() != 1 {
		t.Errorf("expected no generation, factory ran %d times", c.made())
	}
}

func TestChannelPool_TakeContextGenerates(t *testing.T) {
	c := &counter{}
	p, err := NewChannel(c.factory)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	got, err := p.TakeContext(context.Background())
	if err != nil || got == nil {
		t.Fatalf("expected generated item, got %v, %v", got, err)
	}
	if c.made() != 1 {
		t.Errorf("expected one generation, got %d", c.made())
	}
}

func TestChannelPool_TakeContextGivenItemWinsAndGeneratedIsSalvaged(t *testing.T) {
	gate := make(chan struct{})
	var made counter
	p, err := NewChannel(func() *tracked {
		<-gate
		return made.factory()
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	given := &tracked{id: -1}
	go func() {
		time.Sleep(20 * time.Millisecond)
		p.Give(given)
	}()

	got, err := p.TakeContext(context.Background())
	if err != nil {
		t.Fatalf("TakeContext failed: %v", err)
	}
	if got != given {
		t.Fatalf("expected the given item to win the race, got %v", got)
	}

	close(gate)
	eventually(t, time.Second, func() bool { return p.Count() == 1 }, "generated item offered to the pool")

	salvaged, ok := p.TryTake()
	if !ok || salvaged.id != 1 {
		t.Errorf("expected the salvaged generated item, got %v", salvaged)
	}
}

func TestChannelPool_TakeContextCancelled(t *testing.T) {
	gate := make(chan struct{})
	p, err := NewChannel(func() *tracked {
		<-gate
		return &tracked{id: 42}
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := p.TakeContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}

	close(gate)
	eventually(t, time.Second, func() bool { return p.Count() == 1 }, "late generated item kept")

	t.Run("already cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p.TryTake()
		if _, err := p.TakeContext(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestChannelPool_TakeContextFactoryPanic(t *testing.T) {
	p, err := NewChannel(func() *tracked { panic("no more connections") })
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if _, err := p.TakeContext(context.Background()); !errors.Is(err, ErrFactoryPanic) {
		t.Errorf("expected ErrFactoryPanic, got %v", err)
	}
}

func TestChannelPool_TakeContextEmitsReleased(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)

	p, err := NewChannel(func() *tracked {
		<-gate
		return &tracked{}
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	released := make(chan int, 1)
	p.OnReleased(func(n int) { released <- n })

	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Give(&tracked{id: 5})
	}()

	if _, err := p.TakeContext(context.Background()); err != nil {
		t.Fatalf("TakeContext failed: %v", err)
	}

	select {
	case n := <-released:
		if n != 0 {
			t.Errorf("expected Released(0), got %d", n)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a Released event for the waited item")
	}
}
