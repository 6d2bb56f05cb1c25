package slot

import (
	"sync"
	"sync/atomic"
	"testing"
)

type item struct{ id int }

func TestSlot_TrySave(t *testing.T) {
	t.Run("empty slot accepts", func(t *testing.T) {
		var s Slot[item]
		a := &item{id: 1}
		if !s.TrySave(a) {
			t.Fatal("expected save into empty slot to succeed")
		}
		if !s.Occupied() {
			t.Error("slot should be occupied after save")
		}
	})

	t.Run("full slot rejects", func(t *testing.T) {
		var s Slot[item]
		a, b := &item{id: 1}, &item{id: 2}
		s.TrySave(a)
		if s.TrySave(b) {
			t.Fatal("expected save into full slot to fail")
		}
		if got := s.TryRetrieve(); got != a {
			t.Errorf("expected original item, got %v", got)
		}
	})
}

func TestSlot_TryRetrieve(t *testing.T) {
	var s Slot[item]
	if got := s.TryRetrieve(); got != nil {
		t.Fatalf("expected nil from empty slot, got %v", got)
	}

	a := &item{id: 7}
	s.SetIfNull(a)
	if got := s.TryRetrieve(); got != a {
		t.Fatalf("expected %p, got %p", a, got)
	}
	if s.Occupied() {
		t.Error("slot should be empty after retrieve")
	}
	if got := s.TryRetrieve(); got != nil {
		t.Errorf("second retrieve should be empty, got %v", got)
	}
}

func TestSlot_SetIfNull(t *testing.T) {
	var s Slot[item]
	a, b := &item{id: 1}, &item{id: 2}
	if !s.SetIfNull(a) {
		t.Fatal("expected SetIfNull on empty slot to succeed")
	}
	if s.SetIfNull(b) {
		t.Fatal("expected SetIfNull on full slot to fail")
	}
}

func TestSlot_ConcurrentSaveSingleWinner(t *testing.T) {
	for round := range 200 {
		var s Slot[item]
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if s.TrySave(&item{id: i}) {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		if wins.Load() != 1 {
			t.Fatalf("round %d: expected exactly one winner, got %d", round, wins.Load())
		}
	}
}

func TestSlot_ConcurrentRetrieveSingleWinner(t *testing.T) {
	for round := range 200 {
		var s Slot[item]
		s.TrySave(&item{id: round})

		var got atomic.Int32
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if s.TryRetrieve() != nil {
					got.Add(1)
				}
			}()
		}
		wg.Wait()
		if got.Load() != 1 {
			t.Fatalf("round %d: expected exactly one retrieval, got %d", round, got.Load())
		}
	}
}
