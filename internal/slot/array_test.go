package slot

import (
	"sync"
	"testing"
)

func TestArray_SaveRetrieve(t *testing.T) {
	a := NewArray[item](4)
	items := []*item{{1}, {2}, {3}, {4}}
	for _, it := range items {
		if !a.Save(it, true) {
			t.Fatalf("save %d failed", it.id)
		}
	}
	if a.Save(&item{5}, true) {
		t.Fatal("save into full array should fail")
	}
	if a.Count() != 4 {
		t.Errorf("expected count 4, got %d", a.Count())
	}

	seen := map[*item]bool{}
	for range 4 {
		it := a.Retrieve()
		if it == nil {
			t.Fatal("expected an item")
		}
		if seen[it] {
			t.Fatalf("item %d returned twice", it.id)
		}
		seen[it] = true
	}
	if a.Retrieve() != nil {
		t.Error("expected empty array")
	}
}

func TestArray_HighWaterMark(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		saves    int
		wantMark int
	}{
		{name: "untouched array", size: 20, saves: 0, wantMark: 0},
		{name: "first save jumps one step", size: 20, saves: 1, wantMark: MarkStep},
		{name: "saves inside step keep mark", size: 20, saves: MarkStep, wantMark: MarkStep},
		{name: "crossing the mark advances it", size: 20, saves: MarkStep + 1, wantMark: 2 * MarkStep},
		{name: "mark is clamped to length", size: 3, saves: 3, wantMark: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArray[item](tt.size)
			for i := range tt.saves {
				a.Save(&item{i}, true)
			}
			if got := a.Mark(); got != tt.wantMark {
				t.Errorf("expected mark %d, got %d", tt.wantMark, got)
			}
		})
	}
}

func TestArray_RetrieveBoundedByMark(t *testing.T) {
	a := NewArray[item](10)
	if a.Retrieve() != nil {
		t.Fatal("expected nil from untouched array")
	}

	a.Save(&item{1}, false)
	a.Save(&item{2}, false)
	if a.Retrieve() == nil || a.Retrieve() == nil {
		t.Fatal("expected both items below the mark")
	}
}

func TestArray_Drain(t *testing.T) {
	a := NewArray[item](6)
	for i := range 6 {
		a.Save(&item{i}, true)
	}

	var drained []*item
	n := a.Drain(func(it *item) { drained = append(drained, it) })
	if n != 6 || len(drained) != 6 {
		t.Fatalf("expected 6 drained, got n=%d len=%d", n, len(drained))
	}
	if a.Count() != 0 {
		t.Errorf("expected empty array after drain, got %d", a.Count())
	}
}

func TestArray_ZeroLength(t *testing.T) {
	a := NewArray[item](0)
	if a.Save(&item{1}, true) {
		t.Error("zero length array must reject saves")
	}
	if a.Retrieve() != nil {
		t.Error("zero length array must be empty")
	}
}

func TestArray_ConcurrentStrictConservation(t *testing.T) {
	const size = 64
	a := NewArray[item](size)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range size / 8 {
				if !a.Save(&item{g*100 + i}, true) {
					t.Errorf("strict save should never fail below capacity")
				}
			}
		}()
	}
	wg.Wait()

	if got := a.Count(); got != size {
		t.Fatalf("expected %d stored items, got %d", size, got)
	}
}
