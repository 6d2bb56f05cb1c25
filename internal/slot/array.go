package slot

import "sync/atomic"

// MarkStep is how far the high-water mark jumps past the index that pushed it.
// Advancing in steps keeps the mark from being rewritten on every insert.
const MarkStep = 5

// Array is a fixed run of slots owned by one pool.
//
// Saves scan from index 0 and stop at the first empty slot. Retrievals only scan
// below the high-water mark, which always lies above every index that has ever
// been written, so the scan cost is bounded by the region actually touched.
type Array[E any] struct {
	slots []Slot[E]
	mark  atomic.Int64
}

// NewArray allocates an array of n empty slots. n may be zero.
func NewArray[E any](n int) *Array[E] {
	if n < 0 {
		n = 0
	}
	return &Array[E]{slots: make([]Slot[E], n)}
}

// Len returns the number of slots.
func (a *Array[E]) Len() int {
	return len(a.slots)
}

// Mark returns the current high-water mark.
func (a *Array[E]) Mark() int {
	return int(a.mark.Load())
}

// Save stores item in the first empty slot. When strict is false the
// optimistic SetIfNull store is used instead of compare-and-swap.
func (a *Array[E]) Save(item *E, strict bool) bool {
	for i := range a.slots {
		s := &a.slots[i]
		var ok bool
		if strict {
			ok = s.TrySave(item)
		} else {
			ok = s.SetIfNull(item)
		}
		if ok {
			a.raiseMark(i)
			return true
		}
	}
	return false
}

// Retrieve removes and returns the first item found below the high-water mark,
// or nil if that region is empty.
func (a *Array[E]) Retrieve() *E {
	limit := min(int(a.mark.Load()), len(a.slots))
	for i := 0; i < limit; i++ {
		if item := a.slots[i].TryRetrieve(); item != nil {
			return item
		}
	}
	return nil
}

// Count returns the number of occupied slots. It is O(n) and only meant for
// diagnostics.
func (a *Array[E]) Count() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].Occupied() {
			n++
		}
	}
	return n
}

// Drain empties every slot, not just those below the mark, passing each item
// to fn. It returns the number of items removed.
func (a *Array[E]) Drain(fn func(*E)) int {
	n := 0
	for i := range a.slots {
		if item := a.slots[i].TryRetrieve(); item != nil {
			n++
			if fn != nil {
				fn(item)
			}
		}
	}
	return n
}

func (a *Array[E]) raiseMark(index int) {
	for {
		cur := a.mark.Load()
		if int64(index) < cur {
			return
		}
		next := int64(min(index+MarkStep, len(a.slots)))
		if a.mark.CompareAndSwap(cur, next) {
			return
		}
	}
}
