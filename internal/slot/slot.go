// Package slot provides the single-reference cell that every array-backed
// pool is built from, plus the owned slot array with its high-water mark.
package slot

import "sync/atomic"

// Slot holds at most one item. The zero value is an empty slot.
//
// A Slot must not be copied after first use; it is always addressed in place,
// either as a struct field or by index into an Array.
type Slot[E any] struct {
	_     noCopy
	value atomic.Pointer[E]
}

// SetIfNull stores v if the slot currently looks empty.
//
// The emptiness check and the store are two separate atomic operations, so two
// racing callers can both succeed and one of the items is overwritten. This is
// the optimistic store path; callers accept that an overwritten item is simply
// dropped for the garbage collector.
func (s *Slot[E]) SetIfNull(v *E) bool {
	if s.value.Load() != nil {
		return false
	}
	s.value.Store(v)
	return true
}

// TrySave stores v only if the slot is empty, using compare-and-swap.
// At most one of any number of racing TrySave calls on an empty slot succeeds.
func (s *Slot[E]) TrySave(v *E) bool {
	return s.value.Load() == nil && s.value.CompareAndSwap(nil, v)
}

// TryRetrieve takes the current item, leaving the slot empty.
// It returns nil without side effects when the slot is empty.
func (s *Slot[E]) TryRetrieve() *E {
	if s.value.Load() == nil {
		return nil
	}
	return s.value.Swap(nil)
}

// Occupied reports whether the slot held an item at the moment of the call.
func (s *Slot[E]) Occupied() bool {
	return s.value.Load() != nil
}

// noCopy trips `go vet -copylocks` when a Slot is copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
