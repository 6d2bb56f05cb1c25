package store

import "github.com/utkarsh5026/objectpool/internal/slot"

// arrayStore is the slot array strategy. In strict mode every store goes
// through compare-and-swap and no item is ever lost. In optimistic mode the
// store is a plain check-then-set, so two racing gives can land on the same
// slot and one item is dropped. Retrieval is atomic in both modes, which rules
// out duplication.
type arrayStore[E any] struct {
	slots  *slot.Array[E]
	strict bool
}

func newArrayStore[E any](n int, strict bool) *arrayStore[E] {
	return &arrayStore[E]{
		slots:  slot.NewArray[E](n),
		strict: strict,
	}
}

func (s *arrayStore[E]) Receive(item *E) bool {
	return s.slots.Save(item, s.strict)
}

func (s *arrayStore[E]) Release() *E {
	return s.slots.Retrieve()
}

func (s *arrayStore[E]) Count() int {
	return s.slots.Count()
}

func (s *arrayStore[E]) Drain(fn func(*E)) int {
	return s.slots.Drain(fn)
}
