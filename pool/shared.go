package pool

import (
	"bytes"
	"reflect"
	"strings"
	"sync"
)

// sharedSliceCap is the spare capacity a pooled slice may keep.
const sharedSliceCap = 16

// Shared is a process-wide pool that lives as long as the program. Close
// always fails with ErrSharedPool and leaves the pool working, because other
// callers may still be using it.
type Shared[E any] struct {
	*ArrayPool[E]
}

// Close returns ErrSharedPool.
func (s *Shared[E]) Close() error {
	return ErrSharedPool
}

func newShared[E any](factory func() *E, recycle func(*E)) *Shared[E] {
	p, err := NewInterlockedArray(factory, WithRecycler(recycle))
	if err != nil {
		panic("pool: building shared pool: " + err.Error())
	}
	return &Shared[E]{ArrayPool: p}
}

var (
	sharedBuffers = sync.OnceValue(func() *Shared[bytes.Buffer] {
		return newShared(
			func() *bytes.Buffer { return new(bytes.Buffer) },
			func(b *bytes.Buffer) { b.Reset() },
		)
	})

	sharedBuilders = sync.OnceValue(func() *Shared[strings.Builder] {
		return newShared(
			func() *strings.Builder { return new(strings.Builder) },
			func(b *strings.Builder) { b.Reset() },
		)
	})

	// sharedByType holds the Slices and Maps pools, keyed by container type.
	sharedByType sync.Map
)

// Buffers returns the shared pool of bytes.Buffer. Buffers are reset when given back.
func Buffers() *Shared[bytes.Buffer] {
	return sharedBuffers()
}

// Builders returns the shared pool of strings.Builder. Builders are reset when given back.
func Builders() *Shared[strings.Builder] {
	return sharedBuilders()
}

// Slices returns the shared pool of []T. Slices are cleared and truncated
// when given back. A slice that grew past 16 elements gets a fresh 16-element
// backing array, so the large one can be collected.
func Slices[T any]() *Shared[[]T] {
	return sharedFor(func() *Shared[[]T] {
		return newShared(
			func() *[]T {
				s := make([]T, 0, sharedSliceCap)
				return &s
			},
			func(s *[]T) {
				if cap(*s) > sharedSliceCap {
					*s = make([]T, 0, sharedSliceCap)
					return
				}
				clear(*s)
				*s = (*s)[:0]
			},
		)
	})
}

// Maps returns the shared pool of map[K]V. Maps are cleared when given back.
func Maps[K comparable, V any]() *Shared[map[K]V] {
	return sharedFor(func() *Shared[map[K]V] {
		return newShared(
			func() *map[K]V {
				m := make(map[K]V)
				return &m
			},
			func(m *map[K]V) { clear(*m) },
		)
	})
}

func sharedFor[E any](build func() *Shared[E]) *Shared[E] {
	key := reflect.TypeFor[E]()
	if p, ok := sharedByType.Load(key); ok {
		return p.(*Shared[E])
	}
	p, _ := sharedByType.LoadOrStore(key, build())
	return p.(*Shared[E])
}
