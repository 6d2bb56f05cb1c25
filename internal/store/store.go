// Package store holds the backing-store strategies that sit behind every pool.
//
// A strategy only knows how to accept one item and release one item. Capacity
// policy, the pocket slot, recycling, discard and counting all live in the
// pool package, which composes a Store with those concerns.
package store

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCapacity = errors.New("store capacity must be at least 1")
	ErrUnknownKind     = errors.New("unknown store kind")
)

// Store is the accept/release strategy of a pool.
type Store[E any] interface {
	// Receive tries to accept item. It returns false when the store has no room.
	Receive(item *E) bool

	// Release removes one item, or returns nil when none is available.
	Release() *E

	// Count returns the number of stored items. Array stores scan to answer.
	Count() int

	// Drain removes every stored item, passing each to fn, and returns how many
	// were removed. It is used on teardown.
	Drain(fn func(*E)) int
}

type Kind int

const (
	KindInterlockedArray Kind = iota
	KindOptimisticArray
	KindConcurrentQueue
	KindConcurrentStack
	KindBag
	KindQueue
	KindStack
	KindLinkedList
	KindChannel
	KindCollection
)

var kindNames = map[Kind]string{
	KindInterlockedArray: "interlocked-array",
	KindOptimisticArray:  "optimistic-array",
	KindConcurrentQueue:  "concurrent-queue",
	KindConcurrentStack:  "concurrent-stack",
	KindBag:              "bag",
	KindQueue:            "queue",
	KindStack:            "stack",
	KindLinkedList:       "linked-list",
	KindChannel:          "channel",
	KindCollection:       "collection",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsArray reports whether the kind is one of the slot array stores, which hold
// capacity-1 items because the pool's pocket acts as the first slot.
func (k Kind) IsArray() bool {
	return k == KindInterlockedArray || k == KindOptimisticArray
}

// New creates the store for kind sized for a pool of the given capacity.
func New[E any](kind Kind, capacity int) (Store[E], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	switch kind {
	case KindInterlockedArray:
		return newArrayStore[E](capacity-1, true), nil

	case KindOptimisticArray:
		return newArrayStore[E](capacity-1, false), nil

	case KindConcurrentQueue:
		return newRingQueue[E](capacity), nil

	case KindConcurrentStack:
		return newTreiberStack[E](), nil

	case KindBag:
		return newBag[E](0), nil

	case KindQueue:
		return newLockedQueue[E](capacity), nil

	case KindStack:
		return newLockedStack[E](capacity), nil

	case KindLinkedList:
		return newLinkedList[E](), nil

	case KindChannel:
		return NewChannel[E](capacity), nil

	case KindCollection:
		return NewCollection[E](NewSet[E]()), nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}
