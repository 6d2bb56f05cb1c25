package store

// Channel is a bounded FIFO over a buffered channel. It is exported because
// the channel pool selects on C() while waiting for an item.
type Channel[E any] struct {
	ch chan *E
}

func NewChannel[E any](capacity int) *Channel[E] {
	return &Channel[E]{ch: make(chan *E, capacity)}
}

// C returns the receive side of the buffer.
func (c *Channel[E]) C() <-chan *E {
	return c.ch
}

func (c *Channel[E]) Receive(item *E) bool {
	select {
	case c.ch <- item:
		return true
	default:
		return false
	}
}

func (c *Channel[E]) Release() *E {
	select {
	case item := <-c.ch:
		return item
	default:
		return nil
	}
}

func (c *Channel[E]) Count() int {
	return len(c.ch)
}

func (c *Channel[E]) Drain(fn func(*E)) int {
	return drainWith(c.Release, fn)
}
