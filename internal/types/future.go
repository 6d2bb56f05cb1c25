package types

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrWaitTimeout is returned by WaitTimeout when the future does not complete in time.
var ErrWaitTimeout = errors.New("error waiting for completion: timeout reached")

// Future is a one-shot completion signal carrying an optional error.
// It is safe to wait on from any number of goroutines.
type Future struct {
	done chan struct{}
	once sync.Once
	err  error
}

// NewFuture returns a future that has not completed yet.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Completed returns a future that is already done with err.
func Completed(err error) *Future {
	f := NewFuture()
	f.Complete(err)
	return f
}

// Complete marks the future as done. Only the first call has an effect.
func (f *Future) Complete(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done returns a channel that is closed once the future completes.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsReady reports whether the future has completed, without blocking.
func (f *Future) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the future completes and returns its error.
func (f *Future) Wait() error {
	<-f.done
	return f.err
}

// WaitContext blocks until the future completes or ctx is done.
func (f *Future) WaitContext(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitTimeout blocks until the future completes or timeout elapses.
// A timeout of zero or less waits forever.
func (f *Future) WaitTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return f.Wait()
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.err
	case <-timer.C:
		return ErrWaitTimeout
	}
}
