// Package cpu pins goroutines to CPU cores for the benchmark harness.
package cpu

import (
	"errors"
	"runtime"
)

// ErrUnsupported is returned by Pin on platforms without thread affinity.
var ErrUnsupported = errors.New("cpu pinning is not supported on this platform")

// Count returns the number of logical CPUs available.
func Count() int {
	return runtime.NumCPU()
}

// Core maps a worker index onto a core index in [0, Count()).
func Core(worker int) int {
	n := Count()
	return ((worker % n) + n) % n
}

// Pin locks the calling goroutine to its OS thread and binds that thread to
// the core for worker. The returned function restores the thread's previous
// affinity and unlocks it; it must run on the same goroutine, typically via
// defer. On failure the goroutine is left unlocked.
func Pin(worker int) (unpin func(), err error) {
	runtime.LockOSThread()

	restore, err := pinThread(Core(worker))
	if err != nil {
		runtime.UnlockOSThread()
		return func() {}, err
	}

	return func() {
		restore()
		runtime.UnlockOSThread()
	}, nil
}
