// Package algorithms holds the retry pacing used by the lock-free stores.
package algorithms

import (
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"
)

const (
	maxAttempts = 63 // Prevent overflow in backoff calculation

	// spinLimit is the number of attempts that busy-wait, doubling the spin
	// length each time.
	spinLimit = 6

	// yieldLimit is the attempt after which Wait starts sleeping.
	yieldLimit = 10

	minSleep     = time.Microsecond
	maxSleep     = time.Millisecond
	jitterFactor = 0.2
)

var spinWord atomic.Uint32

// Backoff paces the retries of one contended operation. The zero value is
// ready to use. A Backoff belongs to a single retry loop and is not safe for
// concurrent use.
//
// Early attempts spin, middle attempts yield the processor, and late attempts
// sleep for a jittered exponential delay between 1µs and 1ms, so a goroutine
// that keeps losing a CAS stops burning a core.
type Backoff struct {
	attempt int
}

// Wait blocks for the current attempt's delay and advances to the next.
func (b *Backoff) Wait() {
	switch {
	case b.attempt < spinLimit:
		spin(1 << b.attempt)
	case b.attempt < yieldLimit:
		runtime.Gosched()
	default:
		time.Sleep(Jittered(b.attempt-yieldLimit, minSleep, maxSleep, jitterFactor))
	}
	b.attempt++
}

// Attempts returns how many times Wait has been called since the last Reset.
func (b *Backoff) Attempts() int {
	return b.attempt
}

// Reset starts the schedule over.
func (b *Backoff) Reset() {
	b.attempt = 0
}

func spin(n int) {
	for range n {
		spinWord.Load()
	}
}

// Exponential returns initial * 2^attempt, capped at maxDelay.
// Uses bit shifting (2^n) instead of math.Pow, checked against the cap
// before shifting so large attempts cannot overflow.
func Exponential(attempt int, initial, maxDelay time.Duration) time.Duration {
	if attempt < 0 {
		return 0
	}

	if attempt >= maxAttempts {
		return maxDelay
	}

	if initial > maxDelay>>uint(attempt) {
		return maxDelay
	}

	return initial << uint(attempt)
}

// Jittered returns the exponential delay scaled by a random factor in
// [1-factor, 1+factor], capped at maxDelay.
//
// Example with factor=0.1: a base delay of 1s becomes a value between 900ms
// and 1100ms.
func Jittered(attempt int, initial, maxDelay time.Duration, factor float64) time.Duration {
	if attempt < 0 {
		return 0
	}

	factor = min(max(factor, 0), 1)
	base := Exponential(attempt, initial, maxDelay)
	multiplier := 1.0 + (rand.Float64()*2-1)*factor // #nosec G404 -- crypto rand not needed for backoff jitter

	return min(max(time.Duration(float64(base)*multiplier), 0), maxDelay)
}
