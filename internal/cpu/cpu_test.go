package cpu

import (
	"errors"
	"testing"
)

func TestCore(t *testing.T) {
	n := Count()
	tests := []struct {
		worker int
		want   int
	}{
		{0, 0},
		{n, 0},
		{n + 1, 1 % n},
		{-1, n - 1},
	}

	for _, tt := range tests {
		if got := Core(tt.worker); got != tt.want {
			t.Errorf("Core(%d) = %d, want %d", tt.worker, got, tt.want)
		}
	}
}

func TestPin(t *testing.T) {
	unpin, err := Pin(0)
	if errors.Is(err, ErrUnsupported) {
		t.Skip("pinning not supported on this platform")
	}
	if err != nil {
		t.Skipf("pinning rejected by the environment: %v", err)
	}
	unpin()

	// Pinning again after restore must work as well.
	unpin, err = Pin(1)
	if err != nil {
		t.Skipf("pinning rejected by the environment: %v", err)
	}
	unpin()
}
