//go:build !linux && !windows

package cpu

// pinThread is unavailable here; macOS, for one, offers no thread affinity.
func pinThread(int) (func(), error) {
	return nil, ErrUnsupported
}
