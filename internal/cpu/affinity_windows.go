//go:build windows

package cpu

import (
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// pinThread binds the current OS thread to core. Must be called after
// runtime.LockOSThread().
func pinThread(core int) (restore func(), err error) {
	handle, _, _ := getCurrentThread.Call()

	// Bit N = CPU N
	mask := uintptr(1) << uint(core)

	prevMask, _, callErr := setThreadAffinityMask.Call(handle, mask)
	if prevMask == 0 {
		return nil, callErr
	}

	return func() {
		_, _, _ = setThreadAffinityMask.Call(handle, prevMask)
	}, nil
}
