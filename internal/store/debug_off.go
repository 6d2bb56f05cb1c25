//go:build !debug

package store

func debugLog(string, ...any) {}
