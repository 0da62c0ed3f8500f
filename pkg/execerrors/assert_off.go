//go:build !ci

package execerrors

const DebugAssertionsEnabled = false

// DebugAssertf is a no-op in non-CI builds.
func DebugAssertf(condition func() bool, format string, args ...any) {}

// WatchForLeak is a no-op in non-CI builds.
func WatchForLeak[T any](obj *T, leaked func(*T) bool, format string, args ...any) {}
