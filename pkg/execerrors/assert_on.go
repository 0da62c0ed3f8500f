//go:build ci

package execerrors

import (
	"fmt"
	"runtime"
)

const DebugAssertionsEnabled = true

// DebugAssertf panics if the condition is false in CI builds.
func DebugAssertf(condition func() bool, format string, args ...any) {
	if !condition() {
		panic(fmt.Sprintf(format, args...))
	}
}

// WatchForLeak panics when obj is garbage collected while leaked reports true
// for it. Only enabled in CI builds.
func WatchForLeak[T any](obj *T, leaked func(*T) bool, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	runtime.SetFinalizer(obj, func(obj *T) {
		if leaked(obj) {
			panic("leaked: " + msg)
		}
	})
}
