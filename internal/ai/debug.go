package ai

import "sync/atomic"

// debugEnabled gates verbose per-tick logging. Off by default because tick
// handlers run for every agent every period.
var debugEnabled atomic.Bool

// SetDebug enables or disables verbose AI debug logging.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// IsDebugEnabled reports whether verbose AI debug logging is on.
func IsDebugEnabled() bool {
	return debugEnabled.Load()
}
