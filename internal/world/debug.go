package world

import "sync/atomic"

var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables per-tick step logs.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if per-tick step logging is enabled.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
