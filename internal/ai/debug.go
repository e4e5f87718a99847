package ai

import "sync/atomic"

// debugLoggingEnabled gates the per-tick state-change logs of enemy brains.
// Checked on every transition, so it is an atomic flag rather than a log level lookup.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables brain transition logging.
// Called once from main after the config is parsed.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Use this to guard debug log calls on the tick path:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("bat state changed", "actor", id, "to", state)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
