package activity

import "sync/atomic"

// debugLoggingEnabled gates per-tick debug logs of the activity subsystem.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables activity debug logging.
// Call it during initialization, after the log level is known.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if activity debug logging is enabled.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
