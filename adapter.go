package logkit

import "time"

// Adapter is the structured logging backend Strategy (e.g., zap wrapper).
// Log receives the single authoritative timestamp 'at' from the Logger so the
// adapter and the console path agree on time.
type Adapter interface {
	Log(level Level, msg string, at time.Time)
	// With returns a handle bound to subsystem and category (do not mutate receiver).
	With(subsystem, category string) Adapter
}
