package zerologadapter

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/logkit"
)

// Field keys written by every adapter handle.
const (
	SubsystemKey = "subsystem"
	CategoryKey  = "category"

	timestampKey = "ts"
)

// Adapter bridges logkit to rs/zerolog with low overhead.
//
// Optimizations:
//   - With() binds subsystem and category onto a child zerolog.Logger once.
//   - Fast pre-check using GetLevel() to avoid allocating zerolog.Event when
//     the level is disabled.
//   - Uses Logger.WithLevel(...) to avoid a level switch at call sites.
type Adapter struct {
	l zerolog.Logger
}

func New(l zerolog.Logger) *Adapter {
	return &Adapter{l: l}
}

// With returns a handle whose entries carry subsystem and category.
func (a *Adapter) With(subsystem, category string) logkit.Adapter {
	child := *a
	child.l = a.l.With().
		Str(SubsystemKey, subsystem).
		Str(CategoryKey, category).
		Logger()
	return &child
}

// Log emits a single entry.
// - Single authoritative timestamp provided by logkit passed as "ts".
// - Fault lands on FatalLevel; WithLevel never exits for it.
func (a *Adapter) Log(level logkit.Level, msg string, at time.Time) {
	zlvl := mapLevel(level)

	// Fast path: drop early if below logger's min level (no Event allocation).
	if zlvl < a.l.GetLevel() {
		return
	}

	// Ensure RFC3339Nano precision regardless of zerolog.TimeFieldFormat defaults.
	a.l.WithLevel(zlvl).
		Str(timestampKey, at.UTC().Format(time.RFC3339Nano)).
		Msg(msg)
}

// mapLevel converts logkit.Level to zerolog.Level.
func mapLevel(l logkit.Level) zerolog.Level {
	switch {
	case l <= logkit.LevelDebug:
		return zerolog.DebugLevel
	case l <= logkit.LevelInfo:
		return zerolog.InfoLevel
	case l <= logkit.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}
