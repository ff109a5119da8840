package zapadapter

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/logkit"
)

// Field keys written by every adapter handle.
const (
	SubsystemKey = "subsystem"
	CategoryKey  = "category"
)

// Adapter bridges logkit to go.uber.org/zap with low overhead.
//
// Optimizations:
//   - With() binds subsystem and category onto a child zap.Logger once, so
//     each Log call only adds the timestamp.
//   - Uses Logger.Check(level, msg) to skip disabled levels.
//   - Guarantees RFC3339Nano "ts" precision by writing it as a string field.
type Adapter struct {
	l     *zap.Logger
	tsKey string // timestamp field key; default "ts"
}

// New creates an adapter for the provided zap logger.
func New(l *zap.Logger) *Adapter {
	return NewWithTimestampKey(l, "ts")
}

// NewWithTimestampKey lets callers override the timestamp field key (default "ts").
func NewWithTimestampKey(l *zap.Logger, tsKey string) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	if tsKey == "" {
		tsKey = "ts"
	}
	return &Adapter{l: l, tsKey: tsKey}
}

// With returns a handle whose entries carry subsystem and category.
func (a *Adapter) With(subsystem, category string) logkit.Adapter {
	child := *a
	child.l = a.l.With(zap.String(SubsystemKey, subsystem), zap.String(CategoryKey, category))
	return &child
}

// Log emits a single entry. Fault maps to Error to avoid the panicking
// DPanic/Panic/Fatal levels in library code.
func (a *Adapter) Log(level logkit.Level, msg string, at time.Time) {
	ce := a.l.Check(toZapLevel(level), msg)
	if ce == nil {
		return
	}
	ce.Write(zap.String(a.tsKey, at.UTC().Format(time.RFC3339Nano)))
}

func toZapLevel(l logkit.Level) zapcore.Level {
	switch {
	case l <= logkit.LevelDebug:
		return zapcore.DebugLevel
	case l <= logkit.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.ErrorLevel
	}
}
