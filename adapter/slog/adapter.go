package slogadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/trickstertwo/logkit"
)

// Attribute keys written by every adapter handle.
const (
	SubsystemKey = "subsystem"
	CategoryKey  = "category"
)

// SlogAdapter adapts logkit to the Go slog API (Adapter Strategy).
// It builds slog.Attrs directly for low overhead and uses LogAttrs.
type SlogAdapter struct {
	l     *slog.Logger
	tsKey string
}

// toSlog keeps logkit's numeric levels; LevelFault lands at slog.LevelError+4.
func toSlog(l logkit.Level) slog.Level {
	return slog.Level(l)
}

func New(l *slog.Logger) *SlogAdapter {
	return NewWithTimestampKey(l, "ts")
}

// NewWithTimestampKey lets callers override the timestamp attribute key (default "ts").
func NewWithTimestampKey(l *slog.Logger, tsKey string) *SlogAdapter {
	if l == nil {
		l = slog.Default()
	}
	if tsKey == "" {
		tsKey = "ts"
	}
	return &SlogAdapter{l: l, tsKey: tsKey}
}

// With returns a handle whose records carry subsystem and category.
func (a *SlogAdapter) With(subsystem, category string) logkit.Adapter {
	child := *a
	child.l = a.l.With(slog.String(SubsystemKey, subsystem), slog.String(CategoryKey, category))
	return &child
}

func (a *SlogAdapter) Log(level logkit.Level, msg string, at time.Time) {
	// Single authoritative timestamp provided by Logger
	a.l.LogAttrs(context.Background(), toSlog(level), msg, slog.Time(a.tsKey, at))
}
