package slogadapter

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/logkit"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

// Config is an explicit, code-first configuration for slog + logkit.
// One call to Use wires a slog-backed logkit logger and sets it global.
type Config struct {
	Writer             io.Writer            // default: os.Stdout
	Format             Format               // JSON (default) or Text
	HandlerOptions     *slog.HandlerOptions // optional; Level defaults to debug so logkit controls routing
	TimestampFieldName string               // default "ts" (aligns with logkit's authoritative timestamp)
	Subsystem          string               // default: main module path
	Observer           logkit.Observer      // optional
}

// NewAdapter builds the slog backend described by Config.
func NewAdapter(cfg Config) *SlogAdapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	opts := slog.HandlerOptions{Level: slog.LevelDebug}
	if cfg.HandlerOptions != nil {
		opts = *cfg.HandlerOptions
	}
	opts.ReplaceAttr = withFaultLevelName(opts.ReplaceAttr)

	var h slog.Handler
	if cfg.Format == FormatText {
		h = slog.NewTextHandler(w, &opts)
	} else {
		h = slog.NewJSONHandler(w, &opts)
	}
	return NewWithTimestampKey(slog.New(h), cfg.TimestampFieldName)
}

// NewLogger builds a slog-backed structured logkit.Logger from Config.
func NewLogger(cfg Config) *logkit.Logger {
	b := logkit.NewBuilder().
		WithAdapter(NewAdapter(cfg)).
		WithObserver(cfg.Observer)
	if cfg.Subsystem != "" {
		b = b.WithSubsystem(cfg.Subsystem)
	}
	logger, err := b.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// Use builds a slog-backed logger from Config, sets it as global, and returns it.
func Use(cfg Config) *logkit.Logger {
	logger := NewLogger(cfg)
	logkit.SetGlobal(logger)
	return logger
}

// withFaultLevelName renders logkit.LevelFault as "FAULT" instead of slog's
// default "ERROR+4", then defers to next.
func withFaultLevelName(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && a.Key == slog.LevelKey {
			if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == toSlog(logkit.LevelFault) {
				a.Value = slog.StringValue("FAULT")
			}
		}
		if next != nil {
			return next(groups, a)
		}
		return a
	}
}
