package zapadapter

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/logkit"
)

// Config is an explicit, code-first configuration for zap + logkit.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer             io.Writer             // default: os.Stdout
	Console            bool                  // pretty console-like output via zapcore.NewConsoleEncoder
	EncoderConfig      zapcore.EncoderConfig // if zero, a sensible default is used
	TimestampFieldName string                // default "ts" (aligns with logkit's authoritative timestamp)
	Subsystem          string                // default: main module path
	Observer           logkit.Observer       // optional
}

// NewAdapter builds the zap backend described by Config.
func NewAdapter(cfg Config) *Adapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	// Encoder config defaults: do not let zap inject its own time (logkit provides "ts")
	encCfg := cfg.EncoderConfig
	if encCfg.LevelKey == "" && encCfg.MessageKey == "" && encCfg.EncodeTime == nil {
		encCfg = zapcore.EncoderConfig{
			TimeKey:        "",
			LevelKey:       "level",
			MessageKey:     "message",
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		}
	} else {
		encCfg.TimeKey = ""
	}

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel)
	zl := zap.New(core, zap.AddStacktrace(zapcore.FatalLevel+1)) // effectively off
	return NewWithTimestampKey(zl, cfg.TimestampFieldName)
}

// NewLogger builds a zap-backed structured logkit.Logger from Config.
func NewLogger(cfg Config) *logkit.Logger {
	b := logkit.NewBuilder().
		WithAdapter(NewAdapter(cfg)).
		WithObserver(cfg.Observer)
	if cfg.Subsystem != "" {
		b = b.WithSubsystem(cfg.Subsystem)
	}
	logger, err := b.Build()
	if err != nil {
		// Build only fails with a nil adapter, which cannot happen here.
		panic(err)
	}
	return logger
}

// Use builds a zap-backed logger from Config, wires it as the global
// logkit logger, and returns it.
func Use(cfg Config) *logkit.Logger {
	logger := NewLogger(cfg)
	logkit.SetGlobal(logger)
	return logger
}
