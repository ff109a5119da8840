package zerologadapter

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/logkit"
)

// Config is an explicit, code-first configuration for zerolog + logkit.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer            io.Writer       // default: os.Stdout
	Console           bool            // pretty console output instead of JSON
	ConsoleTimeFormat string          // only used if Console==true; default time.RFC3339Nano
	Subsystem         string          // default: main module path
	Observer          logkit.Observer // optional
}

// NewAdapter builds the zerolog backend described by Config.
func NewAdapter(cfg Config) *Adapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	var zl zerolog.Logger
	if cfg.Console {
		zl = zerolog.New(newConsoleWriter(w, cfg.ConsoleTimeFormat))
	} else {
		zl = zerolog.New(w)
	}
	return New(zl)
}

// NewLogger builds a zerolog-backed structured logkit.Logger from Config.
func NewLogger(cfg Config) *logkit.Logger {
	b := logkit.NewBuilder().
		WithAdapter(NewAdapter(cfg)).
		WithObserver(cfg.Observer)
	if cfg.Subsystem != "" {
		b = b.WithSubsystem(cfg.Subsystem)
	}
	logger, err := b.Build()
	if err != nil {
		// In practice, Build only fails with a nil adapter which cannot happen here.
		panic(err)
	}
	return logger
}

// Use builds a zerolog-backed logger from Config, wires it as the global
// logkit logger, and returns it.
func Use(cfg Config) *logkit.Logger {
	logger := NewLogger(cfg)
	logkit.SetGlobal(logger)
	return logger
}
