package logkit

import (
	"io"

	"github.com/trickstertwo/xclock"
)

// ErrorHandler receives failures the logger swallows (console write errors,
// adapter panics). Logging itself never returns an error.
type ErrorHandler func(error)

// Config for constructing a Logger (Factory data structure).
type Config struct {
	// Adapter is the structured backend. Required when Structured is true.
	Adapter Adapter
	// Structured reports whether the host supports structured logging.
	// When false every message takes the console path.
	Structured bool
	// Subsystem identifies the host application to the structured backend.
	Subsystem string
	// Preview forces the console path while it reports true. Optional.
	Preview Probe
	// Writer receives console lines. Defaults to os.Stdout.
	Writer io.Writer
	// Clock is optional; defaults to xclock.Default() at call time.
	Clock xclock.Clock
	// Observer is installed into the logger's observer slot. Optional.
	Observer Observer
	// ErrorHandler defaults to a one-line report on stderr.
	ErrorHandler ErrorHandler
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg Config
}

// NewBuilder starts from the process defaults: the main module path as
// subsystem and the LOGKIT_PREVIEW environment probe.
func NewBuilder() *Builder {
	return &Builder{cfg: Config{
		Subsystem: defaultSubsystem(),
		Preview:   EnvProbe(DefaultPreviewEnv),
	}}
}

// WithAdapter sets the structured backend and enables structured logging.
func (b *Builder) WithAdapter(a Adapter) *Builder {
	b.cfg.Adapter = a
	b.cfg.Structured = a != nil
	return b
}

// WithStructured overrides the structured-logging capability flag.
func (b *Builder) WithStructured(v bool) *Builder {
	b.cfg.Structured = v
	return b
}

func (b *Builder) WithSubsystem(s string) *Builder {
	b.cfg.Subsystem = s
	return b
}

func (b *Builder) WithPreviewProbe(p Probe) *Builder {
	b.cfg.Preview = p
	return b
}

func (b *Builder) WithWriter(w io.Writer) *Builder {
	b.cfg.Writer = w
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

func (b *Builder) WithObserver(o Observer) *Builder {
	b.cfg.Observer = o
	return b
}

func (b *Builder) WithErrorHandler(h ErrorHandler) *Builder {
	b.cfg.ErrorHandler = h
	return b
}

// Build constructs the Logger (Factory + Builder).
func (b *Builder) Build() (*Logger, error) {
	return New(b.cfg)
}

// New constructs a Logger straight from Config.
func New(cfg Config) (*Logger, error) {
	if cfg.Structured && cfg.Adapter == nil {
		return nil, ErrNoAdapter
	}
	return newLogger(cfg), nil
}
