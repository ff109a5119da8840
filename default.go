package logkit

import (
	"io"
	"os"
	"sync/atomic"
)

// defaultAdapterFactory is set by an adapter package (e.g., adapter/zerolog)
// in its init() to avoid import cycles. Default() uses it when present.
var defaultAdapterFactory func(w io.Writer) Adapter

// RegisterDefaultAdapterFactory registers the constructor used by Default().
// Adapters should call this from init() to avoid import cycles.
// Example (in adapter/zerolog):
//
//	func init() {
//	  logkit.RegisterDefaultAdapterFactory(func(w io.Writer) logkit.Adapter {
//	    return New(zerolog.New(w))
//	  })
//	}
func RegisterDefaultAdapterFactory(f func(io.Writer) Adapter) {
	defaultAdapterFactory = f
}

// Default creates a logger writing to os.Stdout. Structured logging is on only
// when an adapter factory is registered (e.g. side import of adapter/zerolog);
// otherwise every message takes the console path. Preview mode follows the
// LOGKIT_PREVIEW environment variable.
func Default() *Logger {
	cfg := Config{
		Subsystem: defaultSubsystem(),
		Preview:   EnvProbe(DefaultPreviewEnv),
		Writer:    os.Stdout,
	}
	if defaultAdapterFactory != nil {
		cfg.Adapter = defaultAdapterFactory(os.Stdout)
		cfg.Structured = cfg.Adapter != nil
	}
	return newLogger(cfg)
}

// UseAdapter builds a structured logger around a, sets it as the global
// logger and returns it. A nil adapter yields a console-only logger.
func UseAdapter(a Adapter) *Logger {
	l, err := NewBuilder().WithAdapter(a).Build()
	if err != nil {
		l = Default()
	}
	SetGlobal(l)
	return l
}

// Facade: global access (Singleton + Facade).
var global atomic.Pointer[Logger]

// SetGlobal sets the global Logger (Singleton setter). nil resets it so the
// next L() builds Default() again.
func SetGlobal(l *Logger) { global.Store(l) }

// L returns the global Logger, building Default() on first use.
func L() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, Default())
	return global.Load()
}
