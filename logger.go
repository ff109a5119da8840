package logkit

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
)

// Logger routes each message to exactly one destination, the console or the
// structured adapter, then notifies the observer. It is safe for concurrent use.
type Logger struct {
	adapter    Adapter
	structured bool
	subsystem  string
	preview    Probe
	console    console
	clock      xclock.Clock
	onError    ErrorHandler

	// handles caches adapter.With(subsystem, category) per category.
	handles sync.Map // string -> Adapter

	// Single observer slot; last writer wins.
	observer atomic.Pointer[observerSlot]
}

// Factory: internal constructor.
func newLogger(cfg Config) *Logger {
	l := &Logger{
		adapter:    cfg.Adapter,
		structured: cfg.Structured && cfg.Adapter != nil,
		subsystem:  cfg.Subsystem,
		preview:    cfg.Preview,
		clock:      cfg.Clock,
		onError:    cfg.ErrorHandler,
	}
	if l.preview == nil {
		l.preview = Always(false)
	}
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	l.console = newConsole(w)
	if l.onError == nil {
		l.onError = defaultErrorHandler
	}
	l.SetObserver(cfg.Observer)
	return l
}

func defaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "logkit error: %v\n", err) }

// Structured reports whether the logger was built with structured logging.
func (l *Logger) Structured() bool { return l.structured }

// Subsystem returns the identifier passed to the structured adapter.
func (l *Logger) Subsystem() string { return l.subsystem }

// SetObserver installs o, replacing any previous observer. nil clears the slot.
func (l *Logger) SetObserver(o Observer) {
	if f, ok := o.(ObserverFunc); o == nil || (ok && f == nil) {
		l.observer.Store(nil)
		return
	}
	l.observer.Store(&observerSlot{o: o})
}

// Observer returns the installed observer, or nil.
func (l *Logger) Observer() Observer {
	if s := l.observer.Load(); s != nil {
		return s.o
	}
	return nil
}

// Severity entry points. The call site is captured with runtime.Caller.

func (l *Logger) Error(msg string) { file, line := caller(1); l.Log(SeverityError, msg, file, line) }
func (l *Logger) Warn(msg string)  { file, line := caller(1); l.Log(SeverityWarn, msg, file, line) }
func (l *Logger) Info(msg string)  { file, line := caller(1); l.Log(SeverityInfo, msg, file, line) }
func (l *Logger) Debug(msg string) { file, line := caller(1); l.Log(SeverityDebug, msg, file, line) }

func (l *Logger) Errorf(format string, args ...any) {
	file, line := caller(1)
	l.Log(SeverityError, fmt.Sprintf(format, args...), file, line)
}

func (l *Logger) Warnf(format string, args ...any) {
	file, line := caller(1)
	l.Log(SeverityWarn, fmt.Sprintf(format, args...), file, line)
}

func (l *Logger) Infof(format string, args ...any) {
	file, line := caller(1)
	l.Log(SeverityInfo, fmt.Sprintf(format, args...), file, line)
}

func (l *Logger) Debugf(format string, args ...any) {
	file, line := caller(1)
	l.Log(SeverityDebug, fmt.Sprintf(format, args...), file, line)
}

// Log dispatches msg logged at file:line. The console path is taken while the
// preview probe reports true or when structured logging is unsupported;
// otherwise the message goes to the adapter handle for the file's category.
// The observer, if any, sees "[source:line] msg" on both paths.
func (l *Logger) Log(sev Severity, msg, file string, line int) {
	src := sourceName(file)
	tag := tagged(src, line, msg)
	at := l.now()

	if l.preview() || !l.structured {
		l.writeConsole(at, sev, tag)
	} else {
		l.emit(categoryName(src), sev.Level(), tag, at)
	}

	if s := l.observer.Load(); s != nil {
		l.notify(s.o, sev, tag)
	}
}

func (l *Logger) writeConsole(at time.Time, sev Severity, tag string) {
	defer l.recoverTo("console writer")
	if err := l.console.write(at, sev, tag); err != nil {
		l.onError(fmt.Errorf("logkit: console write: %w", err))
	}
}

func (l *Logger) emit(category string, level Level, msg string, at time.Time) {
	defer l.recoverTo("adapter")
	l.handle(category).Log(level, msg, at)
}

func (l *Logger) notify(o Observer, sev Severity, tag string) {
	defer l.recoverTo("observer")
	o.OnLog(sev, tag)
}

// recoverTo must be deferred directly; it reports a panic from where to onError.
func (l *Logger) recoverTo(where string) {
	if r := recover(); r != nil {
		l.onError(fmt.Errorf("logkit: panic in %s: %v", where, r))
	}
}

// handle returns the adapter bound to (subsystem, category), creating it once.
func (l *Logger) handle(category string) Adapter {
	if h, ok := l.handles.Load(category); ok {
		return h.(Adapter)
	}
	h, _ := l.handles.LoadOrStore(category, l.adapter.With(l.subsystem, category))
	return h.(Adapter)
}

// Single authoritative timestamp per call.
func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.Now()
	}
	return xclock.Now()
}
