package logkit

// Observer is notified of every logged message, whichever path it took.
// It receives the tagged form "[source:line] msg" without timestamp or symbol.
// Implementations MUST be concurrency-safe: OnLog runs on the logging goroutine.
type Observer interface {
	OnLog(sev Severity, msg string)
}

// ObserverFunc adapter.
type ObserverFunc func(sev Severity, msg string)

func (f ObserverFunc) OnLog(sev Severity, msg string) { f(sev, msg) }

// observerSlot boxes an Observer so it can live in an atomic.Pointer.
type observerSlot struct {
	o Observer
}
