package logkit

import (
	"bytes"
	"errors"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trickstertwo/xclock/adapter/frozen"
)

// stubAdapter is a minimal Adapter for tests. It records logs and every
// (subsystem, category) pair it was bound to.
type stubAdapter struct {
	mu        *sync.Mutex
	subsystem string
	category  string
	logs      *[]stubEntry
	binds     *[]string
	panicMsg  string
}

type stubEntry struct {
	Subsystem string
	Category  string
	Level     Level
	Msg       string
	At        time.Time
}

func newStubAdapter() *stubAdapter {
	return &stubAdapter{mu: &sync.Mutex{}, logs: &[]stubEntry{}, binds: &[]string{}}
}

func (a *stubAdapter) With(subsystem, category string) Adapter {
	a.mu.Lock()
	defer a.mu.Unlock()
	*a.binds = append(*a.binds, subsystem+"/"+category)
	child := *a
	child.subsystem = subsystem
	child.category = category
	return &child
}

func (a *stubAdapter) Log(level Level, msg string, at time.Time) {
	if a.panicMsg != "" {
		panic(a.panicMsg)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	*a.logs = append(*a.logs, stubEntry{
		Subsystem: a.subsystem,
		Category:  a.category,
		Level:     level,
		Msg:       msg,
		At:        at,
	})
}

func (a *stubAdapter) entries() []stubEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]stubEntry(nil), *a.logs...)
}

type observed struct {
	Sev Severity
	Msg string
}

type recorder struct {
	mu  sync.Mutex
	got []observed
}

func (r *recorder) OnLog(sev Severity, msg string) {
	r.mu.Lock()
	r.got = append(r.got, observed{sev, msg})
	r.mu.Unlock()
}

var frozenAt = time.Date(2025, 1, 1, 9, 5, 7, 123456789, time.UTC)

func newTestLogger(t *testing.T, preview, structured bool) (*Logger, *stubAdapter, *bytes.Buffer) {
	t.Helper()
	adapter := newStubAdapter()
	var out bytes.Buffer
	logger, err := NewBuilder().
		WithAdapter(adapter).
		WithStructured(structured).
		WithSubsystem("com.example.app").
		WithPreviewProbe(Always(preview)).
		WithWriter(&out).
		WithClock(frozen.New(frozenAt)).
		Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	return logger, adapter, &out
}

func TestDispatch_PathSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		preview     bool
		structured  bool
		wantConsole bool
	}{
		{"preview wins over structured", true, true, true},
		{"preview without structured", true, false, true},
		{"no structured support", false, false, true},
		{"structured", false, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			logger, adapter, out := newTestLogger(t, tc.preview, tc.structured)

			logger.Log(SeverityWarn, "low disk", "/app/Sources/Disk.swift", 42)

			logs := adapter.entries()
			if tc.wantConsole {
				if out.Len() == 0 {
					t.Fatal("expected console output")
				}
				if len(logs) != 0 {
					t.Fatalf("expected no adapter logs, got %d", len(logs))
				}
				return
			}
			if out.Len() != 0 {
				t.Fatalf("unexpected console output: %q", out.String())
			}
			if len(logs) != 1 {
				t.Fatalf("expected 1 adapter log, got %d", len(logs))
			}
		})
	}
}

func TestConsole_ErrorLine(t *testing.T) {
	t.Parallel()
	logger, _, out := newTestLogger(t, true, true)

	logger.Log(SeverityError, "disk full", "/app/Sources/Disk.swift", 42)

	want := regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}\.\d{4} \| ❗️\[Disk\.swift:42\] disk full\n$`)
	if !want.MatchString(out.String()) {
		t.Fatalf("console line mismatch: %q", out.String())
	}
	if got, exp := out.String(), consolePrefix(logger)+"❗️[Disk.swift:42] disk full\n"; got != exp {
		t.Fatalf("got %q want %q", got, exp)
	}
}

func TestConsole_SymbolPerSeverity(t *testing.T) {
	t.Parallel()

	// Info and Debug have no symbol, so the tag follows "| " directly,
	// a single space. DESIGN.md records why.
	cases := []struct {
		sev  Severity
		want string
	}{
		{SeverityError, "❗️[Net.swift:10] ready\n"},
		{SeverityWarn, "⚠️[Net.swift:10] ready\n"},
		{SeverityInfo, "[Net.swift:10] ready\n"},
		{SeverityDebug, "[Net.swift:10] ready\n"},
	}
	for _, tc := range cases {
		t.Run(tc.sev.String(), func(t *testing.T) {
			t.Parallel()
			logger, _, out := newTestLogger(t, false, false)
			logger.Log(tc.sev, "ready", "Services/Net.swift", 10)
			if want := consolePrefix(logger) + tc.want; out.String() != want {
				t.Fatalf("got %q want %q", out.String(), want)
			}
		})
	}
}

func TestStructured_LevelCategoryAndMessage(t *testing.T) {
	t.Parallel()
	logger, adapter, _ := newTestLogger(t, false, true)

	logger.Log(SeverityError, "x", "pkg/a.b.c.go", 1)
	logger.Log(SeverityWarn, "y", "pkg/a.b.c.go", 2)
	logger.Log(SeverityInfo, "z", "main.go", 3)
	logger.Log(SeverityDebug, "w", "Makefile", 4)

	logs := adapter.entries()
	want := []stubEntry{
		{"com.example.app", "a.b.c", LevelFault, "[a.b.c.go:1] x", frozenAt},
		{"com.example.app", "a.b.c", LevelError, "[a.b.c.go:2] y", frozenAt},
		{"com.example.app", "main", LevelInfo, "[main.go:3] z", frozenAt},
		{"com.example.app", "Makefile", LevelDebug, "[Makefile:4] w", frozenAt},
	}
	if len(logs) != len(want) {
		t.Fatalf("expected %d logs, got %d", len(want), len(logs))
	}
	for i := range want {
		got := logs[i]
		if !got.At.Equal(want[i].At) {
			t.Fatalf("log %d: ts mismatch: got %s want %s", i, got.At, want[i].At)
		}
		got.At = want[i].At
		if got != want[i] {
			t.Fatalf("log %d: got %+v want %+v", i, got, want[i])
		}
	}
}

func TestStructured_HandlesCachedPerCategory(t *testing.T) {
	t.Parallel()
	logger, adapter, _ := newTestLogger(t, false, true)

	for i := 0; i < 3; i++ {
		logger.Log(SeverityInfo, "tick", "/src/clock.go", i)
		logger.Log(SeverityInfo, "tock", "/other/clock.go", i)
		logger.Log(SeverityInfo, "net", "/src/net.go", i)
	}

	adapter.mu.Lock()
	binds := append([]string(nil), *adapter.binds...)
	adapter.mu.Unlock()
	if len(binds) != 2 {
		t.Fatalf("expected 2 bound handles, got %v", binds)
	}
	for _, b := range binds {
		if b != "com.example.app/clock" && b != "com.example.app/net" {
			t.Fatalf("unexpected handle %q", b)
		}
	}
}

func TestObserver_SeesTaggedMessageOnBothPaths(t *testing.T) {
	t.Parallel()

	for _, structured := range []bool{false, true} {
		logger, _, _ := newTestLogger(t, false, structured)
		rec := &recorder{}
		logger.SetObserver(rec)

		logger.Log(SeverityInfo, "ready", "Services/Net.swift", 10)

		if len(rec.got) != 1 {
			t.Fatalf("structured=%v: expected 1 observation, got %d", structured, len(rec.got))
		}
		if rec.got[0] != (observed{SeverityInfo, "[Net.swift:10] ready"}) {
			t.Fatalf("structured=%v: observation mismatch: %+v", structured, rec.got[0])
		}
	}
}

func TestObserver_LastWriterWinsAndClear(t *testing.T) {
	t.Parallel()
	logger, _, _ := newTestLogger(t, false, false)

	first, second := &recorder{}, &recorder{}
	logger.SetObserver(first)
	logger.SetObserver(second)
	logger.Log(SeverityDebug, "one", "a.go", 1)

	logger.SetObserver(nil)
	logger.Log(SeverityDebug, "two", "a.go", 2)

	var nilFunc ObserverFunc
	logger.SetObserver(nilFunc)
	if logger.Observer() != nil {
		t.Fatal("nil ObserverFunc should clear the slot")
	}
	logger.Log(SeverityDebug, "three", "a.go", 3)

	if len(first.got) != 0 {
		t.Fatalf("replaced observer was called: %+v", first.got)
	}
	if len(second.got) != 1 || second.got[0].Msg != "[a.go:1] one" {
		t.Fatalf("second observer mismatch: %+v", second.got)
	}
}

func TestObserver_FromConfig(t *testing.T) {
	t.Parallel()

	var got []string
	logger, err := New(Config{
		Writer:   &bytes.Buffer{},
		Observer: ObserverFunc(func(_ Severity, msg string) { got = append(got, msg) }),
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Log(SeverityWarn, "hi", "x/y.go", 7)
	if len(got) != 1 || got[0] != "[y.go:7] hi" {
		t.Fatalf("observer mismatch: %v", got)
	}
}

func TestCallSiteCapture(t *testing.T) {
	t.Parallel()
	logger, _, _ := newTestLogger(t, false, false)
	rec := &recorder{}
	logger.SetObserver(rec)

	_, _, line, _ := runtime.Caller(0)
	logger.Info("here")
	logger.Errorf("code=%d", 7)

	if len(rec.got) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(rec.got))
	}
	if want := "[logger_test.go:" + strconv.Itoa(line+1) + "] here"; rec.got[0].Msg != want {
		t.Fatalf("got %q want %q", rec.got[0].Msg, want)
	}
	if want := "[logger_test.go:" + strconv.Itoa(line+2) + "] code=7"; rec.got[1].Msg != want {
		t.Fatalf("got %q want %q", rec.got[1].Msg, want)
	}
	if rec.got[1].Sev != SeverityError {
		t.Fatalf("severity mismatch: %v", rec.got[1].Sev)
	}
}

func TestAdapterPanicIsSwallowed(t *testing.T) {
	t.Parallel()

	adapter := newStubAdapter()
	adapter.panicMsg = "backend down"
	var handled []error
	rec := &recorder{}
	logger, err := NewBuilder().
		WithAdapter(adapter).
		WithPreviewProbe(Always(false)).
		WithErrorHandler(func(err error) { handled = append(handled, err) }).
		WithObserver(rec).
		Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	logger.Log(SeverityError, "boom", "a.go", 1)

	if len(handled) != 1 || !strings.Contains(handled[0].Error(), "backend down") {
		t.Fatalf("expected adapter panic to be reported, got %v", handled)
	}
	if len(rec.got) != 1 {
		t.Fatalf("observer should still run after adapter panic, got %d", len(rec.got))
	}
}

type failingWriter struct{}

var errWrite = errors.New("closed pipe")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestConsoleWriteErrorIsReported(t *testing.T) {
	t.Parallel()

	var handled []error
	logger, err := New(Config{
		Writer:       failingWriter{},
		ErrorHandler: func(err error) { handled = append(handled, err) },
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Log(SeverityInfo, "lost", "a.go", 1)

	if len(handled) != 1 || !errors.Is(handled[0], errWrite) {
		t.Fatalf("expected wrapped write error, got %v", handled)
	}
}

type panickingWriter struct{ calls int }

func (w *panickingWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls == 1 {
		panic("writer gone")
	}
	return len(p), nil
}

func TestConsoleWriterPanicIsSwallowed(t *testing.T) {
	t.Parallel()

	var handled []error
	w := &panickingWriter{}
	rec := &recorder{}
	logger, err := New(Config{
		Writer:       w,
		Observer:     rec,
		ErrorHandler: func(err error) { handled = append(handled, err) },
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	logger.Log(SeverityInfo, "first", "a.go", 1)
	// The console lock must be released after the panic.
	logger.Log(SeverityInfo, "second", "a.go", 2)

	if len(handled) != 1 || !strings.Contains(handled[0].Error(), "writer gone") {
		t.Fatalf("expected writer panic to be reported once, got %v", handled)
	}
	if w.calls != 2 || len(rec.got) != 2 {
		t.Fatalf("logging should continue after writer panic: calls=%d observed=%d", w.calls, len(rec.got))
	}
}

type panickingObserver struct{}

func (panickingObserver) OnLog(Severity, string) { panic("observer bug") }

type pointerObserver struct{ n int }

func (o *pointerObserver) OnLog(Severity, string) { o.n++ }

func TestObserverPanicIsSwallowed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		obs  Observer
	}{
		{"panicking", panickingObserver{}},
		{"typed nil pointer", (*pointerObserver)(nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var handled []error
			var out bytes.Buffer
			logger, err := New(Config{
				Writer:       &out,
				Observer:     tc.obs,
				ErrorHandler: func(err error) { handled = append(handled, err) },
			})
			if err != nil {
				t.Fatalf("new: %v", err)
			}

			logger.Log(SeverityWarn, "careful", "a.go", 1)

			if len(handled) != 1 || !strings.Contains(handled[0].Error(), "observer") {
				t.Fatalf("expected observer panic to be reported, got %v", handled)
			}
			if !strings.Contains(out.String(), "[a.go:1] careful") {
				t.Fatalf("console line missing: %q", out.String())
			}
		})
	}
}

func TestBuild_StructuredWithoutAdapter(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder().WithStructured(true).Build()
	if !errors.Is(err, ErrNoAdapter) {
		t.Fatalf("expected ErrNoAdapter, got %v", err)
	}

	logger, err := NewBuilder().WithAdapter(nil).Build()
	if err != nil {
		t.Fatalf("nil adapter should build a console logger: %v", err)
	}
	if logger.Structured() {
		t.Fatal("logger without adapter must not be structured")
	}
}

func TestPreviewProbeEvaluatedPerCall(t *testing.T) {
	t.Parallel()

	adapter := newStubAdapter()
	var out bytes.Buffer
	preview := true
	var mu sync.Mutex
	logger, err := NewBuilder().
		WithAdapter(adapter).
		WithWriter(&out).
		WithPreviewProbe(func() bool { mu.Lock(); defer mu.Unlock(); return preview }).
		Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	logger.Log(SeverityInfo, "first", "a.go", 1)
	mu.Lock()
	preview = false
	mu.Unlock()
	logger.Log(SeverityInfo, "second", "a.go", 2)

	if !strings.Contains(out.String(), "[a.go:1] first") || strings.Contains(out.String(), "second") {
		t.Fatalf("console output mismatch: %q", out.String())
	}
	if logs := adapter.entries(); len(logs) != 1 || logs[0].Msg != "[a.go:2] second" {
		t.Fatalf("adapter logs mismatch: %+v", logs)
	}
}

func TestConcurrentLogAndSetObserver(t *testing.T) {
	t.Parallel()
	logger, adapter, _ := newTestLogger(t, false, true)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				logger.Log(SeverityInfo, "msg", "/src/worker.go", i)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				logger.SetObserver(&recorder{})
			}
		}()
	}
	wg.Wait()

	if got := len(adapter.entries()); got != 800 {
		t.Fatalf("expected 800 adapter logs, got %d", got)
	}
}

// consolePrefix is the timestamp and separator the logger's frozen clock produces.
func consolePrefix(l *Logger) string {
	return string(appendTimestamp(nil, l.now())) + " | "
}
