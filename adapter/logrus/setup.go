package logrusadapter

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/trickstertwo/logkit"
)

// Config is an explicit, code-first configuration for logrus + logkit.
type Config struct {
	Writer    io.Writer       // default: os.Stdout
	Text      bool            // logrus.TextFormatter instead of JSON
	Subsystem string          // default: main module path
	Observer  logkit.Observer // optional
}

// NewAdapter builds the logrus backend described by Config.
// The formatter writes the entry time under "ts" with RFC3339Nano precision.
func NewAdapter(cfg Config) *Adapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.DebugLevel)
	fieldMap := logrus.FieldMap{logrus.FieldKeyTime: "ts"}
	if cfg.Text {
		l.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
			FieldMap:        fieldMap,
		})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap:        fieldMap,
		})
	}
	return New(l)
}

// NewLogger builds a logrus-backed structured logkit.Logger from Config.
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

// Use builds a logrus-backed logger from Config, sets it as global, and returns it.
func Use(cfg Config) *logkit.Logger {
	logger := NewLogger(cfg)
	logkit.SetGlobal(logger)
	return logger
}
