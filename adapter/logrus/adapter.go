package logrusadapter

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/trickstertwo/logkit"
)

// Field keys written by every adapter handle.
const (
	SubsystemKey = "subsystem"
	CategoryKey  = "category"
)

// Adapter bridges logkit to sirupsen/logrus.
//
// With() pre-builds a *logrus.Entry carrying subsystem and category, and Log
// stamps the entry with logkit's authoritative time instead of time.Now.
// Entries go through Entry.Log, which never exits; fault is logged at
// FatalLevel and nothing is ever logged at PanicLevel.
type Adapter struct {
	e *logrus.Entry
}

// New creates an adapter for the provided logrus logger.
func New(l *logrus.Logger) *Adapter {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Adapter{e: logrus.NewEntry(l)}
}

// With returns a handle whose entries carry subsystem and category.
func (a *Adapter) With(subsystem, category string) logkit.Adapter {
	return &Adapter{e: a.e.WithFields(logrus.Fields{
		SubsystemKey: subsystem,
		CategoryKey:  category,
	})}
}

func (a *Adapter) Log(level logkit.Level, msg string, at time.Time) {
	lvl := toLogrusLevel(level)
	if !a.e.Logger.IsLevelEnabled(lvl) {
		return
	}
	a.e.WithTime(at).Log(lvl, msg)
}

func toLogrusLevel(l logkit.Level) logrus.Level {
	switch {
	case l <= logkit.LevelDebug:
		return logrus.DebugLevel
	case l <= logkit.LevelInfo:
		return logrus.InfoLevel
	case l <= logkit.LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.FatalLevel
	}
}
