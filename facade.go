package logkit

import "fmt"

// Facade helpers using the global Singleton logger.
// Usage: logkit.Warn("cache miss")

func Error(msg string) { file, line := caller(1); L().Log(SeverityError, msg, file, line) }
func Warn(msg string)  { file, line := caller(1); L().Log(SeverityWarn, msg, file, line) }
func Info(msg string)  { file, line := caller(1); L().Log(SeverityInfo, msg, file, line) }
func Debug(msg string) { file, line := caller(1); L().Log(SeverityDebug, msg, file, line) }

func Errorf(format string, args ...any) {
	file, line := caller(1)
	L().Log(SeverityError, fmt.Sprintf(format, args...), file, line)
}

func Warnf(format string, args ...any) {
	file, line := caller(1)
	L().Log(SeverityWarn, fmt.Sprintf(format, args...), file, line)
}

func Infof(format string, args ...any) {
	file, line := caller(1)
	L().Log(SeverityInfo, fmt.Sprintf(format, args...), file, line)
}

func Debugf(format string, args ...any) {
	file, line := caller(1)
	L().Log(SeverityDebug, fmt.Sprintf(format, args...), file, line)
}

// Log dispatches through the global logger with an explicit call site.
func Log(sev Severity, msg, file string, line int) { L().Log(sev, msg, file, line) }

// SetObserver installs o on the global logger. nil clears it.
func SetObserver(o Observer) { L().SetObserver(o) }
