package logkit

import (
	"fmt"
	"strings"
)

// Severity ranks the importance of a message at the call site.
type Severity uint8

const (
	SeverityError Severity = iota + 1
	SeverityWarn
	SeverityInfo
	SeverityDebug
)

// Severities lists every severity, most important first.
var Severities = [...]Severity{SeverityError, SeverityWarn, SeverityInfo, SeverityDebug}

// Symbol is the console-only marker printed before the source tag.
func (s Severity) Symbol() string {
	switch s {
	case SeverityError:
		return "❗️"
	case SeverityWarn:
		return "⚠️"
	default:
		return ""
	}
}

// Level maps a severity to the backend level used on the structured path.
// Errors are escalated to faults and warnings to errors.
func (s Severity) Level() Level {
	switch s {
	case SeverityError:
		return LevelFault
	case SeverityWarn:
		return LevelError
	case SeverityInfo:
		return LevelInfo
	default:
		return LevelDebug
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarn:
		return "warn"
	case SeverityInfo:
		return "info"
	case SeverityDebug:
		return "debug"
	default:
		return fmt.Sprintf("severity(%d)", uint8(s))
	}
}

// ParseSeverity accepts the names produced by Severity.String, case-insensitive.
// "warning" is accepted as an alias for warn.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warn", "warning":
		return SeverityWarn, nil
	case "info":
		return SeverityInfo, nil
	case "debug":
		return SeverityDebug, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
}
