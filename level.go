package logkit

// Level is the backend severity handed to structured adapters.
// It mirrors slog numeric semantics and adds Fault (12) above Error.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelError Level = 8
	LevelFault Level = 12
)

func (l Level) String() string {
	switch {
	case l <= LevelDebug:
		return "debug"
	case l <= LevelInfo:
		return "info"
	case l <= LevelError:
		return "error"
	default:
		return "fault"
	}
}
