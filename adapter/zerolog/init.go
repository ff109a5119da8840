package zerologadapter

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/logkit"
)

// Register this adapter as the default for logkit.Default()/L().
//
// Env:
//
//	LOGKIT_CONSOLE=1            : enable ConsoleWriter (pretty output)
//	LOGKIT_CONSOLE_TIMEFORMAT=... : optional console time layout (default RFC3339Nano)
func init() {
	logkit.RegisterDefaultAdapterFactory(func(w io.Writer) logkit.Adapter {
		if w == nil {
			w = os.Stdout
		}
		if os.Getenv("LOGKIT_CONSOLE") == "1" {
			return New(zerolog.New(newConsoleWriter(w, os.Getenv("LOGKIT_CONSOLE_TIMEFORMAT"))))
		}
		return New(zerolog.New(w))
	})
}

// newConsoleWriter makes ConsoleWriter render the "ts" field as the
// timestamp column. zerolog's package-level field names are left alone.
func newConsoleWriter(w io.Writer, timeFormat string) zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339Nano, FormatPrepare: moveTimestamp}
	if timeFormat != "" {
		cw.TimeFormat = timeFormat
	}
	// Caller is never recorded; hide the column to avoid "<nil>".
	cw.PartsExclude = append(cw.PartsExclude, zerolog.CallerFieldName)
	return cw
}

func moveTimestamp(evt map[string]any) error {
	if ts, ok := evt[timestampKey]; ok {
		evt[zerolog.TimestampFieldName] = ts
		delete(evt, timestampKey)
	}
	return nil
}
