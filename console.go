package logkit

import (
	"io"
	"strconv"
	"sync"
	"time"
)

// console renders the plain-text line used when structured logging is
// unavailable or the process runs in preview mode:
//
//	9:04:05.1234 | ❗️[disk.go:42] disk full
type console struct {
	mu *sync.Mutex
	w  io.Writer
}

func newConsole(w io.Writer) console {
	return console{mu: &sync.Mutex{}, w: w}
}

func (c console) write(at time.Time, sev Severity, tagged string) error {
	buf := getBuf()
	defer putBuf(buf)

	buf.b = appendTimestamp(buf.b, at)
	buf.writeString(" | ")
	buf.writeString(sev.Symbol())
	buf.writeString(tagged)
	buf.writeByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.w.Write(buf.b)
	return err
}

// appendTimestamp appends H:mm:ss.SSSS: 24-hour clock without a leading zero
// on the hour, fractional seconds truncated to four digits.
func appendTimestamp(b []byte, t time.Time) []byte {
	b = strconv.AppendInt(b, int64(t.Hour()), 10)
	return t.AppendFormat(b, ":04:05.0000")
}
