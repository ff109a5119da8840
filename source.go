package logkit

import (
	"runtime"
	"strconv"
	"strings"
)

// sourceName returns the last '/'-separated segment of file, or file itself.
func sourceName(file string) string {
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		return file[i+1:]
	}
	return file
}

// categoryName strips the final ".ext" from a source name.
// "a.b.c.go" -> "a.b.c"; names without a dot are returned unchanged.
func categoryName(source string) string {
	if i := strings.LastIndexByte(source, '.'); i >= 0 {
		return source[:i]
	}
	return source
}

// appendTagged appends "[source:line] msg".
func appendTagged(b []byte, source string, line int, msg string) []byte {
	b = append(b, '[')
	b = append(b, source...)
	b = append(b, ':')
	b = strconv.AppendInt(b, int64(line), 10)
	b = append(b, "] "...)
	return append(b, msg...)
}

func tagged(source string, line int, msg string) string {
	buf := getBuf()
	defer putBuf(buf)
	buf.b = appendTagged(buf.b, source, line, msg)
	return string(buf.b)
}

// caller reports the file and line skip frames above its own caller.
// Unknown frames degrade to ("", 0).
func caller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", 0
	}
	return file, line
}
