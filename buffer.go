package logkit

import "sync"

// buffer is a simple growing byte buffer reused across log calls.
type buffer struct{ b []byte }

func (buf *buffer) writeString(s string) { buf.b = append(buf.b, s...) }
func (buf *buffer) writeByte(c byte)     { buf.b = append(buf.b, c) }

var bufPool = sync.Pool{New: func() any { return &buffer{b: make([]byte, 0, 256)} }}

func getBuf() *buffer {
	buf := bufPool.Get().(*buffer)
	buf.b = buf.b[:0]
	return buf
}

func putBuf(buf *buffer) {
	// allow GC of large backing arrays by capping
	if cap(buf.b) <= 64*1024 {
		bufPool.Put(buf)
	}
}
