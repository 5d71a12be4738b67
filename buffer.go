package podkit

import (
	"bytes"
	"sync"
)

// buffer pool for the human log handler
var buffers = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func getBuf() *bytes.Buffer {
	return buffers.Get().(*bytes.Buffer)
}

// return a buffer to the pool, usually with defer()
func putBuf(buf *bytes.Buffer) {
	buf.Reset()
	buffers.Put(buf)
}
