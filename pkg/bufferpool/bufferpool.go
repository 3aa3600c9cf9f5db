// Package bufferpool pools byte buffers used as encoding sinks.
package bufferpool

import (
	"bytes"
	"sync"
)

const _size = 1024 // by default, create 1 KiB buffers

// buffers larger than this are dropped instead of returned to the pool
const _maxPooledSize = 64 << 10

var pool = &sync.Pool{
	New: func() any {
		return &Buffer{Buffer: bytes.NewBuffer(make([]byte, 0, _size))}
	},
}

type Buffer struct {
	*bytes.Buffer
}

// Release returns the Buffer to the pool.
//
// Callers must not retain references to the Buffer, or to slices returned by Bytes, after calling Release.
func (b *Buffer) Release() {
	if b.Cap() > _maxPooledSize {
		return
	}
	pool.Put(b)
}

// Get returns an empty Buffer from the pool.
func Get() *Buffer {
	buf := pool.Get().(*Buffer)
	buf.Reset()
	return buf
}
