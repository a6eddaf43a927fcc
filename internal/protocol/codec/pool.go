package codec

import (
	"bytes"
	"sync"
)

// bufferPool 复用编码缓冲区，减少批量存档时的 GC 压力
var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBuffer 从池中取出一个 bytes.Buffer
func GetBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// PutBuffer 归还 bytes.Buffer，保留容量但清空内容
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
