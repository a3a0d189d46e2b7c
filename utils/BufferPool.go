package utils

import (
	"math/bits"
	"sync"
)

var BufferSizeClass = [...]int{64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768}

// SizeIndex returns the smallest size class holding n bytes, or -1 if n is
// not poolable.
func SizeIndex(n int) int {
	if n <= 0 || n > BufferSizeClass[len(BufferSizeClass)-1] {
		return -1
	}
	idx := bits.Len(uint(n))
	if idx < 7 {
		return 0
	}
	if n&(n-1) == 0 {
		return idx - 7
	}
	return idx - 6
}

// Bytes is a pooled scratch buffer. The pointer is handed back to Release so
// putting it into the pool does not allocate.
type Bytes struct {
	B []byte
}

// BufferPool hands out scratch buffers in power-of-two size classes.
type BufferPool struct {
	pools [len(BufferSizeClass)]sync.Pool
}

func NewBufferPool() *BufferPool {
	var bp BufferPool
	for i, sz := range BufferSizeClass {
		size := sz
		bp.pools[i].New = func() any {
			return &Bytes{B: make([]byte, size)}
		}
	}
	return &bp
}

// Acquire returns a buffer with len(b.B) == n. Sizes outside every class are
// allocated directly and not pooled on release.
func (bp *BufferPool) Acquire(n int) *Bytes {
	idx := SizeIndex(n)
	if idx < 0 {
		return &Bytes{B: make([]byte, max(n, 0))}
	}
	b := bp.pools[idx].Get().(*Bytes)
	b.B = b.B[:n]
	return b
}

// AcquireZeroed is Acquire with the returned bytes cleared.
func (bp *BufferPool) AcquireZeroed(n int) *Bytes {
	b := bp.Acquire(n)
	clear(b.B)
	return b
}

// Release returns b to its size class. b must not be used afterwards.
func (bp *BufferPool) Release(b *Bytes) {
	if b == nil {
		return
	}
	c := cap(b.B)
	if c&(c-1) != 0 || c < BufferSizeClass[0] || c > BufferSizeClass[len(BufferSizeClass)-1] {
		return // not a valid class
	}
	idx := bits.Len(uint(c)) - 7
	b.B = b.B[:c]
	bp.pools[idx].Put(b)
}
