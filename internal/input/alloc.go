package input

import (
	"fmt"
	"sync"
)

// Allocator provides the memory a ReadResult is built in. Free is called
// exactly once for every successful Alloc, either by the reader on a failure
// path or through ReadResult.Closer.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
}

// HeapAllocator allocates on the Go heap and leaves freeing to the GC.
// Sizes the runtime refuses outright surface as errors rather than panics;
// Options.MaxSize is the guard against sizes that would exhaust memory.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(n int) (b []byte, err error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid size %d", n)
	}
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("make %d bytes: %v", n, r)
		}
	}()
	return make([]byte, n), nil
}

func (HeapAllocator) Free([]byte) {}

// maxPooledCap keeps very large buffers out of the pool.
const maxPooledCap = 16 << 20

// PoolAllocator reuses buffers across reads. Buffers are stored as *[]byte
// so the pool can reuse the backing array even when the slice grows beyond
// its original capacity. A buffer must not be touched after it is freed.
type PoolAllocator struct {
	pool sync.Pool
}

// NewPoolAllocator creates a PoolAllocator with 64KB initial buffers.
func NewPoolAllocator() *PoolAllocator {
	return &PoolAllocator{
		pool: sync.Pool{
			New: func() any {
				b := make([]byte, 0, 64*1024)
				return &b
			},
		},
	}
}

func (p *PoolAllocator) Alloc(n int) ([]byte, error) {
	bp := p.pool.Get().(*[]byte)
	buf := *bp
	if cap(buf) >= n {
		return buf[:n], nil
	}
	p.pool.Put(bp)
	return HeapAllocator{}.Alloc(n)
}

func (p *PoolAllocator) Free(b []byte) {
	if cap(b) > maxPooledCap {
		return
	}
	b = b[:0]
	p.pool.Put(&b)
}
