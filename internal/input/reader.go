package input

import "bytes"

// ReadResult holds a whole file followed by a zero sentinel.
// Data has length Size()+1 and Data[Size()] == 0. The caller owns Data
// until Closer (or Release) is called.
type ReadResult struct {
	Data   []byte
	Closer func() error
}

// noopCloser is a package-level no-op closer to avoid allocating a func literal per file.
func noopCloser() error { return nil }

// Size returns the number of file bytes, excluding the sentinel.
func (r ReadResult) Size() int {
	if len(r.Data) == 0 {
		return 0
	}
	return len(r.Data) - 1
}

// Contents returns the file bytes without the sentinel.
func (r ReadResult) Contents() []byte {
	if len(r.Data) == 0 {
		return nil
	}
	return r.Data[:len(r.Data)-1]
}

// HasEmbeddedNUL reports whether the file itself contains a zero byte,
// in which case a C-string consumer would see a truncated value.
func (r ReadResult) HasEmbeddedNUL() bool {
	return bytes.IndexByte(r.Contents(), 0) >= 0
}

// CString returns the bytes a NUL-terminated string consumer would see.
func (r ReadResult) CString() []byte {
	c := r.Contents()
	if i := bytes.IndexByte(c, 0); i >= 0 {
		return c[:i]
	}
	return c
}

// Release hands the buffer back to its allocator. Safe to call on a zero ReadResult.
func (r ReadResult) Release() error {
	if r.Closer == nil {
		return nil
	}
	return r.Closer()
}

// Reader reads a whole file into a sentinel-terminated buffer.
type Reader interface {
	Read(path string) (ReadResult, error)
}

// ShortReadPolicy decides what happens when fewer bytes than the size probe
// reported could be read, e.g. because the file shrank mid-read.
type ShortReadPolicy int

const (
	ShortReadFail     ShortReadPolicy = iota // return ErrShortRead
	ShortReadTruncate                        // keep what was read, sentinel after it
)

// Options configures the readers in this package. The zero value uses the
// Go heap, fails on short reads and has no size limit.
type Options struct {
	Alloc     Allocator
	ShortRead ShortReadPolicy
	// MaxSize rejects files larger than this many bytes with ErrAlloc.
	// Zero disables the limit.
	MaxSize int64
	// MaxStreamSize caps sources read to EOF because their size is unknown
	// (pipes, character devices like /dev/zero, procfs). The smaller nonzero
	// of MaxSize and MaxStreamSize applies to them.
	MaxStreamSize int64
}

func (o Options) streamLimit() int64 {
	if o.MaxStreamSize > 0 && (o.MaxSize == 0 || o.MaxStreamSize < o.MaxSize) {
		return o.MaxStreamSize
	}
	return o.MaxSize
}

func (o Options) allocator() Allocator {
	if o.Alloc == nil {
		return HeapAllocator{}
	}
	return o.Alloc
}

// ReadFile reads path with pread, the Go heap and the strict short-read policy.
func ReadFile(path string) (ReadResult, error) {
	return readFile(path, Options{}, preadFill)
}
