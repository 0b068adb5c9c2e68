package input

import (
	"fmt"
	"math"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// scratchPool pools growth buffers for sources whose size is unknown up front.
var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 64*1024) // 64KB initial capacity
		return &b
	},
}

// fillFunc copies the file behind f into buf and returns the byte count.
type fillFunc func(f *os.File, buf []byte) (int, error)

// BufferedReader reads files with pread into a buffer sized from fstat.
type BufferedReader struct {
	opts Options
}

// NewBufferedReader creates a new BufferedReader.
func NewBufferedReader(opts Options) *BufferedReader {
	return &BufferedReader{opts: opts}
}

func (r *BufferedReader) Read(path string) (ReadResult, error) {
	return readFile(path, r.opts, preadFill)
}

// readFile runs open -> size -> allocate -> fill -> sentinel -> close.
// The handle is closed on every return path.
func readFile(path string, opts Options, fill fillFunc) (ReadResult, error) {
	f, err := openFile(path)
	if err != nil {
		return ReadResult{}, openError(path, err)
	}
	defer f.Close()

	size, seekable, err := probeSize(f)
	if err != nil {
		return ReadResult{}, openError(path, err)
	}
	if !seekable || size == 0 {
		// Pipes, character devices and procfs-style files that report no size.
		return readGrowing(int(f.Fd()), path, opts)
	}

	if err := checkSize(path, size, opts); err != nil {
		return ReadResult{}, err
	}

	alloc := opts.allocator()
	buf, err := alloc.Alloc(int(size) + 1)
	if err != nil {
		return ReadResult{}, allocError(path, err)
	}

	n, err := fill(f, buf[:size])
	return seal(path, alloc, buf, n, int(size), err, opts.ShortRead)
}

// probeSize reports the byte length of f. seekable is false when the length
// cannot be measured by seeking, in which case the caller reads to EOF.
func probeSize(f *os.File) (size int64, seekable bool, err error) {
	fd := int(f.Fd())
	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return 0, false, fmt.Errorf("stat: %w", err)
	}
	switch stat.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		return 0, false, unix.EISDIR
	case unix.S_IFREG:
		return stat.Size, true, nil
	}

	// Block devices report st_size 0 but can be measured by seeking.
	end, err := unix.Seek(fd, 0, unix.SEEK_END)
	if err != nil || end <= 0 {
		return 0, false, nil
	}
	if _, err := unix.Seek(fd, 0, unix.SEEK_SET); err != nil {
		return 0, false, nil
	}
	return end, true, nil
}

func checkSize(path string, size int64, opts Options) error {
	if opts.MaxSize > 0 && size > opts.MaxSize {
		return allocError(path, fmt.Errorf("size %d exceeds limit %d", size, opts.MaxSize))
	}
	if size >= math.MaxInt {
		return allocError(path, fmt.Errorf("size %d does not fit in memory", size))
	}
	return nil
}

// preadFill reads buf from offset 0 using pread (no seek state).
func preadFill(f *os.File, buf []byte) (int, error) {
	fd := int(f.Fd())
	var totalRead int
	for totalRead < len(buf) {
		n, err := unix.Pread(fd, buf[totalRead:], int64(totalRead))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return totalRead, err
		}
		if n == 0 {
			break // EOF
		}
		totalRead += n
	}
	return totalRead, nil
}

// readGrowing reads fd to EOF through a pooled scratch buffer, then copies
// the bytes into an allocation of exactly n+1.
func readGrowing(fd int, path string, opts Options) (ReadResult, error) {
	bp := scratchPool.Get().(*[]byte)
	scratch := (*bp)[:0]
	defer func() {
		if cap(scratch) <= maxPooledCap {
			*bp = scratch[:0]
			scratchPool.Put(bp)
		}
	}()

	limit := opts.streamLimit()
	var readErr error
	for {
		if len(scratch) == cap(scratch) {
			scratch = append(scratch, 0)[:len(scratch)]
		}
		n, err := unix.Read(fd, scratch[len(scratch):cap(scratch)])
		if err == unix.EINTR {
			continue
		}
		if n > 0 {
			scratch = scratch[:len(scratch)+n]
		}
		if err != nil {
			readErr = err
			break
		}
		if n == 0 {
			break
		}
		if limit > 0 && int64(len(scratch)) > limit {
			return ReadResult{}, allocError(path, fmt.Errorf("stream exceeds limit %d", limit))
		}
	}

	alloc := opts.allocator()
	buf, err := alloc.Alloc(len(scratch) + 1)
	if err != nil {
		return ReadResult{}, allocError(path, err)
	}
	n := copy(buf, scratch)
	if readErr != nil {
		// The stream length is unknown, so anything short of EOF is a short read.
		return seal(path, alloc, buf, n, n+1, readErr, opts.ShortRead)
	}
	return seal(path, alloc, buf, n, n, nil, opts.ShortRead)
}

// seal writes the sentinel after n bytes and hands ownership of buf to the
// caller, or frees it when the read came up short and policy says fail.
func seal(path string, alloc Allocator, buf []byte, n, want int, readErr error, policy ShortReadPolicy) (ReadResult, error) {
	if n < want {
		if policy != ShortReadTruncate {
			alloc.Free(buf)
			cause := fmt.Errorf("read %d of %d bytes", n, want)
			if readErr != nil {
				cause = fmt.Errorf("stopped after %d bytes: %w", n, readErr)
			}
			return ReadResult{}, &ReadError{Kind: ErrShortRead, Path: path, Err: cause}
		}
		buf = buf[:n+1]
	}
	buf[n] = 0

	if _, ok := alloc.(HeapAllocator); ok {
		return ReadResult{Data: buf, Closer: noopCloser}, nil
	}
	return ReadResult{
		Data: buf,
		Closer: func() error {
			alloc.Free(buf)
			return nil
		},
	}, nil
}
