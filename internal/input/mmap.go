package input

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

// MmapReader reads files by memory-mapping them and copying the mapping into
// the sentinel buffer. The mapping never escapes; callers own a plain buffer.
type MmapReader struct {
	opts Options
}

// NewMmapReader creates a new MmapReader.
func NewMmapReader(opts Options) *MmapReader {
	return &MmapReader{opts: opts}
}

func (r *MmapReader) Read(path string) (ReadResult, error) {
	return readFile(path, r.opts, mmapFill)
}

// mmapFill maps f and copies it into buf a page at a time. Falls back to
// pread when the mapping cannot be created. A file truncated under the
// mapping faults on the first page past its new end; the fault is recovered
// and n counts the pages copied before it, so the short-read policy applies.
func mmapFill(f *os.File, buf []byte) (n int, err error) {
	// Hint kernel: sequential read pattern
	unix.Fadvise(int(f.Fd()), 0, int64(len(buf)), unix.FADV_SEQUENTIAL)

	m, err := mmap.MapRegion(f, len(buf), mmap.RDONLY, 0, 0)
	if err != nil {
		return preadFill(f, buf)
	}
	defer m.Unmap()

	unix.Madvise(m, unix.MADV_SEQUENTIAL)

	old := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(old)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mapping faulted after %d bytes: %v", n, r)
		}
	}()

	page := os.Getpagesize()
	for n < len(buf) {
		end := min(n+page, len(buf))
		copy(buf[n:end], m[n:end])
		n = end
	}
	return n, nil
}

// NewAdaptiveReader returns a Reader that opens the file once, sizes it via
// fstat, then selects between pread and mmap based on size.
func NewAdaptiveReader(mmapThreshold int64, opts Options) Reader {
	return &adaptiveReader{
		threshold: mmapThreshold,
		opts:      opts,
	}
}

type adaptiveReader struct {
	threshold int64
	opts      Options
}

func (r *adaptiveReader) Read(path string) (ReadResult, error) {
	return readFile(path, r.opts, r.fill)
}

func (r *adaptiveReader) fill(f *os.File, buf []byte) (int, error) {
	if r.threshold > 0 && int64(len(buf)) >= r.threshold {
		return mmapFill(f, buf)
	}
	return preadFill(f, buf)
}

// openFile opens a file read-only with O_NOATIME, falling back without it
// (O_NOATIME is refused for files the caller does not own).
func openFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|unix.O_NOATIME, 0)
	if err != nil {
		f, err = os.OpenFile(path, os.O_RDONLY, 0)
	}
	return f, err
}
