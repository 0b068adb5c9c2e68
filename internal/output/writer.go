package output

import (
	"os"

	"golang.org/x/sys/unix"
)

// Writer writes formatted output to a file descriptor, using writev for batching.
type Writer struct {
	fd int
}

// NewWriter creates a Writer that writes to stdout.
func NewWriter() *Writer {
	return NewFileWriter(os.Stdout)
}

// NewFileWriter creates a Writer for f. f must outlive the Writer.
func NewFileWriter(f *os.File) *Writer {
	return &Writer{fd: int(f.Fd())}
}

// Write writes the given bytes using writev for scatter-gather I/O.
func (w *Writer) Write(data []byte) error {
	for len(data) > 0 {
		iovs := [][]byte{data}
		n, err := unix.Writev(w.fd, iovs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// OrderedWriter receives results from a channel and writes them in sequence order.
// This ensures output is deterministic even with parallel workers.
type OrderedWriter struct {
	writer    *Writer
	formatter Formatter
}

// NewOrderedWriter creates an OrderedWriter.
func NewOrderedWriter(w *Writer, f Formatter) *OrderedWriter {
	return &OrderedWriter{
		writer:    w,
		formatter: f,
	}
}

// WriteOrdered consumes results from the channel, buffering out-of-order results
// and writing them in sequence-number order. onResult sees every result in
// sequence order before its buffer is released. Returns the first write error;
// results keep being drained and released after a write fails.
func (ow *OrderedWriter) WriteOrdered(results <-chan Result, onResult func(Result)) error {
	nextSeq := 1
	pending := make(map[int]Result)
	var writeErr error

	emit := func(r Result) {
		if onResult != nil {
			onResult(r)
		}
		if writeErr == nil {
			writeErr = ow.writer.Write(ow.formatter.Format(nil, r))
		}
		r.Release()
	}

	for r := range results {
		if r.SeqNum != nextSeq {
			pending[r.SeqNum] = r
			continue
		}
		emit(r)
		nextSeq++
		// Flush any consecutive pending results
		for {
			p, ok := pending[nextSeq]
			if !ok {
				break
			}
			emit(p)
			delete(pending, nextSeq)
			nextSeq++
		}
	}
	return writeErr
}
