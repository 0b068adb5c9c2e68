package output

import "github.com/dl/readfile/internal/input"

// Result is the outcome of reading a single path.
type Result struct {
	FilePath string
	SeqNum   int
	Buffer   input.ReadResult
	Err      error
}

// OK reports whether the read succeeded.
func (r *Result) OK() bool {
	return r.Err == nil
}

// Release returns the buffer to its allocator.
// Must be called after the result has been fully formatted/consumed.
func (r *Result) Release() {
	if r.Err == nil {
		r.Buffer.Release()
	}
}
