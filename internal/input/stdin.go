package input

import (
	"os"
)

// StdinPath is the path that selects standard input.
const StdinPath = "-"

// StdinReader reads all data from stdin into a sentinel buffer.
// Stdin is never closed.
type StdinReader struct {
	opts Options
}

// NewStdinReader creates a new StdinReader.
func NewStdinReader(opts Options) *StdinReader {
	return &StdinReader{opts: opts}
}

func (r *StdinReader) Read(_ string) (ReadResult, error) {
	return readGrowing(int(os.Stdin.Fd()), StdinPath, r.opts)
}
