package input

import (
	"errors"
)

// Failure kinds. A *ReadError matches exactly one of these with errors.Is.
var (
	ErrOpen      = errors.New("cannot open")
	ErrAlloc     = errors.New("allocation failure")
	ErrShortRead = errors.New("short read")
)

// ReadError describes a failed read. It unwraps to both its Kind and the
// underlying cause, so errors.Is(err, ErrOpen) and errors.Is(err, fs.ErrNotExist)
// can both hold.
type ReadError struct {
	Kind error
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ReadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func openError(path string, err error) error {
	return &ReadError{Kind: ErrOpen, Path: path, Err: err}
}

func allocError(path string, err error) error {
	return &ReadError{Kind: ErrAlloc, Path: path, Err: err}
}

// Failure codes exposed across the C boundary.
const (
	CodeOK        = 0
	CodeOpen      = 1
	CodeAlloc     = 2
	CodeShortRead = 3
	CodeOther     = -1
)

// Code maps err to a stable integer code. A nil error is CodeOK.
func Code(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrOpen):
		return CodeOpen
	case errors.Is(err, ErrAlloc):
		return CodeAlloc
	case errors.Is(err, ErrShortRead):
		return CodeShortRead
	default:
		return CodeOther
	}
}
