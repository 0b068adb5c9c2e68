// Command libreadfile is built with -buildmode=c-shared and exposes the
// whole-file reader to foreign-function callers.
//
//	char*  read_file(const char* path);
//	char*  read_file_ex(const char* path, size_t* out_len, int* out_code);
//	void   read_file_free(char* buf);
//
// Returned buffers are size+1 bytes with a zero sentinel, allocated with
// malloc; the caller owns them. NULL signals failure.
package main

/*
#include <stddef.h>
*/
import "C"

import (
	"os"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/dl/readfile/internal/input"
)

var (
	logger = newLogger()
	reader = input.NewBufferedReader(readerOptions())
)

// newLogger logs to stderr at READFILE_LOG_LEVEL, warn by default.
func newLogger() *log.Logger {
	level, err := log.ParseLevel(os.Getenv("READFILE_LOG_LEVEL"))
	if err != nil {
		level = log.WarnLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "libreadfile",
	})
}

// readerOptions reads READFILE_MAX_SIZE and READFILE_MAX_STREAM_SIZE
// (e.g. "512MiB") as the size limits.
func readerOptions() input.Options {
	return input.Options{
		Alloc:         cAllocator{},
		MaxSize:       envSize("READFILE_MAX_SIZE"),
		MaxStreamSize: envSize("READFILE_MAX_STREAM_SIZE"),
	}
}

func envSize(name string) int64 {
	s := os.Getenv(name)
	if s == "" {
		return 0
	}
	n, err := humanize.ParseBytes(s)
	if err != nil || n > 1<<62 {
		logger.Warn("ignoring "+name, "value", s, "err", err)
		return 0
	}
	return int64(n)
}

// readC reads path into C memory. On success the caller owns the returned
// pointer, which addresses size+1 bytes.
func readC(r input.Reader, path string) (unsafe.Pointer, int, error) {
	result, err := r.Read(path)
	if err != nil {
		logger.Debug("read failed", "path", path, "code", input.Code(err), "err", err)
		return nil, 0, err
	}
	return unsafe.Pointer(unsafe.SliceData(result.Data)), result.Size(), nil
}

//export read_file
func read_file(path *C.char) *C.char {
	p, _, err := readC(reader, C.GoString(path))
	if err != nil {
		return nil
	}
	return (*C.char)(p)
}

//export read_file_ex
func read_file_ex(path *C.char, outLen *C.size_t, outCode *C.int) *C.char {
	p, n, err := readC(reader, C.GoString(path))
	if outLen != nil {
		*outLen = C.size_t(n)
	}
	if outCode != nil {
		*outCode = C.int(input.Code(err))
	}
	if err != nil {
		return nil
	}
	return (*C.char)(p)
}

//export read_file_free
func read_file_free(buf *C.char) {
	freeC(unsafe.Pointer(buf))
}

func main() {}
