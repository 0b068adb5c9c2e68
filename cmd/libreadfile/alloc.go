package main

/*
#include <stdlib.h>

// cgo's C.malloc aborts on failure; call the real malloc so NULL is observable.
static void* rf_malloc(size_t n) { return malloc(n); }
*/
import "C"

import (
	"errors"
	"unsafe"
)

// cAllocator hands out C heap memory so buffers can cross the boundary and
// be released by the host with free(3).
type cAllocator struct{}

func (cAllocator) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.New("malloc: invalid size")
	}
	p := C.rf_malloc(C.size_t(n))
	if p == nil {
		return nil, errors.New("malloc returned NULL")
	}
	return unsafe.Slice((*byte)(p), n), nil
}

func (cAllocator) Free(b []byte) {
	freeC(unsafe.Pointer(unsafe.SliceData(b)))
}

func freeC(p unsafe.Pointer) {
	C.free(p)
}
