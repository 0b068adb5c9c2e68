package main

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// exCall holds what read_file_ex reported through its out-parameters.
type exCall struct {
	ptr  unsafe.Pointer
	len  int
	code int
}

// callReadFile invokes read_file with a C copy of path.
func callReadFile(path string) unsafe.Pointer {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return unsafe.Pointer(read_file(cpath))
}

// callReadFileEx invokes read_file_ex with a C copy of path. The
// out-parameters start at sentinel values so unwritten ones are visible;
// with nilOut both are passed as NULL.
func callReadFileEx(path string, nilOut bool) exCall {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	if nilOut {
		return exCall{ptr: unsafe.Pointer(read_file_ex(cpath, nil, nil)), len: -1, code: -2}
	}
	outLen := C.size_t(^uint(0) >> 1)
	outCode := C.int(-2)
	p := read_file_ex(cpath, &outLen, &outCode)
	return exCall{ptr: unsafe.Pointer(p), len: int(outLen), code: int(outCode)}
}

// callReadFileFree hands p back through read_file_free.
func callReadFileFree(p unsafe.Pointer) {
	read_file_free((*C.char)(p))
}
