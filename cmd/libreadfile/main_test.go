package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dl/readfile/internal/input"
)

func TestReadC_HelloWorld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello, world!"), 0644))

	p, n, err := readC(reader, path)
	require.NoError(t, err)
	require.NotNil(t, p)
	defer freeC(p)

	buf := unsafe.Slice((*byte)(p), n+1)
	assert.Equal(t, 13, n)
	assert.Equal(t, "hello, world!", string(buf[:13]))
	assert.Equal(t, byte(0), buf[13])
}

func TestReadC_EmptyAndEmbeddedNUL(t *testing.T) {
	dir := t.TempDir()
	cases := map[string][]byte{
		"empty": {},
		"nul":   []byte("a\x00b\x00"),
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, content, 0644))

			p, n, err := readC(reader, path)
			require.NoError(t, err)
			defer freeC(p)

			buf := unsafe.Slice((*byte)(p), n+1)
			assert.Equal(t, len(content), n)
			assert.Equal(t, content, buf[:n])
			assert.Equal(t, byte(0), buf[n])
		})
	}
}

func TestReadC_Missing(t *testing.T) {
	p, n, err := readC(reader, filepath.Join(t.TempDir(), "missing"))
	assert.Nil(t, p)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, input.ErrOpen)
	assert.Equal(t, input.CodeOpen, input.Code(err))
}

func TestReadC_SizeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big")
	require.NoError(t, os.WriteFile(path, make([]byte, 128), 0644))

	limited := input.NewBufferedReader(input.Options{Alloc: cAllocator{}, MaxSize: 64})
	p, _, err := readC(limited, path)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, input.ErrAlloc)
	assert.Equal(t, input.CodeAlloc, input.Code(err))
}

func TestCAllocator(t *testing.T) {
	b, err := cAllocator{}.Alloc(16)
	require.NoError(t, err)
	assert.Len(t, b, 16)
	cAllocator{}.Free(b)

	_, err = cAllocator{}.Alloc(math.MaxInt64 / 2)
	assert.Error(t, err, "malloc of an impossible size should fail, not abort")

	_, err = cAllocator{}.Alloc(0)
	assert.Error(t, err)
}

func TestReaderOptions_MaxSizeEnv(t *testing.T) {
	t.Setenv("READFILE_MAX_SIZE", "2KiB")
	assert.Equal(t, int64(2048), readerOptions().MaxSize)

	t.Setenv("READFILE_MAX_SIZE", "bogus")
	assert.Zero(t, readerOptions().MaxSize)

	t.Setenv("READFILE_MAX_STREAM_SIZE", "1MiB")
	assert.Equal(t, int64(1<<20), readerOptions().MaxStreamSize)
}

// withReader swaps the reader behind the exported functions for one test.
func withReader(t *testing.T, r *input.BufferedReader) {
	t.Helper()
	orig := reader
	reader = r
	t.Cleanup(func() { reader = orig })
}

func TestExports(t *testing.T) {
	dir := t.TempDir()
	hello := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(hello, []byte("hello, world!"), 0644))
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	big := filepath.Join(dir, "big")
	require.NoError(t, os.WriteFile(big, make([]byte, 128), 0644))

	withReader(t, input.NewBufferedReader(input.Options{Alloc: cAllocator{}, MaxSize: 64}))

	tests := []struct {
		name     string
		path     string
		want     string
		wantCode int
		wantNil  bool
	}{
		{"hello world", hello, "hello, world!", input.CodeOK, false},
		{"empty file", empty, "", input.CodeOK, false},
		{"missing", filepath.Join(dir, "missing"), "", input.CodeOpen, true},
		{"over limit", big, "", input.CodeAlloc, true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/read_file", func(t *testing.T) {
			p := callReadFile(tt.path)
			if tt.wantNil {
				assert.Nil(t, p, "every failure is NULL")
				return
			}
			require.NotNil(t, p)
			defer freeC(p)
			buf := unsafe.Slice((*byte)(p), len(tt.want)+1)
			assert.Equal(t, tt.want, string(buf[:len(tt.want)]))
			assert.Equal(t, byte(0), buf[len(tt.want)])
		})

		t.Run(tt.name+"/read_file_ex", func(t *testing.T) {
			got := callReadFileEx(tt.path, false)
			assert.Equal(t, tt.wantCode, got.code)
			assert.Equal(t, len(tt.want), got.len, "out_len is written on failure too")
			if tt.wantNil {
				assert.Nil(t, got.ptr)
				return
			}
			require.NotNil(t, got.ptr)
			defer freeC(got.ptr)
			buf := unsafe.Slice((*byte)(got.ptr), got.len+1)
			assert.Equal(t, tt.want, string(buf[:got.len]))
			assert.Equal(t, byte(0), buf[got.len])
		})

		t.Run(tt.name+"/read_file_ex without out-params", func(t *testing.T) {
			got := callReadFileEx(tt.path, true)
			if tt.wantNil {
				assert.Nil(t, got.ptr)
				return
			}
			require.NotNil(t, got.ptr)
			defer freeC(got.ptr)
			assert.Equal(t, byte(0), unsafe.Slice((*byte)(got.ptr), len(tt.want)+1)[len(tt.want)])
		})
	}
}

func TestReadFileFree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("free me"), 0644))

	p := callReadFile(path)
	require.NotNil(t, p)
	callReadFileFree(p)
	callReadFileFree(nil)
}
