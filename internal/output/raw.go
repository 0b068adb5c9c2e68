package output

// RawFormatter emits file contents verbatim, like cat.
type RawFormatter struct {
	sentinel bool
}

// NewRawFormatter creates a RawFormatter. When sentinel is true the trailing
// zero byte is written after each file.
func NewRawFormatter(sentinel bool) *RawFormatter {
	return &RawFormatter{sentinel: sentinel}
}

// Format appends the file bytes to buf. With a nil buf the returned slice
// aliases the result's buffer to avoid copying large files; it is then only
// valid until the result is released.
func (f *RawFormatter) Format(buf []byte, result Result) []byte {
	if result.Err != nil {
		return buf
	}
	data := result.Buffer.Contents()
	if f.sentinel {
		data = result.Buffer.Data
	}
	if buf == nil {
		return data
	}
	return append(buf, data...)
}

var _ Formatter = (*RawFormatter)(nil)
