package output

import (
	"encoding/json"

	"github.com/dustin/go-humanize"

	"github.com/dl/readfile/internal/input"
)

// JSONFormatter formats results as JSON Lines (one JSON object per path).
type JSONFormatter struct{}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// jsonRecord is the JSON serialization format for a read.
type jsonRecord struct {
	Type        string `json:"type"`
	File        string `json:"file"`
	Size        int    `json:"size"`
	Human       string `json:"human,omitempty"`
	BufferLen   int    `json:"buffer_len,omitempty"`
	EmbeddedNUL bool   `json:"embedded_nul,omitempty"`
	Code        int    `json:"code"`
	Error       string `json:"error,omitempty"`
}

func (f *JSONFormatter) Format(buf []byte, result Result) []byte {
	rec := jsonRecord{
		Type: "file",
		File: result.FilePath,
		Code: input.Code(result.Err),
	}
	if result.Err != nil {
		rec.Type = "error"
		rec.Error = result.Err.Error()
	} else {
		rec.Size = result.Buffer.Size()
		rec.Human = humanize.IBytes(uint64(rec.Size))
		rec.BufferLen = len(result.Buffer.Data)
		rec.EmbeddedNUL = result.Buffer.HasEmbeddedNUL()
	}
	data, _ := json.Marshal(rec)
	buf = append(buf, data...)
	buf = append(buf, '\n')
	return buf
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
