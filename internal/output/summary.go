package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// SummaryFormatter writes one human-readable line per path.
type SummaryFormatter struct {
	styles   Styles
	useColor bool
}

// NewSummaryFormatter creates a SummaryFormatter.
func NewSummaryFormatter(styles Styles, useColor bool) *SummaryFormatter {
	return &SummaryFormatter{
		styles:   styles,
		useColor: useColor,
	}
}

// Format writes "path: N bytes (human), sentinel at N" with an embedded NUL
// note when the file cannot be consumed as a C string, or "path: error".
func (f *SummaryFormatter) Format(buf []byte, result Result) []byte {
	buf = append(buf, f.render(f.styles.Path, result.FilePath)...)
	buf = append(buf, f.render(f.styles.Separator, ":")...)
	buf = append(buf, ' ')

	if result.Err != nil {
		buf = append(buf, f.render(f.styles.Error, result.Err.Error())...)
		buf = append(buf, '\n')
		return buf
	}

	size := result.Buffer.Size()
	n := strconv.Itoa(size)
	buf = append(buf, f.render(f.styles.Size, n+" bytes")...)
	buf = append(buf, " ("...)
	buf = append(buf, humanize.IBytes(uint64(size))...)
	buf = append(buf, "), sentinel at "...)
	buf = append(buf, n...)
	if result.Buffer.HasEmbeddedNUL() {
		buf = append(buf, ", "...)
		buf = append(buf, f.render(f.styles.Warn, "embedded NUL")...)
	}
	buf = append(buf, '\n')
	return buf
}

func (f *SummaryFormatter) render(style lipgloss.Style, s string) string {
	if !f.useColor {
		return s
	}
	return style.Render(s)
}

var _ Formatter = (*SummaryFormatter)(nil)
