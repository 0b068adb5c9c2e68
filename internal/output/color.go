package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/sys/unix"
)

// Styles holds the lipgloss styles for output formatting.
type Styles struct {
	Path      lipgloss.Style
	Separator lipgloss.Style
	Size      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles creates the default color styles rendering to w. When force is
// true ANSI colors are emitted even if w is not a terminal.
func NewStyles(w io.Writer, force bool) Styles {
	r := lipgloss.NewRenderer(w)
	if force {
		r.SetColorProfile(termenv.ANSI)
	}
	return Styles{
		Path:      r.NewStyle().Foreground(lipgloss.Color("5")),            // magenta
		Separator: r.NewStyle().Foreground(lipgloss.Color("6")),            // cyan
		Size:      r.NewStyle().Foreground(lipgloss.Color("2")),            // green
		Warn:      r.NewStyle().Foreground(lipgloss.Color("3")),            // yellow
		Error:     r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true), // bold red
	}
}

// NoStyles returns styles with no coloring.
func NoStyles() Styles {
	return Styles{
		Path:      lipgloss.NewStyle(),
		Separator: lipgloss.NewStyle(),
		Size:      lipgloss.NewStyle(),
		Warn:      lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle(),
	}
}

// IsTerminal checks if the given file descriptor is a terminal using ioctl.
func IsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	return err == nil
}

// StdoutIsTerminal returns true if stdout is a terminal.
func StdoutIsTerminal() bool {
	return IsTerminal(os.Stdout.Fd())
}
