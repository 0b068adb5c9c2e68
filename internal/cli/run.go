package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/dl/readfile/internal/input"
	"github.com/dl/readfile/internal/output"
	"github.com/dl/readfile/internal/scheduler"
)

// Exit codes.
const (
	ExitOK      = 0 // every path was read
	ExitFailure = 1 // at least one path could not be read
	ExitError   = 2 // usage, setup or output error
)

// Run executes the reads with the given config, writing to stdout and
// logging to stderr.
func Run(cfg Config) int {
	return run(cfg, os.Stdout, os.Stderr)
}

func run(cfg Config, stdout, stderr *os.File) int {
	logger := log.NewWithOptions(stderr, log.Options{
		Level:  cfg.LogLevel,
		Prefix: "readfile",
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		return ExitError
	}

	// Determine color mode
	useColor := false
	switch cfg.Color {
	case ColorAlways:
		useColor = true
	case ColorNever:
		useColor = false
	case ColorAuto:
		useColor = output.IsTerminal(stdout.Fd())
	}

	var formatter output.Formatter
	switch cfg.Format {
	case FormatJSON:
		formatter = output.NewJSONFormatter()
	case FormatSummary:
		styles := output.NoStyles()
		if useColor {
			styles = output.NewStyles(stdout, true)
		}
		formatter = output.NewSummaryFormatter(styles, useColor)
	default:
		formatter = output.NewRawFormatter(cfg.IncludeSentinel)
	}

	opts := cfg.ReaderOptions()
	reader := &routingReader{
		file:  input.NewAdaptiveReader(cfg.MmapThreshold, opts),
		stdin: input.NewStdinReader(opts),
	}

	paths := cfg.Paths
	if len(paths) == 0 {
		paths = []string{input.StdinPath}
	}

	workers := cfg.Workers
	if len(paths) == 1 {
		workers = 1
	}
	sched := scheduler.New(workers, reader)
	resultCh := sched.Run(scheduler.Jobs(paths))

	failed := false
	ow := output.NewOrderedWriter(output.NewFileWriter(stdout), formatter)
	err := ow.WriteOrdered(resultCh, func(r output.Result) {
		if r.Err != nil {
			failed = true
			logger.Warn("read failed", "path", r.FilePath, "code", input.Code(r.Err), "err", r.Err)
			return
		}
		logger.Debug("read", "path", r.FilePath, "size", humanize.IBytes(uint64(r.Buffer.Size())))
	})
	if err != nil {
		logger.Error("write failed", "err", err)
		return ExitError
	}

	if failed {
		return ExitFailure
	}
	return ExitOK
}

// routingReader sends input.StdinPath to stdin and everything else to the file reader.
type routingReader struct {
	file  input.Reader
	stdin input.Reader
}

func (r *routingReader) Read(path string) (input.ReadResult, error) {
	if path == input.StdinPath {
		return r.stdin.Read(path)
	}
	return r.file.Read(path)
}
