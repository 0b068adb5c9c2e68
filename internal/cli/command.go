package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagValues holds raw flag values before they are parsed into a Config.
type flagValues struct {
	format         string
	sentinel       bool
	color          string
	workers        int
	mmapThreshold  string
	maxSize        string
	maxStreamSize  string
	allowShortRead bool
	logLevel       string
}

func bindFlags(fs *pflag.FlagSet, v *flagValues) {
	fs.StringVar(&v.format, "format", "raw", "output format: raw, summary or json")
	fs.BoolVar(&v.sentinel, "sentinel", false, "write the trailing zero byte after each file (raw format)")
	fs.StringVar(&v.color, "color", "auto", "colorize summary output: auto, always or never")
	fs.IntVarP(&v.workers, "workers", "j", 0, "concurrent reads (0 = 2 x CPUs)")
	fs.StringVar(&v.mmapThreshold, "mmap-threshold", "1MiB", "memory-map files at least this large (0 disables)")
	fs.StringVar(&v.maxSize, "max-size", "0", "refuse files larger than this (0 = no limit)")
	fs.StringVar(&v.maxStreamSize, "max-stream-size", "1GiB", "stop reading pipes and devices past this size (0 = no limit)")
	fs.BoolVar(&v.allowShortRead, "allow-short-read", false, "keep partial data when a file shrinks mid-read")
	fs.StringVar(&v.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
}

// config parses flag values and positional paths into a Config.
func (v *flagValues) config(paths []string) (Config, error) {
	cfg := Config{
		Paths:           paths,
		IncludeSentinel: v.sentinel,
		Workers:         v.workers,
		AllowShortRead:  v.allowShortRead,
	}

	switch v.format {
	case "raw":
		cfg.Format = FormatRaw
	case "summary":
		cfg.Format = FormatSummary
	case "json":
		cfg.Format = FormatJSON
	default:
		return Config{}, fmt.Errorf("unknown format %q", v.format)
	}

	switch v.color {
	case "auto":
		cfg.Color = ColorAuto
	case "always":
		cfg.Color = ColorAlways
	case "never":
		cfg.Color = ColorNever
	default:
		return Config{}, fmt.Errorf("unknown color mode %q", v.color)
	}

	var err error
	if cfg.MmapThreshold, err = parseSize(v.mmapThreshold); err != nil {
		return Config{}, fmt.Errorf("--mmap-threshold: %w", err)
	}
	if cfg.MaxSize, err = parseSize(v.maxSize); err != nil {
		return Config{}, fmt.Errorf("--max-size: %w", err)
	}
	if cfg.MaxStreamSize, err = parseSize(v.maxStreamSize); err != nil {
		return Config{}, fmt.Errorf("--max-stream-size: %w", err)
	}

	if cfg.LogLevel, err = log.ParseLevel(v.logLevel); err != nil {
		return Config{}, fmt.Errorf("--log-level: %w", err)
	}
	return cfg, cfg.Validate()
}

// parseSize accepts byte counts with optional units, e.g. "4096", "64KiB", "1GB".
func parseSize(s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if n > 1<<62 {
		return 0, fmt.Errorf("size %s too large", s)
	}
	return int64(n), nil
}

// NewCommand builds the readfile root command. The exit code of a completed
// run is stored in *code.
func NewCommand(code *int) *cobra.Command {
	var v flagValues
	cmd := &cobra.Command{
		Use:   "readfile [flags] [PATH...]",
		Short: "Read whole files into zero-terminated buffers",
		Long: "readfile reads each PATH completely into a buffer of size+1 bytes whose\n" +
			"last byte is zero. With no PATH, or when PATH is -, standard input is read.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := v.config(args)
			if err != nil {
				return err
			}
			*code = Run(cfg)
			return nil
		},
	}
	bindFlags(cmd.Flags(), &v)
	return cmd
}

// Execute runs the command line, with config file arguments first so that
// explicit flags win. Returns the process exit code.
func Execute(args []string) int {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "readfile"})
	fileArgs, err := LoadConfigArgs()
	if err != nil {
		logger.Error("invalid config file", "err", err)
		return ExitError
	}

	code := ExitOK
	cmd := NewCommand(&code)
	cmd.SetArgs(append(fileArgs, args...))
	if err := cmd.Execute(); err != nil {
		logger.Error("invalid arguments", "err", err)
		return ExitError
	}
	return code
}
