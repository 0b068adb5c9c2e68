package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dl/readfile/internal/input"
)

// ColorMode controls when colored output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

// Format selects how each read is reported on stdout.
type Format int

const (
	FormatRaw     Format = iota // file bytes, like cat
	FormatSummary               // one line per path with size and NUL status
	FormatJSON                  // JSON Lines
)

// Config holds all configuration for a readfile run.
type Config struct {
	Paths           []string
	Format          Format
	IncludeSentinel bool
	Color           ColorMode
	Workers         int
	MmapThreshold   int64
	MaxSize         int64
	MaxStreamSize   int64
	AllowShortRead  bool
	LogLevel        log.Level
}

// Validate checks that the config is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	if c.MmapThreshold < 0 {
		return fmt.Errorf("invalid mmap threshold: %d", c.MmapThreshold)
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("invalid max size: %d", c.MaxSize)
	}
	if c.MaxStreamSize < 0 {
		return fmt.Errorf("invalid max stream size: %d", c.MaxStreamSize)
	}
	if c.IncludeSentinel && c.Format != FormatRaw {
		return fmt.Errorf("--sentinel only applies to raw output")
	}
	stdin := 0
	for _, p := range c.Paths {
		if p == input.StdinPath {
			stdin++
		}
	}
	if stdin > 1 {
		return fmt.Errorf("stdin (%q) given %d times", input.StdinPath, stdin)
	}
	return nil
}

// ReaderOptions translates the config into reader options.
func (c *Config) ReaderOptions() input.Options {
	opts := input.Options{
		Alloc:         input.NewPoolAllocator(),
		MaxSize:       c.MaxSize,
		MaxStreamSize: c.MaxStreamSize,
	}
	if c.AllowShortRead {
		opts.ShortRead = input.ShortReadTruncate
	}
	return opts
}
