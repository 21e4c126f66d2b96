// Package config handles command line options and logger setup.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultFrequency is the number of cycles run per second.
	DefaultFrequency = 60 * 8
	minFrequency     = 60
	maxFrequency     = 60 * 1000
)

// Options are the command line options of the emulator.
type Options struct {
	File              string
	StepMode          bool
	Terminal          bool
	Frequency         int
	IndexOverflowFlag bool
	Debug             bool
	Quiet             bool
}

// ParseFlags parses args (without the program name) into Options.
func ParseFlags(name string, args []string, output io.Writer) (Options, error) {
	var opts Options

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.File, "f", "", "chip8 image file path")
	fs.BoolVar(&opts.StepMode, "s", false, "start with stepMode")
	fs.BoolVar(&opts.Terminal, "t", false, "run inside the terminal instead of a window")
	fs.IntVar(&opts.Frequency, "hz", DefaultFrequency, "instructions per second")
	fs.BoolVar(&opts.IndexOverflowFlag, "vf", false, "set VF when ADD I,Vx overflows 0xFFF")
	fs.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	fs.BoolVar(&opts.Quiet, "q", false, "quiet mode")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.File == "" && fs.NArg() > 0 {
		opts.File = fs.Arg(0)
	}
	if opts.File == "" {
		fs.Usage()
		return opts, errors.New("missing chip8 image file")
	}
	if opts.Frequency < minFrequency || opts.Frequency > maxFrequency {
		return opts, fmt.Errorf("frequency %d out of range %d-%d", opts.Frequency, minFrequency, maxFrequency)
	}
	return opts, nil
}

// CyclesPerFrame is the number of cycles to run per 60 Hz frame.
func (o Options) CyclesPerFrame() int {
	return o.Frequency / 60
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
