package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options select where log lines go and how much is written.
type Options struct {
	Level string
	// File switches to JSON lines appended to this path. Empty writes a
	// console format to Stderr.
	File   string
	Stderr io.Writer
}

// New builds the application logger. The returned close function releases
// the log file, if one was opened.
func New(opts Options) (zerolog.Logger, func() error, error) {
	nop := func() error { return nil }

	level := zerolog.WarnLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), nop, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = l
	}

	var (
		w       io.Writer
		closeFn = nop
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), nop, fmt.Errorf("log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nop, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	} else {
		out := opts.Stderr
		if out == nil {
			out = os.Stderr
		}
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log := zerolog.New(w).Level(level).With().
		Timestamp().
		Str("service", "kibun").
		Logger()
	return log, closeFn, nil
}
