// Package common holds process-wide helpers shared by the biosdk binaries.
package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

type LoggingOpts struct {
	Debug   bool
	JSON    bool
	Service string
	Version string

	// File, when set, duplicates output into a daily rotated file. It is a
	// strftime pattern such as "/var/log/biosdk/biosdk.%Y%m%d.log".
	File string
	// FileMaxAge bounds how long rotated files are kept. Zero keeps a week.
	FileMaxAge time.Duration
}

// SetupLogger builds the process logger. It falls back to stdout only when
// the log file cannot be opened.
func SetupLogger(opts *LoggingOpts) (log *slog.Logger) {
	logLevel := slog.LevelInfo
	if opts.Debug {
		logLevel = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		w, err := rotatingWriter(opts.File, opts.FileMaxAge)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file disabled: %v\n", err)
		} else {
			out = io.MultiWriter(os.Stdout, w)
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	if opts.JSON {
		log = slog.New(slog.NewJSONHandler(out, handlerOpts))
	} else {
		log = slog.New(slog.NewTextHandler(out, handlerOpts))
	}

	if opts.Service != "" {
		log = log.With("service", opts.Service)
	}
	if opts.Version != "" {
		log = log.With("version", opts.Version)
	}
	return log
}

func rotatingWriter(pattern string, maxAge time.Duration) (io.Writer, error) {
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	w, err := rotatelogs.New(pattern,
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("could not open log file %q: %w", pattern, err)
	}
	return w, nil
}
