// Package log provides the logging infrastructure for frontdesk.
//
// Loggers are injected as dependencies, never pulled from globals.
// Each component receives a logger via its constructor and can add
// context with logger.With().
//
// Usage:
//
//	logger := log.New(log.Config{Level: slog.LevelDebug})
//	engine := chat.New(chat.Config{Logger: logger.With("component", "chat"), ...})
//
//	// In tests
//	testLogger := log.NewNop()
package log

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a type alias for *slog.Logger. Components should accept
// log.Logger as a dependency; using the standard library type keeps
// full compatibility with the slog ecosystem.
type Logger = *slog.Logger

// Config defines logger configuration options.
type Config struct {
	// Level sets the minimum log level. Default: slog.LevelInfo
	Level slog.Level

	// JSON enables JSON format output. Default: false (text format)
	JSON bool

	// AddSource adds source file information to log entries.
	AddSource bool

	// File, when non-empty, writes logs to a size-rotated file
	// instead of stderr.
	File string

	// MaxSizeMB caps each rotated log file. Default: 50.
	MaxSizeMB int

	// MaxBackups caps the number of rotated files kept. Default: 5.
	MaxBackups int
}

// New creates a new logger with the given configuration.
// Output goes to os.Stderr unless cfg.File is set.
func New(cfg Config) Logger {
	if cfg.File != "" {
		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 50
		}
		maxBackups := cfg.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 5
		}
		return NewWithWriter(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
		}, cfg)
	}
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter creates a new logger that writes to the specified writer.
// Useful for testing or custom output destinations.
func NewWithWriter(w io.Writer, cfg Config) Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// NewNop creates a logger that discards all output. Test use only;
// production code should always configure a real destination.
func NewNop() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
