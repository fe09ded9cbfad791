// Package logging wraps log/slog with component tags for the FIFO core, its
// owner and the testbench.
//
// The default logger writes text to os.Stderr at Warn level, so the core stays
// silent unless a caller raises the level:
//
//	logging.SetLevel(slog.LevelDebug)
//	logging.Info(logging.ComponentBench, "run complete", "cycles", 1000)
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Component identifies a subsystem for log filtering.
type Component string

// Component identifiers.
const (
	ComponentFIFO  Component = "fifo"
	ComponentOwner Component = "owner"
	ComponentBench Component = "bench"
	ComponentCLI   Component = "cli"
)

// Format specifies the output format for logging.
type Format int

// Format options.
const (
	FormatText Format = iota // Text format (default)
	FormatJSON               // JSON format
)

var (
	defaultLogger *slog.Logger

	// level controls the minimum level of the default logger.
	level = new(slog.LevelVar)

	// mu protects logger configuration.
	mu sync.RWMutex
)

func init() {
	level.Set(slog.LevelWarn)
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetLevel sets the minimum level of the default logger.
func SetLevel(l slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	level.Set(l)
}

// Level returns the current minimum level.
func Level() slog.Level {
	mu.RLock()
	defer mu.RUnlock()
	return level.Level()
}

// SetLogger replaces the default logger.
func SetLogger(logger *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// SetFormat replaces the default logger with one writing the given format to w,
// honoring the current level.
func SetFormat(w io.Writer, format Format) {
	mu.Lock()
	defer mu.Unlock()
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatJSON:
		defaultLogger = slog.New(slog.NewJSONHandler(w, opts))
	default:
		defaultLogger = slog.New(slog.NewTextHandler(w, opts))
	}
}

// Default returns the current default logger.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// New creates a text logger writing to w. A nil opts uses the package level.
func New(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: level}
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewJSON creates a JSON logger writing to w. A nil opts uses the package level.
func NewJSON(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: level}
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// For returns logger, or the default logger when nil, tagged with component.
func For(logger *slog.Logger, component Component) *slog.Logger {
	if logger == nil {
		logger = Default()
	}
	return logger.With("component", string(component))
}

// Debug logs a debug message with the given component.
func Debug(component Component, msg string, args ...any) {
	Default().Debug(msg, append([]any{"component", string(component)}, args...)...)
}

// Info logs an info message with the given component.
func Info(component Component, msg string, args ...any) {
	Default().Info(msg, append([]any{"component", string(component)}, args...)...)
}

// Warn logs a warning message with the given component.
func Warn(component Component, msg string, args ...any) {
	Default().Warn(msg, append([]any{"component", string(component)}, args...)...)
}

// Error logs an error message with the given component.
func Error(component Component, msg string, args ...any) {
	Default().Error(msg, append([]any{"component", string(component)}, args...)...)
}
