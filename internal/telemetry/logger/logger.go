package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the application logger interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	// Empty means info.
	Level string
	// Format is json (default), text or console.
	Format string
	// Output defaults to os.Stdout. Use OpenFile for a rotating log file.
	Output io.Writer
	// AddSource adds source file information to log entries.
	AddSource bool
	// Service, when set, is attached to every entry as "service".
	Service string
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: os.Stdout,
	}
}

var levels = []struct {
	name  string
	level slog.Level
}{
	{"debug", slog.LevelDebug},
	{"info", slog.LevelInfo},
	{"warn", slog.LevelWarn},
	{"warning", slog.LevelWarn},
	{"error", slog.LevelError},
}

// globalLevel is shared by every logger built with New, so a reload
// changes the level of loggers already handed out.
var globalLevel = new(slog.LevelVar)

type slogLogger struct {
	*slog.Logger
}

func (l slogLogger) With(args ...any) Logger {
	return slogLogger{l.Logger.With(args...)}
}

// New creates a logger. It fails on an unknown level or format.
func New(cfg Config) (Logger, error) {
	level := slog.LevelInfo
	if cfg.Level != "" {
		var ok bool
		if level, ok = lookupLevel(cfg.Level); !ok {
			return nil, fmt.Errorf("logger: unknown level %q", cfg.Level)
		}
	}
	if cfg.Format != "" && !ValidFormat(cfg.Format) {
		return nil, fmt.Errorf("logger: unknown format %q", cfg.Format)
	}
	globalLevel.Set(level)

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{
		Level:       globalLevel,
		AddSource:   cfg.AddSource,
		ReplaceAttr: redactAttr,
	}

	var h slog.Handler
	if f := strings.ToLower(cfg.Format); f == "text" || f == "console" {
		h = slog.NewTextHandler(out, opts)
	} else {
		h = slog.NewJSONHandler(out, opts)
	}

	l := slog.New(h)
	if cfg.Service != "" {
		l = l.With("service", cfg.Service)
	}
	return slogLogger{l}, nil
}

// SetLevel changes the level of all loggers. Unknown names mean info.
func SetLevel(level string) {
	lvl, ok := lookupLevel(level)
	if !ok {
		lvl = slog.LevelInfo
	}
	globalLevel.Set(lvl)
}

// GetLevel returns the current level name.
func GetLevel() string {
	cur := globalLevel.Level()
	for _, l := range levels {
		if l.level == cur {
			return l.name
		}
	}
	return "info"
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := lookupLevel(level)
	return ok
}

// ValidFormat reports whether format names a known output format.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "json", "text", "console":
		return true
	}
	return false
}

func lookupLevel(name string) (slog.Level, bool) {
	name = strings.ToLower(name)
	for _, l := range levels {
		if l.name == name {
			return l.level, true
		}
	}
	return 0, false
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	l, _ := New(DefaultConfig())
	defaultLogger.Store(&l)
}

// SetDefault replaces the logger returned by Default. Nil is ignored.
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger.Store(&l)
	}
}

// Default returns the process-wide logger.
func Default() Logger {
	return *defaultLogger.Load()
}
