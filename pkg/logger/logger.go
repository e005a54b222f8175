// Package logger configures the process logger from config or environment.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// Level maps a level name to a slog level. Unknown names fall back to info.
func Level(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Setup installs the default logger writing to w. format "json" selects the
// JSON handler, anything else the text handler. A nil w discards output.
func Setup(w io.Writer, level, format string) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{Level: Level(level)}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	l := slog.New(h)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
	return l
}

// SetupFromEnv configures stderr logging from FORTMAP_LOG_LEVEL and
// FORTMAP_LOG_FORMAT.
func SetupFromEnv() *slog.Logger {
	return Setup(os.Stderr, os.Getenv("FORTMAP_LOG_LEVEL"), os.Getenv("FORTMAP_LOG_FORMAT"))
}

// L returns the default logger, configuring it from the environment on first
// use.
func L() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l == nil {
		return SetupFromEnv()
	}
	return l
}
