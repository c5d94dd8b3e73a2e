// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs a JSON logger on stdout as the slog default.
// With enableOTel the records are also emitted through the global OTel logger provider.
func Init(enableOTel bool) *slog.Logger {
	l := New(os.Stdout, levelFromString(os.Getenv("LOG_LEVEL")), enableOTel)
	slog.SetDefault(l)
	return l
}

// New builds a logger writing JSON to w without touching the slog default.
func New(w io.Writer, level slog.Level, enableOTel bool) *slog.Logger {
	handlers := []slog.Handler{
		NewContextHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})),
	}
	if enableOTel {
		handlers = append(handlers, newOTelBridge("interview-hub", level))
	}
	if len(handlers) == 1 {
		return slog.New(handlers[0])
	}
	return slog.New(tee(handlers))
}

func levelFromString(s string) slog.Level {
	var level slog.Level
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning":
		return slog.LevelWarn
	case "":
		return slog.LevelInfo
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
