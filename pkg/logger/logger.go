// Package logger provides the structured, levelled logger used by every
// geoinspect package. It is built on log/slog.
//
// Standard output is reserved for generated code, so every handler writes
// to standard error:
//
//	local / dev   → charmbracelet/log, coloured and human-readable
//	production    → slog JSON, one object per line
//
// The level comes from LOG_LEVEL and can be raised with Setup (the CLI's
// --verbose / --debug flags).
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/shashiranjanraj/geoinspect/config"
)

var L *slog.Logger

func init() {
	L = New(os.Stderr, config.AppEnv(), config.LogLevel())
	slog.SetDefault(L)
}

// New builds a logger writing to w. env selects the handler, level is one
// of debug, info, warn, error (anything else means info).
func New(w io.Writer, env, level string) *slog.Logger {
	lvl := ParseLevel(level)

	switch strings.ToLower(env) {
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	default:
		h := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(lvl),
			ReportTimestamp: lvl <= slog.LevelDebug,
			Prefix:          "geoinspect",
		})
		return slog.New(h)
	}
}

// Setup replaces the package logger. debug wins over verbose; with neither
// the configured LOG_LEVEL applies.
func Setup(verbose, debug bool) *slog.Logger {
	level := config.LogLevel()
	switch {
	case debug:
		level = "debug"
	case verbose:
		level = "info"
	}
	L = New(os.Stderr, config.AppEnv(), level)
	slog.SetDefault(L)
	return L
}

// ParseLevel maps a level name onto slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }
