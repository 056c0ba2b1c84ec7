// Package config provides CLI flag binding, environment overrides, logging
// setup, and layered option resolution for the sver CLI. It is a
// cross-cutting concern used by the command layer only; the core packages
// receive plain values.
//
// Logging uses Go's stdlib log/slog exclusively. All log output goes to
// stderr so stdout stays clean for piped command output.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogging configures the global slog default logger. The format should
// be "json" for JSON output; anything else selects human-readable text.
// Safe to call multiple times; each call replaces the previous logger.
func SetupLogging(level slog.Level, format string) {
	SetupLoggingWithWriter(level, format, os.Stderr)
}

// SetupLoggingWithWriter is SetupLogging with an explicit writer, so tests
// can capture log output in a buffer.
func SetupLoggingWithWriter(level slog.Level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ResolveLogLevel picks the log level from CLI flags and the environment.
// SVER_DEBUG=1 always wins, then --verbose, then --quiet, then info.
func ResolveLogLevel(verbose, quiet bool) slog.Level {
	if os.Getenv(EnvDebug) == "1" {
		return slog.LevelDebug
	}
	if verbose {
		return slog.LevelDebug
	}
	if quiet {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ResolveLogFormat returns "json" when SVER_LOG_FORMAT selects it, otherwise
// "text".
func ResolveLogFormat() string {
	if strings.EqualFold(os.Getenv(EnvLogFormat), "json") {
		return "json"
	}
	return "text"
}
