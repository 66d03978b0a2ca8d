// Package logging builds the slog loggers used by flashmcp servers.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Root is the logger name every named logger is nested under.
const Root = "flashmcp"

// ParseLevel converts a level name into a slog.Level. WARNING and CRITICAL
// are accepted as aliases of WARN and ERROR.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR", "CRITICAL":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New creates a text logger writing to w at the named level.
func New(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Named returns l with a logger attribute of "flashmcp.name".
// A nil l yields a discarding logger.
func Named(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		return Nop()
	}

	return l.With("logger", Root+"."+name)
}
