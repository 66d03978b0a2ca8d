package flashmcp

import (
	"io"
	"log/slog"

	"github.com/wagiedev/flashmcp-go/internal/logging"
)

// NopLogger returns a logger that discards all output.
// Use this when you want silent operation with no logging overhead.
func NopLogger() *slog.Logger {
	return logging.Nop()
}

// NewLogger returns a text logger writing to w at the named level
// (DEBUG, INFO, WARNING, ERROR or CRITICAL).
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	return logging.New(level, w)
}
