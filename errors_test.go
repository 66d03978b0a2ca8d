package flashmcp

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNotFoundError_Sentinels tests that lookups match the kind sentinels.
func TestNotFoundError_Sentinels(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", &NotFoundError{Kind: KindResource, Identity: "data://x"})

	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, ErrResourceNotFound)
	require.NotErrorIs(t, err, ErrToolNotFound)
	require.NotErrorIs(t, err, ErrPromptNotFound)
	require.Contains(t, err.Error(), "Unknown resource: data://x")
}

// TestToolError_Unwrap tests that ToolError keeps its cause.
func TestToolError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ToolError{Name: "explode", Err: cause}

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "explode")
}

// TestFlashMCPError_Interface tests that every error type implements FlashMCPError.
func TestFlashMCPError_Interface(t *testing.T) {
	for _, err := range []error{
		&NotFoundError{Kind: KindTool, Identity: "x"},
		&ValidationError{Kind: KindTool, Name: "x", Err: errors.New("bad")},
		&ToolError{Name: "x", Err: errors.New("bad")},
		&ResourceError{URI: "x", Err: errors.New("bad")},
		&PromptError{Name: "x", Err: errors.New("bad")},
		&DuplicateError{Kind: KindPrompt, Identity: "x"},
		&TransportError{Op: "connect", Err: errors.New("bad")},
	} {
		var fe FlashMCPError
		require.ErrorAs(t, err, &fe, "%T", err)
		require.True(t, fe.IsFlashMCPError())
	}
}

// TestNewLogger tests the logger helpers.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger("WARNING", &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	_, err = NewLogger("LOUD", &buf)
	require.Error(t, err)

	NopLogger().Error("discarded")
}
