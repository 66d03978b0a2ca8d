package tool

import (
	"context"
	"log/slog"

	"github.com/wagiedev/flashmcp-go/internal/errors"
	"github.com/wagiedev/flashmcp-go/internal/registry"
)

// Manager owns the tools of one server.
type Manager struct {
	*registry.Manager[*Tool]
}

// NewManager creates an empty tool manager.
func NewManager(duplicates registry.DuplicateBehavior, log *slog.Logger) *Manager {
	return &Manager{Manager: registry.New[*Tool](errors.KindTool, duplicates, log)}
}

// GetTool returns the tool registered under name.
func (m *Manager) GetTool(name string) (*Tool, error) {
	t, ok := m.Get(name)
	if !ok {
		return nil, &errors.NotFoundError{Kind: errors.KindTool, Identity: name}
	}

	return t, nil
}

// CallTool looks up and runs a tool.
func (m *Manager) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	t, err := m.GetTool(name)
	if err != nil {
		return nil, err
	}

	return t.Run(ctx, args)
}

// Import copies every tool of other into m as "prefix/name".
func (m *Manager) Import(other *Manager, prefix string) error {
	return m.ImportFrom(other.Manager, prefix)
}
