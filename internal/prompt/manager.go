package prompt

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/flashmcp-go/internal/errors"
	"github.com/wagiedev/flashmcp-go/internal/registry"
)

// Manager owns the prompts of one server.
type Manager struct {
	*registry.Manager[*Prompt]
}

// NewManager creates an empty prompt manager.
func NewManager(duplicates registry.DuplicateBehavior, log *slog.Logger) *Manager {
	return &Manager{Manager: registry.New[*Prompt](errors.KindPrompt, duplicates, log)}
}

// GetPrompt returns the prompt registered under name.
func (m *Manager) GetPrompt(name string) (*Prompt, error) {
	p, ok := m.Get(name)
	if !ok {
		return nil, &errors.NotFoundError{Kind: errors.KindPrompt, Identity: name}
	}

	return p, nil
}

// RenderPrompt looks up and renders a prompt.
func (m *Manager) RenderPrompt(ctx context.Context, name string, args map[string]string) ([]*mcp.PromptMessage, error) {
	p, err := m.GetPrompt(name)
	if err != nil {
		return nil, err
	}

	return p.Render(ctx, args)
}

// Import copies every prompt of other into m as "prefix/name".
func (m *Manager) Import(other *Manager, prefix string) error {
	return m.ImportFrom(other.Manager, prefix)
}
