package flashmcp

import (
	"github.com/wagiedev/flashmcp-go/internal/client"
	"github.com/wagiedev/flashmcp-go/internal/config"
	"github.com/wagiedev/flashmcp-go/internal/transport"
)

// Client is a lazily connecting MCP client bound to one transport.
type Client = client.Client

// ClientOption configures a Client.
type ClientOption = client.Option

// Client options.
var (
	WithClientLogger         = client.WithLogger
	WithClientImplementation = client.WithImplementation
)

// NewClient creates a client for t. The connection is opened on the first
// request.
func NewClient(t Transport, opts ...ClientOption) *Client {
	return client.New(t, opts...)
}

// NewInMemoryClient creates a client connected to s in-process.
func NewInMemoryClient(s *Server, opts ...ClientOption) *Client {
	return client.New(transport.InMemory(s.MCPServer), opts...)
}

// NewURLClient creates a client for an MCP endpoint. Paths ending in /sse use
// the SSE transport and everything else streamable HTTP. headers are sent
// with every request.
func NewURLClient(url string, headers map[string]string, opts ...ClientOption) (*Client, error) {
	t, err := transport.FromURL(url, headers)
	if err != nil {
		return nil, err
	}

	return client.New(t, opts...), nil
}

// NewConfigClient creates a client for one server of an MCP configuration.
func NewConfigClient(cfg *MCPConfig, name string, opts ...ClientOption) (*Client, error) {
	sc, ok := cfg.MCPServers[name]
	if !ok {
		return nil, &NotFoundError{Kind: "server", Identity: name}
	}

	t, err := transport.FromConfig(sc)
	if err != nil {
		return nil, err
	}

	return client.New(t, opts...), nil
}

// LoadMCPConfig reads an MCP configuration file.
func LoadMCPConfig(path string) (*MCPConfig, error) {
	return config.LoadMCPConfig(path)
}
