package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/flashmcp-go/internal/errors"
)

const (
	defaultClientName    = "flashmcp-client"
	defaultClientVersion = "1.0.0"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithImplementation sets the client name and version sent during
// initialization.
func WithImplementation(name, version string) Option {
	return func(c *Client) {
		c.impl = &mcp.Implementation{Name: name, Version: version}
	}
}

// Client talks to one MCP server over a transport.
type Client struct {
	id        string
	log       *slog.Logger
	impl      *mcp.Implementation
	transport mcp.Transport

	mu        sync.Mutex
	session   *mcp.ClientSession
	closed    bool
	closeOnce sync.Once
}

// New creates a client for transport. No connection is made until the
// first request.
func New(transport mcp.Transport, opts ...Option) *Client {
	c := &Client{
		id:        ulid.Make().String(),
		transport: transport,
		impl:      &mcp.Implementation{Name: defaultClientName, Version: defaultClientVersion},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c.log = c.log.With("component", "client", "client_id", c.id)

	return c
}

// ID returns the client instance ID used in log records.
func (c *Client) ID() string {
	return c.id
}

// IsConnected reports whether a session is open.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.session != nil
}

// Connect opens the session if it is not open yet.
func (c *Client) Connect(ctx context.Context) error {
	_, err := c.getSession(ctx)

	return err
}

func (c *Client) getSession(ctx context.Context) (*mcp.ClientSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, errors.ErrClientClosed
	}

	if c.session != nil {
		return c.session, nil
	}

	if c.transport == nil {
		return nil, &errors.TransportError{Op: "connect", Err: fmt.Errorf("no transport configured")}
	}

	c.log.Debug("Connecting")

	session, err := mcp.NewClient(c.impl, nil).Connect(ctx, c.transport, nil)
	if err != nil {
		c.log.Debug("Connect failed", "error", err)

		return nil, &errors.TransportError{Op: "connect", Err: err}
	}

	c.session = session
	c.log.Debug("Connected", "session_id", session.ID())

	return session, nil
}

// ListTools returns every tool the server offers, following pagination.
func (c *Client) ListTools(ctx context.Context) ([]*mcp.Tool, error) {
	session, err := c.getSession(ctx)
	if err != nil {
		return nil, err
	}

	var tools []*mcp.Tool

	for t, err := range session.Tools(ctx, nil) {
		if err != nil {
			return nil, err
		}

		tools = append(tools, t)
	}

	return tools, nil
}

// ListResources returns every concrete resource the server offers.
func (c *Client) ListResources(ctx context.Context) ([]*mcp.Resource, error) {
	session, err := c.getSession(ctx)
	if err != nil {
		return nil, err
	}

	var resources []*mcp.Resource

	for r, err := range session.Resources(ctx, nil) {
		if err != nil {
			return nil, err
		}

		resources = append(resources, r)
	}

	return resources, nil
}

// ListResourceTemplates returns every resource template the server offers.
func (c *Client) ListResourceTemplates(ctx context.Context) ([]*mcp.ResourceTemplate, error) {
	session, err := c.getSession(ctx)
	if err != nil {
		return nil, err
	}

	var templates []*mcp.ResourceTemplate

	for t, err := range session.ResourceTemplates(ctx, nil) {
		if err != nil {
			return nil, err
		}

		templates = append(templates, t)
	}

	return templates, nil
}

// ListPrompts returns every prompt the server offers.
func (c *Client) ListPrompts(ctx context.Context) ([]*mcp.Prompt, error) {
	session, err := c.getSession(ctx)
	if err != nil {
		return nil, err
	}

	var prompts []*mcp.Prompt

	for p, err := range session.Prompts(ctx, nil) {
		if err != nil {
			return nil, err
		}

		prompts = append(prompts, p)
	}

	return prompts, nil
}

// CallTool invokes a tool. A result with IsError set is returned as is.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	session, err := c.getSession(ctx)
	if err != nil {
		return nil, err
	}

	if args == nil {
		args = map[string]any{}
	}

	c.log.Debug("Calling tool", "tool", name)

	return session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
}

// ReadResource reads a resource by URI.
func (c *Client) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	session, err := c.getSession(ctx)
	if err != nil {
		return nil, err
	}

	c.log.Debug("Reading resource", "uri", uri)

	return session.ReadResource(ctx, &mcp.ReadResourceParams{URI: uri})
}

// GetPrompt renders a prompt.
func (c *Client) GetPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	session, err := c.getSession(ctx)
	if err != nil {
		return nil, err
	}

	c.log.Debug("Getting prompt", "prompt", name)

	return session.GetPrompt(ctx, &mcp.GetPromptParams{Name: name, Arguments: args})
}

// Ping checks that the server responds.
func (c *Client) Ping(ctx context.Context) error {
	session, err := c.getSession(ctx)
	if err != nil {
		return err
	}

	return session.Ping(ctx, nil)
}

// Close terminates the session. The client cannot be reused afterwards.
// This method is safe to call multiple times.
func (c *Client) Close() error {
	var closeErr error

	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		session := c.session
		c.session = nil
		c.mu.Unlock()

		if session == nil {
			return
		}

		c.log.Debug("Closing client")

		closeErr = session.Close()
	})

	return closeErr
}
