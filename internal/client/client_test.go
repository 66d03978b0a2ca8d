package client

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/flashmcp-go/internal/errors"
)

// newTestServer builds a plain SDK server with one entity of each kind.
func newTestServer(t *testing.T) *mcp.Server {
	t.Helper()

	srv := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.0.1"}, nil)

	srv.AddTool(&mcp.Tool{
		Name:        "shout",
		Description: "Upper-case a word",
		InputSchema: &jsonschema.Schema{Type: "object"},
	}, func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: "HEY"}}}, nil
	})

	srv.AddResource(&mcp.Resource{URI: "data://motd", Name: "motd", MIMEType: "text/plain"},
		func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, MIMEType: "text/plain", Text: "hello"},
			}}, nil
		})

	srv.AddResourceTemplate(&mcp.ResourceTemplate{URITemplate: "data://user/{id}", Name: "user"},
		func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, Text: "user"},
			}}, nil
		})

	srv.AddPrompt(&mcp.Prompt{Name: "hello", Arguments: []*mcp.PromptArgument{{Name: "who", Required: true}}},
		func(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return &mcp.GetPromptResult{Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: "hello " + req.Params.Arguments["who"]}},
			}}, nil
		})

	return srv
}

func connectedClient(t *testing.T) *Client {
	t.Helper()

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := newTestServer(t).Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = serverSession.Close() })

	c := New(clientTransport)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestClient_LazyConnect(t *testing.T) {
	c := connectedClient(t)
	require.NotEmpty(t, c.ID())
	assert.False(t, c.IsConnected(), "client should not connect before the first request")

	require.NoError(t, c.Ping(context.Background()))
	assert.True(t, c.IsConnected())

	// Connect is idempotent once the session is open.
	require.NoError(t, c.Connect(context.Background()))
}

func TestClient_Operations(t *testing.T) {
	c := connectedClient(t)
	ctx := context.Background()

	tools, err := c.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.Equal(t, "shout", tools[0].Name)

	result, err := c.CallTool(ctx, "shout", nil)
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, "HEY", result.Content[0].(*mcp.TextContent).Text)

	resources, err := c.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, resources, 1)

	templates, err := c.ListResourceTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	require.Equal(t, "data://user/{id}", templates[0].URITemplate)

	read, err := c.ReadResource(ctx, "data://motd")
	require.NoError(t, err)
	require.Equal(t, "hello", read.Contents[0].Text)

	prompts, err := c.ListPrompts(ctx)
	require.NoError(t, err)
	require.Len(t, prompts, 1)

	rendered, err := c.GetPrompt(ctx, "hello", map[string]string{"who": "world"})
	require.NoError(t, err)
	require.Equal(t, "hello world", rendered.Messages[0].Content.(*mcp.TextContent).Text)
}

func TestClient_CloseIsFinal(t *testing.T) {
	c := connectedClient(t)
	require.NoError(t, c.Ping(context.Background()))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "Close should be idempotent")
	assert.False(t, c.IsConnected())

	_, err := c.ListTools(context.Background())
	require.ErrorIs(t, err, errors.ErrClientClosed)
}

func TestClient_NoTransport(t *testing.T) {
	c := New(nil)

	err := c.Connect(context.Background())
	_, ok := stderrors.AsType[*errors.TransportError](err)
	require.True(t, ok)
	assert.False(t, c.IsConnected())
}
