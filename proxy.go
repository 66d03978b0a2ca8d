package flashmcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/flashmcp-go/internal/client"
	"github.com/wagiedev/flashmcp-go/internal/config"
	"github.com/wagiedev/flashmcp-go/internal/errors"
	"github.com/wagiedev/flashmcp-go/internal/logging"
	"github.com/wagiedev/flashmcp-go/internal/prompt"
	"github.com/wagiedev/flashmcp-go/internal/resource"
	"github.com/wagiedev/flashmcp-go/internal/tool"
	"github.com/wagiedev/flashmcp-go/internal/transport"
)

// AsProxy creates a server that forwards every request to a remote MCP
// server. target may be:
//
//   - *Server: served in-process over in-memory pipes
//   - *Client: used as is; the proxy takes ownership
//   - Transport: wrapped in a new client
//   - *MCPConfig: one entry is proxied directly; several become a local
//     server that mounts one proxy per entry under the entry name
//   - string: a URL, reached over streamable HTTP, or SSE when the path
//     ends in /sse
//
// No connection is made here except for multi-server configs, whose mounts
// discover each remote surface. The remote surface is otherwise discovered
// on the first request.
func AsProxy(ctx context.Context, target any, opts ...Option) (*Server, error) {
	switch t := target.(type) {
	case *Server:
		if t == nil {
			return nil, fmt.Errorf("%w: nil server", errors.ErrProxyTarget)
		}

		return newProxy(t.name, nil, transport.InMemory(t.MCPServer), opts), nil
	case *Client:
		if t == nil {
			return nil, fmt.Errorf("%w: nil client", errors.ErrProxyTarget)
		}

		return newProxy("", t, nil, opts), nil
	case *MCPConfig:
		return proxyConfig(ctx, t, opts)
	case string:
		tr, err := transport.FromURL(t, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrProxyTarget, err)
		}

		return newProxy("", nil, tr, opts), nil
	case mcp.Transport:
		return newProxy("", nil, t, opts), nil
	default:
		return nil, fmt.Errorf("%w: %T", errors.ErrProxyTarget, target)
	}
}

func newProxy(name string, c *client.Client, tr mcp.Transport, opts []Option) *Server {
	s := New(name, opts...)

	if c == nil {
		c = client.New(tr, client.WithLogger(logging.Named(s.rootLog, "client")))
	}

	s.remote = &proxyBackend{
		owner:  s,
		client: c,
		log:    logging.Named(s.rootLog, "proxy"),
	}

	return s
}

func proxyConfig(ctx context.Context, cfg *MCPConfig, opts []Option) (*Server, error) {
	if cfg == nil || len(cfg.MCPServers) == 0 {
		return nil, fmt.Errorf("%w: config has no servers", errors.ErrProxyTarget)
	}

	names := cfg.Names()
	sort.Strings(names)

	if len(names) == 1 {
		tr, err := transport.FromConfig(cfg.MCPServers[names[0]])
		if err != nil {
			return nil, fmt.Errorf("server %s: %w", names[0], err)
		}

		return newProxy(names[0], nil, tr, opts), nil
	}

	composite := New("", opts...)

	for _, name := range names {
		tr, err := transport.FromConfig(cfg.MCPServers[name])
		if err != nil {
			_ = composite.Close()

			return nil, fmt.Errorf("server %s: %w", name, err)
		}

		child := newProxy(name, nil, tr, opts)
		composite.owned = append(composite.owned, child)

		if err := composite.Mount(ctx, name, child); err != nil {
			_ = composite.Close()

			return nil, err
		}
	}

	return composite, nil
}

// proxyBackend forwards dispatch to a remote server through one client.
type proxyBackend struct {
	owner  *Server
	client *client.Client
	log    *slog.Logger

	mu         sync.Mutex
	discovered bool
}

// discover lists the remote surface once and fills the owner's registries
// with forwarding entities. A failed discovery is retried on the next call.
func (b *proxyBackend) discover(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.discovered {
		return nil
	}

	var (
		tools     []*mcp.Tool
		resources []*mcp.Resource
		templates []*mcp.ResourceTemplate
		prompts   []*mcp.Prompt
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		tools, err = b.client.ListTools(gctx)

		return optionalList(errors.KindTool, err)
	})
	g.Go(func() (err error) {
		resources, err = b.client.ListResources(gctx)

		return optionalList(errors.KindResource, err)
	})
	g.Go(func() (err error) {
		templates, err = b.client.ListResourceTemplates(gctx)

		return optionalList(errors.KindTemplate, err)
	})
	g.Go(func() (err error) {
		prompts, err = b.client.ListPrompts(gctx)

		return optionalList(errors.KindPrompt, err)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	b.log.Debug("Discovered remote server",
		"tools", len(tools), "resources", len(resources),
		"templates", len(templates), "prompts", len(prompts))

	if err := b.importSurface(tools, resources, templates, prompts); err != nil {
		return err
	}

	b.discovered = true

	return nil
}

func (b *proxyBackend) importSurface(
	tools []*mcp.Tool,
	resources []*mcp.Resource,
	templates []*mcp.ResourceTemplate,
	prompts []*mcp.Prompt,
) error {
	for _, desc := range tools {
		name := desc.Name

		t, err := tool.FromDescriptor(desc, func(ctx context.Context, args map[string]any) (any, error) {
			return b.callTool(ctx, name, args)
		})
		if err != nil {
			return err
		}

		if _, err := b.owner.tools.Add(t); err != nil {
			return err
		}
	}

	for _, desc := range resources {
		r := resource.New(desc.URI, &remoteReader{backend: b, uri: desc.URI}, descriptorOptions(desc.Name, desc.Title, desc.Description, desc.MIMEType)...)

		if _, err := b.owner.resources.AddResource(r); err != nil {
			return err
		}
	}

	for _, desc := range templates {
		t, err := resource.NewTemplateWithFactory(desc.URITemplate, func(uri string, _ map[string]string) resource.Reader {
			return &remoteReader{backend: b, uri: uri}
		}, descriptorOptions(desc.Name, desc.Title, desc.Description, desc.MIMEType)...)
		if err != nil {
			b.log.Warn("Skipping remote template", "template", desc.URITemplate, "error", err)

			continue
		}

		if _, err := b.owner.resources.AddTemplate(t); err != nil {
			return err
		}
	}

	for _, desc := range prompts {
		name := desc.Name

		args := make([]prompt.Argument, 0, len(desc.Arguments))
		for _, a := range desc.Arguments {
			args = append(args, prompt.Argument{Name: a.Name, Description: a.Description, Required: a.Required})
		}

		p, err := prompt.New(name, desc.Description, func(ctx context.Context, params map[string]string) (any, error) {
			res, err := b.getPrompt(ctx, name, params)
			if err != nil {
				return nil, err
			}

			return res.Messages, nil
		}, prompt.WithArguments(args...), prompt.WithTitle(desc.Title))
		if err != nil {
			return err
		}

		if _, err := b.owner.prompts.Add(p); err != nil {
			return err
		}
	}

	return nil
}

func descriptorOptions(name, title, description, mimeType string) []resource.Option {
	opts := []resource.Option{
		resource.WithTitle(title),
		resource.WithDescription(description),
		resource.WithMIMEType(mimeType),
	}

	if name != "" {
		opts = append(opts, resource.WithName(name))
	}

	return opts
}

func (b *proxyBackend) listTools(ctx context.Context) ([]*mcp.Tool, error) {
	if err := b.discover(ctx); err != nil {
		return nil, err
	}

	tools, err := b.client.ListTools(ctx)

	return tools, optionalList(errors.KindTool, err)
}

func (b *proxyBackend) listResources(ctx context.Context) ([]*mcp.Resource, error) {
	if err := b.discover(ctx); err != nil {
		return nil, err
	}

	resources, err := b.client.ListResources(ctx)

	return resources, optionalList(errors.KindResource, err)
}

func (b *proxyBackend) listTemplates(ctx context.Context) ([]*mcp.ResourceTemplate, error) {
	if err := b.discover(ctx); err != nil {
		return nil, err
	}

	templates, err := b.client.ListResourceTemplates(ctx)

	return templates, optionalList(errors.KindTemplate, err)
}

func (b *proxyBackend) listPrompts(ctx context.Context) ([]*mcp.Prompt, error) {
	if err := b.discover(ctx); err != nil {
		return nil, err
	}

	prompts, err := b.client.ListPrompts(ctx)

	return prompts, optionalList(errors.KindPrompt, err)
}

func (b *proxyBackend) callTool(ctx context.Context, name string, args map[string]any) ([]mcp.Content, error) {
	if err := b.discover(ctx); err != nil {
		return nil, err
	}

	b.log.Debug("Forwarding tool call", "tool", name)

	res, err := b.client.CallTool(ctx, name, args)
	if err != nil {
		return nil, translateRemoteError(errors.KindTool, name, err)
	}

	if res.IsError {
		return nil, &errors.ToolError{Name: name, Err: remoteCause(errors.KindTool, name, contentText(res.Content))}
	}

	if res.Content == nil {
		return []mcp.Content{}, nil
	}

	return res.Content, nil
}

func (b *proxyBackend) readResource(ctx context.Context, uri string) ([]*mcp.ResourceContents, error) {
	if err := b.discover(ctx); err != nil {
		return nil, err
	}

	b.log.Debug("Forwarding resource read", "uri", uri)

	res, err := b.client.ReadResource(ctx, uri)
	if err != nil {
		return nil, translateRemoteError(errors.KindResource, uri, err)
	}

	return res.Contents, nil
}

func (b *proxyBackend) getPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	if err := b.discover(ctx); err != nil {
		return nil, err
	}

	b.log.Debug("Forwarding prompt", "prompt", name)

	res, err := b.client.GetPrompt(ctx, name, args)
	if err != nil {
		return nil, translateRemoteError(errors.KindPrompt, name, err)
	}

	return res, nil
}

func (b *proxyBackend) close() error {
	return b.client.Close()
}

// remoteReader reads one URI from the remote server.
type remoteReader struct {
	backend *proxyBackend
	uri     string
}

// Read implements resource.Reader. Only the first content item is kept.
func (r *remoteReader) Read(ctx context.Context) (resource.Contents, error) {
	items, err := r.backend.readResource(ctx, r.uri)
	if err != nil {
		return resource.Contents{}, err
	}

	if len(items) == 0 {
		return resource.Contents{}, nil
	}

	first := items[0]
	if first.Blob != nil {
		return resource.Contents{Blob: first.Blob, MIMEType: first.MIMEType}, nil
	}

	return resource.Contents{Text: first.Text, MIMEType: first.MIMEType}, nil
}

// JSON-RPC error codes used on the wire.
const (
	codeMethodNotFound   = -32601
	codeInvalidParams    = -32602
	codeInternalError    = -32603
	codeResourceNotFound = -32002
)

// Error kinds carried in the data of wire errors.
const (
	wireKindNotFound   = "not_found"
	wireKindValidation = "validation"
	wireKindResource   = "resource_error"
	wireKindPrompt     = "prompt_error"
)

type wireErrorData struct {
	Kind     string `json:"kind"`
	Entity   string `json:"entity,omitempty"`
	Identity string `json:"identity,omitempty"`
}

// remoteCause recovers the underlying failure from a remote error message,
// dropping the invocation prefix the remote added so wrapping it again does
// not repeat it.
func remoteCause(kind errors.Kind, identity, msg string) error {
	var prefix string

	switch kind {
	case errors.KindResource, errors.KindTemplate:
		prefix = fmt.Sprintf("Error reading resource %s: ", identity)
	case errors.KindPrompt:
		prefix = fmt.Sprintf("Error rendering prompt %s: ", identity)
	default:
		prefix = fmt.Sprintf("Error executing tool %s: ", identity)
	}

	return stderrors.New(strings.TrimPrefix(msg, prefix))
}

// optionalList treats a remote that does not implement a list method as
// having nothing of that kind.
func optionalList(kind errors.Kind, err error) error {
	if err == nil {
		return nil
	}

	if wire, ok := stderrors.AsType[*jsonrpc.Error](err); ok && wire.Code == codeMethodNotFound {
		return nil
	}

	return translateRemoteError(kind, "", err)
}

// translateRemoteError maps a remote failure onto the local error taxonomy.
// Remote not-found and validation conditions keep their kind, other remote
// errors become invocation errors and anything that is not a JSON-RPC error
// is a TransportError.
func translateRemoteError(kind errors.Kind, identity string, err error) error {
	if err == nil {
		return nil
	}

	if errors.IsFlashMCPError(err) {
		return err
	}

	wire, ok := stderrors.AsType[*jsonrpc.Error](err)
	if !ok {
		if stderrors.Is(err, errors.ErrClientClosed) {
			return err
		}

		return &errors.TransportError{Op: string(kind) + " " + identity, Err: err}
	}

	var data wireErrorData
	if len(wire.Data) > 0 {
		_ = json.Unmarshal(wire.Data, &data)
	}

	cause := remoteCause(kind, identity, wire.Message)

	switch {
	case data.Kind == wireKindNotFound, wire.Code == codeResourceNotFound, isNotFoundMessage(wire.Message):
		return &errors.NotFoundError{Kind: lookupKind(kind), Identity: identity}
	case data.Kind == wireKindValidation, data.Kind == "" && wire.Code == codeInvalidParams:
		return &errors.ValidationError{Kind: kind, Name: identity, Err: cause}
	}

	switch kind {
	case errors.KindResource, errors.KindTemplate:
		return &errors.ResourceError{URI: identity, Err: cause}
	case errors.KindPrompt:
		return &errors.PromptError{Name: identity, Err: cause}
	default:
		return &errors.ToolError{Name: identity, Err: cause}
	}
}

func lookupKind(kind errors.Kind) errors.Kind {
	if kind == errors.KindTemplate {
		return errors.KindResource
	}

	return kind
}

func isNotFoundMessage(msg string) bool {
	lower := strings.ToLower(msg)

	for _, marker := range []string{"unknown tool", "unknown prompt", "unknown resource", "not found"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}

// contentText joins the text items of a tool result.
func contentText(items []mcp.Content) string {
	var parts []string

	for _, item := range items {
		if tc, ok := item.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}

	if len(parts) == 0 {
		return "remote tool failed"
	}

	return strings.Join(parts, "\n")
}

// MCPConfig is the standard MCP client configuration file format.
type MCPConfig = config.MCPConfig

// ParseMCPConfig parses an MCP configuration document.
func ParseMCPConfig(data []byte) (*MCPConfig, error) {
	return config.ParseMCPConfig(data)
}
