package flashmcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/flashmcp-go/internal/config"
	"github.com/wagiedev/flashmcp-go/internal/content"
	"github.com/wagiedev/flashmcp-go/internal/logging"
	"github.com/wagiedev/flashmcp-go/internal/prompt"
	"github.com/wagiedev/flashmcp-go/internal/resource"
	"github.com/wagiedev/flashmcp-go/internal/tool"
)

const defaultVersion = "1.0.0"

// Server owns the tools, resources, templates and prompts of one MCP
// application and serves them over any MCP transport.
//
// A Server is either local, answering from its own registries, or a proxy
// created by AsProxy, forwarding every request to a remote server.
type Server struct {
	name         string
	version      string
	instructions string
	settings     config.Settings
	rootLog      *slog.Logger
	log          *slog.Logger

	tools     *tool.Manager
	resources *resource.Manager
	prompts   *prompt.Manager

	mountsMu sync.RWMutex
	mounts   map[string]*Server

	remote *proxyBackend
	owned  []*Server

	sdkOnce sync.Once
	sdk     *mcp.Server
}

// New creates an empty local server.
func New(name string, opts ...Option) *Server {
	options := applyOptions(opts)

	settings := config.Default()
	if options.Settings != nil {
		settings = *options.Settings
	}

	if name != "" {
		settings.Name = name
	}

	log := options.Logger
	if log == nil && options.LogOutput != nil {
		level := settings.LogLevel
		if settings.Debug {
			level = "DEBUG"
		}

		var err error

		log, err = logging.New(level, options.LogOutput)
		if err != nil {
			log, _ = logging.New("INFO", options.LogOutput)
			log.Warn("Falling back to INFO logging", "error", err)
		}
	}

	if log == nil {
		log = logging.Nop()
	}

	version := options.Version
	if version == "" {
		version = defaultVersion
	}

	log = log.With("server", settings.Name)

	return &Server{
		name:         settings.Name,
		version:      version,
		instructions: options.Instructions,
		settings:     settings,
		rootLog:      log,
		log:          logging.Named(log, "server"),
		tools:        tool.NewManager(settings.ToolDuplicates(), logging.Named(log, "tools")),
		resources:    resource.NewManager(settings.ResourceDuplicates(), logging.Named(log, "resources")),
		prompts:      prompt.NewManager(settings.PromptDuplicates(), logging.Named(log, "prompts")),
		mounts:       make(map[string]*Server),
	}
}

// Name returns the server name.
func (s *Server) Name() string {
	return s.name
}

// Settings returns the server settings.
func (s *Server) Settings() Settings {
	return s.settings
}

// IsProxy reports whether s forwards requests to a remote server.
func (s *Server) IsProxy() bool {
	return s.remote != nil
}

// ===== Registration =====

// AddTool registers t. With the warn or ignore duplicate policy an existing
// tool of the same name is kept and returned.
func (s *Server) AddTool(t *Tool) (*Tool, error) {
	return s.tools.Add(t)
}

// RegisterTool builds a tool from fn and registers it. It returns fn
// unchanged so it can still be called directly.
func (s *Server) RegisterTool(name, description string, schema *Schema, fn ToolFunc, opts ...ToolOption) (ToolFunc, error) {
	t, err := tool.New(name, description, schema, fn, opts...)
	if err != nil {
		return nil, err
	}

	if _, err := s.tools.Add(t); err != nil {
		return nil, err
	}

	return fn, nil
}

// AddResource registers r.
func (s *Server) AddResource(r *Resource) (*Resource, error) {
	return s.resources.AddResource(r)
}

// AddTemplate registers a resource template.
func (s *Server) AddTemplate(t *ResourceTemplate) (*ResourceTemplate, error) {
	return s.resources.AddTemplate(t)
}

// RegisterResource registers fn under uri and returns fn unchanged. A URI
// containing {name} placeholders registers a template whose parameters are
// passed to fn; any other URI registers a resource computed by fn on every
// read.
func (s *Server) RegisterResource(uri string, fn ResourceFunc, opts ...ResourceOption) (ResourceFunc, error) {
	if fn == nil {
		return nil, fmt.Errorf("resource %s has no function", uri)
	}

	if strings.Contains(uri, "{") {
		t, err := resource.NewTemplate(uri, fn, opts...)
		if err != nil {
			return nil, err
		}

		if _, err := s.resources.AddTemplate(t); err != nil {
			return nil, err
		}

		return fn, nil
	}

	if _, err := s.resources.AddResource(resource.New(uri, &resource.Function{Fn: fn}, opts...)); err != nil {
		return nil, err
	}

	return fn, nil
}

// AddPrompt registers p.
func (s *Server) AddPrompt(p *Prompt) (*Prompt, error) {
	return s.prompts.Add(p)
}

// RegisterPrompt builds a prompt from fn and registers it. It returns fn
// unchanged.
func (s *Server) RegisterPrompt(name, description string, fn PromptFunc, opts ...PromptOption) (PromptFunc, error) {
	p, err := prompt.New(name, description, fn, opts...)
	if err != nil {
		return nil, err
	}

	if _, err := s.prompts.Add(p); err != nil {
		return nil, err
	}

	return fn, nil
}

// Tools returns the locally registered tools in registration order.
func (s *Server) Tools() []*Tool {
	return s.tools.List()
}

// Resources returns the locally registered resources in registration order.
func (s *Server) Resources() []*Resource {
	return s.resources.Resources()
}

// Templates returns the locally registered templates in registration order.
func (s *Server) Templates() []*ResourceTemplate {
	return s.resources.Templates()
}

// Prompts returns the locally registered prompts in registration order.
func (s *Server) Prompts() []*Prompt {
	return s.prompts.List()
}

// Mounts returns a copy of the mount table.
func (s *Server) Mounts() map[string]*Server {
	s.mountsMu.RLock()
	defer s.mountsMu.RUnlock()

	return maps.Clone(s.mounts)
}

// ===== Dispatch =====

// ListTools returns the descriptors of every tool.
func (s *Server) ListTools(ctx context.Context) ([]*mcp.Tool, error) {
	if s.remote != nil {
		return s.remote.listTools(ctx)
	}

	tools := s.tools.List()

	descriptors := make([]*mcp.Tool, 0, len(tools))
	for _, t := range tools {
		descriptors = append(descriptors, t.Descriptor())
	}

	return descriptors, nil
}

// CallTool validates args, runs the named tool and converts its result to
// protocol content. Unknown tools fail with a NotFoundError, bad arguments
// with a ValidationError and failures inside the tool with a ToolError.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) ([]mcp.Content, error) {
	if s.remote != nil {
		return s.remote.callTool(ctx, name, args)
	}

	s.log.Debug("Calling tool", "tool", name)

	result, err := s.tools.CallTool(ctx, name, args)
	if err != nil {
		return nil, err
	}

	items, err := content.Convert(result)
	if err != nil {
		return nil, &ToolError{Name: name, Err: err}
	}

	return items, nil
}

// ListResources returns the descriptors of every concrete resource.
func (s *Server) ListResources(ctx context.Context) ([]*mcp.Resource, error) {
	if s.remote != nil {
		return s.remote.listResources(ctx)
	}

	resources := s.resources.Resources()

	descriptors := make([]*mcp.Resource, 0, len(resources))
	for _, r := range resources {
		descriptors = append(descriptors, r.Descriptor())
	}

	return descriptors, nil
}

// ListResourceTemplates returns the descriptors of every resource template.
func (s *Server) ListResourceTemplates(ctx context.Context) ([]*mcp.ResourceTemplate, error) {
	if s.remote != nil {
		return s.remote.listTemplates(ctx)
	}

	templates := s.resources.Templates()

	descriptors := make([]*mcp.ResourceTemplate, 0, len(templates))
	for _, t := range templates {
		descriptors = append(descriptors, t.Descriptor())
	}

	return descriptors, nil
}

// ReadResource resolves uri and reads it. Unknown URIs fail with a
// NotFoundError and failing readers with a ResourceError.
func (s *Server) ReadResource(ctx context.Context, uri string) ([]*mcp.ResourceContents, error) {
	if s.remote != nil {
		return s.remote.readResource(ctx, uri)
	}

	s.log.Debug("Reading resource", "uri", uri)

	c, err := s.resources.ReadResource(ctx, uri)
	if err != nil {
		if _, ok := errors.AsType[*ResourceError](err); ok {
			s.log.Error("Error reading resource", "uri", uri, "error", err)
		}

		return nil, err
	}

	return []*mcp.ResourceContents{c.ToMCP(uri)}, nil
}

// ListPrompts returns the descriptors of every prompt.
func (s *Server) ListPrompts(ctx context.Context) ([]*mcp.Prompt, error) {
	if s.remote != nil {
		return s.remote.listPrompts(ctx)
	}

	prompts := s.prompts.List()

	descriptors := make([]*mcp.Prompt, 0, len(prompts))
	for _, p := range prompts {
		descriptors = append(descriptors, p.Descriptor())
	}

	return descriptors, nil
}

// GetPrompt renders the named prompt. Unknown prompts fail with a
// NotFoundError, missing arguments with a ValidationError and rendering
// failures with a PromptError.
func (s *Server) GetPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	if s.remote != nil {
		return s.remote.getPrompt(ctx, name, args)
	}

	s.log.Debug("Getting prompt", "prompt", name)

	p, err := s.prompts.GetPrompt(name)
	if err != nil {
		return nil, err
	}

	messages, err := p.Render(ctx, args)
	if err != nil {
		return nil, err
	}

	return &mcp.GetPromptResult{Description: p.Description, Messages: messages}, nil
}

// Close releases the remote connection of a proxy. For a local server it
// closes only the proxies AsProxy created for it; other mounted servers are
// left open.
func (s *Server) Close() error {
	if s.remote != nil {
		return s.remote.close()
	}

	errs := make([]error, 0, len(s.owned))
	for _, o := range s.owned {
		errs = append(errs, o.Close())
	}

	return errors.Join(errs...)
}
