package tool

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/flashmcp-go/internal/errors"
)

// Func is the signature of a tool implementation.
// Arguments arrive decoded from JSON, so numbers are float64.
type Func func(ctx context.Context, args map[string]any) (any, error)

// Option configures a Tool during construction.
type Option func(*Tool)

// WithTitle sets a human-readable title.
func WithTitle(title string) Option {
	return func(t *Tool) {
		t.Title = title
	}
}

// WithAnnotations sets MCP tool annotations (hints about tool behavior).
func WithAnnotations(annotations *mcp.ToolAnnotations) Option {
	return func(t *Tool) {
		t.Annotations = annotations
	}
}

// WithTags attaches tags to the tool.
func WithTags(tags ...string) Option {
	return func(t *Tool) {
		t.Tags = append(t.Tags, tags...)
	}
}

// Tool is a named callable with a declared input schema.
type Tool struct {
	Name        string
	Title       string
	Description string
	InputSchema *jsonschema.Schema
	Annotations *mcp.ToolAnnotations
	Tags        []string
	Fn          Func

	resolved *jsonschema.Resolved
}

// New creates a Tool. A nil schema accepts any object.
// The schema must describe an object, as MCP requires.
func New(name, description string, schema *jsonschema.Schema, fn Func, opts ...Option) (*Tool, error) {
	if name == "" {
		return nil, stderrors.New("tool name must not be empty")
	}

	if fn == nil {
		return nil, fmt.Errorf("tool %s: nil function", name)
	}

	if schema == nil {
		schema = &jsonschema.Schema{Type: "object"}
	}

	if schema.Type != "object" {
		return nil, fmt.Errorf("tool %s: input schema must have type \"object\", got %q", name, schema.Type)
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("tool %s: resolving input schema: %w", name, err)
	}

	t := &Tool{
		Name:        name,
		Description: description,
		InputSchema: schema,
		Fn:          fn,
		resolved:    resolved,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// FromDescriptor creates a Tool from a protocol descriptor, typically one
// listed by a remote server. The schema is kept for listing but arguments
// are not validated locally.
func FromDescriptor(desc *mcp.Tool, fn Func) (*Tool, error) {
	if desc == nil {
		return nil, stderrors.New("nil tool descriptor")
	}

	if fn == nil {
		return nil, fmt.Errorf("tool %s: nil function", desc.Name)
	}

	schema := &jsonschema.Schema{Type: "object"}

	if desc.InputSchema != nil {
		data, err := json.Marshal(desc.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("tool %s: encoding input schema: %w", desc.Name, err)
		}

		schema = &jsonschema.Schema{}
		if err := json.Unmarshal(data, schema); err != nil {
			return nil, fmt.Errorf("tool %s: decoding input schema: %w", desc.Name, err)
		}
	}

	return &Tool{
		Name:        desc.Name,
		Title:       desc.Title,
		Description: desc.Description,
		InputSchema: schema,
		Annotations: desc.Annotations,
		Fn:          fn,
	}, nil
}

// Key implements registry.Entity.
func (t *Tool) Key() string {
	return t.Name
}

// WithPrefix implements registry.Entity. The copy is named "prefix/name".
func (t *Tool) WithPrefix(prefix string) *Tool {
	cp := *t
	cp.Name = prefix + "/" + t.Name
	cp.Tags = append([]string(nil), t.Tags...)

	return &cp
}

// Descriptor returns the protocol description of the tool.
func (t *Tool) Descriptor() *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Title:       t.Title,
		Description: t.Description,
		InputSchema: t.InputSchema,
		Annotations: t.Annotations,
	}
}

// Validate checks args against the input schema.
func (t *Tool) Validate(args map[string]any) error {
	if t.resolved == nil {
		return nil
	}

	if args == nil {
		args = map[string]any{}
	}

	if err := t.resolved.Validate(args); err != nil {
		return &errors.ValidationError{Kind: errors.KindTool, Name: t.Name, Err: err}
	}

	return nil
}

// Run validates args and invokes the tool.
func (t *Tool) Run(ctx context.Context, args map[string]any) (any, error) {
	normalized, err := normalizeArguments(args)
	if err != nil {
		return nil, &errors.ValidationError{Kind: errors.KindTool, Name: t.Name, Err: err}
	}

	if err := t.Validate(normalized); err != nil {
		return nil, err
	}

	result, err := t.Fn(ctx, normalized)
	if err != nil {
		if errors.IsFlashMCPError(err) {
			return nil, err
		}

		return nil, &errors.ToolError{Name: t.Name, Err: err}
	}

	return result, nil
}

// normalizeArguments round-trips args through JSON so library calls see the
// same value types as protocol calls.
func normalizeArguments(args map[string]any) (map[string]any, error) {
	if len(args) == 0 {
		return map[string]any{}, nil
	}

	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal arguments: %w", err)
	}

	var normalized map[string]any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return normalized, nil
}

// ParseArguments decodes raw protocol arguments into a map.
func ParseArguments(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return args, nil
}
