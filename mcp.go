package flashmcp

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/flashmcp-go/internal/content"
	"github.com/wagiedev/flashmcp-go/internal/prompt"
	"github.com/wagiedev/flashmcp-go/internal/resource"
	"github.com/wagiedev/flashmcp-go/internal/tool"
)

// Re-export entity types for the public API.
type (
	// Tool is a named callable with a declared input schema.
	Tool = tool.Tool

	// ToolFunc is the function behind a tool. Its result is converted to
	// protocol content: strings stay text, maps, slices and structs become
	// indented JSON, []byte and Image become image content, and mcp.Content
	// values pass through.
	ToolFunc = tool.Func

	// ToolOption configures a Tool.
	ToolOption = tool.Option

	// Resource is a single addressable content source.
	Resource = resource.Resource

	// ResourceTemplate is a URI pattern producing resources on demand.
	ResourceTemplate = resource.Template

	// ResourceFunc computes resource content from URI parameters.
	ResourceFunc = resource.ParamFunc

	// ResourceOption configures a Resource or ResourceTemplate.
	ResourceOption = resource.Option

	// ResourceContents is the result of reading a resource.
	ResourceContents = resource.Contents

	// DirectoryOptions controls which files a directory resource lists.
	DirectoryOptions = resource.DirectoryOptions

	// Prompt is a named, parameterized message template.
	Prompt = prompt.Prompt

	// PromptFunc renders a prompt.
	PromptFunc = prompt.Func

	// PromptArgument describes one prompt argument.
	PromptArgument = prompt.Argument

	// PromptOption configures a Prompt.
	PromptOption = prompt.Option

	// Image is binary tool output with a MIME type.
	Image = content.Image

	// Schema is a JSON Schema object for tool input validation.
	Schema = jsonschema.Schema
)

// Re-export MCP SDK types used by the public API.
type (
	// Content is a protocol content item.
	Content = mcp.Content

	// TextContent is textual content.
	TextContent = mcp.TextContent

	// ImageContent is base64-encoded image content.
	ImageContent = mcp.ImageContent

	// PromptMessage is one role-tagged message of a rendered prompt.
	PromptMessage = mcp.PromptMessage

	// GetPromptResult is a rendered prompt.
	GetPromptResult = mcp.GetPromptResult

	// ToolAnnotations describes optional hints about tool behavior.
	ToolAnnotations = mcp.ToolAnnotations

	// Transport connects a client or server to its peer.
	Transport = mcp.Transport
)

// Tool constructors and options.
var (
	NewTool         = tool.New
	SimpleSchema    = tool.SimpleSchema
	WithToolTitle   = tool.WithTitle
	WithToolTags    = tool.WithTags
	WithAnnotations = tool.WithAnnotations
)

// Resource constructors and options.
var (
	NewResource             = resource.New
	NewTextResource         = resource.NewText
	NewBinaryResource       = resource.NewBinary
	NewFileResource         = resource.NewFile
	NewHTTPResource         = resource.NewHTTP
	NewDirectoryResource    = resource.NewDirectory
	NewFunctionResource     = resource.NewFunction
	NewResourceTemplate     = resource.NewTemplate
	FunctionURI             = resource.FunctionURI
	WithResourceName        = resource.WithName
	WithResourceTitle       = resource.WithTitle
	WithResourceDescription = resource.WithDescription
	WithResourceMIMEType    = resource.WithMIMEType
	WithResourceTags        = resource.WithTags
)

// Prompt constructors and options.
var (
	NewPrompt        = prompt.New
	WithArguments    = prompt.WithArguments
	WithPromptTitle  = prompt.WithTitle
	WithPromptTags   = prompt.WithTags
	UserMessage      = prompt.UserMessage
	AssistantMessage = prompt.AssistantMessage
)

// NewToolFunc creates a Tool from a typed function, inferring the input
// schema from In.
func NewToolFunc[In, Out any](name, description string, fn func(ctx context.Context, in In) (Out, error), opts ...ToolOption) (*Tool, error) {
	return tool.FromFunc(name, description, fn, opts...)
}

// NewPromptFunc creates a Prompt from a typed function, inferring its
// arguments from the fields of In.
func NewPromptFunc[In any](name, description string, fn func(ctx context.Context, in In) (any, error), opts ...PromptOption) (*Prompt, error) {
	return prompt.FromFunc(name, description, fn, opts...)
}
