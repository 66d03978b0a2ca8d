package flashmcp

import "github.com/wagiedev/flashmcp-go/internal/errors"

// Re-export error types from internal package

// FlashMCPError is the base interface for all flashmcp errors.
type FlashMCPError = errors.FlashMCPError

// ErrorKind names the entity kind an error refers to.
type ErrorKind = errors.Kind

// Entity kinds carried by NotFoundError, ValidationError and DuplicateError.
const (
	KindTool     = errors.KindTool
	KindResource = errors.KindResource
	KindTemplate = errors.KindTemplate
	KindPrompt   = errors.KindPrompt
)

// NotFoundError indicates a tool, resource or prompt lookup failed.
type NotFoundError = errors.NotFoundError

// ValidationError indicates arguments failed the declared schema.
type ValidationError = errors.ValidationError

// ToolError indicates a tool's own logic failed.
type ToolError = errors.ToolError

// ResourceError indicates reading a resource failed.
type ResourceError = errors.ResourceError

// PromptError indicates rendering a prompt failed.
type PromptError = errors.PromptError

// DuplicateError indicates a registration was rejected as a duplicate.
type DuplicateError = errors.DuplicateError

// TransportError indicates the connection to a remote server failed.
type TransportError = errors.TransportError

// Re-export sentinel errors from internal package.
var (
	// ErrNotFound matches every NotFoundError.
	ErrNotFound = errors.ErrNotFound

	// ErrToolNotFound matches a NotFoundError for a tool.
	ErrToolNotFound = errors.ErrToolNotFound

	// ErrResourceNotFound matches a NotFoundError for a resource or template.
	ErrResourceNotFound = errors.ErrResourceNotFound

	// ErrPromptNotFound matches a NotFoundError for a prompt.
	ErrPromptNotFound = errors.ErrPromptNotFound

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.ErrClientClosed

	// ErrProxyTarget indicates AsProxy was given a value it cannot proxy.
	ErrProxyTarget = errors.ErrProxyTarget
)
