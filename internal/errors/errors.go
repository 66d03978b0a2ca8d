package errors

import (
	"errors"
	"fmt"
)

// FlashMCPError is the base interface for all flashmcp errors.
type FlashMCPError interface {
	error
	IsFlashMCPError() bool
}

// Compile-time verification that all error types implement FlashMCPError.
var (
	_ FlashMCPError = (*NotFoundError)(nil)
	_ FlashMCPError = (*ValidationError)(nil)
	_ FlashMCPError = (*ToolError)(nil)
	_ FlashMCPError = (*ResourceError)(nil)
	_ FlashMCPError = (*PromptError)(nil)
	_ FlashMCPError = (*DuplicateError)(nil)
	_ FlashMCPError = (*TransportError)(nil)
)

// Kind names the entity kind an error refers to.
type Kind string

const (
	// KindTool refers to tools.
	KindTool Kind = "tool"
	// KindResource refers to resources.
	KindResource Kind = "resource"
	// KindTemplate refers to resource templates.
	KindTemplate Kind = "template"
	// KindPrompt refers to prompts.
	KindPrompt Kind = "prompt"
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotFound matches every NotFoundError regardless of kind.
	ErrNotFound = errors.New("not found")

	// ErrToolNotFound matches a NotFoundError for a tool.
	ErrToolNotFound = errors.New("tool not found")

	// ErrResourceNotFound matches a NotFoundError for a resource or template.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrPromptNotFound matches a NotFoundError for a prompt.
	ErrPromptNotFound = errors.New("prompt not found")

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.New("client closed")

	// ErrProxyTarget indicates AsProxy was given a value it cannot proxy.
	ErrProxyTarget = errors.New("unsupported proxy target")
)

// IsFlashMCPError reports whether err is, or wraps, one of the error types
// of this package.
func IsFlashMCPError(err error) bool {
	_, ok := errors.AsType[FlashMCPError](err)

	return ok
}

// NotFoundError indicates a lookup by name or URI failed.
type NotFoundError struct {
	Kind     Kind
	Identity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Unknown %s: %s", e.Kind, e.Identity)
}

// Is reports whether target is ErrNotFound or the sentinel for e.Kind.
func (e *NotFoundError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return true
	case ErrToolNotFound:
		return e.Kind == KindTool
	case ErrResourceNotFound:
		return e.Kind == KindResource || e.Kind == KindTemplate
	case ErrPromptNotFound:
		return e.Kind == KindPrompt
	}

	return false
}

// IsFlashMCPError implements FlashMCPError.
func (e *NotFoundError) IsFlashMCPError() bool { return true }

// ValidationError indicates supplied arguments failed the entity's declared
// parameters. The entity is never invoked when this is returned.
type ValidationError struct {
	Kind Kind
	Name string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for %s %s: %v", e.Kind, e.Name, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsFlashMCPError implements FlashMCPError.
func (e *ValidationError) IsFlashMCPError() bool { return true }

// ToolError indicates a tool's own logic failed.
type ToolError struct {
	Name string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("Error executing tool %s: %v", e.Name, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// IsFlashMCPError implements FlashMCPError.
func (e *ToolError) IsFlashMCPError() bool { return true }

// ResourceError indicates reading a resource failed.
type ResourceError struct {
	URI string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("Error reading resource %s: %v", e.URI, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// IsFlashMCPError implements FlashMCPError.
func (e *ResourceError) IsFlashMCPError() bool { return true }

// PromptError indicates rendering a prompt failed.
type PromptError struct {
	Name string
	Err  error
}

func (e *PromptError) Error() string {
	return fmt.Sprintf("Error rendering prompt %s: %v", e.Name, e.Err)
}

func (e *PromptError) Unwrap() error {
	return e.Err
}

// IsFlashMCPError implements FlashMCPError.
func (e *PromptError) IsFlashMCPError() bool { return true }

// DuplicateError is returned by a manager configured to reject duplicate
// registrations.
type DuplicateError struct {
	Kind     Kind
	Identity string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Kind, e.Identity)
}

// IsFlashMCPError implements FlashMCPError.
func (e *DuplicateError) IsFlashMCPError() bool { return true }

// TransportError indicates the connection to a remote endpoint failed.
// It never matches ErrNotFound.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsFlashMCPError implements FlashMCPError.
func (e *TransportError) IsFlashMCPError() bool { return true }
