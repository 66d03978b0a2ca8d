package resource

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/flashmcp-go/internal/errors"
)

// DefaultMIMEType is used when a resource declares no MIME type.
const DefaultMIMEType = "text/plain"

// Contents is what reading a resource produces: text, or a blob for binary data.
type Contents struct {
	Text     string
	Blob     []byte
	MIMEType string
}

// IsBinary reports whether the contents carry a blob.
func (c Contents) IsBinary() bool {
	return c.Blob != nil
}

// Reader produces the contents of a resource.
type Reader interface {
	Read(ctx context.Context) (Contents, error)
}

// Meta holds the descriptive fields shared by resources and templates.
type Meta struct {
	Name        string
	Title       string
	Description string
	MIMEType    string
	Tags        []string
}

// Option configures the descriptive fields of a resource or template.
type Option func(*Meta)

// WithName sets the display name.
func WithName(name string) Option {
	return func(m *Meta) {
		m.Name = name
	}
}

// WithTitle sets a human-readable title.
func WithTitle(title string) Option {
	return func(m *Meta) {
		m.Title = title
	}
}

// WithDescription sets the description.
func WithDescription(description string) Option {
	return func(m *Meta) {
		m.Description = description
	}
}

// WithMIMEType sets the MIME type.
func WithMIMEType(mimeType string) Option {
	return func(m *Meta) {
		m.MIMEType = mimeType
	}
}

// WithTags attaches tags.
func WithTags(tags ...string) Option {
	return func(m *Meta) {
		m.Tags = append(m.Tags, tags...)
	}
}

func applyOptions(m *Meta, opts []Option) {
	for _, opt := range opts {
		opt(m)
	}

	if m.MIMEType == "" {
		m.MIMEType = DefaultMIMEType
	}
}

// Resource is a single addressable content source.
type Resource struct {
	URI string
	Meta
	Reader Reader
}

// New creates a resource backed by reader.
// The name defaults to the URI.
func New(uri string, reader Reader, opts ...Option) *Resource {
	r := &Resource{URI: uri, Reader: reader}
	r.Name = uri
	applyOptions(&r.Meta, opts)

	return r
}

// Key implements registry.Entity.
func (r *Resource) Key() string {
	return r.URI
}

// WithPrefix implements registry.Entity. The copy's URI is "prefix+uri".
func (r *Resource) WithPrefix(prefix string) *Resource {
	cp := *r
	cp.URI = prefix + "+" + r.URI
	cp.Tags = append([]string(nil), r.Tags...)

	return &cp
}

// Read returns the resource contents. Failures are reported as
// errors.ResourceError carrying the reader's message.
func (r *Resource) Read(ctx context.Context) (Contents, error) {
	if r.Reader == nil {
		return Contents{}, &errors.ResourceError{URI: r.URI, Err: stderrors.New("resource has no reader")}
	}

	c, err := r.Reader.Read(ctx)
	if err != nil {
		if errors.IsFlashMCPError(err) {
			return Contents{}, err
		}

		return Contents{}, &errors.ResourceError{URI: r.URI, Err: err}
	}

	if c.MIMEType == "" {
		c.MIMEType = r.MIMEType
	}

	return c, nil
}

// Descriptor returns the protocol description of the resource.
func (r *Resource) Descriptor() *mcp.Resource {
	return &mcp.Resource{
		URI:         r.URI,
		Name:        r.Name,
		Title:       r.Title,
		Description: r.Description,
		MIMEType:    r.MIMEType,
	}
}

// ToMCP converts contents read from uri into protocol resource contents.
func (c Contents) ToMCP(uri string) *mcp.ResourceContents {
	rc := &mcp.ResourceContents{URI: uri, MIMEType: c.MIMEType}
	if c.IsBinary() {
		rc.Blob = c.Blob
	} else {
		rc.Text = c.Text
	}

	return rc
}

// isTextMIME reports whether content of this MIME type is read as text.
func isTextMIME(mimeType string) bool {
	if mimeType == "" {
		return true
	}

	mimeType = strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	if strings.HasPrefix(mimeType, "text/") {
		return true
	}

	switch mimeType {
	case "application/json", "application/xml", "application/yaml", "application/x-yaml",
		"application/javascript", "application/toml":
		return true
	}

	return strings.HasSuffix(mimeType, "+json") || strings.HasSuffix(mimeType, "+xml")
}
