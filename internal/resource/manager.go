package resource

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/wagiedev/flashmcp-go/internal/errors"
	"github.com/wagiedev/flashmcp-go/internal/registry"
)

// Manager owns the resources and resource templates of one server.
type Manager struct {
	resources *registry.Manager[*Resource]
	templates *registry.Manager[*Template]
}

// NewManager creates an empty resource manager.
func NewManager(duplicates registry.DuplicateBehavior, log *slog.Logger) *Manager {
	return &Manager{
		resources: registry.New[*Resource](errors.KindResource, duplicates, log),
		templates: registry.New[*Template](errors.KindTemplate, duplicates, log),
	}
}

// AddResource registers r and returns the stored resource.
func (m *Manager) AddResource(r *Resource) (*Resource, error) {
	return m.resources.Add(r)
}

// AddTemplate registers t and returns the stored template.
func (m *Manager) AddTemplate(t *Template) (*Template, error) {
	return m.templates.Add(t)
}

// Resources returns the concrete resources in registration order.
func (m *Manager) Resources() []*Resource {
	return m.resources.List()
}

// Templates returns the templates in registration order.
func (m *Manager) Templates() []*Template {
	return m.templates.List()
}

// GetResource resolves uri. Lookup order is an exact URI match, then a
// function resource addressed with query parameters, then templates in
// registration order where the first match wins.
func (m *Manager) GetResource(uri string) (*Resource, error) {
	if r, ok := m.resources.Get(uri); ok {
		return r, nil
	}

	if base, query, ok := strings.Cut(uri, "?"); ok {
		if r, found := m.resources.Get(base); found {
			if fn, isFn := r.Reader.(*Function); isFn {
				params, err := parseQuery(query)
				if err == nil {
					cp := *r
					cp.URI = uri
					cp.Reader = fn.Bind(params)

					return &cp, nil
				}
			}
		}
	}

	for _, t := range m.templates.List() {
		if params, ok := t.Match(uri); ok {
			return t.Create(uri, params), nil
		}
	}

	return nil, &errors.NotFoundError{Kind: errors.KindResource, Identity: uri}
}

// ReadResource resolves and reads uri.
func (m *Manager) ReadResource(ctx context.Context, uri string) (Contents, error) {
	r, err := m.GetResource(uri)
	if err != nil {
		return Contents{}, err
	}

	return r.Read(ctx)
}

// Import copies every resource and template of other into m with URIs
// "prefix+uri".
func (m *Manager) Import(other *Manager, prefix string) error {
	if err := m.resources.ImportFrom(other.resources, prefix); err != nil {
		return err
	}

	return m.templates.ImportFrom(other.templates, prefix)
}

func parseQuery(query string) (map[string]string, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	params := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}

	return params, nil
}
