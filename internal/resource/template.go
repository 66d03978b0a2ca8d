package resource

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yosida95/uritemplate/v3"
)

// Template is a parameterized resource family described by an RFC 6570 URI
// template. Matching URIs produce fresh resources bound to the extracted
// parameters.
type Template struct {
	URITemplate string
	Meta
	Fn ParamFunc

	// Factory, when set, builds the reader for a matched URI instead of Fn.
	Factory ReaderFactory

	tmpl    *uritemplate.Template
	matcher *regexp.Regexp
	names   []string
}

// ReaderFactory builds the reader for a URI matched by a template.
type ReaderFactory func(uri string, params map[string]string) Reader

// NewTemplate parses uriTemplate and creates a template for fn.
// The name defaults to the template string.
func NewTemplate(uriTemplate string, fn ParamFunc, opts ...Option) (*Template, error) {
	if fn == nil {
		return nil, fmt.Errorf("template %s has no function", uriTemplate)
	}

	tmpl, err := uritemplate.New(uriTemplate)
	if err != nil {
		return nil, fmt.Errorf("invalid URI template %q: %w", uriTemplate, err)
	}

	t := &Template{URITemplate: uriTemplate, Fn: fn, tmpl: tmpl}
	t.matcher, t.names = compileMatcher(uriTemplate)
	t.Name = uriTemplate
	applyOptions(&t.Meta, opts)

	return t, nil
}

// NewTemplateWithFactory creates a template whose matched resources read
// through readers built by factory.
func NewTemplateWithFactory(uriTemplate string, factory ReaderFactory, opts ...Option) (*Template, error) {
	if factory == nil {
		return nil, fmt.Errorf("template %s has no reader factory", uriTemplate)
	}

	tmpl, err := uritemplate.New(uriTemplate)
	if err != nil {
		return nil, fmt.Errorf("invalid URI template %q: %w", uriTemplate, err)
	}

	t := &Template{URITemplate: uriTemplate, Factory: factory, tmpl: tmpl}
	t.matcher, t.names = compileMatcher(uriTemplate)
	t.Name = uriTemplate
	applyOptions(&t.Meta, opts)

	return t, nil
}

// Params returns the placeholder names in template order.
func (t *Template) Params() []string {
	return t.tmpl.Varnames()
}

// Match extracts parameters from uri. Every placeholder binds one non-empty
// path segment taken verbatim, so any character other than "/" is accepted.
// It reports false when uri does not match the template.
func (t *Template) Match(uri string) (map[string]string, bool) {
	m := t.matcher.FindStringSubmatch(uri)
	if m == nil {
		return nil, false
	}

	params := make(map[string]string, len(t.names))
	for i, name := range t.names {
		params[name] = m[i+1]
	}

	return params, true
}

// expression finds the {...} expressions of a URI template.
var expression = regexp.MustCompile(`\{([^{}]*)\}`)

// compileMatcher builds an anchored regexp for uriTemplate in which literals
// match themselves and every variable matches [^/]+. Operators and value
// modifiers are ignored; variables of one expression are separated by ",".
// It returns the variable names in group order.
func compileMatcher(uriTemplate string) (*regexp.Regexp, []string) {
	var (
		pattern strings.Builder
		names   []string
		last    int
	)

	pattern.WriteString("^")

	for _, loc := range expression.FindAllStringSubmatchIndex(uriTemplate, -1) {
		pattern.WriteString(regexp.QuoteMeta(uriTemplate[last:loc[0]]))

		body := strings.TrimLeft(uriTemplate[loc[2]:loc[3]], "+#./;?&")
		for i, spec := range strings.Split(body, ",") {
			if i > 0 {
				pattern.WriteString(",")
			}

			name, _, _ := strings.Cut(strings.TrimSuffix(spec, "*"), ":")
			names = append(names, name)

			pattern.WriteString("([^/]+)")
		}

		last = loc[1]
	}

	pattern.WriteString(regexp.QuoteMeta(uriTemplate[last:]))
	pattern.WriteString("$")

	return regexp.MustCompile(pattern.String()), names
}

// Create returns a resource for uri bound to params. Its reader calls Fn
// with params on every read.
func (t *Template) Create(uri string, params map[string]string) *Resource {
	var reader Reader = &Function{Fn: t.Fn, Params: params}
	if t.Factory != nil {
		reader = t.Factory(uri, params)
	}

	return &Resource{
		URI: uri,
		Meta: Meta{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			MIMEType:    t.MIMEType,
			Tags:        append([]string(nil), t.Tags...),
		},
		Reader: reader,
	}
}

// Read matches uri and reads the resulting resource.
func (t *Template) Read(ctx context.Context, uri string) (Contents, error) {
	params, ok := t.Match(uri)
	if !ok {
		return Contents{}, fmt.Errorf("uri %s does not match template %s", uri, t.URITemplate)
	}

	return t.Create(uri, params).Read(ctx)
}

// Key implements registry.Entity.
func (t *Template) Key() string {
	return t.URITemplate
}

// WithPrefix implements registry.Entity. The copy matches "prefix+uri".
func (t *Template) WithPrefix(prefix string) *Template {
	cp := *t
	cp.URITemplate = prefix + "+" + t.URITemplate
	cp.Tags = append([]string(nil), t.Tags...)

	if factory := t.Factory; factory != nil {
		cp.Factory = func(uri string, params map[string]string) Reader {
			return factory(strings.TrimPrefix(uri, prefix+"+"), params)
		}
	}

	cp.matcher, cp.names = compileMatcher(cp.URITemplate)

	return &cp
}

// Descriptor returns the protocol description of the template.
func (t *Template) Descriptor() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		URITemplate: t.URITemplate,
		Name:        t.Name,
		Title:       t.Title,
		Description: t.Description,
		MIMEType:    t.MIMEType,
	}
}
