package resource

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
)

// NewText creates a static text resource.
func NewText(uri, text string, opts ...Option) *Resource {
	return New(uri, &Text{Content: text}, opts...)
}

// NewBinary creates a static binary resource. The MIME type defaults to
// application/octet-stream.
func NewBinary(uri string, data []byte, opts ...Option) *Resource {
	opts = append([]Option{WithMIMEType("application/octet-stream")}, opts...)

	return New(uri, &Binary{Data: data}, opts...)
}

// NewFile creates a resource backed by the file at the absolute path.
// The URI is "file://" followed by the path. Files with a non-text MIME type
// are read as blobs.
func NewFile(path string, opts ...Option) (*Resource, error) {
	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("path must be absolute: %s", path)
	}

	r := New("file://"+filepath.ToSlash(path), nil, opts...)
	r.Reader = &File{Path: path, Binary: !isTextMIME(r.MIMEType)}

	return r, nil
}

// NewHTTP creates a resource that fetches rawURL on every read. The URI is
// the URL itself.
func NewHTTP(rawURL string, headers map[string]string, client *http.Client, opts ...Option) (*Resource, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	r := New(rawURL, nil, opts...)
	r.Reader = &HTTP{URL: rawURL, Headers: headers, Client: client, Binary: !isTextMIME(r.MIMEType)}

	return r, nil
}

// DirectoryOptions controls which files a directory resource lists.
type DirectoryOptions struct {
	Recursive bool
	Pattern   string
}

// NewDirectory creates a resource listing the files under the absolute path
// as JSON. The URI is "dir://" followed by the path.
func NewDirectory(path string, dirOpts DirectoryOptions, opts ...Option) (*Resource, error) {
	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("path must be absolute: %s", path)
	}

	reader, err := NewDirectoryReader(path, dirOpts.Recursive, dirOpts.Pattern)
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithMIMEType("application/json")}, opts...)

	return New("dir://"+filepath.ToSlash(path), reader, opts...), nil
}

// NewFunction creates a resource whose content is computed by fn on every
// read. Its URI is "fn://name". Reads of "fn://name?k=v" bind the query
// parameters.
func NewFunction(name string, fn ParamFunc, opts ...Option) (*Resource, error) {
	if name == "" {
		return nil, fmt.Errorf("function resource name is required")
	}

	if fn == nil {
		return nil, fmt.Errorf("function resource %s has no function", name)
	}

	opts = append([]Option{WithName(name)}, opts...)

	return New(FunctionURI(name, nil), &Function{Fn: fn}, opts...), nil
}

// FunctionURI builds the URI of a function resource with optional query
// parameters in sorted key order.
func FunctionURI(name string, params map[string]string) string {
	uri := "fn://" + name
	if len(params) == 0 {
		return uri
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(params[k]))
	}

	return uri + "?" + strings.Join(parts, "&")
}
