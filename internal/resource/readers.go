package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/wagiedev/flashmcp-go/internal/content"
)

// Compile-time verification that all readers implement Reader.
var (
	_ Reader = (*Text)(nil)
	_ Reader = (*Binary)(nil)
	_ Reader = (*File)(nil)
	_ Reader = (*HTTP)(nil)
	_ Reader = (*Directory)(nil)
	_ Reader = (*Function)(nil)
)

// Text is static text content.
type Text struct {
	Content string
}

// Read implements Reader.
func (t *Text) Read(context.Context) (Contents, error) {
	return Contents{Text: t.Content}, nil
}

// Binary is static binary content.
type Binary struct {
	Data []byte
}

// Read implements Reader.
func (b *Binary) Read(context.Context) (Contents, error) {
	data := b.Data
	if data == nil {
		data = []byte{}
	}

	return Contents{Blob: data}, nil
}

// File reads a file from disk on every read.
type File struct {
	Path   string
	Binary bool
}

// Read implements Reader.
func (f *File) Read(context.Context) (Contents, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Contents{}, fmt.Errorf("reading file %s: %w", f.Path, err)
	}

	if f.Binary {
		return Contents{Blob: data}, nil
	}

	return Contents{Text: string(data)}, nil
}

// HTTP fetches a URL with GET on every read.
type HTTP struct {
	URL     string
	Headers map[string]string
	Client  *http.Client
	Binary  bool
}

// Read implements Reader.
func (h *HTTP) Read(ctx context.Context) (Contents, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return Contents{}, fmt.Errorf("building request: %w", err)
	}

	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Contents{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Contents{}, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return Contents{}, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if h.Binary {
		return Contents{Blob: body}, nil
	}

	return Contents{Text: string(body)}, nil
}

// Directory lists the files below a directory as JSON.
type Directory struct {
	Path      string
	Recursive bool
	Pattern   string

	matcher glob.Glob
}

// NewDirectoryReader creates a Directory reader. An empty pattern matches
// every file; otherwise the pattern is a glob matched against file names
// and slash-separated relative paths.
func NewDirectoryReader(path string, recursive bool, pattern string) (*Directory, error) {
	d := &Directory{Path: path, Recursive: recursive, Pattern: pattern}

	if pattern != "" {
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}

		d.matcher = matcher
	}

	return d, nil
}

// ListFiles returns the relative, slash-separated paths of matching files.
func (d *Directory) ListFiles() ([]string, error) {
	info, err := os.Stat(d.Path)
	if err != nil {
		return nil, fmt.Errorf("directory not found: %s: %w", d.Path, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", d.Path)
	}

	files := []string{}

	if !d.Recursive {
		entries, err := os.ReadDir(d.Path)
		if err != nil {
			return nil, fmt.Errorf("listing directory %s: %w", d.Path, err)
		}

		for _, entry := range entries {
			if entry.Type().IsRegular() && d.matches(entry.Name()) {
				files = append(files, entry.Name())
			}
		}

		return files, nil
	}

	err = filepath.WalkDir(d.Path, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(d.Path, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)
		if d.matches(rel) {
			files = append(files, rel)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing directory %s: %w", d.Path, err)
	}

	return files, nil
}

func (d *Directory) matches(rel string) bool {
	if d.matcher == nil {
		return true
	}

	return d.matcher.Match(rel) || d.matcher.Match(filepath.Base(rel))
}

// Read implements Reader.
func (d *Directory) Read(context.Context) (Contents, error) {
	files, err := d.ListFiles()
	if err != nil {
		return Contents{}, err
	}

	text, err := content.MarshalText(map[string][]string{"files": files})
	if err != nil {
		return Contents{}, err
	}

	return Contents{Text: text}, nil
}

// ParamFunc computes resource content from bound parameters.
// Template placeholders and function-resource query strings are passed by name.
type ParamFunc func(ctx context.Context, params map[string]string) (any, error)

// Function computes content by calling Fn with Params on every read.
type Function struct {
	Fn     ParamFunc
	Params map[string]string
}

// Bind returns a copy of f that calls Fn with params.
func (f *Function) Bind(params map[string]string) *Function {
	return &Function{Fn: f.Fn, Params: params}
}

// Read implements Reader.
func (f *Function) Read(ctx context.Context) (Contents, error) {
	params := f.Params
	if params == nil {
		params = map[string]string{}
	}

	v, err := f.Fn(ctx, params)
	if err != nil {
		return Contents{}, err
	}

	return valueContents(v)
}

// valueContents converts a function result: strings stay text, bytes become
// a blob, raw JSON is kept verbatim and everything else is indented JSON.
func valueContents(v any) (Contents, error) {
	switch x := v.(type) {
	case string:
		return Contents{Text: x}, nil
	case []byte:
		return Contents{Blob: x}, nil
	case json.RawMessage:
		return Contents{Text: string(x)}, nil
	case Contents:
		return x, nil
	}

	text, err := content.MarshalText(v)
	if err != nil {
		return Contents{}, err
	}

	return Contents{Text: text}, nil
}
