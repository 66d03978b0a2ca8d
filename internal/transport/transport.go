package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/flashmcp-go/internal/config"
)

// FromConfig builds the transport for a configured server.
func FromConfig(cfg config.ServerConfig) (mcp.Transport, error) {
	switch c := cfg.(type) {
	case *config.StdioServerConfig:
		return Stdio(c)
	case *config.RemoteServerConfig:
		return Remote(c.URL, c.GetType(), c.Headers)
	case nil:
		return nil, fmt.Errorf("nil server config")
	default:
		return nil, fmt.Errorf("unsupported server config %T", cfg)
	}
}

// Stdio builds a transport that launches the configured command. The
// configured environment is added to the current process environment.
func Stdio(cfg *config.StdioServerConfig) (*mcp.CommandTransport, error) {
	if cfg.Command == "" {
		return nil, fmt.Errorf("stdio server config has no command")
	}

	cmd := exec.Command(cfg.Command, cfg.Args...)
	cmd.Dir = cfg.Cwd

	if len(cfg.Env) > 0 {
		keys := make([]string, 0, len(cfg.Env))
		for k := range cfg.Env {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		env := os.Environ()
		for _, k := range keys {
			env = append(env, fmt.Sprintf("%s=%s", k, cfg.Env[k]))
		}

		cmd.Env = env
	}

	return &mcp.CommandTransport{Command: cmd}, nil
}

// Remote builds an HTTP transport of the given type for endpoint.
func Remote(endpoint string, typ config.ServerType, headers map[string]string) (mcp.Transport, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("remote server config has no url")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", endpoint, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	client := HTTPClient(headers)

	switch typ {
	case config.ServerTypeSSE:
		return &mcp.SSEClientTransport{Endpoint: endpoint, HTTPClient: client}, nil
	case config.ServerTypeHTTP, config.ServerTypeStreamableHTTP, "":
		return &mcp.StreamableClientTransport{Endpoint: endpoint, HTTPClient: client}, nil
	default:
		return nil, fmt.Errorf("unsupported remote transport %q", typ)
	}
}

// FromURL builds a transport for endpoint, inferring SSE from a path that
// ends in /sse.
func FromURL(endpoint string, headers map[string]string) (mcp.Transport, error) {
	return Remote(endpoint, config.InferTransport(endpoint), headers)
}

// HTTPClient returns an HTTP client that sets headers on every request.
// Without headers it returns http.DefaultClient.
func HTTPClient(headers map[string]string) *http.Client {
	if len(headers) == 0 {
		return http.DefaultClient
	}

	h := make(http.Header, len(headers))
	for k, v := range headers {
		h.Set(k, v)
	}

	return &http.Client{Transport: &headerRoundTripper{next: http.DefaultTransport, headers: h}}
}

type headerRoundTripper struct {
	next    http.RoundTripper
	headers http.Header
}

// RoundTrip implements http.RoundTripper.
func (d *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	for k, values := range d.headers {
		req.Header.Del(k)

		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	return d.next.RoundTrip(req)
}
