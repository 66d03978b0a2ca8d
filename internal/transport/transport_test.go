package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/flashmcp-go/internal/config"
)

func TestFromConfig(t *testing.T) {
	cfg, err := config.ParseMCPConfig([]byte(`{
		"mcpServers": {
			"local": {"command": "echo", "args": ["hello"], "env": {"TEST": "test"}, "cwd": "/tmp"},
			"remote": {"url": "http://localhost:8000"},
			"legacy": {"url": "http://localhost:8000/sse"},
			"forced": {"url": "http://localhost:8000", "transport": "sse"}
		}
	}`))
	require.NoError(t, err)

	t.Run("stdio", func(t *testing.T) {
		tr, err := FromConfig(cfg.MCPServers["local"])
		require.NoError(t, err)

		cmdTr, ok := tr.(*mcp.CommandTransport)
		require.True(t, ok)
		require.Equal(t, []string{"echo", "hello"}, cmdTr.Command.Args)
		require.Equal(t, "/tmp", cmdTr.Command.Dir)
		require.Contains(t, cmdTr.Command.Env, "TEST=test")
	})

	t.Run("streamable http", func(t *testing.T) {
		tr, err := FromConfig(cfg.MCPServers["remote"])
		require.NoError(t, err)

		st, ok := tr.(*mcp.StreamableClientTransport)
		require.True(t, ok)
		require.Equal(t, "http://localhost:8000", st.Endpoint)
	})

	for _, name := range []string{"legacy", "forced"} {
		t.Run("sse "+name, func(t *testing.T) {
			tr, err := FromConfig(cfg.MCPServers[name])
			require.NoError(t, err)

			_, ok := tr.(*mcp.SSEClientTransport)
			require.True(t, ok)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := FromConfig(nil)
		require.Error(t, err)

		_, err = FromConfig(&config.StdioServerConfig{})
		require.ErrorContains(t, err, "no command")

		_, err = FromConfig(&config.RemoteServerConfig{URL: "http://h", Transport: "carrier-pigeon"})
		require.NoError(t, err, "unknown transport names fall back to inference")

		_, err = Remote("http://h", "carrier-pigeon", nil)
		require.ErrorContains(t, err, "unsupported remote transport")

		_, err = FromURL("ftp://h/mcp", nil)
		require.ErrorContains(t, err, "unsupported url scheme")
	})
}

func TestHTTPClient_InjectsHeaders(t *testing.T) {
	var got http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := HTTPClient(map[string]string{"Authorization": "Bearer token", "X-Extra": "1"})

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer stale")

	resp, err := client.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	require.Equal(t, "Bearer token", got.Get("Authorization"))
	require.Equal(t, "1", got.Get("X-Extra"))
	require.Equal(t, "Bearer stale", req.Header.Get("Authorization"), "caller request is not mutated")

	require.Same(t, http.DefaultClient, HTTPClient(nil))
}

func TestInMemory(t *testing.T) {
	srv := mcp.NewServer(&mcp.Implementation{Name: "mem", Version: "0.0.1"}, nil)
	tr := InMemory(func() *mcp.Server { return srv })

	ctx := context.Background()
	session, err := mcp.NewClient(&mcp.Implementation{Name: "c", Version: "0.0.1"}, nil).Connect(ctx, tr, nil)
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.Ping(ctx, nil))
}
