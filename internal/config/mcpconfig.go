package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ServerType represents how a configured MCP server is reached.
type ServerType string

const (
	// ServerTypeStdio launches a subprocess and talks over stdin/stdout.
	ServerTypeStdio ServerType = "stdio"
	// ServerTypeSSE uses the HTTP+SSE transport.
	ServerTypeSSE ServerType = "sse"
	// ServerTypeHTTP uses the streamable HTTP transport.
	ServerTypeHTTP ServerType = "http"
	// ServerTypeStreamableHTTP is an alias of ServerTypeHTTP.
	ServerTypeStreamableHTTP ServerType = "streamable-http"
)

// ServerConfig is the interface for MCP server configurations.
type ServerConfig interface {
	GetType() ServerType
}

// Compile-time verification that all MCP server config types implement ServerConfig.
var (
	_ ServerConfig = (*StdioServerConfig)(nil)
	_ ServerConfig = (*RemoteServerConfig)(nil)
)

// StdioServerConfig configures a server launched as a subprocess.
type StdioServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Cwd     string            `json:"cwd,omitempty"`
}

// GetType implements ServerConfig.
func (c *StdioServerConfig) GetType() ServerType { return ServerTypeStdio }

// RemoteServerConfig configures a server reached over HTTP.
type RemoteServerConfig struct {
	URL       string            `json:"url"`
	Transport ServerType        `json:"transport,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}

// GetType implements ServerConfig. Without an explicit transport, URLs whose
// path ends in /sse use SSE and everything else streamable HTTP.
func (c *RemoteServerConfig) GetType() ServerType {
	switch c.Transport {
	case ServerTypeSSE:
		return ServerTypeSSE
	case ServerTypeHTTP, ServerTypeStreamableHTTP:
		return ServerTypeHTTP
	}

	return InferTransport(c.URL)
}

// InferTransport picks the transport for a URL: SSE when the path ends in
// /sse, streamable HTTP otherwise.
func InferTransport(rawURL string) ServerType {
	u, err := url.Parse(rawURL)
	if err == nil && strings.HasSuffix(strings.TrimRight(u.Path, "/"), "/sse") {
		return ServerTypeSSE
	}

	return ServerTypeHTTP
}

// MCPConfig is the standard MCP client configuration:
//
//	{"mcpServers": {"name": {"command": "...", "args": [...]}, "other": {"url": "..."}}}
type MCPConfig struct {
	MCPServers map[string]ServerConfig
}

// Names returns the configured server names.
func (c *MCPConfig) Names() []string {
	names := make([]string, 0, len(c.MCPServers))
	for name := range c.MCPServers {
		names = append(names, name)
	}

	return names
}

type rawMCPConfig struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

type rawServerConfig struct {
	Command *string    `json:"command"`
	URL     *string    `json:"url"`
	Type    ServerType `json:"type"`
}

// UnmarshalJSON implements json.Unmarshaler. Entries with "command" are
// stdio servers; entries with "url" are remote servers.
func (c *MCPConfig) UnmarshalJSON(data []byte) error {
	var raw rawMCPConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse MCP config: %w", err)
	}

	servers := make(map[string]ServerConfig, len(raw.MCPServers))

	for name, entry := range raw.MCPServers {
		var shape rawServerConfig
		if err := json.Unmarshal(entry, &shape); err != nil {
			return fmt.Errorf("server %s: %w", name, err)
		}

		switch {
		case shape.Command != nil:
			var sc StdioServerConfig
			if err := json.Unmarshal(entry, &sc); err != nil {
				return fmt.Errorf("server %s: %w", name, err)
			}

			servers[name] = &sc
		case shape.URL != nil:
			var rc RemoteServerConfig
			if err := json.Unmarshal(entry, &rc); err != nil {
				return fmt.Errorf("server %s: %w", name, err)
			}

			if rc.Transport == "" && shape.Type != "" {
				rc.Transport = shape.Type
			}

			servers[name] = &rc
		default:
			return fmt.Errorf("server %s: needs either command or url", name)
		}
	}

	c.MCPServers = servers

	return nil
}

// MarshalJSON implements json.Marshaler.
func (c *MCPConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		MCPServers map[string]ServerConfig `json:"mcpServers"`
	}{MCPServers: c.MCPServers})
}

// ParseMCPConfig parses an MCP configuration document.
func ParseMCPConfig(data []byte) (*MCPConfig, error) {
	var cfg MCPConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadMCPConfig reads and parses an MCP configuration file.
func LoadMCPConfig(path string) (*MCPConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MCP config: %w", err)
	}

	return ParseMCPConfig(data)
}

// MCPConfigFromMap converts a decoded configuration map.
func MCPConfigFromMap(m map[string]any) (*MCPConfig, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal MCP config: %w", err)
	}

	return ParseMCPConfig(data)
}
