// Package transport builds MCP client transports from configuration.
//
// Stdio servers become a CommandTransport, remote servers a streamable HTTP
// or SSE client transport whose HTTP client injects the configured headers.
package transport
