package transport

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Compile-time verification that serverTransport implements mcp.Transport.
var _ mcp.Transport = (*serverTransport)(nil)

// serverTransport connects to an in-process server. Each Connect starts a
// fresh server session over in-memory pipes.
type serverTransport struct {
	getServer func() *mcp.Server
}

// InMemory returns a transport to the server returned by getServer.
func InMemory(getServer func() *mcp.Server) mcp.Transport {
	return &serverTransport{getServer: getServer}
}

// Connect implements mcp.Transport.
func (t *serverTransport) Connect(ctx context.Context) (mcp.Connection, error) {
	clientSide, serverSide := mcp.NewInMemoryTransports()

	// The server session outlives the connect call and ends when the client
	// closes its side.
	if _, err := t.getServer().Connect(context.WithoutCancel(ctx), serverSide, nil); err != nil {
		return nil, fmt.Errorf("starting in-memory server session: %w", err)
	}

	return clientSide.Connect(ctx)
}
