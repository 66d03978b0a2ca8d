package flashmcp

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
)

// HTTP transports accepted by ListenAndServe.
const (
	TransportStreamableHTTP = "streamable-http"
	TransportSSE            = "sse"
)

const shutdownTimeout = 5 * time.Second

// Run serves s over t until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context, t Transport) error {
	s.log.Info("Starting server", "transport", fmt.Sprintf("%T", t))

	return s.MCPServer().Run(ctx, t)
}

// ServeStdio serves s over stdin and stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Connect starts a single session of s over t and returns without waiting
// for it to end.
func (s *Server) Connect(ctx context.Context, t Transport) (*mcp.ServerSession, error) {
	return s.MCPServer().Connect(ctx, t, nil)
}

// HTTPHandler returns an http.Handler serving s over streamable HTTP.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.MCPServer()
	}, nil)
}

// SSEHandler returns an http.Handler serving s over the HTTP+SSE transport.
func (s *Server) SSEHandler() http.Handler {
	return mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
		return s.MCPServer()
	}, nil)
}

// ListenAndServe serves s over HTTP on the configured host and port until ctx
// ends, then shuts the listener down gracefully. transport is
// TransportStreamableHTTP (the default when empty) or TransportSSE.
func (s *Server) ListenAndServe(ctx context.Context, transport string) error {
	var handler http.Handler

	switch transport {
	case "", TransportStreamableHTTP, "http":
		handler = s.HTTPHandler()
	case TransportSSE:
		handler = s.SSEHandler()
	default:
		return fmt.Errorf("unsupported HTTP transport %q", transport)
	}

	ln, err := net.Listen("tcp", s.settings.Address())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.settings.Address(), err)
	}

	return s.serveListener(ctx, ln, handler)
}

func (s *Server) serveListener(ctx context.Context, ln net.Listener, handler http.Handler) error {
	httpServer := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("Serving HTTP", "address", ln.Addr().String())

		if err := httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()

		s.log.Info("Shutting down HTTP server")

		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
