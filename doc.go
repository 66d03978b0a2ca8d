// Package flashmcp is a convenience layer over the official MCP Go SDK for
// building Model Context Protocol servers.
//
// A Server holds registries of tools, resources, resource templates and
// prompts. Registration is explicit and returns the registered function
// unchanged, so the same function stays directly callable:
//
//	srv := flashmcp.New("demo")
//
//	add, err := srv.RegisterTool("add", "Add two numbers",
//	    flashmcp.SimpleSchema(map[string]string{"a": "float64", "b": "float64"}),
//	    func(ctx context.Context, args map[string]any) (any, error) {
//	        return args["a"].(float64) + args["b"].(float64), nil
//	    },
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_, err = srv.RegisterResource("data://user/{user_id}",
//	    func(ctx context.Context, params map[string]string) (any, error) {
//	        return map[string]string{"id": params["user_id"]}, nil
//	    },
//	)
//
// # Serving
//
// Run, ServeStdio and ListenAndServe serve a Server over stdio or HTTP.
// HTTPHandler and SSEHandler return handlers for embedding in an existing
// HTTP server. The same operations are available in-process through
// ListTools, CallTool, ReadResource, GetPrompt and the other dispatch
// methods.
//
// # Composition
//
// Mount copies a snapshot of another server's entities under a prefix:
// tools and prompts become "prefix/name", resources and templates become
// "prefix+uri".
//
//	math := flashmcp.New("math")
//	// register tools on math...
//	if err := app.Mount(ctx, "math", math); err != nil {
//	    log.Fatal(err)
//	}
//	// app now serves "math/add"
//
// # Proxying
//
// AsProxy turns a remote MCP server into a Server. The target may be a
// local Server, a Client, a Transport, an MCPConfig or a URL:
//
//	proxy, err := flashmcp.AsProxy(ctx, "http://localhost:8000/mcp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer proxy.Close()
//
// Every request to a proxy is forwarded. Remote failures are translated
// into the local error types: a missing remote tool is a NotFoundError,
// a failing remote tool a ToolError, and a broken connection a
// TransportError.
//
// # Errors
//
// Lookup failures match ErrNotFound and the kind-specific sentinels
// (ErrToolNotFound, ErrResourceNotFound, ErrPromptNotFound) with errors.Is.
// Use errors.As with the exported error types for details.
package flashmcp
