package flashmcp

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/flashmcp-go/internal/errors"
	"github.com/wagiedev/flashmcp-go/internal/tool"
)

// Protocol methods answered from the server's registries.
const (
	methodListTools     = "tools/list"
	methodCallTool      = "tools/call"
	methodListResources = "resources/list"
	methodListTemplates = "resources/templates/list"
	methodReadResource  = "resources/read"
	methodListPrompts   = "prompts/list"
	methodGetPrompt     = "prompts/get"
)

// MCPServer returns the go-sdk server that serves s. It is built once; the
// registries are consulted on every request, so entities added later are
// served too.
func (s *Server) MCPServer() *mcp.Server {
	s.sdkOnce.Do(func() {
		srv := mcp.NewServer(&mcp.Implementation{Name: s.name, Version: s.version}, &mcp.ServerOptions{
			Instructions: s.instructions,
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		})
		srv.AddReceivingMiddleware(s.dispatchMiddleware)
		s.sdk = srv
	})

	return s.sdk
}

// dispatchMiddleware answers tool, resource and prompt requests from the
// server. Every other method goes to the SDK.
func (s *Server) dispatchMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		switch method {
		case methodListTools:
			tools, err := s.ListTools(ctx)
			if err != nil {
				return nil, toWireError(err)
			}

			return &mcp.ListToolsResult{Tools: tools}, nil
		case methodCallTool:
			r, ok := req.(*mcp.CallToolRequest)
			if !ok {
				break
			}

			return s.handleCallTool(ctx, r)
		case methodListResources:
			resources, err := s.ListResources(ctx)
			if err != nil {
				return nil, toWireError(err)
			}

			return &mcp.ListResourcesResult{Resources: resources}, nil
		case methodListTemplates:
			templates, err := s.ListResourceTemplates(ctx)
			if err != nil {
				return nil, toWireError(err)
			}

			return &mcp.ListResourceTemplatesResult{ResourceTemplates: templates}, nil
		case methodReadResource:
			r, ok := req.(*mcp.ReadResourceRequest)
			if !ok {
				break
			}

			contents, err := s.ReadResource(ctx, r.Params.URI)
			if err != nil {
				return nil, toWireError(err)
			}

			return &mcp.ReadResourceResult{Contents: contents}, nil
		case methodListPrompts:
			prompts, err := s.ListPrompts(ctx)
			if err != nil {
				return nil, toWireError(err)
			}

			return &mcp.ListPromptsResult{Prompts: prompts}, nil
		case methodGetPrompt:
			r, ok := req.(*mcp.GetPromptRequest)
			if !ok {
				break
			}

			result, err := s.GetPrompt(ctx, r.Params.Name, r.Params.Arguments)
			if err != nil {
				return nil, toWireError(err)
			}

			return result, nil
		}

		return next(ctx, method, req)
	}
}

// handleCallTool reports tool failures inside the result, as MCP expects, and
// lookup or argument failures as protocol errors.
func (s *Server) handleCallTool(ctx context.Context, req *mcp.CallToolRequest) (mcp.Result, error) {
	args, err := tool.ParseArguments(req.Params.Arguments)
	if err != nil {
		return nil, toWireError(&errors.ValidationError{Kind: errors.KindTool, Name: req.Params.Name, Err: err})
	}

	items, err := s.CallTool(ctx, req.Params.Name, args)
	if err != nil {
		if toolErr, ok := stderrors.AsType[*errors.ToolError](err); ok {
			s.log.Debug("Tool failed", "tool", req.Params.Name, "error", err)

			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: toolErr.Error()}},
			}, nil
		}

		return nil, toWireError(err)
	}

	return &mcp.CallToolResult{Content: items}, nil
}

// toWireError converts a dispatch error into a JSON-RPC error whose data
// names the error kind, so that proxies can restore it.
func toWireError(err error) error {
	code := int64(codeInternalError)
	data := wireErrorData{}

	switch {
	case isNotFound(err):
		nf, _ := stderrors.AsType[*errors.NotFoundError](err)
		data = wireErrorData{Kind: wireKindNotFound, Entity: string(nf.Kind), Identity: nf.Identity}

		code = codeInvalidParams
		if nf.Kind == errors.KindResource || nf.Kind == errors.KindTemplate {
			code = codeResourceNotFound
		}
	case isValidation(err):
		code = codeInvalidParams
		data.Kind = wireKindValidation
	case isResourceError(err):
		data.Kind = wireKindResource
	case isPromptError(err):
		data.Kind = wireKindPrompt
	}

	raw, _ := json.Marshal(data)

	return &jsonrpc.Error{Code: code, Message: err.Error(), Data: raw}
}

func isNotFound(err error) bool {
	_, ok := stderrors.AsType[*errors.NotFoundError](err)

	return ok
}

func isValidation(err error) bool {
	_, ok := stderrors.AsType[*errors.ValidationError](err)

	return ok
}

func isResourceError(err error) bool {
	_, ok := stderrors.AsType[*errors.ResourceError](err)

	return ok
}

func isPromptError(err error) bool {
	_, ok := stderrors.AsType[*errors.PromptError](err)

	return ok
}
