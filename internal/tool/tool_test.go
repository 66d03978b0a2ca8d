package tool

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/flashmcp-go/internal/errors"
	"github.com/wagiedev/flashmcp-go/internal/registry"
)

func greetTool(t *testing.T) *Tool {
	t.Helper()

	greet, err := New("greet", "Greet someone by name",
		SimpleSchema(map[string]string{"name": "string"}),
		func(_ context.Context, args map[string]any) (any, error) {
			return fmt.Sprintf("Hello, %s!", args["name"]), nil
		},
	)
	require.NoError(t, err)

	return greet
}

func TestNew_Defaults(t *testing.T) {
	tl, err := New("noop", "does nothing", nil, func(context.Context, map[string]any) (any, error) {
		return nil, nil
	}, WithTitle("No-op"), WithTags("misc"))
	require.NoError(t, err)

	require.Equal(t, "object", tl.InputSchema.Type)
	require.Equal(t, "No-op", tl.Title)
	require.Equal(t, []string{"misc"}, tl.Tags)
	require.Equal(t, "noop", tl.Key())
}

func TestNew_RejectsInvalidDefinitions(t *testing.T) {
	fn := func(context.Context, map[string]any) (any, error) { return nil, nil }

	_, err := New("", "missing name", nil, fn)
	require.Error(t, err)

	_, err = New("nil-fn", "", nil, nil)
	require.Error(t, err)

	_, err = New("bad-schema", "", &jsonschema.Schema{Type: "string"}, fn)
	require.ErrorContains(t, err, "must have type \"object\"")
}

func TestTool_Run(t *testing.T) {
	greet := greetTool(t)

	result, err := greet.Run(context.Background(), map[string]any{"name": "Ada"})
	require.NoError(t, err)
	require.Equal(t, "Hello, Ada!", result)
}

func TestTool_RunValidationFailureSkipsInvocation(t *testing.T) {
	called := false
	tl, err := New("add", "", SimpleSchema(map[string]string{"a": "int", "b": "int"}),
		func(context.Context, map[string]any) (any, error) {
			called = true

			return nil, nil
		})
	require.NoError(t, err)

	_, err = tl.Run(context.Background(), map[string]any{"a": 1})

	validationErr, ok := stderrors.AsType[*errors.ValidationError](err)
	require.True(t, ok, "expected ValidationError, got %T", err)
	require.Equal(t, "add", validationErr.Name)
	require.False(t, called)

	_, err = tl.Run(context.Background(), map[string]any{"a": "one", "b": 2})
	require.ErrorAs(t, err, new(*errors.ValidationError))
	require.False(t, called)
}

func TestTool_RunWrapsInvocationError(t *testing.T) {
	root := stderrors.New("boom")
	tl, err := New("explode", "", nil, func(context.Context, map[string]any) (any, error) {
		return nil, root
	})
	require.NoError(t, err)

	_, err = tl.Run(context.Background(), nil)

	toolErr, ok := stderrors.AsType[*errors.ToolError](err)
	require.True(t, ok)
	require.Equal(t, "explode", toolErr.Name)
	require.ErrorIs(t, err, root)
	require.Contains(t, err.Error(), "boom")
}

func TestTool_RunNormalizesNumbers(t *testing.T) {
	var seen any

	tl, err := New("echo", "", nil, func(_ context.Context, args map[string]any) (any, error) {
		seen = args["n"]

		return nil, nil
	})
	require.NoError(t, err)

	_, err = tl.Run(context.Background(), map[string]any{"n": 3})
	require.NoError(t, err)
	require.Equal(t, float64(3), seen)
}

func TestTool_WithPrefix(t *testing.T) {
	greet := greetTool(t)
	greet.Tags = []string{"greeting"}

	prefixed := greet.WithPrefix("people")
	require.Equal(t, "people/greet", prefixed.Name)
	require.Equal(t, "greet", greet.Name)
	require.Equal(t, greet.Description, prefixed.Description)

	prefixed.Tags[0] = "changed"
	require.Equal(t, "greeting", greet.Tags[0])

	result, err := prefixed.Run(context.Background(), map[string]any{"name": "Bo"})
	require.NoError(t, err)
	require.Equal(t, "Hello, Bo!", result)
}

func TestTool_Descriptor(t *testing.T) {
	greet := greetTool(t)
	greet.Annotations = &mcp.ToolAnnotations{ReadOnlyHint: true}

	desc := greet.Descriptor()
	require.Equal(t, "greet", desc.Name)
	require.Equal(t, "Greet someone by name", desc.Description)
	require.Equal(t, greet.InputSchema, desc.InputSchema)
	require.True(t, desc.Annotations.ReadOnlyHint)
}

type addInput struct {
	A int `json:"a" jsonschema:"first number"`
	B int `json:"b" jsonschema:"second number"`
}

func TestFromFunc(t *testing.T) {
	add, err := FromFunc("add", "Add two numbers", func(_ context.Context, in addInput) (int, error) {
		return in.A + in.B, nil
	})
	require.NoError(t, err)

	require.Equal(t, "object", add.InputSchema.Type)
	require.Contains(t, add.InputSchema.Properties, "a")
	require.Contains(t, add.InputSchema.Properties, "b")

	result, err := add.Run(context.Background(), map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	require.Equal(t, 3, result)

	_, err = add.Run(context.Background(), map[string]any{"a": "x", "b": 2})
	require.ErrorAs(t, err, new(*errors.ValidationError))
}

func TestManager(t *testing.T) {
	m := NewManager(registry.DuplicateWarn, nil)
	greet := greetTool(t)

	stored, err := m.Add(greet)
	require.NoError(t, err)
	require.Same(t, greet, stored)

	got, err := m.GetTool("greet")
	require.NoError(t, err)
	require.Same(t, greet, got)

	_, err = m.GetTool("nonexistent")
	require.ErrorIs(t, err, errors.ErrToolNotFound)
	require.EqualError(t, err, "Unknown tool: nonexistent")

	_, err = m.CallTool(context.Background(), "nonexistent", nil)
	require.ErrorIs(t, err, errors.ErrNotFound)

	result, err := m.CallTool(context.Background(), "greet", map[string]any{"name": "X"})
	require.NoError(t, err)
	require.Equal(t, "Hello, X!", result)
}

func TestManager_Import(t *testing.T) {
	parent := NewManager(registry.DuplicateWarn, nil)
	child := NewManager(registry.DuplicateWarn, nil)
	_, err := child.Add(greetTool(t))
	require.NoError(t, err)

	require.NoError(t, parent.Import(child, "people"))

	direct, err := child.CallTool(context.Background(), "greet", map[string]any{"name": "Y"})
	require.NoError(t, err)

	viaPrefix, err := parent.CallTool(context.Background(), "people/greet", map[string]any{"name": "Y"})
	require.NoError(t, err)
	require.Equal(t, direct, viaPrefix)
}

func TestSimpleSchema(t *testing.T) {
	schema := SimpleSchema(map[string]string{
		"name":   "string",
		"active": "bool",
		"scores": "[]float64",
	})

	require.Equal(t, "object", schema.Type)
	require.ElementsMatch(t, []string{"name", "active", "scores"}, schema.Required)
	require.Equal(t, "string", schema.Properties["name"].Type)
	require.Equal(t, "boolean", schema.Properties["active"].Type)
	require.Equal(t, "array", schema.Properties["scores"].Type)
	require.Equal(t, "number", schema.Properties["scores"].Items.Type)
}

func TestGoTypeToJSONSchema(t *testing.T) {
	tests := []struct {
		goType    string
		wantType  string
		wantItems string
	}{
		{goType: "string", wantType: "string"},
		{goType: "int64", wantType: "integer"},
		{goType: "float32", wantType: "number"},
		{goType: "boolean", wantType: "boolean"},
		{goType: "map[string]any", wantType: "object"},
		{goType: "[]int", wantType: "array", wantItems: "integer"},
		{goType: "customType", wantType: "string"},
	}

	for _, tt := range tests {
		t.Run(tt.goType, func(t *testing.T) {
			got := goTypeToJSONSchema(tt.goType)
			require.Equal(t, tt.wantType, got.Type)

			if tt.wantItems != "" {
				require.NotNil(t, got.Items)
				require.Equal(t, tt.wantItems, got.Items.Type)
			}
		})
	}
}

func TestParseArguments(t *testing.T) {
	args, err := ParseArguments(nil)
	require.NoError(t, err)
	require.Empty(t, args)

	args, err = ParseArguments(json.RawMessage(`{"name":"flash","count":3}`))
	require.NoError(t, err)
	require.Equal(t, "flash", args["name"])
	require.Equal(t, float64(3), args["count"])

	_, err = ParseArguments(json.RawMessage(`{"name":`))
	require.ErrorContains(t, err, "failed to unmarshal arguments")
}

func TestFromDescriptor(t *testing.T) {
	desc := &mcp.Tool{
		Name:        "remote",
		Description: "lives elsewhere",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"n": map[string]any{"type": "integer"}},
			"required":   []any{"n"},
		},
	}

	var got map[string]any

	remote, err := FromDescriptor(desc, func(_ context.Context, args map[string]any) (any, error) {
		got = args

		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "remote", remote.Key())
	require.Equal(t, "integer", remote.InputSchema.Properties["n"].Type)
	require.Equal(t, []string{"n"}, remote.InputSchema.Required)

	// Arguments are left for the remote side to validate.
	result, err := remote.Run(context.Background(), map[string]any{"n": "not a number"})
	require.NoError(t, err)
	require.Equal(t, "ok", result)
	require.Equal(t, "not a number", got["n"])

	_, err = FromDescriptor(nil, nil)
	require.Error(t, err)
}

func TestTool_RunPassesThroughTypedErrors(t *testing.T) {
	notFound := &errors.NotFoundError{Kind: errors.KindTool, Identity: "inner"}

	tl, err := New("outer", "", nil, func(context.Context, map[string]any) (any, error) {
		return nil, fmt.Errorf("delegating: %w", notFound)
	})
	require.NoError(t, err)

	_, err = tl.Run(context.Background(), nil)
	require.ErrorIs(t, err, errors.ErrToolNotFound)

	_, isToolErr := stderrors.AsType[*errors.ToolError](err)
	require.False(t, isToolErr)
}
