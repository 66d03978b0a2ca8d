package prompt

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/flashmcp-go/internal/errors"
	"github.com/wagiedev/flashmcp-go/internal/registry"
)

func textOf(t *testing.T, msg *mcp.PromptMessage) string {
	t.Helper()

	tc, ok := msg.Content.(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", msg.Content)

	return tc.Text
}

func greetPrompt(t *testing.T) *Prompt {
	t.Helper()

	p, err := New("greet", "Greet someone", func(_ context.Context, args map[string]string) (any, error) {
		return "Hello, " + args["name"] + "!", nil
	}, WithArguments(Argument{Name: "name", Description: "who to greet", Required: true}))
	require.NoError(t, err)

	return p
}

func TestPrompt_Render(t *testing.T) {
	messages, err := greetPrompt(t).Render(context.Background(), map[string]string{"name": "Ada"})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, RoleUser, messages[0].Role)
	require.Equal(t, "Hello, Ada!", textOf(t, messages[0]))
}

func TestPrompt_RenderMissingArguments(t *testing.T) {
	called := false

	p, err := New("pair", "", func(context.Context, map[string]string) (any, error) {
		called = true

		return "", nil
	}, WithArguments(
		Argument{Name: "b", Required: true},
		Argument{Name: "a", Required: true},
		Argument{Name: "c"},
	))
	require.NoError(t, err)

	_, err = p.Render(context.Background(), nil)
	valErr, ok := stderrors.AsType[*errors.ValidationError](err)
	require.True(t, ok)
	require.Equal(t, errors.KindPrompt, valErr.Kind)
	require.ErrorContains(t, err, "missing required arguments: [a b]")
	require.False(t, called)
}

func TestPrompt_RenderResultShapes(t *testing.T) {
	tests := []struct {
		name   string
		result any
		roles  []mcp.Role
		texts  []string
	}{
		{
			name:   "string",
			result: "plain",
			roles:  []mcp.Role{RoleUser},
			texts:  []string{"plain"},
		},
		{
			name:   "message",
			result: AssistantMessage("from assistant"),
			roles:  []mcp.Role{RoleAssistant},
			texts:  []string{"from assistant"},
		},
		{
			name:   "message slice",
			result: []*mcp.PromptMessage{UserMessage("q"), AssistantMessage("a")},
			roles:  []mcp.Role{RoleUser, RoleAssistant},
			texts:  []string{"q", "a"},
		},
		{
			name:   "mixed slice",
			result: []any{"one", AssistantMessage("two"), map[string]int{"n": 3}},
			roles:  []mcp.Role{RoleUser, RoleAssistant, RoleUser},
			texts:  []string{"one", "two", "{\n  \"n\": 3\n}"},
		},
		{
			name:   "structured",
			result: map[string]string{"k": "v"},
			roles:  []mcp.Role{RoleUser},
			texts:  []string{"{\n  \"k\": \"v\"\n}"},
		},
		{
			name:   "strings",
			result: []string{"x", "y"},
			roles:  []mcp.Role{RoleUser, RoleUser},
			texts:  []string{"x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New("shape", "", func(context.Context, map[string]string) (any, error) {
				return tt.result, nil
			})
			require.NoError(t, err)

			messages, err := p.Render(context.Background(), nil)
			require.NoError(t, err)
			require.Len(t, messages, len(tt.texts))

			for i, msg := range messages {
				require.Equal(t, tt.roles[i], msg.Role)
				require.Equal(t, tt.texts[i], textOf(t, msg))
			}
		})
	}
}

func TestPrompt_RenderFailure(t *testing.T) {
	p, err := New("broken", "", func(context.Context, map[string]string) (any, error) {
		return nil, stderrors.New("template exploded")
	})
	require.NoError(t, err)

	_, err = p.Render(context.Background(), nil)
	promptErr, ok := stderrors.AsType[*errors.PromptError](err)
	require.True(t, ok)
	require.Equal(t, "broken", promptErr.Name)
	require.ErrorContains(t, err, "template exploded")
}

func TestPrompt_UnconvertibleResult(t *testing.T) {
	p, err := New("chan", "", func(context.Context, map[string]string) (any, error) {
		return make(chan int), nil
	})
	require.NoError(t, err)

	_, err = p.Render(context.Background(), nil)
	_, ok := stderrors.AsType[*errors.PromptError](err)
	require.True(t, ok)
}

func TestPrompt_WithPrefixAndDescriptor(t *testing.T) {
	p := greetPrompt(t)
	prefixed := p.WithPrefix("chat")

	require.Equal(t, "chat/greet", prefixed.Key())
	require.Equal(t, "greet", p.Key())

	desc := prefixed.Descriptor()
	require.Equal(t, "chat/greet", desc.Name)
	require.Len(t, desc.Arguments, 1)
	require.Equal(t, "name", desc.Arguments[0].Name)
	require.True(t, desc.Arguments[0].Required)
}

type reviewArgs struct {
	Code   string   `json:"code" jsonschema:"code to review"`
	Focus  []string `json:"focus,omitempty"`
	Strict bool     `json:"strict,omitempty"`
}

func TestFromFunc(t *testing.T) {
	p, err := FromFunc("review", "Review code", func(_ context.Context, in reviewArgs) (any, error) {
		return []any{
			UserMessage("Review: " + in.Code),
			AssistantMessage(map[bool]string{true: "strict", false: "lenient"}[in.Strict]),
		}, nil
	})
	require.NoError(t, err)

	require.Equal(t, []Argument{
		{Name: "code", Description: "code to review", Required: true},
		{Name: "focus"},
		{Name: "strict"},
	}, p.Arguments)

	messages, err := p.Render(context.Background(), map[string]string{
		"code":   "x := 1",
		"focus":  `["naming"]`,
		"strict": "true",
	})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, "Review: x := 1", textOf(t, messages[0]))
	require.Equal(t, "strict", textOf(t, messages[1]))

	_, err = p.Render(context.Background(), map[string]string{"code": "y", "strict": "maybe"})
	_, ok := stderrors.AsType[*errors.ValidationError](err)
	require.True(t, ok)
}

func TestManager(t *testing.T) {
	m := NewManager(registry.DuplicateWarn, nil)

	_, err := m.Add(greetPrompt(t))
	require.NoError(t, err)

	messages, err := m.RenderPrompt(context.Background(), "greet", map[string]string{"name": "Bo"})
	require.NoError(t, err)
	require.Equal(t, "Hello, Bo!", textOf(t, messages[0]))

	_, err = m.GetPrompt("missing")
	require.ErrorIs(t, err, errors.ErrPromptNotFound)

	parent := NewManager(registry.DuplicateWarn, nil)
	require.NoError(t, parent.Import(m, "chat"))

	_, err = parent.GetPrompt("chat/greet")
	require.NoError(t, err)
}
