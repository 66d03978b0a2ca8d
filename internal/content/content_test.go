package content

import (
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{name: "nil", in: nil, want: Empty{}},
		{name: "string", in: "hi", want: Text("hi")},
		{name: "bytes", in: []byte{1, 2}, want: Binary{Data: []byte{1, 2}, MIMEType: DefaultBinaryMIMEType}},
		{name: "image", in: Image{Data: []byte{9}, MIMEType: "image/png"}, want: Binary{Data: []byte{9}, MIMEType: "image/png"}},
		{name: "map", in: map[string]any{"a": 1}, want: Structured{V: map[string]any{"a": 1}}},
		{name: "slice", in: []string{"a"}, want: Structured{V: []string{"a"}}},
		{name: "struct", in: user{ID: "1"}, want: Model{V: user{ID: "1"}}},
		{name: "pointer to struct", in: &user{ID: "2"}, want: Model{V: user{ID: "2"}}},
		{name: "int", in: 3, want: Fallback{V: 3}},
		{name: "bool", in: true, want: Fallback{V: true}},
		{name: "stringer", in: time.Second, want: Fallback{V: time.Second}},
		{name: "variant passes through", in: Text("x"), want: Text("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestClassify_RawContent(t *testing.T) {
	item := &mcp.TextContent{Text: "raw"}

	require.Equal(t, Raw{Items: []mcp.Content{item}}, Classify(item))
}

func TestConvert(t *testing.T) {
	t.Run("structured becomes indented json", func(t *testing.T) {
		items, err := Convert([]map[string]string{{"id": "1"}})
		require.NoError(t, err)
		require.Len(t, items, 1)

		text, ok := items[0].(*mcp.TextContent)
		require.True(t, ok)
		require.Equal(t, "[\n  {\n    \"id\": \"1\"\n  }\n]", text.Text)
	})

	t.Run("model becomes indented json", func(t *testing.T) {
		items, err := Convert(user{ID: "7", Name: "Ada"})
		require.NoError(t, err)

		text, ok := items[0].(*mcp.TextContent)
		require.True(t, ok)
		require.JSONEq(t, `{"id":"7","name":"Ada"}`, text.Text)
	})

	t.Run("scalar is stringified", func(t *testing.T) {
		items, err := Convert(3)
		require.NoError(t, err)
		require.Equal(t, []mcp.Content{&mcp.TextContent{Text: "3"}}, items)
	})

	t.Run("binary becomes image content", func(t *testing.T) {
		items, err := Convert([]byte("png"))
		require.NoError(t, err)

		img, ok := items[0].(*mcp.ImageContent)
		require.True(t, ok)
		require.Equal(t, []byte("png"), img.Data)
		require.Equal(t, DefaultBinaryMIMEType, img.MIMEType)
	})

	t.Run("nil is empty", func(t *testing.T) {
		items, err := Convert(nil)
		require.NoError(t, err)
		require.Empty(t, items)
	})

	t.Run("unmarshalable value fails", func(t *testing.T) {
		_, err := Convert(map[string]any{"ch": make(chan int)})
		require.Error(t, err)
	})
}
