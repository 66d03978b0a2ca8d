// Package content converts values returned by tool, resource and prompt
// functions into MCP protocol content.
//
// Conversion goes through a closed set of variants: Classify picks the
// variant for a Go value and ToMCP switches over every variant.
package content

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultBinaryMIMEType is used for binary values without a declared type.
const DefaultBinaryMIMEType = "application/octet-stream"

// Value is one of Empty, Text, Structured, Binary, Model, Raw or Fallback.
type Value interface {
	value() // marker method
}

// Empty is a nil value. It converts to no content at all.
type Empty struct{}

// Text is a plain string.
type Text string

// Structured is a map, slice or array. It converts to indented JSON text.
type Structured struct{ V any }

// Binary is raw bytes with a MIME type. It converts to image content.
type Binary struct {
	Data     []byte
	MIMEType string
}

// Model is a struct (or pointer to one). It converts to indented JSON text.
type Model struct{ V any }

// Raw is protocol content produced directly by the function.
type Raw struct{ Items []mcp.Content }

// Fallback is anything else. It converts to its fmt.Sprint form.
type Fallback struct{ V any }

func (Empty) value()      {}
func (Text) value()       {}
func (Structured) value() {}
func (Binary) value()     {}
func (Model) value()      {}
func (Raw) value()        {}
func (Fallback) value()   {}

// Image is binary content with a MIME type, for functions that return images.
type Image struct {
	Data     []byte
	MIMEType string
}

// Classify returns the variant describing v.
func Classify(v any) Value {
	switch x := v.(type) {
	case nil:
		return Empty{}
	case Value:
		return x
	case string:
		return Text(x)
	case []byte:
		return Binary{Data: x, MIMEType: DefaultBinaryMIMEType}
	case Image:
		return Binary(x)
	case *Image:
		return Binary(*x)
	case mcp.Content:
		return Raw{Items: []mcp.Content{x}}
	case []mcp.Content:
		return Raw{Items: x}
	case json.RawMessage:
		return Text(string(x))
	case fmt.Stringer:
		return Fallback{V: x}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return Structured{V: v}
	case reflect.Struct:
		return Model{V: v}
	case reflect.Pointer:
		if rv.IsNil() {
			return Empty{}
		}

		return Classify(rv.Elem().Interface())
	default:
		return Fallback{V: v}
	}
}

// ToMCP converts a variant into protocol content items.
func ToMCP(v Value) ([]mcp.Content, error) {
	switch x := v.(type) {
	case Empty:
		return []mcp.Content{}, nil
	case Text:
		return []mcp.Content{&mcp.TextContent{Text: string(x)}}, nil
	case Structured:
		return jsonText(x.V)
	case Model:
		return jsonText(x.V)
	case Binary:
		mimeType := x.MIMEType
		if mimeType == "" {
			mimeType = DefaultBinaryMIMEType
		}

		return []mcp.Content{&mcp.ImageContent{Data: x.Data, MIMEType: mimeType}}, nil
	case Raw:
		if x.Items == nil {
			return []mcp.Content{}, nil
		}

		return x.Items, nil
	case Fallback:
		return []mcp.Content{&mcp.TextContent{Text: fmt.Sprint(x.V)}}, nil
	default:
		return nil, fmt.Errorf("unsupported content variant %T", v)
	}
}

// Convert classifies v and converts it in one step.
func Convert(v any) ([]mcp.Content, error) {
	return ToMCP(Classify(v))
}

// MarshalText renders v the way structured content is rendered: strings
// pass through, everything else becomes indented JSON.
func MarshalText(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %T: %w", v, err)
	}

	return string(data), nil
}

func jsonText(v any) ([]mcp.Content, error) {
	text, err := MarshalText(v)
	if err != nil {
		return nil, err
	}

	return []mcp.Content{&mcp.TextContent{Text: text}}, nil
}
