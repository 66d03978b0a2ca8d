package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wagiedev/flashmcp-go/internal/errors"
)

// FromFunc creates a Tool from a typed function. The input schema is
// inferred from In, which must be a struct or a map with string keys.
//
// Example:
//
//	type AddInput struct {
//		A int `json:"a" jsonschema:"first number"`
//		B int `json:"b" jsonschema:"second number"`
//	}
//
//	add, err := tool.FromFunc("add", "Add two numbers",
//		func(_ context.Context, in AddInput) (int, error) {
//			return in.A + in.B, nil
//		})
func FromFunc[In, Out any](
	name, description string,
	fn func(context.Context, In) (Out, error),
	opts ...Option,
) (*Tool, error) {
	if fn == nil {
		return nil, fmt.Errorf("tool %s: nil function", name)
	}

	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return nil, fmt.Errorf("tool %s: inferring input schema: %w", name, err)
	}

	wrapped := func(ctx context.Context, args map[string]any) (any, error) {
		var in In
		if err := decodeInto(args, &in); err != nil {
			return nil, &errors.ValidationError{Kind: errors.KindTool, Name: name, Err: err}
		}

		return fn(ctx, in)
	}

	return New(name, description, schema, wrapped, opts...)
}

func decodeInto(args map[string]any, dst any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode arguments: %w", err)
	}

	return nil
}
