package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wagiedev/flashmcp-go/internal/errors"
)

// FromFunc creates a Prompt from a typed function. Arguments are inferred
// from the fields of In: each property becomes an Argument, required when
// its field has no omitempty/omitzero option. Argument values that are not
// declared as strings are decoded from JSON before being passed to fn.
func FromFunc[In any](
	name, description string,
	fn func(context.Context, In) (any, error),
	opts ...Option,
) (*Prompt, error) {
	if fn == nil {
		return nil, fmt.Errorf("prompt %s: nil function", name)
	}

	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return nil, fmt.Errorf("prompt %s: inferring arguments: %w", name, err)
	}

	wrapped := func(ctx context.Context, args map[string]string) (any, error) {
		var in In
		if err := decodeArguments(schema, args, &in); err != nil {
			return nil, &errors.ValidationError{Kind: errors.KindPrompt, Name: name, Err: err}
		}

		return fn(ctx, in)
	}

	opts = append([]Option{WithArguments(argumentsFromSchema(schema)...)}, opts...)

	return New(name, description, wrapped, opts...)
}

func argumentsFromSchema(schema *jsonschema.Schema) []Argument {
	names := make([]string, 0, len(schema.Properties))
	for n := range schema.Properties {
		names = append(names, n)
	}

	sort.Strings(names)

	args := make([]Argument, 0, len(names))
	for _, n := range names {
		args = append(args, Argument{
			Name:        n,
			Description: schema.Properties[n].Description,
			Required:    slices.Contains(schema.Required, n),
		})
	}

	return args
}

func decodeArguments(schema *jsonschema.Schema, args map[string]string, dst any) error {
	values := make(map[string]any, len(args))

	for k, v := range args {
		prop, ok := schema.Properties[k]
		if !ok || prop.Type == "string" || prop.Type == "" {
			values[k] = v

			continue
		}

		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			values[k] = v

			continue
		}

		values[k] = decoded
	}

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode arguments: %w", err)
	}

	return nil
}
