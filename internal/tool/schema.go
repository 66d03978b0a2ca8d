package tool

import "github.com/google/jsonschema-go/jsonschema"

// SimpleSchema creates a jsonschema.Schema from a simple type map.
// Every listed property is required.
//
// Input format: {"a": "float64", "b": "string"}
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(props))
	required := make([]string, 0, len(props))

	for name, goType := range props {
		properties[name] = goTypeToJSONSchema(goType)
		required = append(required, name)
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// goTypeToJSONSchema converts a Go type string to a JSON Schema type.
func goTypeToJSONSchema(goType string) *jsonschema.Schema {
	switch goType {
	case "string":
		return &jsonschema.Schema{Type: "string"}
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return &jsonschema.Schema{Type: "integer"}
	case "float32", "float64", "float", "number":
		return &jsonschema.Schema{Type: "number"}
	case "bool", "boolean":
		return &jsonschema.Schema{Type: "boolean"}
	case "any", "object", "map[string]any":
		return &jsonschema.Schema{Type: "object"}
	default:
		if len(goType) > 2 && goType[:2] == "[]" {
			return &jsonschema.Schema{
				Type:  "array",
				Items: goTypeToJSONSchema(goType[2:]),
			}
		}

		return &jsonschema.Schema{Type: "string"}
	}
}
