package questionsvc

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition for one payload shape.
type Schema struct {
	Name       string
	Definition map[string]any
}

// ModesSchema matches GET /api/modes.
var ModesSchema = &Schema{
	Name: "modes",
	Definition: map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type":     "object",
			"required": []string{"name", "has_digits", "has_difficulties"},
			"properties": map[string]any{
				"name":             map[string]any{"type": "string"},
				"has_digits":       map[string]any{"type": "boolean"},
				"has_difficulties": map[string]any{"type": "boolean"},
			},
		},
	},
}

// OptionsSchema matches the digit and difficulty listings.
var OptionsSchema = &Schema{
	Name: "options",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	},
}

// QuestionSchema matches GET /api/question/{mode}/{setting}. Matrix
// questions must carry dimensions and a nested integer answer.
var QuestionSchema = &Schema{
	Name: "question",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"question", "answer", "mode_type"},
		"properties": map[string]any{
			"question":  map[string]any{"type": "string"},
			"mode_type": map[string]any{"type": "string", "enum": []string{"scalar", "matrix"}},
			"answer": map[string]any{
				"oneOf": []any{
					map[string]any{"type": "integer"},
					map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "array",
							"minItems": 1,
							"items":    map[string]any{"type": "integer"},
						},
					},
				},
			},
			"dimensions": map[string]any{
				"type":     "object",
				"required": []string{"rows", "cols"},
				"properties": map[string]any{
					"rows": map[string]any{"type": "integer", "minimum": 1},
					"cols": map[string]any{"type": "integer", "minimum": 1},
				},
			},
		},
		"if": map[string]any{
			"properties": map[string]any{"mode_type": map[string]any{"const": "matrix"}},
		},
		"then": map[string]any{
			"required": []string{"dimensions"},
			"properties": map[string]any{
				"answer": map[string]any{"type": "array"},
			},
		},
		"else": map[string]any{
			"properties": map[string]any{
				"answer": map[string]any{"type": "integer"},
			},
		},
	},
}

var schemaCache sync.Map // map[string]*jsonschema.Schema

// validatePayload checks raw against schema. Failures are *ErrInvalidPayload.
func validatePayload(path string, schema *Schema, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidPayload{Path: path, Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return &ErrInvalidPayload{Path: path, Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidPayload{Path: path, Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://questionsvc/%s.json", schema.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
