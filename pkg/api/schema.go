package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ResponseKind identifies a backend response shape
type ResponseKind string

const (
	ResponseLoadRepo ResponseKind = "load_repo"
	ResponseAsk      ResponseKind = "ask"
	ResponseSummary  ResponseKind = "process_repo"
	ResponseHealth   ResponseKind = "health"
)

// responseSchemas holds JSON Schemas for the backend's success bodies.
// Used by the doctor checks to catch backends that answer 200 with a
// shape the client cannot render.
var responseSchemas = map[ResponseKind]map[string]any{
	ResponseLoadRepo: {
		"type":     "object",
		"required": []string{"message"},
		"properties": map[string]any{
			"message":  map[string]any{"type": "string"},
			"metadata": map[string]any{"type": "object"},
			"files": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	},
	ResponseAsk: {
		"type":     "object",
		"required": []string{"answer"},
		"properties": map[string]any{
			"answer": map[string]any{"type": "string"},
		},
	},
	ResponseSummary: {
		"type":     "object",
		"required": []string{"summary"},
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
		},
	},
	ResponseHealth: {
		"type":     "object",
		"required": []string{"status"},
		"properties": map[string]any{
			"status":   map[string]any{"type": "string"},
			"has_repo": map[string]any{"type": "boolean"},
		},
	},
}

// ValidateResponse checks a raw response body against the schema for the
// given kind. Returns nil when the body conforms.
func ValidateResponse(kind ResponseKind, body []byte) error {
	schema, ok := responseSchemas[kind]
	if !ok {
		return fmt.Errorf("unknown response kind: %s", kind)
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		details := make([]string, len(result.Errors()))
		for i, verr := range result.Errors() {
			details[i] = verr.String()
		}
		return fmt.Errorf("response does not match %s schema: %s", kind, strings.Join(details, "; "))
	}

	return nil
}
