// Package schemas provides JSON Schema validation for Scoring Service responses.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// MatchResponseSchema is the schema for POST /match/ responses.
//
//go:embed match_response.schema.json
var MatchResponseSchema string

// CompareResponseSchema is the schema for POST /compare-multiple/ responses.
//
//go:embed compare_response.schema.json
var CompareResponseSchema string

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// compiled schemas are built once; the embedded sources never change.
var (
	matchSchema   = mustCompile("match_response", MatchResponseSchema)
	compareSchema = mustCompile("compare_response", CompareResponseSchema)
)

func mustCompile(name, source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(&SchemaLoadError{Name: name, Message: "invalid embedded schema", Cause: err})
	}
	return schema
}

// ValidateMatchResponse validates a /match/ response body.
func ValidateMatchResponse(body []byte) error {
	return validate(matchSchema, body)
}

// ValidateCompareResponse validates a /compare-multiple/ response body.
func ValidateCompareResponse(body []byte) error {
	return validate(compareSchema, body)
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		// The document itself could not be parsed as JSON.
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
