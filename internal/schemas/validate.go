// Package schemas provides JSON Schema validation for the engine's
// structured data files: the trained pipeline artifact and the skill
// dictionary. Schemas are embedded at compile time so validation works
// regardless of working directory.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("%s validation failed: %s", e.Schema, strings.Join(msgs, "; "))
}

// ValidateArtifact validates a serialized pipeline artifact document.
func ValidateArtifact(doc []byte) error {
	return validate("pipeline_artifact.schema.json", gojsonschema.NewBytesLoader(doc))
}

// ValidateDictionary validates a decoded skill dictionary. The value is
// round-tripped through JSON since the dictionary ships as YAML.
func ValidateDictionary(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode dictionary for validation: %w", err)
	}
	return validate("skill_dictionary.schema.json", gojsonschema.NewBytesLoader(data))
}

func validate(schemaName string, docLoader gojsonschema.JSONLoader) error {
	schemaData, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", schemaName, err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaData), docLoader)
	if err != nil {
		return fmt.Errorf("schema validation error for %s: %w", schemaName, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: schemaName}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}
