// Package schemas provides JSON Schema validation for LLM response payloads.
// Schemas are embedded at compile time so validation never depends on the
// working directory.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema filenames accepted by Validate.
const (
	JDAnalysisSchema     = "jd_analysis.schema.json"
	SectionContentSchema = "section_content.schema.json"
)

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "validation against %s failed:\n", e.Schema)
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Validate checks a JSON document against one of the embedded schemas.
// Returns a *ValidationError when the document does not conform.
func Validate(schemaName, document string) error {
	schemaBytes, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", schemaName, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewStringLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate against %s: %w", schemaName, err)
	}

	if !result.Valid() {
		ve := &ValidationError{Schema: schemaName}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return ve
	}

	return nil
}
