// Package schemas provides JSON Schema validation for the model's structured
// output. Validation here is advisory: the reconciler tolerates any shape, so
// schema findings are surfaced as warnings rather than request failures.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume_response.schema.json
var resumeResponseSchema string

var (
	compileOnce   sync.Once
	compiled      *gojsonschema.Schema
	compileFailed error
)

// FieldError represents a single validation finding at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// CheckResumeResponse validates a raw model document against the embedded
// response schema. It returns the per-field findings; an empty slice means
// the document conforms. The error is reserved for unparseable input or a
// broken schema.
func CheckResumeResponse(raw []byte) ([]FieldError, error) {
	compileOnce.Do(func() {
		compiled, compileFailed = gojsonschema.NewSchema(gojsonschema.NewStringLoader(resumeResponseSchema))
	})
	if compileFailed != nil {
		return nil, &SchemaLoadError{Message: "schema does not compile", Cause: compileFailed}
	}

	result, err := compiled.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Message: "document is not valid JSON", Cause: err}
	}

	if result.Valid() {
		return nil, nil
	}

	findings := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		findings = append(findings, FieldError{Field: field, Message: desc.Description()})
	}
	return findings, nil
}

// Summarize joins findings into one log-friendly line.
func Summarize(findings []FieldError) string {
	parts := make([]string, len(findings))
	for i, f := range findings {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}
