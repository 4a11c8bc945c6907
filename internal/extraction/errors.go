package extraction

import "fmt"

// ErrorKind classifies extraction failures. Every PDF-library error is
// mapped into this taxonomy before being surfaced.
type ErrorKind string

const (
	// KindEngine indicates the PDF engine could not be initialized or used.
	KindEngine ErrorKind = "engine"
	// KindInvalid indicates a corrupt or non-PDF input.
	KindInvalid ErrorKind = "invalid"
	// KindEncrypted indicates a password-protected PDF.
	KindEncrypted ErrorKind = "encrypted"
	// KindEmpty indicates a document with no pages or no extractable text.
	KindEmpty ErrorKind = "empty"
	// KindRead indicates an I/O failure reading the input.
	KindRead ErrorKind = "read"
)

// ExtractionError carries a human-readable cause for an aborted extraction.
// No partial state reaches the canonical record when one is returned.
type ExtractionError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, message string, cause error) *ExtractionError {
	return &ExtractionError{Kind: kind, Message: message, Cause: cause}
}
