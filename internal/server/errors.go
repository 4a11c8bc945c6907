// Package server provides the HTTP API for the portfolio generator.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/folioflow/internal/extraction"
	"github.com/jonathan/folioflow/internal/llm"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnsupportedMedia indicates an upload of the wrong content type.
type ErrUnsupportedMedia struct {
	Expected string
	Got      string
}

func (e *ErrUnsupportedMedia) Error() string {
	return fmt.Sprintf("unsupported media type: expected %s, got %s", e.Expected, e.Got)
}

// ErrTooLarge indicates an upload over the size cap.
type ErrTooLarge struct {
	Limit int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds limit of %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Upstream model errors keep their original status so the client sees the
// provider's verdict; extraction failures are the client's fault except for
// engine problems.
func HTTPStatus(err error) int {
	var validation *ErrValidation
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}

	var media *ErrUnsupportedMedia
	if errors.As(err, &media) {
		return http.StatusUnsupportedMediaType
	}

	var tooLarge *ErrTooLarge
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) && upstream.StatusCode >= 400 {
		return upstream.StatusCode
	}

	var extractionErr *extraction.ExtractionError
	if errors.As(err, &extractionErr) {
		switch extractionErr.Kind {
		case extraction.KindInvalid, extraction.KindEncrypted, extraction.KindEmpty:
			return http.StatusBadRequest
		default:
			return http.StatusInternalServerError
		}
	}

	return http.StatusInternalServerError
}
