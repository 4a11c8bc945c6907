package llm

import "fmt"

// UpstreamError reports a failed provider call. StatusCode carries the
// provider's HTTP status so the server can relay it instead of collapsing
// everything to 500.
type UpstreamError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream call failed (status %d): %s: %v", e.StatusCode, e.Message, e.Cause)
	}
	return fmt.Sprintf("upstream call failed (status %d): %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// EmptyResponseError indicates the provider answered successfully but with
// no usable text content.
type EmptyResponseError struct {
	Model string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("model %s returned an empty response", e.Model)
}
