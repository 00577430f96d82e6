package llm

import (
	"errors"
	"fmt"
)

// Failure kinds. Every adapter and validator operation fails with exactly one
// of these, possibly wrapped in an *APIError.
var (
	ErrMissingCredential = errors.New("missing API key")
	ErrInvalidTimezone   = errors.New("invalid timezone")
	ErrRequestFailed     = errors.New("request failed")
	ErrTimeout           = errors.New("request timed out")
	ErrEmptyResponse     = errors.New("empty response from model")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrNoModelsFound     = errors.New("no models found")
	ErrValidationFailed  = errors.New("validation failed")
)

// APIError carries upstream details for a failure kind.
// It unwraps to both Kind and Err.
type APIError struct {
	Kind       error
	StatusCode int    // upstream HTTP status, 0 when none was received
	Body       string // raw upstream body or model output, when available
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Kind.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s. Response: %s", msg, e.Body)
	}
	return msg
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

var kindNames = []struct {
	err  error
	name string
}{
	{ErrMissingCredential, "missing_credential"},
	{ErrInvalidTimezone, "invalid_timezone"},
	{ErrTimeout, "timeout"},
	{ErrRequestFailed, "request_failed"},
	{ErrEmptyResponse, "empty_response"},
	{ErrMalformedResponse, "malformed_response"},
	{ErrNoModelsFound, "no_models_found"},
	{ErrValidationFailed, "validation_failed"},
}

// KindOf returns the snake_case name of the failure kind of err,
// or "internal" when err is outside the taxonomy.
func KindOf(err error) string {
	for _, k := range kindNames {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "internal"
}
