package errors

import (
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from a tracker. The status decides which
// sentinel it matches: 429 is ErrRateLimited, 401 and 403 are
// ErrUnauthorized, 5xx is ErrSourceUnavailable.
type APIError struct {
	Source     string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// NewAPIError returns an APIError without an endpoint or cause.
func NewAPIError(source string, statusCode int, message string) *APIError {
	return &APIError{Source: source, StatusCode: statusCode, Message: message}
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s API: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("%s API returned %d: %s", e.Source, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrSourceUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// FetchError is how a run reports that the tracker could not be read. A run
// that returns one has not touched the local store.
type FetchError struct {
	Source string
	Err    error
}

// NewFetchError wraps err as a fetch failure for source.
func NewFetchError(source string, err error) *FetchError {
	return &FetchError{Source: source, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch from %s failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }
