package client

import (
	"errors"
	"fmt"
)

const (
	EmptyQueryMessage   = "please enter a search query"
	UnknownErrorMessage = "an unknown error occurred"
)

var ErrSearcherRequired = errors.New("searcher is required")

// APIError is a non-2xx answer from the search proxy. Message is the proxy's
// "error" field when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: %d", e.StatusCode)
}

// failureMessage picks the text shown for a failed search
func failureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return UnknownErrorMessage
}
