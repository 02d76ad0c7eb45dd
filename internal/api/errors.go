package api

import (
	"fmt"
	"net/http"
)

// StatusError is returned when the server answers with a non-2xx status. It
// is a distinguishable failure: callers surface it to the view instead of
// silently keeping stale state.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

// IsNotFound reports whether the server answered 404.
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// DecodeError is returned when a response body does not match the expected
// shape. The payload is validated once at the client boundary; nothing
// downstream re-parses it.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
