package apiclient

import "fmt"

// NetworkError wraps a transport-level failure (connection refused, DNS,
// interrupted body) before any HTTP status was obtained.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response from a backend. Message carries the
// envelope's message when the body was decodable, otherwise it is empty and
// Error falls back to a generic string.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
