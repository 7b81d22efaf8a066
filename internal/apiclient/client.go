// Package apiclient is the fetch helper shared by every domain store: it
// builds a JSON request against one of the clinic backends, attaches the
// bearer token when one is present, and classifies the outcome by transport
// status. Success or failure is never decided by inspecting the envelope.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Envelope is the uniform {data, message} wrapper every backend response
// is expected to use.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Client wraps the shared http.Client used for every backend call.
type Client struct {
	http *http.Client
}

// New creates a client. A zero timeout means no client-side timeout, which
// matches the original behavior of the frontend this replaces; pass a
// positive value to bound hung requests.
func New(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Do executes a single backend call and decodes the envelope's data field
// into T. Mutating requests carry the bearer token whenever one is present;
// the token is never assumed valid here, a rejected call surfaces as an
// *HTTPError like any other failure.
func Do[T any](ctx context.Context, c *Client, method, url string, body any, token string) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return zero, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		httpErr := &HTTPError{Status: resp.StatusCode}
		var env Envelope[json.RawMessage]
		if json.Unmarshal(raw, &env) == nil {
			httpErr.Message = env.Message
		}
		return zero, httpErr
	}

	var env Envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		// Some backends answer deletes with an empty body.
		if errors.Is(err, io.EOF) {
			return zero, nil
		}
		return zero, fmt.Errorf("failed to decode response: %w", err)
	}

	return env.Data, nil
}
