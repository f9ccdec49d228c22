package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError carries the HTTP status and server-provided message of a
// failed request.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// IsNotFound reports whether the error is an APIError with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether the error is an APIError with status 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// newAPIError builds an APIError from a non-2xx response, preferring
// the server's JSON message body and falling back to raw text.
func newAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	if jsonErr := json.Unmarshal(body, apiErr); jsonErr != nil || apiErr.Message == "" {
		apiErr.Message = string(body)
	}
	return apiErr
}
