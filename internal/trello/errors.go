package trello

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingCredentials is returned when key, token or board id is empty
var ErrMissingCredentials = errors.New("trello api key, token and board id are required")

// APIError is a non-success response from the Trello API.
// URL never contains credentials.
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("trello API error (status %d) for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("trello API error (status %d) for %s: %s", e.StatusCode, e.URL, e.Message)
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether the API rejected the credentials
func IsUnauthorized(err error) bool {
	s := statusOf(err)
	return s == http.StatusUnauthorized || s == http.StatusForbidden
}

// IsRateLimited reports whether the API throttled the request
func IsRateLimited(err error) bool {
	return statusOf(err) == http.StatusTooManyRequests
}
