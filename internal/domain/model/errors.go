package model

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError reports that a GitHub API call did not return 200 OK. It is
// always fatal for a gate: no partial result is produced.
type APIError struct {
	Endpoint   string // e.g. "owner/repo/commits/abc123/check-runs"
	StatusCode int    // 0 when no response was received.
	Err        error  // Underlying transport or decoding error, if any.
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("github api %s: no response: %v", e.Endpoint, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("github api %s: bad response %d %s: %v", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}
	return fmt.Sprintf("github api %s: bad response %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err wraps an *APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
