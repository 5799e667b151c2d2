package gpsdozor

import (
	"errors"
	"fmt"
)

// RequestError reports a response whose status was outside the 2xx range.
type RequestError struct {
	StatusCode int
	// Path is the request path relative to the base URL, query included.
	Path string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("gpsdozor: status %d for path %s", e.StatusCode, e.Path)
}

// StatusCode extracts the HTTP status from err when it wraps a *RequestError.
func StatusCode(err error) (int, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode, true
	}
	return 0, false
}
