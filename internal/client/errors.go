package client

import (
	"errors"
	"fmt"
)

// APIError is a structured rejection from a backend service: a non-2xx
// response whose body carries an {"error": ...} field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server rejected request with status %d: %s", e.StatusCode, e.Message)
}

// IsServerRejection reports whether err carries a structured server error,
// as opposed to a transport failure.
func IsServerRejection(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
