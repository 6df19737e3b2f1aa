// Package apperr holds the error kinds shared by the dashboard services and
// their mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
)

var (
	ErrInvalid     = errors.New("invalid request")
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("directory unavailable")
)

// RemoteError is a failure reported by the member directory.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("directory returned status %d", e.Status)
	}
	return e.Message
}

// Invalid returns an ErrInvalid carrying msg.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// HTTPStatus picks the status code a handler should answer with for err.
func HTTPStatus(err error) int {
	var remote *RemoteError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &remote) && remote.Status >= 400 && remote.Status < 500:
		return remote.Status
	default:
		return http.StatusBadGateway
	}
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// CheckID rejects ids that cannot be placed in a directory URL path.
func CheckID(kind, id string) error {
	if !idPattern.MatchString(id) {
		return Invalid("invalid %s ID %q", kind, id)
	}
	return nil
}
