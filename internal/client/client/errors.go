package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
)

var (
	ErrValidation      = errors.New("invalid request")
	ErrUnauthorized    = errors.New("invalid email or password")
	ErrUnauthenticated = errors.New("not signed in")
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnexpected      = errors.New("unexpected server response")
)

// ResponseError is a non-2xx answer from the server. It unwraps to one of the
// sentinel errors above.
type ResponseError struct {
	Status  int
	Code    string
	Message string
	kind    error
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d): %s", e.kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d)", e.kind, e.Status)
}

func (e *ResponseError) Unwrap() error { return e.kind }

// statusKind maps an HTTP status to a sentinel. protected selects how 401 is
// read: a rejected token on protected calls, bad credentials otherwise.
func statusKind(status int, protected bool) error {
	switch {
	case status == http.StatusBadRequest:
		return ErrValidation
	case status == http.StatusUnauthorized && protected:
		return ErrUnauthenticated
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrDuplicateEmail
	case status >= http.StatusInternalServerError:
		return ErrUnavailable
	default:
		return ErrUnexpected
	}
}

func newResponseError(status int, body api.ErrorResponse, protected bool) *ResponseError {
	return &ResponseError{
		Status:  status,
		Code:    body.Code,
		Message: body.Message,
		kind:    statusKind(status, protected),
	}
}

// Message returns a short, human-readable description of err. Server-provided
// messages win for client errors; server faults and transport problems get a
// generic line.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var re *ResponseError
	if errors.As(err, &re) && re.Message != "" && re.Status < http.StatusInternalServerError {
		return re.Message
	}

	switch {
	case errors.Is(err, ErrValidation):
		return "Some fields are missing or invalid"
	case errors.Is(err, ErrUnauthorized):
		return "Invalid email or password"
	case errors.Is(err, ErrUnauthenticated):
		return "Your session has expired, please log in again"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrDuplicateEmail):
		return "This email is already registered"
	case errors.Is(err, ErrUnavailable):
		return "The server is unavailable, try again later"
	default:
		return "Something went wrong"
	}
}
