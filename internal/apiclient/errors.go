package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/movie-booking-web/internal/domain"
)

// Error is returned for every failed call. StatusCode is zero when no
// response was received.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}

	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrRecordNotFound:
		return e.StatusCode == http.StatusNotFound
	case domain.ErrBackend:
		return e.StatusCode == 0 || e.StatusCode >= http.StatusInternalServerError
	}

	return false
}

// ErrorMessage returns the message the server attached to err, or fallback
// when there is none.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return fallback
}

type errorEnvelope struct {
	Error string `json:"error"`
}
