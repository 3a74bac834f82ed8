package rest

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned by a Collection when no entity exists under the
// requested id. The dispatch layer surfaces it as 410 Gone: the id lives in
// the resource's namespace but is not currently retrievable.
var ErrNotFound = errors.New("entity not found")

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// HTTPError is an error with an HTTP status code.
type HTTPError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error returns the error message.
func (e *HTTPError) Error() string { return e.Message }

// StatusCode returns the HTTP status code.
func (e *HTTPError) StatusCode() int { return e.Status }

// Error returns an error with the given HTTP status code and message.
func Error(status int, message string) error {
	return &HTTPError{Status: status, Message: message}
}

// Errorf returns a formatted error with the given HTTP status code.
func Errorf(status int, format string, args ...any) error {
	return &HTTPError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// ErrorStatus extracts the HTTP status code from an error. Returns
// http.StatusInternalServerError if the error does not implement StatusCoder.
func ErrorStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// ConfigError reports invalid Resource configuration. It is returned from
// NewResource and never surfaces at request time: a Resource that
// constructed successfully cannot misfire on configuration grounds.
type ConfigError struct {
	Reason string
}

// Error returns the configuration failure reason.
func (e *ConfigError) Error() string { return "rest: invalid resource configuration: " + e.Reason }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}
