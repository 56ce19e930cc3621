package errors

import "net/http"

// HTTPError pairs the message returned to API clients with its response status.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// Statuses the reservations API answers with.
var (
	BadRequest = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	Conflict   = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	Internal   = func(msg string) *HTTPError { return NewHTTPError(http.StatusInternalServerError, msg) }
)
