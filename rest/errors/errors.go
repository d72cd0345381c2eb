package errors

import (
	"errors"
	"net/http"
)

// NotFoundError reports an unknown resource or row.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string {
	return e.msg
}

func NewNotFoundError(text string) error {
	return &NotFoundError{text}
}

// InternalError reports a failure the client cannot correct. Its message is
// safe to return in a response; the cause is only meant for logs.
type InternalError struct {
	msg   string
	cause error
}

func (e *InternalError) Error() string {
	return e.msg
}

func (e *InternalError) Unwrap() error {
	return e.cause
}

func NewInternalError(text string, cause error) error {
	return &InternalError{msg: text, cause: cause}
}

// StatusCode maps an error to the HTTP status of its response.
func StatusCode(err error) int {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
