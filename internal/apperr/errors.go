package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for the HTTP boundary.
type Code string

const (
	ErrInternal     Code = "INTERNAL_ERROR"
	ErrInvalidInput Code = "INVALID_INPUT"
	ErrNoFile       Code = "NO_FILE"
	ErrNotFound     Code = "NOT_FOUND"
	ErrUnauthorized Code = "UNAUTHORIZED"
	ErrTooLarge     Code = "TOO_LARGE"
)

type Error struct {
	Code    Code
	Message string // shown to the client
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NoFile() *Error { return New(ErrNoFile, "No file uploaded.", nil) }

func NotFound(message string) *Error { return New(ErrNotFound, message, nil) }

func InvalidInput(message string, err error) *Error { return New(ErrInvalidInput, message, err) }

func Unauthorized(message string) *Error { return New(ErrUnauthorized, message, nil) }

func TooLarge(err error) *Error { return New(ErrTooLarge, "File too large.", err) }

func Internal(message string, err error) *Error { return New(ErrInternal, message, err) }

// StatusOf maps err to an HTTP status; unclassified errors are 500.
func StatusOf(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case ErrInvalidInput, ErrNoFile:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}

// Write sends err as a plain-text response.
func Write(w http.ResponseWriter, err error) {
	http.Error(w, Message(err), StatusOf(err))
}
