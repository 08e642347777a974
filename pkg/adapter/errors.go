package adapter

import (
	"errors"
	"fmt"
)

// Code identifies a class of connector failure.
type Code string

// Failure classes reported by connectors.
const (
	CodeMissingDependency Code = "MISSING_DEPENDENCY"
	CodeConfig            Code = "CONFIG_ERROR"
	CodeConnectionFailed  Code = "CONNECTION_FAILED"
	CodeExecution         Code = "EXECUTION_ERROR"
	CodeValidation        Code = "VALIDATION_ERROR"
)

// Sentinels for errors.Is matching against a Code.
var (
	ErrMissingDependency = &Error{Code: CodeMissingDependency}
	ErrConfig            = &Error{Code: CodeConfig}
	ErrConnectionFailed  = &Error{Code: CodeConnectionFailed}
	ErrExecution         = &Error{Code: CodeExecution}
	ErrValidation        = &Error{Code: CodeValidation}
)

// Error is a coded connector failure. Err, when set, is the underlying cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// NewError returns an Error with a formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError returns an Error whose message is followed by the cause's text.
func WrapError(code Code, err error, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Message == "" && e.Err == nil:
		return string(e.Code)
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	default:
		return e.Message + ": " + e.Err.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the Code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
