package booking

import (
	"errors"
	"fmt"
)

// Stable error codes surfaced to API clients.
const (
	CodeNotFound          = "NotFound"
	CodeUnauthorized      = "Unauthorized"
	CodeWrongKind         = "WrongKind"
	CodeInvalidArgument   = "InvalidArgument"
	CodeConflict          = "Conflict"
	CodeStateInvalid      = "StateInvalid"
	CodePaymentIncomplete = "PaymentIncomplete"
	CodeProcessorError    = "ProcessorError"
	CodeTransient         = "Transient"
	CodeGone              = "Gone"
)

// Error carries a stable code alongside a human-readable message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func newNotFound(format string, args ...any) *Error {
	return newError(CodeNotFound, format, args...)
}

func newUnauthorized(format string, args ...any) *Error {
	return newError(CodeUnauthorized, format, args...)
}

func newWrongKind(format string, args ...any) *Error {
	return newError(CodeWrongKind, format, args...)
}

func newInvalidArgument(format string, args ...any) *Error {
	return newError(CodeInvalidArgument, format, args...)
}

func newConflict(format string, args ...any) *Error {
	return newError(CodeConflict, format, args...)
}

func newStateInvalid(format string, args ...any) *Error {
	return newError(CodeStateInvalid, format, args...)
}

func newPaymentIncomplete(format string, args ...any) *Error {
	return newError(CodePaymentIncomplete, format, args...)
}

func newProcessorError(format string, args ...any) *Error {
	return newError(CodeProcessorError, format, args...)
}

func newTransient(format string, args ...any) *Error {
	return newError(CodeTransient, format, args...)
}

func newGone(format string, args ...any) *Error {
	return newError(CodeGone, format, args...)
}

// AsError extracts the engine error from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the stable code of err, or CodeTransient for unclassified errors.
func CodeOf(err error) string {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return CodeTransient
}
