// Package domainerrors carries the error kinds the command-line tools map to
// user-facing messages and exit codes.
//
// Every error that reaches the top-level boundary is an *Error with a Code.
// Infrastructure layers return sentinel errors (see pkg/platform/sentinel);
// services translate those into coded errors here.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies an error kind.
type Code string

const (
	// CodeUsage marks a wrong argument count. The message is the literal
	// usage string.
	CodeUsage Code = "usage"
	// CodeInvalidIdentifier marks a malformed zID.
	CodeInvalidIdentifier Code = "invalid_identifier"
	// CodeInvalidInput marks any other rejected input.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a lookup key the database could not resolve.
	CodeNotFound Code = "not_found"
	// CodeUnavailable marks a database that could not be reached.
	CodeUnavailable Code = "unavailable"
	// CodeTimeout marks a cancelled or expired context.
	CodeTimeout Code = "timeout"
	// CodeInternal marks an unexpected failure.
	CodeInternal Code = "internal"
)

// Error is a coded error with a user-facing message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
// Wrapping nil returns nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the outermost *Error in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// MessageOf returns the user-facing message for err. Coded errors yield their
// message without the wrapped cause; anything else yields err.Error().
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
