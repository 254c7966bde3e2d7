// Package errors gives failures a machine-readable Code so callers can tell
// invariant violations (a missing id, a relation outside the vocabulary)
// apart from adapter failures (storage, parsing, configuration).
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an Error.
type Code string

const (
	CodeUnknown Code = "unknown"

	// Graph model invariants.
	CodeNotFound           Code = "not_found"
	CodeInvalidComposition Code = "invalid_composition"
	CodeInvalidDiagram     Code = "invalid_diagram"
	CodeInvalidNodeData    Code = "invalid_node_data"

	CodeLayoutFailed Code = "layout_failed"

	// Adapters.
	CodeStorageFailed      Code = "storage_failed"
	CodeParseFailed        Code = "parse_failed"
	CodeConfigurationError Code = "configuration_error"
)

// Error carries a Code, a human message and the underlying cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e Error) Unwrap() error {
	return e.Err
}

// Is matches a bare Error{Code: c} target, so errors.Is(err, Error{Code: c})
// works like IsCode.
func (e Error) Is(target error) bool {
	switch t := target.(type) {
	case Error:
		return t.Message == "" && t.Err == nil && t.Code == e.Code
	case *Error:
		return t != nil && t.Message == "" && t.Err == nil && t.Code == e.Code
	}
	return false
}

// New returns an Error with an explicit message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// Newf formats the message.
func Newf(code Code, err error, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// Wrap prefixes err's text with op. A nil err yields nil.
func Wrap(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return Error{Code: code, Message: op + ": " + err.Error(), Err: err}
}

// CodeOf returns the code of the outermost Error in err's chain, by value or
// by pointer.
func CodeOf(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case Error:
			return e.Code
		case *Error:
			if e != nil {
				return e.Code
			}
		}
		err = errors.Unwrap(err)
	}
	return CodeUnknown
}

// IsCode reports whether err's outermost Error has code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
