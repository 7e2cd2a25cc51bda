package dispatch

import (
	"errors"
	"fmt"
)

// CallError represents a failure to dispatch a function call. Codec format
// errors from inside an implementation are NOT CallErrors; they pass
// through unwrapped so callers can still detect them with
// cplx.IsFormatError.
type CallError struct {
	// Code identifies the error category.
	Code CallErrorCode

	// Message is a human-readable description.
	Message string

	// Function names the function being called.
	Function string
}

// CallErrorCode categorizes dispatch errors.
type CallErrorCode string

const (
	// ErrCodeUnknownFunction indicates the name is not in the registry.
	ErrCodeUnknownFunction CallErrorCode = "UNKNOWN_FUNCTION"

	// ErrCodeBadArgument indicates an argument count or payload type that
	// does not fit the implementation's signature.
	ErrCodeBadArgument CallErrorCode = "BAD_ARGUMENT"

	// ErrCodeUnsupportedImpl indicates an implementation reference with a
	// Go signature the dispatcher cannot drive.
	ErrCodeUnsupportedImpl CallErrorCode = "UNSUPPORTED_IMPL"

	// ErrCodeUnknownAggregate indicates the aggregate name is not
	// registered.
	ErrCodeUnknownAggregate CallErrorCode = "UNKNOWN_AGGREGATE"
)

// Error implements the error interface.
func (e *CallError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("%s: %s (function=%s)", e.Code, e.Message, e.Function)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCallError returns true if err is a dispatch error.
// Uses errors.As to handle wrapped errors.
func IsCallError(err error) bool {
	var ce *CallError
	return errors.As(err, &ce)
}
