package cplx

import (
	"errors"
	"fmt"
)

// FormatError represents malformed input detected at a codec boundary.
//
// Format errors include:
//   - Missing parentheses or comma separator in the text form
//   - A field that does not parse as a finite float64
//   - Trailing non-whitespace content after the closing parenthesis
//   - A wire buffer with fewer than WireSize bytes remaining
//
// Format errors are raised synchronously by Parse and Decode and never by
// arithmetic, comparison, or aggregation, which are total. The caller (the
// host engine) translates them into a statement failure; there is no
// recoverable path and nothing to retry.
type FormatError struct {
	// Code identifies the error category.
	Code FormatErrorCode

	// Message is a human-readable description.
	Message string

	// Input is the offending input, truncated for display.
	Input string
}

// FormatErrorCode categorizes format errors.
type FormatErrorCode string

const (
	// ErrCodeMalformedText indicates the text form is not "(re,im)".
	ErrCodeMalformedText FormatErrorCode = "MALFORMED_TEXT"

	// ErrCodeBadNumeral indicates a field is not a finite decimal numeral.
	ErrCodeBadNumeral FormatErrorCode = "BAD_NUMERAL"

	// ErrCodeTrailingGarbage indicates content after the closing parenthesis.
	ErrCodeTrailingGarbage FormatErrorCode = "TRAILING_GARBAGE"

	// ErrCodeShortBuffer indicates a wire buffer with fewer than 16 bytes.
	ErrCodeShortBuffer FormatErrorCode = "SHORT_BUFFER"
)

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s: %s (input=%q)", e.Code, e.Message, e.Input)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsFormatError returns true if err is a codec format error.
// Uses errors.As to handle wrapped errors.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

const maxErrInput = 64

func newFormatError(code FormatErrorCode, message, input string) *FormatError {
	if len(input) > maxErrInput {
		input = input[:maxErrInput] + "..."
	}
	return &FormatError{Code: code, Message: message, Input: input}
}
