package catalog

import (
	"errors"
	"fmt"
)

// ValidationError represents a defect detected while validating a registry.
//
// Validation errors include:
//   - Duplicate or dangling name references between descriptors
//   - An incomplete or mis-numbered strategy table
//   - Commutator/negator links that are not mutual
//   - A boolean operator whose result disagrees with the comparator's sign
//
// The last category is the one worth paying for at registration time: the
// host would never detect it on its own, it would just return wrong rows
// from index-assisted scans.
type ValidationError struct {
	// Code identifies the error category.
	Code ValidationErrorCode

	// Message is a human-readable description.
	Message string

	// Subject names the descriptor at fault (type, function, operator
	// symbol, opclass).
	Subject string
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode string

const (
	// ErrCodeDuplicate indicates a name or symbol registered twice.
	ErrCodeDuplicate ValidationErrorCode = "DUPLICATE"

	// ErrCodeDangling indicates a reference to an unregistered name.
	ErrCodeDangling ValidationErrorCode = "DANGLING_REFERENCE"

	// ErrCodeBadStrategy indicates a strategy table that is not exactly
	// the five tree strategies 1..5.
	ErrCodeBadStrategy ValidationErrorCode = "BAD_STRATEGY_TABLE"

	// ErrCodeBadLink indicates a commutator or negator link that is not
	// mutual between the two operators.
	ErrCodeBadLink ValidationErrorCode = "BAD_LINK"

	// ErrCodeBadImpl indicates an implementation reference with the wrong
	// Go signature for its role.
	ErrCodeBadImpl ValidationErrorCode = "BAD_IMPL"

	// ErrCodeInconsistent indicates a boolean operator whose result
	// disagrees with the comparator over the probe grid.
	ErrCodeInconsistent ValidationErrorCode = "COMPARATOR_MISMATCH"

	// ErrCodeBadType indicates a type record with an invalid size or
	// alignment, or a codec reference that does not resolve.
	ErrCodeBadType ValidationErrorCode = "BAD_TYPE"
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s: %s (subject=%s)", e.Code, e.Message, e.Subject)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsValidationError returns true if err is a registry validation error.
// Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
