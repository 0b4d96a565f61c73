package models

import (
	"errors"
	"fmt"
)

// ErrValidation marks malformed or missing input. Every validation failure
// below wraps it so callers can test with errors.Is(err, ErrValidation).
var ErrValidation = errors.New("validation failed")

var (
	// ErrInvalidRange indicates an unparsable bound or end before start.
	ErrInvalidRange = fmt.Errorf("%w: invalid range", ErrValidation)
	// ErrClientNotFound indicates a client id supplied by the caller does not exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrDuplicateClient indicates another visible client already uses the name.
	ErrDuplicateClient = errors.New("client already exists")
	// ErrNotFound indicates the addressed receiving or sale does not exist.
	ErrNotFound = errors.New("not found")
)

// NewValidationError wraps ErrValidation with a human readable reason.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ReferenceError reports a stored receiving whose client reference does not
// resolve. It signals a data integrity problem rather than bad input.
type ReferenceError struct {
	ReceivingID string
	ClientID    string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("receiving %s references unknown client %s", e.ReceivingID, e.ClientID)
}

// EmissionError reports a failure while serializing or writing a document.
type EmissionError struct {
	Stage string
	Err   error
}

func (e *EmissionError) Error() string {
	return fmt.Sprintf("emit workbook (%s): %v", e.Stage, e.Err)
}

func (e *EmissionError) Unwrap() error {
	return e.Err
}
