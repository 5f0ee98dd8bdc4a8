// internal/pkg/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError is a user-correctable input error. It is always reported
// before any persistence happens, so callers can safely retry after fixing
// the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidation creates a validation error for a field
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError reports a state-machine violation. CurrentState carries the
// authoritative persisted state so the caller can resync.
type ConflictError struct {
	Message      string
	CurrentState string
}

func (e *ConflictError) Error() string {
	if e.CurrentState != "" {
		return fmt.Sprintf("%s (current state: %s)", e.Message, e.CurrentState)
	}
	return e.Message
}

// NewConflict creates a conflict error with the current authoritative state
func NewConflict(message, currentState string) *ConflictError {
	return &ConflictError{Message: message, CurrentState: currentState}
}

// ReconciliationError reports an internal invariant violation between
// stored and recomputed monetary totals. It must never be swallowed.
type ReconciliationError struct {
	OrderID  uint
	Stored   int64
	Computed int64
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("order %d totals do not reconcile: stored=%d computed=%d (paise)",
		e.OrderID, e.Stored, e.Computed)
}

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsReconciliation reports whether err is a ReconciliationError
func IsReconciliation(err error) bool {
	var re *ReconciliationError
	return errors.As(err, &re)
}
