package domain

import (
	"errors"
	"fmt"
)

// ValidationError aborts an operation before any mutation: malformed
// URLs, malformed import files, unknown bundle versions.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a typed validation error.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation checks whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// HostCallError wraps the failure of a single host API call. It is
// caught at the smallest enclosing unit (one window of a replay, one
// tab of a batch) so the remaining batch continues.
type HostCallError struct {
	Op  string
	Err error
}

func (e *HostCallError) Error() string {
	return fmt.Sprintf("host call %s: %v", e.Op, e.Err)
}

func (e *HostCallError) Unwrap() error {
	return e.Err
}

// NewHostCallError creates a typed host call error.
func NewHostCallError(op string, err error) error {
	return &HostCallError{Op: op, Err: err}
}

// PartialFailure summarizes a batch with per-item outcomes. Batches
// report counts instead of failing hard when some items succeeded.
type PartialFailure struct {
	Done   int
	Failed int
}

// Ok reports whether every item succeeded.
func (p PartialFailure) Ok() bool { return p.Failed == 0 }

func (p PartialFailure) String() string {
	if p.Ok() {
		return fmt.Sprintf("%d done", p.Done)
	}
	return fmt.Sprintf("%d done, %d failed", p.Done, p.Failed)
}
