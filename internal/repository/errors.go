package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation is the root of every write-boundary validation failure.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a rejected write. It wraps ErrValidation.
type ValidationError struct {
	IssueID string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.IssueID == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("issue %s: %s: %s", e.IssueID, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
