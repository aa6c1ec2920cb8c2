package hierarchy

import (
	"strings"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

// Code identifies why a parent assignment was rejected.
type Code string

const (
	CodeUnknownTracker Code = "UNKNOWN_TRACKER"
	CodeRootHasParent  Code = "ROOT_HAS_PARENT"
	CodeInvalidParent  Code = "INVALID_PARENT"
)

// Error is a rejected parent assignment. Every Error matches
// domain.ErrInvalidParent under errors.Is.
type Error struct {
	Code    Code   `json:"code"`
	IssueID string `json:"issue_id,omitempty"`
	What    string `json:"what"`
	Fix     string `json:"fix,omitempty"`
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.What)
	return b.String()
}

// Unwrap returns domain.ErrInvalidParent.
func (e *Error) Unwrap() error {
	return domain.ErrInvalidParent
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// UserMessage returns the error with its remediation hint for CLI output.
func (e *Error) UserMessage() string {
	if e.Fix == "" {
		return "Error: " + e.What
	}
	return "Error: " + e.What + "\n\nFix: " + e.Fix
}
