package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidParent is the root of every hierarchy-validation failure.
var ErrInvalidParent = errors.New("invalid parent")

// Issue is one node of the planning tree. Children are found by reverse
// lookup on ParentID; the tracker resolves to a Role through the project's
// role bindings.
type Issue struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	ParentID  *string    `json:"parent_id,omitempty"`
	Tracker   string     `json:"tracker"`
	Subject   string     `json:"subject"`
	VersionID *string    `json:"version_id,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// HasParent reports whether the issue sits under another issue.
func (i *Issue) HasParent() bool {
	return i.ParentID != nil && *i.ParentID != ""
}

// VersionKey returns the issue's version id, or "" when unversioned.
func (i *Issue) VersionKey() string {
	return NormalizeVersionID(i.VersionID)
}

// NormalizeVersionID collapses nil and blank version references to "".
func NormalizeVersionID(id *string) string {
	if id == nil {
		return ""
	}
	return strings.TrimSpace(*id)
}

// SameVersion compares two version references after normalization.
func SameVersion(a, b *string) bool {
	return NormalizeVersionID(a) == NormalizeVersionID(b)
}

// CreatedBefore orders issues by creation time, falling back to id so the
// order is total.
func CreatedBefore(a, b *Issue) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
