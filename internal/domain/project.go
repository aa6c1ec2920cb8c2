package domain

import (
	"fmt"
	"regexp"
	"time"
)

var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,99}$`)

type Project struct {
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidateIdentifier checks that Identifier is non-empty and matches the
// required format: a lowercase letter followed by lowercase letters, digits,
// dashes or underscores (e.g. web-shop, ladder_2).
func (p *Project) ValidateIdentifier() error {
	if p.Identifier == "" {
		return fmt.Errorf("project identifier is required (use --identifier flag)")
	}
	if !identifierPattern.MatchString(p.Identifier) {
		return fmt.Errorf("project identifier %q must start with a lowercase letter and contain only a-z, 0-9, '-' or '_'", p.Identifier)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers Identifier; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.Identifier != "" {
		return p.Identifier
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
