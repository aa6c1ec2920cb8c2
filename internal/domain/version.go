package domain

import "time"

// Version is a release of a project. Only versions with an EffectiveDate take
// part in date derivation.
type Version struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"project_id"`
	Name          string     `json:"name"`
	EffectiveDate *time.Time `json:"effective_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HasEffectiveDate reports whether the version is placed on the timeline.
func (v *Version) HasEffectiveDate() bool {
	return v != nil && v.EffectiveDate != nil
}
