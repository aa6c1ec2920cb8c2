package propagation

import (
	"time"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

// ScheduleDates is a derived start/due pair.
type ScheduleDates struct {
	Start time.Time
	Due   time.Time
}

// DeriveDates computes the schedule implied by assigning version. Due is the
// version's effective date. Start is the latest effective date in timeline
// strictly earlier than due, or due itself when no version precedes it. A
// version released on the same day as due does not precede it, so two
// same-day releases both yield start == due.
// It reports false when version is nil or undated; callers then leave the
// issue's dates untouched.
func DeriveDates(version *domain.Version, timeline []*domain.Version) (ScheduleDates, bool) {
	if !version.HasEffectiveDate() {
		return ScheduleDates{}, false
	}
	due := *version.EffectiveDate
	start := due
	found := false
	for _, v := range timeline {
		if !v.HasEffectiveDate() {
			continue
		}
		d := *v.EffectiveDate
		if !d.Before(due) {
			continue
		}
		if !found || d.After(start) {
			start = d
			found = true
		}
	}
	return ScheduleDates{Start: start, Due: due}, true
}
