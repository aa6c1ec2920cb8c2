package domain

import "strings"

// Setting keys read by the planning core.
const (
	SettingParentIssueDates = "parent_issue_dates"
	settingTrackerPrefix    = "tracker_"
)

// TrackerSettingKey returns the settings key that binds a role to a tracker
// name, e.g. "tracker_user_story".
func TrackerSettingKey(r Role) string {
	return settingTrackerPrefix + r.Key()
}

// SettingDefault returns the built-in value of a setting the planning core
// reads, and false for any other key.
func SettingDefault(key string) (string, bool) {
	if key == SettingParentIssueDates {
		return string(ParentDatesDerived), true
	}
	for _, r := range AllRoles {
		if key == TrackerSettingKey(r) {
			return r.DefaultTracker(), true
		}
	}
	return "", false
}

// IsKnownSetting reports whether key is read by the planning core.
func IsKnownSetting(key string) bool {
	_, ok := SettingDefault(key)
	return ok
}

// IsTrackerSetting reports whether key binds a role to a tracker name.
func IsTrackerSetting(key string) bool {
	return strings.HasPrefix(key, settingTrackerPrefix) && IsKnownSetting(key)
}

// ParentDatesMode controls whether a parent's schedule is computed from its
// children by the store.
type ParentDatesMode string

const (
	ParentDatesDerived     ParentDatesMode = "derived"
	ParentDatesIndependent ParentDatesMode = "independent"
)

// ParseParentDatesMode maps a stored setting value to a mode. Anything other
// than "independent" counts as derived.
func ParseParentDatesMode(s string) ParentDatesMode {
	if ParentDatesMode(s) == ParentDatesIndependent {
		return ParentDatesIndependent
	}
	return ParentDatesDerived
}

// IncompleteReason explains why a subtree is flagged as incomplete.
type IncompleteReason string

const (
	ReasonFeatureWithoutStories IncompleteReason = "FEATURE_WITHOUT_STORIES"
	ReasonStoryWithoutTasks     IncompleteReason = "STORY_WITHOUT_TASKS"
	ReasonStoryWithoutTests     IncompleteReason = "STORY_WITHOUT_TESTS"
)

// IncompleteSubtree pairs an issue with the reason it was flagged.
type IncompleteSubtree struct {
	Issue  *Issue           `json:"issue"`
	Reason IncompleteReason `json:"reason"`
}
