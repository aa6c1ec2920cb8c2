package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingDefault(t *testing.T) {
	tests := []struct {
		key   string
		want  string
		known bool
	}{
		{"parent_issue_dates", "derived", true},
		{"tracker_epic", "Epic", true},
		{"tracker_user_story", "UserStory", true},
		{"tracker_bug", "Bug", true},
		{"tracker_milestone", "", false},
		{"colour", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			got, ok := SettingDefault(tc.key)
			assert.Equal(t, tc.known, ok)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.known, IsKnownSetting(tc.key))
		})
	}
}

func TestIsTrackerSetting(t *testing.T) {
	assert.True(t, IsTrackerSetting("tracker_task"))
	assert.False(t, IsTrackerSetting("tracker_"))
	assert.False(t, IsTrackerSetting("parent_issue_dates"))
}

func TestParseParentDatesMode(t *testing.T) {
	assert.Equal(t, ParentDatesIndependent, ParseParentDatesMode("independent"))
	assert.Equal(t, ParentDatesDerived, ParseParentDatesMode("derived"))
	assert.Equal(t, ParentDatesDerived, ParseParentDatesMode(""))
	assert.Equal(t, ParentDatesDerived, ParseParentDatesMode("Independent"))
}
