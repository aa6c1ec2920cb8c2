package propagation

import (
	"testing"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func dated(id, date string) *domain.Version {
	d := testutil.Date(date)
	return &domain.Version{ID: id, EffectiveDate: &d}
}

func TestDeriveDates_TimelineExample(t *testing.T) {
	v0 := dated("v0", "2025-10-01")
	v1 := dated("v1", "2025-10-10")
	v2 := dated("v2", "2025-10-15")
	timeline := []*domain.Version{v0, v1, v2}

	got, ok := DeriveDates(v2, timeline)
	assert.True(t, ok)
	assert.Equal(t, "2025-10-10", got.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-10-15", got.Due.Format("2006-01-02"))

	got, ok = DeriveDates(v0, timeline)
	assert.True(t, ok)
	assert.Equal(t, "2025-10-01", got.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-10-01", got.Due.Format("2006-01-02"))
}

func TestDeriveDates_TimelineOrderIrrelevant(t *testing.T) {
	v0 := dated("v0", "2025-10-01")
	v1 := dated("v1", "2025-10-10")
	v2 := dated("v2", "2025-10-15")

	got, ok := DeriveDates(v2, []*domain.Version{v2, v0, v1})
	assert.True(t, ok)
	assert.Equal(t, "2025-10-10", got.Start.Format("2006-01-02"))
}

func TestDeriveDates_SameDateIsNotPreceding(t *testing.T) {
	a := dated("a", "2025-10-01")
	b := dated("b", "2025-10-15")
	c := dated("c", "2025-10-15")

	got, ok := DeriveDates(c, []*domain.Version{a, b, c})
	assert.True(t, ok)
	assert.Equal(t, "2025-10-01", got.Start.Format("2006-01-02"), "b shares c's date so it does not precede it")

	got, ok = DeriveDates(b, []*domain.Version{b, c})
	assert.True(t, ok)
	assert.Equal(t, got.Due, got.Start)
}

func TestDeriveDates_NoDates(t *testing.T) {
	_, ok := DeriveDates(nil, nil)
	assert.False(t, ok)

	_, ok = DeriveDates(&domain.Version{ID: "undated"}, []*domain.Version{dated("a", "2025-01-01")})
	assert.False(t, ok)
}

func TestDeriveDates_IgnoresUndatedTimelineEntries(t *testing.T) {
	v := dated("v", "2025-06-01")
	got, ok := DeriveDates(v, []*domain.Version{{ID: "x"}, v})
	assert.True(t, ok)
	assert.Equal(t, got.Due, got.Start)
}
