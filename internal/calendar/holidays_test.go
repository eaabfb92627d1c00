package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHolidays(t *testing.T) {
	set, err := ParseHolidays([]string{"2025-01-01", " 2025-12-25 ", ""})
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(Date(2025, time.December, 25)))
	assert.True(t, set.Contains(time.Date(2025, time.January, 1, 13, 0, 0, 0, time.UTC)))

	_, err = ParseHolidays([]string{"2025-13-01"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holiday 0")
}

func TestHolidaySet_ZeroValue(t *testing.T) {
	var s HolidaySet
	assert.False(t, s.Contains(Date(2025, time.January, 1)))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Sorted())
}

func TestHolidaySet_SortedAndMerge(t *testing.T) {
	s := NewHolidaySet(Date(2025, time.March, 8))
	s.Merge(NewHolidaySet(Date(2025, time.January, 7), Date(2025, time.March, 8)))

	assert.Equal(t, []time.Time{Date(2025, time.January, 7), Date(2025, time.March, 8)}, s.Sorted())
}

func TestNamedHolidays_US(t *testing.T) {
	set, err := NamedHolidays("US", 2025)
	require.NoError(t, err)

	assert.True(t, set.Contains(Date(2025, time.July, 4)), "independence day")
	assert.True(t, set.Contains(Date(2025, time.December, 25)), "christmas")
	assert.True(t, set.Contains(Date(2025, time.November, 27)), "thanksgiving")
	assert.True(t, set.Contains(Date(2026, time.January, 1)), "next new year is included")
	assert.False(t, set.Contains(Date(2025, time.July, 7)))
}

func TestNamedHolidays_Unknown(t *testing.T) {
	_, err := NamedHolidays("atlantis", 2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown holiday calendar")
	assert.Contains(t, err.Error(), "us")
}
