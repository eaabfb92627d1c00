package projection

import (
	"testing"
	"time"

	"github.com/rgehrsitz/cohortplan/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time { return calendar.Date(y, m, day) }

func TestCycleDates(t *testing.T) {
	cal := calendar.Calendar{}

	tests := []struct {
		name       string
		first      time.Time
		visitCount int
		want       []time.Time
	}{
		{
			name:       "single visit is the first date",
			first:      d(2025, time.March, 4),
			visitCount: 1,
			want:       []time.Time{d(2025, time.March, 4)},
		},
		{
			name:       "quarterly with weekend snapping",
			first:      d(2025, time.February, 3),
			visitCount: 4,
			want: []time.Time{
				d(2025, time.February, 3),
				d(2025, time.May, 5),    // May 3 is a Saturday
				d(2025, time.August, 4), // Aug 3 is a Sunday
				d(2025, time.November, 3),
			},
		},
		{
			name:       "dates past the target year wrap back",
			first:      d(2025, time.October, 1),
			visitCount: 4,
			want: []time.Time{
				d(2025, time.January, 1),
				d(2025, time.April, 1),
				d(2025, time.July, 1),
				d(2025, time.October, 1),
			},
		},
		{
			name:       "fractional interval truncates month steps",
			first:      d(2025, time.January, 6),
			visitCount: 5,
			want: []time.Time{
				d(2025, time.January, 6),
				d(2025, time.March, 6),
				d(2025, time.May, 6),
				d(2025, time.August, 6),
				d(2025, time.October, 6),
			},
		},
		{
			name:       "month end is clamped",
			first:      d(2025, time.January, 31),
			visitCount: 2,
			want: []time.Time{
				d(2025, time.January, 31),
				d(2025, time.July, 31),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CycleDates(tt.first, tt.visitCount, 2025, cal)
			assert.Equal(t, tt.want, p.Dates)
			assert.Empty(t, p.Unsnapped)
		})
	}
}

func TestCycleDates_MonthlyFromMonthEnd(t *testing.T) {
	p := CycleDates(d(2025, time.January, 31), 12, 2025, calendar.Calendar{})
	require.Len(t, p.Dates, 12)
	assert.Equal(t, d(2025, time.February, 28), p.Dates[1])
	assert.Equal(t, d(2025, time.April, 30), p.Dates[3])
	assert.Equal(t, d(2025, time.June, 2), p.Dates[4], "May 31 is a Saturday")
}

func TestCycleDates_Properties(t *testing.T) {
	cal := calendar.Calendar{Holidays: calendar.NewHolidaySet(d(2025, time.May, 1), d(2025, time.December, 25))}

	for first := d(2025, time.January, 1); first.Year() == 2025; first = first.AddDate(0, 0, 1) {
		if !cal.IsWorkingDay(first) {
			continue
		}
		for v := 1; v <= 12; v++ {
			p := CycleDates(first, v, 2025, cal)
			require.Len(t, p.Dates, v, "first=%s v=%d", first.Format("2006-01-02"), v)
			for i, date := range p.Dates {
				assert.True(t, cal.IsWorkingDay(date), "first=%s v=%d date=%s", first.Format("2006-01-02"), v, date.Format("2006-01-02"))
				assert.Equal(t, 2025, date.Year())
				if i > 0 {
					assert.True(t, date.After(p.Dates[i-1]), "first=%s v=%d not increasing at %d", first.Format("2006-01-02"), v, i)
				}
			}
		}
	}
}

func TestCycleDates_UnsnappedKeepsDate(t *testing.T) {
	holidays := calendar.NewHolidaySet()
	for day := d(2025, time.April, 1); day.Before(d(2025, time.August, 1)); day = day.AddDate(0, 0, 1) {
		holidays.Add(day)
	}
	cal := calendar.Calendar{Holidays: holidays}

	p := CycleDates(d(2025, time.January, 6), 4, 2025, cal)
	assert.Equal(t, []time.Time{
		d(2025, time.January, 6),
		d(2025, time.April, 6),
		d(2025, time.August, 1),
		d(2025, time.October, 6),
	}, p.Dates)
	assert.Equal(t, []time.Time{d(2025, time.April, 6)}, p.Unsnapped)
}

func TestBirthdayDates(t *testing.T) {
	cal := calendar.Calendar{}

	tests := []struct {
		name       string
		birthDay   int
		visitCount int
		want       []time.Time
	}{
		{
			name:       "single visit in january",
			birthDay:   14,
			visitCount: 1,
			want:       []time.Time{d(2025, time.January, 14)},
		},
		{
			name:       "quarterly on the birth day",
			birthDay:   15,
			visitCount: 4,
			want: []time.Time{
				d(2025, time.January, 15),
				d(2025, time.April, 15),
				d(2025, time.July, 15),
				d(2025, time.October, 15),
			},
		},
		{
			name:       "five visits use floored month offsets",
			birthDay:   15,
			visitCount: 5,
			want: []time.Time{
				d(2025, time.January, 15),
				d(2025, time.March, 17), // Mar 15 is a Saturday
				d(2025, time.May, 15),
				d(2025, time.August, 15),
				d(2025, time.October, 15),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BirthdayDates(tt.birthDay, tt.visitCount, 2025, cal)
			assert.Equal(t, tt.want, p.Dates)
		})
	}
}

func TestBirthdayDates_ClampsAndSnaps(t *testing.T) {
	p := BirthdayDates(31, 12, 2025, calendar.Calendar{})
	require.Len(t, p.Dates, 12)

	assert.Equal(t, d(2025, time.February, 28), p.Dates[1], "clamped to february's last day")
	assert.Equal(t, d(2025, time.April, 30), p.Dates[3], "clamped to 30")
	assert.Equal(t, d(2025, time.September, 30), p.Dates[8])
	// November 30 2025 is a Sunday so the clamped date snaps into December.
	assert.Equal(t, d(2025, time.December, 1), p.Dates[10])
	assert.Equal(t, d(2025, time.December, 31), p.Dates[11])
	for i := 1; i < len(p.Dates); i++ {
		assert.True(t, p.Dates[i].After(p.Dates[i-1]))
	}
}

func TestBirthdayDates_LeapYear(t *testing.T) {
	p := BirthdayDates(29, 12, 2024, calendar.Calendar{})
	assert.Equal(t, d(2024, time.February, 29), p.Dates[1])

	p = BirthdayDates(29, 12, 2025, calendar.Calendar{})
	assert.Equal(t, d(2025, time.February, 28), p.Dates[1])
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, d(2025, time.February, 28), addMonths(d(2025, time.January, 31), 1))
	assert.Equal(t, d(2026, time.January, 15), addMonths(d(2025, time.October, 15), 3))
	assert.Equal(t, d(2026, time.February, 28), addMonths(d(2025, time.November, 30), 3))
	assert.Equal(t, d(2025, time.December, 1), addMonths(d(2025, time.December, 1), 0))
}
