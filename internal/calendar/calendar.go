package calendar

import (
	"iter"
	"time"
)

// MaxSnapDays bounds the forward scan of NextWorkingDay
const MaxSnapDays = 60

// Calendar answers working-day questions for one run.
// A working day is not a Sunday, not a Saturday unless SaturdayWorking, and not a holiday.
type Calendar struct {
	Holidays        HolidaySet
	SaturdayWorking bool
}

// Date returns midnight UTC of the given calendar day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates t to its calendar day in UTC
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// DaysIn returns the number of days in the month
func DaysIn(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// ClampDay returns (year, month, day) with day capped at the month's last day
func ClampDay(year int, month time.Month, day int) time.Time {
	if last := DaysIn(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return Date(year, month, day)
}

// IsWorkingDay reports whether date can carry a visit
func (c Calendar) IsWorkingDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Sunday:
		return false
	case time.Saturday:
		if !c.SaturdayWorking {
			return false
		}
	}
	return !c.Holidays.Contains(date)
}

// WorkingDaysOfMonth yields the working days of the month in ascending order.
// The sequence may be empty, which callers treat as no capacity for that month.
func (c Calendar) WorkingDaysOfMonth(year int, month time.Month) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		last := DaysIn(year, month)
		for day := 1; day <= last; day++ {
			d := Date(year, month, day)
			if !c.IsWorkingDay(d) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// WorkingDays collects WorkingDaysOfMonth into a slice
func (c Calendar) WorkingDays(year int, month time.Month) []time.Time {
	var days []time.Time
	for d := range c.WorkingDaysOfMonth(year, month) {
		days = append(days, d)
	}
	return days
}

// NextWorkingDay returns the first working day on or after date, scanning at most
// MaxSnapDays days. When nothing is found it returns date unchanged and false.
func (c Calendar) NextWorkingDay(date time.Time) (time.Time, bool) {
	d := Normalize(date)
	for i := 0; i < MaxSnapDays; i++ {
		if c.IsWorkingDay(d) {
			return d, true
		}
		d = d.AddDate(0, 0, 1)
	}
	return Normalize(date), false
}
