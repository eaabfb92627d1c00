// Package projection turns a first visit, or a birth day-of-month, into the full
// list of visit dates for the target year.
package projection

import (
	"sort"
	"time"

	"github.com/rgehrsitz/cohortplan/internal/calendar"
)

// Projection is the result of projecting one person's visits.
// Unsnapped lists dates for which no working day was found within the snap bound;
// those dates are kept as they were.
type Projection struct {
	Dates     []time.Time
	Unsnapped []time.Time
}

// CycleDates projects visitCount visits starting at first. Visit v is placed
// trunc(v*12/visitCount) months after first; dates that land after targetYear are
// folded back one year. The dates are sorted and then snapped forward to working days.
func CycleDates(first time.Time, visitCount, targetYear int, cal calendar.Calendar) Projection {
	first = calendar.Normalize(first)
	if visitCount < 1 {
		visitCount = 1
	}

	dates := make([]time.Time, 0, visitCount)
	dates = append(dates, first)
	for v := 1; v < visitCount; v++ {
		// integer form of trunc(12/visitCount * v), fractional intervals included
		months := v * 12 / visitCount
		candidate := addMonths(first, months)
		if candidate.Year() > targetYear {
			candidate = calendar.ClampDay(candidate.Year()-1, candidate.Month(), first.Day())
		}
		dates = append(dates, candidate)
	}
	return snapAll(dates, cal)
}

// BirthdayDates projects visitCount visits anchored on the person's birth
// day-of-month. Visit v falls in month floor(v*12/visitCount) of targetYear, with
// the day clamped to the month length.
func BirthdayDates(birthDay, visitCount, targetYear int, cal calendar.Calendar) Projection {
	if visitCount < 1 {
		visitCount = 1
	}
	dates := make([]time.Time, 0, visitCount)
	for v := 0; v < visitCount; v++ {
		month := time.Month(v*12/visitCount) + time.January
		dates = append(dates, calendar.ClampDay(targetYear, month, birthDay))
	}
	return snapAll(dates, cal)
}

// addMonths moves t forward by n months, keeping the day-of-month but capping it at
// the last day of the resulting month (Jan 31 + 1 month is Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	y += total / 12
	m = time.Month(total%12) + time.January
	return calendar.ClampDay(y, m, d)
}

func snapAll(dates []time.Time, cal calendar.Calendar) Projection {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	p := Projection{Dates: make([]time.Time, len(dates))}
	for i, d := range dates {
		snapped, ok := cal.NextWorkingDay(d)
		if !ok {
			p.Unsnapped = append(p.Unsnapped, d)
		}
		p.Dates[i] = snapped
	}
	return p
}
