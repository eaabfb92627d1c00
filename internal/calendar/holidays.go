package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// HolidaySet is a set of non-working calendar dates. The zero value is an empty set.
type HolidaySet map[time.Time]struct{}

// NewHolidaySet builds a set from the given dates
func NewHolidaySet(dates ...time.Time) HolidaySet {
	s := make(HolidaySet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// Add inserts date, ignoring its time of day
func (s HolidaySet) Add(date time.Time) {
	s[Normalize(date)] = struct{}{}
}

// Contains reports whether date is a holiday
func (s HolidaySet) Contains(date time.Time) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[Normalize(date)]
	return ok
}

// Len returns the number of holidays
func (s HolidaySet) Len() int { return len(s) }

// Merge adds every date of other into s
func (s HolidaySet) Merge(other HolidaySet) {
	for d := range other {
		s[d] = struct{}{}
	}
}

// Sorted returns the holidays in ascending order
func (s HolidaySet) Sorted() []time.Time {
	out := make([]time.Time, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// ParseHolidays parses ISO (2006-01-02) date strings into a set
func ParseHolidays(values []string) (HolidaySet, error) {
	s := make(HolidaySet, len(values))
	for i, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("holiday %d (%q): %w", i, v, err)
		}
		s.Add(d)
	}
	return s, nil
}

// namedCalendars maps a config name onto the public holidays it observes
var namedCalendars = map[string][]*cal.Holiday{
	"us": {
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	},
}

// KnownCalendars lists the names accepted by NamedHolidays
func KnownCalendars() []string {
	names := make([]string, 0, len(namedCalendars))
	for n := range namedCalendars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NamedHolidays expands a public holiday calendar into the observed holiday dates
// of year. January of the following year is included so snapping past the end of
// December sees New Year.
func NamedHolidays(name string, year int) (HolidaySet, error) {
	holidays, ok := namedCalendars[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown holiday calendar %q (known: %s)", name, strings.Join(KnownCalendars(), ", "))
	}
	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(holidays...)

	set := make(HolidaySet)
	end := Date(year+1, time.February, 1)
	for d := Date(year, time.January, 1); d.Before(end); d = d.AddDate(0, 0, 1) {
		if _, observed, _ := bc.IsHoliday(d); observed {
			set.Add(d)
		}
	}
	return set, nil
}
