package domain

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/cohortplan/internal/calendar"
)

// MonthsPerYear is the number of slots in a monthly plan
const MonthsPerYear = 12

// GenderFilter restricts a cohort's eligible pool by the externally supplied gender flag
type GenderFilter string

const (
	GenderAll    GenderFilter = "all"
	GenderMale   GenderFilter = "male"
	GenderFemale GenderFilter = "female"
)

// ParseGenderFilter maps user input onto a GenderFilter. Empty input means all.
func ParseGenderFilter(s string) (GenderFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "any":
		return GenderAll, nil
	case "male", "m", "men":
		return GenderMale, nil
	case "female", "f", "women":
		return GenderFemale, nil
	default:
		return "", fmt.Errorf("unknown gender filter %q (valid: all, male, female)", s)
	}
}

// Matches reports whether a person with the given flag passes the filter
func (g GenderFilter) Matches(isFemale bool) bool {
	switch g {
	case GenderMale:
		return !isFemale
	case GenderFemale:
		return isFemale
	default:
		return true
	}
}

// CohortRule defines one scheduling pass over the population.
// MonthlyCounts is only honored in manual mode, see AutoDistribute.
type CohortRule struct {
	Name              string             `yaml:"name" json:"name"`
	StartYear         int                `yaml:"start_year" json:"start_year"`
	EndYear           int                `yaml:"end_year" json:"end_year"`
	Gender            GenderFilter       `yaml:"gender" json:"gender"`
	VisitCount        int                `yaml:"visit_count" json:"visit_count"`
	UseBirthdayAnchor bool               `yaml:"use_birthday_anchor" json:"use_birthday_anchor"`
	MonthlyCounts     [MonthsPerYear]int `yaml:"monthly_counts" json:"monthly_counts"`
}

// AutoDistribute reports whether the engine spreads the pool itself instead of
// using the explicit monthly counts.
func (r CohortRule) AutoDistribute() bool {
	return r.UseBirthdayAnchor || r.VisitCount > 1
}

// PlannedTotal is the sum of the manual monthly counts
func (r CohortRule) PlannedTotal() int {
	total := 0
	for _, c := range r.MonthlyCounts {
		total += c
	}
	return total
}

// Eligible reports whether the person belongs to this cohort's pool
func (r CohortRule) Eligible(p PersonRecord) bool {
	if !p.BirthDateValid {
		return false
	}
	y := p.BirthDate.Year()
	if y < r.StartYear || y > r.EndYear {
		return false
	}
	return r.Gender.Matches(p.IsFemale)
}

// Label returns the cohort name, falling back to its birth-year range
func (r CohortRule) Label() string {
	if r.Name != "" {
		return r.Name
	}
	if r.StartYear == r.EndYear {
		return fmt.Sprintf("%d", r.StartYear)
	}
	return fmt.Sprintf("%d-%d", r.StartYear, r.EndYear)
}

// Mode returns a short description of the scheduling mode
func (r CohortRule) Mode() string {
	switch {
	case r.UseBirthdayAnchor:
		return "birthday"
	case r.VisitCount > 1:
		return "auto"
	default:
		return "manual"
	}
}

// RunConfig is shared by every cohort of one run
type RunConfig struct {
	TargetYear      int                 `yaml:"target_year" json:"target_year"`
	Holidays        calendar.HolidaySet `yaml:"-" json:"-"`
	SaturdayWorking bool                `yaml:"saturday_working" json:"saturday_working"`
	Cohorts         []CohortRule        `yaml:"cohorts" json:"cohorts"`
}

// Calendar returns the working-day calendar for this run
func (c *RunConfig) Calendar() calendar.Calendar {
	return calendar.Calendar{Holidays: c.Holidays, SaturdayWorking: c.SaturdayWorking}
}

// MaxVisits returns the largest visit count across all cohorts, at least 1
func (c *RunConfig) MaxVisits() int {
	max := 1
	for _, r := range c.Cohorts {
		if r.VisitCount > max {
			max = r.VisitCount
		}
	}
	return max
}
