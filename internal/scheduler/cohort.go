package scheduler

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/cohortplan/internal/allocation"
	"github.com/rgehrsitz/cohortplan/internal/calendar"
	"github.com/rgehrsitz/cohortplan/internal/domain"
	"github.com/rgehrsitz/cohortplan/internal/projection"
)

// EligiblePool returns the people matching rule, in population order
func EligiblePool(pop *domain.Population, rule domain.CohortRule) []domain.PersonRecord {
	if pop == nil {
		return nil
	}
	var pool []domain.PersonRecord
	for _, p := range pop.Records {
		if rule.Eligible(p) {
			pool = append(pool, p)
		}
	}
	return pool
}

// validateRule rejects rules the scheduler cannot run
func validateRule(rule domain.CohortRule) error {
	if rule.VisitCount < 1 {
		return fmt.Errorf("%w: cohort %q: visit count must be at least 1, got %d", ErrInvalidRule, rule.Label(), rule.VisitCount)
	}
	if rule.StartYear > rule.EndYear {
		return fmt.Errorf("%w: cohort %q: start year %d after end year %d", ErrInvalidRule, rule.Label(), rule.StartYear, rule.EndYear)
	}
	for i, c := range rule.MonthlyCounts {
		if c < 0 {
			return fmt.Errorf("%w: cohort %q: negative count %d for %s", ErrInvalidRule, rule.Label(), c, time.Month(i+1))
		}
	}
	return nil
}

// cohortRun holds the state of scheduling one cohort. It owns its pool slice.
type cohortRun struct {
	rule   domain.CohortRule
	year   int
	cal    calendar.Calendar
	pool   []domain.PersonRecord
	result domain.CohortResult
}

// ScheduleCohort runs one cohort rule against the population.
// The only error it returns is a rule or capacity failure; everything else is a warning.
func (e *Engine) ScheduleCohort(pop *domain.Population, rule domain.CohortRule, cfg *domain.RunConfig) (domain.CohortResult, error) {
	if err := validateRule(rule); err != nil {
		return domain.CohortResult{}, err
	}

	run := &cohortRun{
		rule: rule,
		year: cfg.TargetYear,
		cal:  cfg.Calendar(),
		pool: EligiblePool(pop, rule),
	}
	run.result = domain.CohortResult{Rule: rule, Eligible: len(run.pool)}

	e.Logger.Infof("cohort %s: mode=%s eligible=%d visits=%d", rule.Label(), rule.Mode(), len(run.pool), rule.VisitCount)

	if len(run.pool) == 0 {
		run.result.Warn(fmt.Sprintf("cohort %q: no population born %d-%d (gender %s)",
			rule.Label(), rule.StartYear, rule.EndYear, genderLabel(rule.Gender)))
		run.result.ComputeCoverage()
		return run.result, nil
	}

	if rule.UseBirthdayAnchor {
		run.scheduleBirthdays()
	} else {
		quotas, err := run.monthQuotas()
		if err != nil {
			return domain.CohortResult{}, err
		}
		run.scheduleMonths(quotas)
	}

	run.result.ComputeCoverage()
	for _, w := range run.result.Warnings {
		e.Logger.Warnf("%s", w)
	}
	e.Logger.Debugw("cohort scheduled", map[string]any{
		"cohort":    rule.Label(),
		"assigned":  len(run.result.Assigned),
		"unplanned": len(run.result.Unplanned),
		"coverage":  run.result.Coverage.String(),
	})
	return run.result, nil
}

// monthQuotas returns how many people each month takes. Auto mode spreads the
// pool evenly; manual mode takes the explicit counts after a capacity check.
func (r *cohortRun) monthQuotas() ([domain.MonthsPerYear]int, error) {
	var quotas [domain.MonthsPerYear]int
	available := len(r.pool)

	if r.rule.AutoDistribute() {
		copy(quotas[:], allocation.Distribute(available, domain.MonthsPerYear))
		return quotas, nil
	}

	planned := r.rule.PlannedTotal()
	if planned > available {
		return quotas, &CapacityExceededError{Cohort: r.rule.Label(), Planned: planned, Available: available}
	}
	if planned < available {
		r.result.Warn(fmt.Sprintf("cohort %q: monthly plan covers %d of %d people, %d left unplanned",
			r.rule.Label(), planned, available, available-planned))
	}
	return r.rule.MonthlyCounts, nil
}

// scheduleMonths places each month's quota across that month's working days.
// People are consumed from the pool in order through an owned cursor; whatever
// is left once every month is filled becomes unplanned.
func (r *cohortRun) scheduleMonths(quotas [domain.MonthsPerYear]int) {
	cur := allocation.NewCursor(len(r.pool))

	for i, quota := range quotas {
		month := time.Month(i + 1)
		if quota == 0 || cur.Remaining() == 0 {
			continue
		}
		days := r.cal.WorkingDays(r.year, month)
		if len(days) == 0 {
			r.result.Warn(fmt.Sprintf("cohort %q: %s %d has no working days, %d people not placed",
				r.rule.Label(), month, r.year, quota))
			continue
		}

		span := cur.Take(quota)
		dayQuotas := allocation.Distribute(span.Len(), len(days))
		for j, daySpan := range allocation.Slices(dayQuotas, span.Len()) {
			for k := span.Start + daySpan.Start; k < span.Start+daySpan.End; k++ {
				p := projection.CycleDates(days[j], r.rule.VisitCount, r.year, r.cal)
				r.assign(r.pool[k], p, month)
			}
		}
	}

	rest := cur.Rest()
	r.result.Unplanned = append(r.result.Unplanned, r.pool[rest.Start:rest.End]...)
}

// scheduleBirthdays projects every eligible person on their own birth day-of-month
func (r *cohortRun) scheduleBirthdays() {
	for _, person := range r.pool {
		p := projection.BirthdayDates(person.BirthDate.Day(), r.rule.VisitCount, r.year, r.cal)
		r.assign(person, p, p.Dates[0].Month())
	}
}

func (r *cohortRun) assign(person domain.PersonRecord, p projection.Projection, month time.Month) {
	for _, d := range p.Unsnapped {
		r.result.Warn(fmt.Sprintf("cohort %q: no working day within %d days of %s for row %d, date kept",
			r.rule.Label(), calendar.MaxSnapDays, d.Format(domain.DateLayout), person.Row))
	}
	r.result.Assigned = append(r.result.Assigned, domain.AssignedRow{
		Person: person,
		Visits: domain.VisitAssignment{Dates: p.Dates},
		Month:  month,
	})
	r.result.MonthlyTally[month-1]++
}

func genderLabel(g domain.GenderFilter) string {
	if g == "" {
		return string(domain.GenderAll)
	}
	return string(g)
}
