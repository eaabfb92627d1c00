// Package consolidate merges per-cohort results into one renumbered plan.
package consolidate

import (
	"fmt"
	"sort"
	"time"

	"github.com/rgehrsitz/cohortplan/internal/domain"
)

// SingleVisitColumn names the visit column when no cohort has more than one visit
const SingleVisitColumn = "Visit date"

// VisitColumns returns the normalized visit column names for a plan with
// maxVisits slots.
func VisitColumns(maxVisits int) []string {
	if maxVisits <= 1 {
		return []string{SingleVisitColumn}
	}
	cols := make([]string, maxVisits)
	for i := range cols {
		cols[i] = fmt.Sprintf("Visit #%d", i+1)
	}
	return cols
}

// MaxVisits returns the largest visit count among the results, at least 1
func MaxVisits(results []domain.CohortResult) int {
	max := 1
	for _, r := range results {
		if r.Rule.VisitCount > max {
			max = r.Rule.VisitCount
		}
	}
	return max
}

// Consolidate builds the plan. Rows follow cohort order and, within a cohort,
// assigned rows before unplanned rows. Row numbers run 1..N over the whole plan.
// A single-visit cohort in a multi-visit plan fills only the first visit slot.
func Consolidate(columns []string, results []domain.CohortResult) domain.ConsolidatedPlan {
	maxVisits := MaxVisits(results)
	plan := domain.ConsolidatedPlan{
		MaxVisits:    maxVisits,
		VisitColumns: VisitColumns(maxVisits),
	}

	total := 0
	for i := range results {
		total += results[i].Rows()
	}
	plan.Rows = make([]domain.PlanRow, 0, total)

	no := 0
	for _, res := range results {
		label := res.Rule.Label()
		for _, a := range res.Assigned {
			no++
			plan.Rows = append(plan.Rows, domain.PlanRow{
				No:     no,
				Cohort: label,
				Person: a.Person,
				Visits: slots(a.Visits.Dates, maxVisits),
			})
		}
		for _, p := range res.Unplanned {
			no++
			plan.Rows = append(plan.Rows, domain.PlanRow{
				No:        no,
				Cohort:    label,
				Person:    p,
				Visits:    make([]*time.Time, maxVisits),
				Unplanned: true,
			})
		}
	}

	plan.Columns = mergeColumns(columns, plan.Rows)
	return plan
}

func slots(dates []time.Time, n int) []*time.Time {
	out := make([]*time.Time, n)
	for i := 0; i < n && i < len(dates); i++ {
		d := dates[i]
		out[i] = &d
	}
	return out
}

// mergeColumns keeps the roster column order and appends field names that only
// some records carry, sorted per record for a stable result.
func mergeColumns(columns []string, rows []domain.PlanRow) []string {
	seen := make(map[string]bool, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, r := range rows {
		var extra []string
		for k := range r.Person.Fields {
			if !seen[k] {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
