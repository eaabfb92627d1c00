package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO layout used for every date crossing the engine boundary
const DateLayout = "2006-01-02"

// VisitAssignment binds one person to an ordered list of visit dates
type VisitAssignment struct {
	Dates []time.Time `yaml:"dates" json:"dates"`
}

// First returns the earliest visit date
func (v VisitAssignment) First() time.Time {
	if len(v.Dates) == 0 {
		return time.Time{}
	}
	return v.Dates[0]
}

// AssignedRow is a scheduled person. Month is the reporting bucket of the row.
type AssignedRow struct {
	Person PersonRecord    `yaml:"person" json:"person"`
	Visits VisitAssignment `yaml:"visits" json:"visits"`
	Month  time.Month      `yaml:"month" json:"month"`
}

// CohortResult is the outcome of one cohort rule.
// Every eligible person is in exactly one of Assigned or Unplanned.
type CohortResult struct {
	Rule         CohortRule         `yaml:"rule" json:"rule"`
	Eligible     int                `yaml:"eligible" json:"eligible"`
	Assigned     []AssignedRow      `yaml:"assigned" json:"assigned"`
	Unplanned    []PersonRecord     `yaml:"unplanned" json:"unplanned"`
	Warnings     []string           `yaml:"warnings" json:"warnings"`
	MonthlyTally [MonthsPerYear]int `yaml:"monthly_tally" json:"monthly_tally"`
	Coverage     decimal.Decimal    `yaml:"coverage" json:"coverage"`
}

// Warn appends a warning to the result
func (r *CohortResult) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Rows returns the number of rows the cohort contributes to the plan
func (r *CohortResult) Rows() int {
	return len(r.Assigned) + len(r.Unplanned)
}

// ComputeCoverage sets Coverage to the assigned share of the eligible pool
func (r *CohortResult) ComputeCoverage() {
	if r.Eligible == 0 {
		r.Coverage = decimal.Zero
		return
	}
	r.Coverage = decimal.NewFromInt(int64(len(r.Assigned))).
		Div(decimal.NewFromInt(int64(r.Eligible))).
		Round(4)
}

// PlanRow is one row of the consolidated plan.
// Visits has one slot per plan visit column; a nil slot is unset.
type PlanRow struct {
	No        int          `yaml:"no" json:"no"`
	Cohort    string       `yaml:"cohort" json:"cohort"`
	Person    PersonRecord `yaml:"person" json:"person"`
	Visits    []*time.Time `yaml:"visits" json:"visits"`
	Unplanned bool         `yaml:"unplanned" json:"unplanned"`
}

// VisitString formats slot i as an ISO date, or "" when unset
func (r PlanRow) VisitString(i int) string {
	if i < 0 || i >= len(r.Visits) || r.Visits[i] == nil {
		return ""
	}
	return r.Visits[i].Format(DateLayout)
}

// ConsolidatedPlan is the merged, renumbered table of all cohorts
type ConsolidatedPlan struct {
	MaxVisits    int       `yaml:"max_visits" json:"max_visits"`
	Columns      []string  `yaml:"columns" json:"columns"`
	VisitColumns []string  `yaml:"visit_columns" json:"visit_columns"`
	Rows         []PlanRow `yaml:"rows" json:"rows"`
}

// UnplannedCount returns the number of rows tagged as unplanned
func (p ConsolidatedPlan) UnplannedCount() int {
	n := 0
	for _, r := range p.Rows {
		if r.Unplanned {
			n++
		}
	}
	return n
}

// RunResult is everything one engine run hands to the rendering layer
type RunResult struct {
	RunID      string           `yaml:"run_id" json:"run_id"`
	TargetYear int              `yaml:"target_year" json:"target_year"`
	Population int              `yaml:"population" json:"population"`
	Cohorts    []CohortResult   `yaml:"cohorts" json:"cohorts"`
	Plan       ConsolidatedPlan `yaml:"plan" json:"plan"`
}
