package output

import (
	"github.com/rgehrsitz/cohortplan/internal/domain"
)

// report is the document shape shared by the JSON and YAML formatters
type report struct {
	RunID      string          `json:"runId" yaml:"run_id"`
	TargetYear int             `json:"targetYear" yaml:"target_year"`
	Population int             `json:"population" yaml:"population"`
	Unplanned  int             `json:"unplanned" yaml:"unplanned"`
	Cohorts    []cohortSummary `json:"cohorts" yaml:"cohorts"`
	Columns    []string        `json:"columns" yaml:"columns"`
	Visits     []string        `json:"visitColumns" yaml:"visit_columns"`
	Rows       []reportRow     `json:"rows" yaml:"rows"`
}

type cohortSummary struct {
	Name         string                    `json:"name" yaml:"name"`
	Mode         string                    `json:"mode" yaml:"mode"`
	VisitCount   int                       `json:"visitCount" yaml:"visit_count"`
	Eligible     int                       `json:"eligible" yaml:"eligible"`
	Assigned     int                       `json:"assigned" yaml:"assigned"`
	Unplanned    int                       `json:"unplanned" yaml:"unplanned"`
	Coverage     string                    `json:"coverage" yaml:"coverage"`
	MonthlyTally [domain.MonthsPerYear]int `json:"monthlyTally" yaml:"monthly_tally,flow"`
	Warnings     []string                  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type reportRow struct {
	No     int               `json:"no" yaml:"no"`
	Cohort string            `json:"cohort" yaml:"cohort"`
	Fields map[string]string `json:"fields" yaml:"fields"`
	Visits []string          `json:"visits" yaml:"visits,flow"`
	Status string            `json:"status,omitempty" yaml:"status,omitempty"`
}

func buildReport(result *domain.RunResult) report {
	r := report{
		RunID:      result.RunID,
		TargetYear: result.TargetYear,
		Population: result.Population,
		Unplanned:  result.Plan.UnplannedCount(),
		Columns:    result.Plan.Columns,
		Visits:     result.Plan.VisitColumns,
		Cohorts:    make([]cohortSummary, 0, len(result.Cohorts)),
		Rows:       make([]reportRow, 0, len(result.Plan.Rows)),
	}
	for _, c := range result.Cohorts {
		r.Cohorts = append(r.Cohorts, cohortSummary{
			Name:         c.Rule.Label(),
			Mode:         c.Rule.Mode(),
			VisitCount:   c.Rule.VisitCount,
			Eligible:     c.Eligible,
			Assigned:     len(c.Assigned),
			Unplanned:    len(c.Unplanned),
			Coverage:     c.Coverage.String(),
			MonthlyTally: c.MonthlyTally,
			Warnings:     c.Warnings,
		})
	}
	for _, row := range result.Plan.Rows {
		visits := make([]string, len(row.Visits))
		for i := range row.Visits {
			visits[i] = row.VisitString(i)
		}
		r.Rows = append(r.Rows, reportRow{
			No:     row.No,
			Cohort: row.Cohort,
			Fields: row.Person.Fields,
			Visits: visits,
			Status: status(row),
		})
	}
	return r
}
