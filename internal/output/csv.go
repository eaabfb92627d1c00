package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/cohortplan/internal/consolidate"
	"github.com/rgehrsitz/cohortplan/internal/domain"
)

// StatusUnplanned marks rows the run could not place
const StatusUnplanned = "unplanned"

// CSVFormatter writes the consolidated plan, one row per person
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(result *domain.RunResult) ([]byte, error) {
	plan := result.Plan
	header := planHeader(plan.Columns, plan.VisitColumns)

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range plan.Rows {
		if err := w.Write(planRecord(row, plan.Columns, len(plan.VisitColumns))); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CohortCSV writes one cohort on its own. Rows are numbered within the cohort
// and the visit columns match the cohort's visit count.
func CohortCSV(columns []string, res domain.CohortResult) ([]byte, error) {
	plan := consolidate.Consolidate(columns, []domain.CohortResult{res})

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(planHeader(plan.Columns, plan.VisitColumns)); err != nil {
		return nil, err
	}
	for _, row := range plan.Rows {
		if err := w.Write(planRecord(row, plan.Columns, len(plan.VisitColumns))); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func planHeader(columns, visitCols []string) []string {
	header := make([]string, 0, len(columns)+len(visitCols)+3)
	header = append(header, "No", "Cohort")
	header = append(header, columns...)
	header = append(header, visitCols...)
	return append(header, "Status")
}

func planRecord(row domain.PlanRow, columns []string, visits int) []string {
	rec := make([]string, 0, len(columns)+visits+3)
	rec = append(rec, strconv.Itoa(row.No), row.Cohort)
	for _, c := range columns {
		rec = append(rec, row.Person.Field(c))
	}
	for i := 0; i < visits; i++ {
		rec = append(rec, row.VisitString(i))
	}
	return append(rec, status(row))
}

func status(row domain.PlanRow) string {
	if row.Unplanned {
		return StatusUnplanned
	}
	return ""
}
