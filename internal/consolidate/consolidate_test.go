package consolidate

import (
	"testing"
	"time"

	"github.com/rgehrsitz/cohortplan/internal/calendar"
	"github.com/rgehrsitz/cohortplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func person(row int, fields map[string]string) domain.PersonRecord {
	return domain.PersonRecord{Row: row, Fields: fields, BirthDateValid: true}
}

func assigned(row int, dates ...time.Time) domain.AssignedRow {
	return domain.AssignedRow{
		Person: person(row, map[string]string{"id": "x"}),
		Visits: domain.VisitAssignment{Dates: dates},
		Month:  dates[0].Month(),
	}
}

func d(m time.Month, day int) time.Time { return calendar.Date(2025, m, day) }

func TestVisitColumns(t *testing.T) {
	tests := []struct {
		name string
		max  int
		want []string
	}{
		{"zero", 0, []string{"Visit date"}},
		{"single", 1, []string{"Visit date"}},
		{"three", 3, []string{"Visit #1", "Visit #2", "Visit #3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisitColumns(tt.max))
		})
	}
}

func TestMaxVisits(t *testing.T) {
	assert.Equal(t, 1, MaxVisits(nil))
	assert.Equal(t, 4, MaxVisits([]domain.CohortResult{
		{Rule: domain.CohortRule{VisitCount: 1}},
		{Rule: domain.CohortRule{VisitCount: 4}},
		{Rule: domain.CohortRule{VisitCount: 2}},
	}))
}

func TestConsolidate_OrderAndNumbering(t *testing.T) {
	results := []domain.CohortResult{
		{
			Rule:      domain.CohortRule{Name: "single", VisitCount: 1},
			Assigned:  []domain.AssignedRow{assigned(3, d(time.January, 2))},
			Unplanned: []domain.PersonRecord{person(1, map[string]string{"id": "u"})},
		},
		{
			Rule: domain.CohortRule{StartYear: 1960, EndYear: 1969, VisitCount: 3},
			Assigned: []domain.AssignedRow{
				assigned(2, d(time.January, 6), d(time.May, 6), d(time.September, 8)),
				assigned(5, d(time.February, 3), d(time.June, 3), d(time.October, 3)),
			},
		},
	}

	plan := Consolidate([]string{"id"}, results)

	assert.Equal(t, 3, plan.MaxVisits)
	assert.Equal(t, []string{"Visit #1", "Visit #2", "Visit #3"}, plan.VisitColumns)
	require.Len(t, plan.Rows, 4)

	var rows, nos []int
	for _, r := range plan.Rows {
		rows = append(rows, r.Person.Row)
		nos = append(nos, r.No)
	}
	assert.Equal(t, []int{3, 1, 2, 5}, rows, "cohort order, assigned before unplanned")
	assert.Equal(t, []int{1, 2, 3, 4}, nos)

	single := plan.Rows[0]
	assert.Equal(t, "single", single.Cohort)
	assert.Equal(t, "2025-01-02", single.VisitString(0))
	assert.Equal(t, "", single.VisitString(1))
	assert.Equal(t, "", single.VisitString(2))
	assert.False(t, single.Unplanned)

	unplanned := plan.Rows[1]
	assert.True(t, unplanned.Unplanned)
	assert.Len(t, unplanned.Visits, 3)
	for _, v := range unplanned.Visits {
		assert.Nil(t, v)
	}

	assert.Equal(t, "1960-1969", plan.Rows[2].Cohort, "unnamed cohort falls back to its year range")
	assert.Equal(t, "2025-09-08", plan.Rows[2].VisitString(2))
	assert.Equal(t, 1, plan.UnplannedCount())
}

func TestConsolidate_SlotsDoNotAlias(t *testing.T) {
	dates := []time.Time{d(time.March, 3), d(time.September, 1)}
	results := []domain.CohortResult{{
		Rule:     domain.CohortRule{Name: "a", VisitCount: 2},
		Assigned: []domain.AssignedRow{assigned(1, dates...)},
	}}

	plan := Consolidate(nil, results)
	dates[0] = d(time.December, 1)

	assert.Equal(t, "2025-03-03", plan.Rows[0].VisitString(0))
}

func TestConsolidate_Empty(t *testing.T) {
	plan := Consolidate([]string{"id", "name"}, nil)
	assert.Equal(t, 1, plan.MaxVisits)
	assert.Equal(t, []string{"Visit date"}, plan.VisitColumns)
	assert.Empty(t, plan.Rows)
	assert.Equal(t, []string{"id", "name"}, plan.Columns)
}

func TestMergeColumns(t *testing.T) {
	rows := []domain.PlanRow{
		{Person: person(1, map[string]string{"id": "1", "zeta": "z", "alpha": "a"})},
		{Person: person(2, map[string]string{"id": "2", "beta": "b", "alpha": "a"})},
	}
	got := mergeColumns([]string{"id", "id", "name"}, rows)
	assert.Equal(t, []string{"id", "name", "alpha", "zeta", "beta"}, got)
}
