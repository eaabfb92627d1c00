package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/cohortplan/internal/domain"
)

// DefaultPreviewRows is how many plan rows the console report shows
const DefaultPreviewRows = 20

// ConsoleFormatter renders a cohort summary table, the warnings and a preview of
// the plan. Unplanned rows are highlighted.
type ConsoleFormatter struct {
	// PreviewRows limits the plan preview; zero or less shows every row.
	PreviewRows int
}

func (ConsoleFormatter) Name() string { return "console" }

func (cf ConsoleFormatter) Format(result *domain.RunResult) ([]byte, error) {
	var sb strings.Builder
	plan := result.Plan

	sb.WriteString(TitleStyle.Render(fmt.Sprintf("COHORT VISIT PLAN %d", result.TargetYear)))
	sb.WriteString("\n")
	sb.WriteString(SubtitleStyle.Render(fmt.Sprintf("Run %s: %d people, %d plan rows, %d unplanned",
		result.RunID, result.Population, len(plan.Rows), plan.UnplannedCount())))
	sb.WriteString("\n\n")

	sb.WriteString(cohortTable(result.Cohorts))
	sb.WriteString("\n")

	var warnings []string
	for _, c := range result.Cohorts {
		warnings = append(warnings, c.Warnings...)
	}
	if len(warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range warnings {
			sb.WriteString(WarningStyle.Render("  ! " + w))
			sb.WriteString("\n")
		}
	}

	rows := plan.Rows
	if cf.PreviewRows > 0 && len(rows) > cf.PreviewRows {
		rows = rows[:cf.PreviewRows]
	}
	sb.WriteString(fmt.Sprintf("\nPlan (%d of %d rows):\n", len(rows), len(plan.Rows)))
	sb.WriteString(planTable(plan, rows))
	sb.WriteString("\n")

	return []byte(sb.String()), nil
}

func cohortTable(cohorts []domain.CohortResult) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers("Cohort", "Mode", "Visits", "Eligible", "Assigned", "Unplanned", "Coverage")

	short := map[int]bool{}
	for i, c := range cohorts {
		if len(c.Unplanned) > 0 {
			short[i] = true
		}
		t.Row(
			c.Rule.Label(),
			c.Rule.Mode(),
			strconv.Itoa(c.Rule.VisitCount),
			strconv.Itoa(c.Eligible),
			strconv.Itoa(len(c.Assigned)),
			strconv.Itoa(len(c.Unplanned)),
			percent(c.Coverage),
		)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return TableHeaderStyle
		case short[row]:
			return UnplannedStyle
		default:
			return TableCellStyle
		}
	})
	return t.String()
}

func planTable(plan domain.ConsolidatedPlan, rows []domain.PlanRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(planHeader(plan.Columns, plan.VisitColumns)...)

	for _, row := range rows {
		t.Row(planRecord(row, plan.Columns, len(plan.VisitColumns))...)
	}
	t.StyleFunc(func(r, col int) lipgloss.Style {
		switch {
		case r == table.HeaderRow:
			return TableHeaderStyle
		case r >= 0 && r < len(rows) && rows[r].Unplanned:
			return UnplannedStyle
		default:
			return TableCellStyle
		}
	})
	return t.String()
}

func percent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
