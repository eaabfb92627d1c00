package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rgehrsitz/cohortplan/internal/domain"
)

// PlanFileName is the consolidated plan file written next to the cohort files
const PlanFileName = "plan.csv"

// WriteCohortFiles writes NN_<slug>.csv for every cohort and the consolidated
// plan.csv into dir. It returns the written paths in order.
func WriteCohortFiles(dir string, result *domain.RunResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(result.Cohorts)+1)
	for i, c := range result.Cohorts {
		data, err := CohortCSV(result.Plan.Columns, c)
		if err != nil {
			return paths, fmt.Errorf("cohort %d (%s): %w", i, c.Rule.Label(), err)
		}
		path := filepath.Join(dir, CohortFileName(i, c.Rule))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	data, err := CSVFormatter{}.Format(result)
	if err != nil {
		return paths, fmt.Errorf("plan: %w", err)
	}
	path := filepath.Join(dir, PlanFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return paths, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return append(paths, path), nil
}

// CohortFileName returns the file name of the cohort at index i
func CohortFileName(i int, rule domain.CohortRule) string {
	return fmt.Sprintf("%02d_%s.csv", i+1, Slug(rule.Label()))
}

// Slug lowercases s and collapses every run of non-alphanumeric characters to one underscore
func Slug(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	if b.Len() == 0 {
		return "cohort"
	}
	return b.String()
}
