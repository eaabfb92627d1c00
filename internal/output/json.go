package output

import (
	"github.com/goccy/go-json"

	"github.com/rgehrsitz/cohortplan/internal/domain"
)

// JSONFormatter writes the run summary and plan rows as indented JSON
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(result *domain.RunResult) ([]byte, error) {
	data, err := json.MarshalIndent(buildReport(result), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
