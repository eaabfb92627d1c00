package output

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/cohortplan/internal/domain"
)

// YAMLFormatter writes the same document as JSONFormatter in YAML
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(result *domain.RunResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(buildReport(result)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
