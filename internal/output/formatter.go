// Package output renders a scheduling run as CSV, JSON, YAML or a console report.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rgehrsitz/cohortplan/internal/domain"
)

// Formatter renders a run result
type Formatter interface {
	Name() string
	Format(result *domain.RunResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(result *domain.RunResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.RunResult) ([]byte, error) {
	return f.F(result)
}

var registry = map[string]func() Formatter{
	"csv":     func() Formatter { return CSVFormatter{} },
	"json":    func() Formatter { return JSONFormatter{} },
	"yaml":    func() Formatter { return YAMLFormatter{} },
	"console": func() Formatter { return ConsoleFormatter{PreviewRows: DefaultPreviewRows} },
}

var aliases = map[string]string{
	"yml":   "yaml",
	"table": "console",
	"text":  "console",
}

var extensions = map[string]string{
	"csv":     "csv",
	"json":    "json",
	"yaml":    "yaml",
	"console": "txt",
}

// GetFormatterByName returns the formatter registered under name or one of its
// aliases, or nil.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	if mk, ok := registry[name]; ok {
		return mk()
	}
	return nil
}

// AvailableFormatterNames lists the registered formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for n := range aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders result with f into dir/report.<ext> and returns the path
func WriteFormatted(f Formatter, result *domain.RunResult, dir string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	ext, ok := extensions[f.Name()]
	if !ok {
		ext = "txt"
	}
	path := filepath.Join(dir, "report."+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
