// Package config loads and validates a scheduling run configuration.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rgehrsitz/cohortplan/internal/calendar"
	"github.com/rgehrsitz/cohortplan/internal/domain"
	"github.com/rgehrsitz/cohortplan/internal/output"
	"github.com/rgehrsitz/cohortplan/internal/roster"
)

// EnvPrefix marks environment overrides, e.g. COHORTPLAN_TARGET_YEAR=2026 or
// COHORTPLAN_OUTPUT__FORMAT=json.
const EnvPrefix = "COHORTPLAN_"

// MaxVisitCount bounds visit_count; month steps cannot keep more than twelve
// visits in one year strictly increasing.
const MaxVisitCount = domain.MonthsPerYear

// File is the on-disk run configuration
type File struct {
	TargetYear      int            `yaml:"target_year"`
	SaturdayWorking bool           `yaml:"saturday_working"`
	Holidays        []string       `yaml:"holidays"`
	HolidayCalendar string         `yaml:"holiday_calendar"`
	Roster          RosterConfig   `yaml:"roster"`
	Output          OutputConfig   `yaml:"output"`
	Cohorts         []CohortConfig `yaml:"cohorts"`
}

// RosterConfig names the roster file and its columns
type RosterConfig struct {
	Path            string   `yaml:"path"`
	BirthDateColumn string   `yaml:"birth_date_column"`
	GenderColumn    string   `yaml:"gender_column"`
	IDColumn        string   `yaml:"id_column"`
	FemaleValues    []string `yaml:"female_values"`
	DateFormats     []string `yaml:"date_formats"`
	Delimiter       string   `yaml:"delimiter"`
}

// OutputConfig selects where and how the plan is written
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// CohortConfig is one cohort rule as written in the config file
type CohortConfig struct {
	Name              string `yaml:"name"`
	StartYear         int    `yaml:"start_year"`
	EndYear           int    `yaml:"end_year"`
	Gender            string `yaml:"gender"`
	VisitCount        int    `yaml:"visit_count"`
	UseBirthdayAnchor bool   `yaml:"use_birthday_anchor"`
	MonthlyCounts     []int  `yaml:"monthly_counts"`
}

// InputParser handles parsing of configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a YAML or JSON configuration, applies environment
// overrides and defaults, and validates the result.
func (ip *InputParser) LoadFromFile(path string) (*File, error) {
	k := koanf.New(".")
	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	var cfg File
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.SetDefaults()
	if err := ip.ValidateConfiguration(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	base := filepath.Dir(path)
	cfg.Roster.Path = resolve(base, cfg.Roster.Path)
	cfg.Output.Dir = resolve(base, cfg.Output.Dir)
	return &cfg, nil
}

// resolve makes relative paths relative to the config file directory
func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// envKey maps COHORTPLAN_OUTPUT__FORMAT to output.format
func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// SetDefaults fills optional fields
func (f *File) SetDefaults() {
	if f.Output.Format == "" {
		f.Output.Format = "csv"
	}
	if f.Output.Dir == "" {
		f.Output.Dir = "plan"
	}
	if len(f.Roster.FemaleValues) == 0 {
		f.Roster.FemaleValues = append([]string(nil), roster.DefaultFemaleValues...)
	}
	if len(f.Roster.DateFormats) == 0 {
		f.Roster.DateFormats = append([]string(nil), roster.DefaultDateFormats...)
	}
	for i := range f.Cohorts {
		c := &f.Cohorts[i]
		if c.Gender == "" {
			c.Gender = string(domain.GenderAll)
		}
		if c.VisitCount == 0 {
			c.VisitCount = 1
		}
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(f *File) error {
	if f.TargetYear < 1000 || f.TargetYear > 9999 {
		return fmt.Errorf("target_year must have four digits, got %d", f.TargetYear)
	}
	if _, err := calendar.ParseHolidays(f.Holidays); err != nil {
		return fmt.Errorf("holidays: %w", err)
	}
	if f.HolidayCalendar != "" {
		if _, err := calendar.NamedHolidays(f.HolidayCalendar, f.TargetYear); err != nil {
			return fmt.Errorf("holiday_calendar: %w", err)
		}
	}
	if err := ip.validateRoster(&f.Roster); err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	if output.GetFormatterByName(f.Output.Format) == nil {
		return fmt.Errorf("output: unknown format %q (available: %s)", f.Output.Format, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	if len(f.Cohorts) == 0 {
		return fmt.Errorf("at least one cohort is required")
	}
	for i := range f.Cohorts {
		c := &f.Cohorts[i]
		if err := ip.validateCohort(c); err != nil {
			return fmt.Errorf("cohort %d (%s) validation failed: %w", i, c.Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateRoster(r *RosterConfig) error {
	if r.Path == "" {
		return fmt.Errorf("path is required")
	}
	if r.BirthDateColumn == "" {
		return fmt.Errorf("birth_date_column is required")
	}
	if len([]rune(r.Delimiter)) > 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", r.Delimiter)
	}
	return nil
}

func (ip *InputParser) validateCohort(c *CohortConfig) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if c.StartYear > c.EndYear {
		return fmt.Errorf("start_year %d is after end_year %d", c.StartYear, c.EndYear)
	}
	if _, err := domain.ParseGenderFilter(c.Gender); err != nil {
		return err
	}
	if c.VisitCount < 1 || c.VisitCount > MaxVisitCount {
		return fmt.Errorf("visit_count must be between 1 and %d, got %d", MaxVisitCount, c.VisitCount)
	}
	if len(c.MonthlyCounts) != 0 && len(c.MonthlyCounts) != domain.MonthsPerYear {
		return fmt.Errorf("monthly_counts needs %d values, got %d", domain.MonthsPerYear, len(c.MonthlyCounts))
	}
	for i, n := range c.MonthlyCounts {
		if n < 0 {
			return fmt.Errorf("monthly_counts[%d] cannot be negative", i)
		}
	}
	return nil
}

// ToRunConfig builds the engine configuration. Named calendar holidays are
// merged with the explicit dates.
func (f *File) ToRunConfig() (*domain.RunConfig, error) {
	holidays, err := calendar.ParseHolidays(f.Holidays)
	if err != nil {
		return nil, fmt.Errorf("holidays: %w", err)
	}
	if f.HolidayCalendar != "" {
		named, err := calendar.NamedHolidays(f.HolidayCalendar, f.TargetYear)
		if err != nil {
			return nil, fmt.Errorf("holiday_calendar: %w", err)
		}
		holidays.Merge(named)
	}

	rc := &domain.RunConfig{
		TargetYear:      f.TargetYear,
		Holidays:        holidays,
		SaturdayWorking: f.SaturdayWorking,
		Cohorts:         make([]domain.CohortRule, 0, len(f.Cohorts)),
	}
	for i, c := range f.Cohorts {
		gender, err := domain.ParseGenderFilter(c.Gender)
		if err != nil {
			return nil, fmt.Errorf("cohort %d (%s): %w", i, c.Name, err)
		}
		rule := domain.CohortRule{
			Name:              c.Name,
			StartYear:         c.StartYear,
			EndYear:           c.EndYear,
			Gender:            gender,
			VisitCount:        c.VisitCount,
			UseBirthdayAnchor: c.UseBirthdayAnchor,
		}
		copy(rule.MonthlyCounts[:], c.MonthlyCounts)
		rc.Cohorts = append(rc.Cohorts, rule)
	}
	return rc, nil
}

// RosterOptions converts the roster section for the roster loader
func (f *File) RosterOptions() roster.Options {
	opts := roster.Options{
		BirthDateColumn: f.Roster.BirthDateColumn,
		GenderColumn:    f.Roster.GenderColumn,
		IDColumn:        f.Roster.IDColumn,
		FemaleValues:    f.Roster.FemaleValues,
		DateFormats:     f.Roster.DateFormats,
	}
	if r := []rune(f.Roster.Delimiter); len(r) == 1 {
		opts.Comma = r[0]
	}
	return opts
}
