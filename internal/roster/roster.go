// Package roster reads a population roster from CSV into a domain.Population.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/cohortplan/internal/calendar"
	"github.com/rgehrsitz/cohortplan/internal/domain"
	"github.com/rgehrsitz/cohortplan/internal/logger"
)

// ErrMissingColumn is returned when a configured column is not in the header
var ErrMissingColumn = errors.New("column not found in roster header")

// DefaultDateFormats are tried in order when no layouts are configured
var DefaultDateFormats = []string{"2006-01-02", "02.01.2006", "01/02/2006"}

// DefaultFemaleValues are the gender values read as female when none are configured
var DefaultFemaleValues = []string{"f", "female", "w"}

// Options name the roster columns the engine needs. Matching is exact after trimming.
type Options struct {
	BirthDateColumn string
	// GenderColumn is optional; without it nobody is female.
	GenderColumn string
	// IDColumn is optional and only used to report duplicate identifiers.
	IDColumn     string
	FemaleValues []string
	DateFormats  []string
	// Comma defaults to ','.
	Comma rune
}

// Stats describes what the loader saw
type Stats struct {
	Rows              int
	SkippedBlankRows  int
	InvalidBirthDates int
	Female            int
	DuplicateIDs      []string
}

// Loader reads rosters with fixed options
type Loader struct {
	Options Options
	Logger  logger.Logger
}

// NewLoader creates a loader with a no-op logger
func NewLoader(opts Options) *Loader {
	return &Loader{Options: opts, Logger: logger.NopLogger{}}
}

// LoadFile reads the roster at path
func (l *Loader) LoadFile(path string) (*domain.Population, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open roster %s: %w", path, err)
	}
	defer f.Close()

	pop, stats, err := l.Read(f)
	if err != nil {
		return nil, stats, fmt.Errorf("roster %s: %w", path, err)
	}
	return pop, stats, nil
}

// Read parses a roster from r. The first record is the header.
// Rows that are entirely blank are skipped; Row numbers count data rows from 1
// including skipped ones, so they match the source file.
func (l *Loader) Read(r io.Reader) (*domain.Population, Stats, error) {
	log := l.Logger
	if log == nil {
		log = logger.NopLogger{}
	}
	opts := l.Options.withDefaults()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = opts.Comma

	header, err := cr.Read()
	if err == io.EOF {
		return nil, Stats{}, fmt.Errorf("roster is empty")
	}
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to read header: %w", err)
	}
	columns := normalizeHeader(header)

	birthIdx, err := columnIndex(columns, opts.BirthDateColumn)
	if err != nil {
		return nil, Stats{}, err
	}
	genderIdx := -1
	if opts.GenderColumn != "" {
		if genderIdx, err = columnIndex(columns, opts.GenderColumn); err != nil {
			return nil, Stats{}, err
		}
	}
	idIdx := -1
	if opts.IDColumn != "" {
		if idIdx, err = columnIndex(columns, opts.IDColumn); err != nil {
			return nil, Stats{}, err
		}
	}

	female := make(map[string]bool, len(opts.FemaleValues))
	for _, v := range opts.FemaleValues {
		female[strings.ToLower(strings.TrimSpace(v))] = true
	}

	pop := &domain.Population{Columns: columns}
	var stats Stats
	seenIDs := map[string]bool{}
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read row %d: %w", row+1, err)
		}
		row++
		if blank(rec) {
			stats.SkippedBlankRows++
			continue
		}

		fields := make(map[string]string, len(columns))
		for i, c := range columns {
			fields[c] = value(rec, i)
		}
		p := domain.PersonRecord{Row: row, Fields: fields}
		p.BirthDate, p.BirthDateValid = parseDate(value(rec, birthIdx), opts.DateFormats)
		if genderIdx >= 0 {
			p.IsFemale = female[strings.ToLower(value(rec, genderIdx))]
		}

		if !p.BirthDateValid {
			stats.InvalidBirthDates++
			log.Debugf("row %d: unparseable birth date %q", row, value(rec, birthIdx))
		}
		if p.IsFemale {
			stats.Female++
		}
		if idIdx >= 0 {
			if id := value(rec, idIdx); id != "" {
				if seenIDs[id] {
					stats.DuplicateIDs = append(stats.DuplicateIDs, id)
				}
				seenIDs[id] = true
			}
		}
		pop.Records = append(pop.Records, p)
	}
	stats.Rows = len(pop.Records)

	log.Infof("roster: %d rows, %d invalid birth dates, %d female", stats.Rows, stats.InvalidBirthDates, stats.Female)
	if stats.InvalidBirthDates > 0 {
		log.Warnf("roster: %d rows have no valid birth date and are excluded from every cohort", stats.InvalidBirthDates)
	}
	if len(stats.DuplicateIDs) > 0 {
		log.Warnf("roster: duplicate %s values: %s", opts.IDColumn, strings.Join(stats.DuplicateIDs, ", "))
	}
	return pop, stats, nil
}

func (o Options) withDefaults() Options {
	if len(o.DateFormats) == 0 {
		o.DateFormats = DefaultDateFormats
	}
	if len(o.FemaleValues) == 0 {
		o.FemaleValues = DefaultFemaleValues
	}
	if o.Comma == 0 {
		o.Comma = ','
	}
	return o
}

// normalizeHeader trims names, strips a UTF-8 BOM and names empty headers by position
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		out[i] = h
	}
	return out
}

func columnIndex(columns []string, name string) (int, error) {
	if name == "" {
		return -1, fmt.Errorf("birth date column is required")
	}
	for i, c := range columns {
		if c == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
}

func value(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseDate tries each layout in order and returns a midnight UTC date
func parseDate(s string, layouts []string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar.Normalize(t), true
		}
	}
	return time.Time{}, false
}
