package domain

import (
	"time"
)

// PersonRecord is one roster row as handed over by the ingestion layer.
// Fields holds the original column values and is never modified by the engine.
// Row is the 1-based data row in the source roster, used to name the person in warnings.
type PersonRecord struct {
	Row            int               `yaml:"row" json:"row"`
	Fields         map[string]string `yaml:"fields" json:"fields"`
	BirthDate      time.Time         `yaml:"birth_date" json:"birth_date"`
	BirthDateValid bool              `yaml:"birth_date_valid" json:"birth_date_valid"`
	IsFemale       bool              `yaml:"is_female" json:"is_female"`
}

// Field returns the original value stored under column name, or "" when absent
func (p PersonRecord) Field(name string) string {
	return p.Fields[name]
}

// BirthYear returns the year of the parsed birth date, or 0 when the birth date is invalid
func (p PersonRecord) BirthYear() int {
	if !p.BirthDateValid {
		return 0
	}
	return p.BirthDate.Year()
}

// Population is the full roster for one run.
// Columns keeps the original column order so renderers can reproduce it.
type Population struct {
	Columns []string       `yaml:"columns" json:"columns"`
	Records []PersonRecord `yaml:"records" json:"records"`
}

// Len returns the number of records in the population
func (p *Population) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Records)
}

// ValidBirthDates counts records with a parseable birth date
func (p *Population) ValidBirthDates() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, r := range p.Records {
		if r.BirthDateValid {
			n++
		}
	}
	return n
}
