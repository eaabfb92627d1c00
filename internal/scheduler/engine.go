// Package scheduler turns a population and a run configuration into per-cohort
// visit assignments and the consolidated plan.
package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rgehrsitz/cohortplan/internal/consolidate"
	"github.com/rgehrsitz/cohortplan/internal/domain"
	"github.com/rgehrsitz/cohortplan/internal/logger"
)

// Engine orchestrates one scheduling run. It keeps no state between runs.
type Engine struct {
	Logger logger.Logger
	// NewRunID generates the run identifier; replaced in tests.
	NewRunID func() string
}

// NewEngine creates an engine with a no-op logger
func NewEngine() *Engine {
	return &Engine{
		Logger:   logger.NopLogger{},
		NewRunID: uuid.NewString,
	}
}

// SetLogger sets the engine logger; nil selects the no-op logger
func (e *Engine) SetLogger(l logger.Logger) {
	if l == nil {
		e.Logger = logger.NopLogger{}
		return
	}
	e.Logger = l
}

// Run schedules every cohort of cfg in order and consolidates the results.
// A capacity failure in any cohort aborts the run without a result.
// Cancellation is checked between cohorts only.
func (e *Engine) Run(ctx context.Context, pop *domain.Population, cfg *domain.RunConfig) (*domain.RunResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("run config is required")
	}
	if cfg.TargetYear < 1000 || cfg.TargetYear > 9999 {
		return nil, fmt.Errorf("target year must have four digits, got %d", cfg.TargetYear)
	}
	if e.Logger == nil {
		e.Logger = logger.NopLogger{}
	}

	e.Logger.Infof("run: target year %d, %d people (%d with valid birth date), %d cohorts, %d holidays",
		cfg.TargetYear, pop.Len(), pop.ValidBirthDates(), len(cfg.Cohorts), cfg.Holidays.Len())

	results := make([]domain.CohortResult, 0, len(cfg.Cohorts))
	for i, rule := range cfg.Cohorts {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled before cohort %d: %w", i, err)
		}
		res, err := e.ScheduleCohort(pop, rule, cfg)
		if err != nil {
			e.Logger.Errorf("cohort %d (%s): %v", i, rule.Label(), err)
			return nil, fmt.Errorf("cohort %d: %w", i, err)
		}
		results = append(results, res)
	}

	var columns []string
	if pop != nil {
		columns = pop.Columns
	}
	plan := consolidate.Consolidate(columns, results)

	runID := ""
	if e.NewRunID != nil {
		runID = e.NewRunID()
	}
	e.Logger.Infof("run %s: %d plan rows, %d unplanned", runID, len(plan.Rows), plan.UnplannedCount())

	return &domain.RunResult{
		RunID:      runID,
		TargetYear: cfg.TargetYear,
		Population: pop.Len(),
		Cohorts:    results,
		Plan:       plan,
	}, nil
}
