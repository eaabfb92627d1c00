package scheduler

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when a manual monthly plan asks for more
	// people than the cohort has. It aborts the whole run.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidRule is returned when a cohort rule cannot be scheduled at all.
	ErrInvalidRule = errors.New("invalid cohort rule")
)

// CapacityExceededError names the cohort and the totals that did not fit
type CapacityExceededError struct {
	Cohort    string
	Planned   int
	Available int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("cohort %q: planned %d people but only %d available",
		e.Cohort, e.Planned, e.Available)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// IsCapacityExceeded reports whether err stems from a capacity check
func IsCapacityExceeded(err error) bool {
	return errors.Is(err, ErrCapacityExceeded)
}
