package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"site-planner/internal/config"
	"site-planner/internal/models"
)

// maxDurationDays bounds a single item's duration so end dates stay representable
const maxDurationDays = 1e9

// ErrDurationOutOfRange is returned when an item's duration cannot be placed on a calendar
var ErrDurationOutOfRange = errors.New("duration out of range")

// DurationEstimator converts labor-hours into calendar days for a fixed crew
type DurationEstimator struct {
	crewSize     int
	workdayHours float64
}

// NewDurationEstimator creates an estimator. Crew size and workday hours must be positive.
func NewDurationEstimator(crewSize int, workdayHours float64) (*DurationEstimator, error) {
	if crewSize <= 0 {
		return nil, fmt.Errorf("%w: crew size must be positive, got %d", config.ErrInvalidConfiguration, crewSize)
	}
	if workdayHours <= 0 {
		return nil, fmt.Errorf("%w: workday hours must be positive, got %g", config.ErrInvalidConfiguration, workdayHours)
	}
	return &DurationEstimator{crewSize: crewSize, workdayHours: workdayHours}, nil
}

// NewDurationEstimatorFromConfig creates an estimator from the crew section
func NewDurationEstimatorFromConfig(crew config.CrewConfig) (*DurationEstimator, error) {
	return NewDurationEstimator(crew.Size, crew.WorkdayHours)
}

// LaborHours returns the total labor-hours of an item
func (e *DurationEstimator) LaborHours(item *models.WorkItem) float64 {
	return item.LaborHoursPerUnit * item.Amount
}

// DurationDays returns the calendar duration of an item in (fractional) days
func (e *DurationEstimator) DurationDays(item *models.WorkItem) float64 {
	return e.LaborHours(item) / (e.workdayHours * float64(e.crewSize))
}

// CheckedDurationDays returns DurationDays, rejecting values that are not finite or too large
func (e *DurationEstimator) CheckedDurationDays(item *models.WorkItem) (float64, error) {
	days := e.DurationDays(item)
	if !(days >= 0 && days <= maxDurationDays) {
		return 0, fmt.Errorf("%w: %s needs %g days", ErrDurationOutOfRange, item.Name, days)
	}
	return days, nil
}

// AddDays moves start by a fractional number of days. Whole days go through
// the calendar and only the remainder is added as clock time.
func AddDays(start time.Time, days float64) time.Time {
	whole := math.Floor(days)
	frac := days - whole
	return start.AddDate(0, 0, int(whole)).Add(time.Duration(frac * float64(24*time.Hour)))
}
