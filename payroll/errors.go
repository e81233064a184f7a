/*
errors.go - Error types for the payroll engine

ERROR CATEGORIES:
  1. Input errors - malformed shift, impossible year/month
  2. Configuration errors - invalid rule parameters
  3. Store errors - unknown rule set

All input errors are detected before any policy runs; a failed
calculation never returns a partial Summary.

USAGE:
  if errors.Is(err, payroll.ErrInvalidShift) {
      var se *payroll.InvalidShiftError
      errors.As(err, &se)
      log.Printf("shift #%d: %s", se.Index, se.Reason)
  }
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidShift is returned when a shift's interval is malformed.
	ErrInvalidShift = errors.New("invalid shift")

	// ErrInvalidCalendar is returned for an impossible year/month pair.
	ErrInvalidCalendar = errors.New("invalid calendar")

	// ErrInvalidRules is returned when rule parameters are unusable.
	ErrInvalidRules = errors.New("invalid rules")

	// ErrUnknownWeekGrouping is returned for an unregistered week strategy name.
	ErrUnknownWeekGrouping = errors.New("unknown week grouping")

	// ErrRuleSetNotFound is returned when a referenced rule set doesn't exist.
	ErrRuleSetNotFound = errors.New("rule set not found")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// InvalidShiftError identifies the offending shift by its position in the input.
type InvalidShiftError struct {
	Index  int
	Shift  Shift
	Reason string
}

func (e *InvalidShiftError) Error() string {
	return fmt.Sprintf("invalid shift #%d (day %d %02d:00 - day %d %02d:00): %s",
		e.Index, e.Shift.StartDay, e.Shift.StartHour, e.Shift.EndDay, e.Shift.EndHour, e.Reason)
}

func (e *InvalidShiftError) Unwrap() error { return ErrInvalidShift }

type InvalidCalendarError struct {
	Year   int
	Month  int
	Reason string
}

func (e *InvalidCalendarError) Error() string {
	return fmt.Sprintf("invalid calendar %d-%02d: %s", e.Year, e.Month, e.Reason)
}

func (e *InvalidCalendarError) Unwrap() error { return ErrInvalidCalendar }

type InvalidRulesError struct {
	Field  string
	Reason string
}

func (e *InvalidRulesError) Error() string {
	return fmt.Sprintf("invalid rules: %s %s", e.Field, e.Reason)
}

func (e *InvalidRulesError) Unwrap() error { return ErrInvalidRules }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidShift) ||
		errors.Is(err, ErrInvalidCalendar) ||
		errors.Is(err, ErrInvalidRules) ||
		errors.Is(err, ErrUnknownWeekGrouping)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRuleSetNotFound)
}
