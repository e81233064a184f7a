package payroll

import (
	"fmt"
	"time"
)

// =============================================================================
// CALENDAR CONSTANTS
// =============================================================================

const (
	HoursPerDay = 24

	// MaxDay is the last day coordinate a shift may touch: 31 calendar days
	// plus one spill-over day for a shift crossing midnight at month end.
	MaxDay = 32

	// horizon is the number of hour slots in a Timeline.
	horizon = MaxDay * HoursPerDay

	nightStartHour = 22
	nightEndHour   = 6

	minYear = 1
	maxYear = 9999
)

// IsNightHour reports whether the hour starting at h falls in the 22:00-06:00 window.
func IsNightHour(h int) bool { return h >= nightStartHour || h < nightEndHour }

// IsHoliday reports whether date is a statutory holiday (Sunday).
func IsHoliday(date time.Time) bool { return date.Weekday() == time.Sunday }

// =============================================================================
// MONTH - The (year, month) context of one calculation
// =============================================================================

type Month struct {
	Year  int
	Month time.Month
	Days  int
}

// NewMonth validates the year/month pair and resolves its length.
func NewMonth(year int, month time.Month) (Month, error) {
	if month < time.January || month > time.December {
		return Month{}, &InvalidCalendarError{Year: year, Month: int(month), Reason: "month must be within 1..12"}
	}
	if year < minYear || year > maxYear {
		return Month{}, &InvalidCalendarError{Year: year, Month: int(month),
			Reason: fmt.Sprintf("year must be within %d..%d", minYear, maxYear)}
	}
	return Month{Year: year, Month: month, Days: DaysIn(year, month)}, nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Day()
}

// Contains reports whether day is a real calendar day of m.
func (m Month) Contains(day int) bool { return day >= 1 && day <= m.Days }

// Date returns the calendar date of day, or false when day lies past the month end.
func (m Month) Date(day int) (time.Time, bool) {
	if !m.Contains(day) {
		return time.Time{}, false
	}
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC), true
}

func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)) }
