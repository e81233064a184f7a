package payroll

import "fmt"

// =============================================================================
// TIMELINE - Deduplicated set of worked hours for one month
// =============================================================================

// Timeline is the set of HourUnits covered by a shift list. Adding a shift
// that overlaps hours already present has no effect. Built once, read-only
// afterward.
type Timeline struct {
	month    Month
	occupied [horizon]bool
	count    int
}

// NewTimeline validates every shift, then merges them into one Timeline.
// Validation happens up front so a bad shift leaves nothing half-built.
func NewTimeline(month Month, shifts []Shift) (*Timeline, error) {
	for i, s := range shifts {
		if err := s.validate(); err != nil {
			err.Index = i
			return nil, err
		}
	}

	t := &Timeline{month: month}
	for _, s := range shifts {
		for off := s.start(); off < s.end(); off++ {
			if !t.occupied[off] {
				t.occupied[off] = true
				t.count++
			}
		}
	}
	return t, nil
}

func (s Shift) validate() *InvalidShiftError {
	invalid := func(format string, args ...any) *InvalidShiftError {
		return &InvalidShiftError{Shift: s, Reason: fmt.Sprintf(format, args...)}
	}
	switch {
	case s.StartHour < 0 || s.StartHour >= HoursPerDay:
		return invalid("start hour %d outside 0..23", s.StartHour)
	case s.EndHour < 0 || s.EndHour >= HoursPerDay:
		return invalid("end hour %d outside 0..23", s.EndHour)
	case s.StartDay < 1 || s.EndDay < 1:
		return invalid("days are 1-based")
	case s.StartDay > MaxDay || s.EndDay > MaxDay:
		return invalid("day outside 1..%d", MaxDay)
	case s.end() < s.start():
		return invalid("end precedes start")
	}
	return nil
}

func (t *Timeline) Month() Month { return t.month }

// Len is the number of distinct worked hours.
func (t *Timeline) Len() int { return t.count }

func (t *Timeline) Contains(u HourUnit) bool {
	off := u.offset()
	if u.Hour < 0 || u.Hour >= HoursPerDay || off < 0 || off >= horizon {
		return false
	}
	return t.occupied[off]
}

// Units returns the worked hours in chronological order.
func (t *Timeline) Units() []HourUnit {
	units := make([]HourUnit, 0, t.count)
	for off, ok := range t.occupied {
		if ok {
			units = append(units, hourAt(off))
		}
	}
	return units
}

// HoursByDay counts worked hours per day coordinate, including spill-over days.
func (t *Timeline) HoursByDay() map[int]int {
	byDay := make(map[int]int)
	for _, u := range t.Units() {
		byDay[u.Day]++
	}
	return byDay
}
