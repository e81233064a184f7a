package payroll

import (
	"fmt"
	"time"
)

// =============================================================================
// WEEK GROUPING - Which hours share a week for the weekly-rest allowance
// =============================================================================

// WeekKey identifies one week under a given grouping.
type WeekKey string

// WeekGrouper assigns a calendar date to a week.
//
// Interpretations of "week" differ materially in weekly-rest pay, so the
// grouping is a strategy. FixedBlockWeeks is the default.
type WeekGrouper interface {
	// Name is the stable identifier used in rule-set documents.
	Name() string

	// WeekOf returns the week containing date.
	WeekOf(date time.Time) WeekKey
}

const (
	WeekGroupingFixedBlock = "fixed_block"
	WeekGroupingISO        = "iso_week"
)

// FixedBlockWeeks groups days 1-7 as week 1, 8-14 as week 2, and so on,
// within the date's own month. Weeks never span months.
type FixedBlockWeeks struct{}

func (FixedBlockWeeks) Name() string { return WeekGroupingFixedBlock }

func (FixedBlockWeeks) WeekOf(date time.Time) WeekKey {
	return WeekKey(fmt.Sprintf("%04d-%02d/B%d", date.Year(), int(date.Month()), (date.Day()-1)/7+1))
}

// ISOWeeks groups by ISO-8601 week (Monday through Sunday). A week that
// straddles the month boundary only sees the days inside the month.
type ISOWeeks struct{}

func (ISOWeeks) Name() string { return WeekGroupingISO }

func (ISOWeeks) WeekOf(date time.Time) WeekKey {
	y, w := date.ISOWeek()
	return WeekKey(fmt.Sprintf("%04d-W%02d", y, w))
}

// ParseWeekGrouping resolves a strategy by name. Empty means the default.
func ParseWeekGrouping(name string) (WeekGrouper, error) {
	switch name {
	case "", WeekGroupingFixedBlock:
		return FixedBlockWeeks{}, nil
	case WeekGroupingISO:
		return ISOWeeks{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWeekGrouping, name)
	}
}

// GroupIntoWeeks counts worked hours per week. Hours past the month end have
// no calendar date and are left out.
func GroupIntoWeeks(hours []ClassifiedHour) map[WeekKey]int {
	weeks := make(map[WeekKey]int)
	for _, h := range hours {
		if h.InMonth {
			weeks[h.Week]++
		}
	}
	return weeks
}
