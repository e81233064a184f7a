/*
Package payroll provides the statutory wage calculation engine.

PURPOSE:
  Turns a worker's shifts for one month into five pay components: base pay,
  overtime premium, night premium, holiday premium and the weekly-rest
  allowance. The engine is a pure, single-pass pipeline with no state kept
  between calls.

PIPELINE:
  Shift list -> Timeline (deduplicated hour units)
             -> ClassifiedHour list (night / holiday / week annotations)
             -> five PayPolicy passes, each Timeline x wage -> PolicyResult
             -> Summary (exact integer total)

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity with a unit (hours or currency)
  - Shift: One raw half-open work interval [start, end)
  - HourUnit: One worked clock hour, identified by (day, hour)
  - ClassifiedHour: An HourUnit annotated with its calendar attributes
  - PolicyResult / Summary: Outputs of the policies and of the assembler

DESIGN PRINCIPLES:
  1. Set semantics: an hour covered by two shifts is worked once
  2. Precision: decimal.Decimal for all premium math, integer pay amounts
  3. Independent lenses: an hour may count as overtime, night and holiday
     at the same time; policies never partition the timeline

USAGE:
  calc := payroll.NewCalculator(payroll.StatutoryRules())
  summary, err := calc.Calculate(payroll.Input{
      Shifts: []payroll.Shift{{StartDay: 1, StartHour: 9, EndDay: 1, EndHour: 18}},
      Wage:   10000,
      Year:   2025,
      Month:  time.January,
  })

SEE ALSO:
  - timeline.go: Shift normalization
  - classify.go: Hour classification
  - policy.go: The five pay policies
  - engine.go: Calculator and result assembly
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitHours    Unit = "hours"
	UnitCurrency Unit = "currency"
)

func NewHours(n int) Amount                   { return Amount{Value: decimal.NewFromInt(int64(n)), Unit: UnitHours} }
func NewHoursDecimal(d decimal.Decimal) Amount { return Amount{Value: d, Unit: UnitHours} }
func NewCurrency(n int64) Amount              { return Amount{Value: decimal.NewFromInt(n), Unit: UnitCurrency} }

// NewPay truncates d toward zero to a whole currency unit.
func NewPay(d decimal.Decimal) Amount { return Amount{Value: d.Truncate(0), Unit: UnitCurrency} }

func (a Amount) Zero() Amount        { return Amount{Value: decimal.Zero, Unit: a.Unit} }
func (a Amount) Add(b Amount) Amount { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) IsZero() bool        { return a.Value.IsZero() }
func (a Amount) Equal(b Amount) bool { return a.Unit == b.Unit && a.Value.Equal(b.Value) }
func (a Amount) Int64() int64        { return a.Value.IntPart() }
func (a Amount) Float64() float64    { f, _ := a.Value.Float64(); return f }
func (a Amount) String() string      { return a.Value.String() + " " + string(a.Unit) }

// =============================================================================
// SHIFT - Raw work interval as reported by the caller
// =============================================================================

// Shift is the half-open interval [StartDay@StartHour, EndDay@EndHour).
// Days are 1-based within the target month and may run past the month's
// last day when a shift crosses midnight at month end.
type Shift struct {
	StartDay  int
	StartHour int
	EndDay    int
	EndHour   int
}

// start and end are hour offsets from day 1 00:00.
func (s Shift) start() int { return (s.StartDay-1)*HoursPerDay + s.StartHour }
func (s Shift) end() int   { return (s.EndDay-1)*HoursPerDay + s.EndHour }

// Hours is the raw length of the interval, before deduplication.
func (s Shift) Hours() int { return s.end() - s.start() }

// =============================================================================
// HOUR UNIT - One worked clock hour
// =============================================================================

type HourUnit struct {
	Day  int
	Hour int
}

func hourAt(offset int) HourUnit {
	return HourUnit{Day: offset/HoursPerDay + 1, Hour: offset % HoursPerDay}
}

func (u HourUnit) offset() int { return (u.Day-1)*HoursPerDay + u.Hour }

// ClassifiedHour is an HourUnit with its calendar attributes.
// Date and Week are only set when InMonth is true.
type ClassifiedHour struct {
	HourUnit
	Date    time.Time
	InMonth bool
	Night   bool
	Holiday bool
	Week    WeekKey
}

// =============================================================================
// RESULTS
// =============================================================================

type PolicyKind string

const (
	KindBase       PolicyKind = "base"
	KindOvertime   PolicyKind = "overtime"
	KindNight      PolicyKind = "night"
	KindHoliday    PolicyKind = "holiday"
	KindWeeklyRest PolicyKind = "weekly_rest"
)

// PolicyResult is one policy's output. Pay is always a whole currency amount.
type PolicyResult struct {
	Kind  PolicyKind
	Hours Amount
	Pay   Amount
}

// Input is the validated request handed to the Calculator.
type Input struct {
	Shifts []Shift
	Wage   int
	Year   int
	Month  time.Month
}

// Summary is the assembled result of one calculation.
type Summary struct {
	TotalWorkHours Amount
	OvertimeHours  Amount
	NightHours     Amount
	HolidayHours   Amount

	BasePay          Amount
	OvertimePay      Amount
	NightPay         Amount
	HolidayPay       Amount
	WeeklyHolidayPay Amount
	TotalPay         Amount

	// Breakdown holds every policy result in KindBase..KindWeeklyRest order.
	Breakdown []PolicyResult
}
