/*
policy.go - The five pay policies and the rules that parameterize them

PURPOSE:
  Each policy is an independent lens over the same classified timeline.
  They never partition hours: one Sunday night hour past the daily limit
  is counted by the overtime, night AND holiday policies, because those
  premiums stack on the same base hour.

POLICIES:
  BasePolicy:       every worked hour x wage
  OvertimePolicy:   hours past the daily limit, per day coordinate, x rate
  NightPolicy:      hours in 22:00-06:00 x rate
  HolidayPolicy:    Sunday hours, first 8 at rate, the rest at overtime rate
  WeeklyRestPolicy: weeks with >= threshold hours earn
                    min(hours, cap) / cap x credited-day hours of pay

ROUNDING:
  Premium math is exact decimal; every policy truncates its pay to a whole
  currency unit before handing it to the assembler.

EXAMPLE:
  rules := payroll.StatutoryRules()
  rules.WeekGrouping = payroll.ISOWeeks{}
  for _, p := range rules.Policies() {
      result := p.Calculate(hours, decimal.NewFromInt(10000))
  }
*/
package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// RULES - Statutory parameters
// =============================================================================

// Rules holds the parameters of the five policies. The night window and the
// holiday weekday are fixed and not part of Rules.
type Rules struct {
	DailyLimitHours int
	OvertimeRate    decimal.Decimal

	NightRate decimal.Decimal

	HolidayRate         decimal.Decimal
	HolidayOvertimeRate decimal.Decimal

	WeeklyThresholdHours int
	WeeklyCapHours       int
	CreditedDayHours     int
	WeekGrouping         WeekGrouper
}

// StatutoryRules returns the fixed regulatory parameters.
func StatutoryRules() Rules {
	half := decimal.NewFromFloat(0.5)
	return Rules{
		DailyLimitHours:      8,
		OvertimeRate:         half,
		NightRate:            half,
		HolidayRate:          half,
		HolidayOvertimeRate:  decimal.NewFromInt(1),
		WeeklyThresholdHours: 15,
		WeeklyCapHours:       40,
		CreditedDayHours:     8,
		WeekGrouping:         FixedBlockWeeks{},
	}
}

func (r Rules) Validate() error {
	switch {
	case r.DailyLimitHours <= 0:
		return &InvalidRulesError{Field: "daily_limit_hours", Reason: "must be positive"}
	case r.WeeklyCapHours <= 0:
		return &InvalidRulesError{Field: "weekly_cap_hours", Reason: "must be positive"}
	case r.WeeklyThresholdHours < 0:
		return &InvalidRulesError{Field: "weekly_threshold_hours", Reason: "must not be negative"}
	case r.CreditedDayHours < 0:
		return &InvalidRulesError{Field: "credited_day_hours", Reason: "must not be negative"}
	}
	rates := []struct {
		field string
		rate  decimal.Decimal
	}{
		{"overtime_rate", r.OvertimeRate},
		{"night_rate", r.NightRate},
		{"holiday_rate", r.HolidayRate},
		{"holiday_overtime_rate", r.HolidayOvertimeRate},
	}
	for _, rt := range rates {
		if rt.rate.IsNegative() {
			return &InvalidRulesError{Field: rt.field, Reason: "must not be negative"}
		}
	}
	return nil
}

// Weeks returns the configured week strategy, defaulting to fixed blocks.
func (r Rules) Weeks() WeekGrouper {
	if r.WeekGrouping == nil {
		return FixedBlockWeeks{}
	}
	return r.WeekGrouping
}

// Policies returns the five policies in assembly order.
func (r Rules) Policies() []PayPolicy {
	return []PayPolicy{
		BasePolicy{},
		OvertimePolicy{DailyLimit: r.DailyLimitHours, Rate: r.OvertimeRate},
		NightPolicy{Rate: r.NightRate},
		HolidayPolicy{DailyLimit: r.DailyLimitHours, Rate: r.HolidayRate, OverRate: r.HolidayOvertimeRate},
		WeeklyRestPolicy{Threshold: r.WeeklyThresholdHours, Cap: r.WeeklyCapHours, CreditedDay: r.CreditedDayHours},
	}
}

// =============================================================================
// PAY POLICY
// =============================================================================

// PayPolicy computes one pay component. Implementations must be pure: the
// result depends only on hours and wage, and hours is never modified.
type PayPolicy interface {
	Kind() PolicyKind
	Calculate(hours []ClassifiedHour, wage decimal.Decimal) PolicyResult
}

func hoursTimes(n int, wage, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(n)).Mul(wage).Mul(rate)
}

type BasePolicy struct{}

func (BasePolicy) Kind() PolicyKind { return KindBase }

func (BasePolicy) Calculate(hours []ClassifiedHour, wage decimal.Decimal) PolicyResult {
	n := len(hours)
	return PolicyResult{
		Kind:  KindBase,
		Hours: NewHours(n),
		Pay:   NewPay(decimal.NewFromInt(int64(n)).Mul(wage)),
	}
}

// OvertimePolicy pays the premium for hours past DailyLimit on each day
// coordinate, spill-over days included.
type OvertimePolicy struct {
	DailyLimit int
	Rate       decimal.Decimal
}

func (OvertimePolicy) Kind() PolicyKind { return KindOvertime }

func (p OvertimePolicy) Calculate(hours []ClassifiedHour, wage decimal.Decimal) PolicyResult {
	byDay := make(map[int]int)
	for _, h := range hours {
		byDay[h.Day]++
	}
	overtime := 0
	for _, n := range byDay {
		if n > p.DailyLimit {
			overtime += n - p.DailyLimit
		}
	}
	return PolicyResult{
		Kind:  KindOvertime,
		Hours: NewHours(overtime),
		Pay:   NewPay(hoursTimes(overtime, wage, p.Rate)),
	}
}

type NightPolicy struct {
	Rate decimal.Decimal
}

func (NightPolicy) Kind() PolicyKind { return KindNight }

func (p NightPolicy) Calculate(hours []ClassifiedHour, wage decimal.Decimal) PolicyResult {
	night := 0
	for _, h := range hours {
		if h.Night {
			night++
		}
	}
	return PolicyResult{
		Kind:  KindNight,
		Hours: NewHours(night),
		Pay:   NewPay(hoursTimes(night, wage, p.Rate)),
	}
}

// HolidayPolicy pays Rate on the first DailyLimit hours of each holiday and
// OverRate on the rest of that day.
type HolidayPolicy struct {
	DailyLimit int
	Rate       decimal.Decimal
	OverRate   decimal.Decimal
}

func (HolidayPolicy) Kind() PolicyKind { return KindHoliday }

func (p HolidayPolicy) Calculate(hours []ClassifiedHour, wage decimal.Decimal) PolicyResult {
	byDay := make(map[int]int)
	for _, h := range hours {
		if h.InMonth && h.Holiday {
			byDay[h.Day]++
		}
	}
	under, over := 0, 0
	for _, n := range byDay {
		under += min(n, p.DailyLimit)
		over += max(0, n-p.DailyLimit)
	}
	pay := NewPay(hoursTimes(under, wage, p.Rate)).Add(NewPay(hoursTimes(over, wage, p.OverRate)))
	return PolicyResult{
		Kind:  KindHoliday,
		Hours: NewHours(under + over),
		Pay:   pay,
	}
}

// WeeklyRestPolicy credits a paid rest day to weeks with at least Threshold
// hours, proportional to hours worked and capped at Cap.
type WeeklyRestPolicy struct {
	Threshold   int
	Cap         int
	CreditedDay int
}

func (WeeklyRestPolicy) Kind() PolicyKind { return KindWeeklyRest }

func (p WeeklyRestPolicy) Calculate(hours []ClassifiedHour, wage decimal.Decimal) PolicyResult {
	credited := NewHoursDecimal(decimal.Zero)
	pay := NewCurrency(0)
	if p.Cap <= 0 {
		return PolicyResult{Kind: KindWeeklyRest, Hours: credited, Pay: pay}
	}
	capHours := decimal.NewFromInt(int64(p.Cap))
	day := decimal.NewFromInt(int64(p.CreditedDay))
	for _, n := range GroupIntoWeeks(hours) {
		if n < p.Threshold {
			continue
		}
		weekHours := decimal.NewFromInt(int64(min(n, p.Cap))).Mul(day).Div(capHours)
		credited = credited.Add(NewHoursDecimal(weekHours))
		pay = pay.Add(NewPay(weekHours.Mul(wage)))
	}
	return PolicyResult{Kind: KindWeeklyRest, Hours: credited, Pay: pay}
}
