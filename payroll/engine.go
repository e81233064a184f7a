package payroll

import (
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// CALCULATOR - Normalize, classify, run policies, assemble
// =============================================================================

// Calculator runs the pipeline for one set of Rules. It holds no per-call
// state and is safe for concurrent use.
type Calculator struct {
	Rules Rules

	// Parallel runs the five policies as concurrent tasks. Results are
	// identical to sequential execution.
	Parallel bool
}

func NewCalculator(rules Rules) *Calculator {
	return &Calculator{Rules: rules}
}

// Calculate computes the Summary for in using the statutory rules.
func Calculate(in Input) (*Summary, error) {
	return NewCalculator(StatutoryRules()).Calculate(in)
}

// Calculate validates the calendar and every shift before any policy runs,
// so an error never comes with a partial Summary.
func (c *Calculator) Calculate(in Input) (*Summary, error) {
	if err := c.Rules.Validate(); err != nil {
		return nil, err
	}
	month, err := NewMonth(in.Year, in.Month)
	if err != nil {
		return nil, err
	}
	timeline, err := NewTimeline(month, in.Shifts)
	if err != nil {
		return nil, err
	}

	hours := NewClassifier(month, c.Rules.Weeks()).ClassifyTimeline(timeline)
	wage := decimal.NewFromInt(int64(in.Wage))

	results, err := c.run(c.Rules.Policies(), hours, wage)
	if err != nil {
		return nil, err
	}
	return Assemble(results), nil
}

func (c *Calculator) run(policies []PayPolicy, hours []ClassifiedHour, wage decimal.Decimal) ([]PolicyResult, error) {
	results := make([]PolicyResult, len(policies))
	if !c.Parallel {
		for i, p := range policies {
			results[i] = p.Calculate(hours, wage)
		}
		return results, nil
	}

	// Each task writes only its own slot; hours is shared read-only.
	var g errgroup.Group
	for i, p := range policies {
		i, p := i, p
		g.Go(func() error {
			results[i] = p.Calculate(hours, wage)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// =============================================================================
// ASSEMBLER
// =============================================================================

// Assemble folds policy results into a Summary. TotalPay is the exact sum of
// the five whole-unit pays.
func Assemble(results []PolicyResult) *Summary {
	s := &Summary{
		TotalWorkHours:   NewHours(0),
		OvertimeHours:    NewHours(0),
		NightHours:       NewHours(0),
		HolidayHours:     NewHours(0),
		BasePay:          NewCurrency(0),
		OvertimePay:      NewCurrency(0),
		NightPay:         NewCurrency(0),
		HolidayPay:       NewCurrency(0),
		WeeklyHolidayPay: NewCurrency(0),
		TotalPay:         NewCurrency(0),
		Breakdown:        make([]PolicyResult, 0, len(results)),
	}
	for _, r := range results {
		switch r.Kind {
		case KindBase:
			s.TotalWorkHours, s.BasePay = r.Hours, r.Pay
		case KindOvertime:
			s.OvertimeHours, s.OvertimePay = r.Hours, r.Pay
		case KindNight:
			s.NightHours, s.NightPay = r.Hours, r.Pay
		case KindHoliday:
			s.HolidayHours, s.HolidayPay = r.Hours, r.Pay
		case KindWeeklyRest:
			s.WeeklyHolidayPay = r.Pay
		}
		s.TotalPay = s.TotalPay.Add(r.Pay)
		s.Breakdown = append(s.Breakdown, r)
	}
	return s
}
