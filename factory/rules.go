/*
Package factory provides JSON to Go rule-set conversion.

PURPOSE:
  Converts JSON rule-set documents into payroll.RuleSet values and back.
  Rule sets are how an operator picks an alternative week interpretation
  (or adjusts a statutory parameter) without a code change.

JSON SCHEMA:
  {
    "id": "statutory",
    "name": "Statutory",
    "week_grouping": "fixed_block",
    "daily_limit_hours": 8,
    "overtime_rate": "0.5",
    "night_rate": "0.5",
    "holiday_rate": "0.5",
    "holiday_overtime_rate": "1.0",
    "weekly_threshold_hours": 15,
    "weekly_cap_hours": 40,
    "credited_day_hours": 8
  }

  Every field except id is optional; omitted fields take the statutory
  value. Rates accept JSON strings or numbers.

USAGE:
  f := factory.NewRulesFactory()
  rs, err := f.ParseRuleSet(`{"id":"iso","week_grouping":"iso_week"}`)
  calc := payroll.NewCalculator(rs.Rules)

SEE ALSO:
  - payroll/policy.go: Rules type definition
  - store/sqlite/sqlite.go: Stores the JSON produced by ToJSON
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RuleSetJSON is the JSON representation of a rule set.
type RuleSetJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	WeekGrouping string `json:"week_grouping,omitempty"`

	DailyLimitHours     *int             `json:"daily_limit_hours,omitempty"`
	OvertimeRate        *decimal.Decimal `json:"overtime_rate,omitempty"`
	NightRate           *decimal.Decimal `json:"night_rate,omitempty"`
	HolidayRate         *decimal.Decimal `json:"holiday_rate,omitempty"`
	HolidayOvertimeRate *decimal.Decimal `json:"holiday_overtime_rate,omitempty"`

	WeeklyThresholdHours *int `json:"weekly_threshold_hours,omitempty"`
	WeeklyCapHours       *int `json:"weekly_cap_hours,omitempty"`
	CreditedDayHours     *int `json:"credited_day_hours,omitempty"`
}

// =============================================================================
// RULES FACTORY
// =============================================================================

// RulesFactory converts JSON rule sets to payroll structs.
type RulesFactory struct{}

func NewRulesFactory() *RulesFactory {
	return &RulesFactory{}
}

// ParseRuleSet parses a JSON string into a RuleSet.
func (f *RulesFactory) ParseRuleSet(jsonStr string) (*payroll.RuleSet, error) {
	var rj RuleSetJSON
	if err := json.Unmarshal([]byte(jsonStr), &rj); err != nil {
		return nil, fmt.Errorf("failed to parse rule set JSON: %w", err)
	}
	return f.FromJSON(rj)
}

// FromJSON builds and validates a RuleSet, filling omitted fields with
// statutory values.
func (f *RulesFactory) FromJSON(rj RuleSetJSON) (*payroll.RuleSet, error) {
	id := strings.TrimSpace(rj.ID)
	if id == "" {
		return nil, &payroll.InvalidRulesError{Field: "id", Reason: "is required"}
	}

	weeks, err := payroll.ParseWeekGrouping(rj.WeekGrouping)
	if err != nil {
		return nil, err
	}

	rules := payroll.StatutoryRules()
	rules.WeekGrouping = weeks
	setInt(&rules.DailyLimitHours, rj.DailyLimitHours)
	setInt(&rules.WeeklyThresholdHours, rj.WeeklyThresholdHours)
	setInt(&rules.WeeklyCapHours, rj.WeeklyCapHours)
	setInt(&rules.CreditedDayHours, rj.CreditedDayHours)
	setRate(&rules.OvertimeRate, rj.OvertimeRate)
	setRate(&rules.NightRate, rj.NightRate)
	setRate(&rules.HolidayRate, rj.HolidayRate)
	setRate(&rules.HolidayOvertimeRate, rj.HolidayOvertimeRate)

	if err := rules.Validate(); err != nil {
		return nil, err
	}

	name := rj.Name
	if name == "" {
		name = id
	}
	return &payroll.RuleSet{ID: payroll.RuleSetID(id), Name: name, Rules: rules}, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setRate(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

// ToJSON converts a RuleSet to its full JSON form (every field populated).
func (f *RulesFactory) ToJSON(rs payroll.RuleSet) RuleSetJSON {
	r := rs.Rules
	return RuleSetJSON{
		ID:                   string(rs.ID),
		Name:                 rs.Name,
		WeekGrouping:         r.Weeks().Name(),
		DailyLimitHours:      intPtr(r.DailyLimitHours),
		OvertimeRate:         decPtr(r.OvertimeRate),
		NightRate:            decPtr(r.NightRate),
		HolidayRate:          decPtr(r.HolidayRate),
		HolidayOvertimeRate:  decPtr(r.HolidayOvertimeRate),
		WeeklyThresholdHours: intPtr(r.WeeklyThresholdHours),
		WeeklyCapHours:       intPtr(r.WeeklyCapHours),
		CreditedDayHours:     intPtr(r.CreditedDayHours),
	}
}

// Marshal serializes a RuleSet to a JSON string.
func (f *RulesFactory) Marshal(rs payroll.RuleSet) (string, error) {
	b, err := json.Marshal(f.ToJSON(rs))
	if err != nil {
		return "", fmt.Errorf("failed to marshal rule set: %w", err)
	}
	return string(b), nil
}

func intPtr(v int) *int                         { return &v }
func decPtr(v decimal.Decimal) *decimal.Decimal { return &v }

// =============================================================================
// PRESETS
// =============================================================================

const (
	StatutoryRuleSetID = "statutory"
	ISOWeekRuleSetID   = "iso-week"
)

// StatutoryRuleSetJSON is the canonical rule set: fixed 7-day blocks.
func StatutoryRuleSetJSON() string {
	return `{
		"id": "statutory",
		"name": "Statutory (fixed 7-day blocks)",
		"week_grouping": "fixed_block"
	}`
}

// ISOWeekRuleSetJSON is the statutory rule set with Monday-aligned weeks.
func ISOWeekRuleSetJSON() string {
	return `{
		"id": "iso-week",
		"name": "Statutory (ISO weeks)",
		"week_grouping": "iso_week"
	}`
}

// Presets returns the built-in rule sets.
func (f *RulesFactory) Presets() ([]payroll.RuleSet, error) {
	var out []payroll.RuleSet
	for _, doc := range []string{StatutoryRuleSetJSON(), ISOWeekRuleSetJSON()} {
		rs, err := f.ParseRuleSet(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *rs)
	}
	return out, nil
}
