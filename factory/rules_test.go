package factory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
)

func TestParseRuleSet_DefaultsToStatutory(t *testing.T) {
	f := NewRulesFactory()

	rs, err := f.ParseRuleSet(`{"id":"minimal"}`)
	require.NoError(t, err)

	want := payroll.StatutoryRules()
	assert.Equal(t, payroll.RuleSetID("minimal"), rs.ID)
	assert.Equal(t, "minimal", rs.Name, "name falls back to id")
	assert.Equal(t, want.DailyLimitHours, rs.Rules.DailyLimitHours)
	assert.Equal(t, want.WeeklyCapHours, rs.Rules.WeeklyCapHours)
	assert.True(t, want.HolidayOvertimeRate.Equal(rs.Rules.HolidayOvertimeRate))
	assert.Equal(t, payroll.WeekGroupingFixedBlock, rs.Rules.Weeks().Name())
}

func TestParseRuleSet_Overrides(t *testing.T) {
	f := NewRulesFactory()

	rs, err := f.ParseRuleSet(`{
		"id": "custom",
		"name": "Custom",
		"week_grouping": "iso_week",
		"daily_limit_hours": 7,
		"overtime_rate": "0.75",
		"night_rate": 0.6,
		"weekly_threshold_hours": 12
	}`)
	require.NoError(t, err)

	assert.Equal(t, "Custom", rs.Name)
	assert.Equal(t, payroll.WeekGroupingISO, rs.Rules.Weeks().Name())
	assert.Equal(t, 7, rs.Rules.DailyLimitHours)
	assert.True(t, decimal.RequireFromString("0.75").Equal(rs.Rules.OvertimeRate))
	assert.True(t, decimal.RequireFromString("0.6").Equal(rs.Rules.NightRate))
	assert.Equal(t, 12, rs.Rules.WeeklyThresholdHours)
	assert.Equal(t, 40, rs.Rules.WeeklyCapHours)
}

func TestParseRuleSet_Errors(t *testing.T) {
	f := NewRulesFactory()

	_, err := f.ParseRuleSet(`{not json`)
	assert.Error(t, err)

	_, err = f.ParseRuleSet(`{"name":"no id"}`)
	assert.ErrorIs(t, err, payroll.ErrInvalidRules)

	_, err = f.ParseRuleSet(`{"id":"x","week_grouping":"lunar"}`)
	assert.ErrorIs(t, err, payroll.ErrUnknownWeekGrouping)

	_, err = f.ParseRuleSet(`{"id":"x","weekly_cap_hours":0}`)
	assert.ErrorIs(t, err, payroll.ErrInvalidRules)

	_, err = f.ParseRuleSet(`{"id":"x","holiday_rate":"-0.5"}`)
	assert.ErrorIs(t, err, payroll.ErrInvalidRules)
}

func TestMarshal_RoundTripsThroughParse(t *testing.T) {
	f := NewRulesFactory()
	rs, err := f.ParseRuleSet(`{"id":"rt","week_grouping":"iso_week","daily_limit_hours":9}`)
	require.NoError(t, err)

	doc, err := f.Marshal(*rs)
	require.NoError(t, err)
	assert.Contains(t, doc, `"week_grouping":"iso_week"`)

	back, err := f.ParseRuleSet(doc)
	require.NoError(t, err)
	assert.Equal(t, 9, back.Rules.DailyLimitHours)
	assert.Equal(t, payroll.WeekGroupingISO, back.Rules.Weeks().Name())
	assert.True(t, rs.Rules.NightRate.Equal(back.Rules.NightRate))
}

func TestPresets(t *testing.T) {
	presets, err := NewRulesFactory().Presets()
	require.NoError(t, err)
	require.Len(t, presets, 2)

	assert.Equal(t, payroll.RuleSetID(StatutoryRuleSetID), presets[0].ID)
	assert.Equal(t, payroll.WeekGroupingFixedBlock, presets[0].Rules.Weeks().Name())
	assert.Equal(t, payroll.RuleSetID(ISOWeekRuleSetID), presets[1].ID)
	assert.Equal(t, payroll.WeekGroupingISO, presets[1].Rules.Weeks().Name())
}
