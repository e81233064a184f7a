package api

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
)

func TestDecodePayrollRequest(t *testing.T) {
	req, err := DecodePayrollRequest(strings.NewReader(`{
		"records": [
			{"start_day": 31, "start_hour": 22, "end_day": 32, "end_hour": 6},
			{"start_day": 1, "start_hour": 0, "end_day": 1, "end_hour": 8}
		],
		"wage": 9860, "year": 2024, "month": 12, "rule_set_id": "iso-week"
	}`))
	require.NoError(t, err)
	assert.Equal(t, "iso-week", req.RuleSetID)

	in := req.ToInput()
	assert.Equal(t, 9860, in.Wage)
	assert.Equal(t, time.December, in.Month)
	assert.Equal(t, []payroll.Shift{
		{StartDay: 31, StartHour: 22, EndDay: 32, EndHour: 6},
		{StartDay: 1, StartHour: 0, EndDay: 1, EndHour: 8},
	}, in.Shifts)
}

func TestDecodePayrollRequest_FieldPath(t *testing.T) {
	_, err := DecodePayrollRequest(strings.NewReader(`{
		"records": [
			{"start_day": 1, "start_hour": 9, "end_day": 1, "end_hour": 18},
			{"start_day": 0, "start_hour": 9, "end_day": 1, "end_hour": 18}
		],
		"wage": 10000, "year": 2025, "month": 1
	}`))

	var be *BindError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "records[1].start_day", be.Field)
	assert.Equal(t, "records[1].start_day: start_day must be at least 1", be.Message)
}

func TestDecodePayrollRequest_YearRange(t *testing.T) {
	_, err := DecodePayrollRequest(strings.NewReader(`{
		"records": [{"start_day": 1, "start_hour": 9, "end_day": 1, "end_hour": 18}],
		"wage": 10000, "year": 10000, "month": 1
	}`))
	var be *BindError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "year", be.Field)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{bindErrf("bad"), 400},
		{&payroll.InvalidShiftError{Reason: "x"}, 400},
		{&payroll.InvalidCalendarError{Month: 13, Reason: "x"}, 400},
		{&payroll.InvalidRulesError{Field: "f", Reason: "x"}, 400},
		{payroll.ErrUnknownWeekGrouping, 400},
		{payroll.ErrRuleSetNotFound, 404},
		{errScenarioNotFound, 404},
		{assert.AnError, 500},
	}
	for _, tc := range cases {
		status, _ := statusFor(tc.err)
		assert.Equal(t, tc.status, status, "%v", tc.err)
	}
}
