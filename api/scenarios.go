/*
scenarios.go - Built-in worked examples

PURPOSE:
  A catalog of reference calculations with their expected total pay. They
  document the statutory rules by example and double as a smoke test of a
  deployed instance: running one must return matches_expected=true.

AVAILABLE SCENARIOS (wage 10,000 unless noted):

	nine-hour-day:        Day 1 09-18, one hour of overtime
	night-shift:          Day 1 22:00 to day 2 02:00, four night hours
	sunday-ten-hours:     Sunday 09-19, holiday premium 8h at 50% + 2h at 100%
	weekly-rest-15h:      Three 5-hour days, weekly rest allowance earned
	weekly-rest-14h:      Three days totalling 14 hours, no allowance
	weekly-rest-capped:   Five 9-hour weekdays, allowance capped at 8 hours
	two-shifts-one-day:   4h + 5h on the same day add up to 1h overtime
	partial-night:        20-24, only 22-24 is night
	sunday-eight-hours:   Sunday 09-17, holiday premium at 50% only
	friday-to-sunday:     48 continuous hours split per calendar day

USAGE VIA API:

	GET  /api/v1/scenarios
	POST /api/v1/scenarios/weekly-rest-capped/run

Scenarios always run under the built-in statutory rules. A stored rule set
with the id "statutory" does not affect them.
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type record struct{ startDay, startHour, endDay, endHour int }

func scenarioRequest(year, month int, records ...record) PayrollRequest {
	recs := make([]WorkRecordRequest, len(records))
	for i, r := range records {
		recs[i] = WorkRecordRequest{
			StartDay:  intPtr(r.startDay),
			StartHour: intPtr(r.startHour),
			EndDay:    intPtr(r.endDay),
			EndHour:   intPtr(r.endHour),
		}
	}
	return PayrollRequest{
		Records:   recs,
		Wage:      intPtr(10000),
		Year:      intPtr(year),
		Month:     intPtr(month),
		RuleSetID: factory.StatutoryRuleSetID,
	}
}

var scenarios = []ScenarioDTO{
	{
		ID:          "nine-hour-day",
		Name:        "Nine-hour day",
		Description: "09:00-18:00 on 1 January 2025: 9 base hours, 1 overtime hour",
		Request:     scenarioRequest(2025, 1, record{1, 9, 1, 18}),
		ExpectedPay: 95000,
	},
	{
		ID:          "night-shift",
		Name:        "Night shift",
		Description: "22:00 on day 1 to 02:00 on day 2: all four hours are night hours",
		Request:     scenarioRequest(2025, 1, record{1, 22, 2, 2}),
		ExpectedPay: 60000,
	},
	{
		ID:          "sunday-ten-hours",
		Name:        "Ten hours on a Sunday",
		Description: "Sunday 5 January 2025, 09:00-19:00: 8h at +50% and 2h at +100%, plus 2h overtime",
		Request:     scenarioRequest(2025, 1, record{5, 9, 5, 19}),
		ExpectedPay: 170000,
	},
	{
		ID:          "weekly-rest-15h",
		Name:        "Weekly rest earned",
		Description: "Three 5-hour days in the first week: 15/40 of a credited 8-hour day",
		Request:     scenarioRequest(2025, 1, record{1, 9, 1, 14}, record{2, 9, 2, 14}, record{3, 9, 3, 14}),
		ExpectedPay: 180000,
	},
	{
		ID:          "weekly-rest-14h",
		Name:        "Weekly rest not earned",
		Description: "14 hours in the first week stays below the 15-hour threshold",
		Request:     scenarioRequest(2025, 1, record{1, 9, 1, 14}, record{2, 9, 2, 14}, record{3, 9, 3, 13}),
		ExpectedPay: 140000,
	},
	{
		ID:          "weekly-rest-capped",
		Name:        "Weekly rest capped",
		Description: "Five 9-hour days, Monday 1 to Friday 5 September 2025: allowance capped at 8 hours",
		Request: scenarioRequest(2025, 9,
			record{1, 9, 1, 18}, record{2, 9, 2, 18}, record{3, 9, 3, 18}, record{4, 9, 4, 18}, record{5, 9, 5, 18}),
		ExpectedPay: 555000,
	},
	{
		ID:          "two-shifts-one-day",
		Name:        "Two shifts in one day",
		Description: "09:00-13:00 and 14:00-19:00 on the same day: daily total 9h, 1h overtime",
		Request:     scenarioRequest(2025, 1, record{1, 9, 1, 13}, record{1, 14, 1, 19}),
		ExpectedPay: 95000,
	},
	{
		ID:          "partial-night",
		Name:        "Partial night",
		Description: "20:00-24:00: only 22:00-24:00 earns the night premium",
		Request:     scenarioRequest(2025, 1, record{1, 20, 2, 0}),
		ExpectedPay: 50000,
	},
	{
		ID:          "sunday-eight-hours",
		Name:        "Eight hours on a Sunday",
		Description: "Sunday 5 January 2025, 09:00-17:00: 8h at +50%",
		Request:     scenarioRequest(2025, 1, record{5, 9, 5, 17}),
		ExpectedPay: 120000,
	},
	{
		ID:          "friday-to-sunday",
		Name:        "Friday to Sunday continuous",
		Description: "Friday 3 January 09:00 to Sunday 5 January 09:00 2025, split per calendar day",
		Request:     scenarioRequest(2025, 1, record{3, 9, 5, 9}),
		ExpectedPay: 810000,
	},
}

func findScenario(id string) (ScenarioDTO, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return ScenarioDTO{}, false
}

// =============================================================================
// HANDLERS
// =============================================================================

// ListScenarios returns the scenario catalog.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeOK(w, scenarios)
}

// RunScenario calculates one scenario and compares it with its expected pay.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	sc, ok := findScenario(chi.URLParam(r, "id"))
	if !ok {
		h.fail(w, r, errScenarioNotFound)
		return
	}
	if err := validateStruct(sc.Request); err != nil {
		h.fail(w, r, err)
		return
	}

	resp, err := h.calculate(r, sc.Request, payroll.StatutoryRules(), factory.StatutoryRuleSetID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("X-Calculation-ID", resp.CalculationID)
	writeOK(w, ScenarioRunDTO{
		Scenario: sc,
		Result:   resp,
		Matches:  resp.TotalPay == sc.ExpectedPay,
	})
}
