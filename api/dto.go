/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the payroll engine's types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Response wrappers

TYPES:
  Payroll:
    PayrollRequest, WorkRecordRequest, PayrollResponse, PolicyResultDTO

  Rule sets:
    RuleSetDTO (wraps factory.RuleSetJSON)

  Scenarios:
    ScenarioDTO, ScenarioRunDTO

  Envelope:
    APIResponse

VALIDATION:
  Request types carry `validate` tags checked by bind.go. Required integer
  fields are pointers so that an absent field and an explicit 0 differ.

SEE ALSO:
  - handlers.go: Uses these types
  - bind.go: Decoding and validation
*/
package api

import (
	"time"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// ENVELOPE
// =============================================================================

// APIResponse wraps every response body.
type APIResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const messageSuccess = "success"

// =============================================================================
// PAYROLL
// =============================================================================

// WorkRecordRequest is one shift. end_day may be 32 for a shift that ends
// on the first day of the following month.
type WorkRecordRequest struct {
	StartDay  *int `json:"start_day" validate:"required,min=1,max=31"`
	StartHour *int `json:"start_hour" validate:"required,min=0,max=23"`
	EndDay    *int `json:"end_day" validate:"required,min=1,max=32"`
	EndHour   *int `json:"end_hour" validate:"required,min=0,max=23"`
}

// PayrollRequest is the body of POST /api/v1/payroll/calculate.
type PayrollRequest struct {
	Records   []WorkRecordRequest `json:"records" validate:"required,min=1,dive"`
	Wage      *int                `json:"wage" validate:"required,min=1"`
	Year      *int                `json:"year" validate:"required,min=1,max=9999"`
	Month     *int                `json:"month" validate:"required,min=1,max=12"`
	RuleSetID string              `json:"rule_set_id,omitempty" validate:"omitempty,max=64"`
}

// ToInput converts a validated request to engine input.
func (r PayrollRequest) ToInput() payroll.Input {
	shifts := make([]payroll.Shift, len(r.Records))
	for i, rec := range r.Records {
		shifts[i] = payroll.Shift{
			StartDay:  deref(rec.StartDay),
			StartHour: deref(rec.StartHour),
			EndDay:    deref(rec.EndDay),
			EndHour:   deref(rec.EndHour),
		}
	}
	return payroll.Input{
		Shifts: shifts,
		Wage:   deref(r.Wage),
		Year:   deref(r.Year),
		Month:  time.Month(deref(r.Month)),
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func intPtr(v int) *int { return &v }

// PolicyResultDTO is one policy's contribution.
type PolicyResultDTO struct {
	Kind  string  `json:"kind"`
	Hours float64 `json:"hours"`
	Pay   int64   `json:"pay"`
}

// PayrollResponse is the calculation result.
type PayrollResponse struct {
	CalculationID string `json:"calculation_id"`
	RuleSetID     string `json:"rule_set_id"`

	TotalWorkHours float64 `json:"total_work_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	NightHours     float64 `json:"night_hours"`
	HolidayHours   float64 `json:"holiday_hours"`

	BasePay          int64 `json:"base_pay"`
	OvertimePay      int64 `json:"overtime_pay"`
	NightPay         int64 `json:"night_pay"`
	HolidayPay       int64 `json:"holiday_pay"`
	WeeklyHolidayPay int64 `json:"weekly_holiday_pay"`
	TotalPay         int64 `json:"total_pay"`

	Breakdown []PolicyResultDTO `json:"breakdown"`
}

// NewPayrollResponse flattens a Summary into the wire format.
func NewPayrollResponse(calcID, ruleSetID string, s *payroll.Summary) PayrollResponse {
	breakdown := make([]PolicyResultDTO, len(s.Breakdown))
	for i, r := range s.Breakdown {
		breakdown[i] = PolicyResultDTO{Kind: string(r.Kind), Hours: r.Hours.Float64(), Pay: r.Pay.Int64()}
	}
	return PayrollResponse{
		CalculationID:    calcID,
		RuleSetID:        ruleSetID,
		TotalWorkHours:   s.TotalWorkHours.Float64(),
		OvertimeHours:    s.OvertimeHours.Float64(),
		NightHours:       s.NightHours.Float64(),
		HolidayHours:     s.HolidayHours.Float64(),
		BasePay:          s.BasePay.Int64(),
		OvertimePay:      s.OvertimePay.Int64(),
		NightPay:         s.NightPay.Int64(),
		HolidayPay:       s.HolidayPay.Int64(),
		WeeklyHolidayPay: s.WeeklyHolidayPay.Int64(),
		TotalPay:         s.TotalPay.Int64(),
		Breakdown:        breakdown,
	}
}

// =============================================================================
// RULE SETS
// =============================================================================

// RuleSetDTO represents a stored rule set in API responses.
type RuleSetDTO struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Config    factory.RuleSetJSON `json:"config"`
	Version   int                 `json:"version"`
	CreatedAt string              `json:"created_at,omitempty"`
	UpdatedAt string              `json:"updated_at,omitempty"`
}

func toRuleSetDTO(f *factory.RulesFactory, rs payroll.RuleSet) RuleSetDTO {
	dto := RuleSetDTO{
		ID:      string(rs.ID),
		Name:    rs.Name,
		Config:  f.ToJSON(rs),
		Version: rs.Version,
	}
	if !rs.CreatedAt.IsZero() {
		dto.CreatedAt = rs.CreatedAt.Format(time.RFC3339)
	}
	if !rs.UpdatedAt.IsZero() {
		dto.UpdatedAt = rs.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a built-in worked example.
type ScenarioDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Request     PayrollRequest `json:"request"`
	ExpectedPay int64          `json:"expected_total_pay"`
}

// ScenarioRunDTO is the result of running a scenario.
type ScenarioRunDTO struct {
	Scenario ScenarioDTO     `json:"scenario"`
	Result   PayrollResponse `json:"result"`
	Matches  bool            `json:"matches_expected"`
}
