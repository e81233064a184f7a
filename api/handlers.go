/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the payroll calculator and rule-set store via REST API. Handles
  HTTP request/response, JSON binding and delegates to the engine.

ENDPOINTS:
  Payroll:
    POST   /api/v1/payroll/calculate    Calculate a month's pay
    GET    /api/v1/payroll/health       Health check, pings the store when it can

  Rule sets:
    GET    /api/v1/rulesets             List stored rule sets
    POST   /api/v1/rulesets             Create or replace a rule set
    GET    /api/v1/rulesets/{id}        Get one rule set
    DELETE /api/v1/rulesets/{id}        Delete a rule set

  Scenarios:
    GET    /api/v1/scenarios            List built-in worked examples
    POST   /api/v1/scenarios/{id}/run   Run one through the calculator

REQUEST FLOW:
  1. Bind and validate the body (bind.go)
  2. Resolve the rule set (request, else the configured default)
  3. Calculate
  4. Wrap in the APIResponse envelope

ERROR HANDLING:
  Every error uses the envelope with data=null:
  - 400: Binding/validation errors, invalid shift or calendar, invalid rules
  - 404: Unknown rule set or scenario
  - 500: Anything else, with a generic message; details only in the log

Calculation results are never stored.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Built-in scenarios
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/logger"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store          payroll.RuleSetStore
	RulesFactory   *factory.RulesFactory
	DefaultRuleSet payroll.RuleSetID
	Parallel       bool

	newID func() string
}

// NewHandler creates a handler backed by store.
func NewHandler(store payroll.RuleSetStore) *Handler {
	return &Handler{
		Store:          store,
		RulesFactory:   factory.NewRulesFactory(),
		DefaultRuleSet: factory.StatutoryRuleSetID,
		newID:          uuid.NewString,
	}
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// Calculate computes a month's pay for the posted shifts.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, err := bindJSON[PayrollRequest](r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ruleSetID := h.DefaultRuleSet
	if req.RuleSetID != "" {
		ruleSetID = payroll.RuleSetID(req.RuleSetID)
	}
	rules, err := payroll.ResolveRules(r.Context(), h.Store, ruleSetID, h.DefaultRuleSet)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp, err := h.calculate(r, req, rules, ruleSetID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("X-Calculation-ID", resp.CalculationID)
	writeOK(w, resp)
}

func (h *Handler) calculate(r *http.Request, req PayrollRequest, rules payroll.Rules, ruleSetID payroll.RuleSetID) (PayrollResponse, error) {
	calcID := h.newID()
	ctx := logger.WithCalculation(r.Context(), calcID)
	log := logger.C(ctx)
	log.Info().
		Int("records", len(req.Records)).
		Int("wage", deref(req.Wage)).
		Int("year", deref(req.Year)).
		Int("month", deref(req.Month)).
		Str("rule_set", string(ruleSetID)).
		Msg("payroll calculation requested")

	calc := &payroll.Calculator{Rules: rules, Parallel: h.Parallel}
	summary, err := calc.Calculate(req.ToInput())
	if err != nil {
		return PayrollResponse{}, err
	}

	log.Info().Int64("total_pay", summary.TotalPay.Int64()).Msg("payroll calculation done")
	return NewPayrollResponse(calcID, string(ruleSetID), summary), nil
}

// pinger is implemented by stores backed by a connection.
type pinger interface {
	Ping(ctx context.Context) error
}

// Health reports OK, or 503 when the store cannot be reached.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.Store.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			logger.C(r.Context()).Error().Err(err).Msg("store ping failed")
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	writeOK(w, "OK")
}

// =============================================================================
// RULE SET HANDLERS
// =============================================================================

// ListRuleSets returns all stored rule sets.
func (h *Handler) ListRuleSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.Store.ListRuleSets(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	dtos := make([]RuleSetDTO, len(sets))
	for i, rs := range sets {
		dtos[i] = toRuleSetDTO(h.RulesFactory, rs)
	}
	writeOK(w, dtos)
}

// CreateRuleSet stores a rule set from its JSON document. A missing id is
// generated.
func (h *Handler) CreateRuleSet(w http.ResponseWriter, r *http.Request) {
	doc, err := bindJSON[factory.RuleSetJSON](r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if strings.TrimSpace(doc.ID) == "" {
		doc.ID = h.newID()
	}

	rs, err := h.RulesFactory.FromJSON(doc)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	saved, err := h.Store.SaveRuleSet(r.Context(), *rs)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger.C(r.Context()).Info().
		Str("rule_set", string(saved.ID)).
		Int("version", saved.Version).
		Str("week_grouping", saved.Rules.Weeks().Name()).
		Msg("rule set saved")
	writeJSON(w, http.StatusCreated, APIResponse{
		Status:  http.StatusCreated,
		Message: messageSuccess,
		Data:    toRuleSetDTO(h.RulesFactory, saved),
	})
}

// GetRuleSet returns a single rule set.
func (h *Handler) GetRuleSet(w http.ResponseWriter, r *http.Request) {
	id := payroll.RuleSetID(chi.URLParam(r, "id"))

	rs, err := h.Store.GetRuleSet(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if rs == nil {
		h.fail(w, r, payroll.ErrRuleSetNotFound)
		return
	}
	writeOK(w, toRuleSetDTO(h.RulesFactory, *rs))
}

// DeleteRuleSet removes a stored rule set. Unknown IDs return 404. Deleting
// the default ID leaves calculations on the built-in statutory rules.
func (h *Handler) DeleteRuleSet(w http.ResponseWriter, r *http.Request) {
	id := payroll.RuleSetID(chi.URLParam(r, "id"))

	rs, err := h.Store.GetRuleSet(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if rs == nil {
		h.fail(w, r, payroll.ErrRuleSetNotFound)
		return
	}
	if err := h.Store.DeleteRuleSet(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	logger.C(r.Context()).Info().Str("rule_set", string(id)).Msg("rule set deleted")
	writeOK(w, toRuleSetDTO(h.RulesFactory, *rs))
}

// =============================================================================
// HELPERS
// =============================================================================

var errScenarioNotFound = errors.New("scenario not found")

// statusFor maps an error to its HTTP status and client-facing message.
func statusFor(err error) (int, string) {
	var be *BindError
	switch {
	case errors.As(err, &be):
		return http.StatusBadRequest, be.Message
	case payroll.IsNotFound(err), errors.Is(err, errScenarioNotFound):
		return http.StatusNotFound, err.Error()
	case payroll.IsClientError(err):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	log := logger.C(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Warn().Str("reason", msg).Str("path", r.URL.Path).Msg("request rejected")
	}
	writeError(w, status, msg)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, APIResponse{Status: http.StatusOK, Message: messageSuccess, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{Status: status, Message: message})
}
