/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request, copied into the logger context
  2. RealIP:     Client address from X-Forwarded-For / X-Real-IP
  3. Access log: One zerolog line per request
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests for browser clients

ROUTE GROUPS:
  /api/v1/payroll/*     Calculation and health
  /api/v1/rulesets/*    Rule-set management
  /api/v1/scenarios/*   Built-in worked examples

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterOptions configures cross-cutting router behavior.
type RouterOptions struct {
	CORSOrigins []string
	// SlowRequest marks slower requests at warn level in the access log.
	SlowRequest time.Duration
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestScope)
	r.Use(accessLog(opts.SlowRequest))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Calculation-ID", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/payroll", func(r chi.Router) {
			r.Post("/calculate", h.Calculate)
			r.Get("/health", h.Health)
		})

		r.Route("/rulesets", func(r chi.Router) {
			r.Get("/", h.ListRuleSets)
			r.Post("/", h.CreateRuleSet)
			r.Get("/{id}", h.GetRuleSet)
			r.Delete("/{id}", h.DeleteRuleSet)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/{id}/run", h.RunScenario)
		})
	})

	return r
}
