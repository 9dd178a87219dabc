package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api/middleware"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api/recovery"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api/respond"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/auth"
)

// RouterDeps carries everything NewRouter wires into handlers.
type RouterDeps struct {
	Services   *Services
	Authorizer auth.Authorizer
	Health     ServiceHealth
	// Registry receives the HTTP metrics and backs GET /metrics.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds the full HTTP surface: /v0/health and /metrics without
// authentication, everything under /api behind the API key check.
func NewRouter(d RouterDeps) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.New(d.Log), middleware.RequestLog(d.Log))
	if d.Registry != nil {
		root.Use(middleware.NewMetrics(d.Registry).Instrument)
		root.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	root.HandleFunc("/v0/health", NewHealthHandler(d.Health).CheckHealth).Methods(http.MethodGet)
	root.NotFoundHandler = http.HandlerFunc(notFound)

	requireKey := middleware.RequireAPIKey(d.Authorizer, d.Log)
	api := root.PathPrefix("/api").Subrouter()
	api.Use(requireKey)
	api.NotFoundHandler = requireKey(unmatched(api))
	api.MethodNotAllowedHandler = requireKey(http.HandlerFunc(methodNotAllowed))

	s := d.Services
	actions := NewActionHandler(s, d.Log)
	insights := NewInsightsHandler(s, d.Log)

	// Actions and by-policy lookups
	api.HandleFunc("/claims/{id}/approve", actions.ApproveClaim).Methods(http.MethodPost)
	api.HandleFunc("/claims/{id}/reject", actions.RejectClaim).Methods(http.MethodPost)
	api.HandleFunc("/quotes/{id}/convert", actions.ConvertQuote).Methods(http.MethodPost)
	api.HandleFunc("/renewals/{id}/approve", actions.ApproveRenewal).Methods(http.MethodPost)
	api.HandleFunc("/inspections/{id}/complete", actions.CompleteInspection).Methods(http.MethodPost)
	api.HandleFunc("/payments/policy/{policyId}", actions.PaymentsByPolicy).Methods(http.MethodGet)
	api.HandleFunc("/telematics/policy/{policyId}", actions.TelematicsByPolicy).Methods(http.MethodGet)

	// Uniform CRUD
	NewResourceHandler(s.Policies, d.Log).Register(api, "/policies")
	NewResourceHandler(s.Claims.ResourceService, d.Log).Register(api, "/claims")
	NewResourceHandler(s.Customers, d.Log).Register(api, "/customers")
	NewResourceHandler(s.Quotes.ResourceService, d.Log).Register(api, "/quotes")
	NewResourceHandler(s.Payments, d.Log).Register(api, "/payments")
	NewResourceHandler(s.Agents, d.Log).Register(api, "/agents")
	NewResourceHandler(s.Beneficiaries, d.Log).Register(api, "/beneficiaries")
	NewResourceHandler(s.Documents, d.Log).Register(api, "/documents")
	NewResourceHandler(s.Renewals.ResourceService, d.Log).Register(api, "/renewals")
	NewResourceHandler(s.Endorsements, d.Log).Register(api, "/endorsements")
	NewResourceHandler(s.Reinsurance, d.Log).Register(api, "/reinsurance")
	NewResourceHandler(s.Notifications, d.Log).Register(api, "/notifications")
	NewResourceHandler(s.Telematics, d.Log).Register(api, "/telematics")
	NewResourceHandler(s.Inspections.ResourceService, d.Log).Register(api, "/inspections")
	NewResourceHandler(s.Subrogation, d.Log).Register(api, "/subrogation")

	// Risk assessments are looked up by policy, not by id
	risk := NewResourceHandler(s.Risk.ResourceService, d.Log)
	api.HandleFunc("/risk-assessment", risk.List).Methods(http.MethodGet)
	api.HandleFunc("/risk-assessment", risk.Create).Methods(http.MethodPost)
	api.HandleFunc("/risk-assessment/{policyId}", insights.RiskByPolicy).Methods(http.MethodGet)

	api.HandleFunc("/fraud-detection/analyze", insights.AnalyzeFraud).Methods(http.MethodPost)
	api.HandleFunc("/fraud-detection/reports", insights.FraudReports).Methods(http.MethodGet)
	api.HandleFunc("/analytics/claims-summary", insights.ClaimsSummary).Methods(http.MethodGet)
	api.HandleFunc("/analytics/policies-summary", insights.PoliciesSummary).Methods(http.MethodGet)
	api.HandleFunc("/analytics/loss-ratio", insights.LossRatio).Methods(http.MethodGet)
	api.HandleFunc("/audit-trail", insights.AuditTrail).Methods(http.MethodGet)
	api.HandleFunc("/auth/validate", insights.ValidateKey).Methods(http.MethodPost)

	return root
}

// routeMethods are the methods any /api route is registered with.
var routeMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// unmatched answers requests r did not route: 405 when the path is served
// under another method, 404 otherwise. Method mismatches inside a PathPrefix
// subrouter do not reliably reach MethodNotAllowedHandler, so the check is
// repeated here.
func unmatched(r *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		for _, m := range routeMethods {
			if m == req.Method {
				continue
			}
			alt := req.Clone(req.Context())
			alt.Method = m
			var match mux.RouteMatch
			if r.Match(alt, &match) && match.MatchErr == nil {
				methodNotAllowed(w, req)
				return
			}
		}
		notFound(w, req)
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respond.WriteNotFound(w, "Route not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
