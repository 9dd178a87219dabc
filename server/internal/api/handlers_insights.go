package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api/respond"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

// InsightsHandler serves risk assessment, fraud detection, analytics and audit endpoints.
type InsightsHandler struct {
	svc *Services
	log zerolog.Logger
}

func NewInsightsHandler(svc *Services, log zerolog.Logger) *InsightsHandler {
	return &InsightsHandler{svc: svc, log: log}
}

// RiskByPolicy GET /api/risk-assessment/{policyId}
func (h *InsightsHandler) RiskByPolicy(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Risk.ByPolicy(r.Context(), mux.Vars(r)["policyId"])
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch risk assessment")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// AnalyzeFraud POST /api/fraud-detection/analyze
func (h *InsightsHandler) AnalyzeFraud(w http.ResponseWriter, r *http.Request) {
	var req model.FraudAnalysisRequest
	if err := decodeBody(w, r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.Fraud.Analyze(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to analyze claim")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// FraudReports GET /api/fraud-detection/reports
func (h *InsightsHandler) FraudReports(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Fraud.Reports(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch fraud reports")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ClaimsSummary GET /api/analytics/claims-summary
func (h *InsightsHandler) ClaimsSummary(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Analytics.ClaimsSummary(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to generate claims summary")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// PoliciesSummary GET /api/analytics/policies-summary
func (h *InsightsHandler) PoliciesSummary(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Analytics.PoliciesSummary(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to generate policies summary")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// LossRatio GET /api/analytics/loss-ratio
func (h *InsightsHandler) LossRatio(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Analytics.LossRatio(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to calculate loss ratio")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// AuditTrail GET /api/audit-trail?entityType=&entityId=
func (h *InsightsHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.svc.Audit.Trail(r.Context(), model.AuditFilter{
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
	})
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch audit trail")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ValidateKey POST /api/auth/validate
// Reaching the handler means the key middleware accepted the request.
func (h *InsightsHandler) ValidateKey(w http.ResponseWriter, r *http.Request) {
	respond.WriteMessage(w, "API key is valid", map[string]bool{"authenticated": true})
}
