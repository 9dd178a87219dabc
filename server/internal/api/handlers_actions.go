package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api/respond"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

// ActionHandler serves the status-transition endpoints and the by-policy lookups.
type ActionHandler struct {
	svc *Services
	log zerolog.Logger
}

func NewActionHandler(svc *Services, log zerolog.Logger) *ActionHandler {
	return &ActionHandler{svc: svc, log: log}
}

// ApproveClaim POST /api/claims/{id}/approve
func (h *ActionHandler) ApproveClaim(w http.ResponseWriter, r *http.Request) {
	var req model.ClaimDecisionRequest
	if err := decodeOptional(w, r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.Claims.Approve(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to approve claim")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// RejectClaim POST /api/claims/{id}/reject
func (h *ActionHandler) RejectClaim(w http.ResponseWriter, r *http.Request) {
	var req model.ClaimDecisionRequest
	if err := decodeOptional(w, r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.Claims.Reject(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to reject claim")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ConvertQuote POST /api/quotes/{id}/convert
func (h *ActionHandler) ConvertQuote(w http.ResponseWriter, r *http.Request) {
	policy, err := h.svc.Quotes.Convert(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to convert quote")
		return
	}
	respond.WriteJSON(w, http.StatusOK, policy)
}

// ApproveRenewal POST /api/renewals/{id}/approve
func (h *ActionHandler) ApproveRenewal(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Renewals.Approve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to approve renewal")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// CompleteInspection POST /api/inspections/{id}/complete
func (h *ActionHandler) CompleteInspection(w http.ResponseWriter, r *http.Request) {
	var req model.CompleteInspectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.Inspections.Complete(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to complete inspection")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// PaymentsByPolicy GET /api/payments/policy/{policyId}
func (h *ActionHandler) PaymentsByPolicy(w http.ResponseWriter, r *http.Request) {
	policyID := mux.Vars(r)["policyId"]
	items, err := h.svc.Payments.Filter(r.Context(), func(p *model.Payment) bool {
		return p.PolicyID == policyID
	})
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch payments")
		return
	}
	respond.WriteJSON(w, http.StatusOK, items)
}

// TelematicsByPolicy GET /api/telematics/policy/{policyId}
func (h *ActionHandler) TelematicsByPolicy(w http.ResponseWriter, r *http.Request) {
	policyID := mux.Vars(r)["policyId"]
	items, err := h.svc.Telematics.Filter(r.Context(), func(t *model.TelematicsData) bool {
		return t.PolicyID == policyID
	})
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch telematics data")
		return
	}
	respond.WriteJSON(w, http.StatusOK, items)
}
