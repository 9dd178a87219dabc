package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api/respond"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/services"
)

// ResourceHandler serves the uniform list/create/get/update/delete surface of one resource.
type ResourceHandler[T model.Record] struct {
	svc    *services.ResourceService[T]
	log    zerolog.Logger
	single string // lower-case singular, e.g. "policy"
	plural string // lower-case plural, e.g. "risk assessments"
}

func NewResourceHandler[T model.Record](svc *services.ResourceService[T], log zerolog.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		svc:    svc,
		log:    log.With().Str("resource", svc.Collection()).Logger(),
		single: strings.ToLower(svc.Name()),
		plural: strings.ReplaceAll(svc.Collection(), "-", " "),
	}
}

// Register mounts the CRUD routes under prefix, e.g. "/policies".
func (h *ResourceHandler[T]) Register(r *mux.Router, prefix string) {
	r.HandleFunc(prefix, h.List).Methods(http.MethodGet)
	r.HandleFunc(prefix, h.Create).Methods(http.MethodPost)
	r.HandleFunc(prefix+"/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc(prefix+"/{id}", h.Delete).Methods(http.MethodDelete)
}

// List GET /api/{resource}
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch "+h.plural)
		return
	}
	respond.WriteJSON(w, http.StatusOK, items)
}

// Create POST /api/{resource}
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeObject(w, r)
	if err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.Create(r.Context(), fields)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to create "+h.single)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// Get GET /api/{resource}/{id}
func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch "+h.single)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// Update PUT /api/{resource}/{id}
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeObject(w, r)
	if err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to update "+h.single)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// Delete DELETE /api/{resource}/{id}
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, h.log, err, "Failed to delete "+h.single)
		return
	}
	respond.WriteMessage(w, fmt.Sprintf("%s deleted successfully", h.svc.Name()), nil)
}
