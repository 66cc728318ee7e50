package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keshav84652/workflow-management/internal/service"
)

type ContactHandler struct {
	svc *service.ContactService
}

func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.ContactInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	contact, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts, "total": len(contacts)})
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.svc.Get(r.Context(), chi.URLParam(r, "contactId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.ContactInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	contact, err := h.svc.Update(r.Context(), chi.URLParam(r, "contactId"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactId")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (h *ContactHandler) Clients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.Clients(r.Context(), chi.URLParam(r, "contactId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": clients})
}
