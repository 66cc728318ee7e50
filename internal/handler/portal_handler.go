package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keshav84652/workflow-management/internal/auth"
	"github.com/keshav84652/workflow-management/internal/service"
)

// PortalHandler is the client-facing surface. Every route after login is
// scoped to the client baked into the portal token.
type PortalHandler struct {
	svc *service.PortalService
}

func NewPortalHandler(svc *service.PortalService) *PortalHandler {
	return &PortalHandler{svc: svc}
}

func (h *PortalHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccessCode string `json:"accessCode"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session, err := h.svc.Login(r.Context(), req.AccessCode)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *PortalHandler) Checklists(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	checklists, err := h.svc.Checklists(r.Context(), claims.ClientID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"checklists": checklists})
}

func (h *PortalHandler) SetItemStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := auth.GetUser(r.Context())
	item, err := h.svc.SetItemStatus(r.Context(), claims.ClientID, chi.URLParam(r, "itemId"), req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *PortalHandler) Upload(w http.ResponseWriter, r *http.Request) {
	fileName, data, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	claims := auth.GetUser(r.Context())
	doc, err := h.svc.Upload(r.Context(), claims.ClientID, claims.ClientUserID, chi.URLParam(r, "itemId"), fileName, data, "")
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *PortalHandler) Download(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	data, doc, err := h.svc.Download(r.Context(), claims.ClientID, chi.URLParam(r, "docId"))
	if err != nil {
		respondError(w, err)
		return
	}
	serveDocument(w, data, doc.FileName, doc.ContentType)
}
