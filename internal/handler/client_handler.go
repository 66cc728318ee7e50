package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keshav84652/workflow-management/internal/service"
)

type ClientHandler struct {
	clients    *service.ClientService
	checklists *service.ChecklistService
}

func NewClientHandler(clients *service.ClientService, checklists *service.ChecklistService) *ClientHandler {
	return &ClientHandler{clients: clients, checklists: checklists}
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.ClientInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	client, err := h.clients.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	activeOnly := r.URL.Query().Get("active") == "true"
	clients, err := h.clients.List(r.Context(), q, activeOnly)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": clients, "total": len(clients)})
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.clients.Get(r.Context(), chi.URLParam(r, "clientId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.ClientInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	client, err := h.clients.Update(r.Context(), chi.URLParam(r, "clientId"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// Deactivate marks the client inactive and puts its active projects on hold.
func (h *ClientHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	held, err := h.clients.Deactivate(r.Context(), chi.URLParam(r, "clientId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deactivated": true, "projectsHeld": held})
}

func (h *ClientHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.clients.Contacts(r.Context(), chi.URLParam(r, "clientId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

func (h *ClientHandler) LinkContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContactID string `json:"contactId"`
		IsPrimary bool   `json:"isPrimary"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ContactID == "" {
		writeError(w, http.StatusBadRequest, "contactId is required")
		return
	}
	if err := h.clients.LinkContact(r.Context(), chi.URLParam(r, "clientId"), req.ContactID, req.IsPrimary); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"linked": req.ContactID})
}

func (h *ClientHandler) UnlinkContact(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactId")
	if err := h.clients.UnlinkContact(r.Context(), chi.URLParam(r, "clientId"), contactID); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"unlinked": contactID})
}

func (h *ClientHandler) PortalUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.clients.PortalUsers(r.Context(), chi.URLParam(r, "clientId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"portalUsers": users})
}

// CreatePortalUser issues a portal access code for the client.
func (h *ClientHandler) CreatePortalUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.clients.CreatePortalUser(r.Context(), chi.URLParam(r, "clientId"), req.Label)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *ClientHandler) RegeneratePortalCode(w http.ResponseWriter, r *http.Request) {
	user, err := h.clients.RegeneratePortalCode(r.Context(), chi.URLParam(r, "portalUserId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *ClientHandler) DeactivatePortalUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "portalUserId")
	if err := h.clients.DeactivatePortalUser(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deactivated": id})
}

func (h *ClientHandler) CreateChecklist(w http.ResponseWriter, r *http.Request) {
	var req service.ChecklistInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	checklist, err := h.checklists.Create(r.Context(), chi.URLParam(r, "clientId"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, checklist)
}

func (h *ClientHandler) Checklists(w http.ResponseWriter, r *http.Request) {
	checklists, err := h.checklists.ListByClient(r.Context(), chi.URLParam(r, "clientId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"checklists": checklists})
}
