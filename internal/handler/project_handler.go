package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keshav84652/workflow-management/internal/repository"
	"github.com/keshav84652/workflow-management/internal/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.ProjectInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	project, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	projects, err := h.svc.List(r.Context(), repository.ProjectFilter{
		ClientID:   q.Get("clientId"),
		WorkTypeID: q.Get("workTypeId"),
		State:      q.Get("state"),
		Q:          q.Get("q"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects, "total": len(projects)})
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.Get(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.ProjectUpdate
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	project, err := h.svc.Update(r.Context(), chi.URLParam(r, "projectId"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// MoveStatus is the kanban drag target.
func (h *ProjectHandler) MoveStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StatusID string `json:"statusId"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StatusID == "" {
		writeError(w, http.StatusBadRequest, "statusId is required")
		return
	}
	project, err := h.svc.MoveStatus(r.Context(), chi.URLParam(r, "projectId"), req.StatusID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) SetState(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State string `json:"state"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.SetState(r.Context(), chi.URLParam(r, "projectId"), req.State); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": req.State})
}

func (h *ProjectHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectId")
	if err := h.svc.Archive(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"archived": id})
}

func (h *ProjectHandler) Kanban(w http.ResponseWriter, r *http.Request) {
	workTypeID := r.URL.Query().Get("workTypeId")
	if workTypeID == "" {
		writeError(w, http.StatusBadRequest, "workTypeId is required")
		return
	}
	columns, err := h.svc.Kanban(r.Context(), workTypeID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"columns": columns})
}
