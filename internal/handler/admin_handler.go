package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keshav84652/workflow-management/internal/service"
)

// AdminHandler covers the firm catalog: work types, their kanban statuses,
// and project templates.
type AdminHandler struct {
	workTypes *service.WorkTypeService
	templates *service.TemplateService
}

func NewAdminHandler(workTypes *service.WorkTypeService, templates *service.TemplateService) *AdminHandler {
	return &AdminHandler{workTypes: workTypes, templates: templates}
}

func (h *AdminHandler) CreateWorkType(w http.ResponseWriter, r *http.Request) {
	var req service.WorkTypeInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	wt, err := h.workTypes.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wt)
}

func (h *AdminHandler) ListWorkTypes(w http.ResponseWriter, r *http.Request) {
	workTypes, err := h.workTypes.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"workTypes": workTypes})
}

func (h *AdminHandler) GetWorkType(w http.ResponseWriter, r *http.Request) {
	wt, err := h.workTypes.Get(r.Context(), chi.URLParam(r, "workTypeId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wt)
}

func (h *AdminHandler) UpdateWorkType(w http.ResponseWriter, r *http.Request) {
	var req service.WorkTypeInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	wt, err := h.workTypes.Update(r.Context(), chi.URLParam(r, "workTypeId"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wt)
}

func (h *AdminHandler) DeactivateWorkType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workTypeId")
	if err := h.workTypes.Deactivate(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deactivated": id})
}

func (h *AdminHandler) CreateStatus(w http.ResponseWriter, r *http.Request) {
	var req service.StatusInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status, err := h.workTypes.CreateStatus(r.Context(), chi.URLParam(r, "workTypeId"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, status)
}

func (h *AdminHandler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.workTypes.ListStatuses(r.Context(), chi.URLParam(r, "workTypeId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"statuses": statuses})
}

func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req service.StatusInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status, err := h.workTypes.UpdateStatus(r.Context(), chi.URLParam(r, "statusId"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *AdminHandler) DeleteStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "statusId")
	if err := h.workTypes.DeleteStatus(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (h *AdminHandler) ReorderStatuses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StatusIDs []string `json:"statusIds"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.workTypes.ReorderStatuses(r.Context(), chi.URLParam(r, "workTypeId"), req.StatusIDs); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reordered": len(req.StatusIDs)})
}

func (h *AdminHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req service.TemplateInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tpl, err := h.templates.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

func (h *AdminHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (h *AdminHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.templates.Get(r.Context(), chi.URLParam(r, "templateId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (h *AdminHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var req service.TemplateInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tpl, err := h.templates.Update(r.Context(), chi.URLParam(r, "templateId"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (h *AdminHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateId")
	if err := h.templates.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
