package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/keshav84652/workflow-management/internal/service"
)

type ChecklistHandler struct {
	checklists *service.ChecklistService
	documents  *service.DocumentService
}

func NewChecklistHandler(checklists *service.ChecklistService, documents *service.DocumentService) *ChecklistHandler {
	return &ChecklistHandler{checklists: checklists, documents: documents}
}

func (h *ChecklistHandler) Get(w http.ResponseWriter, r *http.Request) {
	checklist, err := h.checklists.Get(r.Context(), chi.URLParam(r, "checklistId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checklist)
}

func (h *ChecklistHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	checklist, err := h.checklists.Update(r.Context(), chi.URLParam(r, "checklistId"), req.Name, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checklist)
}

func (h *ChecklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "checklistId")
	if err := h.checklists.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (h *ChecklistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := h.checklists.AddItem(r.Context(), chi.URLParam(r, "checklistId"), req.Title, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ChecklistHandler) ReorderItems(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemIDs []string `json:"itemIds"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.checklists.ReorderItems(r.Context(), chi.URLParam(r, "checklistId"), req.ItemIDs); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reordered": len(req.ItemIDs)})
}

// SetItemStatus lets staff set any item status, unlike the portal's
// restricted subset.
func (h *ChecklistHandler) SetItemStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := h.checklists.SetItemStatus(r.Context(), chi.URLParam(r, "itemId"), req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ChecklistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemId")
	if err := h.checklists.DeleteItem(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (h *ChecklistHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	fileName, data, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.documents.Upload(r.Context(), chi.URLParam(r, "itemId"), fileName, data, "", nil)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *ChecklistHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	data, doc, err := h.documents.Download(r.Context(), chi.URLParam(r, "docId"))
	if err != nil {
		respondError(w, err)
		return
	}
	serveDocument(w, data, doc.FileName, doc.ContentType)
}

func (h *ChecklistHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docId")
	if err := h.documents.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// readUpload pulls the one file out of a multipart form.
func readUpload(r *http.Request) (string, []byte, error) {
	r.ParseMultipartForm(service.MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxUploadSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file")
	}
	return header.Filename, data, nil
}

// dispositionEscaper keeps stored filenames from breaking out of the
// quoted Content-Disposition parameter.
var dispositionEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", "")

func serveDocument(w http.ResponseWriter, data []byte, fileName, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, dispositionEscaper.Replace(fileName)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
