package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keshav84652/workflow-management/internal/auth"
	"github.com/keshav84652/workflow-management/internal/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req service.TimeEntryInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := auth.GetUser(r.Context())
	entry, err := h.svc.CreateEntry(r.Context(), claims.UserID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *ReportHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := h.svc.ListEntries(r.Context(), service.TimeEntryQuery{
		UserID:   q.Get("userId"),
		ClientID: q.Get("clientId"),
		From:     q.Get("from"),
		To:       q.Get("to"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "total": len(entries)})
}

func (h *ReportHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "entryId")
	if err := h.svc.DeleteEntry(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (h *ReportHandler) TimeReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.svc.TimeReport(r.Context(), service.TimeReportQuery{
		From:     q.Get("from"),
		To:       q.Get("to"),
		ClientID: q.Get("clientId"),
		GroupBy:  q.Get("groupBy"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}
