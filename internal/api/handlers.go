package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/docmend/docmend/internal/apperr"
	"github.com/docmend/docmend/internal/history"
)

// Handler holds API route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListDocs handles GET /api/docs.
func (h *Handler) ListDocs(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListDocs()
	if err != nil {
		slog.Error("list docs failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"docs":  docs,
		"total": len(docs),
	})
}

// Scan handles POST /api/scan: classify the tree without remediation.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Scan()
	if err != nil {
		slog.Error("scan failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":       report.Total(),
		"by_category": report.ByCategory,
	})
}

// FixRequest is the request body for POST /api/fix.
type FixRequest struct {
	DryRun bool `json:"dry_run"`
}

// Fix handles POST /api/fix: run a full remediation pass.
func (h *Handler) Fix(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req FixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	summary, err := h.svc.Fix(req.DryRun)
	if err != nil {
		slog.Error("fix failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ListRuns handles GET /api/runs.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.svc.Runs(limit)
	if err != nil {
		slog.Error("list runs failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"total": len(runs),
	})
}

// LastRun handles GET /api/runs/latest.
func (h *Handler) LastRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.svc.LastRun()
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("no runs recorded"))
			return
		}
		slog.Error("last run failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, run)
}
