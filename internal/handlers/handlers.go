// Package handlers exposes classification and verification over a JSON
// HTTP API.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/scholarly-tools/paperverify/internal/classify"
	"github.com/scholarly-tools/paperverify/internal/models"
	"github.com/scholarly-tools/paperverify/internal/pipeline"
	"github.com/scholarly-tools/paperverify/internal/store"
)

// maxRequestBody caps JSON request bodies at 10 MB.
const maxRequestBody = 10 << 20

type Handler struct {
	pipeline *pipeline.Pipeline
	history  *store.Store
}

// New creates a handler backed by the given pipeline. history may be nil
// when persistence is disabled.
func New(p *pipeline.Pipeline, history *store.Store) *Handler {
	return &Handler{pipeline: p, history: history}
}

// Register attaches all routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthcheck", h.Healthcheck)
	mux.HandleFunc("/api/classify", h.Classify)
	mux.HandleFunc("/api/verify", h.Verify)
	mux.HandleFunc("/api/history", h.History)
}

// Healthcheck responds with a static OK for load balancer probes.
func (h *Handler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

type classifyRequest struct {
	Text   string `json:"text"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Classify scores raw document text and returns the document type.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req classifyRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Text == "" && req.Title == "" {
		h.writeError(w, "text or title is required", http.StatusBadRequest)
		return
	}

	result := classify.Classify(req.Text, classify.Metadata{Title: req.Title, Author: req.Author})
	h.writeJSON(w, result)
}

type verifyRequest struct {
	PDFPath    string             `json:"pdf_path"`
	SourceURL  string             `json:"source_url"`
	Web        models.WebMetadata `json:"web"`
	PageImages []string           `json:"page_images"`
}

// Verify analyzes a downloaded PDF and compares it against its source
// page. The caller supplies either a source URL to fetch or the page
// metadata directly.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req verifyRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.PDFPath == "" {
		h.writeError(w, "pdf_path is required", http.StatusBadRequest)
		return
	}

	var (
		report pipeline.Report
		err    error
	)
	if req.SourceURL != "" {
		report, err = h.pipeline.VerifyAgainstURL(r.Context(), req.PDFPath, req.SourceURL, req.PageImages)
	} else if req.Web.Title != "" || req.Web.Author != "" || req.Web.Date != "" {
		report, err = h.pipeline.VerifyAgainstMetadata(r.Context(), req.PDFPath, req.Web, req.PageImages)
	} else {
		h.writeError(w, "source_url or web metadata is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.writeError(w, "Verification failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, report)
}

// History returns recent verification records.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.history == nil {
		h.writeError(w, "History is not enabled", http.StatusNotFound)
		return
	}

	records, err := h.history.Recent(r.Context(), 50)
	if err != nil {
		h.writeError(w, "Failed to load history: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.VerificationRecord{}
	}
	h.writeJSON(w, records)
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, "Invalid JSON request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
