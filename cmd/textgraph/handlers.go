package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"textgraph"
	"textgraph/extract"
)

//go:embed web
var webFS embed.FS

type handler struct {
	cfg textgraph.Config
}

func newHandler(cfg textgraph.Config) *handler {
	return &handler{cfg: cfg}
}

// generator builds a per-request Generator. A key supplied in the request
// overrides the server-side one; it is never stored.
func (h *handler) generator(apiKey string) (*textgraph.Generator, error) {
	cfg := h.cfg
	if apiKey != "" {
		cfg.LLM.APIKey = apiKey
	}
	return textgraph.New(cfg)
}

// POST /api/generate
// Accepts JSON {"text": "...", "api_key": "..."} or a multipart upload with
// a "file" part and optional "api_key" field.
func (h *handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	if err := r.ParseMultipartForm(50 << 20); err == nil { // 50MB max
		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			h.generateFromUpload(ctx, w, file, header.Filename, r.FormValue("api_key"))
			return
		}
	}

	var req struct {
		Text   string `json:"text"`
		APIKey string `json:"api_key,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: expected JSON with 'text' or a multipart file")
		return
	}

	g, err := h.generator(req.APIKey)
	if err != nil {
		writeGenerateError(w, err, nil)
		return
	}

	res, err := g.Generate(ctx, req.Text)
	if err != nil {
		writeGenerateError(w, err, res)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *handler) generateFromUpload(ctx context.Context, w http.ResponseWriter, file io.Reader, filename, apiKey string) {
	// Sanitise filename to prevent path traversal; the extension picks the
	// parser.
	safeName := filepath.Base(filename)

	tmpPath := filepath.Join(os.TempDir(), safeName)
	dst, err := os.Create(tmpPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		slog.Error("creating temp file", "error", err)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeError(w, http.StatusInternalServerError, "failed to save file")
		slog.Error("saving uploaded file", "error", err)
		return
	}
	dst.Close()
	defer os.Remove(tmpPath)

	g, err := h.generator(apiKey)
	if err != nil {
		writeGenerateError(w, err, nil)
		return
	}

	res, err := g.GenerateFromFile(ctx, tmpPath)
	if err != nil {
		writeGenerateError(w, err, res)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// GET /api/health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"provider": h.cfg.LLM.Provider,
	})
}

// GET /
func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// writeGenerateError maps pipeline error kinds to HTTP statuses. A partial
// result (the empty extraction record) is included when one was returned.
func writeGenerateError(w http.ResponseWriter, err error, res *textgraph.Result) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, textgraph.ErrEmptyInput):
		status = http.StatusBadRequest
	case errors.Is(err, textgraph.ErrMissingAPIKey):
		status = http.StatusUnauthorized
	case errors.Is(err, textgraph.ErrInvalidConfig), errors.Is(err, textgraph.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	case errors.Is(err, extract.ErrAPICall):
		status = http.StatusBadGateway
	case errors.Is(err, extract.ErrResponseParse), errors.Is(err, textgraph.ErrEmptyExtraction):
		status = http.StatusUnprocessableEntity
	}

	body := map[string]interface{}{"error": err.Error()}
	if res != nil && res.Extraction != nil {
		body["extraction"] = res.Extraction
	}

	if status >= 500 {
		slog.Error("generate error", "status", status, "error", err)
	} else {
		slog.Info("generate rejected", "status", status, "error", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
